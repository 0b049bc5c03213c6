package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agriquote/agriquote-backend/pkg/migrate"
)

func TestRecordsMigrationContainsSchema(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_records.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no records migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS records",
		"payload JSONB NOT NULL",
		"PRIMARY KEY (collection, id)",
		"CREATE INDEX IF NOT EXISTS idx_records_collection_position",
		"DROP TABLE IF EXISTS records",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestValidateDirAcceptsShippedMigrations(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("validate migrations: %v", err)
	}
}

func TestValidateDirRejectsBadFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad-name.sql"), []byte("-- +goose Up\n-- +goose Down\n"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := migrate.ValidateDir(dir); err == nil {
		t.Fatal("expected invalid filename error")
	}

	dir = t.TempDir()
	if err := migrate.ValidateDir(dir); err == nil {
		t.Fatal("expected empty dir error")
	}
}

func TestCreateSQLMigration(t *testing.T) {
	dir := t.TempDir()
	path, err := migrate.CreateSQLMigration(dir, "Add Dealer Index!")
	if err != nil {
		t.Fatalf("create migration: %v", err)
	}
	if !strings.HasSuffix(path, "_add_dealer_index.sql") {
		t.Fatalf("unexpected path %s", path)
	}
	if err := migrate.ValidateDir(dir); err != nil {
		t.Fatalf("created migration should validate: %v", err)
	}
}

func TestCreateSQLMigrationRefusesBlankName(t *testing.T) {
	if _, err := migrate.CreateSQLMigration(t.TempDir(), " !! "); err == nil {
		t.Fatal("expected blank slug error")
	}
}

func TestParseFileName(t *testing.T) {
	file, err := migrate.ParseFileName("20261015090000_create_records.sql")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if file.Version != 20261015090000 || file.Slug != "create_records" {
		t.Fatalf("unexpected parse result %+v", file)
	}

	for _, bad := range []string{"create_records.sql", "20261315090000_bad_month.sql", "20261015090000_Upper.sql"} {
		if _, err := migrate.ParseFileName(bad); err == nil {
			t.Errorf("expected %q to be rejected", bad)
		}
	}
}

func TestValidateDirChecksAnnotations(t *testing.T) {
	cases := map[string]string{
		"down before up": "-- +goose Down\n-- +goose Up\n",
		"unbalanced":     "-- +goose Up\n-- +goose StatementBegin\nSELECT 1;\n-- +goose Down\n",
		"missing down":   "-- +goose Up\nSELECT 1;\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			if err := os.WriteFile(filepath.Join(dir, "20261015090000_sample.sql"), []byte(body), 0o644); err != nil {
				t.Fatalf("write file: %v", err)
			}
			if err := migrate.ValidateDir(dir); err == nil {
				t.Fatal("expected annotation error")
			}
		})
	}
}
