package pagination

import (
	"fmt"
	"testing"
	"time"
)

type row struct {
	id string
	at time.Time
}

func keyOf(r row) Cursor { return Cursor{CreatedAt: r.at, ID: r.id} }

func TestCursorRoundTrip(t *testing.T) {
	at := time.Date(2026, 10, 15, 9, 30, 0, 123, time.UTC)
	encoded := EncodeCursor(Cursor{CreatedAt: at, ID: "req_1"})

	got, err := ParseCursor(encoded)
	if err != nil {
		t.Fatalf("parse cursor: %v", err)
	}
	if !got.CreatedAt.Equal(at) || got.ID != "req_1" {
		t.Fatalf("unexpected cursor %+v", got)
	}

	if c, err := ParseCursor(" "); err != nil || c != nil {
		t.Fatalf("blank cursor should be nil, got %v %v", c, err)
	}
	if _, err := ParseCursor("not base64!"); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestNormalizeLimit(t *testing.T) {
	if NormalizeLimit(0) != DefaultLimit {
		t.Fatalf("expected default limit")
	}
	if NormalizeLimit(1000) != MaxLimit {
		t.Fatalf("expected max limit")
	}
	if NormalizeLimit(7) != 7 {
		t.Fatalf("expected limit to pass through")
	}
}

func TestPaginateWalksEveryItemOnce(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	var items []row
	for i := 9; i >= 0; i-- {
		items = append(items, row{id: fmt.Sprintf("r%02d", i), at: base.Add(time.Duration(i/2) * time.Hour)})
	}

	seen := map[string]bool{}
	cursor := ""
	pages := 0
	for {
		page, next, err := Paginate(items, Params{Limit: 3, Cursor: cursor}, keyOf)
		if err != nil {
			t.Fatalf("paginate: %v", err)
		}
		pages++
		for _, r := range page {
			if seen[r.id] {
				t.Fatalf("item %s returned twice", r.id)
			}
			seen[r.id] = true
		}
		if next == "" {
			break
		}
		cursor = next
	}
	if len(seen) != len(items) {
		t.Fatalf("expected %d items, saw %d", len(items), len(seen))
	}
	if pages != 4 {
		t.Fatalf("expected 4 pages, got %d", pages)
	}
}

func TestPaginateInvalidCursor(t *testing.T) {
	if _, _, err := Paginate([]row{}, Params{Cursor: "%%%"}, keyOf); err == nil {
		t.Fatal("expected cursor error")
	}
}
