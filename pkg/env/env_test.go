package env

import "testing"

func TestGetFallsBackWhenBlank(t *testing.T) {
	t.Setenv("AGRIQUOTE_TEST_VALUE", "   ")
	if got := Get("AGRIQUOTE_TEST_VALUE", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback, got %q", got)
	}
	t.Setenv("AGRIQUOTE_TEST_VALUE", " console ")
	if got := Get("AGRIQUOTE_TEST_VALUE", "json"); got != "console" {
		t.Fatalf("expected trimmed value, got %q", got)
	}
}

func TestBool(t *testing.T) {
	t.Setenv("AGRIQUOTE_TEST_FLAG", "true")
	if !Bool("AGRIQUOTE_TEST_FLAG", false) {
		t.Fatal("expected true")
	}
	t.Setenv("AGRIQUOTE_TEST_FLAG", "nope")
	if Bool("AGRIQUOTE_TEST_FLAG", false) {
		t.Fatal("malformed value should fall back")
	}
}
