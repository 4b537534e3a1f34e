package envutil

import (
	"reflect"
	"testing"
	"time"
)

func TestInt(t *testing.T) {
	t.Setenv("PORTFOLIO_TEST_INT", "42")
	if got := Int("PORTFOLIO_TEST_INT", 7); got != 42 {
		t.Fatalf("Int: want=%d got=%d", 42, got)
	}
	t.Setenv("PORTFOLIO_TEST_INT", "nope")
	if got := Int("PORTFOLIO_TEST_INT", 7); got != 7 {
		t.Fatalf("Int fallback: want=%d got=%d", 7, got)
	}
}

func TestBool(t *testing.T) {
	cases := map[string]bool{"on": true, "FALSE": false, "": true, "maybe": true}
	for raw, want := range cases {
		t.Setenv("PORTFOLIO_TEST_BOOL", raw)
		if got := Bool("PORTFOLIO_TEST_BOOL", true); got != want {
			t.Fatalf("Bool(%q): want=%v got=%v", raw, want, got)
		}
	}
}

func TestSeconds(t *testing.T) {
	t.Setenv("PORTFOLIO_TEST_SECS", "90")
	if got := Seconds("PORTFOLIO_TEST_SECS", time.Second); got != 90*time.Second {
		t.Fatalf("Seconds: want=%s got=%s", 90*time.Second, got)
	}
}

func TestList(t *testing.T) {
	t.Setenv("PORTFOLIO_TEST_LIST", " http://a.test , ,http://b.test")
	got := List("PORTFOLIO_TEST_LIST", nil)
	want := []string{"http://a.test", "http://b.test"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("List: want=%v got=%v", want, got)
	}
}

func TestStringDefault(t *testing.T) {
	t.Setenv("PORTFOLIO_TEST_STR", "  ")
	if got := String("PORTFOLIO_TEST_STR", "fallback", nil); got != "fallback" {
		t.Fatalf("String: want=%q got=%q", "fallback", got)
	}
}
