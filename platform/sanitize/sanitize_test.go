package sanitize

import "testing"

func TestStripHTML(t *testing.T) {
	got := StripHTML(" <b>Acme</b> &lt;script&gt;alert(1)&lt;/script&gt; Ltd ")
	if got != "Acme alert(1) Ltd" {
		t.Fatalf("unexpected result %q", got)
	}
}

func TestTextDropsUnstorableBytes(t *testing.T) {
	if got := Text("Ac\x00me \xffTraders"); got != "Acme Traders" {
		t.Fatalf("unexpected result %q", got)
	}
}

func TestLineCollapsesWhitespace(t *testing.T) {
	if got := Line("  Acme \n\t Traders  "); got != "Acme Traders" {
		t.Fatalf("unexpected result %q", got)
	}
}

func TestTruncateCountsRunes(t *testing.T) {
	if got := Truncate("Ünïcödé", 3); got != "Ünï" {
		t.Fatalf("unexpected result %q", got)
	}
	if got := Truncate("abc", 10); got != "abc" {
		t.Fatalf("unexpected result %q", got)
	}
	if got := Truncate("abc", 0); got != "" {
		t.Fatalf("expected empty result, got %q", got)
	}
}

func TestTextPtr(t *testing.T) {
	if TextPtr(nil) != nil {
		t.Fatalf("expected nil")
	}
	in := "<i>note</i>"
	if got := TextPtr(&in); got == nil || *got != "note" {
		t.Fatalf("unexpected result %v", got)
	}
}
