package irc

import "testing"

func TestSplitPrivmsgWhitespace(t *testing.T) {
	cases := []struct {
		budget int
		want   []string
	}{
		{5, []string{"yada ", "yada ", "yada"}},
		{4, []string{"yada", " ", "yada", " ", "yada"}},
		{3, []string{"yad", "a ", "yad", "a ", "yad", "a"}},
	}

	for _, c := range cases {
		got := SplitPrivmsg(c.budget, "yada yada yada")
		if !equalStrSlices(got, c.want) {
			t.Errorf("budget %d: got %v, want %v", c.budget, got, c.want)
		}
	}
}

func TestSplitPrivmsgNoWhitespace(t *testing.T) {
	got := SplitPrivmsg(3, "longwordislong")
	want := []string{"lon", "gwo", "rdi", "slo", "ng"}
	if !equalStrSlices(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestSplitPrivmsgEmpty(t *testing.T) {
	got := SplitPrivmsg(3, "")
	if !equalStrSlices(got, []string{""}) {
		t.Errorf("got %v, want [\"\"]", got)
	}
}

func TestSplitPrivmsgZeroBudgetPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic for a non-positive budget")
		}
	}()
	SplitPrivmsg(0, "hello")
}

func TestParseServernameBracketed(t *testing.T) {
	params := []string{
		"tiny_test",
		"Your host is adams.freenode.net[94.125.182.252/8001], running version ircd-seven-1.1.4",
	}
	got, ok := parseServername(params)
	if !ok || got != "adams.freenode.net" {
		t.Errorf("got %q ok=%v, want \"adams.freenode.net\"", got, ok)
	}
}

func TestParseServernameComma(t *testing.T) {
	params := []string{
		"tiny_test",
		"Your host is belew.mozilla.org, running version InspIRCd-2.0",
	}
	got, ok := parseServername(params)
	if !ok || got != "belew.mozilla.org" {
		t.Errorf("got %q ok=%v, want \"belew.mozilla.org\"", got, ok)
	}
}

func equalStrSlices(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
