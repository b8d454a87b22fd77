package assessment

import "testing"

func TestOpenForScoring(t *testing.T) {
	cases := map[string]bool{
		StatusDraft:     false,
		StatusActive:    true,
		StatusCompleted: false,
		StatusEnded:     false,
	}
	for status, want := range cases {
		a := Assessment{Status: status}
		if got := a.OpenForScoring(); got != want {
			t.Fatalf("status %s: expected %v, got %v", status, want, got)
		}
	}
}
