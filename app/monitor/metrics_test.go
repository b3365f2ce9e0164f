package monitor

import (
	"testing"
)

func TestParseKNumber(t *testing.T) {
	cases := []struct {
		input string
		want  int64
		ok    bool
	}{
		{"0", 0, true},
		{"42", 42, true},
		{"1234", 1234, true},
		{"64.5K", 64500, true},
		{"1.2M", 1200000, true},
		{"3k", 3000, true},
		{"2m", 2000000, true},
		{"10 K", 10000, true},
		{"", 0, false},
		{"N/A", 0, false},
		{"n/a", 0, false},
		{"lots", 0, false},
		{"1.2B", 0, false},
	}

	for _, tc := range cases {
		got, ok := ParseKNumber(tc.input)
		if ok != tc.ok {
			t.Errorf("ParseKNumber(%q): expected ok=%t, got %t", tc.input, tc.ok, ok)
			continue
		}
		if ok && got != tc.want {
			t.Errorf("ParseKNumber(%q): expected %d, got %d", tc.input, tc.want, got)
		}
	}
}

func TestEngagementTotal(t *testing.T) {
	total, ok := EngagementTotal("10", "5", "2")
	if !ok || total != 17 {
		t.Errorf("Expected total 17, got %d (ok=%t)", total, ok)
	}

	total, ok = EngagementTotal("1.5K", "N/A", "500")
	if !ok || total != 2000 {
		t.Errorf("Expected total 2000, got %d (ok=%t)", total, ok)
	}

	_, ok = EngagementTotal("N/A", "", "nope")
	if ok {
		t.Error("Expected ok=false when nothing parses")
	}
}
