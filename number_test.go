package quaver

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestParseNumber(t *testing.T) {
	c := qt.New(t)
	tests := []struct {
		expr string
		n    float64
		ok   bool
	}{
		{"1/2", 0.5, true},
		{"500", 500, true},
		{"-3.5", -3.5, true},
		{"1ms", 1e-3, true},
		{"2s", 2, true},
		{"440hz", 440, true},
		{"24khz", 24000, true},
		{"0db", 1, true},
		{"-6db", 0.5011872336272722, true},
		{"1e3", 1000, true},
		{"1/0", 0, false},
		{"48*2e3hz", 0, false},
		{"a", 0, false},
		{"hz", 0, false},
		{"_60", 0, false},
	}
	for _, test := range tests {
		n, ok := parseNumber(test.expr)
		c.Check(ok, qt.Equals, test.ok, qt.Commentf("%q", test.expr))
		c.Check(approx(n, test.n), qt.IsTrue, qt.Commentf("%q => %g, want %g", test.expr, n, test.n))
	}
}
