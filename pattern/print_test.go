package pattern_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synaptree/semtrex/pattern"
)

func TestPrintRoundTrips(t *testing.T) {
	cases := []struct {
		name    string
		src     string
		symbols []string
	}{
		{"simple", "/TASK", []string{"TASK"}},
		{"descent-sugar", "/TASK/(TITLE,STATUS,.)", []string{"TASK", "TITLE", "STATUS"}},
		{"or-chain", "/A,B|C|D", []string{"A", "B", "C", "D"}},
		{"group", "/PARENT/(<LAT:lat>,<LON:lon>)", []string{"PARENT", "lat", "lon"}},
		{"symbol-set", "/{A,B}", []string{"A", "B"}},
		{"negated-symbol", "/!A", []string{"A"}},
		{"negated-set", "/!{A,B}", []string{"A", "B"}},
		{"value-literal", "/MY_INT=42", []string{"MY_INT"}},
		{"value-set", "/MY_INT={1,2,42}", []string{"MY_INT"}},
		{"value-not", `/MY_STR!="x"`, []string{"MY_STR"}},
		{"walk", "/PARENT/%DEEP", []string{"PARENT", "DEEP"}},
		{"not", "/PARENT/~DEEP", []string{"PARENT", "DEEP"}},
		{"quantified-group", "/PARENT/(A,B)*", []string{"PARENT", "A", "B"}},
		{"quantified-symbol", "/A*,B+,A?", []string{"A", "B"}},
		{"quantified-descent", "/PARENT/(A/B)*", []string{"PARENT", "A", "B"}},
		{"quantified-walk", "/(%A)?", []string{"A"}},
		{"quantified-quantifier", "/(A?)*", []string{"A"}},
		{"nested-descent", "/A/B/C", []string{"A", "B", "C"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reg := newTestRegistry(t, tc.symbols...)
			parser := pattern.NewParser(reg)
			printer := pattern.NewPrinter(reg)

			n1, err := parser.Parse(tc.src)
			require.NoError(t, err)

			pretty := printer.Print(n1)

			n2, err := parser.Parse(pretty)
			require.NoError(t, err, "re-parsing pretty-printed pattern %q", pretty)

			assert.Equal(t, printer.Print(n1), printer.Print(n2),
				"parse(pretty(parse(P))) must equal parse(P) for %q (pretty=%q)", tc.src, pretty)
		})
	}
}
