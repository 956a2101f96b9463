package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  Command
	}{
		{"refresh", Command{Name: "refresh"}},
		{"  SYNC ", Command{Name: "refresh"}},
		{"q", Command{Name: "quit"}},
		{"new", Command{Name: "new"}},
		{"theme", Command{Name: "theme"}},
		{"logout", Command{Name: "logout"}},
		{"filter lost", Command{Name: "filter", Arg: "Lost"}},
		{"filter", Command{Name: "filter", Arg: "All"}},
		{"status QUALIFIED", Command{Name: "filter", Arg: "Qualified"}},
		{"sort asc", Command{Name: "sort", Arg: "asc"}},
		{"sort newest", Command{Name: "sort", Arg: "desc"}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseErrors(t *testing.T) {
	for _, input := range []string{"", "   ", "launch", "filter won", "sort sideways"} {
		_, err := Parse(input)
		assert.Error(t, err, "input %q", input)
	}
}
