package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitCommandLine(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string
		wantErr string
	}{
		{name: "empty", input: "", want: nil},
		{name: "whitespace only", input: "   \t ", want: nil},
		{name: "simple", input: "wtype -k BackSpace", want: []string{"wtype", "-k", "BackSpace"}},
		{name: "quoted spaces", input: `notify-send --app-name "layout fixer"`, want: []string{"notify-send", "--app-name", "layout fixer"}},
		{name: "single quote", input: `sh -c 'wl-paste -n'`, want: []string{"sh", "-c", "wl-paste -n"}},
		{name: "escaped space", input: `run my\ tool`, want: []string{"run", "my tool"}},
		{name: "empty quoted argument", input: `wtype ""`, want: []string{"wtype", ""}},
		{name: "leading comment", input: `# wl-copy --trim-newline`, want: nil},
		{name: "unterminated quote", input: `wtype "oops`, wantErr: "unterminated quote"},
		{name: "unterminated escape", input: `wtype hello\`, wantErr: "unterminated escape"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := splitCommandLine(tc.input)
			if tc.wantErr != "" {
				require.Error(t, err)
				require.Contains(t, err.Error(), tc.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestMustSplitCommandLinePanicsOnInvalidInput(t *testing.T) {
	require.Panics(t, func() {
		_ = mustSplitCommandLine(`wtype "unterminated`)
	})
}
