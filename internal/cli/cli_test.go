package cli

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseDefaultsToHelp(t *testing.T) {
	parsed, err := Parse(nil)
	require.NoError(t, err)
	require.True(t, parsed.ShowHelp)
	require.Equal(t, CommandHelp, parsed.Command)
}

func TestParseCommandWithConfig(t *testing.T) {
	parsed, err := Parse([]string{"--config", "/tmp/relayout.conf", "doctor"})
	require.NoError(t, err)
	require.Equal(t, CommandDoctor, parsed.Command)
	require.Equal(t, "/tmp/relayout.conf", parsed.ConfigPath)
	require.False(t, parsed.ShowHelp)
}

func TestParseArgMatrix(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantErr  string
		wantCmd  Command
		wantHelp bool
		wantPath string
		wantWord string
		wantLang string
	}{
		{
			name:     "help short flag",
			args:     []string{"-h"},
			wantCmd:  CommandHelp,
			wantHelp: true,
		},
		{
			name:     "help long flag",
			args:     []string{"--help"},
			wantCmd:  CommandHelp,
			wantHelp: true,
		},
		{
			name:     "version flag",
			args:     []string{"--version"},
			wantCmd:  CommandVersion,
			wantHelp: false,
		},
		{
			name:    "config after command",
			args:    []string{"status", "--config", "/tmp/cfg"},
			wantErr: "unexpected arguments after command",
		},
		{
			name:    "missing config path",
			args:    []string{"--config"},
			wantErr: "requires a path",
		},
		{
			name:    "unknown flag",
			args:    []string{"--bogus"},
			wantErr: "unknown flag",
		},
		{
			name:    "unknown command",
			args:    []string{"bogus"},
			wantErr: "unknown command",
		},
		{
			name:    "extra args after command",
			args:    []string{"doctor", "extra"},
			wantErr: "unexpected arguments",
		},
		{
			name:     "valid toggle command",
			args:     []string{"toggle"},
			wantCmd:  CommandToggle,
			wantHelp: false,
		},
		{
			name:     "valid run with config",
			args:     []string{"--config", "/tmp/cfg", "run"},
			wantCmd:  CommandRun,
			wantHelp: false,
			wantPath: "/tmp/cfg",
		},
		{
			name:     "add-word with word and language",
			args:     []string{"add-word", "kubectl", "en"},
			wantCmd:  CommandAddWord,
			wantWord: "kubectl",
			wantLang: "en",
		},
		{
			name:    "add-word missing language",
			args:    []string{"add-word", "kubectl"},
			wantErr: "exactly two arguments",
		},
		{
			name:     "remove-word with word and language",
			args:     []string{"remove-word", "привет", "ru"},
			wantCmd:  CommandRemoveWord,
			wantWord: "привет",
			wantLang: "ru",
		},
		{
			name:    "words with two languages",
			args:    []string{"words", "ru", "en"},
			wantErr: "at most one argument",
		},
		{
			name:     "words with language filter",
			args:     []string{"words", "ru"},
			wantCmd:  CommandWords,
			wantLang: "ru",
		},
		{
			name:    "words without filter",
			args:    []string{"words"},
			wantCmd: CommandWords,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			parsed, err := Parse(tc.args)
			if tc.wantErr != "" {
				require.Error(t, err)
				require.Contains(t, err.Error(), tc.wantErr)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tc.wantCmd, parsed.Command)
			require.Equal(t, tc.wantHelp, parsed.ShowHelp)
			require.Equal(t, tc.wantPath, parsed.ConfigPath)
			require.Equal(t, tc.wantWord, parsed.Word)
			require.Equal(t, tc.wantLang, parsed.Language)
		})
	}
}

func TestHelpTextIncludesCoreCommands(t *testing.T) {
	text := HelpText("relayout")
	require.Contains(t, text, "toggle")
	require.Contains(t, text, "force")
	require.Contains(t, text, "undo")
	require.Contains(t, text, "add-word")
	require.Contains(t, text, "stats")
	require.Contains(t, text, "doctor")
	require.Contains(t, text, "--config PATH")
}
