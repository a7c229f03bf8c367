package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateAcceptsDefaults(t *testing.T) {
	warnings, err := Validate(Default())
	require.NoError(t, err)
	require.Empty(t, warnings)
}

func TestValidateRejectsInvalidCoreFields(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "zero min word length", mutate: func(c *Config) { c.MinWordLength = 0 }, wantErr: "min_word_length"},
		{name: "zero learn threshold", mutate: func(c *Config) { c.AutoLearnThreshold = 0 }, wantErr: "auto_learn_threshold"},
		{name: "zero layout poll", mutate: func(c *Config) { c.Keyboard.LayoutPollMS = 0 }, wantErr: "layout_poll_ms"},
		{name: "negative delay", mutate: func(c *Config) { c.Delays.PreMS = -1 }, wantErr: "delays"},
		{name: "empty output mode", mutate: func(c *Config) { c.Output.Mode = "" }, wantErr: "output.mode"},
		{name: "unknown output mode", mutate: func(c *Config) { c.Output.Mode = "xdotool" }, wantErr: "wtype, clipboard"},
		{name: "wtype without type cmd", mutate: func(c *Config) { c.Output.TypeCmd.Argv = nil }, wantErr: "output.type_cmd"},
		{name: "wtype without delete cmd", mutate: func(c *Config) { c.Output.DeleteCmd.Argv = nil }, wantErr: "output.delete_cmd"},
		{name: "clipboard without read cmd", mutate: func(c *Config) {
			c.Output.Mode = "clipboard"
			c.Output.ClipboardRead.Argv = nil
		}, wantErr: "clipboard_read_cmd"},
		{name: "clipboard without write cmd", mutate: func(c *Config) {
			c.Output.Mode = "clipboard"
			c.Output.ClipboardWrite.Argv = nil
		}, wantErr: "clipboard_write_cmd"},
		{name: "clipboard without paste shortcut", mutate: func(c *Config) {
			c.Output.Mode = "clipboard"
			c.Output.PasteShortcut = " "
		}, wantErr: "paste_shortcut"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)

			_, err := Validate(cfg)
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestValidateWarnsOnExtremeMinWordLength(t *testing.T) {
	cfg := Default()
	cfg.MinWordLength = 32

	warnings, err := Validate(cfg)
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	require.Contains(t, warnings[0].Message, "min_word_length")
}
