package config

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeJSONCRemovesCommentsAndTrailingCommas(t *testing.T) {
	input := `
{
  // line comment
  "items": [
    "one", /* block comment */
    "two",
  ],
  "nested": {
    "enabled": true,
  },
}
`

	normalized, err := normalizeJSONC(input)
	require.NoError(t, err)
	require.NotContains(t, normalized, "//")
	require.NotContains(t, normalized, "/*")
	require.NotContains(t, normalized, ",]")
	require.NotContains(t, normalized, ",}")
}

func TestNormalizeJSONCRetainsCommentLikeTextInsideStrings(t *testing.T) {
	input := `{"value":"contains // and /* comment-like */ text",}`
	normalized, err := normalizeJSONC(input)
	require.NoError(t, err)
	require.Contains(t, normalized, "// and /* comment-like */")
}

func TestNormalizeJSONCUnterminatedBlockCommentFails(t *testing.T) {
	_, err := normalizeJSONC("{ /* unterminated ")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unterminated block comment")
}

func TestEnsureSingleJSONValueRejectsExtraPayload(t *testing.T) {
	decoder := json.NewDecoder(strings.NewReader(`{"one":1}{"two":2}`))
	var payload map[string]any
	require.NoError(t, decoder.Decode(&payload))

	err := ensureSingleJSONValue(decoder)
	require.Error(t, err)
	require.Contains(t, err.Error(), "multiple JSON values")
}

func TestOffsetToLineCol(t *testing.T) {
	content := "line1\nline2\nline3"
	line, col := offsetToLineCol(content, 1)
	require.Equal(t, 1, line)
	require.Equal(t, 1, col)

	line, col = offsetToLineCol(content, 8) // line2, col2
	require.Equal(t, 2, line)
	require.Equal(t, 2, col)

	line, col = offsetToLineCol(content, 999)
	require.Equal(t, 3, line)
	require.Equal(t, 5, col)
}

func TestJSONCStringListUnmarshal(t *testing.T) {
	var list jsoncStringList
	require.NoError(t, list.UnmarshalJSON([]byte(`["a","b"]`)))
	require.Equal(t, []string{"a", "b"}, []string(list))

	require.NoError(t, list.UnmarshalJSON([]byte(`"a, b, , c"`)))
	require.Equal(t, []string{"a", "b", "c"}, []string(list))

	err := list.UnmarshalJSON([]byte(`123`))
	require.Error(t, err)
	require.Contains(t, err.Error(), "expected string array")
}

func TestParseJSONCRejectsInvalidCommandArgv(t *testing.T) {
	_, _, err := parseJSONC(`{"output":{"type_cmd":"unterminated ' quote"}}`, Default())
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid output.type_cmd")

	_, _, err = parseJSONC(`{"output":{"clipboard_write_cmd":"unterminated ' quote"}}`, Default())
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid output.clipboard_write_cmd")
}

func TestParseJSONCOverlaysScalarsOnDefaults(t *testing.T) {
	cfg, _, err := parseJSONC(`{
  "min_word_length": 4,
  "auto_learn_threshold": 5,
  "notify": false,
  "keyboard": {"device": " /dev/input/event3 ", "layout_poll_ms": 250},
  "dictionary": {"dir": " /tmp/dicts "}
}`, Default())
	require.NoError(t, err)
	require.Equal(t, 4, cfg.MinWordLength)
	require.Equal(t, 5, cfg.AutoLearnThreshold)
	require.False(t, cfg.Notify)
	require.Equal(t, "/dev/input/event3", cfg.Keyboard.Device)
	require.Equal(t, 250, cfg.Keyboard.LayoutPollMS)
	require.Equal(t, "/tmp/dicts", cfg.Dictionary.Dir)
	require.True(t, cfg.AutoCorrect)
}

func TestParseJSONCSwitchesOutputMode(t *testing.T) {
	cfg, _, err := parseJSONC(`{
  "output": {
    "mode": " Clipboard ",
    "paste_shortcut": "  CTRL,SHIFT,V  "
  }
}`, Default())
	require.NoError(t, err)
	require.Equal(t, "clipboard", cfg.Output.Mode)
	require.Equal(t, "CTRL,SHIFT,V", cfg.Output.PasteShortcut)
	require.Equal(t, []string{"wl-paste", "--no-newline"}, cfg.Output.ClipboardRead.Argv)
}

func TestParseJSONCExcludedWindowsSupportsCommaString(t *testing.T) {
	cfg, _, err := parseJSONC(`{"excluded_windows": "kitty, Alacritty, , foot"}`, Default())
	require.NoError(t, err)
	require.Equal(t, []string{"kitty", "Alacritty", "foot"}, cfg.ExcludedWindows)
}

func TestParseJSONCRejectsMultipleTopLevelValues(t *testing.T) {
	_, _, err := parseJSONC(`{"notify":false}{"notify":true}`, Default())
	require.Error(t, err)
	require.True(
		t,
		strings.Contains(err.Error(), "multiple JSON values") || strings.Contains(err.Error(), "unknown field"),
		"unexpected error: %v",
		err,
	)
}

func TestParseJSONCTypeErrorIncludesLocation(t *testing.T) {
	_, _, err := parseJSONC(`{
  "keyboard": {"device": 123}
}`, Default())
	require.Error(t, err)
	require.Contains(t, err.Error(), "line")
	require.Contains(t, err.Error(), "column")
}

func TestParseJSONCRejectsUnknownKeys(t *testing.T) {
	_, _, err := parseJSONC(`{"min_word_lenght": 3}`, Default())
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown field")
}
