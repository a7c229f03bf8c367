package dict

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T, threshold int) *Manager {
	t.Helper()
	userPath := filepath.Join(t.TempDir(), "user_words.json")
	return NewManager("", userPath, threshold, nil)
}

func TestCheckUsesEmbeddedSeeds(t *testing.T) {
	m := newTestManager(t, 3)

	require.True(t, m.Check("hello", LangEN))
	require.True(t, m.Check("HELLO", LangEN))
	require.True(t, m.Check("привет", LangRU))
	require.False(t, m.Check("xyzzyq", LangEN))
	require.False(t, m.Check("hello", LangRU))
}

func TestCheckPrefersBaseFilesOverSeeds(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "en_words.txt"), []byte("zorp\nfloop\n"), 0o600))

	m := NewManager(dir, filepath.Join(t.TempDir(), "user_words.json"), 3, nil)

	require.True(t, m.Check("zorp", LangEN))
	require.False(t, m.Check("hello", LangEN), "seed list must not leak when a base file exists")
	// Missing ru file still falls back to the embedded seed.
	require.True(t, m.Check("привет", LangRU))
}

func TestRecordLearnsAtThreshold(t *testing.T) {
	m := newTestManager(t, 3)

	require.False(t, m.Record("grafana", LangEN))
	require.False(t, m.Record("grafana", LangEN))
	require.False(t, m.Check("grafana", LangEN))

	require.True(t, m.Record("grafana", LangEN))
	require.True(t, m.Check("grafana", LangEN))

	// Known words are a no-op.
	require.False(t, m.Record("grafana", LangEN))
	require.Zero(t, m.Stats().Learning)
}

func TestRecordPersistsWriteThrough(t *testing.T) {
	userPath := filepath.Join(t.TempDir(), "user_words.json")
	m := NewManager("", userPath, 2, nil)

	require.False(t, m.Record("zibzab", LangRU))

	content, err := os.ReadFile(userPath)
	require.NoError(t, err)

	type snapshot struct {
		RU     []string       `json:"ru"`
		EN     []string       `json:"en"`
		Counts map[string]int `json:"counts"`
	}

	var pending snapshot
	require.NoError(t, json.Unmarshal(content, &pending))
	require.Equal(t, 1, pending.Counts["ru:zibzab"])
	require.Empty(t, pending.RU)

	require.True(t, m.Record("zibzab", LangRU))
	content, err = os.ReadFile(userPath)
	require.NoError(t, err)

	// Decode into a fresh value: Unmarshal merges into a non-nil Counts map.
	var learned snapshot
	require.NoError(t, json.Unmarshal(content, &learned))
	require.Equal(t, []string{"zibzab"}, learned.RU)
	require.NotContains(t, learned.Counts, "ru:zibzab")
}

func TestAddClearsPendingCounter(t *testing.T) {
	m := newTestManager(t, 5)

	require.False(t, m.Record("qweasd", LangEN))
	require.Equal(t, 1, m.Stats().Learning)

	require.NoError(t, m.Add("QweAsd", LangEN))
	require.True(t, m.Check("qweasd", LangEN))
	require.Zero(t, m.Stats().Learning)
}

func TestRemoveAndUserWordsSorted(t *testing.T) {
	m := newTestManager(t, 3)

	require.NoError(t, m.Add("zulu", LangEN))
	require.NoError(t, m.Add("alpha", LangEN))
	require.NoError(t, m.Add("mike", LangEN))
	require.Equal(t, []string{"alpha", "mike", "zulu"}, m.UserWords(LangEN))

	require.NoError(t, m.Remove("mike", LangEN))
	require.Equal(t, []string{"alpha", "zulu"}, m.UserWords(LangEN))
	require.False(t, m.Check("mike", LangEN))
}

func TestAddRejectsEmptyWord(t *testing.T) {
	m := newTestManager(t, 3)
	require.Error(t, m.Add("  ", LangEN))
	require.Error(t, m.Remove("", LangRU))
}

func TestLoadMalformedUserFileStartsEmpty(t *testing.T) {
	userPath := filepath.Join(t.TempDir(), "user_words.json")
	require.NoError(t, os.WriteFile(userPath, []byte("{not json"), 0o600))

	m := NewManager("", userPath, 3, nil)
	require.Empty(t, m.UserWords(LangEN))
	require.Empty(t, m.UserWords(LangRU))
	require.Zero(t, m.Stats().Learning)
}

func TestLoadRestoresUserState(t *testing.T) {
	userPath := filepath.Join(t.TempDir(), "user_words.json")
	payload := `{"ru": ["Сбер"], "en": ["golang"], "counts": {"en:kubectl": 2}}`
	require.NoError(t, os.WriteFile(userPath, []byte(payload), 0o600))

	m := NewManager("", userPath, 3, nil)
	require.True(t, m.Check("golang", LangEN))
	require.True(t, m.Check("сбер", LangRU))
	require.Equal(t, 1, m.Stats().Learning)

	// One more sighting reaches the persisted count plus this call.
	require.True(t, m.Record("kubectl", LangEN))
}

func TestParseLanguage(t *testing.T) {
	lang, err := ParseLanguage(" RU ")
	require.NoError(t, err)
	require.Equal(t, LangRU, lang)

	_, err = ParseLanguage("de")
	require.Error(t, err)
}

func TestStatsCountsSets(t *testing.T) {
	m := newTestManager(t, 3)
	stats := m.Stats()
	require.Positive(t, stats.EnBase)
	require.Positive(t, stats.RuBase)
	require.Zero(t, stats.EnUser)

	require.NoError(t, m.Add("zonk", LangEN))
	require.Equal(t, 1, m.Stats().EnUser)
}
