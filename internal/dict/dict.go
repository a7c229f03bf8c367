// Package dict manages the Russian and English vocabularies with
// frequency-based auto-learning.
package dict

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
)

// Language identifies one of the two managed vocabularies.
type Language string

const (
	LangRU Language = "ru"
	LangEN Language = "en"
)

// Stats summarizes dictionary sizes for status and logging output.
type Stats struct {
	RuBase   int `json:"ru_base"`
	EnBase   int `json:"en_base"`
	RuUser   int `json:"ru_user"`
	EnUser   int `json:"en_user"`
	Learning int `json:"learning"`
}

// Manager owns all dictionary state. Base sets are immutable after load;
// user words and learning counters are persisted write-through on every
// mutation. All access is serialized by a single mutex.
type Manager struct {
	logger    *slog.Logger
	userPath  string
	threshold int

	mu      sync.Mutex
	base    map[Language]map[string]struct{}
	user    map[Language]map[string]struct{}
	counts  map[string]int
	savedAt int64
}

// NewManager loads base dictionaries from dir (falling back to the embedded
// seed lists) and user state from userPath. Malformed or missing files are
// never fatal: the affected set starts empty.
func NewManager(dir string, userPath string, threshold int, logger *slog.Logger) *Manager {
	m := &Manager{
		logger:    logger,
		userPath:  userPath,
		threshold: threshold,
		base: map[Language]map[string]struct{}{
			LangRU: loadBase(dir, LangRU, logger),
			LangEN: loadBase(dir, LangEN, logger),
		},
		user: map[Language]map[string]struct{}{
			LangRU: {},
			LangEN: {},
		},
		counts: map[string]int{},
	}
	m.loadUserLocked()
	return m
}

// Check reports case-insensitive membership of word in base(lang) ∪ user(lang).
func (m *Manager) Check(word string, lang Language) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.checkLocked(strings.ToLower(word), lang)
}

func (m *Manager) checkLocked(lowered string, lang Language) bool {
	if _, ok := m.base[lang][lowered]; ok {
		return true
	}
	_, ok := m.user[lang][lowered]
	return ok
}

// Record counts one confirmed sighting of word. When the count reaches the
// auto-learn threshold the word moves into the user set and its counter is
// dropped. Returns true only on the call that learns the word. State is
// persisted on every mutation.
func (m *Manager) Record(word string, lang Language) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	lowered := strings.ToLower(word)
	if m.checkLocked(lowered, lang) {
		return false
	}

	key := countKey(lang, lowered)
	m.counts[key]++
	learned := m.counts[key] >= m.threshold
	if learned {
		m.user[lang][lowered] = struct{}{}
		delete(m.counts, key)
	}
	m.saveLocked()
	return learned
}

// Add puts word into the user dictionary and clears any pending counter.
func (m *Manager) Add(word string, lang Language) error {
	lowered := strings.ToLower(strings.TrimSpace(word))
	if lowered == "" {
		return fmt.Errorf("word cannot be empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.user[lang][lowered] = struct{}{}
	delete(m.counts, countKey(lang, lowered))
	m.saveLocked()
	return nil
}

// Remove deletes word from the user dictionary. Removing an absent word is
// a no-op that still persists (matching write-through semantics).
func (m *Manager) Remove(word string, lang Language) error {
	lowered := strings.ToLower(strings.TrimSpace(word))
	if lowered == "" {
		return fmt.Errorf("word cannot be empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.user[lang], lowered)
	m.saveLocked()
	return nil
}

// UserWords returns a sorted snapshot of the user dictionary for lang.
func (m *Manager) UserWords(lang Language) []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	words := make([]string, 0, len(m.user[lang]))
	for word := range m.user[lang] {
		words = append(words, word)
	}
	sort.Strings(words)
	return words
}

// Stats returns current dictionary sizes.
func (m *Manager) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Stats{
		RuBase:   len(m.base[LangRU]),
		EnBase:   len(m.base[LangEN]),
		RuUser:   len(m.user[LangRU]),
		EnUser:   len(m.user[LangEN]),
		Learning: len(m.counts),
	}
}

func countKey(lang Language, word string) string {
	return string(lang) + ":" + word
}

// ParseLanguage validates an external language identifier.
func ParseLanguage(raw string) (Language, error) {
	switch Language(strings.ToLower(strings.TrimSpace(raw))) {
	case LangRU:
		return LangRU, nil
	case LangEN:
		return LangEN, nil
	default:
		return "", fmt.Errorf("unknown language %q (expected ru or en)", raw)
	}
}
