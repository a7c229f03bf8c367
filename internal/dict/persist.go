package dict

import (
	"bufio"
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

//go:embed data/ru_words.txt data/en_words.txt
var seedFS embed.FS

// userData is the on-disk user dictionary document. Counter keys are
// "{language}:{word}".
type userData struct {
	RU     []string       `json:"ru"`
	EN     []string       `json:"en"`
	Counts map[string]int `json:"counts"`
}

// loadBase reads one word per line from dir/{lang}_words.txt, lowercased.
// When the file is absent or unreadable the embedded seed list is used; a
// broken seed path degrades to an empty set rather than failing startup.
func loadBase(dir string, lang Language, logger *slog.Logger) map[string]struct{} {
	if dir != "" {
		path := filepath.Join(dir, string(lang)+"_words.txt")
		if file, err := os.Open(path); err == nil {
			defer file.Close()
			return readWordSet(file)
		} else if !os.IsNotExist(err) && logger != nil {
			logger.Warn("base dictionary unreadable, using embedded seed",
				"path", path, "error", err.Error())
		}
	}

	seed, err := seedFS.Open("data/" + string(lang) + "_words.txt")
	if err != nil {
		if logger != nil {
			logger.Warn("embedded seed dictionary missing", "language", string(lang))
		}
		return map[string]struct{}{}
	}
	defer seed.Close()
	return readWordSet(seed)
}

func readWordSet(r io.Reader) map[string]struct{} {
	words := map[string]struct{}{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		word := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if word == "" {
			continue
		}
		words[word] = struct{}{}
	}
	return words
}

// loadUserLocked restores user words and counters. Malformed content is
// dropped. Callers hold m.mu (or, at construction, have exclusive access).
func (m *Manager) loadUserLocked() {
	content, err := os.ReadFile(m.userPath)
	if err != nil {
		return
	}

	var data userData
	if err := json.Unmarshal(content, &data); err != nil {
		if m.logger != nil {
			m.logger.Warn("user dictionary malformed, starting empty",
				"path", m.userPath, "error", err.Error())
		}
		return
	}
	m.applyUserData(data)
}

func (m *Manager) applyUserData(data userData) {
	m.user[LangRU] = map[string]struct{}{}
	m.user[LangEN] = map[string]struct{}{}
	for _, word := range data.RU {
		m.user[LangRU][strings.ToLower(word)] = struct{}{}
	}
	for _, word := range data.EN {
		m.user[LangEN][strings.ToLower(word)] = struct{}{}
	}
	m.counts = map[string]int{}
	for key, count := range data.Counts {
		if count > 0 {
			m.counts[key] = count
		}
	}
}

// saveLocked persists the user state. Callers hold m.mu. Persistence
// failures are logged and swallowed: corrections are never blocked on disk.
func (m *Manager) saveLocked() {
	data := userData{
		RU:     sortedWords(m.user[LangRU]),
		EN:     sortedWords(m.user[LangEN]),
		Counts: m.counts,
	}

	payload, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		m.warnSave(err)
		return
	}

	if err := os.MkdirAll(filepath.Dir(m.userPath), 0o700); err != nil {
		m.warnSave(err)
		return
	}
	if err := os.WriteFile(m.userPath, payload, 0o600); err != nil {
		m.warnSave(err)
		return
	}
	m.savedAt = time.Now().UnixNano()
}

func (m *Manager) warnSave(err error) {
	if m.logger == nil {
		return
	}
	m.logger.Warn("persist user dictionary failed",
		"path", m.userPath, "error", fmt.Sprintf("%v", err))
}

func sortedWords(set map[string]struct{}) []string {
	words := make([]string, 0, len(set))
	for word := range set {
		words = append(words, word)
	}
	sort.Strings(words)
	return words
}
