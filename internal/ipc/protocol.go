// Package ipc is the unix-socket control surface the CLI, tray, and
// settings GUI drive the daemon through.
package ipc

// Request is one JSON-line command. Word and Language accompany the
// dictionary commands; both are ignored elsewhere.
type Request struct {
	Command  string `json:"command"`
	Word     string `json:"word,omitempty"`
	Language string `json:"language,omitempty"`
}

// Response reports the outcome. State is the replacement engine state,
// Active whether auto-correction is enabled.
type Response struct {
	OK      bool           `json:"ok"`
	State   string         `json:"state,omitempty"`
	Active  bool           `json:"active,omitempty"`
	Message string         `json:"message,omitempty"`
	Words   []string       `json:"words,omitempty"`
	Stats   map[string]int `json:"stats,omitempty"`
	Error   string         `json:"error,omitempty"`
}
