package output

import (
	"context"
	"fmt"
	"sync"
	"time"

	"relayout/internal/hypr"
)

// ClipboardSink pastes replacement text through the system clipboard:
// save the current contents, write the replacement, dispatch the paste
// shortcut at the focused window, then restore what was saved. The whole
// save→write→paste→restore span is one non-reentrant critical section.
type ClipboardSink struct {
	readArgv     []string
	writeArgv    []string
	deleteArgv   []string
	pasteKey     string
	betweenKeys  time.Duration
	settleDelay  time.Duration
	sendShortcut func(ctx context.Context, payload string) error
	activeWindow func(ctx context.Context) (string, error)

	mu sync.Mutex
}

// NewClipboardSink builds a clipboard-mediated sink. readArgv prints the
// clipboard to stdout; writeArgv reads the new contents from stdin;
// deleteArgv emits one backward delete per invocation; pasteKey is the
// compositor shortcut spec (e.g. "CTRL,V").
func NewClipboardSink(readArgv, writeArgv, deleteArgv []string, pasteKey string, betweenKeys time.Duration) *ClipboardSink {
	return &ClipboardSink{
		readArgv:     readArgv,
		writeArgv:    writeArgv,
		deleteArgv:   deleteArgv,
		pasteKey:     pasteKey,
		betweenKeys:  betweenKeys,
		settleDelay:  50 * time.Millisecond,
		sendShortcut: hypr.SendShortcut,
		activeWindow: func(ctx context.Context) (string, error) {
			window, err := hypr.ActiveWindowWithRetry(ctx, 5, 10*time.Millisecond)
			if err != nil {
				return "", err
			}
			return window.Address, nil
		},
	}
}

// Delete emits count backward deletes.
func (s *ClipboardSink) Delete(ctx context.Context, count int) error {
	for i := 0; i < count; i++ {
		if err := runCommandWithInput(ctx, s.deleteArgv, ""); err != nil {
			return fmt.Errorf("delete %d/%d: %w", i+1, count, err)
		}
		if i < count-1 {
			time.Sleep(s.betweenKeys)
		}
	}
	return nil
}

// Insert pastes text via the clipboard and restores the previous clipboard
// contents afterwards.
func (s *ClipboardSink) Insert(ctx context.Context, text string) error {
	if text == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	saved, savedOK := s.readClipboard(ctx)

	if err := runCommandWithInput(ctx, s.writeArgv, text); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}

	if err := s.dispatchPaste(ctx); err != nil {
		// The replacement text is on the clipboard; leave it there so the
		// user can paste manually instead of restoring over it.
		return fmt.Errorf("dispatch paste: %w", err)
	}

	// Let the application consume the paste before the clipboard changes.
	time.Sleep(s.settleDelay)

	if savedOK {
		if err := runCommandWithInput(ctx, s.writeArgv, saved); err != nil {
			return fmt.Errorf("restore clipboard: %w", err)
		}
	}
	return nil
}

// readClipboard returns the current clipboard text; an unreadable or empty
// clipboard simply skips the restore step.
func (s *ClipboardSink) readClipboard(ctx context.Context) (string, bool) {
	saved, err := runCommandOutput(ctx, s.readArgv)
	if err != nil || saved == "" {
		return "", false
	}
	return saved, true
}

// dispatchPaste targets the paste shortcut at the focused window.
func (s *ClipboardSink) dispatchPaste(ctx context.Context) error {
	address, err := s.activeWindow(ctx)
	if err != nil {
		return err
	}
	return s.sendShortcut(ctx, fmt.Sprintf("%s,address:%s", s.pasteKey, address))
}
