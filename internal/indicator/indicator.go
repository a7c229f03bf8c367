// Package indicator surfaces correction events as desktop notifications.
package indicator

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/godbus/dbus/v5"
)

const (
	notifyService   = "org.freedesktop.Notifications"
	notifyPath      = dbus.ObjectPath("/org/freedesktop/Notifications")
	notifyInterface = "org.freedesktop.Notifications"

	notifyTimeoutMS = 2500
	dispatchTimeout = 400 * time.Millisecond
)

// Notifier is the daemon-facing notification contract.
type Notifier interface {
	CorrectionApplied(ctx context.Context, original, corrected string)
	CorrectionUndone(ctx context.Context, restored string)
	AutoCorrectToggled(ctx context.Context, enabled bool)
}

// Desktop sends freedesktop notifications over the session bus.
// Each new notification replaces the previous one so rapid corrections
// do not stack up in the notification daemon.
type Desktop struct {
	enabled  bool
	appName  string
	logger   *slog.Logger
	messages messages

	mu     sync.Mutex
	lastID uint32

	connOnce sync.Once
	conn     *dbus.Conn
	connErr  error

	send func(ctx context.Context, replaceID uint32, summary, body string) (uint32, error)
}

// NewDesktop creates a notifier. When enabled is false every method is a no-op.
func NewDesktop(enabled bool, logger *slog.Logger) *Desktop {
	d := &Desktop{
		enabled:  enabled,
		appName:  "relayout",
		logger:   logger,
		messages: notificationMessagesFromEnv(),
	}
	d.send = d.sendDBus
	return d
}

// CorrectionApplied announces a replaced word.
func (d *Desktop) CorrectionApplied(ctx context.Context, original, corrected string) {
	d.dispatch(ctx, d.messages.corrected, fmt.Sprintf("%s → %s", original, corrected))
}

// CorrectionUndone announces that the previous replacement was reverted.
func (d *Desktop) CorrectionUndone(ctx context.Context, restored string) {
	d.dispatch(ctx, d.messages.undone, restored)
}

// AutoCorrectToggled announces an auto-mode state change.
func (d *Desktop) AutoCorrectToggled(ctx context.Context, enabled bool) {
	summary := d.messages.paused
	if enabled {
		summary = d.messages.resumed
	}
	d.dispatch(ctx, summary, "")
}

func (d *Desktop) dispatch(ctx context.Context, summary, body string) {
	if !d.enabled {
		return
	}

	runCtx, cancel := context.WithTimeout(ctx, dispatchTimeout)
	defer cancel()

	d.mu.Lock()
	defer d.mu.Unlock()

	id, err := d.send(runCtx, d.lastID, summary, body)
	if err != nil {
		d.log("notification dispatch failed", err)
		return
	}
	d.lastID = id
}

func (d *Desktop) bus() (*dbus.Conn, error) {
	d.connOnce.Do(func() {
		d.conn, d.connErr = dbus.SessionBus()
	})
	return d.conn, d.connErr
}

func (d *Desktop) sendDBus(ctx context.Context, replaceID uint32, summary, body string) (uint32, error) {
	conn, err := d.bus()
	if err != nil {
		return 0, fmt.Errorf("session bus: %w", err)
	}

	obj := conn.Object(notifyService, notifyPath)
	call := obj.CallWithContext(ctx, notifyInterface+".Notify", 0,
		d.appName,
		replaceID,
		"",
		summary,
		body,
		[]string{},
		map[string]dbus.Variant{},
		int32(notifyTimeoutMS),
	)
	if call.Err != nil {
		return 0, fmt.Errorf("notify call: %w", call.Err)
	}

	var id uint32
	if err := call.Store(&id); err != nil {
		return 0, fmt.Errorf("notify reply: %w", err)
	}
	return id, nil
}

func (d *Desktop) log(message string, err error) {
	if d.logger == nil || err == nil {
		return
	}
	d.logger.Debug(message, "error", err.Error())
}
