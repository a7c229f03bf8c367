// Package doctor runs runtime readiness diagnostics for config, tools, input, and DBus.
package doctor

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/godbus/dbus/v5"

	"relayout/internal/config"
	"relayout/internal/source"
)

// Check is one doctor assertion result.
type Check struct {
	Name    string
	Pass    bool
	Message string
}

// Report is the full doctor output contract.
type Report struct {
	Checks []Check
}

// OK returns true when all checks pass.
func (r Report) OK() bool {
	for _, check := range r.Checks {
		if !check.Pass {
			return false
		}
	}
	return true
}

// String renders the report as user-facing text output.
func (r Report) String() string {
	var b strings.Builder
	for _, check := range r.Checks {
		status := "OK"
		if !check.Pass {
			status = "FAIL"
		}
		b.WriteString(fmt.Sprintf("[%s] %s: %s\n", status, check.Name, check.Message))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// Run executes environment/config/runtime checks for a loaded config.
func Run(cfg config.Loaded) Report {
	checks := []Check{}

	checks = append(checks, Check{
		Name:    "config",
		Pass:    true,
		Message: fmt.Sprintf("loaded %q", cfg.Path),
	})

	checks = append(checks, checkEnv("XDG_SESSION_TYPE", func(v string) bool {
		return strings.EqualFold(strings.TrimSpace(v), "wayland")
	}, "session type is wayland", "expected XDG_SESSION_TYPE=wayland"))

	checks = append(checks, checkEnv("HYPRLAND_INSTANCE_SIGNATURE", func(v string) bool {
		return strings.TrimSpace(v) != ""
	}, "Hyprland session detected", "HYPRLAND_INSTANCE_SIGNATURE is empty"))

	checks = append(checks, checkBinary("hyprctl", "layout and window queries require hyprctl"))

	switch cfg.Config.Output.Mode {
	case "clipboard":
		checks = append(checks, checkCommand(cfg.Config.Output.ClipboardRead.Argv, "output.clipboard_read_cmd"))
		checks = append(checks, checkCommand(cfg.Config.Output.ClipboardWrite.Argv, "output.clipboard_write_cmd"))
		checks = append(checks, checkCommand(cfg.Config.Output.DeleteCmd.Argv, "output.delete_cmd"))
	default:
		checks = append(checks, checkCommand(cfg.Config.Output.TypeCmd.Argv, "output.type_cmd"))
		checks = append(checks, checkCommand(cfg.Config.Output.DeleteCmd.Argv, "output.delete_cmd"))
	}

	checks = append(checks, checkDictionaries(cfg.Config.Dictionary.Dir))
	checks = append(checks, checkInputDevice(cfg.Config.Keyboard.Device))

	if cfg.Config.Notify {
		checks = append(checks, checkNotificationBus())
	}

	return Report{Checks: checks}
}

// checkEnv validates an environment variable through a caller-supplied predicate.
func checkEnv(name string, predicate func(string) bool, okMsg, failMsg string) Check {
	value := os.Getenv(name)
	if predicate(value) {
		return Check{Name: name, Pass: true, Message: okMsg}
	}
	return Check{Name: name, Pass: false, Message: failMsg}
}

// checkCommand validates that argv contains a runnable command.
func checkCommand(argv []string, name string) Check {
	if len(argv) == 0 {
		return Check{Name: name, Pass: false, Message: "command is empty"}
	}
	return checkBinary(argv[0], fmt.Sprintf("%s command is available", name))
}

// checkBinary validates that a binary exists in PATH.
func checkBinary(bin string, okMsg string) Check {
	path, err := exec.LookPath(bin)
	if err != nil {
		return Check{Name: bin, Pass: false, Message: fmt.Sprintf("binary not found in PATH: %s", bin)}
	}
	return Check{Name: bin, Pass: true, Message: fmt.Sprintf("found at %s (%s)", path, okMsg)}
}

// checkDictionaries verifies the configured base dictionary files. An
// empty dir means the embedded seed lists, which always exist.
func checkDictionaries(dir string) Check {
	if dir == "" {
		return Check{Name: "dictionary", Pass: true, Message: "using embedded seed word lists"}
	}

	var missing []string
	for _, name := range []string{"ru_words.txt", "en_words.txt"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return Check{
			Name:    "dictionary",
			Pass:    false,
			Message: fmt.Sprintf("missing in %s: %s", dir, strings.Join(missing, ", ")),
		}
	}
	return Check{Name: "dictionary", Pass: true, Message: fmt.Sprintf("word lists present in %s", dir)}
}

// checkInputDevice resolves the keyboard device and verifies it is readable.
func checkInputDevice(device string) Check {
	if device == "" {
		detected, err := source.FindKeyboardDevice()
		if err != nil {
			return Check{Name: "keyboard.device", Pass: false, Message: err.Error()}
		}
		device = detected
	}

	f, err := os.Open(device)
	if err != nil {
		if os.IsPermission(err) {
			return Check{
				Name:    "keyboard.device",
				Pass:    false,
				Message: fmt.Sprintf("%s is not readable; add the user to the input group", device),
			}
		}
		return Check{Name: "keyboard.device", Pass: false, Message: err.Error()}
	}
	_ = f.Close()

	return Check{Name: "keyboard.device", Pass: true, Message: fmt.Sprintf("readable at %s", device)}
}

// checkNotificationBus verifies the session bus exposes a notification server.
func checkNotificationBus() Check {
	conn, err := dbus.SessionBus()
	if err != nil {
		return Check{Name: "notifications", Pass: false, Message: fmt.Sprintf("session bus unavailable: %v", err)}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	var owner string
	obj := conn.Object("org.freedesktop.DBus", "/org/freedesktop/DBus")
	call := obj.CallWithContext(ctx, "org.freedesktop.DBus.GetNameOwner", 0, "org.freedesktop.Notifications")
	if call.Err != nil {
		return Check{Name: "notifications", Pass: false, Message: "no notification server on the session bus"}
	}
	if err := call.Store(&owner); err != nil {
		return Check{Name: "notifications", Pass: false, Message: fmt.Sprintf("unexpected reply: %v", err)}
	}

	return Check{Name: "notifications", Pass: true, Message: fmt.Sprintf("notification server owned by %s", owner)}
}
