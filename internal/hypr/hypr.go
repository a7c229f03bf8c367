// Package hypr talks to the Hyprland compositor: focused-window queries,
// active keyboard layout, and shortcut dispatch for clipboard-mediated
// replacement.
package hypr

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

func runHyprctl(ctx context.Context, args ...string) error {
	_, err := runHyprctlOutput(ctx, args...)
	return err
}

func runHyprctlOutput(ctx context.Context, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "hyprctl", args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		trimmed := strings.TrimSpace(string(out))
		if trimmed == "" {
			return nil, fmt.Errorf("hyprctl %v failed: %w", args, err)
		}
		return nil, fmt.Errorf("hyprctl %v failed: %w (%s)", args, err, trimmed)
	}
	return out, nil
}

// runHyprctlJSON executes a JSON-returning hyprctl subcommand.
func runHyprctlJSON(ctx context.Context, target string) ([]byte, error) {
	return runHyprctlOutput(ctx, "-j", target)
}

// SendShortcut sends a literal hyprctl sendshortcut payload.
func SendShortcut(ctx context.Context, shortcut string) error {
	shortcut = strings.TrimSpace(shortcut)
	if shortcut == "" {
		return fmt.Errorf("sendshortcut requires a non-empty payload")
	}
	return runHyprctl(ctx, "--quiet", "dispatch", "sendshortcut", shortcut)
}
