package hypr

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ActiveWindow identifies the focused window for exclusion filtering and
// paste-dispatch targeting.
type ActiveWindow struct {
	Address      string `json:"address"`
	Class        string `json:"class"`
	InitialClass string `json:"initialClass"`
}

type keyboard struct {
	Name         string `json:"name"`
	ActiveKeymap string `json:"active_keymap"`
	Main         bool   `json:"main"`
}

type devices struct {
	Keyboards []keyboard `json:"keyboards"`
}

// QueryActiveWindow fetches and validates the active-window contract from hyprctl.
func QueryActiveWindow(ctx context.Context) (ActiveWindow, error) {
	output, err := runHyprctlJSON(ctx, "activewindow")
	if err != nil {
		return ActiveWindow{}, err
	}

	var window ActiveWindow
	if err := json.Unmarshal(output, &window); err != nil {
		return ActiveWindow{}, fmt.Errorf("decode hyprctl activewindow json: %w", err)
	}
	window.Address = strings.TrimSpace(window.Address)
	window.Class = strings.TrimSpace(window.Class)
	window.InitialClass = strings.TrimSpace(window.InitialClass)
	if window.Address == "" {
		return ActiveWindow{}, fmt.Errorf("hyprctl activewindow returned empty address")
	}
	return window, nil
}

// ActiveWindowWithRetry retries the active-window query across focus churn.
func ActiveWindowWithRetry(ctx context.Context, attempts int, delay time.Duration) (ActiveWindow, error) {
	if attempts <= 0 {
		attempts = 1
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		window, err := QueryActiveWindow(ctx)
		if err == nil {
			return window, nil
		}
		lastErr = err
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ActiveWindow{}, ctx.Err()
		case <-time.After(delay):
		}
	}
	return ActiveWindow{}, fmt.Errorf("resolve active window: %w", lastErr)
}

// QueryActiveKeymap returns the active keymap name of the main keyboard
// (or the first keyboard when none is marked main).
func QueryActiveKeymap(ctx context.Context) (string, error) {
	output, err := runHyprctlJSON(ctx, "devices")
	if err != nil {
		return "", err
	}

	var parsed devices
	if err := json.Unmarshal(output, &parsed); err != nil {
		return "", fmt.Errorf("decode hyprctl devices json: %w", err)
	}
	if len(parsed.Keyboards) == 0 {
		return "", fmt.Errorf("hyprctl devices returned no keyboards")
	}
	for _, kb := range parsed.Keyboards {
		if kb.Main {
			return strings.TrimSpace(kb.ActiveKeymap), nil
		}
	}
	return strings.TrimSpace(parsed.Keyboards[0].ActiveKeymap), nil
}
