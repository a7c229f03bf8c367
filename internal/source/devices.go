package source

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FindKeyboardDevice scans /proc/bus/input/devices for the first event
// handler with key capabilities whose device node is readable.
func FindKeyboardDevice() (string, error) {
	devices, err := listKeyboardDevices()
	if err != nil {
		return "", err
	}
	for _, device := range devices {
		f, err := os.OpenFile(device, os.O_RDONLY, 0)
		if err == nil {
			f.Close()
			return device, nil
		}
	}
	if len(devices) == 0 {
		return "", fmt.Errorf("no keyboard devices found")
	}
	return "", fmt.Errorf("no readable keyboard device (join the input group or run as root)")
}

func listKeyboardDevices() ([]string, error) {
	f, err := os.Open("/proc/bus/input/devices")
	if err != nil {
		return nil, fmt.Errorf("enumerate input devices: %w", err)
	}
	defer f.Close()

	var devices []string
	var currentHandler string
	isKeyboard := false

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()

		if strings.HasPrefix(line, "H: Handlers=") {
			for _, part := range strings.Fields(line) {
				if strings.HasPrefix(part, "event") {
					currentHandler = "/dev/input/" + part
				}
			}
		}

		if strings.HasPrefix(line, "B: KEY=") && len(line) > 10 {
			isKeyboard = true
		}

		if line == "" {
			if isKeyboard && currentHandler != "" {
				devices = append(devices, currentHandler)
			}
			currentHandler = ""
			isKeyboard = false
		}
	}

	matches, _ := filepath.Glob("/dev/input/by-id/*-kbd")
	devices = append(devices, matches...)

	return devices, nil
}
