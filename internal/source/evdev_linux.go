//go:build linux

package source

import (
	"context"
	"encoding/binary"
	"fmt"
	"log/slog"

	"golang.org/x/sys/unix"

	"relayout/internal/keys"
)

// inputEvent matches the Linux input_event struct (64-bit layout).
type inputEvent struct {
	Sec   int64
	Usec  int64
	Type  uint16
	Code  uint16
	Value int32
}

const (
	evKey      = 1
	keyRelease = 0
	keyPress   = 1
	keyRepeat  = 2

	inputEventSize = 24
	eventQueueCap  = 256
)

// LayoutFunc reports the currently active layout of the focused input.
type LayoutFunc func() keys.Layout

// EvdevSource reads key events from a /dev/input event device. The read
// loop does only the minimum per event (decode, table lookup, enqueue);
// everything else happens on the consumer side of the channel.
type EvdevSource struct {
	device string
	layout LayoutFunc
	logger *slog.Logger
}

// NewEvdevSource builds a source over the given device path; an empty path
// picks the first readable keyboard device.
func NewEvdevSource(device string, layout LayoutFunc, logger *slog.Logger) *EvdevSource {
	if layout == nil {
		layout = func() keys.Layout { return keys.LayoutPrimary }
	}
	return &EvdevSource{device: device, layout: layout, logger: logger}
}

func (s *EvdevSource) Start(ctx context.Context) (<-chan KeyEvent, error) {
	device := s.device
	if device == "" {
		found, err := FindKeyboardDevice()
		if err != nil {
			return nil, err
		}
		device = found
	}

	fd, err := unix.Open(device, unix.O_RDONLY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("open input device %s: %w", device, err)
	}

	if s.logger != nil {
		s.logger.Info("keyboard capture started", "device", device)
	}

	out := make(chan KeyEvent, eventQueueCap)
	go s.readLoop(ctx, fd, out)
	return out, nil
}

// readLoop is the capture context: it polls the device, decodes events, and
// enqueues presses. It must stay fast and never block on downstream work;
// the buffered channel absorbs bursts and a full queue drops the event
// rather than stalling the device read.
func (s *EvdevSource) readLoop(ctx context.Context, fd int, out chan<- KeyEvent) {
	defer close(out)
	defer unix.Close(fd)

	shift := false
	gap := false
	buf := make([]byte, inputEventSize*64)

	for {
		if ctx.Err() != nil {
			return
		}

		pollFds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		n, err := unix.Poll(pollFds, 200)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			s.logWarn("poll input device", err)
			return
		}
		if n == 0 {
			continue
		}

		read, err := unix.Read(fd, buf)
		if err != nil {
			if err == unix.EAGAIN || err == unix.EINTR {
				continue
			}
			s.logWarn("read input device", err)
			return
		}

		for offset := 0; offset+inputEventSize <= read; offset += inputEventSize {
			event := decodeInputEvent(buf[offset : offset+inputEventSize])
			if event.Type != evKey {
				continue
			}

			if event.Code == codeLeftShift || event.Code == codeRightShift {
				shift = event.Value != keyRelease
				// fall through: a shift press still resets the word buffer
			}
			if event.Value != keyPress && event.Value != keyRepeat {
				continue
			}

			name, ok := keycodeNames[event.Code]
			if !ok {
				continue
			}

			select {
			case out <- KeyEvent{Key: name, Shift: shift, Layout: s.layout(), Gap: gap}:
				gap = false
			default:
				// Queue full: dropping beats stalling keyboard delivery.
				// The next delivered event carries the gap so the consumer
				// can discard its now-incomplete word buffer.
				gap = true
				if s.logger != nil {
					s.logger.Debug("event queue full, dropping key", "key", string(name))
				}
			}
		}
	}
}

func decodeInputEvent(raw []byte) inputEvent {
	return inputEvent{
		Type:  binary.LittleEndian.Uint16(raw[16:18]),
		Code:  binary.LittleEndian.Uint16(raw[18:20]),
		Value: int32(binary.LittleEndian.Uint32(raw[20:24])),
	}
}

func (s *EvdevSource) logWarn(message string, err error) {
	if s.logger == nil {
		return
	}
	s.logger.Warn(message, "error", err.Error())
}
