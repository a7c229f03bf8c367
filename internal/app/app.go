package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"time"

	"relayout/internal/cli"
	"relayout/internal/config"
	"relayout/internal/daemon"
	"relayout/internal/doctor"
	"relayout/internal/ipc"
	"relayout/internal/logging"
	"relayout/internal/version"
)

type Runner struct {
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
}

func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	r := Runner{Stdout: stdout, Stderr: stderr}
	return r.Execute(ctx, args)
}

func (r Runner) Execute(ctx context.Context, args []string) int {
	parsed, err := cli.Parse(args)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n\n", err)
		fmt.Fprint(r.Stderr, cli.HelpText("relayout"))
		return 2
	}

	if parsed.ShowHelp {
		fmt.Fprint(r.Stdout, cli.HelpText("relayout"))
		return 0
	}

	if parsed.Command == cli.CommandVersion {
		fmt.Fprintln(r.Stdout, version.String())
		return 0
	}

	logRuntime, err := logging.New()
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: setup logging: %v\n", err)
		return 1
	}
	defer func() { _ = logRuntime.Close() }()

	logger := r.Logger
	if logger == nil {
		logger = logRuntime.Logger
	}

	cfgLoaded, err := config.Load(parsed.ConfigPath)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		logger.Error("load config failed", "error", err.Error())
		return 1
	}
	for _, w := range cfgLoaded.Warnings {
		msg := w.Message
		if w.Line > 0 {
			msg = fmt.Sprintf("line %d: %s", w.Line, w.Message)
		}
		fmt.Fprintf(r.Stderr, "warning: %s\n", msg)
		logger.Warn("config warning", "line", w.Line, "message", w.Message)
	}

	logger.Info("command start",
		"command", parsed.Command,
		"config", cfgLoaded.Path,
		"log", logRuntime.Path,
	)

	switch parsed.Command {
	case cli.CommandDoctor:
		report := doctor.Run(cfgLoaded)
		fmt.Fprintln(r.Stdout, report.String())
		if report.OK() {
			return 0
		}
		return 1
	case cli.CommandRun:
		return r.commandRun(ctx, cfgLoaded.Config, logger)
	case cli.CommandStatus:
		return r.commandStatus(ctx)
	case cli.CommandToggle, cli.CommandForce, cli.CommandUndo:
		return r.forwardOrFail(ctx, ipc.Request{Command: string(parsed.Command)})
	case cli.CommandAddWord, cli.CommandRemoveWord:
		return r.forwardOrFail(ctx, ipc.Request{
			Command:  string(parsed.Command),
			Word:     parsed.Word,
			Language: parsed.Language,
		})
	case cli.CommandWords:
		return r.commandWords(ctx, parsed.Language)
	case cli.CommandStats:
		return r.commandStats(ctx)
	default:
		fmt.Fprintf(r.Stderr, "error: unsupported command %q\n", parsed.Command)
		return 2
	}
}

// commandRun owns the daemon lifecycle: socket acquisition, IPC serving,
// and the capture/processing loop.
func (r Runner) commandRun(ctx context.Context, cfg config.Config, logger *slog.Logger) int {
	socketPath, err := ipc.RuntimeSocketPath()
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}

	listener, err := ipc.Acquire(ctx, socketPath, 180*time.Millisecond, 8)
	if err != nil {
		if errors.Is(err, ipc.ErrAlreadyRunning) {
			fmt.Fprintln(r.Stderr, "error: relayout daemon already running")
			return 1
		}
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}
	defer func() {
		_ = listener.Close()
		_ = os.Remove(socketPath)
	}()

	d, err := daemon.New(cfg, logger)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		logger.Error("daemon setup failed", "error", err.Error())
		return 1
	}

	serverCtx, serverCancel := context.WithCancel(ctx)
	defer serverCancel()

	serverErrCh := make(chan error, 1)
	go func() {
		serverErrCh <- ipc.Serve(serverCtx, listener, d)
	}()

	runErr := d.Run(ctx)
	serverCancel()
	if serverErr := <-serverErrCh; serverErr != nil {
		fmt.Fprintf(r.Stderr, "error: ipc server failed: %v\n", serverErr)
		return 1
	}

	if runErr != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", runErr)
		logger.Error("daemon stopped", "error", runErr.Error())
		return 1
	}

	logger.Info("daemon stopped")
	return 0
}

func (r Runner) commandStatus(ctx context.Context) int {
	socketPath, err := ipc.RuntimeSocketPath()
	if err != nil {
		fmt.Fprintln(r.Stdout, "stopped")
		return 0
	}

	resp, handled, err := tryForward(ctx, socketPath, ipc.Request{Command: "status"})
	if handled {
		if err != nil {
			fmt.Fprintf(r.Stderr, "error: %v\n", err)
			return 1
		}
		state := resp.State
		if state == "" {
			state = "idle"
		}
		mode := "paused"
		if resp.Active {
			mode = "auto"
		}
		fmt.Fprintf(r.Stdout, "%s (%s)\n", state, mode)
		return 0
	}

	fmt.Fprintln(r.Stdout, "stopped")
	return 0
}

func (r Runner) commandWords(ctx context.Context, language string) int {
	socketPath, err := ipc.RuntimeSocketPath()
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}

	resp, handled, err := tryForward(ctx, socketPath, ipc.Request{Command: "words", Language: language})
	if !handled {
		fmt.Fprintln(r.Stderr, "error: relayout daemon is not running")
		return 1
	}
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}

	for _, word := range resp.Words {
		fmt.Fprintln(r.Stdout, word)
	}
	return 0
}

func (r Runner) commandStats(ctx context.Context) int {
	socketPath, err := ipc.RuntimeSocketPath()
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}

	resp, handled, err := tryForward(ctx, socketPath, ipc.Request{Command: "stats"})
	if !handled {
		fmt.Fprintln(r.Stderr, "error: relayout daemon is not running")
		return 1
	}
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}

	keys := make([]string, 0, len(resp.Stats))
	for key := range resp.Stats {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Fprintf(r.Stdout, "%s=%d\n", key, resp.Stats[key])
	}
	return 0
}

func (r Runner) forwardOrFail(ctx context.Context, req ipc.Request) int {
	socketPath, err := ipc.RuntimeSocketPath()
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}

	resp, handled, err := tryForward(ctx, socketPath, req)
	if !handled {
		fmt.Fprintln(r.Stderr, "error: relayout daemon is not running")
		return 1
	}
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}
	if resp.Message != "" {
		fmt.Fprintln(r.Stdout, resp.Message)
	}
	return 0
}

func tryForward(ctx context.Context, socketPath string, req ipc.Request) (ipc.Response, bool, error) {
	resp, err := ipc.Send(ctx, socketPath, req, 220*time.Millisecond)
	if err == nil {
		if resp.OK {
			return resp, true, nil
		}
		return resp, true, errors.New(resp.Error)
	}

	if ipc.IsSocketMissing(err) || ipc.IsConnectionRefused(err) {
		return ipc.Response{}, false, nil
	}

	return ipc.Response{}, true, fmt.Errorf("forward command %q: %w", req.Command, err)
}
