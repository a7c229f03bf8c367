// Package daemon assembles the correction runtime and serves its control
// socket.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"relayout/internal/config"
	"relayout/internal/detector"
	"relayout/internal/dict"
	"relayout/internal/fsm"
	"relayout/internal/indicator"
	"relayout/internal/ipc"
	"relayout/internal/output"
	"relayout/internal/pipeline"
	"relayout/internal/replacer"
	"relayout/internal/source"
)

// Daemon owns every long-lived component of a running corrector: the
// dictionary, the replacement engine, the layout poller, the key event
// source, and the pipeline that ties them together.
type Daemon struct {
	logger   *slog.Logger
	cfg      config.Config
	words    *dict.Manager
	engine   *replacer.Engine
	pipe     *pipeline.Pipeline
	source   source.Source
	poller   *source.LayoutPoller
	notifier indicator.Notifier

	startedAt time.Time
}

// New wires a daemon from config. It does not start any goroutines.
func New(cfg config.Config, logger *slog.Logger) (*Daemon, error) {
	dictDir, err := resolveDictionaryDir(cfg.Dictionary.Dir)
	if err != nil {
		return nil, err
	}

	words := dict.NewManager(
		dictDir,
		filepath.Join(dictDir, "user_words.json"),
		cfg.AutoLearnThreshold,
		logger,
	)

	sink, err := buildSink(cfg)
	if err != nil {
		return nil, err
	}

	engine := replacer.New(sink, replacer.Delays{
		Pre:       time.Duration(cfg.Delays.PreMS) * time.Millisecond,
		PreInsert: time.Duration(cfg.Delays.BetweenKeysMS) * time.Millisecond,
		Post:      time.Duration(cfg.Delays.PostMS) * time.Millisecond,
	}, logger)

	notifier := indicator.NewDesktop(cfg.Notify, logger)

	det := detector.New(detector.Options{MinWordLength: cfg.MinWordLength}, words)
	pipe := pipeline.New(det, engine, notifier, pipeline.Options{
		ExcludedWindows: cfg.ExcludedWindows,
		AutoCorrect:     cfg.AutoCorrect,
	}, logger)

	poller := source.NewLayoutPoller(
		time.Duration(cfg.Keyboard.LayoutPollMS)*time.Millisecond,
		logger,
	)

	return &Daemon{
		logger:    logger,
		cfg:       cfg,
		words:     words,
		engine:    engine,
		pipe:      pipe,
		source:    source.NewEvdevSource(cfg.Keyboard.Device, poller.Layout, logger),
		poller:    poller,
		notifier:  notifier,
		startedAt: time.Now(),
	}, nil
}

// Run starts the capture and processing contexts and blocks until ctx is
// cancelled or the event source fails.
func (d *Daemon) Run(ctx context.Context) error {
	events, err := d.source.Start(ctx)
	if err != nil {
		return fmt.Errorf("start key event source: %w", err)
	}

	go d.poller.Run(ctx)
	go func() {
		if err := d.words.Watch(ctx); err != nil && d.logger != nil {
			d.logger.Warn("dictionary watch stopped", "error", err.Error())
		}
	}()

	if d.logger != nil {
		d.logger.Info("daemon started",
			"auto_correct", d.pipe.Auto(),
			"excluded_windows", len(d.cfg.ExcludedWindows),
			"output_mode", d.cfg.Output.Mode,
		)
	}

	err = d.pipe.Run(ctx, events)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Handle serves IPC commands against the running daemon.
func (d *Daemon) Handle(ctx context.Context, req ipc.Request) ipc.Response {
	switch req.Command {
	case "status":
		return d.handleStatus()
	case "toggle":
		return d.handleToggle(ctx)
	case "force":
		return d.handleForce(ctx)
	case "undo":
		return d.handleUndo(ctx)
	case "add-word":
		return d.handleAddWord(req)
	case "remove-word":
		return d.handleRemoveWord(req)
	case "words":
		return d.handleWords(req)
	case "stats":
		return d.handleStats()
	default:
		return ipc.Response{
			OK:    false,
			State: d.stateString(),
			Error: fmt.Sprintf("unknown command: %s", req.Command),
		}
	}
}

func (d *Daemon) handleStatus() ipc.Response {
	mode := "paused"
	if d.pipe.Auto() {
		mode = "auto"
	}
	return ipc.Response{
		OK:      true,
		State:   d.stateString(),
		Active:  d.pipe.Auto(),
		Message: fmt.Sprintf("%s, up %s", mode, time.Since(d.startedAt).Round(time.Second)),
	}
}

func (d *Daemon) handleToggle(ctx context.Context) ipc.Response {
	enabled := d.pipe.Toggle()
	if d.logger != nil {
		d.logger.Info("auto-correct toggled", "enabled", enabled)
	}
	d.notifier.AutoCorrectToggled(ctx, enabled)

	message := "auto-correct paused"
	if enabled {
		message = "auto-correct resumed"
	}
	return ipc.Response{OK: true, State: d.stateString(), Active: enabled, Message: message}
}

func (d *Daemon) handleForce(ctx context.Context) ipc.Response {
	original, corrected, ok := d.pipe.Force(ctx)
	if !ok {
		return ipc.Response{OK: false, State: d.stateString(), Error: "nothing to remap"}
	}
	if d.logger != nil {
		d.logger.Info("forced remap", "from", original, "to", corrected)
	}
	d.notifier.CorrectionApplied(ctx, original, corrected)
	return ipc.Response{
		OK:      true,
		State:   d.stateString(),
		Active:  d.pipe.Auto(),
		Message: fmt.Sprintf("%s → %s", original, corrected),
	}
}

func (d *Daemon) handleUndo(ctx context.Context) ipc.Response {
	if !d.engine.UndoLast(ctx) {
		return ipc.Response{OK: false, State: d.stateString(), Error: "nothing to undo"}
	}
	if d.logger != nil {
		d.logger.Info("correction undone")
	}
	d.notifier.CorrectionUndone(ctx, "")
	return ipc.Response{OK: true, State: d.stateString(), Active: d.pipe.Auto(), Message: "correction undone"}
}

func (d *Daemon) handleAddWord(req ipc.Request) ipc.Response {
	lang, err := dict.ParseLanguage(req.Language)
	if err != nil {
		return ipc.Response{OK: false, State: d.stateString(), Error: err.Error()}
	}
	if err := d.words.Add(req.Word, lang); err != nil {
		return ipc.Response{OK: false, State: d.stateString(), Error: err.Error()}
	}
	return ipc.Response{OK: true, State: d.stateString(), Message: fmt.Sprintf("added %q (%s)", req.Word, lang)}
}

func (d *Daemon) handleRemoveWord(req ipc.Request) ipc.Response {
	lang, err := dict.ParseLanguage(req.Language)
	if err != nil {
		return ipc.Response{OK: false, State: d.stateString(), Error: err.Error()}
	}
	if err := d.words.Remove(req.Word, lang); err != nil {
		return ipc.Response{OK: false, State: d.stateString(), Error: err.Error()}
	}
	return ipc.Response{OK: true, State: d.stateString(), Message: fmt.Sprintf("removed %q (%s)", req.Word, lang)}
}

func (d *Daemon) handleWords(req ipc.Request) ipc.Response {
	var words []string
	if strings.TrimSpace(req.Language) != "" {
		lang, err := dict.ParseLanguage(req.Language)
		if err != nil {
			return ipc.Response{OK: false, State: d.stateString(), Error: err.Error()}
		}
		words = d.words.UserWords(lang)
	} else {
		for _, w := range d.words.UserWords(dict.LangRU) {
			words = append(words, "ru:"+w)
		}
		for _, w := range d.words.UserWords(dict.LangEN) {
			words = append(words, "en:"+w)
		}
		sort.Strings(words)
	}
	return ipc.Response{OK: true, State: d.stateString(), Words: words}
}

func (d *Daemon) handleStats() ipc.Response {
	stats := d.words.Stats()
	return ipc.Response{
		OK:    true,
		State: d.stateString(),
		Stats: map[string]int{
			"ru_base":    stats.RuBase,
			"en_base":    stats.EnBase,
			"ru_user":    stats.RuUser,
			"en_user":    stats.EnUser,
			"learning":   stats.Learning,
			"undo_depth": d.engine.UndoDepth(),
		},
	}
}

func (d *Daemon) stateString() string {
	if d.engine.State() == fsm.StateReplacing {
		return "replacing"
	}
	return "idle"
}

// resolveDictionaryDir applies XDG data-dir fallback rules.
func resolveDictionaryDir(explicit string) (string, error) {
	if strings.TrimSpace(explicit) != "" {
		return explicit, nil
	}
	if xdg := strings.TrimSpace(os.Getenv("XDG_DATA_HOME")); xdg != "" {
		return filepath.Join(xdg, "relayout"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve dictionary dir: %w", err)
	}
	return filepath.Join(home, ".local", "share", "relayout"), nil
}

// buildSink selects the output sink for the configured mode.
func buildSink(cfg config.Config) (replacer.Sink, error) {
	betweenKeys := time.Duration(cfg.Delays.BetweenKeysMS) * time.Millisecond

	switch cfg.Output.Mode {
	case "wtype":
		return output.NewTyperSink(cfg.Output.TypeCmd.Argv, cfg.Output.DeleteCmd.Argv, betweenKeys), nil
	case "clipboard":
		return output.NewClipboardSink(
			cfg.Output.ClipboardRead.Argv,
			cfg.Output.ClipboardWrite.Argv,
			cfg.Output.DeleteCmd.Argv,
			cfg.Output.PasteShortcut,
			betweenKeys,
		), nil
	default:
		return nil, fmt.Errorf("unknown output mode %q", cfg.Output.Mode)
	}
}
