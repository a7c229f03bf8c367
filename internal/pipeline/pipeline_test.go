package pipeline

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"relayout/internal/detector"
	"relayout/internal/dict"
	"relayout/internal/keys"
	"relayout/internal/source"
)

type fakeDict struct {
	ru map[string]struct{}
	en map[string]struct{}
}

func newFakeDict(ruWords ...string) *fakeDict {
	fd := &fakeDict{ru: map[string]struct{}{}, en: map[string]struct{}{}}
	for _, w := range ruWords {
		fd.ru[w] = struct{}{}
	}
	return fd
}

func (f *fakeDict) Check(word string, lang dict.Language) bool {
	word = strings.ToLower(word)
	if lang == dict.LangRU {
		_, ok := f.ru[word]
		return ok
	}
	_, ok := f.en[word]
	return ok
}

func (f *fakeDict) Record(string, dict.Language) bool { return false }

type replaceCall struct {
	original  string
	corrected string
	boundary  rune
}

type fakeEngine struct {
	mu        sync.Mutex
	replacing bool
	calls     []replaceCall
	result    bool
}

func (e *fakeEngine) Replace(_ context.Context, original, corrected string, boundary rune) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls = append(e.calls, replaceCall{original, corrected, boundary})
	return e.result
}

func (e *fakeEngine) IsReplacing() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.replacing
}

func (e *fakeEngine) callCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.calls)
}

func (e *fakeEngine) call(i int) replaceCall {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.calls[i]
}

type fakeNotifier struct {
	mu    sync.Mutex
	calls []string
}

func (n *fakeNotifier) CorrectionApplied(_ context.Context, original, corrected string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, original+"→"+corrected)
}

func (n *fakeNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.calls)
}

func newTestPipeline(engine *fakeEngine, notifier Notifier, opts Options) *Pipeline {
	det := detector.New(detector.Options{MinWordLength: 2}, newFakeDict("привет"))
	p := New(det, engine, notifier, opts, nil)
	p.foreground = func(context.Context) (string, error) { return "", nil }
	return p
}

func typeWord(word string) []source.KeyEvent {
	events := make([]source.KeyEvent, 0, len(word))
	for _, ch := range word {
		key := keys.PhysicalKey(string(ch))
		if ch == ' ' {
			key = "space"
		}
		events = append(events, source.KeyEvent{Key: key, Layout: keys.LayoutPrimary})
	}
	return events
}

func drive(t *testing.T, p *Pipeline, events []source.KeyEvent) {
	t.Helper()

	ch := make(chan source.KeyEvent, len(events))
	for _, event := range events {
		ch <- event
	}
	close(ch)

	require.NoError(t, p.Run(context.Background(), ch))
}

func TestWrongLayoutWordIsReplacedAndAnnounced(t *testing.T) {
	engine := &fakeEngine{result: true}
	notifier := &fakeNotifier{}
	p := newTestPipeline(engine, notifier, Options{AutoCorrect: true})

	drive(t, p, typeWord("ghbdtn "))

	require.Eventually(t, func() bool { return engine.callCount() == 1 }, time.Second, 5*time.Millisecond)
	call := engine.call(0)
	require.Equal(t, "ghbdtn", call.original)
	require.Equal(t, "привет", call.corrected)
	require.Equal(t, ' ', call.boundary)

	require.Eventually(t, func() bool { return notifier.count() == 1 }, time.Second, 5*time.Millisecond)
}

func TestFailedReplacementIsNotAnnounced(t *testing.T) {
	engine := &fakeEngine{result: false}
	notifier := &fakeNotifier{}
	p := newTestPipeline(engine, notifier, Options{AutoCorrect: true})

	drive(t, p, typeWord("ghbdtn "))

	require.Eventually(t, func() bool { return engine.callCount() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	require.Zero(t, notifier.count())
}

func TestResetKeyClearsBuffer(t *testing.T) {
	engine := &fakeEngine{result: true}
	p := newTestPipeline(engine, nil, Options{AutoCorrect: true})

	events := typeWord("ghb")
	events = append(events, source.KeyEvent{Key: "backspace", Layout: keys.LayoutPrimary})
	events = append(events, typeWord("dtn ")...)
	drive(t, p, events)

	time.Sleep(20 * time.Millisecond)
	require.Zero(t, engine.callCount())
}

func TestGapEventDiscardsIncompleteWord(t *testing.T) {
	engine := &fakeEngine{result: true}
	p := newTestPipeline(engine, nil, Options{AutoCorrect: true})

	// The capture queue overflowed somewhere inside the word, so the event
	// after the gap must start a fresh buffer instead of completing "ghbdtn".
	events := typeWord("ghb")
	events = append(events, source.KeyEvent{Key: "d", Layout: keys.LayoutPrimary, Gap: true})
	events = append(events, typeWord("tn ")...)
	drive(t, p, events)

	time.Sleep(20 * time.Millisecond)
	require.Zero(t, engine.callCount())
}

func TestEventsDroppedWhileEngineReplacing(t *testing.T) {
	engine := &fakeEngine{result: true, replacing: true}
	p := newTestPipeline(engine, nil, Options{AutoCorrect: true})

	drive(t, p, typeWord("ghbdtn "))

	time.Sleep(20 * time.Millisecond)
	require.Zero(t, engine.callCount())
	require.Zero(t, p.det.Pending())
}

func TestPausedModeSkipsAnalysisButKeepsBuffer(t *testing.T) {
	engine := &fakeEngine{result: true}
	p := newTestPipeline(engine, nil, Options{AutoCorrect: true})

	require.False(t, p.Toggle())
	drive(t, p, typeWord("ghbdtn "))
	time.Sleep(20 * time.Millisecond)
	require.Zero(t, engine.callCount())

	drive(t, p, typeWord("ghbdtn"))
	original, corrected, ok := p.Force(context.Background())
	require.True(t, ok)
	require.Equal(t, "ghbdtn", original)
	require.Equal(t, "привет", corrected)
	require.Equal(t, 1, engine.callCount())
	require.Equal(t, rune(0), engine.call(0).boundary)

	require.True(t, p.Toggle())
}

func TestForceWithEmptyBufferReturnsFalse(t *testing.T) {
	engine := &fakeEngine{result: true}
	p := newTestPipeline(engine, nil, Options{AutoCorrect: true})

	_, _, ok := p.Force(context.Background())
	require.False(t, ok)
	require.Zero(t, engine.callCount())
}

func TestExcludedWindowBypassesPipeline(t *testing.T) {
	engine := &fakeEngine{result: true}
	p := newTestPipeline(engine, nil, Options{
		AutoCorrect:     true,
		ExcludedWindows: []string{"kitty"},
	})
	p.foreground = func(context.Context) (string, error) { return "Kitty", nil }

	drive(t, p, typeWord("ghbdtn "))

	time.Sleep(20 * time.Millisecond)
	require.Zero(t, engine.callCount())
}

func TestForegroundLookupIsCachedWithinTTL(t *testing.T) {
	engine := &fakeEngine{result: true}
	p := newTestPipeline(engine, nil, Options{
		AutoCorrect:     true,
		ExcludedWindows: []string{"kitty"},
		ForegroundTTL:   time.Minute,
	})

	var lookups int
	p.foreground = func(context.Context) (string, error) {
		lookups++
		return "firefox", nil
	}

	drive(t, p, typeWord("ghbdtn "))

	require.Eventually(t, func() bool { return engine.callCount() == 1 }, time.Second, 5*time.Millisecond)
	require.Equal(t, 1, lookups)
}

func TestForegroundLookupFailureDoesNotExclude(t *testing.T) {
	engine := &fakeEngine{result: true}
	p := newTestPipeline(engine, nil, Options{
		AutoCorrect:     true,
		ExcludedWindows: []string{"kitty"},
	})
	p.foreground = func(context.Context) (string, error) {
		return "", context.DeadlineExceeded
	}

	drive(t, p, typeWord("ghbdtn "))

	require.Eventually(t, func() bool { return engine.callCount() == 1 }, time.Second, 5*time.Millisecond)
}
