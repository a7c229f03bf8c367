package indicator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type sentNotification struct {
	replaceID uint32
	summary   string
	body      string
}

func newTestDesktop(enabled bool) (*Desktop, *[]sentNotification) {
	sent := &[]sentNotification{}
	d := NewDesktop(enabled, nil)
	d.messages = notificationMessages(localeEnglish)
	d.send = func(_ context.Context, replaceID uint32, summary, body string) (uint32, error) {
		*sent = append(*sent, sentNotification{replaceID: replaceID, summary: summary, body: body})
		return uint32(len(*sent)), nil
	}
	return d, sent
}

func TestCorrectionAppliedFormatsBody(t *testing.T) {
	d, sent := newTestDesktop(true)

	d.CorrectionApplied(context.Background(), "ghbdtn", "привет")

	require.Len(t, *sent, 1)
	require.Equal(t, "Layout corrected", (*sent)[0].summary)
	require.Equal(t, "ghbdtn → привет", (*sent)[0].body)
	require.Equal(t, uint32(0), (*sent)[0].replaceID)
}

func TestSubsequentNotificationsReplacePrevious(t *testing.T) {
	d, sent := newTestDesktop(true)

	d.CorrectionApplied(context.Background(), "ghbdtn", "привет")
	d.CorrectionUndone(context.Background(), "ghbdtn")

	require.Len(t, *sent, 2)
	require.Equal(t, uint32(1), (*sent)[1].replaceID)
	require.Equal(t, "Correction undone", (*sent)[1].summary)
	require.Equal(t, "ghbdtn", (*sent)[1].body)
}

func TestAutoCorrectToggledSummaries(t *testing.T) {
	d, sent := newTestDesktop(true)

	d.AutoCorrectToggled(context.Background(), false)
	d.AutoCorrectToggled(context.Background(), true)

	require.Len(t, *sent, 2)
	require.Equal(t, "Auto-correct paused", (*sent)[0].summary)
	require.Equal(t, "Auto-correct resumed", (*sent)[1].summary)
}

func TestDisabledNotifierSendsNothing(t *testing.T) {
	d, sent := newTestDesktop(false)

	d.CorrectionApplied(context.Background(), "a", "b")
	d.CorrectionUndone(context.Background(), "a")
	d.AutoCorrectToggled(context.Background(), true)

	require.Empty(t, *sent)
}

func TestSendFailureKeepsReplaceID(t *testing.T) {
	d, sent := newTestDesktop(true)

	d.CorrectionApplied(context.Background(), "ghbdtn", "привет")

	working := d.send
	d.send = func(context.Context, uint32, string, string) (uint32, error) {
		return 0, errors.New("bus gone")
	}
	d.CorrectionUndone(context.Background(), "ghbdtn")

	d.send = working
	d.CorrectionApplied(context.Background(), "руддщ", "hello")

	require.Len(t, *sent, 2)
	require.Equal(t, uint32(1), (*sent)[1].replaceID)
}
