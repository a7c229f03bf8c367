package output

import (
	"context"
	"fmt"
	"time"
)

// TyperSink injects characters directly with a typing tool (wtype by
// default). No shared resource is involved, which makes it the preferred
// strategy: there is no clipboard to race over.
type TyperSink struct {
	insertArgv  []string
	deleteArgv  []string
	betweenKeys time.Duration
}

// NewTyperSink builds a direct-injection sink. insertArgv reads the text
// from stdin; deleteArgv emits one backward delete per invocation.
func NewTyperSink(insertArgv, deleteArgv []string, betweenKeys time.Duration) *TyperSink {
	return &TyperSink{
		insertArgv:  insertArgv,
		deleteArgv:  deleteArgv,
		betweenKeys: betweenKeys,
	}
}

// Delete emits count backward deletes, paced so the application's own input
// processing keeps up.
func (s *TyperSink) Delete(ctx context.Context, count int) error {
	for i := 0; i < count; i++ {
		if err := runCommandWithInput(ctx, s.deleteArgv, ""); err != nil {
			return fmt.Errorf("delete %d/%d: %w", i+1, count, err)
		}
		if i < count-1 {
			time.Sleep(s.betweenKeys)
		}
	}
	return nil
}

// Insert types text through the injection tool's stdin.
func (s *TyperSink) Insert(ctx context.Context, text string) error {
	if text == "" {
		return nil
	}
	if err := runCommandWithInput(ctx, s.insertArgv, text); err != nil {
		return fmt.Errorf("insert text: %w", err)
	}
	return nil
}
