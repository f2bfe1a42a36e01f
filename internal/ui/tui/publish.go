package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Sender forwards progress messages to the running display.
type Sender func(tea.Msg)

// RunPublishTUI runs publishFn in the background while rendering its progress.
// publishFn reports through send and returns the latest pointer key.
func RunPublishTUI(ctx context.Context, app, bucket string, publishFn func(ctx context.Context, send Sender) (string, error)) error {
	m := NewPublishModel(app, bucket)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(m, tea.WithContext(ctx))

	go func() {
		latest, err := publishFn(ctx, func(msg tea.Msg) { p.Send(msg) })
		if err != nil {
			p.Send(ErrMsg{Err: err})
			return
		}
		p.Send(DoneMsg{Latest: latest})
	}()

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	fm := finalModel.(Model)
	if fm.Err != nil {
		return fm.Err
	}
	if !fm.Done {
		return context.Canceled
	}
	return nil
}
