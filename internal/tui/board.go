package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"lifequest/internal/engine"
)

func RunBoard(ctx context.Context, svc *engine.Service, out io.Writer) error {
	m := newBoardModel(ctx, svc)
	p := tea.NewProgram(m, tea.WithOutput(out))

	// Every persisted mutation pushes its snapshot into the model, so the
	// header and task list track completions without waiting for a reload.
	svc.Store().Subscribe(func(rec engine.PlayerRecord) {
		p.Send(playerMsg{player: &rec})
	})

	_, err := p.Run()
	return err
}
