package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"renshu/internal/progress"
)

func RunBoard(ctx context.Context, store *progress.Store, bridge *progress.Bridge, out io.Writer) error {
	m := newBoardModel(ctx, store, bridge)
	p := tea.NewProgram(m, tea.WithOutput(out))
	_, err := p.Run()
	return err
}
