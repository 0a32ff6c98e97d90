package tui

import (
	"context"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"lifequest/internal/clock"
	"lifequest/internal/engine"
	"lifequest/internal/ledger"
)

func RunBoard(ctx context.Context, svc *engine.Service, led *ledger.Service, clk clock.Clock, refresh time.Duration, out io.Writer) error {
	if refresh <= 0 {
		refresh = time.Second
	}
	m := newBoardModel(ctx, svc, led, clk, refresh)
	p := tea.NewProgram(m, tea.WithOutput(out))
	_, err := p.Run()
	return err
}
