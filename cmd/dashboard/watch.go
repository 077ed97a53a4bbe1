package main

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sustaindash/internal/services/dashboard"
	"sustaindash/internal/views"
	"sustaindash/internal/workers/refresher"
)

var refreshFlag time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Interactive dashboard",
	Long: `Opens a full-screen dashboard. Use the arrow keys to move between entities,
s to change the comparison sort column, d to flip its direction, r to refetch,
q to quit.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	key, err := views.ParseSortKey(sortFlag)
	if err != nil {
		return err
	}
	// The UI owns the terminal; log lines would tear it.
	quiet := zap.NewNop()
	client, err := newClient(quiet)
	if err != nil {
		return err
	}

	p := dashboard.New(client, quiet)
	defer p.Close()
	p.Start()

	ctx, cancel := context.WithCancel(cmdContext(cmd))
	defer cancel()

	interval := refreshFlag
	if interval == 0 {
		interval = cfg.RefreshInterval
	}
	go refresher.Run(ctx, p, interval, quiet)

	prog := tea.NewProgram(views.NewModel(p, key, descFlag), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := prog.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}
