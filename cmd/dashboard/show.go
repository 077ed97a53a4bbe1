package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"sustaindash/internal/services/dashboard"
	"sustaindash/internal/views"
)

var (
	showEntity  int64
	showTimeout time.Duration
	sortFlag    string
	descFlag    bool
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the dashboard once and exit",
	Long: `Loads the entity list, selects the first entity (or --entity), waits for the
company record and comparisons, and prints both panels.

Example:
  dashboard show --entity 101 --sort scope1 --desc`,
	Args: cobra.NoArgs,
	RunE: runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	key, err := views.ParseSortKey(sortFlag)
	if err != nil {
		return err
	}
	client, err := newClient(logger)
	if err != nil {
		return err
	}

	p := dashboard.New(client, logger)
	defer p.Close()
	if cmd.Flags().Changed("entity") {
		p.SetCurrentEntityID(showEntity)
	}
	p.Start()

	ctx, cancel := context.WithTimeout(cmdContext(cmd), showTimeout)
	defer cancel()
	snap, err := p.WaitSettled(ctx)
	if err != nil {
		return fmt.Errorf("waiting for dashboard data: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), views.Render(snap, key, descFlag))
	if err := snap.Err(); err != nil {
		return fmt.Errorf("dashboard loaded with errors: %w", err)
	}
	return nil
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
