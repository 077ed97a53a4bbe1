package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sustaindash/internal/adapters/apiclient"
	"sustaindash/internal/config"
	"sustaindash/internal/logging"
)

var (
	// Global flags
	apiURL  string
	verbose bool

	cfg    config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Terminal client for the sustainability dashboard API",
	Long: `dashboard reads entity ids, company records and peer comparisons from the
dashboard API and renders the client score card and industry comparison table.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		if apiURL != "" {
			cfg.APIBaseURL = apiURL
		}
		level := cfg.LogLevel
		if verbose {
			level = "debug"
		}
		logger, err = logging.New(cfg.Env, level)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "API base URL (default from API_BASE_URL)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	showCmd.Flags().Int64Var(&showEntity, "entity", 0, "entity id to show instead of the first one")
	showCmd.Flags().StringVar(&sortFlag, "sort", "score", "comparison sort key: score, scope1, scope2, revenue")
	showCmd.Flags().BoolVar(&descFlag, "desc", false, "sort descending")
	showCmd.Flags().DurationVar(&showTimeout, "timeout", 30*time.Second, "how long to wait for data")

	watchCmd.Flags().StringVar(&sortFlag, "sort", "score", "initial comparison sort key")
	watchCmd.Flags().BoolVar(&descFlag, "desc", false, "sort descending")
	watchCmd.Flags().DurationVar(&refreshFlag, "refresh", 0, "refetch the selected entity at this interval (0 uses REFRESH_INTERVAL)")

	rootCmd.AddCommand(showCmd, watchCmd)
}

func newClient(log *zap.Logger) (*apiclient.Client, error) {
	return apiclient.New(cfg.APIBaseURL,
		apiclient.WithTimeout(cfg.RequestTimeout),
		apiclient.WithComparisonCount(cfg.ComparisonCount),
		apiclient.WithRateLimit(cfg.ClientRPS),
		apiclient.WithLogger(log),
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
