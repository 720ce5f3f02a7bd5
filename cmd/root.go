package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kola-market/market-cli/internal/config"
	"github.com/kola-market/market-cli/internal/market"
	"github.com/kola-market/market-cli/internal/recommender"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "market-cli",
	Short: "Business-viability scoring for Ghanaian markets",
	Long:  "Ranks candidate products for Ghanaian regions with a weighted business-viability score combining profitability, demand, risk, infrastructure fit and customer benefit.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

// loadStore opens the configured dataset, or the bundled Ghana dataset when
// no path is configured. The --data flag overrides the config value.
func loadStore(cmd *cobra.Command) (*market.Store, error) {
	path := cfg.Data.Path
	if v, _ := cmd.Flags().GetString("data"); v != "" {
		path = v
	}
	if path == "" {
		return market.Default(), nil
	}

	store, err := market.LoadFile(path)
	if err != nil {
		return nil, err
	}
	zap.L().Info("dataset loaded", zap.String("path", path))
	return store, nil
}

func newRecommender(store *market.Store) *recommender.Recommender {
	return recommender.New(recommender.Config{
		Store:   store,
		Workers: cfg.Batch.Workers,
	})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
