package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/geniass/pricebot/pkg/config"
	dataio "github.com/geniass/pricebot/pkg/io"
	"github.com/geniass/pricebot/pkg/report"
	"github.com/geniass/pricebot/pkg/scraper"
)

var (
	configPathArg  string
	jsonOutArg     string
	markdownOutArg string
	reportArg      bool
)

var rootCmd = &cobra.Command{
	Use:   "scraper",
	Short: "Collect product prices from the configured retailers",
	Long:  "Searches every configured brand and keyword on each listed retailer, then writes a JSON snapshot and a Markdown summary of everything found.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPathArg)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		defer func() { _ = zap.L().Sync() }()

		if jsonOutArg != "" {
			cfg.Output.JSON = jsonOutArg
		}
		if markdownOutArg != "" {
			cfg.Output.Markdown = markdownOutArg
		}

		t := scraper.NewCollyTransport(cfg.HTTP.UserAgent, cfg.HTTP.Timeout)
		s := scraper.NewScraper(scraper.NewAdapters(t, cfg.AdapterOptions()), zap.L())
		res := s.Run(cfg.SearchSpace())

		e := dataio.NewEmitter(
			dataio.JSONWriter{Path: cfg.Output.JSON},
			dataio.MarkdownWriter{Path: cfg.Output.Markdown},
		)
		if _, err := e.Emit(res.Records); err != nil {
			return err
		}
		zap.L().Info("snapshot written",
			zap.Int("products", len(res.Records)),
			zap.String("json", cfg.Output.JSON),
			zap.String("markdown", cfg.Output.Markdown),
		)

		if reportArg {
			report.RenderOutcomes(cmd.OutOrStdout(), res)
		}
		return nil
	},
}

func init() {
	rootCmd.Flags().StringVar(&configPathArg, "config", "", "config file (default: config.yaml in . or scripts/)")
	rootCmd.Flags().StringVar(&jsonOutArg, "json-out", "", "override the JSON snapshot path")
	rootCmd.Flags().StringVar(&markdownOutArg, "markdown-out", "", "override the Markdown summary path")
	rootCmd.Flags().BoolVar(&reportArg, "report", false, "print a table of per-search outcomes when done")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
