package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/geniass/pricebot/pkg/config"
	dataio "github.com/geniass/pricebot/pkg/io"
)

var (
	configPathArg string
	inArg         string
	outArg        string
)

var rootCmd = &cobra.Command{
	Use:   "render",
	Short: "Rewrite the Markdown summary from an existing JSON snapshot",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		in, out := inArg, outArg
		if in == "" || out == "" {
			cfg, err := config.Load(configPathArg)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := config.InitLogger(cfg.Log); err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			if in == "" {
				in = cfg.Output.JSON
			}
			if out == "" {
				out = cfg.Output.Markdown
			}
		}
		defer func() { _ = zap.L().Sync() }()

		s, err := dataio.LoadSnapshot(in)
		if err != nil {
			return err
		}
		if err := (dataio.MarkdownWriter{Path: out}).WriteSnapshot(s); err != nil {
			return err
		}
		zap.L().Info("summary rendered", zap.String("snapshot", in), zap.String("markdown", out), zap.Int("products", len(s.Products)))
		return nil
	},
}

func init() {
	rootCmd.Flags().StringVar(&configPathArg, "config", "", "config file used for default paths")
	rootCmd.Flags().StringVar(&inArg, "in", "", "JSON snapshot to read")
	rootCmd.Flags().StringVar(&outArg, "out", "", "Markdown file to write")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
