package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/kevinmichaelchen/larp-watch/internal/bot"
	"github.com/kevinmichaelchen/larp-watch/internal/config"
	"github.com/kevinmichaelchen/larp-watch/internal/errs"
	"github.com/kevinmichaelchen/larp-watch/internal/logging"
	"github.com/kevinmichaelchen/larp-watch/internal/pipeline"
	"github.com/kevinmichaelchen/larp-watch/internal/report"
)

func main() {
	var verbose bool

	root := &cobra.Command{
		Use:           "larp-watch",
		Short:         "GitHub repository due diligence: is the project legitimate or larping?",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(analyzeCmd(&verbose), botCmd(&verbose))

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", errs.Kind(err), err)
		os.Exit(1)
	}
}

func newLogger(verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return logging.New(os.Stderr, level)
}

func analyzeCmd(verbose *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze [github-url]",
		Short: "Analyze a GitHub repository and print the verdict",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := logging.WithLogger(context.Background(), newLogger(*verbose))
			res, err := pipeline.Run(ctx, cfg, args[0])
			if err != nil {
				return err
			}

			report.Render(os.Stdout, args[0], res)
			return nil
		},
	}
}

func botCmd(verbose *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "bot",
		Short: "Run the Discord bot serving the /analyze command",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			b, err := bot.New(cfg, newLogger(*verbose))
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return b.Run(ctx)
		},
	}
}
