// Command tabular reads a JSON table, applies a list of transformation
// steps and writes the result in the requested format.
//
//	tabular --input rows.json --steps steps.yaml --format table
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/lublak/tabular"
	"github.com/lublak/tabular/internal/config"
	"github.com/lublak/tabular/internal/logging"
	"github.com/rs/zerolog"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg, err := config.Load(args, stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return err
	}
	log := logging.New(cfg.Log, stderr)

	if err := execute(ctx, cfg, log, stdin, stdout); err != nil {
		log.Error().Err(err).Msg("tabular failed")
		return err
	}
	return nil
}

func execute(ctx context.Context, cfg *config.Config, log zerolog.Logger, stdin io.Reader, stdout io.Writer) error {
	data, err := os.ReadFile(cfg.Steps)
	if err != nil {
		return fmt.Errorf("read steps: %w", err)
	}
	steps, err := tabular.ParseSteps(data)
	if err != nil {
		return err
	}

	table, err := readTable(cfg, stdin)
	if err != nil {
		return err
	}
	log.Debug().Int("rows", len(table)).Int("steps", len(steps)).Msg("table loaded")

	out, err := tabular.NewPipeline(steps, tabular.WithLogger(log)).Run(ctx, table)
	if err != nil {
		return err
	}

	opts, err := renderOptions(cfg)
	if err != nil {
		return err
	}
	format, err := tabular.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}

	w := stdout
	if cfg.Output != "" {
		f, err := os.Create(cfg.Output)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		w = f
	}
	if err := tabular.Write(w, format, out, opts...); err != nil {
		return fmt.Errorf("write %s: %w", format, err)
	}
	log.Info().Int("rows", len(out)).Str("format", format.String()).Msg("table written")
	return nil
}

func readTable(cfg *config.Config, stdin io.Reader) (tabular.Table, error) {
	r := stdin
	if cfg.Input != "" && cfg.Input != "-" {
		f, err := os.Open(cfg.Input)
		if err != nil {
			return nil, fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		r = f
	}
	if cfg.Items {
		return tabular.DecodeItems(r)
	}
	return tabular.DecodeRecords(r)
}

func renderOptions(cfg *config.Config) ([]tabular.RenderOption, error) {
	border, err := tabular.ParseBorderStyle(cfg.Border)
	if err != nil {
		return nil, err
	}
	opts := []tabular.RenderOption{tabular.WithBorder(border)}
	if cfg.Items {
		opts = append(opts, tabular.WithItems())
	}
	if cfg.Title != "" {
		opts = append(opts, tabular.WithTitle(cfg.Title))
	}
	if cfg.Indent != "" {
		opts = append(opts, tabular.WithIndent(cfg.Indent))
	}
	return opts, nil
}
