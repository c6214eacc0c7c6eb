package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/tsawler/strata"
	"github.com/tsawler/strata/layout"
)

type analyzeOptions struct {
	jobs             int
	keepGoing        bool
	keepLineBreaks   bool
	hiddenText       bool
	noHeadersFooters bool
	text             bool
	envFile          string
	logLevel         string
}

func analyzeCmd() *cobra.Command {
	var opts analyzeOptions

	cmd := &cobra.Command{
		Use:   "analyze <file>...",
		Short: "Print the semantic outline of PDF files or fragment dumps",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(cmd.ErrOrStderr(), opts.logLevel)
			if err != nil {
				return err
			}
			config, err := loadConfig(opts.envFile)
			if err != nil {
				return err
			}
			config.Logger = logger
			if opts.noHeadersFooters {
				config.DetectHeadersFooters = false
			}
			return runAnalyze(cmd.Context(), cmd.OutOrStdout(), logger, config, args, opts)
		},
	}
	cmd.Flags().IntVarP(&opts.jobs, "jobs", "j", 4, "number of files analyzed concurrently")
	cmd.Flags().BoolVar(&opts.keepGoing, "keep-going", false, "report failed files and continue with the rest")
	cmd.Flags().BoolVar(&opts.keepLineBreaks, "keep-line-breaks", false, "keep paragraph line breaks in text output")
	cmd.Flags().BoolVar(&opts.hiddenText, "hidden-text", false, "keep hidden text apart from visible text")
	cmd.Flags().BoolVar(&opts.noHeadersFooters, "no-headers-footers", false, "disable running header and footer detection")
	cmd.Flags().BoolVar(&opts.text, "text", false, "print text instead of the outline")
	cmd.Flags().StringVar(&opts.envFile, "env", "", "file of STRATA_* threshold overrides (default: .env when present)")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "warn", "log level: debug|info|warn|error")
	return cmd
}

func newLogger(w io.Writer, level string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetLevel(lvl)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return logger, nil
}

// loadConfig applies the STRATA_* overrides from envFile, or from .env when
// envFile is empty and the file exists, on top of the defaults
func loadConfig(envFile string) (layout.AnalyzerConfig, error) {
	switch {
	case envFile != "":
		if err := godotenv.Load(envFile); err != nil {
			return layout.AnalyzerConfig{}, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	default:
		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			return layout.AnalyzerConfig{}, fmt.Errorf("failed to load .env: %w", err)
		}
	}
	return strata.ConfigFromEnv(layout.DefaultAnalyzerConfig())
}

// runAnalyze analyzes files concurrently, each run with its own analyzer
// call, and prints the results in argument order
func runAnalyze(ctx context.Context, out io.Writer, logger logrus.FieldLogger, config layout.AnalyzerConfig, files []string, opts analyzeOptions) error {
	results := make([]string, len(files))
	failed := make([]error, len(files))

	g, ctx := errgroup.WithContext(ctx)
	if opts.jobs > 0 {
		g.SetLimit(opts.jobs)
	}
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			log := logger.WithField("file", path)
			result, err := analyzeFile(ctx, path, config, log, opts)
			if err != nil {
				err = fmt.Errorf("%s: %w", path, err)
				if !opts.keepGoing {
					return err
				}
				log.WithError(err).Error("analysis failed")
				failed[i] = err
				return nil
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	count := 0
	for i, path := range files {
		if failed[i] != nil {
			count++
			continue
		}
		fmt.Fprintf(out, "== %s\n%s", path, results[i])
	}
	if count > 0 {
		return fmt.Errorf("%d of %d files failed", count, len(files))
	}
	return nil
}

func analyzeFile(ctx context.Context, path string, config layout.AnalyzerConfig, log logrus.FieldLogger, opts analyzeOptions) (string, error) {
	e, err := strata.OpenFile(path)
	if err != nil {
		return "", err
	}
	e = e.WithConfig(config).WithLogger(log)
	if opts.keepLineBreaks {
		e = e.KeepLineBreaks()
	}
	if opts.hiddenText {
		e = e.FindHiddenText()
	}

	if opts.text {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		return e.Text()
	}
	doc, err := e.TreeContext(ctx)
	if err != nil {
		return "", err
	}
	return strata.FormatDocument(doc), nil
}
