package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"task-intent/config"
	"task-intent/internal/bootstrap"
	"task-intent/internal/interpret"
	"task-intent/pkg/log"
)

type cliOptions struct {
	noInference bool
	verbose     bool
	ruleEngine  string
	timezone    string
}

func newRootCommand() *cobra.Command {
	opts := &cliOptions{}

	root := &cobra.Command{
		Use:           "intent",
		Short:         "Interpret free-form text into tasks and events",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&opts.noInference, "no-inference", false, "Skip the inference service")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log cascade decisions to stderr")
	root.PersistentFlags().StringVar(&opts.ruleEngine, "rule-engine", "", "Override parser.rule_engine (after_pattern, replace_pattern, disabled)")
	root.PersistentFlags().StringVar(&opts.timezone, "timezone", "", "Override parser.timezone")

	root.AddCommand(newParseCommand(opts))
	return root
}

func newParseCommand(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "parse [text...]",
		Short: "Print the interpretation of text as JSON",
		Long: "Interprets the joined arguments. With no arguments every non-empty\n" +
			"line of standard input is interpreted in turn, sharing one cache.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			uc, err := opts.interpreter(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(args) > 0 {
				return parseOne(ctx, uc, strings.Join(args, " "), out)
			}
			return parseLines(ctx, uc, cmd.InOrStdin(), out)
		},
	}
}

func (o *cliOptions) interpreter(ctx context.Context) (interpret.UseCase, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if o.ruleEngine != "" {
		cfg.Parser.RuleEngine = o.ruleEngine
	}
	if o.timezone != "" {
		cfg.Parser.Timezone = o.timezone
	}

	logger := log.NewNop()
	if o.verbose {
		logger = log.Init(log.ZapConfig{
			Level:    "debug",
			Mode:     "development",
			Encoding: "console",
			Output:   os.Stderr,
		})
	}

	return bootstrap.NewInterpreter(ctx, logger, cfg, bootstrap.Options{DisableInference: o.noInference})
}

func parseOne(ctx context.Context, uc interpret.UseCase, text string, w io.Writer) error {
	outcome, err := uc.Parse(ctx, interpret.ParseInput{Text: text})
	if err != nil {
		return fmt.Errorf("parse %q: %w", text, err)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(outcome)
}

func parseLines(ctx context.Context, uc interpret.UseCase, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := parseOne(ctx, uc, line, w); err != nil {
			return err
		}
	}
	return scanner.Err()
}
