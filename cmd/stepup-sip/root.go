package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iwvelando/stepup-sip/internal/config"
	"github.com/iwvelando/stepup-sip/internal/projection"
	"github.com/iwvelando/stepup-sip/internal/server"
	"github.com/iwvelando/stepup-sip/pkg/constants"
	"github.com/iwvelando/stepup-sip/pkg/format"
	"github.com/iwvelando/stepup-sip/pkg/output"
	"github.com/iwvelando/stepup-sip/pkg/validation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

type computeOptions struct {
	configPath   string
	outputFormat string
	logLevel     string
	plan         config.Plan
}

type serveOptions struct {
	configPath string
	address    string
	logLevel   string
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "stepup-sip",
		Short:        "Project the growth of a step-up systematic investment plan",
		SilenceUsage: true,
	}

	root.AddCommand(newComputeCommand(), newServeCommand(), newVersionCommand())
	return root
}

func newComputeCommand() *cobra.Command {
	opts := &computeOptions{plan: config.DefaultPlan()}

	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Compute one or more plans and print the yearly breakdown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCompute(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "path to a plan configuration file (see "+constants.ExampleConfigFile+")")
	flags.StringVar(&opts.outputFormat, "output-format", "", "type of output override: pretty, csv, json")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	flags.StringVar(&opts.plan.Name, "name", opts.plan.Name, "name of the plan given by flags")
	flags.Float64Var(&opts.plan.MonthlyInvestment, "monthly", opts.plan.MonthlyInvestment, "monthly investment in the first year")
	flags.Float64Var(&opts.plan.StepUpPercentage, "step-up", opts.plan.StepUpPercentage, "yearly increase of the monthly investment, in percent")
	flags.Float64Var(&opts.plan.ExpectedReturn, "return", opts.plan.ExpectedReturn, "expected annual return, in percent")
	flags.Float64Var(&opts.plan.Years, "years", opts.plan.Years, "number of years to invest")

	return cmd
}

func runCompute(cmd *cobra.Command, opts *computeOptions) error {
	conf := &config.Configuration{}
	if opts.configPath != "" {
		loaded, err := config.LoadConfiguration(opts.configPath)
		if err != nil {
			return fmt.Errorf("failed to load configuration at %s: %w", opts.configPath, err)
		}
		conf = loaded
	}

	// Without a file the flags describe the only plan; with a file they add
	// one only when set explicitly.
	if opts.configPath == "" || planFlagsChanged(cmd) {
		conf.Plans = append(conf.Plans, opts.plan)
	}

	logger, err := initializeLogger(conf.Logging, opts.logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// CLI override takes precedence over config
	outputFormat := conf.Output.Format
	if opts.outputFormat != "" {
		outputFormat = opts.outputFormat
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		return err
	}

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main.compute"),
		)
	}

	locale, err := format.ParseLocale(conf.Output.Locale)
	if err != nil {
		locale, _ = format.ParseLocale(constants.DefaultLocale)
	}

	results, err := projection.GetProjections(logger, *conf)
	if err != nil {
		logger.Error("failed to compute projections",
			zap.String("op", "main.compute"),
			zap.Error(err),
		)
		return err
	}

	out := cmd.OutOrStdout()
	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(out, results, locale)
	case constants.OutputFormatCSV:
		output.CsvFormat(out, results)
	case constants.OutputFormatJSON:
		return output.JSONFormat(out, results)
	}
	return nil
}

func planFlagsChanged(cmd *cobra.Command) bool {
	for _, name := range []string{"name", "monthly", "step-up", "return", "years"} {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

func newServeCommand() *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the SIP calculation API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "server-config", constants.DefaultServerConfigFile, "path to the server configuration file")
	flags.StringVar(&opts.address, "address", "", "listen address override")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	return cmd
}

func runServe(ctx context.Context, opts *serveOptions) error {
	cfg, err := server.LoadConfig(opts.configPath)
	if err != nil {
		return err
	}
	if opts.address != "" {
		cfg.Address = opts.address
	}

	logger, err := initializeLogger(cfg.Logging, opts.logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := cfg.NewHTTPServer(server.NewHandler(logger, cfg.RequestSizeBytes(), version))

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening",
			zap.String("op", "main.serve"),
			zap.String("address", cfg.Address),
			zap.Int64("maxRequestSize", cfg.RequestSizeBytes()),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down", zap.String("op", "main.serve"))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}
