package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

type app struct {
	v *viper.Viper

	// newExporter creates the span exporter used with --tracing
	newExporter func(context.Context) (sdktrace.SpanExporter, error)

	span     trace.Span
	shutdown func(context.Context) error
}

func newApp() *app {
	v := viper.New()
	v.SetEnvPrefix("GITABLE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("log-level", "warn")
	v.SetDefault("output", "text")
	v.SetDefault("scheme", "https")

	return &app{v: v, newExporter: otlpExporter}
}

// execute runs the command line in args, then ends tracing
func (a *app) execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	defer a.finish(ctx)

	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	return root.ExecuteContext(ctx)
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "gitable",
		Short: "Parse, normalize and compare git repository locators",
		Long: `gitable understands the locators given to "git clone" and "git remote add":
URLs (https://, ssh://, git://, file://), scp-style addresses
(git@github.com:owner/repo.git), and local paths.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	pf := root.PersistentFlags()
	pf.StringP("output", "o", "text", "Output format (text, json, yaml)")
	pf.String("log-level", "warn", "Log level (trace, debug, info, warn, error)")
	pf.Bool("tracing", false, "Export traces with OTLP (configure with OTEL_EXPORTER_OTLP_* variables)")

	_ = a.v.BindPFlags(pf)

	root.AddCommand(
		a.parseCmd(),
		a.equivalentCmd(),
		a.webCmd(),
		a.heuristicCmd(),
		a.remotesCmd(),
	)

	return root
}

// setup configures logging and tracing before any command runs
func (a *app) setup(cmd *cobra.Command, args []string) error {
	level, err := logrus.ParseLevel(a.v.GetString("log-level"))
	if err != nil {
		return err
	}

	logrus.SetLevel(level)
	logrus.SetOutput(cmd.ErrOrStderr())
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	if _, err := newPrinter(a.v.GetString("output"), cmd.OutOrStdout()); err != nil {
		return err
	}

	if !a.v.GetBool("tracing") {
		return nil
	}

	ctx := cmd.Context()

	exporter, err := a.newExporter(context.WithoutCancel(ctx))
	if err != nil {
		return fmt.Errorf("init trace exporter: %w", err)
	}

	a.shutdown, err = initTracing(context.WithoutCancel(ctx), exporter)
	if err != nil {
		return err
	}

	ctx, a.span = otel.Tracer(tracerName).Start(ctx, cmd.Name(), trace.WithAttributes(
		attribute.StringSlice("gitable.args", args),
		attribute.String("gitable.output", a.v.GetString("output")),
	))
	cmd.SetContext(ctx)

	return nil
}

// finish ends the command's span and flushes traces
func (a *app) finish(ctx context.Context) {
	if a.span != nil {
		a.span.End()
	}

	if a.shutdown != nil {
		if err := a.shutdown(ctx); err != nil {
			logrus.WithError(err).Warn("shutting down tracing")
		}
	}
}

// printer creates a printer for the configured output format
func (a *app) printer(cmd *cobra.Command) (*printer, error) {
	return newPrinter(a.v.GetString("output"), cmd.OutOrStdout())
}
