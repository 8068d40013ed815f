package main

import (
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/enioarz/ontology-server/gateway"
	gatewayhttp "github.com/enioarz/ontology-server/gateway/http"
	"github.com/enioarz/ontology-server/metric"
	"github.com/enioarz/ontology-server/output/file"
	"github.com/enioarz/ontology-server/site"
)

func newRootCmd() *cobra.Command {
	flags := &cliFlags{}

	root := &cobra.Command{
		Use:           appName,
		Short:         "Render an OWL ontology into a static documentation site",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags.register(root.PersistentFlags())

	root.AddCommand(
		newBuildCmd(flags),
		newServeCmd(flags),
		newValidateCmd(flags),
		newVersionCmd(),
	)
	return root
}

// newApp loads configuration and sets up logging for one command.
// Runtime collectors are registered when metrics leave the process.
func newApp(cmd *cobra.Command, flags *cliFlags, args []string, exposeMetrics bool) (*app, error) {
	cfg, err := flags.loadConfig(cmd, args)
	if err != nil {
		return nil, err
	}
	return &app{
		cfg:      cfg,
		logger:   setupLogger(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr()),
		registry: metric.NewMetricsRegistry(exposeMetrics || cfg.Build.MetricsFile != ""),
	}, nil
}

func newBuildCmd(flags *cliFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "build [ontology.owx]",
		Short: "Render the site into the output directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, flags, args, false)
			if err != nil {
				return err
			}

			result, err := a.build(cmd.Context())
			if err != nil {
				return err
			}

			w, err := file.NewWriter(file.Config{Directory: a.cfg.Build.Output, Workers: a.cfg.Build.Workers},
				file.WithLogger(a.logger),
				file.WithMetrics(a.registry.CoreMetrics()))
			if err != nil {
				return err
			}
			if err := w.Initialize(); err != nil {
				return err
			}
			if err := w.Write(cmd.Context(), result.Documents); err != nil {
				return err
			}
			assets, err := a.assets()
			if err != nil {
				return err
			}
			if err := w.CopyAssets(assets); err != nil {
				return err
			}

			printSummary(cmd.OutOrStdout(), result.Report, w.Directory())
			return a.finish(result.Report)
		},
	}
}

func newServeCmd(flags *cliFlags) *cobra.Command {
	gwCfg := gateway.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "serve [ontology.owx]",
		Short: "Build the site in memory and serve it for preview",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, flags, args, true)
			if err != nil {
				return err
			}
			// Preview links stay on the preview server.
			a.cfg.BaseURL = "/"

			assets, err := a.assets()
			if err != nil {
				return err
			}
			gw, err := gatewayhttp.NewGateway(gwCfg, a.build,
				gatewayhttp.WithLogger(a.logger),
				gatewayhttp.WithStatic(assets),
				gatewayhttp.WithMetrics(a.registry))
			if err != nil {
				return err
			}

			result, err := gw.Rebuild(cmd.Context())
			if err != nil {
				return err
			}
			printSummary(cmd.OutOrStdout(), result.Report, "http://"+gwCfg.Addr)
			return gw.ListenAndServe(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&gwCfg.Addr, "addr", gwCfg.Addr, "Listen address")
	cmd.Flags().BoolVar(&gwCfg.EnableCORS, "cors", false, "Enable CORS")
	cmd.Flags().StringSliceVar(&gwCfg.CORSOrigins, "cors-origin", nil, "Allowed CORS origin (repeatable)")
	cmd.Flags().StringVar(&gwCfg.RebuildTimeoutStr, "rebuild-timeout", gwCfg.RebuildTimeoutStr, "Timeout for one rebuild")
	return cmd
}

func newValidateCmd(flags *cliFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [ontology.owx]",
		Short: "Build the site in memory and report failures without writing output",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, flags, args, false)
			if err != nil {
				return err
			}
			result, err := a.build(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printSummary(out, result.Report, "")
			for _, f := range result.Report.Failures {
				_, _ = fmt.Fprintf(out, "  %s [%s]: %v\n", f.IRI, f.Class, f.Err)
			}
			for _, iri := range result.Report.Conflicts {
				_, _ = fmt.Fprintf(out, "  %s: declared under several kinds\n", iri)
			}
			if result.Report.Failed() {
				return result.Report.Err()
			}
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s (built %s, %s)\n", appName, Version, BuildTime, runtime.Version())
		},
	}
}

func printSummary(w io.Writer, report *site.Report, target string) {
	_, _ = fmt.Fprintf(w, "build %s: %d pages, %d documents, %d failures in %s\n",
		report.ID, report.Pages, report.Documents, len(report.Failures), report.Duration.Round(time.Millisecond))
	if n := len(report.Combined); n > 0 {
		_, _ = fmt.Fprintf(w, "%d properties have several domain or range axioms; their pages show the intersection\n", n)
	}
	if target != "" {
		_, _ = fmt.Fprintf(w, "output: %s\n", target)
	}
}
