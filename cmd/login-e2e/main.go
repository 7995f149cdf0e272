package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/excelchat/login-e2e/internal/config"
	"github.com/excelchat/login-e2e/internal/fixture"
	"github.com/excelchat/login-e2e/internal/loginflow"
	"github.com/excelchat/login-e2e/internal/metrics"
	"github.com/excelchat/login-e2e/internal/report"
	"github.com/excelchat/login-e2e/internal/version"
	"github.com/excelchat/login-e2e/internal/webdriver"
)

var rootCmd = &cobra.Command{
	Use:   "login-e2e",
	Short: "End-to-end checks for the ExcelChat login dialog",
	Long: `login-e2e drives a real browser through the ExcelChat login dialog and
asserts the validation message or navigation each input combination produces.

By default the scenarios run against a local fixture copy of the page. Point
--target (or LOGIN_E2E_TARGET_URL with LOGIN_E2E_FIXTURE_ENABLED=false) at the
live site to check production.`,
	Version:       version.String(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	configFileFlag string

	targetFlag    string
	scenarioFlags []string
	headedFlag    bool
	timeoutFlag   time.Duration
	metricsFlag   string
	shotsFlag     string

	listFormatFlag string

	serveAddrFlag string

	versionJSONFlag bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configFileFlag, "config", "", "YAML config file")

	runCmd.Flags().StringVar(&targetFlag, "target", "", "Live landing page URL; disables the local fixture")
	runCmd.Flags().StringSliceVar(&scenarioFlags, "scenario", nil, "Only run scenarios whose name contains this (repeatable)")
	runCmd.Flags().BoolVar(&headedFlag, "headed", false, "Show the browser window")
	runCmd.Flags().DurationVar(&timeoutFlag, "timeout", 0, "Override the wait budget (default from config, 20s)")
	runCmd.Flags().StringVar(&metricsFlag, "metrics-file", "", "Write Prometheus textfile metrics here")
	runCmd.Flags().StringVar(&shotsFlag, "screenshot-dir", "", "Save a screenshot of each failed scenario here")

	listCmd.Flags().StringVar(&listFormatFlag, "format", "text", "Output format: text or yaml")

	serveCmd.Flags().StringVar(&serveAddrFlag, "addr", "127.0.0.1:8089", "Listen address for the fixture site")

	versionCmd.Flags().BoolVar(&versionJSONFlag, "json", false, "Print build information as JSON")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the login scenarios in a browser",
	RunE:  runScenarios,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the login scenarios",
	RunE:  listScenarios,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the fixture login page until interrupted",
	RunE:  serveFixture,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		if versionJSONFlag {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(version.GetInfo())
		}
		fmt.Fprintf(cmd.OutOrStdout(), "login-e2e %s\n", version.Full())
		return nil
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFileFlag)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

func fixtureOptions(cfg *config.Config) fixture.Options {
	return fixture.Options{
		BasePath: cfg.Fixture.BasePath,
		Accounts: []fixture.Account{{Email: cfg.Credentials.RegisteredEmail, Password: cfg.Credentials.Password}},
		Mode:     cfg.Fixture.Mode,
	}
}

// applyRunFlags layers the run command's flags over the loaded config.
func applyRunFlags(cfg *config.Config) {
	if targetFlag != "" {
		cfg.UseTarget(targetFlag)
		cfg.Fixture.Enabled = false
	}
	if headedFlag {
		cfg.Browser.Headless = false
	}
	if timeoutFlag > 0 {
		cfg.Target.Timeout = timeoutFlag
	}
	if metricsFlag != "" {
		cfg.Report.MetricsFile = metricsFlag
	}
	if shotsFlag != "" {
		cfg.Report.ScreenshotDir = shotsFlag
	}
}

func runScenarios(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyRunFlags(cfg)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Fixture.Enabled {
		site, err := fixture.New(fixtureOptions(cfg))
		if err != nil {
			return err
		}
		srv, err := site.Serve(cfg.Fixture.Addr)
		if err != nil {
			return err
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
		cfg.UseTarget(srv.URL)
	}

	if !config.Reachable(cfg.Target.URL) {
		return fmt.Errorf("target %s is unreachable", cfg.Target.URL)
	}

	scenarios := loginflow.Filter(loginflow.Catalog(cfg.Credentials, cfg.Target.GetHomeURL()), scenarioFlags...)
	if len(scenarios) == 0 {
		return fmt.Errorf("no scenarios match %v", scenarioFlags)
	}

	launcher, err := webdriver.Start(cfg.Browser)
	if err != nil {
		return err
	}
	defer func() { _ = launcher.Stop() }()

	m := metrics.New()
	runner := &loginflow.Runner{
		NewSession: loginflow.FromLauncher(launcher),
		Target: loginflow.Target{
			URL:     cfg.Target.URL,
			HomeURL: cfg.Target.GetHomeURL(),
			Timeout: cfg.Target.Timeout,
		},
		ScreenshotDir: cfg.Report.ScreenshotDir,
		Observer:      m,
	}
	if !cfg.Report.Verbose {
		runner.Logf = func(string, ...any) {}
	}

	results := runner.RunAll(ctx, scenarios)
	summary := report.Write(cmd.OutOrStdout(), results, cfg.Report.Verbose)

	if cfg.Report.MetricsFile != "" {
		if err := m.WriteTextfile(cfg.Report.MetricsFile); err != nil {
			return err
		}
	}
	if len(results) < len(scenarios) {
		return fmt.Errorf("run interrupted after %d of %d scenarios", len(results), len(scenarios))
	}
	if !summary.OK() {
		return fmt.Errorf("%d of %d scenarios failed", summary.Failed, summary.Total)
	}
	return nil
}

func listScenarios(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	scenarios := loginflow.Catalog(cfg.Credentials, cfg.Target.GetHomeURL())
	out := cmd.OutOrStdout()

	switch listFormatFlag {
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(scenarios); err != nil {
			return fmt.Errorf("failed to encode scenarios: %w", err)
		}
		return enc.Close()
	case "text":
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		for i, s := range scenarios {
			fmt.Fprintf(tw, "%d\t%s\t%s\n", i+1, s.Name, s.Expect)
			if s.Note != "" {
				fmt.Fprintf(tw, "\t\tnote: %s\n", s.Note)
			}
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unknown format %q (want text or yaml)", listFormatFlag)
	}
}

func serveFixture(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	opts := fixtureOptions(cfg)
	opts.AccessLog = true
	site, err := fixture.New(opts)
	if err != nil {
		return err
	}
	srv, err := site.Serve(serveAddrFlag)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Fixture login page at %s (account %s)\n", srv.URL, cfg.Credentials.RegisteredEmail)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
