package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/codeready-toolchain/toolchain-pageobjects/configuration"
	"github.com/codeready-toolchain/toolchain-pageobjects/driver"
	"github.com/codeready-toolchain/toolchain-pageobjects/launcher"
	"github.com/codeready-toolchain/toolchain-pageobjects/locator"
	"github.com/codeready-toolchain/toolchain-pageobjects/metrics"
	"github.com/codeready-toolchain/toolchain-pageobjects/page"
	"github.com/codeready-toolchain/toolchain-pageobjects/terminal"
	"github.com/codeready-toolchain/toolchain-pageobjects/wait"

	"github.com/davecgh/go-spew/spew"
	"github.com/gosuri/uiprogress"
	"github.com/gosuri/uitable"
	"github.com/gosuri/uitable/util/strutil"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var (
	pagesFile   string
	pageName    string
	configFile  string
	driverName  string
	timeout     string
	verbose     bool
	metricsFile string
)

// Execute the pagecheck command, which checks that a live page matches the
// elements declared for it
func Execute() {
	cmd := &cobra.Command{
		Use:           "pagecheck",
		Short:         "check that a web page matches its declared elements",
		SilenceErrors: true,
		SilenceUsage:  false,
		Args:          cobra.NoArgs,
		Run:           check,
	}

	cmd.Flags().StringVarP(&pagesFile, "pages", "p", "pages.yaml", "path to the YAML file declaring the pages")
	cmd.Flags().StringVar(&pageName, "page", "", "name of the page to check (prompted when several pages are declared)")
	cmd.Flags().StringVarP(&configFile, "config", "c", "", "path to a .env file with the session settings")
	cmd.Flags().StringVarP(&driverName, "driver", "d", "", "overrides the driver of the configuration (playwright, selenium or rod)")
	cmd.Flags().StringVarP(&timeout, "timeout", "t", "", "overrides the timeout of the waits, eg. '10s'")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "if 'debug' traces should be displayed in the console")
	cmd.Flags().StringVar(&metricsFile, "metrics-out", "", "path to a file where the metrics are written in the Prometheus text format")

	if err := cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func check(cmd *cobra.Command, args []string) {
	cmd.SilenceUsage = true
	term := terminal.New(cmd.InOrStdin, cmd.OutOrStdout, verbose)

	if configFile != "" {
		// variables of the file don't override the ones already set in the environment
		if err := godotenv.Load(configFile); err != nil {
			term.Fatalf(err, "unable to load '%s'", configFile)
		}
	}
	if driverName != "" {
		os.Setenv("DRIVER", driverName)
	}
	if timeout != "" {
		os.Setenv("TIMEOUT", timeout)
	}
	cfg, err := configuration.Load("")
	if err != nil {
		term.Fatalf(err, "invalid configuration")
	}
	term.Debugf("configuration: %s", spew.Sdump(cfg))

	decls, err := locator.LoadDeclarations(pagesFile)
	if err != nil {
		term.Fatalf(err, "unable to load the pages")
	}
	selected, err := selectDeclaration(term, decls, pageName)
	if err != nil {
		term.Fatalf(err, "no page to check")
	}
	decl := toPageDeclaration(selected, cfg.BaseURL)
	term.Debugf("declaration:\n%s", describeDeclaration(decl))

	reg := prometheus.NewRegistry()
	if err := metrics.Register(reg); err != nil {
		term.Fatalf(err, "unable to register the metrics")
	}

	term.Infof("🕖 starting a %s session...", cfg.Driver)
	d, err := launcher.New(cfg)
	if err != nil {
		term.Fatalf(err, "unable to start the browser session")
	}
	if tracer, ok := d.(driver.Tracer); ok && cfg.TraceDir != "" {
		term.AddPreFatalExitHook(func() {
			tracePath := filepath.Join(cfg.TraceDir, fmt.Sprintf("trace-%s.zip", decl.Name))
			if err := tracer.SaveTrace(tracePath); err != nil {
				term.Warnf("failed to save trace: %s", err)
				return
			}
			term.Infof("saved trace to %s", tracePath)
		})
	}
	term.AddPreFatalExitHook(func() {
		if err := d.Quit(); err != nil {
			term.Warnf("unable to end the browser session: %s", err)
		}
	})

	p, err := page.New(d, decl, page.WithRetryOptions(
		wait.TimeoutOption(cfg.Timeout),
		wait.RetryInterval(cfg.RetryInterval),
		wait.SleepAfter(cfg.SleepAfter)))
	if err != nil {
		term.Fatalf(err, "invalid page '%s'", decl.Name)
	}
	term.Infof("🌐 opening %s...", page.LiteralURL(decl.URL))
	if err := p.Get(); err != nil {
		term.Fatalf(err, "unable to open page '%s'", decl.Name)
	}

	names := p.Names()
	uip := uiprogress.New()
	uip.Start()
	bar := uip.AddBar(len(names)).AppendCompleted().PrependFunc(func(b *uiprogress.Bar) string {
		return strutil.PadLeft(fmt.Sprintf("elements (%d/%d)", b.Current(), len(names)), 25, ' ')
	})
	results := checkElements(p, func(string) {
		bar.Incr()
	})
	uip.Stop()

	term.Infof("\n📋 Results")
	term.Infof("%s", resultTable(results))
	writeMetrics(term, reg)

	if n := countFailures(results); n > 0 {
		term.Fatalf(fmt.Errorf("%d failure(s)", n), "page '%s' does not match its declaration", decl.Name)
	}
	if err := d.Quit(); err != nil {
		term.Warnf("unable to end the browser session: %s", err)
	}
	term.Successf("👋 page '%s' matches its declaration", decl.Name)
}

func writeMetrics(term terminal.Terminal, reg *prometheus.Registry) {
	rows, err := metrics.Summarize(reg)
	if err != nil {
		term.Errorf(err, "unable to gather the metrics")
		return
	}
	table := uitable.New()
	table.AddRow("METRIC", "VALUE")
	for _, row := range rows {
		table.AddRow(row[0], row[1])
	}
	term.Debugf("\n📈 Metrics\n%s", table)

	if metricsFile == "" {
		return
	}
	f, err := os.Create(metricsFile)
	if err != nil {
		term.Errorf(err, "unable to create '%s'", metricsFile)
		return
	}
	defer f.Close()
	if err := metrics.WriteText(f, reg); err != nil {
		term.Errorf(err, "unable to write the metrics to '%s'", metricsFile)
	}
}
