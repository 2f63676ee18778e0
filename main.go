package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/lookbusy1344/rvv-emulator/config"
	"github.com/lookbusy1344/rvv-emulator/debugger"
	"github.com/lookbusy1344/rvv-emulator/golden"
)

// Version information - can be overridden at build time with:
// go build -ldflags "-X main.Version=v1.2.3"
var (
	Version = "dev"     // Version number (set by git tag at build time)
	Commit  = "unknown" // Git commit hash
	Date    = "unknown" // Build date
)

func main() {
	var (
		showVersion = flag.Bool("version", false, "Show version information")
		showHelp    = flag.Bool("help", false, "Show help information")
		tuiMode     = flag.Bool("tui", false, "Open the interactive register-field inspector")
		configFile  = flag.String("config", "", "Configuration file (default: platform config path)")
		goldenDir   = flag.String("golden", "", "Run all golden cases in this directory")
		caseFile    = flag.String("case", "", "Run a single golden case file")
		stopOnFail  = flag.Bool("stop-on-fail", false, "Stop the golden run at the first failing case")
		plotFile    = flag.String("stats-plot", "", "Write a per-op pass/fail chart to this file")
		vlen        = flag.Int("vlen", 0, "Vector register length in bits (overrides config)")
		xlen        = flag.Int("xlen", 0, "Scalar register width in bits (overrides config)")
		verboseMode = flag.Bool("verbose", false, "Verbose output")
	)

	flag.Parse()

	if *showVersion {
		fmt.Printf("RVV emulator %s\n", Version)
		if Commit != "unknown" {
			fmt.Printf("Commit: %s\n", Commit)
		}
		if Date != "unknown" {
			fmt.Printf("Built: %s\n", Date)
		}
		os.Exit(0)
	}

	if *showHelp {
		printHelp()
		os.Exit(0)
	}

	// Load configuration, then apply command-line overrides
	var cfg *config.Config
	var err error
	if *configFile != "" {
		cfg, err = config.LoadFrom(*configFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	if *vlen != 0 {
		cfg.Core.VLEN = *vlen
	}
	if *xlen != 0 {
		cfg.Core.XLEN = *xlen
	}
	if *stopOnFail {
		cfg.Golden.StopOnFail = true
	}
	if *plotFile != "" {
		cfg.Golden.PlotFile = *plotFile
		cfg.Golden.PlotResults = true
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *tuiMode {
		inspector := debugger.New(cfg.Core.VLEN, cfg.Core.XLEN)
		if err := debugger.NewTUI(inspector).Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Inspector error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Single case mode
	if *caseFile != "" {
		runner := golden.NewRunner(os.Stdout)
		res, err := runner.RunFile(*caseFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if !res.Pass {
			os.Exit(1)
		}
		return
	}

	// Golden directory mode (the default)
	dir := cfg.Golden.CaseDir
	if *goldenDir != "" {
		dir = *goldenDir
	}
	runner := golden.NewRunner(os.Stdout)
	runner.StopOnFail = cfg.Golden.StopOnFail

	summary, err := runner.RunDir(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	pass, fail := 0, 0
	for _, r := range summary.Results {
		if r.Pass {
			pass++
		} else {
			fail++
		}
	}
	fmt.Printf("\n%d cases: %d passed, %d failed\n", pass+fail, pass, fail)

	if *verboseMode {
		for op, tally := range summary.PerOp {
			fmt.Printf("  %-28s pass=%d fail=%d\n", op, tally[0], tally[1])
		}
	}

	if cfg.Golden.PlotResults {
		if err := summary.SavePlot(cfg.Golden.PlotFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing plot: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Chart written to %s\n", cfg.Golden.PlotFile)
	}

	if fail > 0 {
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println(`RVV emulator - RISC-V "V" 0.9 vector integer subset

Usage:
  rvv-emulator [options]                 run golden cases from the configured directory
  rvv-emulator -case file.toml           run a single golden case
  rvv-emulator -tui                      open the register-field inspector

Options:`)
	flag.PrintDefaults()
	fmt.Println(`
Environment:
  RVV_VLEN, RVV_XLEN, RVV_GOLDEN_DIR, RVV_LOG_DIR, RVV_STOP_ON_FAIL,
  RVV_PLOT_FILE override the configuration defaults.`)
}
