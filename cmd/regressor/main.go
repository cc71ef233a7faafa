// Command regressor fits price as a function of mileage from a csv file and renders the fit as an
// html page
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aouyang1/go-regressor"
	"github.com/aouyang1/go-regressor/dataset"
	"github.com/goccy/go-json"
	"github.com/pkg/profile"
)

type config struct {
	dataPath       string
	outPath        string
	optionsPath    string
	printJSON      bool
	legacyExtremes bool
	cpuProfile     bool
}

func parseFlags(args []string) (config, error) {
	var cfg config
	fs := flag.NewFlagSet("regressor", flag.ContinueOnError)
	fs.StringVar(&cfg.dataPath, "data", "data.csv", "Path to the km,price csv")
	fs.StringVar(&cfg.outPath, "out", "linear_regression.html", "Path of the rendered html page")
	fs.StringVar(&cfg.optionsPath, "config", "", "Optional json file overriding the default options")
	fs.BoolVar(&cfg.printJSON, "json", false, "Print the fit model as json to stdout")
	fs.BoolVar(&cfg.legacyExtremes, "legacy-extremes", false, "Choose line endpoints with integer truncated comparison")
	fs.BoolVar(&cfg.cpuProfile, "profile", false, "Write a cpu profile to the working directory")
	if err := fs.Parse(args); err != nil {
		return config{}, err
	}
	return cfg, nil
}

func loadOptions(path string) (*regressor.Options, error) {
	opt := regressor.NewDefaultOptions()
	if path == "" {
		return opt, nil
	}

	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(bytes, opt); err != nil {
		return nil, fmt.Errorf("unable to parse options file %s, %w", path, err)
	}
	return opt, nil
}

func run(cfg config, stdout io.Writer) error {
	opt, err := loadOptions(cfg.optionsPath)
	if err != nil {
		return err
	}
	if cfg.legacyExtremes {
		opt.ComparePolicy = dataset.CompareTruncated
	}

	ds, err := dataset.LoadCSVFile(cfg.dataPath)
	if err != nil {
		return fmt.Errorf("unable to load dataset, %w", err)
	}
	slog.Info("loaded dataset", "path", cfg.dataPath, "rows", ds.Len())

	r, err := regressor.New(opt)
	if err != nil {
		return fmt.Errorf("unable to initialize regressor, %w", err)
	}
	if err := r.Fit(ds.X, ds.Y); err != nil {
		return err
	}
	slog.Info("fit complete",
		"iterations", r.Iteration(),
		"intercept", r.Intercept(),
		"slope", r.Slope(),
	)

	m, err := r.Model()
	if err != nil {
		return err
	}
	if cfg.printJSON {
		bytes, err := json.MarshalIndent(m, "", "  ")
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(stdout, string(bytes)); err != nil {
			return err
		}
	} else if err := m.TablePrint(stdout, "", "  "); err != nil {
		return err
	}

	file, err := os.Create(cfg.outPath)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := r.PlotFit(file); err != nil {
		return fmt.Errorf("unable to render fit, %w", err)
	}
	slog.Info("rendered fit", "path", cfg.outPath)
	return nil
}

// exitCode runs the command and maps failures to a process exit code so deferred profiling is
// flushed before exiting
func exitCode(args []string) int {
	cfg, err := parseFlags(args)
	if err != nil {
		return 2
	}
	if cfg.cpuProfile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	if err := run(cfg, os.Stdout); err != nil {
		slog.Error("regressor failed", "error", err.Error())
		return 1
	}
	return 0
}

func main() {
	os.Exit(exitCode(os.Args[1:]))
}
