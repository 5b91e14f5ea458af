package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/TrevorS/nbs"
	"github.com/TrevorS/nbs/internal/loader"
	"github.com/TrevorS/nbs/internal/runconfig"
)

type runFlags struct {
	configPath string
	logFormat  string
	verbose    bool
	cfg        runconfig.Config
}

func newRunCmd() *cobra.Command {
	f := &runFlags{cfg: runconfig.Default()}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Compare two groups of connectivity matrices",
		Long: `Run the Network-Based Statistic on two groups of subjects.

Each group is a directory holding one square connectivity matrix per subject
(.csv, .tsv or .txt). Settings can come from a YAML file given with --config;
flags set on the command line take precedence over the file.

Examples:
  nbs run --group-x patients/ --group-y controls/
  nbs run --config study.yaml --permutations 5000 --output report.json
  nbs run -x patients/ -y controls/ --tail right --dot network.dot`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := f.resolve(cmd)
			if err != nil {
				return err
			}
			logger, err := newLogger(cmd.ErrOrStderr(), f.logFormat, f.verbose)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, cfg, logger, cmd.OutOrStdout())
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.cfg.GroupX, "group-x", "x", "", "directory of group X subject matrices")
	fl.StringVarP(&f.cfg.GroupY, "group-y", "y", "", "directory of group Y subject matrices")
	fl.Float64Var(&f.cfg.Threshold, "threshold", f.cfg.Threshold, "primary t-statistic threshold")
	fl.StringVar(&f.cfg.Tail, "tail", f.cfg.Tail, "test direction: both, left (X < Y) or right (X > Y)")
	fl.IntVarP(&f.cfg.Permutations, "permutations", "k", f.cfg.Permutations, "number of permutations")
	fl.Uint64Var(&f.cfg.Seed, "seed", 0, "random seed; 0 picks one and reports it")
	fl.IntVar(&f.cfg.Workers, "workers", 0, "permutation goroutines; 0 uses every CPU")
	fl.Float64Var(&f.cfg.Alpha, "alpha", f.cfg.Alpha, "significance level for corrected p-values")
	fl.StringVarP(&f.cfg.Output, "output", "o", "", "write the JSON report here instead of stdout")
	fl.StringVar(&f.cfg.DOT, "dot", "", "write significant components as Graphviz DOT")
	fl.StringVarP(&f.configPath, "config", "c", "", "YAML run configuration")
	fl.StringVar(&f.logFormat, "log-format", "text", "log format: text or json")
	fl.BoolVarP(&f.verbose, "verbose", "v", false, "log every permutation")
	return cmd
}

// resolve layers explicitly set flags over the config file (if any) over
// the defaults.
func (f *runFlags) resolve(cmd *cobra.Command) (runconfig.Config, error) {
	cfg := f.cfg
	if f.configPath != "" {
		fileCfg, err := runconfig.Load(f.configPath)
		if err != nil {
			return cfg, err
		}
		fl := cmd.Flags()
		override := func(name string, apply func()) {
			if fl.Changed(name) {
				apply()
			}
		}
		override("group-x", func() { fileCfg.GroupX = f.cfg.GroupX })
		override("group-y", func() { fileCfg.GroupY = f.cfg.GroupY })
		override("threshold", func() { fileCfg.Threshold = f.cfg.Threshold })
		override("tail", func() { fileCfg.Tail = f.cfg.Tail })
		override("permutations", func() { fileCfg.Permutations = f.cfg.Permutations })
		override("seed", func() { fileCfg.Seed = f.cfg.Seed })
		override("workers", func() { fileCfg.Workers = f.cfg.Workers })
		override("alpha", func() { fileCfg.Alpha = f.cfg.Alpha })
		override("output", func() { fileCfg.Output = f.cfg.Output })
		override("dot", func() { fileCfg.DOT = f.cfg.DOT })
		cfg = fileCfg
	}
	return cfg, cfg.Validate()
}

func loadGroup(path string) (*nbs.Population, error) {
	group, err := loader.ReadGroup(path)
	if err != nil {
		return nil, err
	}
	return nbs.NewPopulation(loader.Matrices(group))
}

func run(ctx context.Context, cfg runconfig.Config, logger *slog.Logger, stdout io.Writer) error {
	x, err := loadGroup(cfg.GroupX)
	if err != nil {
		return fmt.Errorf("group x: %w", err)
	}
	y, err := loadGroup(cfg.GroupY)
	if err != nil {
		return fmt.Errorf("group y: %w", err)
	}
	logger.Info("loaded groups",
		"nodes", x.Nodes(), "subjects_x", x.Subjects(), "subjects_y", y.Subjects())

	engine, err := cfg.Engine()
	if err != nil {
		return err
	}
	engine.Progress = progressLogger(logger)

	start := time.Now()
	result, err := nbs.ComputeContext(ctx, x, y, engine)
	if err != nil {
		return err
	}
	logger.Info("permutations complete",
		"permutations", len(result.NullDistribution),
		"seed", result.Seed,
		"components", len(result.Components),
		"significant", len(result.Significant(cfg.Alpha)),
		"elapsed", time.Since(start).Round(time.Millisecond))

	rep := newReport(cfg, x.Subjects(), y.Subjects(), result)
	if err := writeReport(rep, cfg.Output, stdout); err != nil {
		return err
	}

	if cfg.DOT != "" {
		b, err := nbs.MarshalDOT(result, "nbs", cfg.Alpha)
		if err != nil {
			return err
		}
		if err := os.WriteFile(cfg.DOT, b, 0o644); err != nil {
			return fmt.Errorf("write dot: %w", err)
		}
		logger.Info("wrote network", "path", cfg.DOT)
	}
	return nil
}

// progressLogger logs every permutation at debug level and every tenth of
// the run at info level.
func progressLogger(logger *slog.Logger) func(done, total int) {
	return func(done, total int) {
		logger.Debug("permutation", "done", done, "total", total)
		step := max(total/10, 1)
		if done%step == 0 || done == total {
			logger.Info("progress", "done", done, "total", total)
		}
	}
}

func writeReport(rep *Report, path string, stdout io.Writer) error {
	w := stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		defer f.Close()
		w = f
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
