package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/cellsim/cellsim/lineage"
	"github.com/cellsim/cellsim/sim"
	"github.com/cellsim/cellsim/sim/trace"
)

var (
	// CLI flags for the run
	configPath      string  // YAML run config (flags override it)
	endTime         float64 // Max time to run physics
	timestep        float64 // Physics timestep
	friction        float64 // Velocity multiplier applied every step
	maxVelocity     float64 // Velocity magnitude cap
	maxAcceleration float64 // Acceleration magnitude cap
	seed            int64   // Seed for division angles
	outputPath      string  // Time-series destination ("" = stdout)
	printSummary    bool    // Print run summary YAML to stderr
)

// runSummary is the YAML document printed by --summary.
type runSummary struct {
	Run    *sim.RunReport `yaml:"run"`
	Frames *trace.Summary `yaml:"frames"`
}

// runCmd executes the simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the lineage-driven particle simulation",
	Run: func(cmd *cobra.Command, args []string) {
		forest, err := loadForest(forestText, forestFile)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		cfg, err := resolveConfig(cmd.Flags())
		if err != nil {
			logrus.Fatalf("%v", err)
		}

		out := cmd.OutOrStdout()
		if outputPath != "" {
			f, err := os.Create(outputPath)
			if err != nil {
				logrus.Fatalf("Error creating output file %s: %v", outputPath, err)
			}
			defer func() {
				if closeErr := f.Close(); closeErr != nil {
					logrus.Fatalf("Error closing output file %s: %v", outputPath, closeErr)
				}
			}()
			out = f
		}
		var summaryOut io.Writer
		if printSummary {
			summaryOut = cmd.ErrOrStderr()
		}

		startTime := time.Now()
		if _, err := runSimulation(cfg, forest, out, summaryOut); err != nil {
			logrus.Fatalf("%v", err)
		}
		logrus.Infof("Simulation complete in %v.", time.Since(startTime))
	},
}

// resolveConfig starts from the defaults (or --config), then applies every
// flag the user set explicitly, and validates the result.
func resolveConfig(flags *pflag.FlagSet) (sim.Config, error) {
	cfg := sim.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = sim.LoadConfig(configPath); err != nil {
			return sim.Config{}, err
		}
	}

	overrides := []struct {
		flag  string
		apply func()
	}{
		{"end-time", func() { cfg.EndTime = endTime }},
		{"timestep", func() { cfg.Timestep = timestep }},
		{"friction", func() { cfg.Friction = friction }},
		{"max-velocity", func() { cfg.MaxVelocity = maxVelocity }},
		{"max-acceleration", func() { cfg.MaxAcceleration = maxAcceleration }},
		{"seed", func() { cfg.Seed = seed }},
	}
	for _, o := range overrides {
		if flags.Changed(o.flag) {
			o.apply()
		}
	}

	if err := cfg.Validate(); err != nil {
		return sim.Config{}, fmt.Errorf("invalid run config: %w", err)
	}
	return cfg, nil
}

// runSimulation writes the time series to out and, when summaryOut is not
// nil, a YAML run summary to summaryOut.
func runSimulation(cfg sim.Config, forest lineage.Forest, out, summaryOut io.Writer) (*sim.RunReport, error) {
	w := trace.NewWriter(out)
	var rec trace.Recorder = w
	var summarizer *trace.Summarizer
	if summaryOut != nil {
		summarizer = trace.NewSummarizer()
		rec = trace.Tee(w, summarizer)
	}

	s, err := sim.NewSimulator(cfg, forest, rec)
	if err != nil {
		return nil, err
	}
	report, err := s.Run()
	if err != nil {
		return nil, err
	}
	if err := w.Flush(); err != nil {
		return nil, fmt.Errorf("writing time series: %w", err)
	}

	if summarizer != nil {
		enc := yaml.NewEncoder(summaryOut)
		if err := enc.Encode(runSummary{Run: report, Frames: summarizer.Summary()}); err != nil {
			return nil, fmt.Errorf("writing summary: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("writing summary: %w", err)
		}
	}
	return report, nil
}

func init() {
	defaults := sim.DefaultConfig()

	addForestFlags(runCmd)
	runCmd.Flags().StringVar(&configPath, "config", "", "YAML run config; explicit flags take precedence")
	runCmd.Flags().Float64VarP(&endTime, "end-time", "t", defaults.EndTime, "Max time to run physics")
	runCmd.Flags().Float64VarP(&timestep, "timestep", "d", defaults.Timestep, "Physics timestep")
	runCmd.Flags().Float64VarP(&friction, "friction", "r", defaults.Friction, "Particle friction multiplier")
	runCmd.Flags().Float64VarP(&maxVelocity, "max-velocity", "v", defaults.MaxVelocity, "Max particle velocity")
	runCmd.Flags().Float64VarP(&maxAcceleration, "max-acceleration", "a", defaults.MaxAcceleration, "Max particle acceleration")
	runCmd.Flags().Int64Var(&seed, "seed", defaults.Seed, "Seed for division angles")
	runCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the time series here instead of stdout")
	runCmd.Flags().BoolVar(&printSummary, "summary", false, "Print a YAML run summary to stderr")

	rootCmd.AddCommand(runCmd)
}
