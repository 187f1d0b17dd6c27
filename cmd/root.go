package cmd

import (
	"errors"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/queuesim/queuesim/sim"
)

var (
	// CLI flags for the queueing system under simulation
	seed           int64   // Master seed for reproducible experiments
	logLevel       string  // Log verbosity level
	channels       int     // Number of service channels
	bufferCapacity int     // Waiting-line capacity (-1 = unbounded)
	lambdaRate     float64 // Arrival rate for the default exponential flow
	muRate         float64 // Service rate for the default exponential flow
	horizon        float64 // Simulated time each realization runs for
	realizations   int     // Number of independent Monte Carlo realizations
	epsilon        float64 // Relative-error tolerance for validation

	// CLI flags for scenario presets
	scenarioFile string // YAML file with named scenarios
	scenarioName string // Scenario to load from the file
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "queuesim",
	Short: "Discrete-event Monte Carlo simulator for multi-channel queueing systems",
}

// runCmd executes the simulation using parameters from CLI flags or a
// scenario preset, prints aggregated statistics, and validates against the
// Markovian closed forms when the configuration is exponential/exponential.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run Monte Carlo realizations of a queueing system",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		cfg, markovian, err := buildConfig()
		if err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}

		logrus.Infof("Starting %d realizations: channels=%d, buffer=%d, horizon=%.1f, seed=%d",
			realizations, cfg.Channels, cfg.BufferCapacity, horizon, cfg.Seed)

		startTime := time.Now()

		stats, err := sim.RunRealizations(cfg, horizon, realizations)
		if err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		agg, err := sim.Combine(stats)
		if err != nil {
			logrus.Fatalf("Aggregation failed: %v", err)
		}

		PrintAggregated(os.Stdout, agg)

		// Exponential arrivals and service with an unbounded buffer is the
		// Markovian case the closed forms cover. A failed reference is
		// reported but never hides the simulated results.
		if markovian && cfg.BufferCapacity == sim.UnboundedBuffer {
			ref, refErr := analyticReference(cfg.Channels)
			switch {
			case errors.Is(refErr, sim.ErrUnstable):
				logrus.Warnf("No steady state for this configuration, skipping validation: %v", refErr)
			case refErr != nil:
				logrus.Warnf("Analytic reference unavailable: %v", refErr)
			default:
				PrintValidation(os.Stdout, sim.Check(agg, ref, epsilon))
			}
		}

		logrus.Infof("Simulation complete in %v.", time.Since(startTime))
	},
}

// buildConfig assembles the simulator configuration from either a scenario
// preset or the direct flags. The second return value reports whether both
// distributions are exponential (eligible for analytic validation).
func buildConfig() (sim.Config, bool, error) {
	if scenarioFile != "" {
		scenario, err := GetScenario(scenarioFile, scenarioName)
		if err != nil {
			return sim.Config{}, false, err
		}
		scenario.applyTo(&horizon, &realizations, &epsilon, &seed)
		cfg, err := scenario.SimConfig(seed)
		if err != nil {
			return sim.Config{}, false, err
		}
		markovian := scenario.Arrival.Type == "exponential" && scenario.Service.Type == "exponential"
		if markovian {
			lambdaRate = scenario.Arrival.Params["rate"]
			muRate = scenario.Service.Params["rate"]
		}
		return cfg, markovian, nil
	}

	arrival, err := sim.NewExponential(lambdaRate)
	if err != nil {
		return sim.Config{}, false, err
	}
	service, err := sim.NewExponential(muRate)
	if err != nil {
		return sim.Config{}, false, err
	}
	return sim.Config{
		Channels:       channels,
		BufferCapacity: bufferCapacity,
		Arrival:        arrival,
		Service:        service,
		Seed:           seed,
	}, true, nil
}

// analyticReference picks the closed form matching the channel count.
func analyticReference(n int) (sim.ReferenceStatistics, error) {
	if n == 1 {
		return sim.MM1(lambdaRate, muRate)
	}
	return sim.MMN(lambdaRate, muRate, n)
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().Int64Var(&seed, "seed", 18, "Master seed for reproducible experiments")
	runCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")

	runCmd.Flags().IntVar(&channels, "channels", 1, "Number of service channels")
	runCmd.Flags().IntVar(&bufferCapacity, "buffer", sim.UnboundedBuffer, "Waiting-line capacity (-1 = unbounded)")
	runCmd.Flags().Float64Var(&lambdaRate, "lambda", 0.4, "Arrival rate (exponential inter-arrival times)")
	runCmd.Flags().Float64Var(&muRate, "mu", 0.5, "Service rate per channel (exponential service times)")
	runCmd.Flags().Float64Var(&horizon, "horizon", 10000, "Simulated time each realization runs for")
	runCmd.Flags().IntVar(&realizations, "realizations", 100, "Number of independent realizations")
	runCmd.Flags().Float64Var(&epsilon, "epsilon", 0.05, "Relative-error tolerance for validation")

	runCmd.Flags().StringVar(&scenarioFile, "scenario-file", "", "YAML file with named scenario presets")
	runCmd.Flags().StringVar(&scenarioName, "scenario", "", "Scenario name to load from --scenario-file")

	rootCmd.AddCommand(runCmd)
}
