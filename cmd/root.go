package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/michalsciubisz/modele-kolejkowe/sim"
	"github.com/michalsciubisz/modele-kolejkowe/sim/report"
)

var (
	// CLI flags for the queueing model
	seed          int64   // Base seed; replication i runs with seed+i
	servers       int     // Number of agents
	horizon       float64 // Simulated time after which no new arrivals are admitted
	maxEvents     int64   // Event-count cap (0 = unlimited)
	replications  int     // Number of independent replications
	queueCapacity int     // Wait queue bound (0 = unbounded)
	parallelism   int     // Concurrent replications (0 = serial)
	logLevel      string  // Log verbosity level
	scenarioPath  string  // YAML scenario file; overrides the flags above

	// Distribution flags. The CLI covers the exponential and deterministic
	// families; other families (gamma, lognormal, uniform, normal) are
	// available through --scenario.
	arrivalDist  string  // Arrival family: exponential or deterministic
	arrivalRate  float64 // Arrivals per unit time (mean inter-arrival = 1/rate)
	serviceDist  string  // Service family: exponential or deterministic
	serviceRate  float64 // Services per unit time (mean service = 1/rate)
	patienceRate float64 // Reneging rate; 0 disables abandonment

	// Output paths for the tabular contract
	customersCSV    string // Per-customer rows
	replicationsCSV string // Per-replication aggregate rows
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "modele-kolejkowe",
	Short: "Discrete-event simulator for call-center queueing models",
}

// runCmd executes the simulation using parameters from CLI flags or a scenario file
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the call-center simulation",
	RunE: func(cmd *cobra.Command, args []string) error {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			return fmt.Errorf("invalid log level %q", logLevel)
		}
		logrus.SetLevel(level)

		cfg, err := buildConfig()
		if err != nil {
			return err
		}

		logrus.Infof("starting simulation: %d servers, %d replications, horizon=%g, seed=%d",
			cfg.Servers, cfg.Replications, cfg.Horizon, cfg.Seed)

		start := time.Now()
		results, err := sim.RunReplications(*cfg)
		if err != nil {
			return err
		}
		for _, repErr := range results.Errors {
			logrus.Errorf("%v", repErr)
		}

		printSummary(results.Summary)

		if customersCSV != "" {
			if err := writeCSVFile(customersCSV, func(f *os.File) error {
				return report.WriteCustomersCSV(f, results.Customers)
			}); err != nil {
				return err
			}
			logrus.Infof("wrote per-customer table to %s", customersCSV)
		}
		if replicationsCSV != "" {
			if err := writeCSVFile(replicationsCSV, func(f *os.File) error {
				return report.WriteReplicationsCSV(f, results.Replications)
			}); err != nil {
				return err
			}
			logrus.Infof("wrote per-replication table to %s", replicationsCSV)
		}

		logrus.Infof("simulation complete in %s", time.Since(start))
		return nil
	},
}

// buildConfig assembles the run configuration from the scenario file if one
// was given, otherwise from the individual flags.
func buildConfig() (*sim.Config, error) {
	if scenarioPath != "" {
		return sim.LoadScenario(scenarioPath)
	}

	arrival, err := distSpecFromFlags("arrival-dist", arrivalDist, arrivalRate)
	if err != nil {
		return nil, err
	}
	service, err := distSpecFromFlags("service-dist", serviceDist, serviceRate)
	if err != nil {
		return nil, err
	}

	cfg := &sim.Config{
		Servers:       servers,
		Arrival:       arrival,
		Service:       service,
		Horizon:       horizon,
		MaxEvents:     maxEvents,
		Replications:  replications,
		Seed:          seed,
		QueueCapacity: queueCapacity,
		Parallelism:   parallelism,
	}
	if patienceRate > 0 {
		cfg.Patience = &sim.DistSpec{
			Family: sim.FamilyExponential,
			Params: map[string]float64{"rate": patienceRate},
		}
	}
	return cfg, nil
}

// distSpecFromFlags maps the rate-based CLI flags onto a DistSpec. For the
// deterministic family the rate is interpreted the same way: a fixed
// inter-event time of 1/rate, so switching families keeps the mean.
func distSpecFromFlags(flag, family string, rate float64) (sim.DistSpec, error) {
	switch family {
	case sim.FamilyExponential:
		return sim.DistSpec{Family: sim.FamilyExponential, Params: map[string]float64{"rate": rate}}, nil
	case sim.FamilyDeterministic:
		if rate <= 0 {
			return sim.DistSpec{}, fmt.Errorf("--%s: rate must be positive for the deterministic family", flag)
		}
		return sim.DistSpec{Family: sim.FamilyDeterministic, Params: map[string]float64{"value": 1 / rate}}, nil
	default:
		return sim.DistSpec{}, fmt.Errorf("--%s: unsupported family %q on the command line (use --scenario for %s)", flag, family, family)
	}
}

// printSummary displays the merged cross-replication estimates.
func printSummary(s report.Summary) {
	fmt.Println("=== Simulation Summary ===")
	fmt.Printf("Replications         : %d\n", s.Replications)
	printEstimate("Mean wait", s.MeanWait)
	printEstimate("Mean time in system", s.MeanSojourn)
	printEstimate("Avg queue length", s.AvgQueueLength)
	printEstimate("Utilization", s.Utilization)
	printEstimate("Throughput", s.Throughput)
	printEstimate("Abandonment rate", s.AbandonRate)
}

func printEstimate(name string, e report.Estimate) {
	fmt.Printf("%-21s: %.4f ± %.4f\n", name, e.Mean, e.HalfWidth)
}

func writeCSVFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := write(f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().Int64Var(&seed, "seed", 42, "Base seed; replication i runs with seed+i")
	runCmd.Flags().IntVar(&servers, "servers", 1, "Number of servers (agents)")
	runCmd.Flags().Float64Var(&horizon, "horizon", 1000, "Simulated-time horizon; arrivals beyond it are not admitted (0 = unbounded, requires --max-events)")
	runCmd.Flags().Int64Var(&maxEvents, "max-events", 0, "Event-count cap; the run drains once reached (0 = unlimited)")
	runCmd.Flags().IntVar(&replications, "replications", 1, "Number of independent replications")
	runCmd.Flags().IntVar(&queueCapacity, "queue-capacity", 0, "Wait queue bound; arrivals beyond it are lost (0 = unbounded)")
	runCmd.Flags().IntVar(&parallelism, "parallel", 0, "Replications run concurrently (0 = serial)")
	runCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().StringVar(&scenarioPath, "scenario", "", "YAML scenario file; overrides the other configuration flags")

	runCmd.Flags().StringVar(&arrivalDist, "arrival-dist", sim.FamilyExponential, "Arrival family: exponential or deterministic")
	runCmd.Flags().Float64Var(&arrivalRate, "arrival-rate", 1.0, "Arrival rate λ (mean inter-arrival = 1/λ)")
	runCmd.Flags().StringVar(&serviceDist, "service-dist", sim.FamilyExponential, "Service family: exponential or deterministic")
	runCmd.Flags().Float64Var(&serviceRate, "service-rate", 1.2, "Service rate μ (mean service = 1/μ)")
	runCmd.Flags().Float64Var(&patienceRate, "patience-rate", 0, "Reneging rate; waiting customers abandon after Exp(rate) patience (0 = infinite patience)")

	runCmd.Flags().StringVar(&customersCSV, "customers-csv", "", "Write the per-customer table to this path")
	runCmd.Flags().StringVar(&replicationsCSV, "replications-csv", "", "Write the per-replication table to this path")

	rootCmd.AddCommand(runCmd)
}
