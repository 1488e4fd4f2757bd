package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/plus3/okit/config"
	"github.com/plus3/okit/ecs"
	"github.com/plus3/okit/framelog"
	"go.uber.org/zap"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	entityCount := flag.Int("entities", 10000, "The initial number of entities to create.")
	churn := flag.Int("churn", 100, "Component replacements per frame.")
	maxLifetime := flag.Float64("max-lifetime", 2.0, "Upper bound of an entity's lifetime in seconds.")
	seed := flag.Int64("seed", 1, "Random seed.")
	configPath := flag.String("config", "", "Optional TOML configuration file.")
	showLog := flag.Bool("log", false, "Print frame log entries to stdout.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		cfg = loaded
	}

	logger, err := cfg.Logging.Build()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, logger, options{
		duration:       *duration,
		entityCount:    *entityCount,
		churn:          *churn,
		maxLifetime:    *maxLifetime,
		seed:           *seed,
		showLog:        *showLog,
		gcPauseMetrics: *gcPauseMetrics,
	}); err != nil {
		logger.Fatal("stress test failed", zap.Error(err))
	}
}

type options struct {
	duration       time.Duration
	entityCount    int
	churn          int
	maxLifetime    float64
	seed           int64
	showLog        bool
	gcPauseMetrics bool
}

func run(cfg *config.Config, logger *zap.Logger, opts options) error {
	logger.Info("starting ECS stress test")

	// 1. Setup Scene, Scheduler and the frame log
	scene := ecs.NewScene("stress")
	scheduler := ecs.NewScheduler(scene)

	hubOpts, err := cfg.HubOptions(logger)
	if err != nil {
		return err
	}
	hubOpts = append(hubOpts, framelog.WithFrameCounter(scheduler))
	if !opts.showLog {
		hubOpts = append(hubOpts, framelog.WithConsole(framelog.Discard))
	}
	hub := framelog.NewHub(hubOpts...)
	defer hub.Close()
	stressLog := hub.NewLog("Stress", "S")

	rng := rand.New(rand.NewSource(opts.seed))
	counters := &Counters{}

	particles := ecs.NewComponentSystem[*Particle]()
	lifetimes := ecs.NewComponentSystem[*Lifetime]()
	tags := ecs.NewComponentSystem[*Tag]()
	scheduler.Register(particles)
	scheduler.Register(lifetimes)
	scene.AddSystem(tags)
	scheduler.Register(&ReaperSystem{
		Lifetimes:   lifetimes,
		MaxLifetime: opts.maxLifetime,
		Counters:    counters,
		Log:         stressLog,
		rng:         rng,
	})
	scheduler.Register(&ChurnSystem{
		Tags:     tags,
		PerFrame: opts.churn,
		Counters: counters,
		rng:      rng,
	})

	// 2. Populate the scene with initial entities
	logger.Info("populating scene", zap.Int("entities", opts.entityCount))
	for range opts.entityCount {
		scene.AddEntity(newStressEntity(rng, opts.maxLifetime, stressLog))
	}
	counters.Spawned = int64(opts.entityCount)
	logger.Info("population complete")

	// 3. Run the simulation loop
	report := &Report{
		Duration:       opts.duration,
		Entities:       opts.entityCount,
		Churn:          opts.churn,
		GCPauseMetrics: opts.gcPauseMetrics,
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	logger.Info("running simulation", zap.Duration("duration", opts.duration))
	ctx, cancel := context.WithTimeout(context.Background(), opts.duration)
	defer cancel()

	startTime := time.Now()
	var totalUpdates int64
	lastFrameTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			deltaTime := time.Since(lastFrameTime)
			lastFrameTime = time.Now()

			updateStart := time.Now()
			scheduler.Once(deltaTime.Seconds())
			updateDuration := time.Since(updateStart)

			report.UpdateTime.Samples = append(report.UpdateTime.Samples, updateDuration)
			totalUpdates++
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TotalUpdates = totalUpdates
	report.UpdateTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)
	report.Counters = *counters
	report.FinalEntities = scene.Len()
	report.LogEntries = hub.Aggregate().Len()
	report.Scheduler = scheduler.GetStats()

	logger.Info("simulation finished", zap.Int64("frames", totalUpdates))

	// 4. Generate Report to Console
	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		return fmt.Errorf("generate report: %w", err)
	}
	fmt.Println("--- End of Report ---")

	logger.Info("stress test complete")
	return nil
}
