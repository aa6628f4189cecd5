package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"MarketPress/internal/app"
	"MarketPress/internal/config"
	"MarketPress/internal/recorder"
	"MarketPress/internal/schedule"
	"MarketPress/internal/tape"
)

// Exit codes: 0 normal completion (including a gate skip), 1 unhandled error,
// 2 a run in which every item failed.
const (
	exitOK        = 0
	exitError     = 1
	exitAllFailed = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	var (
		task       string
		configPath string
		force      bool
		daemon     bool
	)
	flag.StringVar(&task, "task", "all", "task to run: tape|heatmap|fred|ratio|news|all")
	flag.StringVar(&configPath, "config", defaultConfigPath(), "path to config.yaml")
	flag.BoolVar(&force, "force", false, "bypass the schedule gate")
	flag.BoolVar(&daemon, "daemon", false, "run on cron schedules instead of once")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("[FATAL] load config: %v", err)
		return exitError
	}

	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	a := app.New(cfg, rec)

	if daemon {
		return runDaemon(a, cfg)
	}

	gate, err := schedule.NewGate(cfg.Schedule.Timezone, cfg.Schedule.Targets,
		time.Duration(cfg.Schedule.ToleranceMin)*time.Minute)
	if err != nil {
		log.Printf("[FATAL] %v", err)
		return exitError
	}
	if !force {
		if ok, reason := gate.ShouldRun(time.Now()); !ok {
			log.Printf("[INFO] skipping run: %s", reason)
			return exitOK
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := runTask(ctx, a, task); err != nil {
		if errors.Is(err, tape.ErrAllFailed) {
			log.Printf("[ERROR] %s: %v", task, err)
			return exitAllFailed
		}
		log.Printf("[ERROR] %s: %v", task, err)
		return exitError
	}
	return exitOK
}

func runTask(ctx context.Context, a *app.App, task string) error {
	switch task {
	case "tape":
		return a.RunTape(ctx)
	case "heatmap":
		return a.RunHeatmap(ctx)
	case "fred":
		return a.RunFRED(ctx)
	case "ratio":
		return a.RunRatio()
	case "news":
		return a.RunNews(ctx)
	case "all":
		return runAll(ctx, a)
	default:
		return fmt.Errorf("unknown task %q", task)
	}
}

// runAll runs every pipeline. Config errors abort before any fetching; an
// all-failed outcome from any batch carries through to the exit code.
func runAll(ctx context.Context, a *app.App) error {
	for _, task := range []string{"tape", "heatmap", "fred", "news"} {
		if err := a.Cfg.ValidateFor(task); err != nil {
			return err
		}
	}

	var allFailed, firstErr error
	step := func(name string, fn func() error) {
		if err := fn(); err != nil {
			if errors.Is(err, tape.ErrAllFailed) {
				log.Printf("[ERROR] %s: %v", name, err)
				if allFailed == nil {
					allFailed = err
				}
				return
			}
			log.Printf("[ERROR] %s: %v", name, err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	step("tape", func() error { return a.RunTape(ctx) })
	step("heatmap", func() error { return a.RunHeatmap(ctx) })
	step("fred", func() error { return a.RunFRED(ctx) })
	step("ratio", a.RunRatio)
	step("news", func() error { return a.RunNews(ctx) })

	if firstErr != nil {
		return firstErr
	}
	return allFailed
}

func runDaemon(a *app.App, cfg *config.Config) int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	d := schedule.NewDaemon()
	err := d.Register([]schedule.Task{
		{Name: "tape", Spec: cfg.Schedule.TapeCron, Run: func() error { return a.RunTape(ctx) }},
		{Name: "heatmap", Spec: cfg.Schedule.HeatmapCron, Run: func() error { return a.RunHeatmap(ctx) }},
		{Name: "fred", Spec: cfg.Schedule.FredCron, Run: func() error {
			if err := a.RunFRED(ctx); err != nil {
				return err
			}
			return a.RunRatio()
		}},
		{Name: "news", Spec: cfg.Schedule.NewsCron, Run: func() error { return a.RunNews(ctx) }},
	})
	if err != nil {
		log.Printf("[FATAL] register cron tasks: %v", err)
		return exitError
	}
	d.Start()
	defer d.Stop()

	log.Println("[INFO] feedgen daemon running. Press Ctrl+C to stop.")
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	return exitOK
}

func defaultConfigPath() string {
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		return v
	}
	return "configs/config.yaml"
}
