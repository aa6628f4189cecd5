package schedule

import (
	"fmt"
	"log"

	"github.com/robfig/cron/v3"
)

// Task is one cron-scheduled pipeline run.
type Task struct {
	Name string
	Spec string // six-field cron expression (with seconds)
	Run  func() error
}

// Daemon drives the pipelines on cron schedules for deployments without an
// external scheduler.
type Daemon struct {
	Cron *cron.Cron
}

func NewDaemon() *Daemon {
	return &Daemon{Cron: cron.New(cron.WithSeconds())}
}

// Register wires every task into the cron runner. Task failures are logged,
// never fatal: the next scheduled run gets a fresh chance.
func (d *Daemon) Register(tasks []Task) error {
	for _, task := range tasks {
		task := task
		_, err := d.Cron.AddFunc(task.Spec, func() {
			log.Printf("[INFO] running scheduled task %s", task.Name)
			if err := task.Run(); err != nil {
				log.Printf("[ERROR] task %s: %v", task.Name, err)
			}
		})
		if err != nil {
			return fmt.Errorf("register task %s (%q): %w", task.Name, task.Spec, err)
		}
	}
	return nil
}

func (d *Daemon) Start() {
	d.Cron.Start()
	log.Println("[INFO] scheduler started")
}

func (d *Daemon) Stop() {
	d.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}
