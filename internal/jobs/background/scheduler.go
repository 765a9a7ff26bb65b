package background

import (
	"context"
	"log"
	"time"

	"shopstock/internal/jobs"

	"github.com/go-co-op/gocron/v2"
)

// JobScheduler runs the periodic background jobs.
type JobScheduler struct {
	scheduler gocron.Scheduler
	alertSvc  *jobs.LowStockAlertService
}

func NewJobScheduler(alertSvc *jobs.LowStockAlertService, alertInterval time.Duration) (*JobScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	js := &JobScheduler{
		scheduler: scheduler,
		alertSvc:  alertSvc,
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(alertInterval),
		gocron.NewTask(js.runLowStockCheck, context.Background()),
		gocron.WithName("low-stock-alerts"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, err
	}

	return js, nil
}

func (js *JobScheduler) Start() {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
}

func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) runLowStockCheck(ctx context.Context) {
	if err := js.alertSvc.Run(ctx); err != nil {
		log.Printf("Low stock check failed: %v", err)
	}
}
