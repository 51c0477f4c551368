package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/mariana/linguaflash/internal/logger"
	"github.com/mariana/linguaflash/internal/repository"
)

// DueReminder periodically surfaces per-user due-card counts. Delivery of
// actual notifications is an external concern; this job only produces the
// counts and logs them.
type DueReminder struct {
	cards     repository.CardRepository
	scheduler *gocron.Scheduler
	log       *logger.Logger
}

// NewDueReminder schedules a daily reminder run at the given hour (UTC).
func NewDueReminder(cards repository.CardRepository, hour int) (*DueReminder, error) {
	r := &DueReminder{
		cards:     cards,
		scheduler: gocron.NewScheduler(time.UTC),
		log:       logger.Default().WithPrefix("reminder"),
	}

	at := fmt.Sprintf("%02d:00", hour)
	if _, err := r.scheduler.Every(1).Day().At(at).Do(r.run); err != nil {
		return nil, fmt.Errorf("failed to schedule reminder job: %w", err)
	}
	return r, nil
}

// Start launches the scheduler in the background.
func (r *DueReminder) Start() {
	r.log.Info("starting daily due-card reminder")
	r.scheduler.StartAsync()
}

// Stop halts the scheduler and waits for a running job to finish.
func (r *DueReminder) Stop() {
	r.scheduler.Stop()
	r.log.Info("reminder stopped")
}

func (r *DueReminder) run() {
	ctx := logger.NewContext(context.Background(), r.log)
	now := time.Now()

	userIDs, err := r.cards.UserIDs(ctx)
	if err != nil {
		r.log.Error("failed to list users: %v", err)
		return
	}

	for _, userID := range userIDs {
		due, err := r.cards.ListDue(ctx, userID, now)
		if err != nil {
			r.log.Error("failed to list due cards: user_id=%d: %v", userID, err)
			continue
		}
		if len(due) == 0 {
			continue
		}
		r.log.Info("user %d has %d cards due for review", userID, len(due))
	}
}
