package report

import (
	"fmt"
	"log"
	"time"

	"github.com/ejardin/internal/models"
	"gorm.io/gorm"
)

// Notifier delivers a rendered report to a recipient. Failures must be
// returned, not swallowed, so the runner can leave the schedule due.
type Notifier interface {
	Send(to, template string, data map[string]interface{}) error
}

// Runner polls for due report schedules, generates and delivers each
// report, and re-arms the schedule one cadence unit ahead. Records are
// processed independently: a failing schedule is logged and retried on the
// next cycle without touching its siblings.
type Runner struct {
	db       *gorm.DB
	gen      *Generator
	notifier Notifier
	now      func() time.Time
}

func NewRunner(db *gorm.DB, gen *Generator, notifier Notifier) *Runner {
	return &Runner{
		db:       db,
		gen:      gen,
		notifier: notifier,
		now:      time.Now,
	}
}

// CreateSchedule validates and persists a new report schedule. The first
// due instant is one cadence unit from now; LastSentAt stays unset until
// the first successful delivery.
func (r *Runner) CreateSchedule(ownerID uint, kind models.ReportKind, cadence models.Cadence, recipient string) (*models.ReportSchedule, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidReportKind, kind)
	}
	if !cadence.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCadence, cadence)
	}
	if recipient == "" {
		return nil, fmt.Errorf("recipient is required")
	}

	nextDue, err := NextInstant(r.now(), cadence)
	if err != nil {
		return nil, err
	}

	schedule := &models.ReportSchedule{
		OwnerID:   ownerID,
		Kind:      kind,
		Cadence:   cadence,
		Recipient: recipient,
		NextDueAt: nextDue,
	}
	if err := r.db.Create(schedule).Error; err != nil {
		return nil, fmt.Errorf("failed to save schedule: %v", err)
	}

	return schedule, nil
}

// ProcessDue runs one poll cycle: every schedule whose NextDueAt is at or
// before now is processed exactly once, however overdue it is. Delivery is
// at-least-once; the version check on re-arm keeps a replayed cycle from
// sending the same due instant twice.
func (r *Runner) ProcessDue() error {
	now := r.now()

	var schedules []models.ReportSchedule
	if err := r.db.Where("next_due_at <= ?", now).Find(&schedules).Error; err != nil {
		return fmt.Errorf("failed to load due schedules: %v", err)
	}

	for i := range schedules {
		if err := r.processOne(&schedules[i], now); err != nil {
			log.Printf("Error processing report schedule %d: %v", schedules[i].ID, err)
		}
	}

	return nil
}

func (r *Runner) processOne(schedule *models.ReportSchedule, now time.Time) error {
	window, err := LookbackWindow(now, schedule.Cadence)
	if err != nil {
		return err
	}

	result, err := r.gen.Generate(schedule.Kind, window)
	if err != nil {
		return fmt.Errorf("failed to generate %s report: %v", schedule.Kind, err)
	}

	payload := map[string]interface{}{
		"kind":    schedule.Kind,
		"cadence": schedule.Cadence,
		"report":  result,
	}
	if err := r.notifier.Send(schedule.Recipient, "scheduledReport", payload); err != nil {
		return fmt.Errorf("failed to send report to %s: %v", schedule.Recipient, err)
	}

	return r.rearm(schedule, now)
}

// rearm advances the schedule past the delivery that just happened. The
// update only applies if no concurrent cycle advanced the record first.
func (r *Runner) rearm(schedule *models.ReportSchedule, now time.Time) error {
	nextDue, err := NextInstant(now, schedule.Cadence)
	if err != nil {
		return err
	}

	res := r.db.Model(&models.ReportSchedule{}).
		Where("id = ? AND version = ?", schedule.ID, schedule.Version).
		Updates(map[string]interface{}{
			"last_sent_at": now,
			"next_due_at":  nextDue,
			"version":      schedule.Version + 1,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update schedule: %v", res.Error)
	}
	if res.RowsAffected == 0 {
		log.Printf("Report schedule %d already advanced by another cycle, skipping re-arm", schedule.ID)
	}
	return nil
}
