package report

import (
	"errors"
	"testing"
	"time"

	"github.com/ejardin/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNotifier struct {
	sent []sentMessage
	fail map[string]error
}

type sentMessage struct {
	to       string
	template string
	data     map[string]interface{}
}

func (f *fakeNotifier) Send(to, template string, data map[string]interface{}) error {
	if err, ok := f.fail[to]; ok {
		return err
	}
	f.sent = append(f.sent, sentMessage{to: to, template: template, data: data})
	return nil
}

func newTestRunner(t *testing.T, notifier Notifier) *Runner {
	t.Helper()
	db := newTestDB(t)
	return NewRunner(db, NewGenerator(db), notifier)
}

func TestCreateSchedule(t *testing.T) {
	runner := newTestRunner(t, &fakeNotifier{})
	start := time.Now()

	schedule, err := runner.CreateSchedule(7, models.ReportKindSales, models.CadenceWeekly, "admin@ejardin.fr")
	require.NoError(t, err)

	assert.Equal(t, uint(7), schedule.OwnerID)
	assert.Nil(t, schedule.LastSentAt)
	assert.True(t, schedule.NextDueAt.After(start.AddDate(0, 0, 6)),
		"weekly schedule must first fire about a week out")

	var stored models.ReportSchedule
	require.NoError(t, runner.db.First(&stored, schedule.ID).Error)
	assert.Equal(t, models.ReportKindSales, stored.Kind)
}

func TestCreateScheduleRejectsInvalidInput(t *testing.T) {
	runner := newTestRunner(t, &fakeNotifier{})

	_, err := runner.CreateSchedule(1, models.ReportKindSales, models.Cadence("HOURLY"), "admin@ejardin.fr")
	assert.ErrorIs(t, err, ErrInvalidCadence)

	_, err = runner.CreateSchedule(1, models.ReportKind("REVENUE"), models.CadenceDaily, "admin@ejardin.fr")
	assert.ErrorIs(t, err, ErrInvalidReportKind)

	_, err = runner.CreateSchedule(1, models.ReportKindSales, models.CadenceDaily, "")
	assert.Error(t, err)

	var count int64
	require.NoError(t, runner.db.Model(&models.ReportSchedule{}).Count(&count).Error)
	assert.Zero(t, count, "rejected schedules must not be persisted")
}

func seedDueSchedule(t *testing.T, runner *Runner, kind models.ReportKind, recipient string, due time.Time) *models.ReportSchedule {
	t.Helper()
	schedule := &models.ReportSchedule{
		OwnerID:   1,
		Kind:      kind,
		Cadence:   models.CadenceDaily,
		Recipient: recipient,
		NextDueAt: due,
	}
	require.NoError(t, runner.db.Create(schedule).Error)
	return schedule
}

func TestProcessDueSendsAndRearms(t *testing.T) {
	notifier := &fakeNotifier{}
	runner := newTestRunner(t, notifier)

	now := time.Date(2024, 5, 1, 6, 0, 0, 0, time.UTC)
	runner.now = func() time.Time { return now }

	schedule := seedDueSchedule(t, runner, models.ReportKindInventory, "ops@ejardin.fr", now.Add(-time.Hour))

	require.NoError(t, runner.ProcessDue())

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "ops@ejardin.fr", notifier.sent[0].to)
	assert.Equal(t, "scheduledReport", notifier.sent[0].template)
	assert.Equal(t, models.ReportKindInventory, notifier.sent[0].data["kind"])

	var updated models.ReportSchedule
	require.NoError(t, runner.db.First(&updated, schedule.ID).Error)
	require.NotNil(t, updated.LastSentAt)
	assert.True(t, updated.LastSentAt.Equal(now))
	assert.True(t, updated.NextDueAt.After(schedule.NextDueAt),
		"re-armed schedule must be due strictly later")
	assert.Equal(t, schedule.Version+1, updated.Version)
}

func TestProcessDueSkipsFutureSchedules(t *testing.T) {
	notifier := &fakeNotifier{}
	runner := newTestRunner(t, notifier)

	seedDueSchedule(t, runner, models.ReportKindInventory, "ops@ejardin.fr", time.Now().Add(time.Hour))

	require.NoError(t, runner.ProcessDue())
	assert.Empty(t, notifier.sent)
}

func TestProcessDueNotifierFailureLeavesScheduleDue(t *testing.T) {
	notifier := &fakeNotifier{
		fail: map[string]error{"broken@ejardin.fr": errors.New("smtp unavailable")},
	}
	runner := newTestRunner(t, notifier)

	now := time.Date(2024, 5, 1, 6, 0, 0, 0, time.UTC)
	runner.now = func() time.Time { return now }

	due := now.Add(-time.Hour)
	failing := seedDueSchedule(t, runner, models.ReportKindInventory, "broken@ejardin.fr", due)
	sibling := seedDueSchedule(t, runner, models.ReportKindInventory, "ops@ejardin.fr", due)

	require.NoError(t, runner.ProcessDue())

	// The failing schedule keeps its due instant so the next cycle retries.
	var reloaded models.ReportSchedule
	require.NoError(t, runner.db.First(&reloaded, failing.ID).Error)
	assert.True(t, reloaded.NextDueAt.Equal(due))
	assert.Nil(t, reloaded.LastSentAt)

	// Its sibling in the same cycle is unaffected.
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, sibling.Recipient, notifier.sent[0].to)
}

func TestProcessDueCustomersKindIsLoggedNotSent(t *testing.T) {
	notifier := &fakeNotifier{}
	runner := newTestRunner(t, notifier)

	now := time.Now()
	schedule := seedDueSchedule(t, runner, models.ReportKindCustomers, "ops@ejardin.fr", now.Add(-time.Minute))

	require.NoError(t, runner.ProcessDue())

	assert.Empty(t, notifier.sent)
	var reloaded models.ReportSchedule
	require.NoError(t, runner.db.First(&reloaded, schedule.ID).Error)
	assert.True(t, reloaded.NextDueAt.Equal(schedule.NextDueAt))
}

func TestProcessDueReplayIsNoOp(t *testing.T) {
	notifier := &fakeNotifier{}
	runner := newTestRunner(t, notifier)

	now := time.Date(2024, 5, 1, 6, 0, 0, 0, time.UTC)
	runner.now = func() time.Time { return now }

	seedDueSchedule(t, runner, models.ReportKindInventory, "ops@ejardin.fr", now.Add(-time.Hour))

	require.NoError(t, runner.ProcessDue())
	require.NoError(t, runner.ProcessDue())

	assert.Len(t, notifier.sent, 1, "a re-armed schedule must not fire again in a replayed cycle")
}

func TestRearmStaleVersionIsNoOp(t *testing.T) {
	notifier := &fakeNotifier{}
	runner := newTestRunner(t, notifier)

	now := time.Now()
	schedule := seedDueSchedule(t, runner, models.ReportKindInventory, "ops@ejardin.fr", now.Add(-time.Hour))

	// Another cycle advances the record first.
	require.NoError(t, runner.db.Model(&models.ReportSchedule{}).
		Where("id = ?", schedule.ID).
		Update("version", schedule.Version+1).Error)

	require.NoError(t, runner.rearm(schedule, now))

	var reloaded models.ReportSchedule
	require.NoError(t, runner.db.First(&reloaded, schedule.ID).Error)
	assert.Nil(t, reloaded.LastSentAt, "stale re-arm must not overwrite the winning cycle")
	assert.True(t, reloaded.NextDueAt.Equal(schedule.NextDueAt))
}
