package appointments

import (
	"context"
	"praktis-service/internal/app/config"
	"praktis-service/internal/app/contracts"
	"praktis-service/internal/pkg/constvars"
	"praktis-service/internal/pkg/utils"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ReminderWorker periodically publishes reminder events for tomorrow's booked
// appointments. A Redis leader lock keeps exactly one instance publishing
// when the service runs with multiple replicas.
type ReminderWorker struct {
	log          *zap.Logger
	cfg          *config.InternalConfig
	locker       contracts.LockerService
	appointments contracts.AppointmentRepository
	publisher    contracts.BookingEventPublisher
	location     *time.Location
	cron         *cron.Cron
	runCtx       context.Context
	cancel       context.CancelFunc
}

func NewReminderWorker(
	log *zap.Logger,
	cfg *config.InternalConfig,
	lockerService contracts.LockerService,
	appointmentRepository contracts.AppointmentRepository,
	publisher contracts.BookingEventPublisher,
	location *time.Location,
) *ReminderWorker {
	return &ReminderWorker{
		log:          log,
		cfg:          cfg,
		locker:       lockerService,
		appointments: appointmentRepository,
		publisher:    publisher,
		location:     location,
	}
}

// Start schedules the periodic run with the configured cron spec.
func (w *ReminderWorker) Start(ctx context.Context) {
	w.runCtx, w.cancel = context.WithCancel(ctx)
	c := cron.New()
	spec := w.cfg.App.ReminderWorkerCronSpec
	_, err := c.AddFunc(spec, func() { w.runOnce(w.runCtx) })
	if err != nil {
		w.log.Warn("reminderWorker failed to schedule with provided cron spec; falling back to @hourly", zap.Error(err))
		c = cron.New()
		_, _ = c.AddFunc("@hourly", func() { w.runOnce(w.runCtx) })
	}
	c.Start()
	w.cron = c
}

// Stop cancels in-flight runs and waits for the cron scheduler to drain.
func (w *ReminderWorker) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	if w.cron != nil {
		ctx := w.cron.Stop()
		<-ctx.Done()
	}
}

func (w *ReminderWorker) runOnce(ctx context.Context) {
	ttl := 2 * time.Minute
	acquired, token, err := w.locker.TryLock(ctx, constvars.RedisKeyReminderWorkerLeaderFormat, ttl)
	if err != nil {
		w.log.Warn("reminderWorker leader lock attempt failed", zap.Error(err))
		return
	}
	if !acquired {
		w.log.Info("reminderWorker leader lock not acquired; another instance is running")
		return
	}
	defer w.locker.Unlock(ctx, constvars.RedisKeyReminderWorkerLeaderFormat, token)

	refreshCtx, cancelRefresh := context.WithCancel(ctx)
	defer cancelRefresh()
	go func() {
		tick := time.NewTicker(ttl / 2)
		defer tick.Stop()
		for {
			select {
			case <-refreshCtx.Done():
				return
			case <-tick.C:
				if err := w.locker.Refresh(ctx, constvars.RedisKeyReminderWorkerLeaderFormat, token, ttl); err != nil {
					w.log.Warn("reminderWorker failed to refresh leader lock TTL", zap.Error(err))
				}
			}
		}
	}()

	tomorrow := utils.FormatDateOnly(time.Now().In(w.location).AddDate(0, 0, 1))
	booked, err := w.appointments.FindBookedOnDate(ctx, tomorrow)
	if err != nil {
		w.log.Warn("reminderWorker failed to load booked appointments",
			zap.String(constvars.LoggingDateKey, tomorrow),
			zap.Error(err),
		)
		return
	}

	published := 0
	for _, appointment := range booked {
		if ctx.Err() != nil {
			return
		}
		event := contracts.BookingEvent{
			ID:             uuid.NewString(),
			Type:           constvars.BookingEventReminder,
			AppointmentID:  appointment.ID,
			PractitionerID: appointment.PractitionerID,
			PatientID:      appointment.PatientID,
			Date:           appointment.Date,
			Start:          appointment.Start,
		}
		if err := w.publisher.Publish(ctx, event); err != nil {
			w.log.Warn("reminderWorker failed to publish reminder",
				zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
				zap.Error(err),
			)
			continue
		}
		published++
		if w.cfg.App.ReminderWorkerBatchSize > 0 && published >= w.cfg.App.ReminderWorkerBatchSize {
			break
		}
	}

	w.log.Info("reminderWorker run completed",
		zap.String(constvars.LoggingDateKey, tomorrow),
		zap.Int("published_count", published),
	)
}
