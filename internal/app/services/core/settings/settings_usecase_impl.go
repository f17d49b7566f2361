package settings

import (
	"context"
	"fmt"
	"praktis-service/internal/app/contracts"
	"praktis-service/internal/app/models"
	"praktis-service/internal/app/services/core/availability"
	"praktis-service/internal/pkg/constvars"
	"praktis-service/internal/pkg/dto/requests"
	"praktis-service/internal/pkg/exceptions"
	"sync"

	"go.uber.org/zap"
)

type settingsUsecase struct {
	SettingsRepository  contracts.SettingsRepository
	AvailabilityUsecase contracts.AvailabilityUsecase
	Log                 *zap.Logger
}

var (
	settingsUsecaseInstance contracts.SettingsUsecase
	onceSettingsUsecase     sync.Once
)

func NewSettingsUsecase(
	settingsRepository contracts.SettingsRepository,
	availabilityUsecase contracts.AvailabilityUsecase,
	logger *zap.Logger,
) contracts.SettingsUsecase {
	onceSettingsUsecase.Do(func() {
		settingsUsecaseInstance = &settingsUsecase{
			SettingsRepository:  settingsRepository,
			AvailabilityUsecase: availabilityUsecase,
			Log:                 logger,
		}
	})
	return settingsUsecaseInstance
}

func (uc *settingsUsecase) SaveWeeklyTemplate(ctx context.Context, request *requests.SaveWeeklyTemplate) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("settingsUsecase.SaveWeeklyTemplate called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPractitionerIDKey, request.PractitionerID),
	)

	template := &models.WeeklyTemplate{
		PractitionerID: request.PractitionerID,
		Days:           make([]models.DayRule, 0, len(request.Days)),
	}

	seenWeekdays := make(map[int]bool, 7)
	for _, day := range request.Days {
		if seenWeekdays[day.Weekday] {
			return exceptions.ErrMalformedTemplate(fmt.Errorf("weekday %d appears more than once", day.Weekday))
		}
		seenWeekdays[day.Weekday] = true

		if day.IsAvailable && len(day.Intervals) == 0 {
			return exceptions.ErrMalformedTemplate(fmt.Errorf("weekday %d is available but has no intervals", day.Weekday))
		}

		intervals := convertIntervals(day.Intervals)
		first, second, found, err := availability.FindInternalOverlap(intervals)
		if err != nil {
			uc.Log.Error("settingsUsecase.SaveWeeklyTemplate invalid interval",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Int(constvars.LoggingWeekdayKey, day.Weekday),
				zap.Error(err),
			)
			return exceptions.ErrMalformedTemplate(err)
		}
		if found {
			uc.Log.Warn("settingsUsecase.SaveWeeklyTemplate rejected colliding intervals",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Int(constvars.LoggingWeekdayKey, day.Weekday),
			)
			return exceptions.ErrTemplateIntervalOverlap(day.Weekday, formatInterval(first), formatInterval(second))
		}

		template.Days = append(template.Days, models.DayRule{
			Weekday:     day.Weekday,
			IsAvailable: day.IsAvailable,
			Intervals:   intervals,
		})
	}

	template.SetCreatedAtUpdatedAt()
	if err := uc.SettingsRepository.SaveWeeklyTemplate(ctx, template); err != nil {
		uc.Log.Error("settingsUsecase.SaveWeeklyTemplate error saving template",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}

	uc.bumpAvailabilityVersion(ctx, request.PractitionerID)
	uc.Log.Info("settingsUsecase.SaveWeeklyTemplate succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPractitionerIDKey, request.PractitionerID),
	)
	return nil
}

func (uc *settingsUsecase) SaveException(ctx context.Context, request *requests.SaveScheduleException) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("settingsUsecase.SaveException called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPractitionerIDKey, request.PractitionerID),
		zap.String(constvars.LoggingDateKey, request.Date),
	)

	if request.FullDayBlock && len(request.CustomIntervals) > 0 {
		return exceptions.ErrMalformedException(fmt.Errorf("full day block and custom intervals are mutually exclusive"))
	}
	if !request.FullDayBlock && len(request.CustomIntervals) == 0 {
		return exceptions.ErrMalformedException(fmt.Errorf("exception must either block the day or provide custom intervals"))
	}

	intervals := convertIntervals(request.CustomIntervals)
	first, second, found, err := availability.FindInternalOverlap(intervals)
	if err != nil {
		return exceptions.ErrMalformedException(err)
	}
	if found {
		uc.Log.Warn("settingsUsecase.SaveException rejected colliding intervals",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingDateKey, request.Date),
		)
		return exceptions.ErrExceptionIntervalOverlap(formatInterval(first), formatInterval(second))
	}

	existing, err := uc.SettingsRepository.FindExceptionByDate(ctx, request.PractitionerID, request.Date)
	if err != nil {
		uc.Log.Error("settingsUsecase.SaveException error checking existing exception",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}
	if existing != nil && !request.Replace {
		uc.Log.Warn("settingsUsecase.SaveException duplicate date without replace",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingDateKey, request.Date),
		)
		return exceptions.ErrExceptionDuplicateDate(request.Date)
	}

	exception := &models.ScheduleException{
		PractitionerID:  request.PractitionerID,
		Date:            request.Date,
		Reason:          request.Reason,
		FullDayBlock:    request.FullDayBlock,
		CustomIntervals: intervals,
	}
	exception.SetCreatedAtUpdatedAt()

	if err := uc.SettingsRepository.SaveException(ctx, exception, request.Replace); err != nil {
		uc.Log.Error("settingsUsecase.SaveException error saving exception",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}

	uc.bumpAvailabilityVersion(ctx, request.PractitionerID)
	uc.Log.Info("settingsUsecase.SaveException succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDateKey, request.Date),
	)
	return nil
}

func (uc *settingsUsecase) SaveVacation(ctx context.Context, request *requests.SaveVacationWindow) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("settingsUsecase.SaveVacation called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPractitionerIDKey, request.PractitionerID),
	)

	if request.Start > request.End {
		uc.Log.Warn("settingsUsecase.SaveVacation rejected inverted range",
			zap.String(constvars.LoggingRequestIDKey, requestID),
		)
		return exceptions.ErrVacationInvalidRange(fmt.Errorf("vacation start %s after end %s", request.Start, request.End))
	}

	vacation := &models.VacationWindow{
		PractitionerID: request.PractitionerID,
		Start:          request.Start,
		End:            request.End,
		Message:        request.Message,
	}
	vacation.SetCreatedAtUpdatedAt()

	if err := uc.SettingsRepository.SaveVacation(ctx, vacation); err != nil {
		uc.Log.Error("settingsUsecase.SaveVacation error saving vacation",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}

	uc.bumpAvailabilityVersion(ctx, request.PractitionerID)
	return nil
}

func (uc *settingsUsecase) DeleteVacation(ctx context.Context, practitionerID, vacationID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("settingsUsecase.DeleteVacation called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPractitionerIDKey, practitionerID),
	)

	if err := uc.SettingsRepository.DeleteVacation(ctx, practitionerID, vacationID); err != nil {
		uc.Log.Error("settingsUsecase.DeleteVacation error deleting vacation",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}

	uc.bumpAvailabilityVersion(ctx, practitionerID)
	return nil
}

func (uc *settingsUsecase) SaveBookingPolicy(ctx context.Context, request *requests.SaveBookingPolicy) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("settingsUsecase.SaveBookingPolicy called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPractitionerIDKey, request.PractitionerID),
	)

	policy := &models.BookingPolicy{
		PractitionerID:         request.PractitionerID,
		SessionDurationMinutes: request.SessionDurationMinutes,
		BufferMinutes:          request.BufferMinutes,
		MaxDailyAppointments:   request.MaxDailyAppointments,
		AdvanceBookingDays:     request.AdvanceBookingDays,
	}
	policy.SetCreatedAtUpdatedAt()

	if err := uc.SettingsRepository.SaveBookingPolicy(ctx, policy); err != nil {
		uc.Log.Error("settingsUsecase.SaveBookingPolicy error saving policy",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}

	uc.bumpAvailabilityVersion(ctx, request.PractitionerID)
	return nil
}

// bumpAvailabilityVersion invalidates cached slot lists. The write already
// landed, so a failed bump only means readers see stale slots until the cache
// TTL runs out; that is not worth failing the whole request over.
func (uc *settingsUsecase) bumpAvailabilityVersion(ctx context.Context, practitionerID string) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if err := uc.AvailabilityUsecase.BumpVersion(ctx, practitionerID); err != nil {
		uc.Log.Warn("settingsUsecase failed to bump availability version",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPractitionerIDKey, practitionerID),
			zap.Error(err),
		)
	}
}

func convertIntervals(in []requests.TimeInterval) []models.TimeInterval {
	out := make([]models.TimeInterval, len(in))
	for i, iv := range in {
		out[i] = models.TimeInterval{Start: iv.Start, End: iv.End, IsBreak: iv.IsBreak}
	}
	return out
}

func formatInterval(interval models.TimeInterval) string {
	return fmt.Sprintf("%s-%s", interval.Start, interval.End)
}
