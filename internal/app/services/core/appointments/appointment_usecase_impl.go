package appointments

import (
	"context"
	"errors"
	"fmt"
	"praktis-service/internal/app/config"
	"praktis-service/internal/app/contracts"
	"praktis-service/internal/app/models"
	"praktis-service/internal/app/services/core/availability"
	"praktis-service/internal/pkg/constvars"
	"praktis-service/internal/pkg/dto/requests"
	"praktis-service/internal/pkg/dto/responses"
	"praktis-service/internal/pkg/exceptions"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type appointmentUsecase struct {
	AppointmentRepository  contracts.AppointmentRepository
	SettingsRepository     contracts.SettingsRepository
	PractitionerRepository contracts.PractitionerRepository
	AvailabilityUsecase    contracts.AvailabilityUsecase
	LockerService          contracts.LockerService
	EventPublisher         contracts.BookingEventPublisher
	InternalConfig         *config.InternalConfig
	Location               *time.Location
	Log                    *zap.Logger
}

var (
	appointmentUsecaseInstance contracts.AppointmentUsecase
	onceAppointmentUsecase     sync.Once
	appointmentUsecaseError    error
)

func NewAppointmentUsecase(
	appointmentRepository contracts.AppointmentRepository,
	settingsRepository contracts.SettingsRepository,
	practitionerRepository contracts.PractitionerRepository,
	availabilityUsecase contracts.AvailabilityUsecase,
	lockerService contracts.LockerService,
	eventPublisher contracts.BookingEventPublisher,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) (contracts.AppointmentUsecase, error) {
	onceAppointmentUsecase.Do(func() {
		location, err := time.LoadLocation(internalConfig.App.Timezone)
		if err != nil {
			appointmentUsecaseError = err
			return
		}
		appointmentUsecaseInstance = &appointmentUsecase{
			AppointmentRepository:  appointmentRepository,
			SettingsRepository:     settingsRepository,
			PractitionerRepository: practitionerRepository,
			AvailabilityUsecase:    availabilityUsecase,
			LockerService:          lockerService,
			EventPublisher:         eventPublisher,
			InternalConfig:         internalConfig,
			Location:               location,
			Log:                    logger,
		}
	})
	return appointmentUsecaseInstance, appointmentUsecaseError
}

// Book validates the request under a per-practitioner-per-day lock and
// inserts the appointment. Validation runs while the lock is held, so a
// concurrent booking for the same day either waits out the lock or trips the
// unique index inside Insert; both surface as a conflict, never a crash.
func (uc *appointmentUsecase) Book(ctx context.Context, request *requests.CreateAppointment) (*responses.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.Book called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPractitionerIDKey, request.PractitionerID),
		zap.String(constvars.LoggingDateKey, request.Date),
	)

	practitioner, err := uc.PractitionerRepository.FindByID(ctx, request.PractitionerID)
	if err != nil {
		return nil, err
	}
	if practitioner == nil {
		return nil, exceptions.ErrPractitionerNotExist(fmt.Errorf("practitioner %s not found", request.PractitionerID))
	}

	lockKey := fmt.Sprintf(constvars.RedisKeyBookingDayLockFormat, request.PractitionerID, request.Date)
	lockTTL := time.Duration(uc.InternalConfig.App.BookingLockTTLInSeconds) * time.Second
	acquired, lockValue, err := uc.LockerService.TryLock(ctx, lockKey, lockTTL)
	if err != nil {
		return nil, err
	}
	if !acquired {
		uc.Log.Warn("appointmentUsecase.Book day lock busy",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, lockKey),
		)
		return nil, exceptions.ErrBookingDayLockBusy(fmt.Errorf("day lock held for %s on %s", request.PractitionerID, request.Date))
	}
	defer func() {
		if unlockErr := uc.LockerService.Unlock(ctx, lockKey, lockValue); unlockErr != nil {
			uc.Log.Warn("appointmentUsecase.Book failed to release day lock",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingRedisKey, lockKey),
				zap.Error(unlockErr),
			)
		}
	}()

	if err := uc.validateUnderLock(ctx, request); err != nil {
		return nil, err
	}

	appointment := &models.Appointment{
		PractitionerID: request.PractitionerID,
		PatientID:      request.PatientID,
		Date:           request.Date,
		Start:          request.Start,
		End:            request.End,
		Status:         constvars.AppointmentStatusBooked,
	}
	appointment.SetCreatedAtUpdatedAt()

	appointmentID, err := uc.AppointmentRepository.Insert(ctx, appointment)
	if err != nil {
		uc.Log.Error("appointmentUsecase.Book insert failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	appointment.ID = appointmentID

	uc.bumpAvailabilityVersion(ctx, request.PractitionerID)
	uc.publishEvent(ctx, constvars.BookingEventConfirmed, appointment)

	uc.Log.Info("appointmentUsecase.Book succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)
	return convertAppointmentIntoResponse(appointment), nil
}

func (uc *appointmentUsecase) Cancel(ctx context.Context, appointmentID string) (*responses.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.Cancel called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	appointment, err := uc.AppointmentRepository.FindByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, exceptions.ErrAppointmentNotExist(fmt.Errorf("appointment %s not found", appointmentID))
	}
	if appointment.Status == constvars.AppointmentStatusCancelled {
		return nil, exceptions.ErrAppointmentAlreadyCancelled(fmt.Errorf("appointment %s already cancelled", appointmentID))
	}

	if err := uc.AppointmentRepository.UpdateStatus(ctx, appointmentID, constvars.AppointmentStatusCancelled); err != nil {
		uc.Log.Error("appointmentUsecase.Cancel update failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	appointment.Status = constvars.AppointmentStatusCancelled

	uc.bumpAvailabilityVersion(ctx, appointment.PractitionerID)
	uc.publishEvent(ctx, constvars.BookingEventCancelled, appointment)

	uc.Log.Info("appointmentUsecase.Cancel succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)
	return convertAppointmentIntoResponse(appointment), nil
}

// validateUnderLock loads the practitioner's current settings and occupancy
// and runs the acceptance checks. It is called only while the day lock is
// held so the occupancy it sees cannot change before the insert.
func (uc *appointmentUsecase) validateUnderLock(ctx context.Context, request *requests.CreateAppointment) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	policy, err := uc.SettingsRepository.FindBookingPolicy(ctx, request.PractitionerID)
	if err != nil {
		return err
	}
	if policy == nil {
		return exceptions.ErrBookingOutsideAvailability("practitioner has no booking policy")
	}

	template, err := uc.SettingsRepository.FindWeeklyTemplate(ctx, request.PractitionerID)
	if err != nil {
		return err
	}

	var scheduleExceptions []models.ScheduleException
	exception, err := uc.SettingsRepository.FindExceptionByDate(ctx, request.PractitionerID, request.Date)
	if err != nil {
		return err
	}
	if exception != nil {
		scheduleExceptions = append(scheduleExceptions, *exception)
	}

	vacations, err := uc.SettingsRepository.FindVacations(ctx, request.PractitionerID)
	if err != nil {
		return err
	}

	occupancy, err := uc.AppointmentRepository.FindOccupyingInRange(ctx, request.PractitionerID, request.Date, request.Date)
	if err != nil {
		return err
	}

	rejection, err := availability.ValidateBooking(
		availability.BookingRequest{Date: request.Date, Start: request.Start, End: request.End},
		template, scheduleExceptions, vacations, policy, occupancy,
		time.Now(), uc.Location,
	)
	if err != nil {
		return uc.wrapEngineError(err)
	}
	if rejection != nil {
		uc.Log.Info("appointmentUsecase.Book request rejected",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRejectionReasonKey, string(rejection.Reason)),
		)
		return rejectionToError(rejection)
	}
	return nil
}

func (uc *appointmentUsecase) bumpAvailabilityVersion(ctx context.Context, practitionerID string) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if err := uc.AvailabilityUsecase.BumpVersion(ctx, practitionerID); err != nil {
		uc.Log.Warn("appointmentUsecase failed to bump availability version",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPractitionerIDKey, practitionerID),
			zap.Error(err),
		)
	}
}

// publishEvent forwards the booking lifecycle event to the notification
// queue. The appointment is already committed at this point, so a publish
// failure is logged and absorbed; the reminder worker re-covers booked
// appointments on its next run.
func (uc *appointmentUsecase) publishEvent(ctx context.Context, eventType string, appointment *models.Appointment) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	event := contracts.BookingEvent{
		ID:             uuid.NewString(),
		Type:           eventType,
		AppointmentID:  appointment.ID,
		PractitionerID: appointment.PractitionerID,
		PatientID:      appointment.PatientID,
		Date:           appointment.Date,
		Start:          appointment.Start,
	}
	if err := uc.EventPublisher.Publish(ctx, event); err != nil {
		uc.Log.Error("appointmentUsecase failed to publish booking event",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
			zap.String(constvars.LoggingOperationKey, eventType),
			zap.Error(err),
		)
	}
}

func (uc *appointmentUsecase) wrapEngineError(err error) error {
	switch {
	case errors.Is(err, availability.ErrMalformedTemplate):
		return exceptions.ErrMalformedTemplate(err)
	case errors.Is(err, availability.ErrMalformedException):
		return exceptions.ErrMalformedException(err)
	case errors.Is(err, availability.ErrMalformedVacationWindow):
		return exceptions.ErrMalformedVacationWindow(err)
	default:
		return exceptions.ErrServerProcess(err)
	}
}

func rejectionToError(rejection *availability.Rejection) error {
	switch rejection.Reason {
	case availability.RejectedOutOfWindow:
		return exceptions.ErrBookingOutOfWindow(rejection.Detail)
	case availability.RejectedVacation:
		return exceptions.ErrBookingVacation(rejection.Detail)
	case availability.RejectedDurationMismatch:
		return exceptions.ErrBookingDurationMismatch(rejection.Detail)
	case availability.RejectedOutsideAvailability:
		return exceptions.ErrBookingOutsideAvailability(rejection.Detail)
	case availability.RejectedConflict:
		return exceptions.ErrBookingConflict(rejection.Detail)
	case availability.RejectedCapacityReached:
		return exceptions.ErrBookingCapacityReached(rejection.Detail)
	default:
		return exceptions.ErrServerProcess(fmt.Errorf("unknown rejection reason %s", rejection.Reason))
	}
}

func convertAppointmentIntoResponse(appointment *models.Appointment) *responses.Appointment {
	return &responses.Appointment{
		ID:             appointment.ID,
		PractitionerID: appointment.PractitionerID,
		PatientID:      appointment.PatientID,
		Date:           appointment.Date,
		Start:          appointment.Start,
		End:            appointment.End,
		Status:         appointment.Status,
	}
}
