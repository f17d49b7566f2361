package availability

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"praktis-service/internal/app/config"
	"praktis-service/internal/app/contracts"
	"praktis-service/internal/app/models"
	"praktis-service/internal/pkg/constvars"
	"praktis-service/internal/pkg/dto/responses"
	"praktis-service/internal/pkg/exceptions"
	"praktis-service/internal/pkg/utils"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type availabilityUsecase struct {
	SettingsRepository     contracts.SettingsRepository
	AppointmentRepository  contracts.AppointmentRepository
	PractitionerRepository contracts.PractitionerRepository
	RedisRepository        contracts.RedisRepository
	Storage                contracts.Storage
	InternalConfig         *config.InternalConfig
	Location               *time.Location
	Log                    *zap.Logger
}

var (
	availabilityUsecaseInstance contracts.AvailabilityUsecase
	onceAvailabilityUsecase     sync.Once
	availabilityUsecaseError    error
)

func NewAvailabilityUsecase(
	settingsRepository contracts.SettingsRepository,
	appointmentRepository contracts.AppointmentRepository,
	practitionerRepository contracts.PractitionerRepository,
	redisRepository contracts.RedisRepository,
	storage contracts.Storage,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) (contracts.AvailabilityUsecase, error) {
	onceAvailabilityUsecase.Do(func() {
		location, err := time.LoadLocation(internalConfig.App.Timezone)
		if err != nil {
			availabilityUsecaseError = err
			return
		}
		availabilityUsecaseInstance = &availabilityUsecase{
			SettingsRepository:     settingsRepository,
			AppointmentRepository:  appointmentRepository,
			PractitionerRepository: practitionerRepository,
			RedisRepository:        redisRepository,
			Storage:                storage,
			InternalConfig:         internalConfig,
			Location:               location,
			Log:                    logger,
		}
	})
	return availabilityUsecaseInstance, availabilityUsecaseError
}

func (uc *availabilityUsecase) GetBookableSlots(ctx context.Context, practitionerID, from, to string) (*responses.BookableSlots, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("availabilityUsecase.GetBookableSlots called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPractitionerIDKey, practitionerID),
	)

	practitioner, err := uc.PractitionerRepository.FindByID(ctx, practitionerID)
	if err != nil {
		return nil, err
	}
	if practitioner == nil {
		return nil, exceptions.ErrPractitionerNotExist(fmt.Errorf("practitioner %s not found", practitionerID))
	}

	policy, err := uc.SettingsRepository.FindBookingPolicy(ctx, practitionerID)
	if err != nil {
		return nil, err
	}
	if policy == nil {
		// Without a policy there is nothing to tile sessions from.
		uc.Log.Info("availabilityUsecase.GetBookableSlots practitioner has no booking policy",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPractitionerIDKey, practitionerID),
		)
		return &responses.BookableSlots{PractitionerID: practitionerID, From: from, To: to, Slots: []responses.BookableSlot{}}, nil
	}

	from, to, err = uc.clampRange(from, to, policy.AdvanceBookingDays)
	if err != nil {
		return nil, err
	}

	version, err := uc.availabilityVersion(ctx, practitionerID)
	if err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf(constvars.RedisKeyBookableSlotsFormat, practitionerID, version, from, to)
	cached, err := uc.RedisRepository.Get(ctx, cacheKey)
	if err != nil {
		return nil, err
	}
	if cached != "" {
		var response responses.BookableSlots
		if err := json.Unmarshal([]byte(cached), &response); err != nil {
			uc.Log.Error("availabilityUsecase.GetBookableSlots error parsing cached slots",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			return nil, exceptions.ErrCannotParseJSON(err)
		}
		uc.Log.Info("availabilityUsecase.GetBookableSlots served from cache",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, cacheKey),
			zap.Int(constvars.LoggingSlotCountKey, len(response.Slots)),
		)
		return &response, nil
	}

	slots, err := uc.computeBookableSlots(ctx, practitionerID, policy, from, to)
	if err != nil {
		return nil, err
	}

	response := &responses.BookableSlots{
		PractitionerID: practitionerID,
		From:           from,
		To:             to,
		Slots:          make([]responses.BookableSlot, len(slots)),
	}
	for i, slot := range slots {
		response.Slots[i] = responses.BookableSlot{Date: slot.Date, Start: slot.Start, End: slot.End, Source: slot.Source}
	}

	cacheTTL := time.Duration(uc.InternalConfig.App.SlotCacheTTLInSeconds) * time.Second
	if err := uc.RedisRepository.Set(ctx, cacheKey, response, cacheTTL); err != nil {
		return nil, err
	}

	uc.Log.Info("availabilityUsecase.GetBookableSlots succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPractitionerIDKey, practitionerID),
		zap.Int(constvars.LoggingSlotCountKey, len(response.Slots)),
		zap.String(constvars.LoggingAvailabilityVersionKey, version),
	)
	return response, nil
}

func (uc *availabilityUsecase) ExportSchedule(ctx context.Context, practitionerID, from, to string) (*responses.ScheduleExport, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("availabilityUsecase.ExportSchedule called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPractitionerIDKey, practitionerID),
	)

	bookable, err := uc.GetBookableSlots(ctx, practitionerID, from, to)
	if err != nil {
		return nil, err
	}

	var buffer bytes.Buffer
	writer := csv.NewWriter(&buffer)
	_ = writer.Write([]string{"date", "start", "end", "source"})
	for _, slot := range bookable.Slots {
		_ = writer.Write([]string{slot.Date, slot.Start, slot.End, slot.Source})
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, exceptions.ErrServerProcess(err)
	}

	objectName := utils.GenerateFileName("schedule", practitionerID, ".csv")
	bucketName := uc.InternalConfig.Minio.BucketName
	_, err = uc.Storage.UploadObject(ctx, bucketName, objectName, bytes.NewReader(buffer.Bytes()), int64(buffer.Len()), constvars.MIMETextCSV)
	if err != nil {
		uc.Log.Error("availabilityUsecase.ExportSchedule error uploading CSV",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingBucketNameKey, bucketName),
			zap.Error(err),
		)
		return nil, err
	}

	expiry := time.Duration(uc.InternalConfig.Minio.PreSignedUrlExpiryTimeInHours) * time.Hour
	downloadURL, err := uc.Storage.GetObjectUrlWithExpiryTime(ctx, bucketName, objectName, expiry)
	if err != nil {
		return nil, err
	}

	uc.Log.Info("availabilityUsecase.ExportSchedule succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingObjectNameKey, objectName),
		zap.Int(constvars.LoggingSlotCountKey, len(bookable.Slots)),
	)
	return &responses.ScheduleExport{
		PractitionerID: practitionerID,
		ObjectName:     objectName,
		DownloadURL:    downloadURL,
		SlotCount:      len(bookable.Slots),
	}, nil
}

func (uc *availabilityUsecase) BumpVersion(ctx context.Context, practitionerID string) error {
	versionKey := fmt.Sprintf(constvars.RedisKeyAvailabilityVersionFormat, practitionerID)
	_, err := uc.RedisRepository.Increment(ctx, versionKey)
	return err
}

// computeBookableSlots loads the practitioner's settings and occupancy and
// runs the slot pipeline: generate, then filter against appointments.
func (uc *availabilityUsecase) computeBookableSlots(ctx context.Context, practitionerID string, policy *models.BookingPolicy, from, to string) ([]models.Slot, error) {
	template, err := uc.SettingsRepository.FindWeeklyTemplate(ctx, practitionerID)
	if err != nil {
		return nil, err
	}
	scheduleExceptions, err := uc.SettingsRepository.FindExceptionsInRange(ctx, practitionerID, from, to)
	if err != nil {
		return nil, err
	}
	vacations, err := uc.SettingsRepository.FindVacations(ctx, practitionerID)
	if err != nil {
		return nil, err
	}

	slots, err := GenerateSlots(template, scheduleExceptions, vacations, policy, from, to, uc.Location)
	if err != nil {
		return nil, uc.wrapEngineError(err)
	}

	appointments, err := uc.AppointmentRepository.FindOccupyingInRange(ctx, practitionerID, from, to)
	if err != nil {
		return nil, err
	}

	bookable, err := FilterBookable(slots, appointments, policy)
	if err != nil {
		return nil, exceptions.ErrServerProcess(err)
	}
	return bookable, nil
}

// clampRange bounds the requested range to [today, today + advance] so the
// response never promises slots outside the booking window.
func (uc *availabilityUsecase) clampRange(from, to string, advanceBookingDays int) (string, string, error) {
	if _, err := utils.ParseDateOnly(from, uc.Location); err != nil {
		return "", "", exceptions.ErrCannotParseDate(err)
	}
	if _, err := utils.ParseDateOnly(to, uc.Location); err != nil {
		return "", "", exceptions.ErrCannotParseDate(err)
	}

	today := time.Now().In(uc.Location).Format(constvars.DateOnlyFormat)
	horizon := time.Now().In(uc.Location).AddDate(0, 0, advanceBookingDays).Format(constvars.DateOnlyFormat)
	if from < today {
		from = today
	}
	if to > horizon {
		to = horizon
	}
	if to < from {
		return "", "", exceptions.ErrClientCustomMessage(fmt.Errorf("requested range ends before it starts"))
	}
	return from, to, nil
}

func (uc *availabilityUsecase) availabilityVersion(ctx context.Context, practitionerID string) (string, error) {
	versionKey := fmt.Sprintf(constvars.RedisKeyAvailabilityVersionFormat, practitionerID)
	version, err := uc.RedisRepository.Get(ctx, versionKey)
	if err != nil {
		return "", err
	}
	if version == "" {
		version = "0"
	}
	return version, nil
}

func (uc *availabilityUsecase) wrapEngineError(err error) error {
	switch {
	case errors.Is(err, ErrMalformedTemplate):
		return exceptions.ErrMalformedTemplate(err)
	case errors.Is(err, ErrMalformedException):
		return exceptions.ErrMalformedException(err)
	case errors.Is(err, ErrMalformedVacationWindow):
		return exceptions.ErrMalformedVacationWindow(err)
	default:
		return exceptions.ErrServerProcess(err)
	}
}
