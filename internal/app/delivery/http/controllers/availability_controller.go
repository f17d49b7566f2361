package controllers

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"praktis-service/internal/app/contracts"
	"praktis-service/internal/pkg/constvars"
	"praktis-service/internal/pkg/exceptions"
	"praktis-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type AvailabilityController struct {
	Log                 *zap.Logger
	AvailabilityUsecase contracts.AvailabilityUsecase
}

var (
	availabilityControllerInstance *AvailabilityController
	onceAvailabilityController     sync.Once
)

func NewAvailabilityController(logger *zap.Logger, availabilityUsecase contracts.AvailabilityUsecase) *AvailabilityController {
	onceAvailabilityController.Do(func() {
		instance := &AvailabilityController{
			Log:                 logger,
			AvailabilityUsecase: availabilityUsecase,
		}
		availabilityControllerInstance = instance
	})
	return availabilityControllerInstance
}

func (ctrl *AvailabilityController) GetBookableSlots(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("AvailabilityController.GetBookableSlots requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("AvailabilityController.GetBookableSlots called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	practitionerID := chi.URLParam(r, constvars.URLParamPractitionerID)
	from, to, err := parseDateRangeQuery(r)
	if err != nil {
		ctrl.Log.Error("AvailabilityController.GetBookableSlots invalid query params",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := ctrl.AvailabilityUsecase.GetBookableSlots(ctx, practitionerID, from, to)
	if err != nil {
		ctrl.Log.Error("AvailabilityController.GetBookableSlots error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		if errors.Is(err, context.DeadlineExceeded) {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("AvailabilityController.GetBookableSlots succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPractitionerIDKey, practitionerID),
		zap.Int(constvars.LoggingSlotCountKey, len(result.Slots)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetBookableSlotsSuccessMessage, result)
}

func (ctrl *AvailabilityController) ExportSchedule(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("AvailabilityController.ExportSchedule requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("AvailabilityController.ExportSchedule called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	practitionerID := chi.URLParam(r, constvars.URLParamPractitionerID)
	from, to, err := parseDateRangeQuery(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	// Export builds the slot list, renders the CSV and talks to object storage,
	// so it gets a longer deadline than the read path.
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	result, err := ctrl.AvailabilityUsecase.ExportSchedule(ctx, practitionerID, from, to)
	if err != nil {
		ctrl.Log.Error("AvailabilityController.ExportSchedule error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		if errors.Is(err, context.DeadlineExceeded) {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("AvailabilityController.ExportSchedule succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPractitionerIDKey, practitionerID),
		zap.String(constvars.LoggingObjectNameKey, result.ObjectName),
	)
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.ExportScheduleSuccessMessage, result)
}

func parseDateRangeQuery(r *http.Request) (from, to string, err error) {
	from = r.URL.Query().Get(constvars.QueryParamFrom)
	to = r.URL.Query().Get(constvars.QueryParamTo)

	if from == "" {
		return "", "", exceptions.ErrURLParamValidation(nil, constvars.QueryParamFrom)
	}
	if to == "" {
		return "", "", exceptions.ErrURLParamValidation(nil, constvars.QueryParamTo)
	}
	if _, parseErr := time.Parse(constvars.DateOnlyFormat, from); parseErr != nil {
		return "", "", exceptions.ErrURLParamValidation(parseErr, constvars.QueryParamFrom)
	}
	if _, parseErr := time.Parse(constvars.DateOnlyFormat, to); parseErr != nil {
		return "", "", exceptions.ErrURLParamValidation(parseErr, constvars.QueryParamTo)
	}
	return from, to, nil
}
