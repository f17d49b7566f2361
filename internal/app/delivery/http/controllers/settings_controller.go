package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"praktis-service/internal/app/contracts"
	"praktis-service/internal/app/models"
	"praktis-service/internal/pkg/constvars"
	"praktis-service/internal/pkg/dto/requests"
	"praktis-service/internal/pkg/exceptions"
	"praktis-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type SettingsController struct {
	Log             *zap.Logger
	SettingsUsecase contracts.SettingsUsecase
}

var (
	settingsControllerInstance *SettingsController
	onceSettingsController     sync.Once
)

func NewSettingsController(logger *zap.Logger, settingsUsecase contracts.SettingsUsecase) *SettingsController {
	onceSettingsController.Do(func() {
		instance := &SettingsController{
			Log:             logger,
			SettingsUsecase: settingsUsecase,
		}
		settingsControllerInstance = instance
	})
	return settingsControllerInstance
}

// ensureOwnResource guards the mutation endpoints: a practitioner may only
// touch their own schedule settings. Clinic admins and superadmins pass.
func (ctrl *SettingsController) ensureOwnResource(r *http.Request, practitionerID string) error {
	session, ok := r.Context().Value(constvars.CONTEXT_SESSION_DATA_KEY).(*models.Session)
	if !ok {
		return exceptions.ErrInvalidSession(errors.New("session data missing from context"))
	}
	if session.Role == constvars.PraktisRolePractitioner && session.PractitionerID != practitionerID {
		return exceptions.ErrPermissionDenied(nil)
	}
	return nil
}

func (ctrl *SettingsController) SaveWeeklyTemplate(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("SettingsController.SaveWeeklyTemplate requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("SettingsController.SaveWeeklyTemplate called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	var request requests.SaveWeeklyTemplate
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	request.PractitionerID = chi.URLParam(r, constvars.URLParamPractitionerID)

	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}
	if err := ctrl.ensureOwnResource(r, request.PractitionerID); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := ctrl.SettingsUsecase.SaveWeeklyTemplate(ctx, &request); err != nil {
		ctrl.Log.Error("SettingsController.SaveWeeklyTemplate error from usecase",
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

	ctrl.Log.Info("SettingsController.SaveWeeklyTemplate succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPractitionerIDKey, request.PractitionerID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.WeeklyTemplateSavedSuccess, nil)
}

func (ctrl *SettingsController) SaveException(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("SettingsController.SaveException requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("SettingsController.SaveException called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	var request requests.SaveScheduleException
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	request.PractitionerID = chi.URLParam(r, constvars.URLParamPractitionerID)

	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}
	if err := ctrl.ensureOwnResource(r, request.PractitionerID); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := ctrl.SettingsUsecase.SaveException(ctx, &request); err != nil {
		ctrl.Log.Error("SettingsController.SaveException error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingDateKey, request.Date),
			zap.Error(err),
		)
		if errors.Is(err, context.DeadlineExceeded) {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("SettingsController.SaveException succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPractitionerIDKey, request.PractitionerID),
		zap.String(constvars.LoggingDateKey, request.Date),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ExceptionSavedSuccess, nil)
}

func (ctrl *SettingsController) SaveVacation(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("SettingsController.SaveVacation requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("SettingsController.SaveVacation called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	var request requests.SaveVacationWindow
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	request.PractitionerID = chi.URLParam(r, constvars.URLParamPractitionerID)

	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}
	if err := ctrl.ensureOwnResource(r, request.PractitionerID); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := ctrl.SettingsUsecase.SaveVacation(ctx, &request); err != nil {
		ctrl.Log.Error("SettingsController.SaveVacation error from usecase",
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

	ctrl.Log.Info("SettingsController.SaveVacation succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPractitionerIDKey, request.PractitionerID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.VacationSavedSuccess, nil)
}

func (ctrl *SettingsController) DeleteVacation(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("SettingsController.DeleteVacation requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("SettingsController.DeleteVacation called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	practitionerID := chi.URLParam(r, constvars.URLParamPractitionerID)
	vacationID := chi.URLParam(r, constvars.URLParamVacationID)
	if vacationID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamValidation(nil, constvars.URLParamVacationID))
		return
	}
	if err := ctrl.ensureOwnResource(r, practitionerID); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := ctrl.SettingsUsecase.DeleteVacation(ctx, practitionerID, vacationID); err != nil {
		ctrl.Log.Error("SettingsController.DeleteVacation error from usecase",
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

	ctrl.Log.Info("SettingsController.DeleteVacation succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPractitionerIDKey, practitionerID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.VacationDeletedSuccess, nil)
}

func (ctrl *SettingsController) SaveBookingPolicy(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("SettingsController.SaveBookingPolicy requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("SettingsController.SaveBookingPolicy called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	var request requests.SaveBookingPolicy
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	request.PractitionerID = chi.URLParam(r, constvars.URLParamPractitionerID)

	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}
	if err := ctrl.ensureOwnResource(r, request.PractitionerID); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := ctrl.SettingsUsecase.SaveBookingPolicy(ctx, &request); err != nil {
		ctrl.Log.Error("SettingsController.SaveBookingPolicy error from usecase",
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

	ctrl.Log.Info("SettingsController.SaveBookingPolicy succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPractitionerIDKey, request.PractitionerID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.BookingPolicySavedSuccess, nil)
}
