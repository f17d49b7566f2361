package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"praktis-service/internal/app/models"
	"praktis-service/internal/pkg/constvars"
	"praktis-service/internal/pkg/dto/requests"
	"praktis-service/internal/pkg/dto/responses"
	"praktis-service/internal/pkg/exceptions"

	"go.uber.org/zap"
)

type fakeSettingsRepository struct {
	savedTemplates []*models.WeeklyTemplate
	savedException *models.ScheduleException
	savedVacation  *models.VacationWindow
	savedPolicy    *models.BookingPolicy
	existingByDate map[string]*models.ScheduleException
	deletedIDs     []string
}

func (f *fakeSettingsRepository) FindWeeklyTemplate(ctx context.Context, practitionerID string) (*models.WeeklyTemplate, error) {
	return nil, nil
}
func (f *fakeSettingsRepository) SaveWeeklyTemplate(ctx context.Context, template *models.WeeklyTemplate) error {
	f.savedTemplates = append(f.savedTemplates, template)
	return nil
}
func (f *fakeSettingsRepository) FindExceptionByDate(ctx context.Context, practitionerID, date string) (*models.ScheduleException, error) {
	return f.existingByDate[date], nil
}
func (f *fakeSettingsRepository) FindExceptionsInRange(ctx context.Context, practitionerID, from, to string) ([]models.ScheduleException, error) {
	return nil, nil
}
func (f *fakeSettingsRepository) SaveException(ctx context.Context, exception *models.ScheduleException, replace bool) error {
	f.savedException = exception
	return nil
}
func (f *fakeSettingsRepository) FindVacations(ctx context.Context, practitionerID string) ([]models.VacationWindow, error) {
	return nil, nil
}
func (f *fakeSettingsRepository) SaveVacation(ctx context.Context, vacation *models.VacationWindow) error {
	f.savedVacation = vacation
	return nil
}
func (f *fakeSettingsRepository) DeleteVacation(ctx context.Context, practitionerID, vacationID string) error {
	f.deletedIDs = append(f.deletedIDs, vacationID)
	return nil
}
func (f *fakeSettingsRepository) FindBookingPolicy(ctx context.Context, practitionerID string) (*models.BookingPolicy, error) {
	return nil, nil
}
func (f *fakeSettingsRepository) SaveBookingPolicy(ctx context.Context, policy *models.BookingPolicy) error {
	f.savedPolicy = policy
	return nil
}

type fakeAvailabilityUsecase struct {
	bumped []string
}

func (f *fakeAvailabilityUsecase) GetBookableSlots(ctx context.Context, practitionerID, from, to string) (*responses.BookableSlots, error) {
	return nil, nil
}
func (f *fakeAvailabilityUsecase) ExportSchedule(ctx context.Context, practitionerID, from, to string) (*responses.ScheduleExport, error) {
	return nil, nil
}
func (f *fakeAvailabilityUsecase) BumpVersion(ctx context.Context, practitionerID string) error {
	f.bumped = append(f.bumped, practitionerID)
	return nil
}

func newSettingsFixture() (*settingsUsecase, *fakeSettingsRepository, *fakeAvailabilityUsecase) {
	repo := &fakeSettingsRepository{existingByDate: make(map[string]*models.ScheduleException)}
	availabilityUc := &fakeAvailabilityUsecase{}
	usecase := &settingsUsecase{
		SettingsRepository:  repo,
		AvailabilityUsecase: availabilityUc,
		Log:                 zap.NewNop(),
	}
	return usecase, repo, availabilityUc
}

func fullWeekRequest(intervals ...requests.TimeInterval) *requests.SaveWeeklyTemplate {
	request := &requests.SaveWeeklyTemplate{PractitionerID: "prac-1"}
	for weekday := 0; weekday < 7; weekday++ {
		request.Days = append(request.Days, requests.WeeklyDayRule{
			Weekday:     weekday,
			IsAvailable: true,
			Intervals:   intervals,
		})
	}
	return request
}

func TestSettingsUsecaseSaveWeeklyTemplate(t *testing.T) {
	t.Run("saves a valid template and invalidates cached slots", func(t *testing.T) {
		usecase, repo, availabilityUc := newSettingsFixture()

		err := usecase.SaveWeeklyTemplate(context.Background(), fullWeekRequest(
			requests.TimeInterval{Start: "09:00", End: "12:00"},
			requests.TimeInterval{Start: "13:00", End: "17:00"},
		))

		require.NoError(t, err)
		require.Len(t, repo.savedTemplates, 1)
		assert.Len(t, repo.savedTemplates[0].Days, 7)
		assert.Equal(t, []string{"prac-1"}, availabilityUc.bumped)
	})

	t.Run("colliding intervals reject the whole save", func(t *testing.T) {
		usecase, repo, _ := newSettingsFixture()

		err := usecase.SaveWeeklyTemplate(context.Background(), fullWeekRequest(
			requests.TimeInterval{Start: "09:00", End: "11:00"},
			requests.TimeInterval{Start: "10:00", End: "12:00"},
		))

		require.Error(t, err)
		customErr, ok := err.(*exceptions.CustomError)
		require.True(t, ok)
		assert.Equal(t, constvars.StatusUnprocessableEntity, customErr.StatusCode)
		assert.Equal(t, constvars.ErrClientTemplateOverlap, customErr.ClientMessage)
		assert.Empty(t, repo.savedTemplates, "no partial save on guard failure")
	})

	t.Run("duplicate weekday is malformed", func(t *testing.T) {
		usecase, repo, _ := newSettingsFixture()
		request := fullWeekRequest(requests.TimeInterval{Start: "09:00", End: "17:00"})
		request.Days[6].Weekday = 0

		err := usecase.SaveWeeklyTemplate(context.Background(), request)

		require.Error(t, err)
		assert.Empty(t, repo.savedTemplates)
	})

	t.Run("available weekday without intervals is malformed", func(t *testing.T) {
		usecase, repo, _ := newSettingsFixture()
		request := fullWeekRequest(requests.TimeInterval{Start: "09:00", End: "17:00"})
		request.Days[2].Intervals = nil

		err := usecase.SaveWeeklyTemplate(context.Background(), request)

		require.Error(t, err)
		customErr, ok := err.(*exceptions.CustomError)
		require.True(t, ok)
		assert.Equal(t, constvars.StatusUnprocessableEntity, customErr.StatusCode)
		assert.Empty(t, repo.savedTemplates)
	})

	t.Run("unavailable weekday may omit intervals", func(t *testing.T) {
		usecase, repo, _ := newSettingsFixture()
		request := fullWeekRequest(requests.TimeInterval{Start: "09:00", End: "17:00"})
		request.Days[0].IsAvailable = false
		request.Days[0].Intervals = nil

		err := usecase.SaveWeeklyTemplate(context.Background(), request)

		require.NoError(t, err)
		require.Len(t, repo.savedTemplates, 1)
	})
}

func TestSettingsUsecaseSaveException(t *testing.T) {
	t.Run("saves replacement intervals for a date", func(t *testing.T) {
		usecase, repo, availabilityUc := newSettingsFixture()

		err := usecase.SaveException(context.Background(), &requests.SaveScheduleException{
			PractitionerID:  "prac-1",
			Date:            "2025-03-05",
			CustomIntervals: []requests.TimeInterval{{Start: "18:00", End: "20:00"}},
		})

		require.NoError(t, err)
		require.NotNil(t, repo.savedException)
		assert.Equal(t, "2025-03-05", repo.savedException.Date)
		assert.Equal(t, []string{"prac-1"}, availabilityUc.bumped)
	})

	t.Run("existing date without replace flag conflicts", func(t *testing.T) {
		usecase, repo, _ := newSettingsFixture()
		repo.existingByDate["2025-03-05"] = &models.ScheduleException{Date: "2025-03-05"}

		err := usecase.SaveException(context.Background(), &requests.SaveScheduleException{
			PractitionerID: "prac-1",
			Date:           "2025-03-05",
			FullDayBlock:   true,
		})

		require.Error(t, err)
		customErr, ok := err.(*exceptions.CustomError)
		require.True(t, ok)
		assert.Equal(t, constvars.StatusConflict, customErr.StatusCode)
		assert.Nil(t, repo.savedException)
	})

	t.Run("existing date with replace flag overwrites", func(t *testing.T) {
		usecase, repo, _ := newSettingsFixture()
		repo.existingByDate["2025-03-05"] = &models.ScheduleException{Date: "2025-03-05"}

		err := usecase.SaveException(context.Background(), &requests.SaveScheduleException{
			PractitionerID: "prac-1",
			Date:           "2025-03-05",
			FullDayBlock:   true,
			Replace:        true,
		})

		require.NoError(t, err)
		require.NotNil(t, repo.savedException)
		assert.True(t, repo.savedException.FullDayBlock)
	})

	t.Run("full day block with custom intervals is malformed", func(t *testing.T) {
		usecase, _, _ := newSettingsFixture()

		err := usecase.SaveException(context.Background(), &requests.SaveScheduleException{
			PractitionerID:  "prac-1",
			Date:            "2025-03-05",
			FullDayBlock:    true,
			CustomIntervals: []requests.TimeInterval{{Start: "18:00", End: "20:00"}},
		})

		require.Error(t, err)
		customErr, ok := err.(*exceptions.CustomError)
		require.True(t, ok)
		assert.Equal(t, constvars.StatusUnprocessableEntity, customErr.StatusCode)
	})

	t.Run("overlapping custom intervals reject the save", func(t *testing.T) {
		usecase, repo, _ := newSettingsFixture()

		err := usecase.SaveException(context.Background(), &requests.SaveScheduleException{
			PractitionerID: "prac-1",
			Date:           "2025-03-05",
			CustomIntervals: []requests.TimeInterval{
				{Start: "09:00", End: "11:00"},
				{Start: "10:00", End: "12:00"},
			},
		})

		require.Error(t, err)
		customErr, ok := err.(*exceptions.CustomError)
		require.True(t, ok)
		assert.Equal(t, constvars.ErrClientExceptionOverlap, customErr.ClientMessage)
		assert.Nil(t, repo.savedException)
	})
}

func TestSettingsUsecaseSaveVacation(t *testing.T) {
	t.Run("saves a valid window", func(t *testing.T) {
		usecase, repo, availabilityUc := newSettingsFixture()

		err := usecase.SaveVacation(context.Background(), &requests.SaveVacationWindow{
			PractitionerID: "prac-1",
			Start:          "2025-07-01",
			End:            "2025-07-14",
		})

		require.NoError(t, err)
		require.NotNil(t, repo.savedVacation)
		assert.Equal(t, []string{"prac-1"}, availabilityUc.bumped)
	})

	t.Run("inverted range is rejected", func(t *testing.T) {
		usecase, repo, _ := newSettingsFixture()

		err := usecase.SaveVacation(context.Background(), &requests.SaveVacationWindow{
			PractitionerID: "prac-1",
			Start:          "2025-07-14",
			End:            "2025-07-01",
		})

		require.Error(t, err)
		customErr, ok := err.(*exceptions.CustomError)
		require.True(t, ok)
		assert.Equal(t, constvars.ErrClientVacationInvalidRange, customErr.ClientMessage)
		assert.Nil(t, repo.savedVacation)
	})
}

func TestSettingsUsecaseSaveBookingPolicy(t *testing.T) {
	usecase, repo, availabilityUc := newSettingsFixture()

	err := usecase.SaveBookingPolicy(context.Background(), &requests.SaveBookingPolicy{
		PractitionerID:         "prac-1",
		SessionDurationMinutes: 45,
		BufferMinutes:          10,
		MaxDailyAppointments:   6,
		AdvanceBookingDays:     21,
	})

	require.NoError(t, err)
	require.NotNil(t, repo.savedPolicy)
	assert.Equal(t, 45, repo.savedPolicy.SessionDurationMinutes)
	assert.Equal(t, []string{"prac-1"}, availabilityUc.bumped)
}
