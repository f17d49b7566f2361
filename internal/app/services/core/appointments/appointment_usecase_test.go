package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"praktis-service/internal/app/config"
	"praktis-service/internal/app/contracts"
	"praktis-service/internal/app/models"
	"praktis-service/internal/pkg/constvars"
	"praktis-service/internal/pkg/dto/requests"
	"praktis-service/internal/pkg/dto/responses"
	"praktis-service/internal/pkg/exceptions"

	"go.uber.org/zap"
)

type fakeSettingsRepository struct {
	template  *models.WeeklyTemplate
	exception *models.ScheduleException
	vacations []models.VacationWindow
	policy    *models.BookingPolicy
}

func (f *fakeSettingsRepository) FindWeeklyTemplate(ctx context.Context, practitionerID string) (*models.WeeklyTemplate, error) {
	return f.template, nil
}
func (f *fakeSettingsRepository) SaveWeeklyTemplate(ctx context.Context, template *models.WeeklyTemplate) error {
	return nil
}
func (f *fakeSettingsRepository) FindExceptionByDate(ctx context.Context, practitionerID, date string) (*models.ScheduleException, error) {
	if f.exception != nil && f.exception.Date == date {
		return f.exception, nil
	}
	return nil, nil
}
func (f *fakeSettingsRepository) FindExceptionsInRange(ctx context.Context, practitionerID, from, to string) ([]models.ScheduleException, error) {
	return nil, nil
}
func (f *fakeSettingsRepository) SaveException(ctx context.Context, exception *models.ScheduleException, replace bool) error {
	return nil
}
func (f *fakeSettingsRepository) FindVacations(ctx context.Context, practitionerID string) ([]models.VacationWindow, error) {
	return f.vacations, nil
}
func (f *fakeSettingsRepository) SaveVacation(ctx context.Context, vacation *models.VacationWindow) error {
	return nil
}
func (f *fakeSettingsRepository) DeleteVacation(ctx context.Context, practitionerID, vacationID string) error {
	return nil
}
func (f *fakeSettingsRepository) FindBookingPolicy(ctx context.Context, practitionerID string) (*models.BookingPolicy, error) {
	return f.policy, nil
}
func (f *fakeSettingsRepository) SaveBookingPolicy(ctx context.Context, policy *models.BookingPolicy) error {
	return nil
}

type fakeAppointmentRepository struct {
	occupying []models.Appointment
	byID      map[string]*models.Appointment
	inserted  []*models.Appointment
	insertErr error
	updated   map[string]string
}

func (f *fakeAppointmentRepository) Insert(ctx context.Context, appointment *models.Appointment) (string, error) {
	if f.insertErr != nil {
		return "", f.insertErr
	}
	f.inserted = append(f.inserted, appointment)
	return "appt-1", nil
}
func (f *fakeAppointmentRepository) FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	return f.byID[appointmentID], nil
}
func (f *fakeAppointmentRepository) FindOccupyingInRange(ctx context.Context, practitionerID, from, to string) ([]models.Appointment, error) {
	return f.occupying, nil
}
func (f *fakeAppointmentRepository) FindBookedOnDate(ctx context.Context, date string) ([]models.Appointment, error) {
	return f.occupying, nil
}
func (f *fakeAppointmentRepository) UpdateStatus(ctx context.Context, appointmentID, status string) error {
	if f.updated == nil {
		f.updated = make(map[string]string)
	}
	f.updated[appointmentID] = status
	return nil
}

type fakePractitionerRepository struct {
	practitioner *models.Practitioner
}

func (f *fakePractitionerRepository) FindByID(ctx context.Context, practitionerID string) (*models.Practitioner, error) {
	return f.practitioner, nil
}
func (f *fakePractitionerRepository) FindAllActive(ctx context.Context) ([]models.Practitioner, error) {
	if f.practitioner == nil {
		return nil, nil
	}
	return []models.Practitioner{*f.practitioner}, nil
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

type fakeLockerService struct {
	acquired bool
	unlocked []string
}

func (f *fakeLockerService) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	return f.acquired, "lock-token", nil
}
func (f *fakeLockerService) Unlock(ctx context.Context, key, lockValue string) error {
	f.unlocked = append(f.unlocked, key)
	return nil
}
func (f *fakeLockerService) Refresh(ctx context.Context, key, lockValue string, expiration time.Duration) error {
	return nil
}

type fakeEventPublisher struct {
	events []contracts.BookingEvent
}

func (f *fakeEventPublisher) Publish(ctx context.Context, event contracts.BookingEvent) error {
	f.events = append(f.events, event)
	return nil
}

type bookingFixture struct {
	usecase      *appointmentUsecase
	settings     *fakeSettingsRepository
	appointments *fakeAppointmentRepository
	locker       *fakeLockerService
	publisher    *fakeEventPublisher
	availability *fakeAvailabilityUsecase
}

func newBookingFixture() *bookingFixture {
	days := make([]models.DayRule, 7)
	for i := range days {
		days[i] = models.DayRule{
			Weekday:     i,
			IsAvailable: true,
			Intervals:   []models.TimeInterval{{Start: "09:00", End: "17:00"}},
		}
	}

	settings := &fakeSettingsRepository{
		template: &models.WeeklyTemplate{PractitionerID: "prac-1", Days: days},
		policy: &models.BookingPolicy{
			PractitionerID:         "prac-1",
			SessionDurationMinutes: 60,
			BufferMinutes:          0,
			MaxDailyAppointments:   5,
			AdvanceBookingDays:     14,
		},
	}
	appointmentRepo := &fakeAppointmentRepository{byID: make(map[string]*models.Appointment)}
	locker := &fakeLockerService{acquired: true}
	publisher := &fakeEventPublisher{}
	availabilityUc := &fakeAvailabilityUsecase{}

	usecase := &appointmentUsecase{
		AppointmentRepository:  appointmentRepo,
		SettingsRepository:     settings,
		PractitionerRepository: &fakePractitionerRepository{practitioner: &models.Practitioner{ID: "prac-1", Name: "Dr. Sari", Active: true}},
		AvailabilityUsecase:    availabilityUc,
		LockerService:          locker,
		EventPublisher:         publisher,
		InternalConfig: &config.InternalConfig{
			App: config.App{BookingLockTTLInSeconds: 30},
		},
		Location: time.UTC,
		Log:      zap.NewNop(),
	}

	return &bookingFixture{
		usecase:      usecase,
		settings:     settings,
		appointments: appointmentRepo,
		locker:       locker,
		publisher:    publisher,
		availability: availabilityUc,
	}
}

func tomorrowUTC() string {
	return time.Now().UTC().AddDate(0, 0, 1).Format(constvars.DateOnlyFormat)
}

func TestAppointmentUsecaseBook(t *testing.T) {
	t.Run("books a free slot and publishes a confirmation event", func(t *testing.T) {
		fixture := newBookingFixture()

		response, err := fixture.usecase.Book(context.Background(), &requests.CreateAppointment{
			PractitionerID: "prac-1",
			PatientID:      "pat-1",
			Date:           tomorrowUTC(),
			Start:          "10:00",
			End:            "11:00",
		})

		require.NoError(t, err)
		assert.Equal(t, "appt-1", response.ID)
		assert.Equal(t, constvars.AppointmentStatusBooked, response.Status)
		require.Len(t, fixture.appointments.inserted, 1)
		require.Len(t, fixture.publisher.events, 1)
		assert.Equal(t, constvars.BookingEventConfirmed, fixture.publisher.events[0].Type)
		assert.Equal(t, []string{"prac-1"}, fixture.availability.bumped)
		assert.Len(t, fixture.locker.unlocked, 1, "day lock must be released")
	})

	t.Run("busy day lock rejects with conflict status", func(t *testing.T) {
		fixture := newBookingFixture()
		fixture.locker.acquired = false

		_, err := fixture.usecase.Book(context.Background(), &requests.CreateAppointment{
			PractitionerID: "prac-1",
			PatientID:      "pat-1",
			Date:           tomorrowUTC(),
			Start:          "10:00",
			End:            "11:00",
		})

		require.Error(t, err)
		customErr, ok := err.(*exceptions.CustomError)
		require.True(t, ok)
		assert.Equal(t, constvars.StatusConflict, customErr.StatusCode)
		assert.Empty(t, fixture.appointments.inserted)
	})

	t.Run("overlapping occupancy rejects without inserting", func(t *testing.T) {
		fixture := newBookingFixture()
		fixture.appointments.occupying = []models.Appointment{{
			PractitionerID: "prac-1",
			Date:           tomorrowUTC(),
			Start:          "10:30",
			End:            "11:30",
			Status:         constvars.AppointmentStatusBooked,
		}}

		_, err := fixture.usecase.Book(context.Background(), &requests.CreateAppointment{
			PractitionerID: "prac-1",
			PatientID:      "pat-1",
			Date:           tomorrowUTC(),
			Start:          "10:00",
			End:            "11:00",
		})

		require.Error(t, err)
		customErr, ok := err.(*exceptions.CustomError)
		require.True(t, ok)
		assert.Equal(t, constvars.StatusConflict, customErr.StatusCode)
		assert.Equal(t, constvars.ErrClientBookingConflict, customErr.ClientMessage)
		assert.Empty(t, fixture.appointments.inserted)
		assert.Empty(t, fixture.publisher.events)
	})

	t.Run("duplicate key from a concurrent insert surfaces as conflict", func(t *testing.T) {
		fixture := newBookingFixture()
		fixture.appointments.insertErr = exceptions.ErrBookingConflict("slot was taken by a concurrent booking")

		_, err := fixture.usecase.Book(context.Background(), &requests.CreateAppointment{
			PractitionerID: "prac-1",
			PatientID:      "pat-1",
			Date:           tomorrowUTC(),
			Start:          "10:00",
			End:            "11:00",
		})

		require.Error(t, err)
		customErr, ok := err.(*exceptions.CustomError)
		require.True(t, ok)
		assert.Equal(t, constvars.StatusConflict, customErr.StatusCode)
		assert.Empty(t, fixture.publisher.events)
	})

	t.Run("wrong duration is rejected as unprocessable", func(t *testing.T) {
		fixture := newBookingFixture()

		_, err := fixture.usecase.Book(context.Background(), &requests.CreateAppointment{
			PractitionerID: "prac-1",
			PatientID:      "pat-1",
			Date:           tomorrowUTC(),
			Start:          "10:00",
			End:            "10:45",
		})

		require.Error(t, err)
		customErr, ok := err.(*exceptions.CustomError)
		require.True(t, ok)
		assert.Equal(t, constvars.StatusUnprocessableEntity, customErr.StatusCode)
		assert.Equal(t, constvars.ErrClientBookingDurationMismatch, customErr.ClientMessage)
	})
}

func TestAppointmentUsecaseCancel(t *testing.T) {
	t.Run("cancels a booked appointment and publishes the event", func(t *testing.T) {
		fixture := newBookingFixture()
		fixture.appointments.byID["appt-1"] = &models.Appointment{
			ID:             "appt-1",
			PractitionerID: "prac-1",
			PatientID:      "pat-1",
			Date:           tomorrowUTC(),
			Start:          "10:00",
			End:            "11:00",
			Status:         constvars.AppointmentStatusBooked,
		}

		response, err := fixture.usecase.Cancel(context.Background(), "appt-1")

		require.NoError(t, err)
		assert.Equal(t, constvars.AppointmentStatusCancelled, response.Status)
		assert.Equal(t, constvars.AppointmentStatusCancelled, fixture.appointments.updated["appt-1"])
		require.Len(t, fixture.publisher.events, 1)
		assert.Equal(t, constvars.BookingEventCancelled, fixture.publisher.events[0].Type)
		assert.Equal(t, []string{"prac-1"}, fixture.availability.bumped)
	})

	t.Run("unknown appointment is not found", func(t *testing.T) {
		fixture := newBookingFixture()

		_, err := fixture.usecase.Cancel(context.Background(), "missing")

		require.Error(t, err)
		customErr, ok := err.(*exceptions.CustomError)
		require.True(t, ok)
		assert.Equal(t, constvars.StatusNotFound, customErr.StatusCode)
	})

	t.Run("cancelling twice conflicts", func(t *testing.T) {
		fixture := newBookingFixture()
		fixture.appointments.byID["appt-1"] = &models.Appointment{
			ID:     "appt-1",
			Status: constvars.AppointmentStatusCancelled,
		}

		_, err := fixture.usecase.Cancel(context.Background(), "appt-1")

		require.Error(t, err)
		customErr, ok := err.(*exceptions.CustomError)
		require.True(t, ok)
		assert.Equal(t, constvars.StatusConflict, customErr.StatusCode)
	})
}
