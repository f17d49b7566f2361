package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"praktis-service/internal/app/models"
)

func TestValidateBooking(t *testing.T) {
	loc := time.UTC
	now := time.Date(2025, 3, 3, 10, 0, 0, 0, loc) // a Monday
	template := fullWeekTemplate(interval("09:00", "17:00"))
	policy := testPolicy(60, 0, 3, 14)

	request := func(date, start, end string) BookingRequest {
		return BookingRequest{Date: date, Start: start, End: end}
	}

	t.Run("a valid request is accepted", func(t *testing.T) {
		rejection, err := ValidateBooking(request("2025-03-05", "10:00", "11:00"), template, nil, nil, policy, nil, now, loc)

		require.NoError(t, err)
		assert.Nil(t, rejection)
	})

	t.Run("date beyond the advance horizon is out of window", func(t *testing.T) {
		rejection, err := ValidateBooking(request("2025-03-20", "10:00", "11:00"), template, nil, nil, policy, nil, now, loc)

		require.NoError(t, err)
		require.NotNil(t, rejection)
		assert.Equal(t, RejectedOutOfWindow, rejection.Reason)
	})

	t.Run("date in the past is out of window", func(t *testing.T) {
		rejection, err := ValidateBooking(request("2025-03-02", "10:00", "11:00"), template, nil, nil, policy, nil, now, loc)

		require.NoError(t, err)
		require.NotNil(t, rejection)
		assert.Equal(t, RejectedOutOfWindow, rejection.Reason)
	})

	t.Run("today is still inside the window", func(t *testing.T) {
		rejection, err := ValidateBooking(request("2025-03-03", "10:00", "11:00"), template, nil, nil, policy, nil, now, loc)

		require.NoError(t, err)
		assert.Nil(t, rejection)
	})

	t.Run("vacation rejects before any availability check", func(t *testing.T) {
		vacations := []models.VacationWindow{{Start: "2025-03-04", End: "2025-03-06"}}

		rejection, err := ValidateBooking(request("2025-03-05", "10:00", "11:00"), template, nil, vacations, policy, nil, now, loc)

		require.NoError(t, err)
		require.NotNil(t, rejection)
		assert.Equal(t, RejectedVacation, rejection.Reason)
	})

	t.Run("45 minute request against 60 minute sessions mismatches", func(t *testing.T) {
		rejection, err := ValidateBooking(request("2025-03-05", "10:00", "10:45"), template, nil, nil, policy, nil, now, loc)

		require.NoError(t, err)
		require.NotNil(t, rejection)
		assert.Equal(t, RejectedDurationMismatch, rejection.Reason)
	})

	t.Run("request outside open hours is rejected", func(t *testing.T) {
		rejection, err := ValidateBooking(request("2025-03-05", "18:00", "19:00"), template, nil, nil, policy, nil, now, loc)

		require.NoError(t, err)
		require.NotNil(t, rejection)
		assert.Equal(t, RejectedOutsideAvailability, rejection.Reason)
	})

	t.Run("request must fit inside a single open interval", func(t *testing.T) {
		split := fullWeekTemplate(interval("09:00", "10:30"), interval("10:30", "12:00"))

		rejection, err := ValidateBooking(request("2025-03-05", "10:00", "11:00"), split, nil, nil, policy, nil, now, loc)

		require.NoError(t, err)
		require.NotNil(t, rejection)
		assert.Equal(t, RejectedOutsideAvailability, rejection.Reason)
	})

	t.Run("exception replaces the template when checking availability", func(t *testing.T) {
		exceptions := []models.ScheduleException{{
			Date:            "2025-03-05",
			CustomIntervals: []models.TimeInterval{interval("18:00", "20:00")},
		}}

		rejection, err := ValidateBooking(request("2025-03-05", "10:00", "11:00"), template, exceptions, nil, policy, nil, now, loc)
		require.NoError(t, err)
		require.NotNil(t, rejection)
		assert.Equal(t, RejectedOutsideAvailability, rejection.Reason)

		rejection, err = ValidateBooking(request("2025-03-05", "18:00", "19:00"), template, exceptions, nil, policy, nil, now, loc)
		require.NoError(t, err)
		assert.Nil(t, rejection)
	})

	t.Run("overlapping occupied interval is a conflict", func(t *testing.T) {
		occupancy := []models.Appointment{{
			Date: "2025-03-05", Start: "10:30", End: "11:30", Status: "booked",
		}}

		rejection, err := ValidateBooking(request("2025-03-05", "10:00", "11:00"), template, nil, nil, policy, occupancy, now, loc)

		require.NoError(t, err)
		require.NotNil(t, rejection)
		assert.Equal(t, RejectedConflict, rejection.Reason)
	})

	t.Run("touching occupied interval is not a conflict", func(t *testing.T) {
		occupancy := []models.Appointment{{
			Date: "2025-03-05", Start: "11:00", End: "12:00", Status: "booked",
		}}

		rejection, err := ValidateBooking(request("2025-03-05", "10:00", "11:00"), template, nil, nil, policy, occupancy, now, loc)

		require.NoError(t, err)
		assert.Nil(t, rejection)
	})

	t.Run("daily cap rejects non-conflicting requests", func(t *testing.T) {
		capped := testPolicy(60, 0, 1, 14)
		occupancy := []models.Appointment{{
			Date: "2025-03-05", Start: "09:00", End: "10:00", Status: "booked",
		}}

		rejection, err := ValidateBooking(request("2025-03-05", "11:00", "12:00"), template, nil, nil, capped, occupancy, now, loc)

		require.NoError(t, err)
		require.NotNil(t, rejection)
		assert.Equal(t, RejectedCapacityReached, rejection.Reason)
	})

	t.Run("cancelled appointments count for neither conflict nor cap", func(t *testing.T) {
		capped := testPolicy(60, 0, 1, 14)
		occupancy := []models.Appointment{{
			Date: "2025-03-05", Start: "11:00", End: "12:00", Status: "cancelled",
		}}

		rejection, err := ValidateBooking(request("2025-03-05", "11:00", "12:00"), template, nil, nil, capped, occupancy, now, loc)

		require.NoError(t, err)
		assert.Nil(t, rejection)
	})

	t.Run("first failing check wins", func(t *testing.T) {
		// Out of window and outside open hours at once: the window check runs first.
		rejection, err := ValidateBooking(request("2025-04-20", "03:00", "04:00"), template, nil, nil, policy, nil, now, loc)

		require.NoError(t, err)
		require.NotNil(t, rejection)
		assert.Equal(t, RejectedOutOfWindow, rejection.Reason)
	})

	t.Run("malformed occupancy fails fast", func(t *testing.T) {
		occupancy := []models.Appointment{{
			Date: "2025-03-05", Start: "ten", End: "11:00", Status: "booked",
		}}

		_, err := ValidateBooking(request("2025-03-05", "10:00", "11:00"), template, nil, nil, policy, occupancy, now, loc)

		assert.Error(t, err)
	})
}
