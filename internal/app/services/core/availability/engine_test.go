package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"praktis-service/internal/app/models"
)

func interval(start, end string) models.TimeInterval {
	return models.TimeInterval{Start: start, End: end}
}

func breakInterval(start, end string) models.TimeInterval {
	return models.TimeInterval{Start: start, End: end, IsBreak: true}
}

func fullWeekTemplate(intervals ...models.TimeInterval) *models.WeeklyTemplate {
	days := make([]models.DayRule, 7)
	for i := range days {
		days[i] = models.DayRule{Weekday: i, IsAvailable: true, Intervals: intervals}
	}
	return &models.WeeklyTemplate{PractitionerID: "prac-1", Days: days}
}

func testPolicy(session, buffer, maxDaily, advance int) *models.BookingPolicy {
	return &models.BookingPolicy{
		PractitionerID:         "prac-1",
		SessionDurationMinutes: session,
		BufferMinutes:          buffer,
		MaxDailyAppointments:   maxDaily,
		AdvanceBookingDays:     advance,
	}
}

func TestGenerateSlots(t *testing.T) {
	loc := time.UTC

	t.Run("tiles an open interval and discards the partial trailing space", func(t *testing.T) {
		template := fullWeekTemplate(interval("09:00", "12:00"))
		policy := testPolicy(60, 15, 10, 30)

		slots, err := GenerateSlots(template, nil, nil, policy, "2025-03-03", "2025-03-03", loc)

		require.NoError(t, err)
		// 180 open minutes, 60+15 per session: floor((180+15)/75) = 2 slots.
		require.Len(t, slots, 2)
		assert.Equal(t, "09:00", slots[0].Start)
		assert.Equal(t, "10:00", slots[0].End)
		assert.Equal(t, "10:15", slots[1].Start)
		assert.Equal(t, "11:15", slots[1].End)
		assert.Equal(t, models.SlotSourceTemplate, slots[0].Source)
	})

	t.Run("session equal to interval length yields exactly one slot", func(t *testing.T) {
		template := fullWeekTemplate(interval("09:00", "10:00"))
		policy := testPolicy(60, 15, 10, 30)

		slots, err := GenerateSlots(template, nil, nil, policy, "2025-03-03", "2025-03-03", loc)

		require.NoError(t, err)
		require.Len(t, slots, 1)
		assert.Equal(t, "09:00", slots[0].Start)
		assert.Equal(t, "10:00", slots[0].End)
	})

	t.Run("interval shorter than one session yields no slots", func(t *testing.T) {
		template := fullWeekTemplate(interval("09:00", "09:30"))
		policy := testPolicy(60, 0, 10, 30)

		slots, err := GenerateSlots(template, nil, nil, policy, "2025-03-03", "2025-03-03", loc)

		require.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("unavailable weekday produces no slots", func(t *testing.T) {
		template := fullWeekTemplate(interval("09:00", "17:00"))
		template.Days[1].IsAvailable = false // 2025-03-03 is a Monday
		policy := testPolicy(60, 0, 10, 30)

		slots, err := GenerateSlots(template, nil, nil, policy, "2025-03-03", "2025-03-03", loc)

		require.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("break intervals never become slots", func(t *testing.T) {
		template := fullWeekTemplate(
			interval("09:00", "12:00"),
			breakInterval("12:00", "13:00"),
			interval("13:00", "15:00"),
		)
		policy := testPolicy(60, 0, 10, 30)

		slots, err := GenerateSlots(template, nil, nil, policy, "2025-03-03", "2025-03-03", loc)

		require.NoError(t, err)
		for _, slot := range slots {
			assert.False(t, slot.Start >= "12:00" && slot.Start < "13:00", "slot %s-%s falls inside the break", slot.Start, slot.End)
		}
		assert.Len(t, slots, 5)
	})

	t.Run("active vacation dominates template and exceptions", func(t *testing.T) {
		template := fullWeekTemplate(interval("09:00", "17:00"))
		vacations := []models.VacationWindow{{Start: "2025-03-01", End: "2025-03-31"}}
		exceptions := []models.ScheduleException{{
			Date:            "2025-03-04",
			CustomIntervals: []models.TimeInterval{interval("18:00", "20:00")},
		}}
		policy := testPolicy(60, 0, 10, 30)

		slots, err := GenerateSlots(template, exceptions, vacations, policy, "2025-03-03", "2025-03-05", loc)

		require.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("exception intervals replace the template for that date", func(t *testing.T) {
		template := fullWeekTemplate(interval("09:00", "17:00"))
		exceptions := []models.ScheduleException{{
			Date:            "2025-03-03",
			CustomIntervals: []models.TimeInterval{interval("18:00", "20:00")},
		}}
		policy := testPolicy(60, 0, 10, 30)

		slots, err := GenerateSlots(template, exceptions, nil, policy, "2025-03-03", "2025-03-03", loc)

		require.NoError(t, err)
		require.Len(t, slots, 2)
		assert.Equal(t, "18:00", slots[0].Start)
		assert.Equal(t, models.SlotSourceException, slots[0].Source)
	})

	t.Run("full day block removes the whole date", func(t *testing.T) {
		template := fullWeekTemplate(interval("09:00", "17:00"))
		exceptions := []models.ScheduleException{{Date: "2025-03-03", FullDayBlock: true}}
		policy := testPolicy(60, 0, 10, 30)

		slots, err := GenerateSlots(template, exceptions, nil, policy, "2025-03-03", "2025-03-04", loc)

		require.NoError(t, err)
		for _, slot := range slots {
			assert.NotEqual(t, "2025-03-03", slot.Date)
		}
		assert.NotEmpty(t, slots, "the following day still produces slots")
	})

	t.Run("colliding template intervals fail fast", func(t *testing.T) {
		template := fullWeekTemplate(interval("09:00", "11:00"), interval("10:00", "12:00"))
		policy := testPolicy(60, 0, 10, 30)

		_, err := GenerateSlots(template, nil, nil, policy, "2025-03-03", "2025-03-03", loc)

		assert.ErrorIs(t, err, ErrMalformedTemplate)
	})

	t.Run("exception outside the requested range fails fast", func(t *testing.T) {
		template := fullWeekTemplate(interval("09:00", "17:00"))
		exceptions := []models.ScheduleException{{Date: "2025-04-20", FullDayBlock: true}}
		policy := testPolicy(60, 0, 10, 30)

		_, err := GenerateSlots(template, exceptions, nil, policy, "2025-03-03", "2025-03-03", loc)

		assert.ErrorIs(t, err, ErrMalformedException)
	})

	t.Run("inverted vacation window fails fast", func(t *testing.T) {
		template := fullWeekTemplate(interval("09:00", "17:00"))
		vacations := []models.VacationWindow{{Start: "2025-03-10", End: "2025-03-01"}}
		policy := testPolicy(60, 0, 10, 30)

		_, err := GenerateSlots(template, nil, vacations, policy, "2025-03-03", "2025-03-03", loc)

		assert.ErrorIs(t, err, ErrMalformedVacationWindow)
	})

	t.Run("generation is deterministic for identical inputs", func(t *testing.T) {
		template := fullWeekTemplate(interval("09:00", "12:00"), interval("13:00", "17:00"))
		policy := testPolicy(45, 10, 10, 30)

		first, err := GenerateSlots(template, nil, nil, policy, "2025-03-03", "2025-03-09", loc)
		require.NoError(t, err)
		second, err := GenerateSlots(template, nil, nil, policy, "2025-03-03", "2025-03-09", loc)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})
}

func TestFilterBookable(t *testing.T) {
	loc := time.UTC
	template := fullWeekTemplate(interval("09:00", "12:00"))
	policy := testPolicy(60, 0, 10, 30)

	generate := func(t *testing.T) []models.Slot {
		slots, err := GenerateSlots(template, nil, nil, policy, "2025-03-03", "2025-03-03", loc)
		require.NoError(t, err)
		require.Len(t, slots, 3)
		return slots
	}

	t.Run("removes slots overlapping occupied intervals", func(t *testing.T) {
		appointments := []models.Appointment{{
			Date: "2025-03-03", Start: "10:00", End: "11:00", Status: "booked",
		}}

		bookable, err := FilterBookable(generate(t), appointments, policy)

		require.NoError(t, err)
		require.Len(t, bookable, 2)
		assert.Equal(t, "09:00", bookable[0].Start)
		assert.Equal(t, "11:00", bookable[1].Start)
	})

	t.Run("cancelled appointments free their slot", func(t *testing.T) {
		appointments := []models.Appointment{{
			Date: "2025-03-03", Start: "10:00", End: "11:00", Status: "cancelled",
		}}

		bookable, err := FilterBookable(generate(t), appointments, policy)

		require.NoError(t, err)
		assert.Len(t, bookable, 3)
	})

	t.Run("daily cap empties the date even with open time left", func(t *testing.T) {
		capped := testPolicy(60, 0, 1, 30)
		appointments := []models.Appointment{{
			Date: "2025-03-03", Start: "09:00", End: "10:00", Status: "booked",
		}}

		bookable, err := FilterBookable(generate(t), appointments, capped)

		require.NoError(t, err)
		assert.Empty(t, bookable)
	})

	t.Run("touching appointments do not conflict", func(t *testing.T) {
		appointments := []models.Appointment{{
			Date: "2025-03-03", Start: "08:00", End: "09:00", Status: "booked",
		}}

		bookable, err := FilterBookable(generate(t), appointments, policy)

		require.NoError(t, err)
		assert.Len(t, bookable, 3)
	})
}
