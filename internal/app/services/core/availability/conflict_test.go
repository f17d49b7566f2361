package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"praktis-service/internal/app/models"
)

func TestOverlaps(t *testing.T) {
	t.Run("partial overlap conflicts", func(t *testing.T) {
		assert.True(t, Overlaps(540, 600, 570, 630))
	})

	t.Run("containment conflicts", func(t *testing.T) {
		assert.True(t, Overlaps(540, 720, 600, 660))
	})

	t.Run("touching endpoints do not conflict", func(t *testing.T) {
		assert.False(t, Overlaps(540, 600, 600, 660))
		assert.False(t, Overlaps(600, 660, 540, 600))
	})

	t.Run("disjoint intervals do not conflict", func(t *testing.T) {
		assert.False(t, Overlaps(540, 600, 720, 780))
	})
}

func TestFindInternalOverlap(t *testing.T) {
	t.Run("reports the first colliding pair after sorting", func(t *testing.T) {
		intervals := []models.TimeInterval{
			interval("14:00", "16:00"),
			interval("09:00", "11:00"),
			interval("10:30", "12:00"),
		}

		first, second, found, err := FindInternalOverlap(intervals)

		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, "09:00", first.Start)
		assert.Equal(t, "10:30", second.Start)
	})

	t.Run("sorted non-overlapping intervals pass", func(t *testing.T) {
		intervals := []models.TimeInterval{
			interval("09:00", "11:00"),
			interval("11:00", "12:00"),
			interval("14:00", "16:00"),
		}

		_, _, found, err := FindInternalOverlap(intervals)

		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("inverted interval is an error not an overlap", func(t *testing.T) {
		intervals := []models.TimeInterval{interval("11:00", "09:00")}

		_, _, _, err := FindInternalOverlap(intervals)

		assert.Error(t, err)
	})

	t.Run("unparseable clock time is an error", func(t *testing.T) {
		intervals := []models.TimeInterval{interval("9am", "11:00")}

		_, _, _, err := FindInternalOverlap(intervals)

		assert.Error(t, err)
	})
}
