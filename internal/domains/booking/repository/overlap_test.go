package repository_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"eduspace/internal/domains/booking/repository"
)

func TestOverlapFilter(t *testing.T) {
	start := time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC)
	end := start.Add(59 * time.Minute)

	filter := repository.OverlapFilter([]string{"room-1", "room-2"}, start, start, end)
	where, args := filter.GetWhereClause()

	t.Run("day bounds cover the calendar day", func(t *testing.T) {
		dayStart, _ := args["overlap_day_start"].(time.Time)
		dayEnd, _ := args["overlap_day_end"].(time.Time)

		assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), dayStart)
		assert.Equal(t, time.Date(2026, 9, 1, 23, 59, 59, 999000000, time.UTC), dayEnd)
	})

	t.Run("window bounds pass through", func(t *testing.T) {
		assert.Equal(t, start, args["overlap_start_from"])
		assert.Equal(t, end, args["overlap_start_until"])
		assert.Equal(t, start, args["overlap_end_after"])
		assert.Equal(t, end, args["overlap_end_until"])
		assert.Equal(t, start, args["overlap_contains_start"])
		assert.Equal(t, end, args["overlap_contains_end"])
	})

	t.Run("all rooms bound", func(t *testing.T) {
		assert.Equal(t, "room-1", args["overlap_room_ids_0"])
		assert.Equal(t, "room-2", args["overlap_room_ids_1"])
	})

	t.Run("three overlap clauses joined by OR", func(t *testing.T) {
		assert.Equal(t, 2, strings.Count(where, " OR "))
		assert.Contains(t, where, "room_bookings.start_time >= :overlap_start_from")
		assert.Contains(t, where, "room_bookings.start_time < :overlap_start_until")
		assert.Contains(t, where, "room_bookings.end_time > :overlap_end_after")
		assert.Contains(t, where, "room_bookings.end_time <= :overlap_end_until")
		assert.Contains(t, where, "room_bookings.start_time <= :overlap_contains_start")
		assert.Contains(t, where, "room_bookings.end_time >= :overlap_contains_end")
	})

	// the asymmetric clauses decide the classic boundary cases: an existing
	// [10:00, 11:00) slot conflicts with a 10:30 request, while slots ending
	// exactly at 10:30 or starting at 11:29 do not block a fresh hour before
	t.Run("half open boundaries", func(t *testing.T) {
		assert.NotContains(t, where, "start_time <= :overlap_start_until")
		assert.NotContains(t, where, "end_time >= :overlap_end_after")
	})
}
