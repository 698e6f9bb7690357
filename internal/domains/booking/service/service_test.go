package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"eduspace/config"
	"eduspace/infras/otel/mocks"
	bookingMocks "eduspace/internal/domains/booking/mocks"
	"eduspace/internal/domains/booking/model"
	"eduspace/internal/domains/booking/model/dto"
	"eduspace/internal/domains/booking/service"
	roomMocks "eduspace/internal/domains/room/mocks"
	roomModel "eduspace/internal/domains/room/model"
	"eduspace/internal/events"
	"eduspace/shared/constant"
	gDto "eduspace/shared/dto"
	"eduspace/shared/failure"
)

type recordingBus struct {
	mu     sync.Mutex
	events []events.Event
}

func (b *recordingBus) Publish(_ context.Context, event events.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.events = append(b.events, event)
}

func (b *recordingBus) published() []events.Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	return append([]events.Event{}, b.events...)
}

func newService(t *testing.T) (service.Booking, *bookingMocks.MockBooking, *roomMocks.MockRoom, *recordingBus) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockRooms := roomMocks.NewMockRoom(ctrl)
	mockOtel := mocks.NewOtel()
	bus := &recordingBus{}

	return service.New(mockRepo, mockRooms, &config.Config{}, mockOtel, bus), mockRepo, mockRooms, bus
}

func professorContext() context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "prof-1")

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleProfessor)
}

func TestBookingService_CheckAvailability(t *testing.T) {
	req := dto.AvailabilityRequest{
		Date:       "2026-09-01",
		StartTime:  "2026-09-01T10:30:00Z",
		Department: "CSE",
	}

	t.Run("conflicting room excluded", func(t *testing.T) {
		svc, mockRepo, mockRooms, _ := newService(t)

		mockRooms.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]roomModel.Room{
				{ID: "room-1", Department: "CSE", RoomNumber: "101"},
				{ID: "room-2", Department: "CSE", RoomNumber: "102"},
			}, nil)
		mockRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Booking{{ID: "booking-1", RoomID: "room-1"}}, nil)

		res, err := svc.CheckAvailability(context.Background(), req)

		assert.NoError(t, err)
		assert.Len(t, res.Rooms, 1)
		assert.Equal(t, "room-2", res.Rooms[0].ID)
	})

	t.Run("no rooms in department", func(t *testing.T) {
		svc, _, mockRooms, _ := newService(t)

		mockRooms.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]roomModel.Room{}, nil)

		res, err := svc.CheckAvailability(context.Background(), req)

		assert.NoError(t, err)
		assert.Empty(t, res.Rooms)
		assert.NotNil(t, res.Rooms)
	})

	t.Run("requested window is 59 minutes", func(t *testing.T) {
		svc, mockRepo, mockRooms, _ := newService(t)

		mockRooms.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]roomModel.Room{{ID: "room-1", Department: "CSE"}}, nil)
		mockRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Booking, error) {
				_, args := filter.GetWhereClause()

				start, _ := args["overlap_start_from"].(time.Time)
				end, _ := args["overlap_start_until"].(time.Time)
				assert.Equal(t, 59*time.Minute, end.Sub(start))

				return nil, nil
			})

		_, err := svc.CheckAvailability(context.Background(), req)

		assert.NoError(t, err)
	})

	t.Run("bad date format", func(t *testing.T) {
		svc, _, _, _ := newService(t)

		bad := req
		bad.Date = "01-09-2026"

		_, err := svc.CheckAvailability(context.Background(), bad)

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("bad start time format", func(t *testing.T) {
		svc, _, _, _ := newService(t)

		bad := req
		bad.StartTime = "10:30"

		_, err := svc.CheckAvailability(context.Background(), bad)

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})
}

func TestBookingService_Create(t *testing.T) {
	req := dto.CreateBookingRequest{
		Description: "Midterm exam",
		Subject:     "Algorithms",
		Sections:    dto.SectionList{"A", "B"},
		Years:       dto.YearList{2, 3},
		Department:  "CSE",
		RoomID:      "b71e8a4e-4f85-4f5f-9f61-28cf3b3db93e",
		Date:        "2026-09-01",
		StartTime:   "2026-09-01T10:00:00Z",
	}

	t.Run("successful creation publishes event", func(t *testing.T) {
		svc, mockRepo, _, bus := newService(t)

		mockRepo.EXPECT().
			CreateIfAvailable(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, booking model.Booking) (bool, error) {
				assert.Equal(t, "prof-1", booking.UserID)
				assert.Equal(t, 60*time.Minute, booking.EndTime.Sub(booking.StartTime))
				assert.Equal(t, []string{"A", "B"}, []string(booking.Sections))

				return false, nil
			})

		err := svc.Create(professorContext(), req)

		assert.NoError(t, err)

		published := bus.published()
		assert.Len(t, published, 1)
		assert.Equal(t, events.TypeBookingCreated, published[0].Type)
	})

	t.Run("slot conflict", func(t *testing.T) {
		svc, mockRepo, _, bus := newService(t)

		mockRepo.EXPECT().
			CreateIfAvailable(gomock.Any(), gomock.Any()).
			Return(true, nil)

		err := svc.Create(professorContext(), req)

		assert.Error(t, err)
		assert.Equal(t, 409, failure.GetCode(err))
		assert.Empty(t, bus.published())
	})

	t.Run("non-professor rejected", func(t *testing.T) {
		svc, _, _, _ := newService(t)

		ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "student-1")
		ctx = context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleStudent)

		err := svc.Create(ctx, req)

		assert.Error(t, err)
		assert.Equal(t, 403, failure.GetCode(err))
	})

	t.Run("unparseable start time", func(t *testing.T) {
		svc, _, _, _ := newService(t)

		bad := req
		bad.StartTime = "ten o'clock"

		err := svc.Create(professorContext(), bad)

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("repository error", func(t *testing.T) {
		svc, mockRepo, _, _ := newService(t)

		mockRepo.EXPECT().
			CreateIfAvailable(gomock.Any(), gomock.Any()).
			Return(false, errors.New("database error"))

		err := svc.Create(professorContext(), req)

		assert.Error(t, err)
	})
}

func TestBookingService_Delete(t *testing.T) {
	t.Run("owner deletes booking and event fires", func(t *testing.T) {
		svc, mockRepo, _, bus := newService(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Booking{ID: "booking-1", UserID: "prof-1"}, nil)
		mockRepo.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(nil)

		err := svc.Delete(professorContext(), "booking-1")

		assert.NoError(t, err)

		published := bus.published()
		assert.Len(t, published, 1)
		assert.Equal(t, events.TypeBookingDeleted, published[0].Type)
	})

	t.Run("booking not found", func(t *testing.T) {
		svc, mockRepo, _, _ := newService(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Booking{}, nil)

		err := svc.Delete(professorContext(), "missing")

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})

	t.Run("non-owner forbidden", func(t *testing.T) {
		svc, mockRepo, _, bus := newService(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Booking{ID: "booking-1", UserID: "someone-else"}, nil)

		err := svc.Delete(professorContext(), "booking-1")

		assert.Error(t, err)
		assert.Equal(t, 403, failure.GetCode(err))
		assert.Empty(t, bus.published())
	})
}

func TestBookingService_GetMine(t *testing.T) {
	svc, mockRepo, _, _ := newService(t)

	mockRepo.EXPECT().
		Count(gomock.Any(), gomock.Any()).
		Return(1, nil)
	mockRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Booking, error) {
			_, args := filter.GetWhereClause()
			assert.Equal(t, "prof-1", args[model.FieldUserID])

			return []model.Booking{{ID: "booking-1", UserID: "prof-1"}}, nil
		})

	res, err := svc.GetMine(professorContext(), gDto.QueryParams{Page: 1, Limit: 10})

	assert.NoError(t, err)
	assert.Len(t, res.Bookings, 1)
}

func TestBookingService_FindStudentSchedule(t *testing.T) {
	req := dto.StudentScheduleRequest{
		Date:       "2026-09-01",
		Department: "CSE",
		Section:    "A",
		Year:       2,
	}

	t.Run("earliest match wins", func(t *testing.T) {
		svc, mockRepo, _, _ := newService(t)

		mockRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Booking, error) {
				assert.Equal(t, 1, params.Limit)
				assert.Equal(t, gDto.SortDirAsc, params.SortDir)

				return []model.Booking{{ID: "booking-1", Department: "CSE"}}, nil
			})

		res, err := svc.FindStudentSchedule(context.Background(), req)

		assert.NoError(t, err)
		assert.Equal(t, "booking-1", res.ID)
	})

	t.Run("no match", func(t *testing.T) {
		svc, mockRepo, _, _ := newService(t)

		mockRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, nil)

		_, err := svc.FindStudentSchedule(context.Background(), req)

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})

	t.Run("bad date", func(t *testing.T) {
		svc, _, _, _ := newService(t)

		bad := req
		bad.Date = "next tuesday"

		_, err := svc.FindStudentSchedule(context.Background(), bad)

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})
}
