package notifier_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"eduspace/infras/mailer"
	mailerMocks "eduspace/infras/mailer/mocks"
	"eduspace/infras/otel/mocks"
	roomMocks "eduspace/internal/domains/room/mocks"
	roomModel "eduspace/internal/domains/room/model"
	userMocks "eduspace/internal/domains/user/mocks"
	userModel "eduspace/internal/domains/user/model"
	"eduspace/internal/events"
	"eduspace/internal/notifier"
	gDto "eduspace/shared/dto"
)

func payload() events.BookingCreatedPayload {
	return events.BookingCreatedPayload{
		ID:          "booking-1",
		Description: "Midterm exam",
		Subject:     "Algorithms",
		Sections:    []string{"A"},
		Years:       []int{2},
		Department:  "CSE",
		RoomID:      "room-1",
		UserID:      "prof-1",
		Date:        time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		StartTime:   time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
		EndTime:     time.Date(2026, 9, 1, 11, 0, 0, 0, time.UTC),
	}
}

type sentRecorder struct {
	mu   sync.Mutex
	sent []mailer.Email
}

func (r *sentRecorder) record(email mailer.Email) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sent = append(r.sent, email)
}

func (r *sentRecorder) bySubject(subject string) []mailer.Email {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []mailer.Email

	for _, email := range r.sent {
		if email.Subject == subject {
			out = append(out, email)
		}
	}

	return out
}

func TestNotifier_NotifyBookingCreated(t *testing.T) {
	t.Run("owner and cohort students notified", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockUsers := userMocks.NewMockUser(ctrl)
		mockRooms := roomMocks.NewMockRoom(ctrl)
		mockMailer := mailerMocks.NewMockMailer(ctrl)
		recorder := &sentRecorder{}

		bus := events.NewBus(mocks.NewOtel())
		n := notifier.New(bus, mockUsers, mockRooms, mockMailer)

		mockRooms.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(roomModel.Room{ID: "room-1", RoomNumber: "101"}, nil)
		mockUsers.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(userModel.User{ID: "prof-1", Name: "Alice", Email: "alice@nitw.ac.in"}, nil)
		mockUsers.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]userModel.User{
				{ID: "student-1", Name: "Bob", Email: "bob@student.nitw.ac.in"},
				{ID: "student-2", Name: "Carol", Email: "carol@student.nitw.ac.in"},
			}, nil)
		mockMailer.EXPECT().
			Send(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, email mailer.Email) error {
				recorder.record(email)

				return nil
			}).
			Times(3)

		n.NotifyBookingCreated(context.Background(), payload())

		confirmations := recorder.bySubject("Booking Confirmation")
		notices := recorder.bySubject("Exam Schedule Notice")

		assert.Len(t, confirmations, 1)
		assert.Equal(t, "alice@nitw.ac.in", confirmations[0].To)
		assert.Contains(t, confirmations[0].HTML, "101")

		assert.Len(t, notices, 2)
	})

	t.Run("cohort filter carries booking attributes", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockUsers := userMocks.NewMockUser(ctrl)
		mockRooms := roomMocks.NewMockRoom(ctrl)
		mockMailer := mailerMocks.NewMockMailer(ctrl)

		bus := events.NewBus(mocks.NewOtel())
		n := notifier.New(bus, mockUsers, mockRooms, mockMailer)

		mockRooms.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(roomModel.Room{}, nil)
		mockUsers.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(userModel.User{}, nil)
		mockUsers.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]userModel.User, error) {
				where, args := filter.GetWhereClause()

				assert.Contains(t, where, "users.section = ANY(:section)")
				assert.Contains(t, where, "users.year = ANY(:year)")
				assert.Equal(t, "CSE", args["branch"])
				assert.Equal(t, "student", args["role"])

				return nil, nil
			})

		n.NotifyBookingCreated(context.Background(), payload())

		_ = mockMailer // owner missing and cohort empty, nothing sent
	})

	t.Run("one failed send never blocks the rest", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockUsers := userMocks.NewMockUser(ctrl)
		mockRooms := roomMocks.NewMockRoom(ctrl)
		mockMailer := mailerMocks.NewMockMailer(ctrl)
		recorder := &sentRecorder{}

		bus := events.NewBus(mocks.NewOtel())
		n := notifier.New(bus, mockUsers, mockRooms, mockMailer)

		mockRooms.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(roomModel.Room{ID: "room-1", RoomNumber: "101"}, nil)
		mockUsers.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(userModel.User{ID: "prof-1", Name: "Alice", Email: "alice@nitw.ac.in"}, nil)
		mockUsers.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]userModel.User{
				{ID: "student-1", Name: "Bob", Email: "bob@student.nitw.ac.in"},
			}, nil)
		mockMailer.EXPECT().
			Send(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, email mailer.Email) error {
				recorder.record(email)

				if email.Subject == "Booking Confirmation" {
					return errors.New("smtp unreachable")
				}

				return nil
			}).
			Times(2)

		n.NotifyBookingCreated(context.Background(), payload())

		assert.Len(t, recorder.bySubject("Exam Schedule Notice"), 1)
	})

	t.Run("unrelated events ignored", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockUsers := userMocks.NewMockUser(ctrl)
		mockRooms := roomMocks.NewMockRoom(ctrl)
		mockMailer := mailerMocks.NewMockMailer(ctrl)

		bus := events.NewBus(mocks.NewOtel())
		notifier.New(bus, mockUsers, mockRooms, mockMailer)

		bus.Publish(context.Background(), events.Event{
			Type:    events.TypeBookingDeleted,
			Payload: events.BookingDeletedPayload{ID: "booking-1"},
		})

		// no mock expectations set: any lookup or send would fail the test
		time.Sleep(50 * time.Millisecond)
	})
}
