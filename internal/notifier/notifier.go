// Package notifier fans booking events out to email recipients: the owning
// professor gets a confirmation, every student in the matching cohort gets
// an exam notice.
package notifier

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"eduspace/infras/mailer"
	roomModel "eduspace/internal/domains/room/model"
	roomRepo "eduspace/internal/domains/room/repository"
	userModel "eduspace/internal/domains/user/model"
	userRepo "eduspace/internal/domains/user/repository"
	"eduspace/internal/events"
	"eduspace/internal/notifier/templates"
	"eduspace/shared"
	"eduspace/shared/constant"
	gDto "eduspace/shared/dto"
	"eduspace/shared/timezone"
)

const subscriberName = "mail-notifier"

type Notifier struct {
	users  userRepo.User
	rooms  roomRepo.Room
	mailer mailer.Mailer
}

func New(bus events.Bus, users userRepo.User, rooms roomRepo.Room, mailer mailer.Mailer) *Notifier {
	n := &Notifier{
		users:  users,
		rooms:  rooms,
		mailer: mailer,
	}

	bus.Subscribe(subscriberName, n.handle)

	return n
}

func (n *Notifier) handle(ctx context.Context, event events.Event) {
	if event.Type != events.TypeBookingCreated {
		return
	}

	payload, ok := event.Payload.(events.BookingCreatedPayload)
	if !ok {
		log.Error().Str("event", event.Type).Msg("unexpected payload type")

		return
	}

	n.NotifyBookingCreated(ctx, payload)
}

// NotifyBookingCreated delivers all emails for one booking. Every send is
// independent and best effort, failures are logged and swallowed.
func (n *Notifier) NotifyBookingCreated(ctx context.Context, payload events.BookingCreatedPayload) {
	years := make([]string, len(payload.Years))
	for i, year := range payload.Years {
		years[i] = strconv.Itoa(year)
	}

	data := templates.BookingData{
		Description:  payload.Description,
		Subject:      payload.Subject,
		Department:   payload.Department,
		RoomNumber:   n.resolveRoomNumber(ctx, payload.RoomID),
		DateText:     timezone.Format(payload.Date, constant.DateOnlyFormat),
		TimeText:     timezone.Format(payload.StartTime, "15:04"),
		SectionsText: strings.Join(payload.Sections, ", "),
		YearsText:    strings.Join(years, ", "),
	}

	var wg sync.WaitGroup

	if owner := n.resolveOwner(ctx, payload.UserID); owner != nil {
		wg.Add(1)

		go func() {
			defer wg.Done()

			n.sendOwnerConfirmation(ctx, *owner, data)
		}()
	}

	students, err := n.users.GetAll(ctx, gDto.QueryParams{}, cohortFilter(payload))
	if err != nil {
		log.Error().Err(err).Msg("failed to get cohort students")
	}

	for _, student := range students {
		wg.Add(1)

		go func() {
			defer wg.Done()

			n.sendStudentNotice(ctx, student, data)
		}()
	}

	wg.Wait()
}

// cohortFilter selects the verified students whose branch matches the
// booking's department, section is one of its sections, and year one of
// its years.
func cohortFilter(payload events.BookingCreatedPayload) gDto.FilterGroup {
	years := make(pq.Int64Array, len(payload.Years))
	for i, year := range payload.Years {
		years[i] = int64(year)
	}

	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    userModel.FieldRole,
				Operator: gDto.FilterOperatorEq,
				Value:    constant.RoleStudent,
				Table:    userModel.TableName,
			},
			gDto.Filter{
				Field:    userModel.FieldIsVerified,
				Operator: gDto.FilterOperatorEq,
				Value:    true,
				Table:    userModel.TableName,
			},
			gDto.Filter{
				Field:    userModel.FieldBranch,
				Operator: gDto.FilterOperatorEq,
				Value:    payload.Department,
				Table:    userModel.TableName,
			},
			gDto.Filter{
				Field:    userModel.FieldSection,
				Operator: gDto.FilterOperatorAny,
				Value:    pq.StringArray(payload.Sections),
				Table:    userModel.TableName,
			},
			gDto.Filter{
				Field:    userModel.FieldYear,
				Operator: gDto.FilterOperatorAny,
				Value:    years,
				Table:    userModel.TableName,
			},
		},
	}
}

func (n *Notifier) resolveRoomNumber(ctx context.Context, roomID string) string {
	room, err := n.rooms.Get(ctx, shared.FilterByID(roomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("room_id", roomID).Msg("failed to resolve room for notification")

		return constant.Empty
	}

	return room.RoomNumber
}

func (n *Notifier) resolveOwner(ctx context.Context, userID string) *userModel.User {
	owner, err := n.users.Get(ctx, shared.FilterByID(userID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to resolve booking owner")

		return nil
	}

	if owner.ID == constant.Empty {
		return nil
	}

	return &owner
}

func (n *Notifier) sendOwnerConfirmation(ctx context.Context, owner userModel.User, data templates.BookingData) {
	data.RecipientName = owner.Name

	html, err := templates.ProfessorBooking(data)
	if err != nil {
		log.Error().Err(err).Msg("failed to render booking confirmation")

		return
	}

	err = n.mailer.Send(ctx, mailer.Email{
		To:      owner.Email,
		Subject: "Booking Confirmation",
		Text:    "Booking created",
		HTML:    html,
	})
	if err != nil {
		log.Error().Err(err).Str("email", owner.Email).Msg("failed to send booking confirmation")
	}
}

func (n *Notifier) sendStudentNotice(ctx context.Context, student userModel.User, data templates.BookingData) {
	data.RecipientName = student.Name

	html, err := templates.StudentBooking(data)
	if err != nil {
		log.Error().Err(err).Msg("failed to render exam notice")

		return
	}

	err = n.mailer.Send(ctx, mailer.Email{
		To:      student.Email,
		Subject: "Exam Schedule Notice",
		Text:    "Exam scheduled",
		HTML:    html,
	})
	if err != nil {
		log.Error().Err(err).Str("email", student.Email).Msg("failed to send exam notice")
	}
}
