package service

import (
	"context"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"eduspace/config"
	"eduspace/infras/otel"
	"eduspace/internal/domains/booking/model"
	"eduspace/internal/domains/booking/model/dto"
	"eduspace/internal/domains/booking/repository"
	roomModel "eduspace/internal/domains/room/model"
	roomDto "eduspace/internal/domains/room/model/dto"
	roomRepo "eduspace/internal/domains/room/repository"
	"eduspace/internal/events"
	"eduspace/shared"
	"eduspace/shared/constant"
	gDto "eduspace/shared/dto"
	"eduspace/shared/failure"
	"eduspace/shared/timezone"
)

type Booking interface {
	CheckAvailability(ctx context.Context, req dto.AvailabilityRequest) (dto.AvailabilityResponse, error)
	Create(ctx context.Context, req dto.CreateBookingRequest) error
	Delete(ctx context.Context, id string) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	GetMine(ctx context.Context, req gDto.QueryParams) (dto.GetBookingsResponse, error)
	FindStudentSchedule(ctx context.Context, req dto.StudentScheduleRequest) (dto.BookingResponse, error)
}

type serviceImpl struct {
	repo     repository.Booking
	roomRepo roomRepo.Room
	cfg      *config.Config
	otel     otel.Otel
	bus      events.Publisher
}

func New(repo repository.Booking, roomRepo roomRepo.Room, cfg *config.Config, otel otel.Otel, bus events.Publisher) Booking {
	return &serviceImpl{
		repo:     repo,
		roomRepo: roomRepo,
		cfg:      cfg,
		otel:     otel,
		bus:      bus,
	}
}

func filterByDepartment(department string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    roomModel.FieldDepartment,
				Operator: gDto.FilterOperatorEq,
				Value:    department,
				Table:    roomModel.TableName,
			},
		},
	}
}

func (s *serviceImpl) CheckAvailability(ctx context.Context, req dto.AvailabilityRequest) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckAvailability")
	defer scope.End()
	defer scope.TraceIfError(err)

	date, err := timezone.Parse(constant.DateOnlyFormat, req.Date)
	if err != nil {
		return res, failure.BadRequestFromString("date must use the YYYY-MM-DD format") // nolint:wrapcheck
	}

	reqStart, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return res, failure.BadRequestFromString("start_time must be an RFC 3339 timestamp") // nolint:wrapcheck
	}

	reqEnd := reqStart.Add(constant.AvailabilityWindowMinutes * time.Minute)

	rooms, err := s.roomRepo.GetAll(ctx, gDto.QueryParams{}, filterByDepartment(req.Department))
	if err != nil {
		log.Error().Err(err).Msg("failed to get department rooms")

		return res, fmt.Errorf("failed to get department rooms: %w", err)
	}

	res.Rooms = []roomDto.RoomResponse{}

	if len(rooms) == 0 {
		return res, nil
	}

	roomIDs := make([]string, len(rooms))
	for i, room := range rooms {
		roomIDs[i] = room.ID
	}

	conflicts, err := s.repo.GetAll(ctx, gDto.QueryParams{}, repository.OverlapFilter(roomIDs, date, reqStart, reqEnd), model.FieldRoomID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get conflicting bookings")

		return res, fmt.Errorf("failed to get conflicting bookings: %w", err)
	}

	booked := make(map[string]struct{}, len(conflicts))
	for _, conflict := range conflicts {
		booked[conflict.RoomID] = struct{}{}
	}

	for _, room := range rooms {
		if _, taken := booked[room.ID]; taken {
			continue
		}

		var roomRes roomDto.RoomResponse
		roomRes.FromModel(room)

		res.Rooms = append(res.Rooms, roomRes)
	}

	return res, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	if role != constant.RoleProfessor {
		return failure.Forbidden("only professors can book rooms") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := req.ToModel(user)
	if err != nil {
		return failure.BadRequestFromString(err.Error()) // nolint:wrapcheck
	}

	conflict, err := s.repo.CreateIfAvailable(ctx, booking)
	if err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return fmt.Errorf("failed to create booking: %w", err)
	}

	if conflict {
		return failure.Conflict("room is already booked for this slot") // nolint:wrapcheck
	}

	years := make([]int, len(booking.Years))
	for i, year := range booking.Years {
		years[i] = int(year)
	}

	s.bus.Publish(ctx, events.Event{
		Type: events.TypeBookingCreated,
		Payload: events.BookingCreatedPayload{
			ID:          booking.ID,
			Description: booking.Description,
			Subject:     booking.Subject,
			Sections:    booking.Sections,
			Years:       years,
			Department:  booking.Department,
			RoomID:      booking.RoomID,
			UserID:      booking.UserID,
			Date:        booking.Date,
			StartTime:   booking.StartTime,
			EndTime:     booking.EndTime,
		},
	})

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	booking, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if booking.UserID != user {
		return failure.Forbidden("not allowed to delete this booking") // nolint:wrapcheck
	}

	if err := s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete booking")

		return fmt.Errorf("failed to delete booking: %w", err)
	}

	s.bus.Publish(ctx, events.Event{
		Type:    events.TypeBookingDeleted,
		Payload: events.BookingDeletedPayload{ID: id},
	})

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) GetMine(ctx context.Context, req gDto.QueryParams) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetMine")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	return s.GetAll(ctx, req, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldUserID,
				Operator: gDto.FilterOperatorEq,
				Value:    user,
				Table:    model.TableName,
			},
		},
	})
}

func (s *serviceImpl) FindStudentSchedule(ctx context.Context, req dto.StudentScheduleRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".FindStudentSchedule")
	defer scope.End()
	defer scope.TraceIfError(err)

	date, err := timezone.Parse(constant.DateOnlyFormat, req.Date)
	if err != nil {
		return res, failure.BadRequestFromString("date must use the YYYY-MM-DD format") // nolint:wrapcheck
	}

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.Add(24*time.Hour - time.Millisecond)

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldDepartment,
				Operator: gDto.FilterOperatorEq,
				Value:    req.Department,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldSections,
				Operator: gDto.FilterOperatorContains,
				Value:    pq.StringArray{req.Section},
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldYears,
				Operator: gDto.FilterOperatorContains,
				Value:    pq.Int64Array{int64(req.Year)},
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "schedule_day_start",
				Field:    model.FieldDate,
				Operator: gDto.FilterOperatorGreaterEq,
				Value:    dayStart,
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "schedule_day_end",
				Field:    model.FieldDate,
				Operator: gDto.FilterOperatorLess,
				Value:    dayEnd,
				Table:    model.TableName,
			},
		},
	}

	// several bookings can match a cohort on the same day, the earliest
	// slot is the deterministic answer
	params := gDto.QueryParams{
		Limit:   1,
		SortBy:  model.TableName + "." + model.FieldStartTime,
		SortDir: gDto.SortDirAsc,
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to find student schedule")

		return res, fmt.Errorf("failed to find student schedule: %w", err)
	}

	if len(models) == 0 {
		return res, failure.NotFound("no exam found for the given details") // nolint:wrapcheck
	}

	res.FromModel(models[0])

	return res, nil
}
