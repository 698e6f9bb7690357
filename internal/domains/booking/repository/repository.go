package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"eduspace/infras/otel"
	"eduspace/infras/postgres"
	"eduspace/internal/domains/booking/model"
	"eduspace/shared/constant"
	gDto "eduspace/shared/dto"
	gRepo "eduspace/shared/repository"
)

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	CreateIfAvailable(ctx context.Context, booking model.Booking) (conflict bool, err error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// OverlapFilter matches bookings on any of the given rooms within the
// calendar day of date whose slot collides with [reqStart, reqEnd]:
// the existing slot starts inside it, ends inside it, or contains it.
func OverlapFilter(roomIDs []string, date, reqStart, reqEnd time.Time) gDto.FilterGroup {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.Add(24*time.Hour - time.Millisecond)

	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				ArgName:  "overlap_room_ids",
				Field:    model.FieldRoomID,
				Operator: gDto.FilterOperatorIn,
				Value:    roomIDs,
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "overlap_day_start",
				Field:    model.FieldDate,
				Operator: gDto.FilterOperatorGreaterEq,
				Value:    dayStart,
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "overlap_day_end",
				Field:    model.FieldDate,
				Operator: gDto.FilterOperatorLess,
				Value:    dayEnd,
				Table:    model.TableName,
			},
			gDto.FilterGroup{
				Operator: gDto.FilterGroupOperatorOr,
				Filters: []any{
					gDto.FilterGroup{
						Operator: gDto.FilterGroupOperatorAnd,
						Filters: []any{
							gDto.Filter{
								ArgName:  "overlap_start_from",
								Field:    model.FieldStartTime,
								Operator: gDto.FilterOperatorGreaterEq,
								Value:    reqStart,
								Table:    model.TableName,
							},
							gDto.Filter{
								ArgName:  "overlap_start_until",
								Field:    model.FieldStartTime,
								Operator: gDto.FilterOperatorLess,
								Value:    reqEnd,
								Table:    model.TableName,
							},
						},
					},
					gDto.FilterGroup{
						Operator: gDto.FilterGroupOperatorAnd,
						Filters: []any{
							gDto.Filter{
								ArgName:  "overlap_end_after",
								Field:    model.FieldEndTime,
								Operator: gDto.FilterOperatorGreater,
								Value:    reqStart,
								Table:    model.TableName,
							},
							gDto.Filter{
								ArgName:  "overlap_end_until",
								Field:    model.FieldEndTime,
								Operator: gDto.FilterOperatorLessEq,
								Value:    reqEnd,
								Table:    model.TableName,
							},
						},
					},
					gDto.FilterGroup{
						Operator: gDto.FilterGroupOperatorAnd,
						Filters: []any{
							gDto.Filter{
								ArgName:  "overlap_contains_start",
								Field:    model.FieldStartTime,
								Operator: gDto.FilterOperatorLessEq,
								Value:    reqStart,
								Table:    model.TableName,
							},
							gDto.Filter{
								ArgName:  "overlap_contains_end",
								Field:    model.FieldEndTime,
								Operator: gDto.FilterOperatorGreaterEq,
								Value:    reqEnd,
								Table:    model.TableName,
							},
						},
					},
				},
			},
		},
	}
}

// CreateIfAvailable re-runs the overlap test and the insert in one
// transaction, serialized per room by locking the room row. A concurrent
// booking of the same slot surfaces as conflict instead of a double booking.
func (repo *repositoryImpl) CreateIfAvailable(ctx context.Context, booking model.Booking) (conflict bool, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.CreateIfAvailable")
	defer scope.End()
	defer scope.TraceIfError(err)

	sqltx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction (%s): %w", model.EntityName, err)
	}

	defer func() {
		if err != nil || conflict {
			if rollbackErr := sqltx.Rollback(); rollbackErr != nil {
				log.Error().Err(rollbackErr).Msg("failed to rollback booking transaction")
			}
		}
	}()

	if _, err = sqltx.ExecContext(ctx, "SELECT id FROM rooms WHERE id = $1 FOR UPDATE", booking.RoomID); err != nil {
		return false, fmt.Errorf("failed to lock room row (%s): %w", model.EntityName, err)
	}

	reqEnd := booking.StartTime.Add(constant.AvailabilityWindowMinutes * time.Minute)

	conflict, err = repo.ExistTx(ctx, sqltx, OverlapFilter([]string{booking.RoomID}, booking.Date, booking.StartTime, reqEnd))
	if err != nil {
		return false, err
	}

	if conflict {
		return true, nil
	}

	if err = repo.InsertTx(ctx, sqltx, booking); err != nil {
		return false, err
	}

	if err = sqltx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit transaction (%s): %w", model.EntityName, err)
	}

	return false, nil
}
