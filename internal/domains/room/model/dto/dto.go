package dto

import (
	"eduspace/internal/domains/room/model"
	"eduspace/shared"
	gDto "eduspace/shared/dto"
	gModel "eduspace/shared/model"
	"eduspace/shared/timezone"

	"github.com/google/uuid"
)

type CreateRoomRequest struct {
	Department string `json:"department"  validate:"required,max=100"`
	RoomNumber string `json:"room_number" validate:"required,max=50"`
	Capacity   int    `json:"capacity"    validate:"required,min=1"`
}

func (c *CreateRoomRequest) ToModel(user string) model.Room {
	return model.Room{
		ID:         uuid.NewString(),
		Department: c.Department,
		RoomNumber: c.RoomNumber,
		Capacity:   c.Capacity,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateRoomRequest struct {
	Department string `db:"department"  json:"department"  validate:"omitempty,max=100"`
	RoomNumber string `db:"room_number" json:"room_number" validate:"omitempty,max=50"`
	Capacity   *int   `db:"capacity"    json:"capacity"    validate:"omitempty,min=1"`
}

type RoomResponse struct {
	ID         string `json:"id"`
	Department string `json:"department"`
	RoomNumber string `json:"room_number"`
	Capacity   int    `json:"capacity"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.Department = model.Department
	r.RoomNumber = model.RoomNumber
	r.Capacity = model.Capacity
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}
