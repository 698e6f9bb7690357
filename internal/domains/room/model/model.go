package model

import "eduspace/shared/model"

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID         = "id"
	FieldDepartment = "department"
	FieldRoomNumber = "room_number"
	FieldCapacity   = "capacity"
)

// (department, room_number) is unique, enforced by a DB index and a
// service-level existence check.
type Room struct {
	ID         string `db:"id"`
	Department string `db:"department"`
	RoomNumber string `db:"room_number"`
	Capacity   int    `db:"capacity"`

	model.Metadata
}
