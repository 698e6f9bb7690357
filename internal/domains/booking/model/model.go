package model

import (
	"time"

	"github.com/lib/pq"

	"eduspace/shared/model"
)

const (
	TableName  = "room_bookings"
	EntityName = "booking"

	FieldID          = "id"
	FieldDescription = "description"
	FieldSubject     = "subject"
	FieldSections    = "sections"
	FieldYears       = "years"
	FieldDepartment  = "department"
	FieldRoomID      = "room_id"
	FieldUserID      = "user_id"
	FieldDate        = "date"
	FieldStartTime   = "start_time"
	FieldEndTime     = "end_time"
)

type Booking struct {
	ID          string         `db:"id"`
	Description string         `db:"description"`
	Subject     string         `db:"subject"`
	Sections    pq.StringArray `db:"sections"`
	Years       pq.Int64Array  `db:"years"`
	Department  string         `db:"department"`
	RoomID      string         `db:"room_id"`
	UserID      string         `db:"user_id"`
	Date        time.Time      `db:"date"`
	StartTime   time.Time      `db:"start_time"`
	EndTime     time.Time      `db:"end_time"`

	// resolved through the join below, nullable because room deletion
	// does not cascade to bookings
	RoomDepartment *string `db:"room_department" table:"rooms" column:"department"`
	RoomNumber     *string `db:"room_number"     table:"rooms" column:"room_number"`
	RoomCapacity   *int    `db:"room_capacity"   table:"rooms" column:"capacity"`
	OwnerName      *string `db:"owner_name"      table:"users" column:"name"`
	OwnerEmail     *string `db:"owner_email"     table:"users" column:"email"`

	model.Metadata
}

func (Booking) GetJoinQuery() string {
	return "LEFT JOIN rooms ON rooms.id = room_bookings.room_id " +
		"LEFT JOIN users ON users.id = room_bookings.user_id"
}
