package dto

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"eduspace/internal/domains/booking/model"
	roomDto "eduspace/internal/domains/room/model/dto"
	"eduspace/shared"
	"eduspace/shared/constant"
	gDto "eduspace/shared/dto"
	gModel "eduspace/shared/model"
	"eduspace/shared/timezone"
)

// SectionList accepts either a JSON array of strings or a single
// comma-separated string. Entries are trimmed, empties dropped.
type SectionList []string

func (s *SectionList) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err // nolint:wrapcheck
	}

	switch v := raw.(type) {
	case []any:
		out := make(SectionList, 0, len(v))

		for _, item := range v {
			str, ok := item.(string)
			if !ok {
				return errors.New("sections must contain strings")
			}

			if trimmed := strings.TrimSpace(str); trimmed != constant.Empty {
				out = append(out, trimmed)
			}
		}

		*s = out
	case string:
		out := SectionList{}

		for part := range strings.SplitSeq(v, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != constant.Empty {
				out = append(out, trimmed)
			}
		}

		*s = out
	default:
		return errors.New("sections must be a list or a comma-separated string")
	}

	return nil
}

// YearList accepts a JSON array of numbers or strings, or a single
// comma-separated string. Non-numeric entries are dropped.
type YearList []int

func (y *YearList) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err // nolint:wrapcheck
	}

	appendParsed := func(out YearList, s string) YearList {
		parsed, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return out
		}

		return append(out, parsed)
	}

	switch v := raw.(type) {
	case []any:
		out := make(YearList, 0, len(v))

		for _, item := range v {
			switch n := item.(type) {
			case float64:
				out = append(out, int(n))
			case string:
				out = appendParsed(out, n)
			}
		}

		*y = out
	case string:
		out := YearList{}

		for part := range strings.SplitSeq(v, ",") {
			out = appendParsed(out, part)
		}

		*y = out
	case float64:
		*y = YearList{int(v)}
	default:
		return errors.New("years must be a list or a comma-separated string")
	}

	return nil
}

// FlexInt accepts a JSON number or a numeric string.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexInt(n)

		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return errors.New("expected a number or a numeric string")
	}

	parsed, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return errors.New("expected a number or a numeric string")
	}

	*f = FlexInt(parsed)

	return nil
}

type CreateBookingRequest struct {
	Description string      `json:"description" validate:"required,max=500"`
	Subject     string      `json:"subject"     validate:"omitempty,max=255"`
	Sections    SectionList `json:"sections"    validate:"required,min=1"`
	Years       YearList    `json:"years"       validate:"required,min=1"`
	Department  string      `json:"department"  validate:"required,max=100"`
	RoomID      string      `json:"room_id"     validate:"required,uuid"`
	Date        string      `json:"date"        validate:"required"`
	StartTime   string      `json:"start_time"  validate:"required"`
}

func (c *CreateBookingRequest) ToModel(user string) (model.Booking, error) {
	date, err := timezone.Parse(constant.DateOnlyFormat, c.Date)
	if err != nil {
		return model.Booking{}, errors.New("date must use the YYYY-MM-DD format")
	}

	start, err := time.Parse(time.RFC3339, c.StartTime)
	if err != nil {
		return model.Booking{}, errors.New("start_time must be an RFC 3339 timestamp")
	}

	years := make(pq.Int64Array, len(c.Years))
	for i, year := range c.Years {
		years[i] = int64(year)
	}

	return model.Booking{
		ID:          uuid.NewString(),
		Description: c.Description,
		Subject:     c.Subject,
		Sections:    pq.StringArray(c.Sections),
		Years:       years,
		Department:  c.Department,
		RoomID:      c.RoomID,
		UserID:      user,
		Date:        date,
		StartTime:   start,
		EndTime:     start.Add(constant.BookingSlotMinutes * time.Minute),
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

type AvailabilityRequest struct {
	Date       string `json:"date"       validate:"required"`
	StartTime  string `json:"start_time" validate:"required"`
	Department string `json:"department" validate:"required,max=100"`
}

type StudentScheduleRequest struct {
	Date       string  `json:"date"       validate:"required"`
	Department string  `json:"department" validate:"required,max=100"`
	Section    string  `json:"section"    validate:"required,max=64"`
	Year       FlexInt `json:"year"       validate:"required"`
}

type BookingRoom struct {
	ID         string `json:"id"`
	Department string `json:"department"`
	RoomNumber string `json:"room_number"`
	Capacity   int    `json:"capacity"`
}

type BookingOwner struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type BookingResponse struct {
	ID          string       `json:"id"`
	Description string       `json:"description"`
	Subject     string       `json:"subject,omitempty"`
	Sections    []string     `json:"sections"`
	Years       []int        `json:"years"`
	Department  string       `json:"department"`
	Room        BookingRoom  `json:"room"`
	Owner       BookingOwner `json:"user"`
	Date        string       `json:"date"`
	StartTime   time.Time    `json:"start_time"`
	EndTime     time.Time    `json:"end_time"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(mod model.Booking) {
	r.ID = mod.ID
	r.Description = mod.Description
	r.Subject = mod.Subject
	r.Sections = []string(mod.Sections)

	r.Years = make([]int, len(mod.Years))
	for i, year := range mod.Years {
		r.Years[i] = int(year)
	}

	r.Department = mod.Department
	r.Date = timezone.Format(mod.Date, constant.DateOnlyFormat)
	r.StartTime = mod.StartTime
	r.EndTime = mod.EndTime

	r.Room = BookingRoom{ID: mod.RoomID}
	if mod.RoomDepartment != nil {
		r.Room.Department = *mod.RoomDepartment
	}
	if mod.RoomNumber != nil {
		r.Room.RoomNumber = *mod.RoomNumber
	}
	if mod.RoomCapacity != nil {
		r.Room.Capacity = *mod.RoomCapacity
	}

	r.Owner = BookingOwner{ID: mod.UserID}
	if mod.OwnerName != nil {
		r.Owner.Name = *mod.OwnerName
	}
	if mod.OwnerEmail != nil {
		r.Owner.Email = *mod.OwnerEmail
	}

	r.Metadata.FromModel(mod.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

type AvailabilityResponse struct {
	Rooms []roomDto.RoomResponse `json:"rooms"`
}
