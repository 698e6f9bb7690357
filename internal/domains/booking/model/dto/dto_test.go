package dto_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"eduspace/internal/domains/booking/model/dto"
)

func TestSectionList_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    dto.SectionList
		wantErr bool
	}{
		{
			name:  "json array",
			input: `["A", "B"]`,
			want:  dto.SectionList{"A", "B"},
		},
		{
			name:  "comma separated string",
			input: `"A, B ,C"`,
			want:  dto.SectionList{"A", "B", "C"},
		},
		{
			name:  "empty entries dropped",
			input: `"A,, ,B"`,
			want:  dto.SectionList{"A", "B"},
		},
		{
			name:    "numbers rejected",
			input:   `[1, 2]`,
			wantErr: true,
		},
		{
			name:    "object rejected",
			input:   `{"a": 1}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got dto.SectionList
			err := json.Unmarshal([]byte(tt.input), &got)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestYearList_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    dto.YearList
		wantErr bool
	}{
		{
			name:  "json numbers",
			input: `[2, 3]`,
			want:  dto.YearList{2, 3},
		},
		{
			name:  "json strings",
			input: `["2", "3"]`,
			want:  dto.YearList{2, 3},
		},
		{
			name:  "comma separated string",
			input: `"2, 3"`,
			want:  dto.YearList{2, 3},
		},
		{
			name:  "non-numeric entries dropped",
			input: `"2, two, 3"`,
			want:  dto.YearList{2, 3},
		},
		{
			name:  "single number",
			input: `2`,
			want:  dto.YearList{2},
		},
		{
			name:    "object rejected",
			input:   `{"year": 2}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got dto.YearList
			err := json.Unmarshal([]byte(tt.input), &got)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFlexInt_UnmarshalJSON(t *testing.T) {
	var year dto.FlexInt

	assert.NoError(t, json.Unmarshal([]byte(`3`), &year))
	assert.Equal(t, dto.FlexInt(3), year)

	assert.NoError(t, json.Unmarshal([]byte(`"4"`), &year))
	assert.Equal(t, dto.FlexInt(4), year)

	assert.Error(t, json.Unmarshal([]byte(`"four"`), &year))
}

func TestCreateBookingRequest_ToModel(t *testing.T) {
	req := dto.CreateBookingRequest{
		Description: "Midterm exam",
		Subject:     "Algorithms",
		Sections:    dto.SectionList{"A"},
		Years:       dto.YearList{2},
		Department:  "CSE",
		RoomID:      "b71e8a4e-4f85-4f5f-9f61-28cf3b3db93e",
		Date:        "2026-09-01",
		StartTime:   "2026-09-01T10:00:00Z",
	}

	t.Run("slot is exactly one hour", func(t *testing.T) {
		booking, err := req.ToModel("prof-1")

		assert.NoError(t, err)
		assert.Equal(t, 60*time.Minute, booking.EndTime.Sub(booking.StartTime))
		assert.Equal(t, "prof-1", booking.UserID)
		assert.Equal(t, "prof-1", booking.CreatedBy)
		assert.NotEmpty(t, booking.ID)
	})

	t.Run("bad date", func(t *testing.T) {
		bad := req
		bad.Date = "09/01/2026"

		_, err := bad.ToModel("prof-1")

		assert.Error(t, err)
	})

	t.Run("bad start time", func(t *testing.T) {
		bad := req
		bad.StartTime = "10:00"

		_, err := bad.ToModel("prof-1")

		assert.Error(t, err)
	})
}
