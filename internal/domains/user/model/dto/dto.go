package dto

import (
	"eduspace/internal/domains/user/model"
	"eduspace/shared"
	gDto "eduspace/shared/dto"
)

type UpdateUserRequest struct {
	Name string `db:"name" json:"name" validate:"omitempty,max=255"`
	Role string `db:"role" json:"role" validate:"omitempty,oneof=student professor admin"`
}

// UserResponse never carries the password hash or the verification token.
type UserResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	IsVerified bool   `json:"is_verified"`

	Branch      *string `json:"branch,omitempty"`
	Section     *string `json:"section,omitempty"`
	Year        *int    `json:"year,omitempty"`
	ProgramType *string `json:"program_type,omitempty"`

	gDto.Metadata
}

func (r *UserResponse) FromModel(model model.User) {
	r.ID = model.ID
	r.Name = model.Name
	r.Email = model.Email
	r.Role = model.Role
	r.IsVerified = model.IsVerified
	r.Branch = model.Branch
	r.Section = model.Section
	r.Year = model.Year
	r.ProgramType = model.ProgramType
	r.Metadata.FromModel(model.Metadata)
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(models []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Users = make([]UserResponse, len(models))
	for i, mod := range models {
		r.Users[i].FromModel(mod)
	}
}
