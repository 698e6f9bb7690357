package dto

import (
	"eduspace/infras/jwt"
	userModel "eduspace/internal/domains/user/model"
	"eduspace/shared/constant"
	gModel "eduspace/shared/model"
	"eduspace/shared/timezone"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Name     string `json:"name"     validate:"required,max=255"`
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role"     validate:"required,oneof=student professor"`

	// cohort fields, students only
	Branch      string `json:"branch"       validate:"required_if=Role student,max=255"`
	Section     string `json:"section"      validate:"required_if=Role student,max=64"`
	Year        int    `json:"year"         validate:"required_if=Role student,omitempty,min=1,max=6"`
	ProgramType string `json:"program_type" validate:"required_if=Role student,max=64"`
}

func (r *RegisterRequest) ToUserModel(hashedPassword, verificationToken string) userModel.User {
	user := userModel.User{
		ID:                uuid.NewString(),
		Name:              r.Name,
		Email:             r.Email,
		Password:          hashedPassword,
		Role:              r.Role,
		IsVerified:        false,
		VerificationToken: &verificationToken,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  r.Email,
			ModifiedBy: r.Email,
		},
	}

	if r.Role == constant.RoleStudent {
		user.Branch = &r.Branch
		user.Section = &r.Section
		user.Year = &r.Year
		user.ProgramType = &r.ProgramType
	}

	return user
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"     validate:"required,oneof=student professor admin"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

func (l *LoginResponse) FromToken(token *jwt.Token) {
	l.AccessToken = token.AccessToken
	l.TokenType = token.TokenType
	l.ExpiresIn = token.ExpiresIn
}

type ResendVerificationRequest struct {
	Email string `json:"email" validate:"required,email"`
}
