package model

import "eduspace/shared/model"

const (
	TableName  = "users"
	EntityName = "user"

	FieldID                = "id"
	FieldName              = "name"
	FieldEmail             = "email"
	FieldPassword          = "password"
	FieldRole              = "role"
	FieldIsVerified        = "is_verified"
	FieldVerificationToken = "verification_token"
	FieldBranch            = "branch"
	FieldSection           = "section"
	FieldYear              = "year"
	FieldProgramType       = "program_type"
)

type User struct {
	ID         string `db:"id"`
	Name       string `db:"name"`
	Email      string `db:"email"`
	Password   string `db:"password"`
	Role       string `db:"role"`
	IsVerified bool   `db:"is_verified"`

	// single-use secret proving control of the registered address;
	// cleared once consumed
	VerificationToken *string `db:"verification_token"`

	// cohort fields, set for students only
	Branch      *string `db:"branch"`
	Section     *string `db:"section"`
	Year        *int    `db:"year"`
	ProgramType *string `db:"program_type"`

	model.Metadata
}
