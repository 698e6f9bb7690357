// Command seed provisions the admin account. Admins cannot self-register
// through the API, running this once against a fresh database (or after
// rotating the admin credentials) is the only way to create one.
package main

import (
	"context"

	"eduspace/config"
	"eduspace/infras/otel"
	"eduspace/infras/postgres"
	"eduspace/internal/domains/user/model"
	userRepository "eduspace/internal/domains/user/repository"
	"eduspace/shared/constant"
	gDto "eduspace/shared/dto"
	"eduspace/shared/logger"
	"eduspace/shared/password"
	"eduspace/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const seedActor = "seed"

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	if cfg.Admin.Email == "" || cfg.Admin.Password == "" {
		log.Fatal().Msg("ADMIN_EMAIL and ADMIN_PASSWORD must be set")
	}

	ctx := context.Background()
	users := userRepository.New(postgres.New(cfg), otel.New(cfg))

	hashed, err := password.Hash(cfg.Admin.Password)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to hash admin password")
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldEmail,
				Operator: gDto.FilterOperatorEq,
				Value:    cfg.Admin.Email,
				Table:    model.TableName,
			},
		},
	}

	existing, err := users.Get(ctx, filter, model.FieldID)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to look up admin account")
	}

	if existing.ID != "" {
		err = users.Update(ctx, map[string]any{
			model.FieldName:              cfg.Admin.Name,
			model.FieldPassword:          hashed,
			model.FieldRole:              constant.RoleAdmin,
			model.FieldIsVerified:        true,
			model.FieldVerificationToken: nil,
			constant.FieldModifiedAt:     timezone.Now(),
			constant.FieldModifiedBy:     seedActor,
		}, filter)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to reset admin account")
		}

		log.Info().Str("email", cfg.Admin.Email).Msg("Admin account reset")

		return
	}

	admin := model.User{
		ID:         uuid.NewString(),
		Name:       cfg.Admin.Name,
		Email:      cfg.Admin.Email,
		Password:   hashed,
		Role:       constant.RoleAdmin,
		IsVerified: true,
	}
	admin.CreatedBy = seedActor
	admin.ModifiedBy = seedActor

	if err := users.Insert(ctx, admin); err != nil {
		log.Fatal().Err(err).Msg("Failed to create admin account")
	}

	log.Info().Str("email", cfg.Admin.Email).Msg("Admin account created")
}
