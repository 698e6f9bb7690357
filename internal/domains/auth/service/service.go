package service

import (
	"context"
	"fmt"
	"strings"

	"eduspace/config"
	"eduspace/infras/jwt"
	"eduspace/infras/mailer"
	"eduspace/infras/otel"
	"eduspace/internal/domains/auth/model/dto"
	userModel "eduspace/internal/domains/user/model"
	userRepo "eduspace/internal/domains/user/repository"
	"eduspace/internal/notifier/templates"
	"eduspace/shared"
	"eduspace/shared/constant"
	gDto "eduspace/shared/dto"
	"eduspace/shared/failure"
	"eduspace/shared/password"
	"eduspace/shared/timezone"

	"github.com/rs/zerolog/log"
)

type Auth interface {
	Register(ctx context.Context, req dto.RegisterRequest) error
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	VerifyEmail(ctx context.Context, token string) error
	ResendVerification(ctx context.Context, req dto.ResendVerificationRequest) error
}

type serviceImpl struct {
	userRepo   userRepo.User
	cfg        *config.Config
	otel       otel.Otel
	jwtService jwt.JWT
	mailer     mailer.Mailer
}

func New(userRepo userRepo.User, cfg *config.Config, otel otel.Otel, jwt jwt.JWT, mailer mailer.Mailer) Auth {
	return &serviceImpl{
		userRepo:   userRepo,
		cfg:        cfg,
		otel:       otel,
		jwtService: jwt,
		mailer:     mailer,
	}
}

func filterByEmail(email string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    userModel.FieldEmail,
				Operator: gDto.FilterOperatorEq,
				Value:    email,
				Table:    userModel.TableName,
			},
		},
	}
}

func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Register")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.checkEmailDomain(req.Email, req.Role); err != nil {
		return err
	}

	exists, err := s.userRepo.Exist(ctx, filterByEmail(req.Email))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return fmt.Errorf("failed to check if user exists: %w", err)
	}

	if exists {
		return failure.Conflict("email already registered") // nolint:wrapcheck
	}

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return fmt.Errorf("failed to hash password: %w", err)
	}

	verificationToken, err := shared.RandomToken()
	if err != nil {
		log.Error().Err(err).Msg("failed to generate verification token")

		return fmt.Errorf("failed to generate verification token: %w", err)
	}

	if err = s.userRepo.Insert(ctx, req.ToUserModel(hashedPassword, verificationToken)); err != nil {
		log.Error().Err(err).Msg("failed to create user")

		return fmt.Errorf("failed to create user: %w", err)
	}

	// best effort: a broken mail sink must not roll the registration back,
	// the user can always request a resend
	s.sendVerificationEmail(ctx, req.Name, req.Email, verificationToken)

	return nil
}

func (s *serviceImpl) checkEmailDomain(email, role string) error {
	switch role {
	case constant.RoleStudent:
		if !strings.HasSuffix(email, s.cfg.Auth.StudentEmailSuffix) {
			return failure.BadRequestFromString("invalid email domain for student") // nolint:wrapcheck
		}
	case constant.RoleProfessor:
		if !strings.HasSuffix(email, s.cfg.Auth.ProfessorEmailSuffix) {
			return failure.BadRequestFromString("invalid email domain for professor") // nolint:wrapcheck
		}
	default:
		return failure.BadRequestFromString("cannot register as " + role) // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) sendVerificationEmail(ctx context.Context, name, email, token string) {
	verifyURL := s.cfg.App.BaseURL + "/verify-email?token=" + token

	html, err := templates.Verification(templates.VerificationData{Name: name, VerifyURL: verifyURL})
	if err != nil {
		log.Error().Err(err).Str("email", email).Msg("failed to render verification email")

		return
	}

	err = s.mailer.Send(ctx, mailer.Email{
		To:      email,
		Subject: "Verify your email",
		Text:    "Please click on this link to verify your email address: " + verifyURL,
		HTML:    html,
	})
	if err != nil {
		log.Error().Err(err).Str("email", email).Msg("failed to send verification email")
	}
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Login")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, err := s.userRepo.Get(ctx, filterByEmail(req.Email))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == "" {
		log.Warn().Str("email", req.Email).Msg("login attempt with unknown email")

		return res, failure.Unauthorized("invalid credentials") // nolint:wrapcheck
	}

	if err := password.Verify(req.Password, user.Password); err != nil {
		log.Warn().Str("email", req.Email).Msg("login attempt with wrong password")

		return res, failure.Unauthorized("invalid credentials") // nolint:wrapcheck
	}

	if user.Role != req.Role {
		log.Warn().Str("email", req.Email).Str("requested_role", req.Role).Msg("login attempt with wrong role")

		return res, failure.Unauthorized("invalid credentials") // nolint:wrapcheck
	}

	if !user.IsVerified {
		return res, failure.Unauthorized("email not verified") // nolint:wrapcheck
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Email, user.Name, user.Role)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate token")

		return res, fmt.Errorf("failed to generate token: %w", err)
	}

	res.FromToken(token)

	return res, nil
}

func (s *serviceImpl) VerifyEmail(ctx context.Context, token string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".VerifyEmail")
	defer scope.End()
	defer scope.TraceIfError(err)

	if token == "" {
		return failure.BadRequestFromString("verification token is missing") // nolint:wrapcheck
	}

	tokenFilter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    userModel.FieldVerificationToken,
				Operator: gDto.FilterOperatorEq,
				Value:    token,
				Table:    userModel.TableName,
			},
		},
	}

	user, err := s.userRepo.Get(ctx, tokenFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user by verification token")

		return fmt.Errorf("failed to get user by verification token: %w", err)
	}

	if user.ID == "" {
		return failure.NotFound("verification token not found") // nolint:wrapcheck
	}

	updatedFields := map[string]any{
		userModel.FieldIsVerified:        true,
		userModel.FieldVerificationToken: nil,
		constant.FieldModifiedAt:         timezone.Now(),
		constant.FieldModifiedBy:         user.Email,
	}

	if err := s.userRepo.Update(ctx, updatedFields, tokenFilter); err != nil {
		log.Error().Err(err).Msg("failed to mark user as verified")

		return fmt.Errorf("failed to mark user as verified: %w", err)
	}

	return nil
}

func (s *serviceImpl) ResendVerification(ctx context.Context, req dto.ResendVerificationRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ResendVerification")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, err := s.userRepo.Get(ctx, filterByEmail(req.Email))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == "" {
		return failure.NotFound("user not found") // nolint:wrapcheck
	}

	if user.IsVerified {
		return failure.BadRequestFromString("account already verified") // nolint:wrapcheck
	}

	verificationToken, err := shared.RandomToken()
	if err != nil {
		log.Error().Err(err).Msg("failed to generate verification token")

		return fmt.Errorf("failed to generate verification token: %w", err)
	}

	updatedFields := map[string]any{
		userModel.FieldVerificationToken: verificationToken,
		constant.FieldModifiedAt:         timezone.Now(),
		constant.FieldModifiedBy:         user.Email,
	}

	if err := s.userRepo.Update(ctx, updatedFields, filterByEmail(req.Email)); err != nil {
		log.Error().Err(err).Msg("failed to rotate verification token")

		return fmt.Errorf("failed to rotate verification token: %w", err)
	}

	s.sendVerificationEmail(ctx, user.Name, user.Email, verificationToken)

	return nil
}
