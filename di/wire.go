//go:build wireinject
// +build wireinject

package di

import (
	"eduspace/config"
	"eduspace/infras/jwt"
	"eduspace/infras/kafka"
	"eduspace/infras/mailer"
	"eduspace/infras/otel"
	"eduspace/infras/postgres"
	"eduspace/infras/redis"
	"eduspace/internal/events"
	"eduspace/internal/notifier"
	"eduspace/permissions"
	"eduspace/shared/cache"
	"eduspace/transport/http"
	"eduspace/transport/http/middleware"
	"eduspace/transport/http/router"
	"eduspace/transport/ws"

	authService "eduspace/internal/domains/auth/service"
	bookingRepository "eduspace/internal/domains/booking/repository"
	bookingService "eduspace/internal/domains/booking/service"
	roomRepository "eduspace/internal/domains/room/repository"
	roomService "eduspace/internal/domains/room/service"
	userRepository "eduspace/internal/domains/user/repository"
	userService "eduspace/internal/domains/user/service"
	authHandler "eduspace/internal/handlers/auth"
	bookingHandler "eduspace/internal/handlers/booking"
	roomHandler "eduspace/internal/handlers/room"
	userHandler "eduspace/internal/handlers/user"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	mailer.New,
	kafka.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var eventing = wire.NewSet(
	events.NewBus,
	providePublisher,
	events.NewKafkaMirror,
	ws.NewHub,
)

var authDomain = wire.NewSet(
	userRepository.New,
	authService.New,
)

var userDomain = wire.NewSet(
	userService.New,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var domains = wire.NewSet(
	authDomain,
	userDomain,
	roomDomain,
	bookingDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	roomHandler.New,
	bookingHandler.New,
	userHandler.New,
	router.New,
)

func InitializeService() *App {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		eventing,
		domains,
		routing,
		http.New,
		notifier.New,
		wire.Struct(new(App), "*"),
	)

	return &App{}
}
