package router

import (
	"eduspace/internal/handlers/auth"
	"eduspace/internal/handlers/booking"
	"eduspace/internal/handlers/room"
	"eduspace/internal/handlers/user"
	"eduspace/transport/http/middleware"
	"eduspace/transport/ws"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth    auth.Handler
	Room    room.Handler
	Booking booking.Handler
	User    user.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	AuthRole       middleware.AuthRole
	Hub            *ws.Hub
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Use(r.AuthRole.Auth)
		routerGroup.Use(r.AuthRole.RBAC)

		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
	})

	r.Hub.Router(router)
}

func New(domainHandlers DomainHandlers, authRole middleware.AuthRole, hub *ws.Hub) Router {
	return Router{
		DomainHandlers: domainHandlers,
		AuthRole:       authRole,
		Hub:            hub,
	}
}
