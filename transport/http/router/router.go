package router

import (
	"studyhall/internal/handlers/availability"
	"studyhall/internal/handlers/booking"
	"studyhall/internal/handlers/cabin"
	"studyhall/internal/handlers/layout"
	"studyhall/transport/http/middleware"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Cabin        cabin.Handler
	Booking      booking.Handler
	Layout       layout.Handler
	Availability availability.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	Access         middleware.Access
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Use(r.Access.GuardWrites)

		r.DomainHandlers.Cabin.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Layout.Router(routerGroup)
		r.DomainHandlers.Availability.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers, access middleware.Access) Router {
	return Router{
		DomainHandlers: domainHandlers,
		Access:         access,
	}
}
