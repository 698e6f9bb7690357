package di

import (
	"eduspace/internal/events"
	"eduspace/internal/notifier"
	"eduspace/transport/http"
)

// App bundles the HTTP server with the long-lived event subscribers. The
// subscribers carry no API of their own, they exist here so the object graph
// keeps them alive for the lifetime of the process.
type App struct {
	HTTP     *http.HTTP
	Notifier *notifier.Notifier
	Mirror   *events.KafkaMirror
}

func (a *App) Serve() {
	a.HTTP.Serve()
}

func providePublisher(bus events.Bus) events.Publisher {
	return bus
}
