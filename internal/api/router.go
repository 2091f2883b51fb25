package api

import (
	"context"
	"net/http"

	"github.com/julienschmidt/httprouter"

	apiContext "cardbridge/internal/api/context"
	"cardbridge/internal/api/handlers"
	"cardbridge/internal/api/middleware"
)

type Dependencies struct {
	WebhookHandler *handlers.WebhookHandler
	HealthHandler  *handlers.HealthHandler
}

func NewRouter(deps *Dependencies) *httprouter.Router {
	router := httprouter.New()

	// The upstream platform can be configured to deliver the event with
	// either verb, so both are routed.
	router.GET("/webhook", chain(deps.WebhookHandler.ProcessCard, middleware.RequestID, middleware.Recover, middleware.RequestLogger))
	router.POST("/webhook", chain(deps.WebhookHandler.ProcessCard, middleware.RequestID, middleware.Recover, middleware.RequestLogger))

	router.GET("/webhook/email", chain(deps.WebhookHandler.ResolveEmail, middleware.RequestID, middleware.Recover, middleware.RequestLogger))
	router.POST("/webhook/email", chain(deps.WebhookHandler.ResolveEmail, middleware.RequestID, middleware.Recover, middleware.RequestLogger))

	router.GET("/health", wrap(deps.HealthHandler.Check))

	return router
}

// Helper function to chain middlewares
func chain(handler http.HandlerFunc, middlewares ...func(http.HandlerFunc) http.HandlerFunc) httprouter.Handle {
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}
	return wrap(handler)
}

// Convert http.HandlerFunc to httprouter.Handle
func wrap(handler http.HandlerFunc) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		// Inject params into context
		ctx := context.WithValue(r.Context(), apiContext.Params, ps)
		handler(w, r.WithContext(ctx))
	}
}
