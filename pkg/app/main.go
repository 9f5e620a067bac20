package app

import (
	"net/http"

	"github.com/ghuser/vitrina/pkg/auth"
	"github.com/ghuser/vitrina/pkg/cache"
	"github.com/ghuser/vitrina/pkg/config"
	"github.com/ghuser/vitrina/pkg/database"
	"github.com/ghuser/vitrina/pkg/events"
	"github.com/ghuser/vitrina/pkg/logger"
)

// Application holds shared infrastructure dependencies for all services.
// Pass to all service Routes calls during server initialization.
//
// Logging: app.Logger is backed by a trace-aware handler; use slog's context methods
// and trace_id, span_id, and request_id are injected automatically:
//
//	app.Logger.InfoContext(ctx, "sale recorded", "sale_id", id)
//	app.Logger.ErrorContext(ctx, "failed to save", "error", err)
//
// Use app.Logger.Info/Error (no context) only for startup and shutdown messages.
type Application struct {
	Config      *config.Config
	Db          *database.Database
	Logger      logger.Logger
	EventBus    *events.EventBus
	Redis       *cache.RedisClient
	Tokens      *auth.TokenIssuer    // nil in worker process
	Revocations auth.RevocationStore // nil in worker process
}

// RequireAdmin returns the middleware guarding admin endpoints: a valid,
// unrevoked bearer token whose role is one of auth.AdminRoles.
func (a *Application) RequireAdmin() []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		auth.RequireAuth(a.Tokens, a.Revocations, a.Logger),
		auth.RequireRole(auth.AdminRoles...),
	}
}
