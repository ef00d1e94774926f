// Package api exposes the JSON HTTP interface of the expense tracker.
package api

import (
	"github.com/splatcrew/splattrack/internal/auth"
	"github.com/splatcrew/splattrack/internal/notify"
	"github.com/splatcrew/splattrack/internal/staging"
	"github.com/splatcrew/splattrack/internal/storage"
)

// Handler bundles the collaborators the HTTP endpoints need.
type Handler struct {
	store         storage.Store
	authenticator auth.Authenticator
	jwt           *auth.JWTManager
	drafts        *staging.Registry
	dispatcher    *notify.Dispatcher
	appURL        string
}

// NewHandler wires the endpoint collaborators together.
func NewHandler(store storage.Store, authenticator auth.Authenticator, jwt *auth.JWTManager, dispatcher *notify.Dispatcher, appURL string) *Handler {
	return &Handler{
		store:         store,
		authenticator: authenticator,
		jwt:           jwt,
		drafts:        staging.NewRegistry(),
		dispatcher:    dispatcher,
		appURL:        appURL,
	}
}
