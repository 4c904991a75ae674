package controllers

import (
	"net/http"

	"github.com/bautizosmaitte/storefront-api/api/responses"
	"github.com/bautizosmaitte/storefront-api/pkg/config"
	pkgerrors "github.com/bautizosmaitte/storefront-api/pkg/errors"
	"github.com/bautizosmaitte/storefront-api/pkg/kvstore"
	"github.com/bautizosmaitte/storefront-api/pkg/logger"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Maitte-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady also checks the state store, since cart and favorites cannot
// function without it.
func HealthReady(cfg *config.Config, logg *logger.Logger, kv kvstore.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Maitte-Env", cfg.App.Env)

		if kv != nil {
			if err := kv.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "state store unavailable"))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
