package main

import (
	"net/http"

	"github.com/JaimeStill/syllabus/internal/api"
	"github.com/JaimeStill/syllabus/internal/config"
	"github.com/JaimeStill/syllabus/internal/infrastructure"
	"github.com/JaimeStill/syllabus/pkg/handlers"
	"github.com/JaimeStill/syllabus/pkg/module"
)

// Modules holds the HTTP modules mounted on the server router.
type Modules struct {
	API *module.Module
}

// NewModules creates all HTTP modules.
func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	apiModule, err := api.NewModule(cfg, infra)
	if err != nil {
		return nil, err
	}

	return &Modules{
		API: apiModule,
	}, nil
}

// Mount registers every module with router.
func (m *Modules) Mount(router *module.Router) error {
	return router.Mount(m.API)
}

// health is the body of the liveness and readiness probes.
type health struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Storage string `json:"storage,omitempty"`
}

func buildRouter(infra *infrastructure.Infrastructure, cfg *config.Config) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		handlers.RespondJSON(w, http.StatusOK, health{Status: "ok", Version: cfg.Version})
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		body := health{Status: "ready", Version: cfg.Version, Storage: cfg.Storage.Backend}
		if !infra.Lifecycle.Ready() {
			body.Status = "not ready"
			handlers.RespondJSON(w, http.StatusServiceUnavailable, body)
			return
		}
		handlers.RespondJSON(w, http.StatusOK, body)
	})

	return router
}
