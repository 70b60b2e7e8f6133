// Package api assembles the API module with the lesson-plan domain and route registration.
package api

import (
	"fmt"
	"net/http"

	"github.com/JaimeStill/syllabus/internal/config"
	"github.com/JaimeStill/syllabus/internal/infrastructure"
	"github.com/JaimeStill/syllabus/pkg/middleware"
	"github.com/JaimeStill/syllabus/pkg/module"
	"github.com/JaimeStill/syllabus/pkg/openapi"
)

// NewModule creates the API module with all domain handlers and middleware.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime)

	spec, err := openapi.MarshalJSON(Spec(cfg))
	if err != nil {
		return nil, fmt.Errorf("build openapi spec: %w", err)
	}

	mux := http.NewServeMux()
	patterns := registerRoutes(mux, domain, cfg, spec)
	runtime.Logger.Info("api routes registered", "base_path", cfg.API.BasePath, "routes", len(patterns))

	m, err := module.New(cfg.API.BasePath, mux)
	if err != nil {
		return nil, err
	}
	m.Use(middleware.Recover(runtime.Logger))
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Logger))

	return m, nil
}
