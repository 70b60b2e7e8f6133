package api

import (
	"net/http"

	"github.com/JaimeStill/syllabus/internal/config"
	"github.com/JaimeStill/syllabus/pkg/openapi"
	"github.com/JaimeStill/syllabus/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	spec []byte,
) []string {
	return routes.Register(
		mux,
		domain.Plans.Handler(cfg.API.MaxUploadSizeBytes()).Routes(),
		routes.Group{
			Routes: []routes.Route{
				{Method: "GET", Pattern: "/openapi.json", Handler: openapi.ServeSpec(spec)},
			},
		},
	)
}
