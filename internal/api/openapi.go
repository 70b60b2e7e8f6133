package api

import (
	"github.com/JaimeStill/syllabus/internal/config"
	"github.com/JaimeStill/syllabus/pkg/openapi"
)

// Spec describes the API module's endpoints.
func Spec(cfg *config.Config) *openapi.Spec {
	spec := openapi.NewSpec(&cfg.API.OpenAPI, cfg.Version)
	spec.AddServer(cfg.API.BasePath, "API base path")
	spec.AddTag("Plans", "Lesson-plan generation and stored artifacts")

	spec.Components.AddSchemas(map[string]*openapi.Schema{
		"Stored": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"key":       {Type: "string", Description: "Storage key of the Markdown lesson plan"},
				"state_key": {Type: "string", Description: "Storage key of the JSON state dump"},
				"location":  {Type: "string", Description: "File path or blob URL of the lesson plan"},
			},
			Required: []string{"key", "location"},
		},
		"Run": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"run_id":       {Type: "string", Format: "uuid"},
				"filename":     {Type: "string"},
				"total_hours":  {Type: "integer"},
				"phase":        {Type: "string", Enum: []any{"done", "error"}},
				"stage":        {Type: "string", Description: "Failed stage when phase is error"},
				"error":        {Type: "string"},
				"stored":       openapi.SchemaRef("Stored"),
				"log":          {Type: "array", Items: &openapi.Schema{Type: "string"}},
				"completed_at": {Type: "string", Format: "date-time"},
			},
			Required: []string{"run_id", "phase", "log"},
		},
	})

	minHours := 1.0
	key := openapi.PathParam("key", "Storage key returned in a run's stored object")

	spec.Paths["/plans"] = &openapi.PathItem{
		Post: &openapi.Operation{
			OperationID: "generatePlan",
			Summary:     "Generate a lesson plan",
			Description: "Runs extraction, objectives, knowledge points, activities, assessment and formatting for an uploaded textbook PDF, then stores the result.",
			Tags:        []string{"Plans"},
			RequestBody: openapi.RequestBodyMultipart(
				"Textbook PDF and class-hour total",
				map[string]*openapi.Schema{
					"file":        {Type: "string", Format: "binary"},
					"total_hours": {Type: "integer", Minimum: &minHours},
				},
				"file", "total_hours",
			),
			Responses: map[int]*openapi.Response{
				201: openapi.ResponseJSON("Lesson plan generated and stored", "Run"),
				400: openapi.ResponseRef("BadRequest"),
				413: openapi.ResponseRef("PayloadTooLarge"),
				422: openapi.ResponseJSON("Run ended in the error phase", "Run"),
				500: openapi.ResponseRef("InternalError"),
			},
		},
	}

	spec.Paths["/plans/{key}"] = &openapi.PathItem{
		Get: &openapi.Operation{
			OperationID: "downloadPlan",
			Summary:     "Download a stored lesson plan or state dump",
			Tags:        []string{"Plans"},
			Parameters:  []*openapi.Parameter{key},
			Responses:   map[int]*openapi.Response{
				200: openapi.ResponseContent("Stored lesson plan or state dump", "text/markdown", "application/json"),
				400: openapi.ResponseRef("BadRequest"),
				404: openapi.ResponseRef("NotFound"),
			},
		},
		Delete: &openapi.Operation{
			OperationID: "deletePlan",
			Summary:     "Delete a stored lesson plan or state dump",
			Tags:        []string{"Plans"},
			Parameters:  []*openapi.Parameter{key},
			Responses:   map[int]*openapi.Response{
				204: {Description: "Deleted"},
				400: openapi.ResponseRef("BadRequest"),
				404: openapi.ResponseRef("NotFound"),
			},
		},
	}

	return spec
}
