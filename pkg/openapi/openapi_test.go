package openapi_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/JaimeStill/syllabus/pkg/openapi"
)

func TestNewSpec(t *testing.T) {
	spec := openapi.NewSpec(&openapi.Config{
		Title:       "Test API",
		Description: "A test API",
		ServerURL:   "https://plans.example",
	}, "1.0.0")
	spec.AddServer("/api", "API base path")
	spec.AddTag("Plans", "")

	if spec.OpenAPI != "3.1.0" {
		t.Errorf("openapi version: got %s, want 3.1.0", spec.OpenAPI)
	}
	if spec.Info.Title != "Test API" || spec.Info.Version != "1.0.0" || spec.Info.Description != "A test API" {
		t.Errorf("info: got %+v", spec.Info)
	}
	if len(spec.Servers) != 2 || spec.Servers[0].URL != "https://plans.example" || spec.Servers[1].URL != "/api" {
		t.Errorf("servers: got %+v", spec.Servers)
	}
	if len(spec.Tags) != 1 || spec.Tags[0].Name != "Plans" {
		t.Errorf("tags: got %+v", spec.Tags)
	}
	for _, name := range []string{"BadRequest", "NotFound", "PayloadTooLarge", "InternalError"} {
		if _, ok := spec.Components.Responses[name]; !ok {
			t.Errorf("missing shared response %s", name)
		}
	}
	if _, ok := spec.Components.Schemas["Error"]; !ok {
		t.Error("missing Error schema")
	}
}

func TestHelpers(t *testing.T) {
	if ref := openapi.SchemaRef("Run"); ref.Ref != "#/components/schemas/Run" {
		t.Errorf("SchemaRef: got %s", ref.Ref)
	}
	if ref := openapi.ResponseRef("NotFound"); ref.Ref != "#/components/responses/NotFound" {
		t.Errorf("ResponseRef: got %s", ref.Ref)
	}

	resp := openapi.ResponseJSON("Success", "Run")
	if resp.Content["application/json"].Schema.Ref != "#/components/schemas/Run" {
		t.Errorf("ResponseJSON schema: got %+v", resp.Content)
	}

	raw := openapi.ResponseContent("Stored object", "text/markdown", "application/json")
	if len(raw.Content) != 2 || raw.Content["text/markdown"] == nil || raw.Content["application/json"] == nil {
		t.Errorf("ResponseContent: got %+v", raw.Content)
	}

	p := openapi.PathParam("key", "Storage key")
	if p.In != "path" || !p.Required || p.Schema.Type != "string" {
		t.Errorf("PathParam: got %+v", p)
	}

	body := openapi.RequestBodyMultipart("upload", map[string]*openapi.Schema{
		"file": {Type: "string", Format: "binary"},
	}, "file")
	form := body.Content["multipart/form-data"]
	if form == nil || form.Schema.Properties["file"] == nil || form.Schema.Required[0] != "file" {
		t.Errorf("RequestBodyMultipart: got %+v", body)
	}
}

func TestConfigFinalize(t *testing.T) {
	t.Setenv("TEST_OPENAPI_TITLE", "Lesson Plans")

	var cfg openapi.Config
	if err := cfg.Finalize(&openapi.ConfigEnv{Title: "TEST_OPENAPI_TITLE"}); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if cfg.Title != "Lesson Plans" {
		t.Errorf("title: got %s", cfg.Title)
	}
	if cfg.Description == "" {
		t.Error("description default not applied")
	}
}

func TestServeAndWriteJSON(t *testing.T) {
	spec := openapi.NewSpec(&openapi.Config{Title: "Test"}, "1.0.0")
	data, err := openapi.MarshalJSON(spec)
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}

	rec := httptest.NewRecorder()
	openapi.ServeSpec(data)(rec, httptest.NewRequest(http.MethodGet, "/openapi.json", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != string(data) {
		t.Errorf("ServeSpec: got %d %q", rec.Code, rec.Body.String())
	}

	etag := rec.Header().Get("ETag")
	if etag == "" {
		t.Fatal("ServeSpec: missing ETag")
	}
	req := httptest.NewRequest(http.MethodGet, "/openapi.json", nil)
	req.Header.Set("If-None-Match", etag)
	rec = httptest.NewRecorder()
	openapi.ServeSpec(data)(rec, req)
	if rec.Code != http.StatusNotModified || rec.Body.Len() != 0 {
		t.Errorf("ServeSpec conditional: got %d with %d bytes", rec.Code, rec.Body.Len())
	}

	path := filepath.Join(t.TempDir(), "openapi.json")
	if err := openapi.WriteJSON(spec, path); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	written, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	var parsed map[string]any
	if err := json.Unmarshal(written, &parsed); err != nil {
		t.Fatalf("written spec is not JSON: %v", err)
	}
	if parsed["openapi"] != "3.1.0" {
		t.Errorf("written openapi: got %v", parsed["openapi"])
	}
}
