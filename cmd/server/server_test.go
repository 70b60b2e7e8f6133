package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/syllabus/internal/config"
	"github.com/JaimeStill/syllabus/internal/infrastructure"
)

func TestHealthAndReadiness(t *testing.T) {
	t.Setenv(config.EnvSyllabusEnv, "")
	t.Setenv("SYLLABUS_STORAGE_DIRECTORY", t.TempDir())

	cfg, err := config.LoadFrom(t.TempDir())
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}

	infra, err := infrastructure.New(cfg)
	if err != nil {
		t.Fatalf("infrastructure: %v", err)
	}
	router := buildRouter(infra, cfg)

	probe := func(path string) (int, map[string]string) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		var body map[string]string
		json.Unmarshal(rec.Body.Bytes(), &body)
		return rec.Code, body
	}
	status := func(path string) (int, string) {
		code, body := probe(path)
		return code, body["status"]
	}

	code, body := probe("/healthz")
	if code != http.StatusOK || body["status"] != "ok" {
		t.Errorf("healthz = %d %v", code, body)
	}
	if body["version"] != cfg.Version {
		t.Errorf("healthz version = %q, want %q", body["version"], cfg.Version)
	}
	if code, _ := status("/readyz"); code != http.StatusServiceUnavailable {
		t.Errorf("readyz before startup = %d, want 503", code)
	}

	if err := infra.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	infra.Lifecycle.WaitForStartup()

	code, body = probe("/readyz")
	if code != http.StatusOK || body["status"] != "ready" {
		t.Errorf("readyz after startup = %d %v", code, body)
	}
	if body["storage"] != "local" {
		t.Errorf("readyz storage = %q, want local", body["storage"])
	}
}
