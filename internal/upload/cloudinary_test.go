package upload

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dev-singh-05/gymers/internal/config"
)

func TestUploadRequiresConfiguration(t *testing.T) {
	cases := []config.CloudinaryConfig{
		{},
		{CloudName: "demo"},
		{UploadPreset: "unsigned"},
	}
	for _, cfg := range cases {
		c := NewClient(cfg)
		_, err := c.Upload(context.Background(), "a.png", strings.NewReader("img"))
		if !errors.Is(err, ErrNotConfigured) {
			t.Errorf("config %+v error = %v, want ErrNotConfigured", cfg, err)
		}
	}
}

func TestUploadSendsUnsignedForm(t *testing.T) {
	var gotPreset, gotFolder string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse form: %v", err)
		}
		gotPreset = r.FormValue("upload_preset")
		gotFolder = r.FormValue("folder")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"secure_url":"https://res.example/img.png","public_id":"gymers/img","width":640,"height":480}`))
	}))
	defer srv.Close()

	c := NewClient(config.CloudinaryConfig{
		CloudName:    "demo",
		UploadPreset: "unsigned",
		Folder:       "gymers",
	})
	c.base = srv.URL

	result, err := c.Upload(context.Background(), "img.png", strings.NewReader("bytes"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if result.SecureURL != "https://res.example/img.png" {
		t.Errorf("SecureURL = %q", result.SecureURL)
	}
	if result.Width != 640 || result.Height != 480 {
		t.Errorf("dims = %dx%d, want 640x480", result.Width, result.Height)
	}
	if gotPreset != "unsigned" {
		t.Errorf("upload_preset = %q, want unsigned", gotPreset)
	}
	if gotFolder != "gymers" {
		t.Errorf("folder = %q, want gymers", gotFolder)
	}
}

func TestUploadSurfacesProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"Invalid upload preset"}}`))
	}))
	defer srv.Close()

	c := NewClient(config.CloudinaryConfig{CloudName: "demo", UploadPreset: "bad"})
	c.base = srv.URL

	_, err := c.Upload(context.Background(), "img.png", strings.NewReader("bytes"))
	if err == nil || !strings.Contains(err.Error(), "Invalid upload preset") {
		t.Errorf("error = %v, want the provider message", err)
	}
}

func TestOptimizedURL(t *testing.T) {
	c := NewClient(config.CloudinaryConfig{CloudName: "demo"})

	url := c.OptimizedURL("gymers/img", 0)
	if !strings.Contains(url, "res.cloudinary.com/demo") || !strings.Contains(url, "w_200") {
		t.Errorf("url = %q", url)
	}
}
