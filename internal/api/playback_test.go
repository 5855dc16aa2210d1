package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/yt-insights/ytwatch/internal/config"
	"github.com/yt-insights/ytwatch/internal/models"
)

func TestDownloadFilename(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Song Title", "Song Title.mp4"},
		{`AC/DC: "Live" <1991>?`, "AC_DC_ _Live_ _1991__.mp4"},
		{"  ...  ", "video.mp4"},
		{"", "video.mp4"},
		{"tab\there", "tab_here.mp4"},
	}
	for _, tt := range tests {
		if got := DownloadFilename(tt.title); got != tt.want {
			t.Errorf("DownloadFilename(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}

func TestEmbedResolverSendsNothing(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	r := NewResolver(config.PlaybackEmbed, NewClient(srv.URL))
	p, err := r.Resolve(context.Background(), models.Video{ID: "x y", Title: "Clip"})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if p.Kind != models.PlayerEmbed || p.Source != "https://www.youtube.com/embed/x%20y?autoplay=1&rel=0&enablejsapi=1" {
		t.Errorf("player = %+v", p)
	}
	if p.DownloadURL != "/download/x%20y" || p.Filename != "Clip.mp4" {
		t.Errorf("download = %q %q", p.DownloadURL, p.Filename)
	}
	if hits.Load() != 0 {
		t.Error("embed playback must not call the API")
	}
}

func TestStreamResolver(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.DownloadResponse{Title: "Full Title", StreamURL: "https://cdn.test/v.mp4"})
	}))
	defer srv.Close()

	r := NewResolver(config.PlaybackStream, NewClient(srv.URL))
	p, err := r.Resolve(context.Background(), models.Video{ID: "v1", Title: "Short"})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if p.Kind != models.PlayerStream || p.Source != "https://cdn.test/v.mp4" || p.DownloadURL != p.Source {
		t.Errorf("player = %+v", p)
	}
	if p.Title != "Full Title" || p.Filename != "Full Title.mp4" {
		t.Errorf("title = %q filename = %q", p.Title, p.Filename)
	}
}

func TestStreamResolverError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":"age restricted"}`))
	}))
	defer srv.Close()

	r := NewResolver(config.PlaybackStream, NewClient(srv.URL))
	_, err := r.Resolve(context.Background(), models.Video{ID: "v1"})
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Message != "age restricted" {
		t.Fatalf("error = %v", err)
	}
}
