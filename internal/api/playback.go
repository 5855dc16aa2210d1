package api

import (
	"context"
	"net/url"
	"strings"
	"unicode"

	"github.com/yt-insights/ytwatch/internal/config"
	"github.com/yt-insights/ytwatch/internal/models"
)

// Resolver turns a selected video into the content of the modal player.
type Resolver interface {
	Resolve(ctx context.Context, v models.Video) (models.Player, error)
}

// NewResolver returns the resolver for the configured playback mode.
func NewResolver(mode config.PlaybackMode, client *Client) Resolver {
	if mode == config.PlaybackStream {
		return &streamResolver{client: client}
	}
	return embedResolver{}
}

// embedResolver plays the video in the YouTube iframe player. The download
// link goes through the local /download route, which resolves on demand.
type embedResolver struct{}

func (embedResolver) Resolve(_ context.Context, v models.Video) (models.Player, error) {
	return models.Player{
		Video:       v,
		Kind:        models.PlayerEmbed,
		Title:       v.Title,
		Source:      models.EmbedURL(v.ID),
		DownloadURL: "/download/" + url.PathEscape(v.ID),
		Filename:    DownloadFilename(v.Title),
	}, nil
}

// streamResolver asks the download endpoint for a direct media URL and
// binds it to both the player and the download link.
type streamResolver struct {
	client *Client
}

func (r *streamResolver) Resolve(ctx context.Context, v models.Video) (models.Player, error) {
	res, err := r.client.ResolveStream(ctx, v.ID)
	if err != nil {
		return models.Player{}, err
	}
	title := res.Title
	if title == "" {
		title = v.Title
	}
	return models.Player{
		Video:       v,
		Kind:        models.PlayerStream,
		Title:       title,
		Source:      res.StreamURL,
		DownloadURL: res.StreamURL,
		Filename:    DownloadFilename(title),
	}, nil
}

// DownloadFilename derives "<title>.mp4" with characters that are invalid
// in common filesystems replaced by "_".
func DownloadFilename(title string) string {
	name := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) || strings.ContainsRune(`/\:*?"<>|`, r) {
			return '_'
		}
		return r
	}, title)
	name = strings.Trim(strings.TrimSpace(name), ".")
	if name == "" {
		name = "video"
	}
	return name + ".mp4"
}
