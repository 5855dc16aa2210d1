package models

import "net/url"

// Video represents a search result returned by the remote API
type Video struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Channel     string `json:"channel"`
	Thumbnail   string `json:"thumbnail"`
	Duration    string `json:"duration"`
	Views       string `json:"views"`
	PublishedAt string `json:"publishedAt"`
}

// SearchResponse is the body of GET /search
type SearchResponse struct {
	Videos []Video `json:"videos"`
	Error  string  `json:"error,omitempty"`
}

// DownloadResponse is the body of GET /download
type DownloadResponse struct {
	Title     string `json:"title"`
	StreamURL string `json:"stream_url"`
	Error     string `json:"error,omitempty"`
}

// PlaylistRequest is the body of POST /api/playlists
type PlaylistRequest struct {
	VideoID   string `json:"videoId"`
	Title     string `json:"title"`
	Thumbnail string `json:"thumbnail"`
}

// FavoriteRequest is the body of POST /api/favorites
type FavoriteRequest struct {
	VideoID string `json:"videoId"`
}

// WatchURL builds the watch page URL the download endpoint expects.
func WatchURL(videoID string) string {
	return "https://youtube.com/watch?v=" + url.QueryEscape(videoID)
}

// EmbedURL builds the embedded player URL for a video.
func EmbedURL(videoID string) string {
	return "https://www.youtube.com/embed/" + url.PathEscape(videoID) + "?autoplay=1&rel=0&enablejsapi=1"
}

// FindVideo returns the video with the given id, if present.
func FindVideo(videos []Video, id string) (Video, bool) {
	for _, v := range videos {
		if v.ID == id {
			return v, true
		}
	}
	return Video{}, false
}
