package view

import (
	"net/url"
	"time"

	"github.com/yt-insights/ytwatch/internal/models"
)

// DefaultThumbnail replaces missing thumbnails.
const DefaultThumbnail = "https://i.ytimg.com/vi/default.jpg"

// Card is one result in the grid
type Card struct {
	ID        string
	Title     string
	Channel   string
	Thumbnail string
	Duration  string
	Views     string
	Age       string
	WatchURL  string
}

// Modal is the open player overlay
type Modal struct {
	ID          string
	Title       string
	Channel     string
	Stats       string
	Embed       bool
	Source      string
	DownloadURL string
	Filename    string
}

// Page is everything the template needs for one render
type Page struct {
	Lang        string
	Query       string
	Status      string
	Message     string
	CanRetry    bool
	ShowGrid    bool
	Cards       []Card
	Modal       *Modal
	ShowActions bool
	Alert       *models.Alert
}

// Options are the render settings that do not change per request
type Options struct {
	Locale      *Locale
	ShowActions bool
}

// Build maps a session state to a page. It is a pure function of its
// arguments: the cards are rebuilt from st.Videos on every call. searching
// forces the loading panel while a search of the session is in flight.
func Build(st models.State, opts Options, searching bool, now time.Time) Page {
	loc := opts.Locale
	status := st.Status
	if searching {
		status = models.StatusLoading
	} else if status == models.StatusLoading {
		// A finished search always leaves another status behind; this only
		// happens when a render races the final update.
		status = models.StatusIdle
	}

	p := Page{
		Lang:        loc.Lang,
		Query:       st.Query,
		Status:      status.String(),
		Message:     st.Message,
		CanRetry:    status == models.StatusError && st.Query != "",
		ShowGrid:    status != models.StatusLoading && status != models.StatusError,
		ShowActions: opts.ShowActions,
		Alert:       st.Alert,
	}
	if status == models.StatusError && p.Message == "" {
		p.Message = loc.T("err_unexpected")
	}

	p.Cards = make([]Card, 0, len(st.Videos))
	for _, v := range st.Videos {
		p.Cards = append(p.Cards, newCard(v, loc, now))
	}

	if st.Modal != nil {
		p.Modal = newModal(*st.Modal, loc, now)
	}
	return p
}

func newCard(v models.Video, loc *Locale, now time.Time) Card {
	thumb := v.Thumbnail
	if thumb == "" {
		thumb = DefaultThumbnail
	}
	return Card{
		ID:        v.ID,
		Title:     v.Title,
		Channel:   v.Channel,
		Thumbnail: thumb,
		Duration:  v.Duration,
		Views:     loc.T("views", v.Views),
		Age:       loc.RelativeAge(v.PublishedAt, now),
		WatchURL:  "/watch/" + url.PathEscape(v.ID),
	}
}

func newModal(p models.Player, loc *Locale, now time.Time) *Modal {
	stats := loc.T("views", p.Video.Views)
	if age := loc.RelativeAge(p.Video.PublishedAt, now); age != "" {
		stats += " • " + age
	}
	title := p.Title
	if title == "" {
		title = p.Video.Title
	}
	return &Modal{
		ID:          p.Video.ID,
		Title:       title,
		Channel:     p.Video.Channel,
		Stats:       stats,
		Embed:       p.Kind == models.PlayerEmbed,
		Source:      p.Source,
		DownloadURL: p.DownloadURL,
		Filename:    p.Filename,
	}
}
