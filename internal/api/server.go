package api

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/yt-insights/ytwatch/internal/config"
	"github.com/yt-insights/ytwatch/internal/models"
	"github.com/yt-insights/ytwatch/internal/session"
	"github.com/yt-insights/ytwatch/internal/view"
)

const (
	sessionCookie = "ytwatch_session"
	sessionKey    = "session"
)

// Server represents the front-end web server
type Server struct {
	router   *gin.Engine
	cfg      *config.Config
	client   *Client
	resolver Resolver
	sessions *session.Store
	renderer *view.Renderer
	logger   *slog.Logger
	now      func() time.Time
}

// NewServer creates a new front-end server
func NewServer(cfg *config.Config, client *Client, sessions *session.Store, renderer *view.Renderer, logger *slog.Logger) *Server {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	if len(cfg.AllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	server := &Server{
		router:   router,
		cfg:      cfg,
		client:   client,
		resolver: NewResolver(cfg.PlaybackMode, client),
		sessions: sessions,
		renderer: renderer,
		logger:   logger,
		now:      time.Now,
	}

	// Setup routes
	server.setupRoutes()

	return server
}

// setupRoutes configures all the routes for the server
func (s *Server) setupRoutes() {
	// Health check
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})
	s.router.GET("/static/style.css", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/css; charset=utf-8", s.renderer.Stylesheet())
	})

	ui := s.router.Group("/", s.withSession)
	ui.GET("/", s.index)

	// Search flow
	ui.POST("/search", s.search)
	ui.POST("/retry", s.retry)

	// Playback modal
	ui.GET("/watch/:id", s.watch)
	ui.POST("/close", s.closeModal)
	ui.GET("/download/:id", s.download)

	// Action buttons
	ui.POST("/playlist", s.addToPlaylist)
	ui.POST("/like", s.like)
}

// Handler returns the HTTP handler serving the front-end.
func (s *Server) Handler() http.Handler {
	return s.router
}

// withSession attaches the browser's session, creating one when the cookie
// is missing or stale.
func (s *Server) withSession(c *gin.Context) {
	id, _ := c.Cookie(sessionCookie)
	sess, _ := s.sessions.Get(id)

	// The TTL counts idle time, so the cookie is renewed on every request.
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, sess.ID, int(s.cfg.SessionTTL.Seconds()), "/", "", false, true)
	c.Set(sessionKey, sess)
	c.Next()
}

func sessionOf(c *gin.Context) *session.Session {
	return c.MustGet(sessionKey).(*session.Session)
}

func (s *Server) t(key string, args ...any) string {
	return s.renderer.Locale().T(key, args...)
}

// index renders the page. A new session runs the initial query first.
func (s *Server) index(c *gin.Context) {
	sess := sessionOf(c)
	if sess.TakeFresh() && s.cfg.InitialQuery != "" {
		if st := sess.State(); st.Query == "" && st.Videos == nil {
			s.runSearch(c.Request.Context(), sess, s.cfg.InitialQuery)
		}
	}

	var alert *models.Alert
	st := sess.Update(func(st models.State) models.State {
		st, alert = st.TakeAlert()
		return st
	})
	st.Alert = alert

	page := view.Build(st, view.Options{
		Locale:      s.renderer.Locale(),
		ShowActions: s.cfg.ShowActions,
	}, sess.Searching(), s.now())

	var buf bytes.Buffer
	if err := s.renderer.Render(&buf, page); err != nil {
		s.logger.Error("render failed", slog.Any("error", err))
		c.String(http.StatusInternalServerError, s.t("err_unexpected"))
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// search handles the search form. Both the button and Enter submit it.
func (s *Server) search(c *gin.Context) {
	s.runSearch(c.Request.Context(), sessionOf(c), c.PostForm("q"))
	c.Redirect(http.StatusSeeOther, "/")
}

// retry re-issues the last search.
func (s *Server) retry(c *gin.Context) {
	sess := sessionOf(c)
	if q := sess.State().Query; q != "" {
		s.runSearch(c.Request.Context(), sess, q)
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// runSearch performs one search for the session. An empty query only shows a
// warning; a search while another is in flight is dropped.
func (s *Server) runSearch(ctx context.Context, sess *session.Session, raw string) {
	// Any search, even an empty one, replaces the initial query.
	sess.TakeFresh()

	query := strings.TrimSpace(raw)
	if query == "" {
		sess.Update(func(st models.State) models.State {
			return st.Warn(s.t("warn_empty_query"))
		})
		return
	}

	if !sess.TryBeginSearch() {
		s.logger.Debug("search already in flight", slog.String("session", sess.ID))
		return
	}
	defer sess.EndSearch()

	sess.Update(func(st models.State) models.State {
		return st.BeginSearch(query)
	})

	// Once issued a search runs to completion even if the browser goes away.
	videos, err := s.client.Search(context.WithoutCancel(ctx), query)
	if err != nil {
		s.logger.Warn("search failed", slog.String("query", query), slog.Any("error", err))
		msg := s.userMessage(err, "err_search")
		sess.Update(func(st models.State) models.State {
			return st.SearchFailed(msg)
		})
		return
	}

	noResults := s.t("warn_no_results")
	sess.Update(func(st models.State) models.State {
		return st.SearchSucceeded(videos, noResults)
	})
}

// userMessage shows application errors verbatim and everything else as the
// localized fallback.
func (s *Server) userMessage(err error, fallbackKey string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return s.t("err_http", apiErr.StatusCode)
	}
	return s.t(fallbackKey)
}

func (s *Server) alert(sess *session.Session, kind models.AlertKind, message string) {
	sess.Update(func(st models.State) models.State {
		return st.WithAlert(kind, message)
	})
}

// watch opens the modal for a video of the current results.
func (s *Server) watch(c *gin.Context) {
	sess := sessionOf(c)
	id := c.Param("id")

	video, ok := models.FindVideo(sess.State().Videos, id)
	if !ok {
		s.alert(sess, models.AlertError, s.t("err_video_gone"))
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	player, err := s.resolver.Resolve(c.Request.Context(), video)
	if err != nil {
		s.logger.Warn("playback resolution failed", slog.String("video", id), slog.Any("error", err))
		s.alert(sess, models.AlertError, s.userMessage(err, "err_playback"))
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	sess.Update(func(st models.State) models.State {
		return st.OpenModal(player)
	})
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) closeModal(c *gin.Context) {
	sessionOf(c).Update(func(st models.State) models.State {
		return st.CloseModal()
	})
	c.Redirect(http.StatusSeeOther, "/")
}

// download resolves the stream URL on demand and redirects to it. It is the
// target of a download link, so failures answer with a plain-text error
// instead of the page.
func (s *Server) download(c *gin.Context) {
	sess := sessionOf(c)
	id := c.Param("id")

	if _, ok := models.FindVideo(sess.State().Videos, id); !ok {
		c.String(http.StatusNotFound, s.t("err_video_gone"))
		return
	}

	res, err := s.client.ResolveStream(c.Request.Context(), id)
	if err != nil {
		s.logger.Warn("download resolution failed", slog.String("video", id), slog.Any("error", err))
		c.String(http.StatusBadGateway, s.userMessage(err, "err_playback"))
		return
	}
	c.Redirect(http.StatusFound, res.StreamURL)
}

// addToPlaylist posts the selected video's id, title and thumbnail.
func (s *Server) addToPlaylist(c *gin.Context) {
	sess := sessionOf(c)
	defer c.Redirect(http.StatusSeeOther, "/")

	video, ok := models.FindVideo(sess.State().Videos, c.PostForm("video_id"))
	if !ok {
		s.alert(sess, models.AlertError, s.t("playlist_fail"))
		return
	}

	err := s.client.AddToPlaylist(c.Request.Context(), models.PlaylistRequest{
		VideoID:   video.ID,
		Title:     video.Title,
		Thumbnail: video.Thumbnail,
	})
	if err != nil {
		s.logger.Warn("add to playlist failed", slog.String("video", video.ID), slog.Any("error", err))
		s.alert(sess, models.AlertError, s.t("playlist_fail"))
		return
	}
	s.alert(sess, models.AlertSuccess, s.t("playlist_ok"))
}

// like posts the selected video's id to the favorites.
func (s *Server) like(c *gin.Context) {
	sess := sessionOf(c)
	defer c.Redirect(http.StatusSeeOther, "/")

	video, ok := models.FindVideo(sess.State().Videos, c.PostForm("video_id"))
	if !ok {
		s.alert(sess, models.AlertError, s.t("favorite_fail"))
		return
	}

	if err := s.client.AddFavorite(c.Request.Context(), video.ID); err != nil {
		s.logger.Warn("add favorite failed", slog.String("video", video.ID), slog.Any("error", err))
		s.alert(sess, models.AlertError, s.t("favorite_fail"))
		return
	}
	s.alert(sess, models.AlertSuccess, s.t("favorite_ok"))
}
