package models

// Status is the page's status panel. Exactly one is active, so at most one
// panel is ever visible.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusError
	StatusWarning
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusError:
		return "error"
	case StatusWarning:
		return "warning"
	default:
		return "idle"
	}
}

// PlayerKind tells the template which player element to render.
type PlayerKind string

const (
	PlayerEmbed  PlayerKind = "embed"
	PlayerStream PlayerKind = "stream"
)

// Player is the content of an open modal
type Player struct {
	Video       Video
	Kind        PlayerKind
	Title       string
	Source      string
	DownloadURL string
	Filename    string
}

// AlertKind distinguishes success and failure alerts
type AlertKind string

const (
	AlertSuccess AlertKind = "success"
	AlertError   AlertKind = "error"
)

// Alert is a one-shot message shown on the next render.
type Alert struct {
	Kind    AlertKind
	Message string
}

// State is the whole UI state of one browser session. Transitions return a
// new State and never mutate the receiver's Videos slice.
type State struct {
	Videos  []Video
	Query   string
	Status  Status
	Message string
	Modal   *Player
	Alert   *Alert
}

// BeginSearch records query as the last issued search and shows the loading panel.
func (s State) BeginSearch(query string) State {
	s.Query = query
	s.Status = StatusLoading
	s.Message = ""
	s.Modal = nil
	return s
}

// SearchSucceeded replaces the result list. An empty list is not an error:
// it shows noResults as a warning.
func (s State) SearchSucceeded(videos []Video, noResults string) State {
	s.Videos = append(make([]Video, 0, len(videos)), videos...)
	if len(videos) == 0 {
		s.Status = StatusWarning
		s.Message = noResults
		return s
	}
	s.Status = StatusIdle
	s.Message = ""
	return s
}

// SearchFailed shows the error panel and leaves the result list untouched.
func (s State) SearchFailed(message string) State {
	s.Status = StatusError
	s.Message = message
	return s
}

// Warn shows the warning panel.
func (s State) Warn(message string) State {
	s.Status = StatusWarning
	s.Message = message
	return s
}

// OpenModal shows p in the modal, replacing any open video.
func (s State) OpenModal(p Player) State {
	s.Modal = &p
	return s
}

// CloseModal hides the modal.
func (s State) CloseModal() State {
	s.Modal = nil
	return s
}

// WithAlert queues an alert for the next render.
func (s State) WithAlert(kind AlertKind, message string) State {
	s.Alert = &Alert{Kind: kind, Message: message}
	return s
}

// TakeAlert returns the queued alert and a state without it.
func (s State) TakeAlert() (State, *Alert) {
	a := s.Alert
	s.Alert = nil
	return s, a
}
