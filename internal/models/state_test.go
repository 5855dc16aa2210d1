package models

import "testing"

var sample = []Video{
	{ID: "a1", Title: "First", Channel: "Chan A"},
	{ID: "b2", Title: "Second", Channel: "Chan B"},
}

func TestSearchSucceededReplacesList(t *testing.T) {
	s := State{}.BeginSearch("jazz")
	if s.Status != StatusLoading {
		t.Fatalf("Status = %v, want loading", s.Status)
	}

	s = s.SearchSucceeded(sample, "none")
	if s.Status != StatusIdle {
		t.Errorf("Status = %v, want idle", s.Status)
	}
	if len(s.Videos) != 2 || s.Videos[0].ID != "a1" {
		t.Errorf("Videos = %+v", s.Videos)
	}
	if s.Query != "jazz" {
		t.Errorf("Query = %q", s.Query)
	}

	// The state must not alias the caller's slice.
	sample[0].Title = "mutated"
	defer func() { sample[0].Title = "First" }()
	if s.Videos[0].Title != "First" {
		t.Error("state aliases the response slice")
	}
}

func TestSearchSucceededEmptyIsWarning(t *testing.T) {
	s := State{Videos: sample}.BeginSearch("zzz").SearchSucceeded(nil, "No results")
	if s.Status != StatusWarning {
		t.Errorf("Status = %v, want warning", s.Status)
	}
	if s.Message != "No results" {
		t.Errorf("Message = %q", s.Message)
	}
	if s.Videos == nil || len(s.Videos) != 0 {
		t.Errorf("Videos = %v, want empty non-nil list", s.Videos)
	}
}

func TestSearchFailedKeepsList(t *testing.T) {
	s := State{Videos: sample}.BeginSearch("rock").SearchFailed("boom")
	if s.Status != StatusError || s.Message != "boom" {
		t.Errorf("got %v %q", s.Status, s.Message)
	}
	if len(s.Videos) != 2 {
		t.Errorf("Videos changed on failure: %+v", s.Videos)
	}
}

func TestRetryAfterErrorClearsError(t *testing.T) {
	s := State{}.BeginSearch("rock").SearchFailed("boom")
	s = s.BeginSearch(s.Query).SearchSucceeded(sample, "none")
	if s.Status != StatusIdle || s.Message != "" {
		t.Errorf("got %v %q after retry", s.Status, s.Message)
	}
}

func TestModalAndAlert(t *testing.T) {
	s := State{Videos: sample}
	if s.Modal != nil {
		t.Error("no modal should be open")
	}

	s = s.OpenModal(Player{Video: sample[0]}).OpenModal(Player{Video: sample[1]})
	if got := s.Modal.Video.ID; got != "b2" {
		t.Errorf("modal shows %q, want last clicked b2", got)
	}

	s = s.WithAlert(AlertSuccess, "ok")
	s, a := s.TakeAlert()
	if a == nil || a.Message != "ok" || a.Kind != AlertSuccess {
		t.Errorf("TakeAlert() = %+v", a)
	}
	if _, again := s.TakeAlert(); again != nil {
		t.Error("alert should be shown once")
	}

	if s.BeginSearch("x").Modal != nil {
		t.Error("a new search should close the modal")
	}
	if s.CloseModal().Modal != nil {
		t.Error("CloseModal should clear the selection")
	}
}

func TestStatusString(t *testing.T) {
	tests := map[Status]string{
		StatusIdle:    "idle",
		StatusLoading: "loading",
		StatusError:   "error",
		StatusWarning: "warning",
	}
	for s, want := range tests {
		if s.String() != want {
			t.Errorf("%d.String() = %q, want %q", s, s.String(), want)
		}
	}
}

func TestURLs(t *testing.T) {
	if got := WatchURL("abc_12"); got != "https://youtube.com/watch?v=abc_12" {
		t.Errorf("WatchURL() = %q", got)
	}
	if got := EmbedURL("abc"); got != "https://www.youtube.com/embed/abc?autoplay=1&rel=0&enablejsapi=1" {
		t.Errorf("EmbedURL() = %q", got)
	}
	if _, ok := FindVideo(sample, "zz"); ok {
		t.Error("FindVideo found a missing id")
	}
	if v, ok := FindVideo(sample, "b2"); !ok || v.Title != "Second" {
		t.Errorf("FindVideo() = %+v, %v", v, ok)
	}
}
