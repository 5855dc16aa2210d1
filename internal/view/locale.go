package view

import (
	"fmt"
	"math"
	"time"
)

var en = map[string]string{
	"page_title":         "Video Search",
	"search_placeholder": "Search for videos...",
	"search_button":      "Search",
	"loading":            "Loading...",
	"retry":              "Retry",
	"close":              "Close",
	"play":               "Play",
	"add_playlist":       "Add to playlist",
	"like":               "Like",
	"download":           "Download",
	"ok":                 "OK",
	"views":              "%s views",

	"warn_empty_query": "Please enter a search term",
	"warn_no_results":  "No results found. Try another search.",
	"err_search":       "Search failed. Check your internet connection.",
	"err_http":         "HTTP error: %d",
	"err_unexpected":   "An unexpected error occurred",
	"err_playback":     "Error while loading the video",
	"err_video_gone":   "This video is no longer in the results",

	"playlist_ok":   "Video added to the playlist",
	"playlist_fail": "Error while adding to the playlist",
	"favorite_ok":   "Video added to favorites",
	"favorite_fail": "Error while adding to favorites",

	"age_today":  "today",
	"age_day":    "%d day ago",
	"age_days":   "%d days ago",
	"age_week":   "%d week ago",
	"age_weeks":  "%d weeks ago",
	"age_month":  "%d month ago",
	"age_months": "%d months ago",
	"age_year":   "%d year ago",
	"age_years":  "%d years ago",
}

var fr = map[string]string{
	"page_title":         "Recherche de vidéos",
	"search_placeholder": "Rechercher des vidéos...",
	"search_button":      "Rechercher",
	"loading":            "Chargement...",
	"retry":              "Réessayer",
	"close":              "Fermer",
	"play":               "Écouter",
	"add_playlist":       "Ajouter à la playlist",
	"like":               "J'aime",
	"download":           "Télécharger",
	"ok":                 "OK",
	"views":              "%s vues",

	"warn_empty_query": "Veuillez entrer un terme de recherche",
	"warn_no_results":  "Aucun résultat trouvé. Essayez une autre recherche.",
	"err_search":       "Échec de la recherche. Vérifiez votre connexion Internet.",
	"err_http":         "Erreur HTTP: %d",
	"err_unexpected":   "Une erreur inattendue s'est produite",
	"err_playback":     "Erreur lors du chargement de la vidéo",
	"err_video_gone":   "Cette vidéo ne fait plus partie des résultats",

	"playlist_ok":   "Vidéo ajoutée à la playlist avec succès",
	"playlist_fail": "Erreur lors de l'ajout à la playlist",
	"favorite_ok":   "Vidéo ajoutée aux favoris avec succès",
	"favorite_fail": "Erreur lors de l'ajout aux favoris",

	"age_today":  "Aujourd'hui",
	"age_day":    "Il y a %d jour",
	"age_days":   "Il y a %d jours",
	"age_week":   "Il y a %d semaine",
	"age_weeks":  "Il y a %d semaines",
	"age_month":  "Il y a %d mois",
	"age_months": "Il y a %d mois",
	"age_year":   "Il y a %d an",
	"age_years":  "Il y a %d ans",
}

// Locale translates UI strings for one language
type Locale struct {
	Lang string
	msgs map[string]string
}

// NewLocale returns the locale for lang, falling back to English.
func NewLocale(lang string) *Locale {
	if lang == "fr" {
		return &Locale{Lang: "fr", msgs: fr}
	}
	return &Locale{Lang: "en", msgs: en}
}

// T returns the translation of key, formatted with args when given.
// Unknown keys fall back to English, then to the key itself.
func (l *Locale) T(key string, args ...any) string {
	msg, ok := l.msgs[key]
	if !ok {
		if msg, ok = en[key]; !ok {
			return key
		}
	}
	if len(args) > 0 {
		return fmt.Sprintf(msg, args...)
	}
	return msg
}

// RelativeAge renders an RFC 3339 timestamp as a coarse "N units ago"
// label. Empty or unparseable timestamps render as "".
func (l *Locale) RelativeAge(publishedAt string, now time.Time) string {
	if publishedAt == "" {
		return ""
	}
	t, err := time.Parse(time.RFC3339, publishedAt)
	if err != nil {
		return ""
	}
	days := int(math.Floor(now.Sub(t).Hours() / 24))
	return l.AgeInDays(days)
}

// AgeInDays buckets whole days elapsed into today, days, weeks (days/7),
// months (days/30) or years (days/365).
func (l *Locale) AgeInDays(days int) string {
	switch {
	case days < 1:
		return l.T("age_today")
	case days < 7:
		return l.plural("age_day", days)
	case days < 30:
		return l.plural("age_week", days/7)
	case days < 365:
		return l.plural("age_month", days/30)
	default:
		return l.plural("age_year", days/365)
	}
}

func (l *Locale) plural(key string, n int) string {
	if n > 1 {
		key += "s"
	}
	return l.T(key, n)
}
