package state

import (
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Status enumerates the lifecycle of a portfolio project.
type Status string

const (
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusArchived   Status = "ARCHIVED"
)

// ValidStatus reports whether the value is one of the known project statuses.
func ValidStatus(s Status) bool {
	switch s {
	case StatusInProgress, StatusCompleted, StatusArchived:
		return true
	}
	return false
}

// Categories is the fixed set of project categories the site renders.
var Categories = []string{"Branding", "Editorial", "Motion", "Web"}

var titleCaser = cases.Title(language.English)

// NormalizeCategory canonicalizes free-form category input to the site's
// title-cased form. Unknown categories are returned title-cased but not
// rejected; the CLI validates against Categories where strictness matters.
func NormalizeCategory(value string) string {
	return titleCaser.String(strings.ToLower(strings.TrimSpace(value)))
}

// KnownCategory reports whether the (normalized) category is in the fixed set.
func KnownCategory(value string) bool {
	normalized := NormalizeCategory(value)
	for _, c := range Categories {
		if c == normalized {
			return true
		}
	}
	return false
}

// Project is a portfolio entry. ID is the primary key; the display order of
// the containing slice is the display order on the site, newest first.
type Project struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Category    string   `json:"category"`
	Client      string   `json:"client"`
	Status      Status   `json:"status"`
	Date        string   `json:"date"`
	Description string   `json:"description"`
	ImageURLs   []string `json:"imageUrls"`
}

// ArchiveItem is a row in the site's work-log archive. ImageURL holds a single
// embedded thumbnail or the empty string.
type ArchiveItem struct {
	ID       string `json:"id"`
	Year     string `json:"year"`
	Company  string `json:"company"`
	Category string `json:"category"`
	Project  string `json:"project"`
	ImageURL string `json:"imageUrl"`
}

// Service is a static site section entry; no mutator touches services.
type Service struct {
	ID          string `json:"id"`
	Number      string `json:"number"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// AppState is the complete dataset behind the site. Values are snapshots:
// mutators return fresh values and never modify their input, so a caller can
// hold a snapshot across suspension points without defensive copying.
type AppState struct {
	Projects     []Project     `json:"projects"`
	ArchiveItems []ArchiveItem `json:"archiveItems"`
	Services     []Service     `json:"services"`
	SiteTitle    string        `json:"siteTitle"`
	Tagline      string        `json:"tagline"`
}

// NewArchiveID returns a collision-resistant identifier for archive items.
// The site this replaces derived ids from wall-clock millis, which collide
// under rapid successive creation.
func NewArchiveID() string {
	return uuid.NewString()
}

// NewProjectID returns a fresh project identifier.
func NewProjectID() string {
	return uuid.NewString()
}
