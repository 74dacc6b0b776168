package state

// Partial mirrors AppState with presence-tracking fields so a persisted
// payload from an older schema can be merged over the current defaults
// without losing fields it never knew about.
type Partial struct {
	Projects     *[]Project     `json:"projects"`
	ArchiveItems *[]ArchiveItem `json:"archiveItems"`
	Services     *[]Service     `json:"services"`
	SiteTitle    *string        `json:"siteTitle"`
	Tagline      *string        `json:"tagline"`
}

// HasProjects reports whether the payload carried a projects sequence. This is
// the minimal shape check a payload must pass to be trusted at all.
func (p Partial) HasProjects() bool {
	return p.Projects != nil
}

// MergeOverDefault lays the partial's present fields over the built-in
// default dataset field by field. Fields the payload omitted keep their
// defaults, which is what makes additive schema changes safe.
func (p Partial) MergeOverDefault() AppState {
	merged := Default()
	if p.Projects != nil {
		merged.Projects = *p.Projects
	}
	if p.ArchiveItems != nil {
		merged.ArchiveItems = *p.ArchiveItems
	}
	if p.Services != nil {
		merged.Services = *p.Services
	}
	if p.SiteTitle != nil {
		merged.SiteTitle = *p.SiteTitle
	}
	if p.Tagline != nil {
		merged.Tagline = *p.Tagline
	}
	return merged
}
