package state

// Default returns the built-in starter dataset used when nothing has been
// persisted yet, or when the persisted payload is unreadable.
func Default() AppState {
	return AppState{
		SiteTitle: "ATELIER",
		Tagline:   "Independent design studio for brands in motion.",
		Projects: []Project{
			{
				ID:          "sample-metropol",
				Title:       "Metropol Rebrand",
				Category:    "Branding",
				Client:      "Metropol Coffee",
				Status:      StatusCompleted,
				Date:        "2025-04-14",
				Description: "Full identity refresh for a small-batch roaster.",
			},
			{
				ID:          "sample-fieldnotes",
				Title:       "Field Notes Quarterly",
				Category:    "Editorial",
				Client:      "Field Notes",
				Status:      StatusInProgress,
				Date:        "2025-09-01",
				Description: "Layout system and type direction for the print quarterly.",
			},
		},
		ArchiveItems: []ArchiveItem{
			{
				ID:       "sample-archive-halcyon",
				Year:     "2023",
				Company:  "Halcyon Records",
				Category: "Motion",
				Project:  "Label launch teaser series",
			},
			{
				ID:       "sample-archive-verde",
				Year:     "2021-2022",
				Company:  "Verde Group",
				Category: "Web",
				Project:  "Seasonal campaign microsites",
			},
		},
		Services: []Service{
			{ID: "svc-direction", Number: "01", Title: "Art Direction", Description: "Concept, casting, and visual language for campaigns."},
			{ID: "svc-identity", Number: "02", Title: "Brand Identity", Description: "Naming, marks, and systems that scale past the launch deck."},
			{ID: "svc-digital", Number: "03", Title: "Digital Design", Description: "Sites and products designed alongside the brand, not after it."},
		},
	}
}
