package state

// Mutators are pure: each returns a new snapshot built from the argument,
// sharing the untouched collections and copying only the mutated one. When a
// mutation would be a no-op (unknown id), the argument snapshot is returned
// as-is so callers can detect "nothing changed" by comparison.

// AddProject prepends a project; the newest entry displays first.
func AddProject(s AppState, p Project) AppState {
	projects := make([]Project, 0, len(s.Projects)+1)
	projects = append(projects, p)
	projects = append(projects, s.Projects...)
	s.Projects = projects
	return s
}

// UpdateProject replaces every project whose id matches. Unknown ids no-op.
func UpdateProject(s AppState, id string, updated Project) AppState {
	index := -1
	for i, p := range s.Projects {
		if p.ID == id {
			index = i
			break
		}
	}
	if index < 0 {
		return s
	}
	projects := make([]Project, len(s.Projects))
	copy(projects, s.Projects)
	for i := range projects {
		if projects[i].ID == id {
			updated.ID = id
			projects[i] = updated
		}
	}
	s.Projects = projects
	return s
}

// DeleteProject removes all projects matching the id. Unknown ids no-op.
func DeleteProject(s AppState, id string) AppState {
	projects := make([]Project, 0, len(s.Projects))
	for _, p := range s.Projects {
		if p.ID != id {
			projects = append(projects, p)
		}
	}
	if len(projects) == len(s.Projects) {
		return s
	}
	s.Projects = projects
	return s
}

// AddArchiveItem prepends an archive item.
func AddArchiveItem(s AppState, item ArchiveItem) AppState {
	items := make([]ArchiveItem, 0, len(s.ArchiveItems)+1)
	items = append(items, item)
	items = append(items, s.ArchiveItems...)
	s.ArchiveItems = items
	return s
}

// UpdateArchiveItem replaces every archive item whose id matches. Unknown ids no-op.
func UpdateArchiveItem(s AppState, id string, updated ArchiveItem) AppState {
	index := -1
	for i, item := range s.ArchiveItems {
		if item.ID == id {
			index = i
			break
		}
	}
	if index < 0 {
		return s
	}
	items := make([]ArchiveItem, len(s.ArchiveItems))
	copy(items, s.ArchiveItems)
	for i := range items {
		if items[i].ID == id {
			updated.ID = id
			items[i] = updated
		}
	}
	s.ArchiveItems = items
	return s
}

// DeleteArchiveItem removes all archive items matching the id. Unknown ids no-op.
func DeleteArchiveItem(s AppState, id string) AppState {
	items := make([]ArchiveItem, 0, len(s.ArchiveItems))
	for _, item := range s.ArchiveItems {
		if item.ID != id {
			items = append(items, item)
		}
	}
	if len(items) == len(s.ArchiveItems) {
		return s
	}
	s.ArchiveItems = items
	return s
}

// UpdateSettings replaces the site metadata fields.
func UpdateSettings(s AppState, title, tagline string) AppState {
	s.SiteTitle = title
	s.Tagline = tagline
	return s
}

// FindProject returns the first project with the given id.
func FindProject(s AppState, id string) (Project, bool) {
	for _, p := range s.Projects {
		if p.ID == id {
			return p, true
		}
	}
	return Project{}, false
}

// FindArchiveItem returns the first archive item with the given id.
func FindArchiveItem(s AppState, id string) (ArchiveItem, bool) {
	for _, item := range s.ArchiveItems {
		if item.ID == id {
			return item, true
		}
	}
	return ArchiveItem{}, false
}
