package main

import (
	"fmt"
	"strings"

	"atelier/internal/state"
)

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}

func formatBytes(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MiB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KiB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}

// parseStatus maps a user-supplied status word to a canonical value.
func parseStatus(value string) (state.Status, error) {
	switch strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(value), "-", "_")) {
	case "", string(state.StatusInProgress):
		return state.StatusInProgress, nil
	case string(state.StatusCompleted):
		return state.StatusCompleted, nil
	case string(state.StatusArchived):
		return state.StatusArchived, nil
	default:
		return "", fmt.Errorf("unknown status %q (expected IN_PROGRESS, COMPLETED, or ARCHIVED)", value)
	}
}

// truncate shortens long cell values so embedded image strings do not blow
// up table layout.
func truncate(value string, max int) string {
	if max <= 3 || len(value) <= max {
		return value
	}
	return value[:max-3] + "..."
}

func summarizeImages(urls []string) string {
	if len(urls) == 0 {
		return "-"
	}
	return fmt.Sprintf("%d embedded", len(urls))
}
