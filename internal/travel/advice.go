package travel

import (
	"fmt"
	"math"
)

const maxRouteHighlights = 5

// FormatRouteAdvice is the default RouteAdvisor. It renders distance and
// duration and adds a few travel hints based on the trip length.
func FormatRouteAdvice(info RouteInfo) RouteSummary {
	km := info.DistanceMeters / 1000
	hours := info.DurationSeconds / 3600

	var advice []string
	switch {
	case km >= 800:
		advice = append(advice, "This is a long journey; consider flying or an overnight train.")
	case km >= 300:
		advice = append(advice, "Plan at least one rest stop along the way.")
	default:
		advice = append(advice, "A comfortable drive; an early start avoids city traffic.")
	}
	if hours >= 8 {
		advice = append(advice, "Share the driving or split the trip over two days.")
	}
	if hours >= 4 {
		advice = append(advice, "Carry water and snacks for the road.")
	}

	highlights := info.Steps
	if len(highlights) > maxRouteHighlights {
		highlights = highlights[:maxRouteHighlights]
	}

	return RouteSummary{
		Source:      info.Source,
		Destination: info.Destination,
		Distance:    fmt.Sprintf("%.1f km", km),
		Duration:    formatDuration(info.DurationSeconds),
		Advice:      advice,
		Highlights:  append([]string(nil), highlights...),
	}
}

func formatDuration(seconds float64) string {
	total := int(math.Round(seconds / 60))
	if total < 60 {
		return fmt.Sprintf("%d min", total)
	}
	return fmt.Sprintf("%dh %02dm", total/60, total%60)
}
