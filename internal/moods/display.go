package moods

import (
	"fmt"
	"strings"

	"github.com/justestif/go-spotify-recommender/internal/scoring"
)

const sampleTrackCount = 3

// FormatSummary returns a human-readable summary of mood groups.
// Shows track count and the first 3 sample tracks for each group.
// Outliers are summarized by count only.
func FormatSummary(groups []Group, outliers []scoring.TrackFeatures) string {
	var sb strings.Builder

	totalTracks := len(outliers)
	for _, g := range groups {
		totalTracks += len(g.Tracks)
	}

	if len(groups) == 0 {
		sb.WriteString(fmt.Sprintf("No mood groups found from %d tracks", totalTracks))
		if len(outliers) > 0 {
			sb.WriteString(fmt.Sprintf(" (%d outliers skipped)", len(outliers)))
		}
		sb.WriteString("\n")
		return sb.String()
	}

	sb.WriteString(fmt.Sprintf("Found %d mood %s from %d tracks",
		len(groups), plural(len(groups), "group", "groups"), totalTracks))
	if len(outliers) > 0 {
		sb.WriteString(fmt.Sprintf(" (%d outliers skipped)", len(outliers)))
	}
	sb.WriteString("\n")

	for i, g := range groups {
		sb.WriteString("\n")
		sb.WriteString(formatGroup(i+1, g))
	}

	return sb.String()
}

// formatGroup formats a single group with its sample tracks.
func formatGroup(num int, g Group) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Mood %d: %s (%d %s, energy %.2f, valence %.2f)\n",
		num, g.Mood.Name, len(g.Tracks), plural(len(g.Tracks), "track", "tracks"),
		g.Mood.Energy, g.Mood.Valence))

	sampleCount := min(sampleTrackCount, len(g.Tracks))
	for i := 0; i < sampleCount; i++ {
		track := g.Tracks[i]
		sb.WriteString(fmt.Sprintf("  • \"%s\" - %s\n", track.Name, track.Artist))
	}

	if remaining := len(g.Tracks) - sampleTrackCount; remaining > 0 {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", remaining))
	}

	return sb.String()
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
