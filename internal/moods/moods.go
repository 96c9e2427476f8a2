// Package moods groups catalog tracks by mood using k-means over audio features.
package moods

import (
	"fmt"
	"math"

	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"

	"github.com/justestif/go-spotify-recommender/internal/scoring"
)

// Config holds mood clustering parameters.
type Config struct {
	NumClusters    int // Number of clusters to create (default: 4)
	MinClusterSize int // Smaller clusters become outliers
}

// DefaultConfig returns the recommended default configuration.
func DefaultConfig() Config {
	return Config{
		NumClusters:    4,
		MinClusterSize: 2,
	}
}

// Group is a cluster of catalog tracks sharing a mood.
type Group struct {
	Mood     Mood
	Tracks   []scoring.TrackFeatures
	Centroid map[string]float64 // Average feature values for this cluster
}

// featureNames defines the audio features used for clustering.
var featureNames = []string{"energy", "valence", "danceability", "acousticness"}

// trackObservation wraps a track to implement clusters.Observation.
type trackObservation struct {
	track  *scoring.TrackFeatures
	coords clusters.Coordinates
}

func (o trackObservation) Coordinates() clusters.Coordinates {
	return o.coords
}

func (o trackObservation) Distance(point clusters.Coordinates) float64 {
	return o.coords.Distance(point)
}

// GroupCatalog partitions tracks into mood groups with k-means.
// Tracks missing any clustering feature are returned as outliers, as are all
// tracks when there are fewer usable tracks than clusters.
func GroupCatalog(tracks []scoring.TrackFeatures, cfg Config) ([]Group, []scoring.TrackFeatures, error) {
	if len(tracks) == 0 {
		return nil, nil, nil
	}
	if cfg.NumClusters <= 0 {
		cfg.NumClusters = DefaultConfig().NumClusters
	}

	var valid []*scoring.TrackFeatures
	var outliers []scoring.TrackFeatures
	for i := range tracks {
		t := &tracks[i]
		if hasMoodFeatures(t) {
			valid = append(valid, t)
		} else {
			outliers = append(outliers, *t)
		}
	}

	if len(valid) < cfg.NumClusters {
		for _, t := range valid {
			outliers = append(outliers, *t)
		}
		return nil, outliers, nil
	}

	var obs clusters.Observations
	for _, t := range valid {
		obs = append(obs, trackObservation{track: t, coords: extractFeatures(t)})
	}

	km := kmeans.New()
	result, err := km.Partition(obs, cfg.NumClusters)
	if err != nil {
		return nil, nil, fmt.Errorf("partitioning catalog: %w", err)
	}

	var groups []Group
	for _, cluster := range result {
		var members []scoring.TrackFeatures
		for _, o := range cluster.Observations {
			if to, ok := o.(trackObservation); ok {
				members = append(members, *to.track)
			}
		}

		if len(members) == 0 {
			continue
		}
		if len(members) < cfg.MinClusterSize {
			outliers = append(outliers, members...)
			continue
		}

		centroid := meanFeatures(members)

		groups = append(groups, Group{
			Mood:     Describe(centroid["energy"], centroid["valence"], centroid["acousticness"]),
			Tracks:   members,
			Centroid: centroid,
		})
	}

	return groups, outliers, nil
}

// hasMoodFeatures checks that every clustering feature is present and finite.
func hasMoodFeatures(t *scoring.TrackFeatures) bool {
	for _, v := range []*float64{t.Energy, t.Valence, t.Danceability, t.Acousticness} {
		if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
			return false
		}
	}
	return true
}

// extractFeatures returns the clustering features as a coordinate vector,
// in featureNames order.
func extractFeatures(t *scoring.TrackFeatures) clusters.Coordinates {
	return clusters.Coordinates{
		*t.Energy,
		*t.Valence,
		*t.Danceability,
		*t.Acousticness,
	}
}

// meanFeatures averages the clustering features of members. The k-means
// center is not used because it is only recentered after an assignment change.
func meanFeatures(members []scoring.TrackFeatures) map[string]float64 {
	sums := make([]float64, len(featureNames))
	for i := range members {
		for j, v := range extractFeatures(&members[i]) {
			sums[j] += v
		}
	}

	centroid := make(map[string]float64, len(featureNames))
	for j, name := range featureNames {
		centroid[name] = sums[j] / float64(len(members))
	}
	return centroid
}
