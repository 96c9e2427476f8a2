package scoring

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Vector is one row of numbers in column order.
type Vector []float64

// FeatureMatrix holds one normalized Vector per catalog track, in catalog order.
type FeatureMatrix []Vector

// Normalize extracts every dimension of every track and min-max scales each
// column onto [0,1] using the batch minimum and maximum.
//
// Missing values and NaN are imputed as 0 before scaling. A constant column
// normalizes to 0 for every row. Infinite values and records without an ID
// are rejected with a *DataIntegrityError rather than dropped, since dropping
// rows would shift the column statistics between requests.
func Normalize(tracks []TrackFeatures) (FeatureMatrix, error) {
	if len(tracks) == 0 {
		return nil, ErrEmptyCatalog
	}

	raw, err := extract(tracks)
	if err != nil {
		return nil, err
	}

	mins := make([]float64, NumDimensions)
	maxs := make([]float64, NumDimensions)
	column := make([]float64, len(raw))
	for c := range NumDimensions {
		for i, row := range raw {
			column[i] = row[c]
		}
		mins[c] = floats.Min(column)
		maxs[c] = floats.Max(column)
	}

	matrix := make(FeatureMatrix, len(raw))
	for i, row := range raw {
		scaled := make(Vector, NumDimensions)
		for c, v := range row {
			span := maxs[c] - mins[c]
			if span == 0 {
				continue
			}
			scaled[c] = (v - mins[c]) / span
		}
		matrix[i] = scaled
	}
	return matrix, nil
}

// extract builds the raw, imputed matrix.
func extract(tracks []TrackFeatures) ([]Vector, error) {
	raw := make([]Vector, len(tracks))
	for i := range tracks {
		t := &tracks[i]
		if t.ID == "" {
			return nil, &DataIntegrityError{Row: i, Field: "track_id", Reason: "is empty"}
		}

		row := make(Vector, NumDimensions)
		for _, d := range Columns() {
			v, ok := t.Value(d)
			if !ok || math.IsNaN(v) {
				continue
			}
			if math.IsInf(v, 0) {
				return nil, &DataIntegrityError{TrackID: t.ID, Row: i, Field: d.String(), Reason: "is not finite"}
			}
			row[d] = v
		}
		raw[i] = row
	}
	return raw, nil
}
