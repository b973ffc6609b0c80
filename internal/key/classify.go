package key

import (
	"gonum.org/v1/gonum/floats"

	"github.com/harmolab/mixprep/internal/model"
)

// Confidence tier thresholds on the best correlation score.
const (
	highThreshold   = 0.8
	mediumThreshold = 0.5
)

// Classify scores a feature vector against every template and returns
// the best match.
//
// Templates are visited in rotation order, major before minor at each
// rotation, and a later template only wins with a strictly greater
// score. Ties therefore resolve to the lowest rotation and, within a
// rotation, to major. The input is expected to be L2-normalized, which
// makes the score a cosine correlation in [0, 1] for non-negative
// inputs.
func Classify(v model.FeatureVector) model.Classification {
	best := -1.0
	label := ""

	for _, t := range bank {
		if score := floats.Dot(v[:], t.Vector[:]); score > best {
			best = score
			label = t.Label
		}
	}

	return model.Classification{
		Key:   label,
		Score: best,
		Tier:  tierFor(best),
	}
}

func tierFor(score float64) model.Confidence {
	switch {
	case score > highThreshold:
		return model.ConfidenceHigh
	case score > mediumThreshold:
		return model.ConfidenceMedium
	default:
		return model.ConfidenceLow
	}
}
