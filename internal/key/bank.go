package key

import (
	"gonum.org/v1/gonum/floats"

	"github.com/harmolab/mixprep/internal/model"
)

// pitchNames are the twelve pitch classes in semitone order, spelled
// with sharps. Classifier output uses these spellings.
var pitchNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// Krumhansl (1990) key profiles. Index 0 is the tonic pitch class.
var (
	majorProfile = [12]float64{6.35, 2.23, 3.48, 2.33, 4.38, 4.09, 2.52, 5.19, 2.39, 3.66, 2.29, 2.88}
	minorProfile = [12]float64{6.33, 2.68, 3.52, 5.38, 2.60, 3.53, 2.54, 4.75, 3.98, 2.69, 3.34, 3.17}
)

// Template is one reference vector of the bank.
type Template struct {
	// Label is the classic key label, e.g. "C" or "Cm".
	Label string

	// Minor is true for the minor-mode templates.
	Minor bool

	// Rotation is the tonic pitch class (0=C .. 11=B).
	Rotation int

	// Vector is the unit-normalized rotated profile.
	Vector model.FeatureVector
}

// bank holds the 24 templates in classification order: rotation
// ascending, major before minor at each rotation. Built once, never
// mutated.
var bank = buildBank()

func buildBank() [24]Template {
	maj := unit(majorProfile)
	min := unit(minorProfile)

	var templates [24]Template
	for i := 0; i < 12; i++ {
		templates[2*i] = Template{
			Label:    pitchNames[i],
			Rotation: i,
			Vector:   rotate(maj, i),
		}
		templates[2*i+1] = Template{
			Label:    pitchNames[i] + "m",
			Minor:    true,
			Rotation: i,
			Vector:   rotate(min, i),
		}
	}
	return templates
}

// unit returns the profile scaled to L2 norm 1.
func unit(p [12]float64) model.FeatureVector {
	var v model.FeatureVector
	norm := floats.Norm(p[:], 2)
	for i, x := range p {
		v[i] = x / norm
	}
	return v
}

// rotate shifts the profile so that the tonic lands on pitch class i.
func rotate(v model.FeatureVector, i int) model.FeatureVector {
	var out model.FeatureVector
	for j, x := range v {
		out[(j+i)%12] = x
	}
	return out
}

// Bank returns the 24 reference templates in classification order.
// The returned array is a copy; the bank itself is immutable.
func Bank() [24]Template {
	return bank
}

// IsValidLabel reports whether label is one of the 24 labels the
// classifier can produce.
func IsValidLabel(label string) bool {
	for _, t := range bank {
		if t.Label == label {
			return true
		}
	}
	return false
}
