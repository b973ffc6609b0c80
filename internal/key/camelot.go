package key

// camelotMap translates classic key labels to Camelot wheel positions.
// Flat spellings map to the same position as their sharp equivalents
// so labels coming from existing filenames resolve too.
var camelotMap = map[string]string{
	"B": "1B", "Bm": "1A",
	"F#": "2B", "Gb": "2B", "F#m": "2A", "Gbm": "2A",
	"C#": "3B", "Db": "3B", "C#m": "3A", "Dbm": "3A",
	"G#": "4B", "Ab": "4B", "G#m": "4A", "Abm": "4A",
	"D#": "5B", "Eb": "5B", "D#m": "5A", "Ebm": "5A",
	"A#": "6B", "Bb": "6B", "A#m": "6A", "Bbm": "6A",
	"F": "7B", "Fm": "7A",
	"C": "8B", "Cm": "8A",
	"G": "9B", "Gm": "9A",
	"D": "10B", "Dm": "10A",
	"A": "11B", "Am": "11A",
	"E": "12B", "Em": "12A",
}

// classicMap is the reverse table, built from the canonical (sharp)
// labels only so each wheel position maps back to a single spelling.
var classicMap = buildClassicMap()

func buildClassicMap() map[string]string {
	m := make(map[string]string, 24)
	for _, t := range bank {
		m[camelotMap[t.Label]] = t.Label
	}
	return m
}

// ToAlphanumeric converts a classic key label to its Camelot wheel
// position. Labels without a wheel position are returned unchanged.
func ToAlphanumeric(label string) string {
	if code, ok := camelotMap[label]; ok {
		return code
	}
	return label
}

// FromAlphanumeric converts a Camelot wheel position back to the
// canonical classic label. Unknown codes are returned unchanged.
func FromAlphanumeric(code string) string {
	if label, ok := classicMap[code]; ok {
		return label
	}
	return code
}
