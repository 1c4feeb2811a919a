// Package entities contains domain entities used across the application.
package entities

// MaxExamples is the number of example phrases kept per word entry.
const MaxExamples = 3

// Example is a phrase using the word together with its translation.
type Example struct {
	Phrase      string `json:"phrase"`
	Translation string `json:"translation"`
}

// WordEntry is one normalized vocabulary item of a module.
// Word and Definition are always non-empty once the entry has been loaded.
type WordEntry struct {
	Word       string    `json:"word"`       // English word
	Definition string    `json:"definition"` // Chinese definition
	Examples   []Example `json:"examples"`   // up to MaxExamples phrases
}

// Equal reports whether two entries carry the same values.
func (w WordEntry) Equal(other WordEntry) bool {
	if w.Word != other.Word || w.Definition != other.Definition {
		return false
	}
	if len(w.Examples) != len(other.Examples) {
		return false
	}
	for i := range w.Examples {
		if w.Examples[i] != other.Examples[i] {
			return false
		}
	}
	return true
}

// Module is a named vocabulary set backed by a JSON file.
type Module struct {
	ID   string // module identifier used by callers ("1", "2", ...)
	Name string // human-readable name ("CET4", "托福", ...)
	File string // file name relative to the vocabulary directory
}
