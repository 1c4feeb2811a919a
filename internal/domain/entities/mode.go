package entities

import (
	"fmt"
	"strings"
)

// Mode selects what a question shows and what the options contain.
type Mode uint8

const (
	// ModeChinese shows the definition and asks for the English word.
	ModeChinese Mode = iota + 1
	// ModeEnglish shows the English word and asks for the definition.
	ModeEnglish
)

// String returns the persisted name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeChinese:
		return "chinese"
	case ModeEnglish:
		return "english"
	default:
		return "unknown"
	}
}

// Valid reports whether m is one of the two known modes.
func (m Mode) Valid() bool {
	return m == ModeChinese || m == ModeEnglish
}

// OptionText returns the text an option shows for the given item.
func (m Mode) OptionText(item WordEntry) string {
	switch m {
	case ModeChinese:
		return item.Word
	default:
		return item.Definition
	}
}

// QuestionText returns the prompt shown for the given target item.
func (m Mode) QuestionText(item WordEntry) string {
	switch m {
	case ModeChinese:
		return item.Definition
	default:
		return item.Word
	}
}

// ParseMode converts a persisted or user-supplied mode name into a Mode.
// Both the names ("chinese", "english") and the menu numbers ("1", "2") are accepted.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "chinese", "1":
		return ModeChinese, nil
	case "english", "2":
		return ModeEnglish, nil
	default:
		return 0, fmt.Errorf("unknown test mode: %q", s)
	}
}
