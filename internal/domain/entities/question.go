package entities

// OptionKey labels one of the four answer options.
type OptionKey string

const (
	Option1 OptionKey = "1"
	Option2 OptionKey = "2"
	Option3 OptionKey = "3"
	Option4 OptionKey = "4"
)

// OptionCount is the number of options every question has.
const OptionCount = 4

// OptionKeys lists the option keys in display order.
var OptionKeys = [OptionCount]OptionKey{Option1, Option2, Option3, Option4}

// ParseOptionKey validates user input as an option key.
func ParseOptionKey(s string) (OptionKey, bool) {
	for _, k := range OptionKeys {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// Question is a single multiple choice question.
type Question struct {
	CorrectItem WordEntry            // the item the user has to recognise
	Options     map[OptionKey]string // display text per option key
	Text        string               // prompt text: definition or word depending on Mode
	Mode        Mode
	Review      bool // target was drawn from the wrong log
}

// AnswerOutcome is the result of scoring one answer.
type AnswerOutcome struct {
	Correct     bool
	CorrectKey  OptionKey // empty when the correct option could not be determined
	CorrectText string
	ChosenText  string
	TimedOut    bool
}
