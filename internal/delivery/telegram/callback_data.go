package telegram

import (
	"strconv"
	"strings"

	"github.com/aliskhannn/vocabulary-tester/internal/domain/entities"
)

// Callback action constants.
const (
	actionModule = "module"
	actionMode   = "mode"
	actionQuiz   = "quiz"
	actionAnswer = "answer"
)

// Quiz sub-actions.
const (
	quizStart  = "start"
	quizStop   = "stop"
	quizReview = "review"
)

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

func buildModuleCallback(moduleID string) string {
	return callbackData{Action: actionModule, Params: []string{moduleID}}.encode()
}

func buildModeCallback(mode entities.Mode) string {
	return callbackData{Action: actionMode, Params: []string{mode.String()}}.encode()
}

func buildQuizCallback(sub string) string {
	return callbackData{Action: actionQuiz, Params: []string{sub}}.encode()
}

// buildAnswerCallback ties an answer to the question number so presses on
// an old keyboard can be told apart.
func buildAnswerCallback(questionNum int, key entities.OptionKey) string {
	return callbackData{
		Action: actionAnswer,
		Params: []string{strconv.Itoa(questionNum), string(key)},
	}.encode()
}

// parseAnswerCallback returns the question number and key of an answer callback.
func parseAnswerCallback(cd callbackData) (int, entities.OptionKey, bool) {
	if cd.Action != actionAnswer || len(cd.Params) != 2 {
		return 0, "", false
	}

	num, err := strconv.Atoi(cd.Params[0])
	if err != nil || num < 1 {
		return 0, "", false
	}

	key, ok := entities.ParseOptionKey(cd.Params[1])
	if !ok {
		return 0, "", false
	}

	return num, key, true
}
