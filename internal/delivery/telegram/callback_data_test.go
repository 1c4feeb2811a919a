package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aliskhannn/vocabulary-tester/internal/domain/entities"
)

func TestCallbackBuilders(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "module:3", buildModuleCallback("3"))
	assert.Equal(t, "mode:english", buildModeCallback(entities.ModeEnglish))
	assert.Equal(t, "quiz:stop", buildQuizCallback(quizStop))
	assert.Equal(t, "answer:12:4", buildAnswerCallback(12, entities.Option4))

	cd := decodeCallback("module:3")
	assert.Equal(t, actionModule, cd.Action)
	assert.Equal(t, []string{"3"}, cd.Params)
	assert.Equal(t, "module:3", cd.Raw)

	assert.Equal(t, "quiz", callbackData{Action: actionQuiz}.encode())
}

func TestParseAnswerCallback(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantNum int
		wantKey entities.OptionKey
		wantOK  bool
	}{
		{name: "valid", data: "answer:3:2", wantNum: 3, wantKey: entities.Option2, wantOK: true},
		{name: "wrong action", data: "quiz:3:2"},
		{name: "missing key", data: "answer:3"},
		{name: "bad number", data: "answer:x:2"},
		{name: "zero number", data: "answer:0:2"},
		{name: "bad key", data: "answer:3:5"},
		{name: "extra params", data: "answer:3:2:1"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			num, key, ok := parseAnswerCallback(decodeCallback(tt.data))
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantNum, num)
			assert.Equal(t, tt.wantKey, key)
		})
	}
}
