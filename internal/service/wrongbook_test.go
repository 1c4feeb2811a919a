package service

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/vocabulary-tester/internal/domain/entities"
)

var exportNow = time.Date(2024, 6, 2, 8, 0, 0, 0, time.UTC)

func TestExportWrongBook_Deduplicates(t *testing.T) {
	t.Parallel()

	state := &entities.SessionState{WrongLog: []entities.WrongRecord{
		{Word: "apple", Definition: "苹果", QuestionText: "苹果", UserAnswerText: "pear", CorrectAnswerText: "apple", Timestamp: "2024-06-01 10:00:00"},
		{Word: "run", Definition: "跑", QuestionText: "跑", UserAnswerText: "walk", CorrectAnswerText: "run", Timestamp: "2024-06-01 10:01:00"},
		{Word: "apple", Definition: "苹果", QuestionText: "苹果", UserAnswerText: "超时", CorrectAnswerText: "apple", Timestamp: "2024-06-01 10:02:00"},
	}}

	book := ExportWrongBook(state, "3", entities.ModeChinese, exportNow)

	assert.Equal(t, entities.WrongBookMetadata{
		ExportTime:      "2024-06-02 08:00:00",
		TotalWrongItems: 2,
		Module:          "3",
		Mode:            "chinese",
	}, book.Metadata)

	require.Len(t, book.WrongAnswers, 2)
	assert.Equal(t, "apple", book.WrongAnswers[0].WordInfo.Word)
	assert.Equal(t, "超时", book.WrongAnswers[0].QuestionInfo.YourAnswer)
	assert.Equal(t, "2024-06-01 10:02:00", book.WrongAnswers[0].Time)
	assert.Equal(t, "run", book.WrongAnswers[1].WordInfo.Word)
}

func TestExportWrongBook_Empty(t *testing.T) {
	t.Parallel()

	book := ExportWrongBook(&entities.SessionState{}, "1", entities.ModeEnglish, exportNow)

	assert.Zero(t, book.Metadata.TotalWrongItems)
	assert.Empty(t, book.WrongAnswers)
	assert.Equal(t, "english", book.Metadata.Mode)
}

func TestExportWrongBook_MissingTimestampUsesExportTime(t *testing.T) {
	t.Parallel()

	state := &entities.SessionState{WrongLog: []entities.WrongRecord{{Word: "apple", Definition: "苹果"}}}
	book := ExportWrongBook(state, "1", entities.ModeChinese, exportNow)

	require.Len(t, book.WrongAnswers, 1)
	assert.Equal(t, "2024-06-02 08:00:00", book.WrongAnswers[0].Time)
}

func TestParseWrongBook_RoundTrip(t *testing.T) {
	t.Parallel()

	records := []entities.WrongRecord{
		{Word: "apple", Definition: "苹果", QuestionText: "苹果", UserAnswerText: "pear", CorrectAnswerText: "apple", Timestamp: "2024-06-01 10:00:00"},
		{Word: "run", Definition: "跑", QuestionText: "run", UserAnswerText: "超时", CorrectAnswerText: "跑", Timestamp: "2024-06-01 10:01:00"},
	}

	data, err := ExportWrongBook(&entities.SessionState{WrongLog: records}, "2", entities.ModeChinese, exportNow).Encode()
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n    \"metadata\"")
	assert.Contains(t, string(data), "苹果")

	got, err := ParseWrongBook(data)
	require.NoError(t, err)
	assert.Equal(t, records, got)
}

func TestParseWrongBook_SnakeCase(t *testing.T) {
	t.Parallel()

	data := []byte(`{
  "metadata": {"export_time": "2023-01-01 00:00:00"},
  "wrong_answers": [
    {
      "time": "2023-01-01 09:00:00",
      "word_info": {"word": "cat", "definition": "猫"},
      "question_info": {"question": "猫", "your_answer": "dog", "correct_answer": "cat"}
    },
    {"word_info": {"word": ""}}
  ]
}`)

	got, err := ParseWrongBook(data)
	require.NoError(t, err)
	assert.Equal(t, []entities.WrongRecord{{
		Word:              "cat",
		Definition:        "猫",
		QuestionText:      "猫",
		UserAnswerText:    "dog",
		CorrectAnswerText: "cat",
		Timestamp:         "2023-01-01 09:00:00",
	}}, got)
}

func TestParseWrongBook_LegacyText(t *testing.T) {
	sep := strings.Repeat("-", 50)

	tests := []struct {
		name string
		text string
		want []entities.WrongRecord
	}{
		{
			name: "english labels",
			text: "Word: apple\nDefinition: 苹果\nQuestion: 苹果\nYour Answer: pear\nCorrect Answer: apple\nTime: 2024-01-01 12:00:00\n" + sep + "\n",
			want: []entities.WrongRecord{{
				Word: "apple", Definition: "苹果", QuestionText: "苹果",
				UserAnswerText: "pear", CorrectAnswerText: "apple", Timestamp: "2024-01-01 12:00:00",
			}},
		},
		{
			name: "chinese labels",
			text: "第1题:\n  问题: 跑\n  你的答案: walk\n  正确答案: run\n  单词: run\n  释义: 跑\n" + sep + "\n",
			want: []entities.WrongRecord{{
				Word: "run", Definition: "跑", QuestionText: "跑",
				UserAnswerText: "walk", CorrectAnswerText: "run",
			}},
		},
		{
			name: "missing answer becomes unknown",
			text: "word: cat\ndefinition: 猫\ncorrect answer: cat\n",
			want: []entities.WrongRecord{{
				Word: "cat", Definition: "猫", UserAnswerText: entities.AnswerUnknown, CorrectAnswerText: "cat",
			}},
		},
		{
			name: "incomplete blocks are skipped",
			text: "word: cat\ndefinition: 猫\n" + sep + "\nword: dog\ndefinition: 狗\ncorrect answer: dog\n",
			want: []entities.WrongRecord{{
				Word: "dog", Definition: "狗", UserAnswerText: entities.AnswerUnknown, CorrectAnswerText: "dog",
			}},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseWrongBook([]byte(tt.text))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseWrongBook_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{name: "empty", data: "  \n", wantErr: ErrEmptyWrongBook},
		{name: "text without records", data: "nothing to see here", wantErr: ErrEmptyWrongBook},
		{name: "unknown json", data: `{"foo": 1}`, wantErr: ErrUnknownWrongBookFormat},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseWrongBook([]byte(tt.data))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParseWrongBook_InvalidJSON(t *testing.T) {
	t.Parallel()

	_, err := ParseWrongBook([]byte(`{"wrongAnswers": [`))
	assert.Error(t, err)
}

func TestParseWrongBook_StripsBOM(t *testing.T) {
	t.Parallel()

	got, err := ParseWrongBook([]byte("\xef\xbb\xbf" + `{"wrongAnswers":[{"wordInfo":{"word":"a","definition":"一"}}]}`))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].Word)
}

func TestRenderWrongBookText_ReadsBack(t *testing.T) {
	t.Parallel()

	state := &entities.SessionState{WrongLog: []entities.WrongRecord{
		{Word: "apple", Definition: "苹果", QuestionText: "苹果", UserAnswerText: "pear", CorrectAnswerText: "apple", Timestamp: "2024-06-01 10:00:00"},
		{Word: "run", Definition: "跑", QuestionText: "run", UserAnswerText: "超时", CorrectAnswerText: "跑", Timestamp: "2024-06-01 10:01:00"},
	}}

	text := RenderWrongBookText(state, "CET4", exportNow)

	assert.True(t, strings.HasPrefix(text, "=== 英语词汇错题本 ===\n模块: CET4\n"))
	assert.Contains(t, text, "总错题数: 2")
	assert.Contains(t, text, "第2题:")

	got, err := ParseWrongBook([]byte(text))
	require.NoError(t, err)
	assert.Equal(t, state.WrongLog, got)
}
