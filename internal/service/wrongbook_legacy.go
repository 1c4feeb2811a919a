package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/aliskhannn/vocabulary-tester/internal/domain/entities"
)

var (
	ErrEmptyWrongBook         = errors.New("wrong book contains no records")
	ErrUnknownWrongBookFormat = errors.New("unknown wrong book format")
)

const legacySeparatorWidth = 50

var legacySeparator = strings.Repeat("-", legacySeparatorWidth)

const (
	labelWordZH       = "单词:"
	labelDefinitionZH = "释义:"
	labelCorrectZH    = "正确答案:"
	labelQuestionZH   = "问题:"
	labelYourAnswerZH = "你的答案:"
	labelTimeZH       = "时间:"
)

type legacyField int

const (
	fieldWord legacyField = iota
	fieldDefinition
	fieldCorrect
	fieldQuestion
	fieldYourAnswer
	fieldTime
)

// legacyLabels maps every recognised line label to its field. Longer labels
// come first so "correct answer:" is not taken for a shorter prefix.
var legacyLabels = []struct {
	label string
	field legacyField
}{
	{"correct answer:", fieldCorrect},
	{"your answer:", fieldYourAnswer},
	{"definition:", fieldDefinition},
	{"question:", fieldQuestion},
	{"word:", fieldWord},
	{"time:", fieldTime},
	{labelCorrectZH, fieldCorrect},
	{labelYourAnswerZH, fieldYourAnswer},
	{labelDefinitionZH, fieldDefinition},
	{labelQuestionZH, fieldQuestion},
	{labelWordZH, fieldWord},
	{labelTimeZH, fieldTime},
}

// parseLegacyText reads the dash separated text format. A block becomes a
// record only when it names a word, a definition and a correct answer.
func parseLegacyText(content string) []entities.WrongRecord {
	var records []entities.WrongRecord

	for _, block := range strings.Split(content, legacySeparator) {
		fields := make(map[legacyField]string)
		for _, line := range strings.Split(block, "\n") {
			f, value, ok := parseLegacyLine(line)
			if !ok {
				continue
			}
			if _, seen := fields[f]; !seen {
				fields[f] = value
			}
		}

		word, definition, correct := fields[fieldWord], fields[fieldDefinition], fields[fieldCorrect]
		if word == "" || definition == "" || correct == "" {
			continue
		}

		answer := fields[fieldYourAnswer]
		if answer == "" {
			answer = entities.AnswerUnknown
		}

		records = append(records, entities.WrongRecord{
			Word:              word,
			Definition:        definition,
			QuestionText:      fields[fieldQuestion],
			UserAnswerText:    answer,
			CorrectAnswerText: correct,
			Timestamp:         fields[fieldTime],
		})
	}

	return records
}

func parseLegacyLine(line string) (legacyField, string, bool) {
	line = strings.TrimSpace(line)
	lower := strings.ToLower(line)
	for _, l := range legacyLabels {
		if strings.HasPrefix(lower, l.label) {
			return l.field, strings.TrimSpace(line[len(l.label):]), true
		}
	}
	return 0, "", false
}

// snakeCaseWrongBook is the layout older desktop builds exported.
type snakeCaseWrongBook struct {
	WrongAnswers []struct {
		Time     string `json:"time"`
		WordInfo struct {
			Word       string `json:"word"`
			Definition string `json:"definition"`
		} `json:"word_info"`
		QuestionInfo struct {
			Question      string `json:"question"`
			YourAnswer    string `json:"your_answer"`
			CorrectAnswer string `json:"correct_answer"`
		} `json:"question_info"`
	} `json:"wrong_answers"`
}

func parseSnakeCaseWrongBook(data []byte) ([]entities.WrongRecord, error) {
	var book snakeCaseWrongBook
	if err := json.Unmarshal(data, &book); err != nil {
		return nil, fmt.Errorf("decode wrong book: %w", err)
	}

	records := make([]entities.WrongRecord, 0, len(book.WrongAnswers))
	for _, item := range book.WrongAnswers {
		if item.WordInfo.Word == "" {
			continue
		}
		records = append(records, entities.WrongRecord{
			Word:              item.WordInfo.Word,
			Definition:        item.WordInfo.Definition,
			QuestionText:      item.QuestionInfo.Question,
			UserAnswerText:    item.QuestionInfo.YourAnswer,
			CorrectAnswerText: item.QuestionInfo.CorrectAnswer,
			Timestamp:         item.Time,
		})
	}

	return records, nil
}
