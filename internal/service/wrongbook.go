package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/aliskhannn/vocabulary-tester/internal/domain/entities"
)

// ExportWrongBook builds the export document from the wrong log. Records are
// deduplicated by word: the last occurrence wins, the order of first
// appearance is kept.
func ExportWrongBook(state *entities.SessionState, moduleID string, mode entities.Mode, now time.Time) entities.WrongBook {
	exportTime := now.Format(entities.TimestampLayout)

	index := make(map[string]int, len(state.WrongLog))
	items := make([]entities.WrongBookItem, 0, len(state.WrongLog))
	for _, r := range state.WrongLog {
		item := wrongBookItem(r, exportTime)
		if i, ok := index[r.Word]; ok {
			items[i] = item
			continue
		}
		index[r.Word] = len(items)
		items = append(items, item)
	}

	return entities.WrongBook{
		Metadata: entities.WrongBookMetadata{
			ExportTime:      exportTime,
			TotalWrongItems: len(items),
			Module:          moduleID,
			Mode:            mode.String(),
		},
		WrongAnswers: items,
	}
}

func wrongBookItem(r entities.WrongRecord, fallbackTime string) entities.WrongBookItem {
	ts := r.Timestamp
	if ts == "" {
		ts = fallbackTime
	}

	return entities.WrongBookItem{
		Time: ts,
		WordInfo: entities.WordInfo{
			Word:       r.Word,
			Definition: r.Definition,
		},
		QuestionInfo: entities.QuestionInfo{
			Question:      r.QuestionText,
			YourAnswer:    r.UserAnswerText,
			CorrectAnswer: r.CorrectAnswerText,
		},
	}
}

// ParseWrongBook decodes a stored wrong book. JSON documents are recognised by
// their leading brace; anything else is read as the legacy text format.
func ParseWrongBook(data []byte) ([]entities.WrongRecord, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, ErrEmptyWrongBook
	}

	if trimmed[0] == '{' {
		return parseWrongBookJSON(trimmed)
	}

	records := parseLegacyText(string(data))
	if len(records) == 0 {
		return nil, ErrEmptyWrongBook
	}
	return records, nil
}

func parseWrongBookJSON(data []byte) ([]entities.WrongRecord, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("decode wrong book: %w", err)
	}

	if _, ok := probe["wrongAnswers"]; ok {
		var book entities.WrongBook
		if err := json.Unmarshal(data, &book); err != nil {
			return nil, fmt.Errorf("decode wrong book: %w", err)
		}

		records := make([]entities.WrongRecord, 0, len(book.WrongAnswers))
		for _, item := range book.WrongAnswers {
			if item.WordInfo.Word == "" {
				continue
			}
			records = append(records, item.Record())
		}
		return records, nil
	}

	if _, ok := probe["wrong_answers"]; ok {
		return parseSnakeCaseWrongBook(data)
	}

	return nil, fmt.Errorf("decode wrong book: %w", ErrUnknownWrongBookFormat)
}

// RenderWrongBookText renders the wrong log in the plain-text layout that
// parseLegacyText reads back.
func RenderWrongBookText(state *entities.SessionState, moduleName string, now time.Time) string {
	var b strings.Builder

	b.WriteString("=== 英语词汇错题本 ===\n")
	fmt.Fprintf(&b, "模块: %s\n", moduleName)
	fmt.Fprintf(&b, "生成时间: %s\n", now.Format(entities.TimestampLayout))
	fmt.Fprintf(&b, "总错题数: %d\n", len(state.WrongLog))
	b.WriteString(strings.Repeat("=", legacySeparatorWidth))
	b.WriteString("\n\n")

	for i, r := range state.WrongLog {
		fmt.Fprintf(&b, "第%d题:\n", i+1)
		fmt.Fprintf(&b, "  %s %s\n", labelQuestionZH, r.QuestionText)
		fmt.Fprintf(&b, "  %s %s\n", labelYourAnswerZH, r.UserAnswerText)
		fmt.Fprintf(&b, "  %s %s\n", labelCorrectZH, r.CorrectAnswerText)
		fmt.Fprintf(&b, "  %s %s\n", labelWordZH, r.Word)
		fmt.Fprintf(&b, "  %s %s\n", labelDefinitionZH, r.Definition)
		if r.Timestamp != "" {
			fmt.Fprintf(&b, "  %s %s\n", labelTimeZH, r.Timestamp)
		}
		b.WriteString(legacySeparator)
		b.WriteString("\n")
	}

	return b.String()
}
