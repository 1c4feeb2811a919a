package repository

import (
	"encoding/json"

	"github.com/aliskhannn/vocabulary-tester/internal/domain/entities"
)

// rawRecord mirrors one element of a vocabulary file. Fields are kept raw so a
// record with an unexpected shape is skipped instead of failing the whole file.
type rawRecord struct {
	Word         json.RawMessage `json:"word"`
	Translations json.RawMessage `json:"translations"`
	Phrases      json.RawMessage `json:"phrases"`
}

type rawTranslation struct {
	Translation *string `json:"translation"`
}

type rawPhrase struct {
	Phrase      string `json:"phrase"`
	Translation string `json:"translation"`
}

// normalize converts raw vocabulary records into word entries.
// Records without a word or a definition are dropped.
func normalize(records []json.RawMessage) []entities.WordEntry {
	out := make([]entities.WordEntry, 0, len(records))
	for _, raw := range records {
		entry, ok := normalizeRecord(raw)
		if !ok {
			continue
		}
		out = append(out, entry)
	}
	return out
}

func normalizeRecord(raw json.RawMessage) (entities.WordEntry, bool) {
	var rec rawRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		// Not an object.
		return entities.WordEntry{}, false
	}

	word := decodeString(rec.Word)
	if word == "" {
		return entities.WordEntry{}, false
	}

	definition := firstTranslation(rec.Translations)
	phrases := decodeObjects(rec.Phrases)
	if definition == "" {
		definition = firstTranslation(rec.Phrases)
	}
	if definition == "" {
		return entities.WordEntry{}, false
	}

	return entities.WordEntry{
		Word:       word,
		Definition: definition,
		Examples:   examplesFrom(phrases),
	}, true
}

// firstTranslation returns the "translation" field of the first list element.
func firstTranslation(raw json.RawMessage) string {
	items := decodeObjects(raw)
	if len(items) == 0 {
		return ""
	}

	var t rawTranslation
	if err := json.Unmarshal(items[0], &t); err != nil || t.Translation == nil {
		return ""
	}
	return *t.Translation
}

// examplesFrom keeps the first MaxExamples phrase objects that carry any text.
func examplesFrom(items []json.RawMessage) []entities.Example {
	var examples []entities.Example
	for i, item := range items {
		if i >= entities.MaxExamples {
			break
		}

		var p rawPhrase
		if err := json.Unmarshal(item, &p); err != nil {
			continue
		}
		if p.Phrase == "" && p.Translation == "" {
			continue
		}
		examples = append(examples, entities.Example{Phrase: p.Phrase, Translation: p.Translation})
	}
	return examples
}

// decodeObjects decodes raw as a list and returns its elements; anything that
// is not a list yields nil.
func decodeObjects(raw json.RawMessage) []json.RawMessage {
	if len(raw) == 0 {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	return items
}

func decodeString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}
