package entities

import "encoding/json"

// WrongBook is the exported mistake document.
type WrongBook struct {
	Metadata     WrongBookMetadata `json:"metadata"`
	WrongAnswers []WrongBookItem   `json:"wrongAnswers"`
}

// WrongBookMetadata describes when and for what a wrong book was exported.
type WrongBookMetadata struct {
	ExportTime      string `json:"exportTime"`
	TotalWrongItems int    `json:"totalWrongItems"`
	Module          string `json:"module"`
	Mode            string `json:"mode"`
}

// WrongBookItem is one deduplicated mistake.
type WrongBookItem struct {
	Time         string       `json:"time"`
	WordInfo     WordInfo     `json:"wordInfo"`
	QuestionInfo QuestionInfo `json:"questionInfo"`
}

// WordInfo holds the word a mistake was made on.
type WordInfo struct {
	Word       string `json:"word"`
	Definition string `json:"definition"`
}

// QuestionInfo holds the question context of a mistake.
type QuestionInfo struct {
	Question      string `json:"question"`
	YourAnswer    string `json:"yourAnswer"`
	CorrectAnswer string `json:"correctAnswer"`
}

// Record converts the item back into a wrong log record.
func (i WrongBookItem) Record() WrongRecord {
	return WrongRecord{
		Word:              i.WordInfo.Word,
		Definition:        i.WordInfo.Definition,
		QuestionText:      i.QuestionInfo.Question,
		UserAnswerText:    i.QuestionInfo.YourAnswer,
		CorrectAnswerText: i.QuestionInfo.CorrectAnswer,
		Timestamp:         i.Time,
	}
}

// Encode renders the wrong book as UTF-8 JSON indented with four spaces.
func (b WrongBook) Encode() ([]byte, error) {
	return json.MarshalIndent(b, "", "    ")
}
