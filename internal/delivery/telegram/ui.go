package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/vocabulary-tester/internal/domain/entities"
)

const modulesPerRow = 3

// buildModuleKeyboard lists the modules, a few per row.
func buildModuleKeyboard(modules []entities.Module) tgbotapi.InlineKeyboardMarkup {
	var (
		rows [][]tgbotapi.InlineKeyboardButton
		row  []tgbotapi.InlineKeyboardButton
	)
	for _, m := range modules {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(m.Name, buildModuleCallback(m.ID)))
		if len(row) == modulesPerRow {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func buildModeKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🇨🇳 中文 → 英文", buildModeCallback(entities.ModeChinese)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🇬🇧 英文 → 中文", buildModeCallback(entities.ModeEnglish)),
		),
	)
}

func buildStartQuizKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎯 开始测试", buildQuizCallback(quizStart)),
		),
	)
}

// buildAnswerKeyboard shows one button per option in key order plus a stop button.
func buildAnswerKeyboard(q *entities.Question, questionNum int) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, entities.OptionCount+1)
	for _, k := range entities.OptionKeys {
		label := string(k) + ". " + q.Options[k]
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(truncateLabel(label), buildAnswerCallback(questionNum, k)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🔁 复习模式", buildQuizCallback(quizReview)),
		tgbotapi.NewInlineKeyboardButtonData("⏹ 结束", buildQuizCallback(quizStop)),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func buildResultKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 再来一次", buildQuizCallback(quizStart)),
		),
	)
}

func emptyKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{}}
}

const maxButtonRunes = 60

// truncateLabel keeps long definitions readable on a button.
func truncateLabel(s string) string {
	r := []rune(s)
	if len(r) <= maxButtonRunes {
		return s
	}
	return string(r[:maxButtonRunes-1]) + "…"
}
