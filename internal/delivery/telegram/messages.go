// messages.go contains message templates and formatting functions for Telegram.

package telegram

import (
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/vocabulary-tester/internal/domain/entities"
)

const (
	msgInternalError     = "出了点问题，请稍后再试。"
	msgUnknownCommand    = "未知命令。发送 /help 查看可用命令。"
	msgUnknownModule     = "没有这个模块，请用 /modules 重新选择。"
	msgModuleUnavailable = "词汇模块加载失败，请稍后再试。"
	msgNoQuestions       = "当前模块没有可用的词汇，请用 /modules 选择其他模块。"
	msgNoActiveQuiz      = "当前没有进行中的测试。发送 /quiz 开始。"
	msgStaleQuestion     = "这道题已经结束了"
	msgChooseModule      = "请选择词汇模块:"
	msgChooseMode        = "请选择测试模式:"
	msgNoWrongAnswers    = "错题本是空的。"
	msgNoFavoriteWord    = "请先答一道题，或使用 /favorite 单词。"
	msgHistoryDisabled   = "历史记录未启用。"
	msgNoHistory         = "还没有测试记录。"
	msgTextHint          = "请使用下方按钮答题，或发送 /help 查看命令。"
)

const historyLimit = 5

// md escapes plain text for MarkdownV2.
func md(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, s)
}

func bold(s string) string {
	return "*" + md(s) + "*"
}

// newMessage creates a message with MarkdownV2 parse mode.
func newMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	return msg
}

// newPlainMessage creates a plain message without MarkdownV2 parse mode.
func newPlainMessage(chatID int64, text string) tgbotapi.MessageConfig {
	return tgbotapi.NewMessage(chatID, text)
}

// newEdit creates an edit with MarkdownV2 parse mode.
func newEdit(chatID int64, msgID int, text string) tgbotapi.EditMessageTextConfig {
	edit := tgbotapi.NewEditMessageText(chatID, msgID, text)
	edit.ParseMode = tgbotapi.ModeMarkdownV2
	return edit
}

func welcomeMarkdownV2() string {
	var sb strings.Builder

	sb.WriteString(bold("📚 英语词汇测试"))
	sb.WriteString("\n\n")
	sb.WriteString(md("支持初中、高中、CET4、CET6、考研、托福、SAT 等词汇模块。"))
	sb.WriteString("\n")
	sb.WriteString(md("每道题有四个选项，答错的单词会记入错题本，可随时复习。"))
	sb.WriteString("\n\n")
	sb.WriteString(md(helpText()))

	return sb.String()
}

func helpText() string {
	return strings.Join([]string{
		"/modules - 选择词汇模块",
		"/mode - 选择测试模式",
		"/quiz - 开始或继续测试",
		"/review - 切换错题复习模式",
		"/stats - 查看统计",
		"/stop - 结束测试并保存错题",
		"/export - 导出错题本 (JSON)",
		"/favorite [单词] - 收藏或取消收藏",
		"/history - 最近的测试记录和收藏",
	}, "\n")
}

func modeName(m entities.Mode) string {
	switch m {
	case entities.ModeChinese:
		return "中文 → 英文"
	case entities.ModeEnglish:
		return "英文 → 中文"
	default:
		return m.String()
	}
}

func formatQuizStart(m entities.Module, mode entities.Mode, review bool, limit time.Duration) string {
	var sb strings.Builder

	sb.WriteString(bold("🎯 测试开始！"))
	sb.WriteString("\n\n")
	sb.WriteString(md("模块: "))
	sb.WriteString(bold(m.Name))
	sb.WriteString("\n")
	sb.WriteString(md("模式: "))
	sb.WriteString(bold(modeName(mode)))
	if review {
		sb.WriteString("\n")
		sb.WriteString(md("🔁 错题复习模式"))
	}
	if limit > 0 {
		sb.WriteString("\n")
		sb.WriteString(md(fmt.Sprintf("⏱ 每题限时 %d 秒", int(limit.Seconds()))))
	}

	return sb.String()
}

func formatQuestion(q *entities.Question, num int) string {
	prompt := "的中文释义是什么？"
	if q.Mode == entities.ModeChinese {
		prompt = "的英文单词是什么？"
	}

	header := fmt.Sprintf("第 %d 题", num)
	if q.Review {
		header += " (复习)"
	}

	return fmt.Sprintf("%s\n\n%s %s", md(header), bold(q.Text), md(prompt))
}

func formatOutcome(o entities.AnswerOutcome) string {
	switch {
	case o.Correct:
		return md("✅ 回答正确！")
	case o.TimedOut:
		return md("⏰ 时间到！正确答案是: ") + bold(o.CorrectText)
	default:
		return md(fmt.Sprintf("❌ 回答错误！你的答案: %s\n正确答案是: ", o.ChosenText)) + bold(o.CorrectText)
	}
}

func formatStatistics(s entities.Statistics) string {
	if s.TotalAsked == 0 {
		return md("还没有答题记录")
	}

	lines := []string{
		bold("📊 统计信息"),
		"",
		md(fmt.Sprintf("已答题: %d 题", s.TotalAsked)),
		md(fmt.Sprintf("正确数: %d 题", s.TotalCorrect)),
		md(fmt.Sprintf("错误数: %d 题", s.TotalWrong)),
		md(fmt.Sprintf("正确率: %.1f%%", s.Accuracy)),
	}

	if s.ModuleTotalWords > 0 {
		lines = append(lines,
			"",
			bold("词汇认识率估计"),
			md(fmt.Sprintf("当前模块总词汇量: %d 个", s.ModuleTotalWords)),
			md(fmt.Sprintf("估计认识率: %.1f%%", s.EstimatedKnowledgeRate)),
			md(fmt.Sprintf("估计已掌握词汇: %d 个", s.EstimatedMasteredCount)),
		)
	}

	return strings.Join(lines, "\n")
}

const maxListedWrong = 20

func formatFinalResult(result *entities.SessionResult, stats entities.Statistics, wrong []entities.WrongRecord) string {
	var sb strings.Builder

	sb.WriteString(bold("🏁 测试结束"))
	sb.WriteString("\n\n")
	if result != nil {
		sb.WriteString(md(fmt.Sprintf("模块: %s · %s", result.ModuleName, modeName(result.Mode))))
		sb.WriteString("\n\n")
	}
	sb.WriteString(formatStatistics(stats))
	sb.WriteString("\n\n")

	if len(wrong) == 0 {
		sb.WriteString(md("🎉 恭喜！你没有答错任何题目！"))
		return sb.String()
	}

	sb.WriteString(bold(fmt.Sprintf("错题 (%d)", len(wrong))))
	for i, r := range wrong {
		if i == maxListedWrong {
			sb.WriteString("\n")
			sb.WriteString(md(fmt.Sprintf("… 还有 %d 道", len(wrong)-maxListedWrong)))
			break
		}
		sb.WriteString("\n")
		sb.WriteString(md(fmt.Sprintf("%d. %s - %s (你的答案: %s)", i+1, r.Word, r.Definition, r.UserAnswerText)))
	}
	sb.WriteString("\n\n")
	sb.WriteString(md("错题已保存，发送 /export 下载错题本。"))

	return sb.String()
}

func formatHistory(results []*entities.SessionResult, favs []*entities.Favorite) string {
	var sb strings.Builder

	sb.WriteString(bold("🕘 最近的测试"))
	sb.WriteString("\n")
	if len(results) == 0 {
		sb.WriteString(md(msgNoHistory))
	}
	for _, r := range results {
		sb.WriteString("\n")
		sb.WriteString(md(fmt.Sprintf("%s  %s · %s  %d/%d (%.0f%%)",
			r.FinishedAt.Local().Format(entities.TimestampLayout),
			r.ModuleName,
			modeName(r.Mode),
			r.TotalCorrect,
			r.TotalAsked,
			r.Accuracy(),
		)))
	}

	if len(favs) > 0 {
		words := make([]string, 0, len(favs))
		for _, f := range favs {
			words = append(words, f.Word)
		}
		sb.WriteString("\n\n")
		sb.WriteString(bold("⭐ 收藏"))
		sb.WriteString("\n")
		sb.WriteString(md(strings.Join(words, ", ")))
	}

	return sb.String()
}
