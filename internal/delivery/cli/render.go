package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/aliskhannn/vocabulary-tester/internal/domain/entities"
)

var (
	rule     = strings.Repeat("=", 50)
	thinRule = strings.Repeat("=", 30)
)

func renderModules(w io.Writer, modules []entities.Module) {
	fmt.Fprintln(w, "\n可选词汇模块:")
	for _, m := range modules {
		fmt.Fprintf(w, "  %s. %s\n", m.ID, m.Name)
	}
}

func renderModes(w io.Writer) {
	fmt.Fprintln(w, "\n测试模式:")
	fmt.Fprintln(w, "  1. 中文 → 英文 (看释义选单词)")
	fmt.Fprintln(w, "  2. 英文 → 中文 (看单词选释义)")
}

func renderQuestion(w io.Writer, q *entities.Question) {
	fmt.Fprintln(w, "\n问题:")
	if q.Review {
		fmt.Fprintln(w, "  [复习]")
	}
	switch q.Mode {
	case entities.ModeChinese:
		fmt.Fprintf(w, "  '%s' 的英文单词是什么？\n", q.Text)
	default:
		fmt.Fprintf(w, "  '%s' 的中文释义是什么？\n", q.Text)
	}

	fmt.Fprintln(w, "\n选项:")
	for _, k := range entities.OptionKeys {
		fmt.Fprintf(w, "  %s. %s\n", k, q.Options[k])
	}
}

func renderOutcome(w io.Writer, o entities.AnswerOutcome) {
	switch {
	case o.Correct:
		fmt.Fprintln(w, "\n恭喜你回答正确！")
	case o.TimedOut:
		fmt.Fprintf(w, "\n时间到！正确答案是: %s. %s\n", keyOrUnknown(o.CorrectKey), o.CorrectText)
	default:
		fmt.Fprintf(w, "\n回答错误！正确答案是: %s. %s\n", keyOrUnknown(o.CorrectKey), o.CorrectText)
	}
	fmt.Fprintln(w, rule)
}

func keyOrUnknown(k entities.OptionKey) string {
	if k == "" {
		return "?"
	}
	return string(k)
}

func renderStatistics(w io.Writer, s entities.Statistics) {
	if s.TotalAsked == 0 {
		fmt.Fprintln(w, "还没有答题记录")
		return
	}

	fmt.Fprintln(w, "\n=== 统计信息 ===")
	fmt.Fprintf(w, "已答题: %d 题\n", s.TotalAsked)
	fmt.Fprintf(w, "正确数: %d 题\n", s.TotalCorrect)
	fmt.Fprintf(w, "错误数: %d 题\n", s.TotalWrong)
	fmt.Fprintf(w, "正确率: %.1f%%\n", s.Accuracy)

	if s.ModuleTotalWords > 0 {
		fmt.Fprintln(w, "\n=== 词汇认识率估计 ===")
		fmt.Fprintf(w, "当前模块总词汇量: %d 个\n", s.ModuleTotalWords)
		fmt.Fprintf(w, "估计认识率: %.1f%%\n", s.EstimatedKnowledgeRate)
		fmt.Fprintf(w, "估计已掌握词汇: %d 个\n", s.EstimatedMasteredCount)
	}
	fmt.Fprintln(w, thinRule)
}

func renderWrongLog(w io.Writer, log []entities.WrongRecord) {
	if len(log) == 0 {
		fmt.Fprintln(w, "\n恭喜！你没有答错任何题目！")
		return
	}

	fmt.Fprintf(w, "\n你在本次测试中有 %d 道错题\n", len(log))
	fmt.Fprintln(w, "\n错题详情:")
	for i, r := range log {
		fmt.Fprintf(w, "%d. 单词: %s - 释义: %s\n", i+1, r.Word, r.Definition)
		fmt.Fprintf(w, "   你的答案: %s - 正确答案: %s\n\n", r.UserAnswerText, r.CorrectAnswerText)
	}
}
