package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/vocabulary-tester/internal/domain/entities"
	"github.com/aliskhannn/vocabulary-tester/internal/service"
)

// Options are the session defaults of the terminal front end.
type Options struct {
	DefaultModule string
	DefaultMode   entities.Mode
	TimeLimit     time.Duration // 0 disables the countdown
}

// Runner drives one quiz session over a line based terminal.
type Runner struct {
	in      io.Reader
	out     io.Writer
	modules ModuleLister
	session QuizSession
	opts    Options
	logger  *zap.Logger
	matcher *service.AnswerMatcher

	lines <-chan string
}

func NewRunner(in io.Reader, out io.Writer, modules ModuleLister, session QuizSession, opts Options, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		in:      in,
		out:     out,
		modules: modules,
		session: session,
		opts:    opts,
		logger:  logger,
		matcher: service.NewAnswerMatcher(),
	}
}

var errQuit = errors.New("quit")

// Run asks for a module and a mode, then asks questions until the user quits,
// the input ends or ctx is cancelled. The session is finished in every case.
func (r *Runner) Run(ctx context.Context) error {
	r.lines = readLines(r.in)

	fmt.Fprintln(r.out, "========== 欢迎使用英语词汇测试系统 ==========")

	if err := r.selectModule(ctx); err != nil {
		if errors.Is(err, errQuit) {
			fmt.Fprintln(r.out, "\n感谢使用英语词汇测试系统！")
			return nil
		}
		return err
	}

	loopErr := r.selectMode(ctx)
	if loopErr == nil {
		fmt.Fprintln(r.out, "\n测试开始！输入 'quit' 或 'q' 随时退出测试。")
		fmt.Fprintln(r.out, "其他命令: r 切换错题复习模式, s 查看统计, i <路径> 导入错题本")
		fmt.Fprintln(r.out, rule)

		loopErr = r.quizLoop(ctx)
	}

	finishErr := r.finish(ctx)
	fmt.Fprintln(r.out, "\n感谢使用英语词汇测试系统！")

	if loopErr != nil && !errors.Is(loopErr, errQuit) {
		return loopErr
	}
	return finishErr
}

func (r *Runner) selectModule(ctx context.Context) error {
	modules := r.modules.Modules()

	for {
		renderModules(r.out, modules)
		fmt.Fprintf(r.out, "请选择模块 (默认 %s): ", r.opts.DefaultModule)

		line, err := r.readLine(ctx, nil)
		if err != nil {
			return err
		}
		if isQuit(line) {
			return errQuit
		}
		if line == "" {
			line = r.opts.DefaultModule
		}

		err = r.session.LoadModule(line)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, entities.ErrModuleNotFound):
			fmt.Fprintln(r.out, "无效的模块编号，请重新选择")
		default:
			r.logger.Error("load module", zap.String("module_id", line), zap.Error(err))
			fmt.Fprintf(r.out, "加载模块失败: %v\n", err)
		}
	}
}

func (r *Runner) selectMode(ctx context.Context) error {
	for {
		renderModes(r.out)
		fmt.Fprintf(r.out, "请选择测试模式 (默认 %s): ", modeLabel(r.opts.DefaultMode))

		line, err := r.readLine(ctx, nil)
		if err != nil {
			return err
		}
		if isQuit(line) {
			return errQuit
		}

		mode := r.opts.DefaultMode
		if line != "" {
			if mode, err = entities.ParseMode(line); err != nil {
				fmt.Fprintln(r.out, "无效的输入，请输入 1 或 2")
				continue
			}
		}

		if err := r.session.SetMode(mode); err != nil {
			fmt.Fprintln(r.out, "无效的输入，请输入 1 或 2")
			continue
		}
		fmt.Fprintf(r.out, "已选择: %s\n", modeLabel(mode))
		return nil
	}
}

func (r *Runner) quizLoop(ctx context.Context) error {
	for {
		round, err := r.session.Ask()
		if err != nil {
			fmt.Fprintf(r.out, "无法生成题目: %v\n", err)
			return err
		}

		if err := r.playRound(ctx, round); err != nil {
			return err
		}
	}
}

// playRound shows a question and reads input until the question is scored.
// Commands and invalid input re-prompt the same question; the countdown keeps running.
func (r *Runner) playRound(ctx context.Context, round *service.Round) error {
	renderQuestion(r.out, round.Question())

	var deadline <-chan time.Time
	if r.opts.TimeLimit > 0 {
		timer := time.NewTimer(r.opts.TimeLimit)
		defer timer.Stop()
		deadline = timer.C
		fmt.Fprintf(r.out, "(限时 %d 秒)\n", int(r.opts.TimeLimit.Seconds()))
	}

	for {
		fmt.Fprint(r.out, "\n请输入答案 (1/2/3/4) 或输入 'quit'/'q' 退出: ")

		line, err := r.readLine(ctx, deadline)
		if errors.Is(err, errTimeout) {
			if outcome, ok := round.Timeout(); ok {
				renderOutcome(r.out, outcome)
			}
			return nil
		}
		if err != nil {
			return err
		}

		switch cmd, arg := splitCommand(line); {
		case isQuit(line):
			fmt.Fprintln(r.out, "\n测试已停止")
			return errQuit
		case cmd == "r":
			on := !r.session.ReviewMode()
			r.session.SetReviewMode(on)
			if on {
				fmt.Fprintln(r.out, "已进入错题复习模式，下一题起生效")
			} else {
				fmt.Fprintln(r.out, "已退出错题复习模式")
			}
		case cmd == "s":
			renderStatistics(r.out, r.session.GetStatistics())
		case cmd == "i":
			r.importWrongBook(arg)
		default:
			key, ok := r.matcher.Resolve(round.Question(), line)
			if !ok {
				fmt.Fprintln(r.out, "无效的输入，请输入 1、2、3 或 4")
				continue
			}
			if outcome, ok := round.Answer(key); ok {
				renderOutcome(r.out, outcome)
			}
			return nil
		}
	}
}

func (r *Runner) importWrongBook(path string) {
	if path == "" {
		fmt.Fprintln(r.out, "请提供错题本文件路径，例如: i data/wrong_book.json")
		return
	}

	n, err := r.session.ImportWrongBook(path)
	if err != nil {
		r.logger.Warn("import wrong book", zap.String("path", path), zap.Error(err))
		fmt.Fprintf(r.out, "导入错题本失败: %v\n", err)
		return
	}

	fmt.Fprintf(r.out, "成功导入 %d 道错题\n", n)
}

func (r *Runner) finish(ctx context.Context) error {
	fmt.Fprintln(r.out, "\n=== 最终测试结果 ===")
	renderStatistics(r.out, r.session.GetStatistics())

	log := r.session.WrongLog()
	renderWrongLog(r.out, log)

	if len(log) > 0 {
		fmt.Fprint(r.out, "\n是否同时保存文本格式的错题本？(y/n): ")
		if line, err := r.readLine(ctx, nil); err == nil && strings.EqualFold(line, "y") {
			path, err := r.session.SaveWrongBookText("")
			if err != nil {
				fmt.Fprintf(r.out, "保存错题本时出错: %v\n", err)
			} else {
				fmt.Fprintf(r.out, "错题本已保存为: %s\n", path)
			}
		}
	}

	result, err := r.session.Finish(context.WithoutCancel(ctx))
	if err != nil {
		fmt.Fprintf(r.out, "保存测试结果时出错: %v\n", err)
		return err
	}

	if len(log) > 0 {
		fmt.Fprintln(r.out, "错题已以JSON格式保存至数据目录")
	}
	r.logger.Debug("session finished", zap.String("session_id", result.ID.String()))

	return nil
}

var errTimeout = errors.New("time limit reached")

// readLine waits for the next input line, the deadline or ctx.
func (r *Runner) readLine(ctx context.Context, deadline <-chan time.Time) (string, error) {
	select {
	case line, ok := <-r.lines:
		if !ok {
			return "", errQuit
		}
		return strings.TrimSpace(line), nil
	case <-deadline:
		return "", errTimeout
	case <-ctx.Done():
		return "", errQuit
	}
}

// readLines feeds the lines of in into a channel that is closed at EOF.
func readLines(in io.Reader) <-chan string {
	ch := make(chan string)
	go func() {
		defer close(ch)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			ch <- sc.Text()
		}
	}()
	return ch
}

func isQuit(line string) bool {
	l := strings.ToLower(line)
	return l == "q" || l == "quit"
}

func splitCommand(line string) (cmd, arg string) {
	cmd, arg, _ = strings.Cut(line, " ")
	return strings.ToLower(cmd), strings.TrimSpace(arg)
}

func modeLabel(m entities.Mode) string {
	switch m {
	case entities.ModeChinese:
		return "中文 → 英文"
	case entities.ModeEnglish:
		return "英文 → 中文"
	default:
		return m.String()
	}
}
