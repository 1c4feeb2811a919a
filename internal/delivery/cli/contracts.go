package cli

import (
	"context"

	"github.com/aliskhannn/vocabulary-tester/internal/domain/entities"
	"github.com/aliskhannn/vocabulary-tester/internal/service"
)

// ModuleLister lists the selectable vocabulary modules.
type ModuleLister interface {
	Modules() []entities.Module
}

// QuizSession is the part of service.Session the terminal uses.
type QuizSession interface {
	LoadModule(moduleID string) error
	SetMode(mode entities.Mode) error
	Mode() entities.Mode
	Ask() (*service.Round, error)
	GetStatistics() entities.Statistics
	SetReviewMode(on bool)
	ReviewMode() bool
	WrongLog() []entities.WrongRecord
	ImportWrongBook(path string) (int, error)
	SaveWrongBookText(path string) (string, error)
	Finish(ctx context.Context) (*entities.SessionResult, error)
}
