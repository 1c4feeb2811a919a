package repository

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aliskhannn/vocabulary-tester/internal/domain/entities"
)

const (
	opExport = "export"
	opImport = "import"
)

// WrongBookParser turns stored wrong book bytes back into records.
type WrongBookParser func(data []byte) ([]entities.WrongRecord, error)

// WrongBookRepository reads and writes wrong book files.
type WrongBookRepository struct {
	parse WrongBookParser
}

// NewWrongBookRepository creates a repository that decodes imports with parse.
func NewWrongBookRepository(parse WrongBookParser) *WrongBookRepository {
	return &WrongBookRepository{parse: parse}
}

// Save writes the wrong book as indented UTF-8 JSON, creating parent directories.
func (r *WrongBookRepository) Save(path string, book entities.WrongBook) error {
	data, err := book.Encode()
	if err != nil {
		return &entities.PersistenceError{Op: opExport, Path: path, Err: fmt.Errorf("encode: %w", err)}
	}
	return r.write(path, data)
}

// SaveText writes an already rendered plain-text wrong book.
func (r *WrongBookRepository) SaveText(path string, text string) error {
	return r.write(path, []byte(text))
}

// Import reads a wrong book file and returns its records.
func (r *WrongBookRepository) Import(path string) ([]entities.WrongRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &entities.PersistenceError{Op: opImport, Path: path, Err: err}
	}

	records, err := r.parse(data)
	if err != nil {
		return nil, &entities.PersistenceError{Op: opImport, Path: path, Err: err}
	}

	return records, nil
}

func (r *WrongBookRepository) write(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &entities.PersistenceError{Op: opExport, Path: path, Err: err}
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &entities.PersistenceError{Op: opExport, Path: path, Err: err}
	}

	return nil
}
