package entities

import (
	"errors"
	"fmt"
)

var (
	ErrModuleNotFound  = errors.New("module not found")
	ErrEmptyVocabulary = errors.New("module has no usable vocabulary entries")
	ErrNoModuleLoaded  = errors.New("no module loaded")
	ErrLoad            = errors.New("load vocabulary")
	ErrPersistence     = errors.New("wrong book persistence")
)

// LoadError reports a vocabulary file that could not be read or decoded.
type LoadError struct {
	ModuleID string
	Path     string
	Err      error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load module %s from %s: %v", e.ModuleID, e.Path, e.Err)
}

func (e *LoadError) Unwrap() []error { return []error{ErrLoad, e.Err} }

// PersistenceError reports a failed wrong book export or import.
type PersistenceError struct {
	Op   string // "export" or "import"
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s wrong book %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() []error { return []error{ErrPersistence, e.Err} }
