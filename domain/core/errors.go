package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Lookup errors
	ErrQuestionNotFound = errors.New("question not found")
	ErrOptionNotFound   = errors.New("option not found")

	// Query errors
	ErrInvalidQuestionType = errors.New("invalid question type for operation")

	// Load errors
	ErrEmptyDataset = errors.New("empty dataset")
	ErrLoadFailed   = errors.New("dataset load failed")
	ErrParsing      = errors.New("data parsing error")
)

// Error constructors with context
func NewQuestionNotFoundError(id int) error {
	return fmt.Errorf("%w: id %d", ErrQuestionNotFound, id)
}

func NewQuestionKeyNotFoundError(key string) error {
	return fmt.Errorf("%w: key %q", ErrQuestionNotFound, key)
}

func NewOptionNotFoundError(option string) error {
	return fmt.Errorf("%w: %q", ErrOptionNotFound, option)
}

func NewParsingError(detail string) error {
	return fmt.Errorf("%w: %s", ErrParsing, detail)
}

func NewLoadError(source string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrLoadFailed, source, err)
}

// Error checking helpers
func IsQuestionNotFound(err error) bool {
	return errors.Is(err, ErrQuestionNotFound)
}

func IsEmptyDataset(err error) bool {
	return errors.Is(err, ErrEmptyDataset)
}
