package config

import (
	"errors"
	"fmt"

	"github.com/dshills/adocmark/internal/config/loader"
)

// Errors returned by configuration operations.
var (
	// ErrInvalidSetting indicates a value of the wrong type or out of range.
	ErrInvalidSetting = errors.New("invalid setting")

	// ErrNoFile indicates an operation that needs a settings file has none.
	ErrNoFile = errors.New("no settings file configured")
)

// ParseError represents an error while parsing a settings file.
type ParseError = loader.ParseError

// ValidationError describes a rejected setting value.
type ValidationError struct {
	// Path is the setting path that failed validation.
	Path string
	// Value is the rejected value.
	Value any
	// Message describes the problem.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("setting %s = %v: %s", e.Path, e.Value, e.Message)
}

// Unwrap lets errors.Is match ErrInvalidSetting.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidSetting
}

func invalid(path string, v any, format string, args ...any) error {
	return &ValidationError{Path: path, Value: v, Message: fmt.Sprintf(format, args...)}
}
