// Package task owns the in-memory task collection and its mutations. Every
// operation reloads the persisted document, mutates it and writes it back in
// full.
package task

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/google/uuid"

	"todue/internal/date"
	"todue/internal/storage"
)

// Task is one to-do item.
type Task = storage.Task

// ErrValidation marks input rejected before any mutation.
var ErrValidation = errors.New("validation failed")

// Validation messages shown to the user.
const (
	MsgAddInvalid  = "Please enter task and date!"
	MsgEditInvalid = "Both fields are required!"
)

// ValidationError carries the user-facing message of a rejected input.
type ValidationError struct {
	Message string
	Field   string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Validate checks text and a YYYY-MM-DD date the way both the add form and
// the edit form require, returning the trimmed text and parsed date. msg is
// the message reported on failure.
func Validate(text, day, msg string) (string, date.Date, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", date.Date{}, &ValidationError{Message: msg, Field: "text"}
	}
	d, err := date.Parse(day)
	if err != nil {
		return "", date.Date{}, &ValidationError{Message: msg, Field: "date"}
	}
	return text, d, nil
}

// ValidateNew validates input for Store.Add.
func ValidateNew(text, day string) (string, date.Date, error) {
	return Validate(text, day, MsgAddInvalid)
}

// ValidateEdit validates input for Store.Update.
func ValidateEdit(text, day string) (string, date.Date, error) {
	return Validate(text, day, MsgEditInvalid)
}

// NewID returns an opaque id: a time-ordered UUID, so ids carry their
// creation timestamp plus random bits.
func NewID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	return id.String(), nil
}

// DisplayText neutralizes text for the terminal: escape sequences and control
// characters are dropped so stored text can never drive the terminal.
func DisplayText(text string) string {
	text = ansi.Strip(text)
	return strings.Map(func(r rune) rune {
		if r == '\t' {
			return ' '
		}
		if r < 0x20 || r == 0x7f || (r >= 0x80 && r < 0xa0) {
			return -1
		}
		return r
	}, text)
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

// EscapeHTML replaces the characters that could be read as markup.
func EscapeHTML(text string) string {
	return htmlEscaper.Replace(text)
}
