package domain

import (
	"bytes"
	"encoding/json"
	"strings"
	"unicode"
	"unicode/utf16"
)

// Validation messages. The wording is part of the API contract.
const (
	MsgTextRequired = "Text is required"
	MsgTextNotText  = "Text must be a string"
	MsgTextEmpty    = "Text cannot be empty"
	MsgTextTooLong  = "Text too long (max 50000 characters)"
)

// ValidationError reports the first rule a create request violated.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// CreateSnippetRequestDTO represents the expected request body for creating a snippet.
// Text is kept raw so that a missing field and a non-string value can be told apart.
type CreateSnippetRequestDTO struct {
	Text json.RawMessage `json:"text"`
}

// Validate checks presence, type, emptiness and length, in that order, and
// returns the trimmed text.
func (r CreateSnippetRequestDTO) Validate() (string, error) {
	raw := bytes.TrimSpace(r.Text)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", &ValidationError{Reason: MsgTextRequired}
	}
	if raw[0] != '"' {
		return "", &ValidationError{Reason: MsgTextNotText}
	}
	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return "", &ValidationError{Reason: MsgTextNotText}
	}
	return ValidateText(text)
}

// TrimText strips leading and trailing Unicode white space, line separators
// included, and the byte order mark.
func TrimText(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\uFEFF'
	})
}

// TextLength counts s in UTF-16 code units, so characters outside the Basic
// Multilingual Plane count twice.
func TextLength(s string) int {
	n := 0
	for _, r := range s {
		n += max(utf16.RuneLen(r), 1)
	}
	return n
}

// ValidateText applies the emptiness and length rules to an already-decoded string.
func ValidateText(text string) (string, error) {
	trimmed := TrimText(text)
	if trimmed == "" {
		return "", &ValidationError{Reason: MsgTextEmpty}
	}
	if TextLength(trimmed) > MaxTextLength {
		return "", &ValidationError{Reason: MsgTextTooLong}
	}
	return trimmed, nil
}
