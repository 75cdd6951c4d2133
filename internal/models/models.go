package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrInvalidStatus is returned for a status outside the known set
	ErrInvalidStatus = errors.New("invalid status")
	// ErrInvalidField is returned for a search field outside the known set
	ErrInvalidField = errors.New("invalid search field")
)

// Book represents a book in the catalog
type Book struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	Year   int    `json:"year"`
	Status Status `json:"status"`
}

// FieldText returns the text form of the given field, used for searching
func (b Book) FieldText(f Field) (string, error) {
	switch f {
	case FieldTitle:
		return b.Title, nil
	case FieldAuthor:
		return b.Author, nil
	case FieldYear:
		return strconv.Itoa(b.Year), nil
	default:
		return "", fmt.Errorf("%w: %d", ErrInvalidField, int(f))
	}
}

// Status is the lending state of a book
type Status string

const (
	StatusAvailable Status = "available"
	StatusLent      Status = "lent"
)

// Legacy status names written by older catalog files
const (
	legacyAvailable = "в наличии"
	legacyLent      = "выдана"
)

// ParseStatus converts user or file input into a Status.
// Both the canonical names and the legacy Russian names are accepted.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(StatusAvailable), legacyAvailable:
		return StatusAvailable, nil
	case string(StatusLent), legacyLent:
		return StatusLent, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
}

// Valid reports whether s is one of the known statuses
func (s Status) Valid() bool {
	return s == StatusAvailable || s == StatusLent
}

func (s Status) String() string {
	return string(s)
}

// UnmarshalText accepts legacy names so old catalog files keep loading.
// Unknown text is kept as-is rather than failing the whole catalog;
// callers check Valid.
func (s *Status) UnmarshalText(text []byte) error {
	*s = DecodeStatus(string(text))
	return nil
}

// DecodeStatus is ParseStatus for stored data: text that is not a known
// status is returned unchanged instead of as an error.
func DecodeStatus(text string) Status {
	parsed, err := ParseStatus(text)
	if err != nil {
		return Status(strings.TrimSpace(text))
	}
	return parsed
}

// MarshalText rejects values that would not load back
func (s Status) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, string(s))
	}
	return []byte(s), nil
}

// Field selects which book attribute a search matches against
type Field int

const (
	FieldTitle Field = iota + 1
	FieldAuthor
	FieldYear
)

// ParseField converts a field name (title, author, year) into a Field
func ParseField(s string) (Field, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "title":
		return FieldTitle, nil
	case "author":
		return FieldAuthor, nil
	case "year":
		return FieldYear, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidField, s)
	}
}

func (f Field) String() string {
	switch f {
	case FieldTitle:
		return "title"
	case FieldAuthor:
		return "author"
	case FieldYear:
		return "year"
	default:
		return fmt.Sprintf("Field(%d)", int(f))
	}
}
