package main

import (
	"errors"
	"strings"
)

var ErrInvalidYear = errors.New("year must be a non-negative number")

type missingFieldError string

func (m missingFieldError) Error() string {
	return string(m) + " is required"
}

// Book represents a book entity.
type Book struct {
	Title  string `json:"title" yaml:"title"`
	Author string `json:"author" yaml:"author"`
	Year   int    `json:"year" yaml:"year"`
	Genre  string `json:"genre" yaml:"genre"`
	Read   bool   `json:"read" yaml:"read"`
}

// NewBook trims the text fields and builds a validated book record.
// Invalid UTF-8 sequences are replaced with U+FFFD so that every store
// format gives back the exact record.
func NewBook(title, author string, year int, genre string, read bool) (Book, error) {
	book := Book{
		Title:  cleanText(title),
		Author: cleanText(author),
		Year:   year,
		Genre:  cleanText(genre),
		Read:   read,
	}
	if err := ValidateBook(&book); err != nil {
		return Book{}, err
	}
	return book, nil
}

func cleanText(s string) string {
	return strings.TrimSpace(strings.ToValidUTF8(s, "\uFFFD"))
}

// ValidateBook is a helper function to check if the content of a book is valid.
func ValidateBook(book *Book) error {
	if len(strings.TrimSpace(book.Title)) == 0 {
		return missingFieldError("title")
	}

	if len(strings.TrimSpace(book.Author)) == 0 {
		return missingFieldError("author")
	}

	if book.Year < 0 {
		return ErrInvalidYear
	}

	return nil
}

// Status returns the human label of the read flag.
func (b Book) Status() string {
	if b.Read {
		return "Read"
	}
	return "Unread"
}
