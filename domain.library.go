package main

import (
	"errors"
	"math"
	"strings"
)

var ErrUnknownSearchField = errors.New("unknown search field")

// SearchField selects which book attribute a search matches against.
type SearchField int

const (
	SearchByTitle SearchField = iota + 1
	SearchByAuthor
)

// ParseSearchField maps a field name to its SearchField.
func ParseSearchField(name string) (SearchField, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "title":
		return SearchByTitle, nil
	case "author":
		return SearchByAuthor, nil
	}
	return 0, ErrUnknownSearchField
}

func (f SearchField) String() string {
	switch f {
	case SearchByTitle:
		return "title"
	case SearchByAuthor:
		return "author"
	}
	return "unknown"
}

// RemoveOutcome reports what a removal by title did.
type RemoveOutcome int

const (
	RemoveDone RemoveOutcome = iota
	RemoveNotFound
	RemoveEmpty
)

// LibraryStats holds the aggregates shown to the user.
type LibraryStats struct {
	Total       int
	Read        int
	PercentRead float64
}

// Library is the ordered in-memory collection of books. Insertion
// order is the only order. It is not safe for concurrent use.
type Library struct {
	books []Book
}

// NewLibrary provides a library holding the given books in order.
func NewLibrary(books ...Book) *Library {
	l := &Library{books: make([]Book, 0, len(books))}
	l.books = append(l.books, books...)
	return l
}

// Add appends a book to the end of the collection. Duplicate titles are allowed.
func (l *Library) Add(book Book) {
	l.books = append(l.books, book)
}

// Remove deletes the first book whose title equals the given one, ignoring case.
func (l *Library) Remove(title string) RemoveOutcome {
	if l.IsEmpty() {
		return RemoveEmpty
	}
	for i, book := range l.books {
		if strings.EqualFold(book.Title, title) {
			l.books = append(l.books[:i], l.books[i+1:]...)
			return RemoveDone
		}
	}
	return RemoveNotFound
}

// Search returns every book whose selected field contains term, ignoring case.
func (l *Library) Search(field SearchField, term string) []Book {
	term = strings.ToLower(term)
	matches := []Book{}
	for _, book := range l.books {
		var value string
		switch field {
		case SearchByTitle:
			value = book.Title
		case SearchByAuthor:
			value = book.Author
		default:
			return matches
		}
		if strings.Contains(strings.ToLower(value), term) {
			matches = append(matches, book)
		}
	}
	return matches
}

// All returns a copy of the collection in insertion order.
func (l *Library) All() []Book {
	books := make([]Book, len(l.books))
	copy(books, l.books)
	return books
}

// Statistics computes the total count and the percentage of read books,
// rounded to one decimal place.
func (l *Library) Statistics() LibraryStats {
	stats := LibraryStats{Total: len(l.books)}
	for _, book := range l.books {
		if book.Read {
			stats.Read++
		}
	}
	if stats.Total == 0 {
		return stats
	}
	percent := float64(stats.Read) / float64(stats.Total) * 100
	stats.PercentRead = math.Round(percent*10) / 10
	return stats
}

// Len returns the number of books.
func (l *Library) Len() int {
	return len(l.books)
}

// IsEmpty reports whether the library holds no book.
func (l *Library) IsEmpty() bool {
	return len(l.books) == 0
}
