package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBooks() []Book {
	return []Book{
		{Title: "Dune", Author: "Frank Herbert", Year: 1965, Genre: "SciFi", Read: true},
		{Title: "Emma", Author: "Jane Austen", Year: 1815, Genre: "Romance", Read: false},
		{Title: "Dune Messiah", Author: "Frank Herbert", Year: 1969, Genre: "SciFi", Read: false},
		{Title: "Persuasion", Author: "Jane Austen", Year: 1817, Genre: "Romance", Read: true},
	}
}

// Ensure NewBook trims and validates the fields.
func TestNewBook(t *testing.T) {
	t.Run("should pass: valid fields", func(t *testing.T) {
		book, err := NewBook("  Dune ", " Herbert", 1965, " SciFi ", true)
		require.NoError(t, err)
		assert.Equal(t, Book{Title: "Dune", Author: "Herbert", Year: 1965, Genre: "SciFi", Read: true}, book)
	})

	t.Run("should pass: year zero and empty genre", func(t *testing.T) {
		book, err := NewBook("Beowulf", "Unknown", 0, "", false)
		require.NoError(t, err)
		assert.Equal(t, 0, book.Year)
		assert.Empty(t, book.Genre)
	})

	t.Run("should pass: invalid utf-8 replaced", func(t *testing.T) {
		book, err := NewBook("Du\xffne", "Her\xc3bert", 1965, "Sci\xfeFi", true)
		require.NoError(t, err)
		assert.Equal(t, "Du\uFFFDne", book.Title)
		assert.Equal(t, "Her\uFFFDbert", book.Author)
		assert.Equal(t, "Sci\uFFFDFi", book.Genre)
	})

	t.Run("should fail: blank title", func(t *testing.T) {
		_, err := NewBook("   ", "Herbert", 1965, "SciFi", true)
		assert.Equal(t, missingFieldError("title"), err)
		assert.EqualError(t, err, "title is required")
	})

	t.Run("should fail: blank author", func(t *testing.T) {
		_, err := NewBook("Dune", "", 1965, "SciFi", true)
		assert.Equal(t, missingFieldError("author"), err)
	})

	t.Run("should fail: negative year", func(t *testing.T) {
		_, err := NewBook("Dune", "Herbert", -1, "SciFi", true)
		assert.ErrorIs(t, err, ErrInvalidYear)
	})
}

// Ensure the listing keeps the insertion order.
func TestLibrary_AllKeepsInsertionOrder(t *testing.T) {
	library := NewLibrary()
	books := testBooks()
	for _, book := range books {
		library.Add(book)
	}

	assert.Equal(t, books, library.All())
	assert.Equal(t, len(books), library.Len())
}

// Ensure All returns a copy the caller cannot use to mutate the library.
func TestLibrary_AllReturnsCopy(t *testing.T) {
	library := NewLibrary(testBooks()...)

	books := library.All()
	books[0].Title = "Changed"

	assert.Equal(t, "Dune", library.All()[0].Title)
	assert.NotNil(t, NewLibrary().All())
}

// Ensure duplicate titles are accepted.
func TestLibrary_AddAllowsDuplicates(t *testing.T) {
	library := NewLibrary()
	library.Add(Book{Title: "Dune", Author: "Herbert", Year: 1965})
	library.Add(Book{Title: "Dune", Author: "Herbert", Year: 1984})

	assert.Equal(t, 2, library.Len())
}

// Ensure removal only takes the first case-insensitive match.
func TestLibrary_Remove(t *testing.T) {
	t.Run("empty library", func(t *testing.T) {
		library := NewLibrary()
		assert.Equal(t, RemoveEmpty, library.Remove("Dune"))
	})

	t.Run("not found", func(t *testing.T) {
		library := NewLibrary(testBooks()...)
		assert.Equal(t, RemoveNotFound, library.Remove("Dun"))
		assert.Equal(t, testBooks(), library.All())
	})

	t.Run("first match only", func(t *testing.T) {
		first := Book{Title: "Dune", Author: "Herbert", Year: 1965}
		second := Book{Title: "DUNE", Author: "Herbert", Year: 1984}
		other := Book{Title: "Emma", Author: "Austen", Year: 1815}
		library := NewLibrary(other, first, second)

		assert.Equal(t, RemoveDone, library.Remove("dune"))
		assert.Equal(t, []Book{other, second}, library.All())

		assert.Equal(t, RemoveDone, library.Remove("dUnE"))
		assert.Equal(t, []Book{other}, library.All())
	})
}

// Ensure search matches substrings on the selected field, ignoring case.
func TestLibrary_Search(t *testing.T) {
	library := NewLibrary(testBooks()...)
	books := testBooks()

	testCases := []struct {
		name     string
		field    SearchField
		term     string
		expected []Book
	}{
		{"title substring", SearchByTitle, "dune", []Book{books[0], books[2]}},
		{"title upper case", SearchByTitle, "MESSIAH", []Book{books[2]}},
		{"title not matching author", SearchByTitle, "austen", []Book{}},
		{"author substring", SearchByAuthor, "aus", []Book{books[1], books[3]}},
		{"author not matching title", SearchByAuthor, "emma", []Book{}},
		{"empty term matches all", SearchByAuthor, "", books},
		{"no match", SearchByTitle, "zzz", []Book{}},
		{"unknown field", SearchField(42), "dune", []Book{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, library.Search(tc.field, tc.term))
		})
	}

	t.Run("empty library", func(t *testing.T) {
		assert.Empty(t, NewLibrary().Search(SearchByTitle, "D"))
	})
}

// Ensure search field names are parsed.
func TestParseSearchField(t *testing.T) {
	field, err := ParseSearchField("Title")
	assert.NoError(t, err)
	assert.Equal(t, SearchByTitle, field)

	field, err = ParseSearchField(" author ")
	assert.NoError(t, err)
	assert.Equal(t, SearchByAuthor, field)
	assert.Equal(t, "author", field.String())

	_, err = ParseSearchField("genre")
	assert.ErrorIs(t, err, ErrUnknownSearchField)
}

// Ensure statistics compute the rounded read percentage.
func TestLibrary_Statistics(t *testing.T) {
	testCases := []struct {
		name     string
		read     []bool
		expected LibraryStats
	}{
		{"empty", nil, LibraryStats{}},
		{"none read", []bool{false, false}, LibraryStats{Total: 2, Read: 0, PercentRead: 0}},
		{"all read", []bool{true, true, true}, LibraryStats{Total: 3, Read: 3, PercentRead: 100}},
		{"half read", []bool{true, false}, LibraryStats{Total: 2, Read: 1, PercentRead: 50}},
		{"one third", []bool{true, false, false}, LibraryStats{Total: 3, Read: 1, PercentRead: 33.3}},
		{"two thirds", []bool{true, true, false}, LibraryStats{Total: 3, Read: 2, PercentRead: 66.7}},
		{"one seventh", []bool{true, false, false, false, false, false, false}, LibraryStats{Total: 7, Read: 1, PercentRead: 14.3}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			library := NewLibrary()
			for _, read := range tc.read {
				library.Add(Book{Title: "Book", Author: "Author", Read: read})
			}
			assert.Equal(t, tc.expected, library.Statistics())
		})
	}
}

// Ensure the two books scenario lists and counts as expected.
func TestLibrary_DuneEmmaScenario(t *testing.T) {
	library := NewLibrary()
	dune, err := NewBook("Dune", "Herbert", 1965, "SciFi", true)
	require.NoError(t, err)
	emma, err := NewBook("Emma", "Austen", 1815, "Romance", false)
	require.NoError(t, err)

	library.Add(dune)
	library.Add(emma)

	assert.Equal(t, []Book{dune, emma}, library.All())
	assert.Equal(t, LibraryStats{Total: 2, Read: 1, PercentRead: 50.0}, library.Statistics())
}

// Ensure an empty library reports not found, no match and zero percent.
func TestLibrary_EmptyScenario(t *testing.T) {
	library := NewLibrary()

	assert.True(t, library.IsEmpty())
	assert.NotEqual(t, RemoveDone, library.Remove("Dune"))
	assert.Empty(t, library.Search(SearchByTitle, "D"))
	assert.Equal(t, 0.0, library.Statistics().PercentRead)
}
