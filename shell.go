package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

const (
	MenuAddBook = iota + 1
	MenuRemoveBook
	MenuSearchBooks
	MenuDisplayBooks
	MenuDisplayStatistics
	MenuExit
)

// Shell is the line-oriented menu driving the library. The library
// is only accessed from the goroutine calling Run.
type Shell struct {
	logger  *zap.Logger
	in      io.Reader
	out     io.Writer
	lines   <-chan string
	inErrs  <-chan error
	styles  *Styles
	ids     UIDHandler
	service LibraryServiceProvider
	library *Library
}

// NewShell provides a shell reading user input from in and writing to out.
func NewShell(logger *zap.Logger, in io.Reader, out io.Writer, ids UIDHandler, ls LibraryServiceProvider) *Shell {
	return &Shell{
		logger:  logger,
		in:      in,
		out:     out,
		styles:  NewStyles(out),
		ids:     ids,
		service: ls,
	}
}

// LoadLibrary restores the persisted library. A load failure is reported
// to the user and the session starts with an empty library.
func (sh *Shell) LoadLibrary(ctx context.Context) *Library {
	library, err := sh.service.Load(ctx)
	if err != nil {
		sh.println(sh.styles.Error.Render(fmt.Sprintf("Error loading library: %v", err)))
	}
	return library
}

// Run serves the menu until the user exits, the input ends or ctx is done.
// Each of these paths saves the library before returning.
func (sh *Shell) Run(ctx context.Context, library *Library) error {
	sh.library = library
	done := make(chan struct{})
	defer close(done)
	sh.lines, sh.inErrs = readLines(sh.in, done)

	for {
		sh.displayMenu()
		input, err := sh.readLine(ctx, "Enter your choice (1-6): ")
		if err != nil {
			return sh.exitOnError(ctx, sh.logger, err)
		}

		choice, err := strconv.Atoi(strings.TrimSpace(input))
		if err != nil {
			sh.println("Please enter a number between 1 and 6.")
			continue
		}

		logger := sh.logger.With(
			zap.String("op.id", sh.ids.Generate(OperationIDPrefix)),
			zap.Int("op.choice", choice),
		)

		switch choice {
		case MenuAddBook:
			err = sh.addBook(ctx, logger)
		case MenuRemoveBook:
			err = sh.removeBook(ctx, logger)
		case MenuSearchBooks:
			err = sh.searchBooks(ctx, logger)
		case MenuDisplayBooks:
			sh.displayAllBooks()
		case MenuDisplayStatistics:
			sh.displayStatistics()
		case MenuExit:
			return sh.saveAndExit(ctx, logger)
		default:
			sh.println("Invalid choice. Please enter a number between 1 and 6.")
		}

		if err != nil {
			return sh.exitOnError(ctx, logger, err)
		}
	}
}

func (sh *Shell) addBook(ctx context.Context, logger *zap.Logger) error {
	sh.println("\n" + sh.styles.Heading.Render("Add a new book:"))

	title, err := sh.promptRequired(ctx, "Enter the book title: ", "title")
	if err != nil {
		return err
	}
	author, err := sh.promptRequired(ctx, "Enter the author: ", "author")
	if err != nil {
		return err
	}
	year, err := sh.promptYear(ctx, "Enter the publication year: ")
	if err != nil {
		return err
	}
	genre, err := sh.readLine(ctx, "Enter the genre: ")
	if err != nil {
		return err
	}
	read, err := sh.promptYesNo(ctx, "Have you read this book? (yes/no): ")
	if err != nil {
		return err
	}

	book, err := NewBook(title, author, year, genre, read)
	if err != nil {
		logger.Warn("shell: rejected book", zap.Error(err))
		sh.println(sh.styles.Error.Render(fmt.Sprintf("Invalid book: %v", err)))
		return nil
	}

	sh.library.Add(book)
	logger.Info("shell: book added", zap.String("title", book.Title), zap.Int("books", sh.library.Len()))
	sh.println(sh.styles.Success.Render("Book added successfully!"))
	return nil
}

func (sh *Shell) removeBook(ctx context.Context, logger *zap.Logger) error {
	if sh.library.IsEmpty() {
		sh.println("Your library is empty!")
		return nil
	}

	title, err := sh.readLine(ctx, "\nEnter the title of the book to remove: ")
	if err != nil {
		return err
	}

	switch sh.library.Remove(strings.TrimSpace(title)) {
	case RemoveDone:
		logger.Info("shell: book removed", zap.String("title", title), zap.Int("books", sh.library.Len()))
		sh.println(sh.styles.Success.Render("Book removed successfully!"))
	case RemoveEmpty:
		sh.println("Your library is empty!")
	default:
		sh.println("Book not found in your library.")
	}
	return nil
}

func (sh *Shell) searchBooks(ctx context.Context, logger *zap.Logger) error {
	if sh.library.IsEmpty() {
		sh.println("Your library is empty!")
		return nil
	}

	sh.println("\n" + sh.styles.Heading.Render("Search by:"))
	sh.println("1. Title")
	sh.println("2. Author")

	field, err := sh.promptSearchField(ctx, "Enter your choice (1-2): ")
	if err != nil {
		return err
	}
	term, err := sh.readLine(ctx, "Enter the search term: ")
	if err != nil {
		return err
	}

	matches := sh.library.Search(field, strings.TrimSpace(term))
	logger.Debug("shell: search done", zap.Stringer("field", field), zap.Int("matches", len(matches)))
	if len(matches) == 0 {
		sh.println("No matching books found.")
		return nil
	}

	sh.println("\n" + sh.styles.Heading.Render(fmt.Sprintf("Found %d matching book(s):", len(matches))))
	sh.printBooks(matches)
	return nil
}

func (sh *Shell) displayAllBooks() {
	if sh.library.IsEmpty() {
		sh.println("Your library is empty!")
		return
	}

	sh.println("\n" + sh.styles.Heading.Render("Your Library:"))
	sh.printBooks(sh.library.All())
}

func (sh *Shell) displayStatistics() {
	if sh.library.IsEmpty() {
		sh.println("Your library is empty!")
		return
	}

	stats := sh.library.Statistics()
	sh.println("\n" + sh.styles.Heading.Render("Library Statistics:"))
	sh.println(fmt.Sprintf("Total books: %d", stats.Total))
	sh.println(fmt.Sprintf("Percentage read: %.1f%%", stats.PercentRead))
}

// saveAndExit persists the library. A save failure is reported but never fatal.
func (sh *Shell) saveAndExit(ctx context.Context, logger *zap.Logger) error {
	if err := sh.service.Save(context.WithoutCancel(ctx), sh.library); err != nil {
		sh.println(sh.styles.Error.Render(fmt.Sprintf("Error saving library: %v", err)))
	} else {
		sh.println("Library saved to file.")
	}
	logger.Info("shell: session ended", zap.Int("books", sh.library.Len()))
	sh.println("Goodbye!")
	return nil
}

// exitOnError saves the library once the input can no longer be read.
// Read failures other than the end of input are reported to the user.
func (sh *Shell) exitOnError(ctx context.Context, logger *zap.Logger, err error) error {
	if !errors.Is(err, io.EOF) && ctx.Err() == nil {
		logger.Error("shell: input failure", zap.Error(err))
		sh.println(sh.styles.Error.Render(fmt.Sprintf("Error reading input: %v", err)))
	}
	return sh.saveAndExit(ctx, logger.With(zap.String("reason", exitReason(err))))
}

// readLines forwards every input line, whatever its length, until the input
// ends or done is closed. A read failure other than io.EOF is sent on the
// errors channel before the lines channel is closed.
func readLines(in io.Reader, done <-chan struct{}) (<-chan string, <-chan error) {
	lines := make(chan string)
	errs := make(chan error, 1)
	go func() {
		defer close(lines)
		reader := bufio.NewReader(in)
		for {
			line, err := reader.ReadString('\n')
			if len(line) != 0 {
				line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
				select {
				case lines <- line:
				case <-done:
					return
				}
			}
			if err != nil {
				if !errors.Is(err, io.EOF) {
					errs <- err
				}
				return
			}
		}
	}()
	return lines, errs
}

func exitReason(err error) string {
	if errors.Is(err, io.EOF) {
		return "end of input"
	}
	return err.Error()
}
