package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	Green = lipgloss.Color("#04B575")
	Red   = lipgloss.Color("#FF4672")
	Blue  = lipgloss.Color("#5A56E0")
)

// Styles groups the text styles of the shell. They are bound to the
// output writer so colors are dropped when it is not a terminal.
type Styles struct {
	Heading lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
}

func NewStyles(out io.Writer) *Styles {
	r := lipgloss.NewRenderer(out)
	return &Styles{
		Heading: r.NewStyle().Foreground(Blue).Bold(true),
		Success: r.NewStyle().Foreground(Green),
		Error:   r.NewStyle().Foreground(Red),
	}
}

func (sh *Shell) println(s string) {
	fmt.Fprintln(sh.out, s)
}

func (sh *Shell) displayMenu() {
	sh.println("\n" + sh.styles.Heading.Render("Welcome to your Personal Library Manager!"))
	sh.println("1. Add a book")
	sh.println("2. Remove a book")
	sh.println("3. Search for a book")
	sh.println("4. Display all books")
	sh.println("5. Display statistics")
	sh.println("6. Exit")
}

// FormatBook renders one numbered library row.
func FormatBook(pos int, book Book) string {
	return fmt.Sprintf("%d. %s by %s (%d) - %s - %s", pos, book.Title, book.Author, book.Year, book.Genre, book.Status())
}

func (sh *Shell) printBooks(books []Book) {
	for i, book := range books {
		sh.println(FormatBook(i+1, book))
	}
}
