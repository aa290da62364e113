package domain

import (
	"errors"
	"time"
)

// Common book validation errors
var (
	ErrEmptyTitle  = errors.New("title cannot be empty")
	ErrEmptyAuthor = errors.New("author cannot be empty")
)

// Book represents a single catalog record.
//
// Two Book rows are considered duplicates only when the full
// (Title, Author, Year, ISBN, Pages) tuple matches; no subset of the
// fields is unique on its own. UpdatedAt doubles as the optimistic
// concurrency token for updates.
type Book struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Year      int       `json:"year"`
	ISBN      string    `json:"isbn"`
	Pages     int       `json:"pages"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewBook creates a new Book with the given fields. The ID is zero until
// the store assigns one on insert. Returns an error if validation fails.
func NewBook(title, author string, year int, isbn string, pages int) (*Book, error) {
	book := &Book{
		Title:     title,
		Author:    author,
		Year:      year,
		ISBN:      isbn,
		Pages:     pages,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := book.Validate(); err != nil {
		return nil, err
	}

	return book, nil
}

// Validate checks if the Book has valid data.
// Title and author are required; year, ISBN and pages carry no further
// constraints beyond their types.
func (b *Book) Validate() error {
	if b.Title == "" {
		return ErrEmptyTitle
	}

	if b.Author == "" {
		return ErrEmptyAuthor
	}

	return nil
}

// SameEdition reports whether two books match on the full identifying
// tuple used by the duplicate check at creation.
func (b *Book) SameEdition(other *Book) bool {
	return b.Title == other.Title &&
		b.Author == other.Author &&
		b.Year == other.Year &&
		b.ISBN == other.ISBN &&
		b.Pages == other.Pages
}
