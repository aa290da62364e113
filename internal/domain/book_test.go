package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBook(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		title   string
		author  string
		wantErr error
	}{
		{
			name:    "valid book",
			title:   "Dune",
			author:  "Herbert",
			wantErr: nil,
		},
		{
			name:    "empty title",
			title:   "",
			author:  "Herbert",
			wantErr: ErrEmptyTitle,
		},
		{
			name:    "empty author",
			title:   "Dune",
			author:  "",
			wantErr: ErrEmptyAuthor,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			book, err := NewBook(tt.title, tt.author, 1965, "9780441013593", 412)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, book)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.title, book.Title)
			assert.Equal(t, tt.author, book.Author)
			assert.Equal(t, 1965, book.Year)
			assert.Equal(t, "9780441013593", book.ISBN)
			assert.Equal(t, 412, book.Pages)
			assert.Zero(t, book.ID, "ID is store-assigned")
		})
	}
}

func TestBookSameEdition(t *testing.T) {
	t.Parallel()

	base := &Book{Title: "Dune", Author: "Herbert", Year: 1965, ISBN: "X", Pages: 412}

	same := *base
	same.ID = 42 // identity does not participate in the duplicate check
	assert.True(t, base.SameEdition(&same))

	tests := []struct {
		name   string
		mutate func(b *Book)
	}{
		{"different title", func(b *Book) { b.Title = "Dune Messiah" }},
		{"different author", func(b *Book) { b.Author = "Asimov" }},
		{"different year", func(b *Book) { b.Year = 1969 }},
		{"different isbn", func(b *Book) { b.ISBN = "Y" }},
		{"different pages", func(b *Book) { b.Pages = 256 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			other := *base
			tt.mutate(&other)
			assert.False(t, base.SameEdition(&other))
		})
	}
}
