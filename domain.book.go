package main

import (
	"strings"
	"unicode"

	"github.com/cespare/xxhash/v2"
)

// Book represents a catalog entry. It is immutable once built with
// NewBook so the same instance can be shared between the caller and
// the Library. Two books are the same entry when their titles and
// authors match regardless of letter case.
type Book struct {
	title  string
	author string
}

// bookJSON is the wire representation of a Book.
type bookJSON struct {
	Title  string `json:"title"`
	Author string `json:"author"`
}

// NewBook validates the title and author and provides a ready to use Book.
// Only emptiness is checked: whitespace-only values are kept as-is.
func NewBook(title, author string) (*Book, error) {
	if len(title) == 0 {
		return nil, ValidationError("title")
	}
	if len(author) == 0 {
		return nil, ValidationError("author")
	}
	return &Book{title: title, author: author}, nil
}

// Title returns the title of the book.
func (b *Book) Title() string {
	return b.title
}

// Author returns the author of the book.
func (b *Book) Author() string {
	return b.author
}

// Equal reports whether both books share the same title and author
// under case folding. A nil book is never equal to anything.
func (b *Book) Equal(other *Book) bool {
	if b == nil || other == nil {
		return false
	}
	if b == other {
		return true
	}
	return b.Key() == other.Key()
}

// Key returns the catalog key of the book: the folded title and the
// folded author joined by a NUL byte so that ("ab", "c") and ("a", "bc")
// never share a key.
func (b *Book) Key() string {
	return fold(b.title) + "\x00" + fold(b.author)
}

// Hash derives a 64 bits hash from the catalog key for callers keying
// books in hash-based structures. Equal books always have the same hash.
func (b *Book) Hash() uint64 {
	return xxhash.Sum64String(b.Key())
}

// MarshalJSON implements json.Marshaler.
func (b Book) MarshalJSON() ([]byte, error) {
	return json.Marshal(bookJSON{Title: b.title, Author: b.author})
}

// UnmarshalJSON implements json.Unmarshaler. The decoded fields go
// through the same validation as NewBook.
func (b *Book) UnmarshalJSON(data []byte) error {
	var raw bookJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	book, err := NewBook(raw.Title, raw.Author)
	if err != nil {
		return err
	}
	*b = *book
	return nil
}

// fold maps each rune to its lower case form after upper casing it.
// It works rune by rune so a rune never matches a sequence of runes:
// "Straße" and "STRASSE" stay different.
func fold(s string) string {
	return strings.Map(func(r rune) rune {
		return unicode.ToLower(unicode.ToUpper(r))
	}, s)
}
