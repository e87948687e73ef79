package main

// Library is an ordered collection of books. Insertion order is kept
// and equal books may coexist. A Library is not safe for concurrent
// use: callers sharing one across goroutines must synchronize access
// (see CatalogService).
type Library struct {
	books []*Book
}

// NewLibrary provides an empty Library.
func NewLibrary() *Library {
	return &Library{books: []*Book{}}
}

// AddBook appends the book at the end of the catalog.
func (l *Library) AddBook(book *Book) error {
	if book == nil {
		return ValidationError("book")
	}
	l.books = append(l.books, book)
	return nil
}

// RemoveBook removes the first entry equal to the given book.
// It returns ErrBookNotFound and leaves the catalog untouched
// if no such entry exists.
func (l *Library) RemoveBook(book *Book) error {
	for i, b := range l.books {
		if b.Equal(book) {
			l.books = append(l.books[:i], l.books[i+1:]...)
			return nil
		}
	}
	return ErrBookNotFound
}

// SearchByTitle returns, in catalog order, every book whose title
// matches the given one regardless of letter case.
func (l *Library) SearchByTitle(title string) []*Book {
	key := fold(title)
	return l.filter(func(b *Book) bool { return fold(b.Title()) == key })
}

// SearchByAuthor returns, in catalog order, every book whose author
// matches the given one regardless of letter case.
func (l *Library) SearchByAuthor(author string) []*Book {
	key := fold(author)
	return l.filter(func(b *Book) bool { return fold(b.Author()) == key })
}

// GetAllBooks returns a copy of the catalog. Changing the returned
// slice has no effect on the Library.
func (l *Library) GetAllBooks() []*Book {
	books := make([]*Book, len(l.books))
	copy(books, l.books)
	return books
}

// Len returns the number of entries in the catalog.
func (l *Library) Len() int {
	return len(l.books)
}

func (l *Library) filter(match func(*Book) bool) []*Book {
	result := []*Book{}
	for _, b := range l.books {
		if match(b) {
			result = append(result, b)
		}
	}
	return result
}
