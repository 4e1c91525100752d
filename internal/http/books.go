package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mwalsh/bookshelf/internal/auth"
	"github.com/mwalsh/bookshelf/internal/database"
	"github.com/mwalsh/bookshelf/internal/entities"
)

// BooksController serves the catalogue pages.
type BooksController struct {
	books    BookStore
	auth     *auth.Service
	sessions *auth.SessionManager
}

func NewBooksController(books BookStore, authService *auth.Service, sessions *auth.SessionManager) *BooksController {
	return &BooksController{
		books:    books,
		auth:     authService,
		sessions: sessions,
	}
}

// BooksPage lists every book in the catalogue.
func (bc *BooksController) BooksPage(c *gin.Context) {
	books, err := bc.books.List(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "list books")
		return
	}
	render(c, bc.sessions, http.StatusOK, "books.html", gin.H{"Books": books})
}

// SearchBooks runs a text search over the indexed book fields. An empty
// query lists everything.
func (bc *BooksController) SearchBooks(c *gin.Context) {
	query := strings.TrimSpace(c.PostForm("query"))

	var (
		books []entities.Book
		err   error
	)
	if query == "" {
		books, err = bc.books.List(c.Request.Context())
	} else {
		books, err = bc.books.Search(c.Request.Context(), query)
	}
	if err != nil {
		respondInternalError(c, err, "search books")
		return
	}

	render(c, bc.sessions, http.StatusOK, "books.html", gin.H{
		"Books": books,
		"Query": query,
	})
}

// AboutPage renders the static info page.
func (bc *BooksController) AboutPage(c *gin.Context) {
	render(c, bc.sessions, http.StatusOK, "about.html", nil)
}

// AddBookPage renders the new-book form.
func (bc *BooksController) AddBookPage(c *gin.Context) {
	render(c, bc.sessions, http.StatusOK, "book_add.html", nil)
}

// AddBook creates a catalogue entry owned by the session user.
func (bc *BooksController) AddBook(c *gin.Context) {
	user, ok := currentUser(c, bc.auth, bc.sessions)
	if !ok {
		return
	}

	book := &entities.Book{
		Title:       strings.TrimSpace(c.PostForm("book_title")),
		Author:      strings.TrimSpace(c.PostForm("book_author")),
		Description: c.PostForm("book_description"),
		AddedDate:   time.Now(),
		AddedBy:     user.ID,
	}
	if book.Title == "" {
		render(c, bc.sessions, http.StatusOK, "book_add.html", gin.H{
			"Error": "Title is required",
			"Book":  book,
		})
		return
	}

	if err := bc.books.Insert(c.Request.Context(), book); err != nil {
		respondInternalError(c, err, "add book")
		return
	}

	redirectWithFlash(c, bc.sessions, "/get_books", "Book Successfully Added")
}

// EditBookPage renders the edit form for the book addressed by its
// current title.
func (bc *BooksController) EditBookPage(c *gin.Context) {
	book, ok := bc.bookByTitleParam(c)
	if !ok {
		return
	}
	render(c, bc.sessions, http.StatusOK, "book_edit.html", gin.H{"Book": book})
}

// EditBook replaces the whole document. Books are addressed by their
// current title, so a concurrent rename leaves the form target stale;
// last write wins.
func (bc *BooksController) EditBook(c *gin.Context) {
	user, ok := currentUser(c, bc.auth, bc.sessions)
	if !ok {
		return
	}

	book, ok := bc.bookByTitleParam(c)
	if !ok {
		return
	}

	book.Title = strings.TrimSpace(c.PostForm("book_title"))
	book.Author = strings.TrimSpace(c.PostForm("book_author"))
	book.Description = c.PostForm("book_description")
	book.AddedDate = time.Now()
	book.AddedBy = user.ID

	if book.Title == "" {
		render(c, bc.sessions, http.StatusOK, "book_edit.html", gin.H{
			"Error": "Title is required",
			"Book":  book,
		})
		return
	}

	if err := bc.books.Replace(c.Request.Context(), book); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			redirectWithFlash(c, bc.sessions, "/get_books", "Book not found")
			return
		}
		respondInternalError(c, err, "update book")
		return
	}

	redirectWithFlash(c, bc.sessions, "/get_books", "Update Successful!")
}

// DeleteBook removes a book by identifier. Deleting an already-removed
// book is harmless.
func (bc *BooksController) DeleteBook(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("book_id"))
	if err != nil {
		redirectWithFlash(c, bc.sessions, "/get_books", "Book not found")
		return
	}

	if err := bc.books.Delete(c.Request.Context(), id); err != nil {
		respondInternalError(c, err, "delete book")
		return
	}

	redirectWithFlash(c, bc.sessions, "/get_books", "Book Successfully Deleted")
}

func (bc *BooksController) bookByTitleParam(c *gin.Context) (*entities.Book, bool) {
	title := c.Param("book_title")
	book, err := bc.books.GetByTitle(c.Request.Context(), title)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			redirectWithFlash(c, bc.sessions, "/get_books", "Book not found")
			return nil, false
		}
		respondInternalError(c, err, "load book")
		return nil, false
	}
	return book, true
}
