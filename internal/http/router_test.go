package http

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/alexedwards/scs/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/mwalsh/bookshelf/internal/auth"
	"github.com/mwalsh/bookshelf/internal/config"
	"github.com/mwalsh/bookshelf/internal/database"
	"github.com/mwalsh/bookshelf/internal/entities"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeBookStore is an in-memory BookStore. Search approximates the Mongo
// text index with a case-insensitive substring match.
type fakeBookStore struct {
	mu    sync.Mutex
	books []entities.Book
}

func newFakeBookStore() *fakeBookStore {
	return &fakeBookStore{}
}

func (f *fakeBookStore) List(_ context.Context) ([]entities.Book, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]entities.Book, len(f.books))
	copy(out, f.books)
	return out, nil
}

func (f *fakeBookStore) Search(_ context.Context, query string) ([]entities.Book, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	needle := strings.ToLower(query)
	var out []entities.Book
	for _, b := range f.books {
		haystack := strings.ToLower(b.Title + " " + b.Author + " " + b.Description)
		if strings.Contains(haystack, needle) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookStore) GetByTitle(_ context.Context, title string) (*entities.Book, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.books {
		if b.Title == title {
			book := b
			return &book, nil
		}
	}
	return nil, database.ErrNotFound
}

func (f *fakeBookStore) Insert(_ context.Context, book *entities.Book) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	book.ID = primitive.NewObjectID()
	f.books = append(f.books, *book)
	return nil
}

func (f *fakeBookStore) Replace(_ context.Context, book *entities.Book) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, b := range f.books {
		if b.ID == book.ID {
			f.books[i] = *book
			return nil
		}
	}
	return database.ErrNotFound
}

func (f *fakeBookStore) Delete(_ context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, b := range f.books {
		if b.ID == id {
			f.books = append(f.books[:i], f.books[i+1:]...)
			return nil
		}
	}
	return nil
}

// fakeUserStore is an in-memory auth.UserStore.
type fakeUserStore struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]entities.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[primitive.ObjectID]entities.User)}
}

func (f *fakeUserStore) GetByUsername(_ context.Context, username string) (*entities.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username {
			user := u
			return &user, nil
		}
	}
	return nil, database.ErrNotFound
}

func (f *fakeUserStore) GetByID(_ context.Context, id primitive.ObjectID) (*entities.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		user := u
		return &user, nil
	}
	return nil, database.ErrNotFound
}

func (f *fakeUserStore) Insert(_ context.Context, user *entities.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == user.Username {
			return database.ErrDuplicate
		}
	}
	user.ID = primitive.NewObjectID()
	f.users[user.ID] = *user
	return nil
}

func (f *fakeUserStore) Replace(_ context.Context, user *entities.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, u := range f.users {
		if id != user.ID && u.Username == user.Username {
			return database.ErrDuplicate
		}
	}
	if _, ok := f.users[user.ID]; !ok {
		return database.ErrNotFound
	}
	f.users[user.ID] = *user
	return nil
}

func (f *fakeUserStore) Delete(_ context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.users, id)
	return nil
}

// testServer runs the full router over fake stores. Most tests run
// without CSRF so their form posts need no token plumbing; csrf_test.go
// covers the protected path.
type testServer struct {
	t      *testing.T
	server *httptest.Server
	books  *fakeBookStore
	users  *fakeUserStore
}

func newTestServer(t *testing.T) *testServer {
	return newTestServerWithCSRF(t, nil)
}

func newTestServerWithCSRF(t *testing.T, csrfSecret []byte) *testServer {
	t.Helper()

	books := newFakeBookStore()
	users := newFakeUserStore()
	svc := auth.NewService(users, config.Auth{BcryptCost: bcrypt.MinCost})
	sm := &auth.SessionManager{SessionManager: scs.New()}

	router := NewRouter(RouterConfig{
		Books:          books,
		AuthService:    svc,
		SessionManager: sm,
		AuthMiddleware: auth.NewMiddleware(sm),
		TemplatesPath:  "../../templates",
		CSRFSecret:     csrfSecret,
		Version:        "test",
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &testServer{t: t, server: server, books: books, users: users}
}

// newClient returns a client with its own cookie jar, i.e. its own
// browser session. Redirects are surfaced, not followed.
func (ts *testServer) newClient() *http.Client {
	ts.t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(ts.t, err)
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func (ts *testServer) get(client *http.Client, path string) *http.Response {
	ts.t.Helper()
	resp, err := client.Get(ts.server.URL + path)
	require.NoError(ts.t, err)
	return resp
}

func (ts *testServer) postForm(client *http.Client, path string, form url.Values) *http.Response {
	ts.t.Helper()
	resp, err := client.PostForm(ts.server.URL+path, form)
	require.NoError(ts.t, err)
	return resp
}

// register creates an account, which also signs the client in.
func (ts *testServer) register(client *http.Client, username, password string) {
	ts.t.Helper()
	resp := ts.postForm(client, "/register", url.Values{
		"username": {username},
		"password": {password},
	})
	defer resp.Body.Close()
	require.Equal(ts.t, http.StatusFound, resp.StatusCode)
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func location(t *testing.T, resp *http.Response) string {
	t.Helper()
	resp.Body.Close()
	loc := resp.Header.Get("Location")
	require.NotEmpty(t, loc)
	return loc
}
