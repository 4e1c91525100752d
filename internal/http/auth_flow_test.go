package http

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_SignsInAndRedirectsToProfile(t *testing.T) {
	ts := newTestServer(t)
	client := ts.newClient()

	resp := ts.postForm(client, "/register", url.Values{
		"username": {"Alice"},
		"password": {"pw"},
	})
	assert.Equal(t, "/profile/alice", location(t, resp))

	resp = ts.get(client, "/profile/alice")
	body := readBody(t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Registration Successful!")
	assert.Contains(t, body, "alice")
}

func TestRegister_DuplicateUsername(t *testing.T) {
	ts := newTestServer(t)
	ts.register(ts.newClient(), "alice", "pw")

	resp := ts.postForm(ts.newClient(), "/register", url.Values{
		"username": {"ALICE"},
		"password": {"other"},
	})
	body := readBody(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Username already exists")
}

func TestLogin_CaseInsensitiveUsername(t *testing.T) {
	ts := newTestServer(t)
	ts.register(ts.newClient(), "alice", "pw")

	client := ts.newClient()
	resp := ts.postForm(client, "/login", url.Values{
		"username": {"ALICE"},
		"password": {"pw"},
	})
	assert.Equal(t, "/get_books", location(t, resp))

	body := readBody(t, ts.get(client, "/get_books"))
	assert.Contains(t, body, "Welcome, alice")
}

func TestLogin_GenericFailureMessage(t *testing.T) {
	ts := newTestServer(t)
	ts.register(ts.newClient(), "alice", "pw")

	// Wrong password and unknown username render the same page.
	wrongPassword := ts.postForm(ts.newClient(), "/login", url.Values{
		"username": {"alice"},
		"password": {"nope"},
	})
	unknownUser := ts.postForm(ts.newClient(), "/login", url.Values{
		"username": {"mallory"},
		"password": {"pw"},
	})

	first := readBody(t, wrongPassword)
	second := readBody(t, unknownUser)
	assert.Equal(t, http.StatusOK, wrongPassword.StatusCode)
	assert.Equal(t, http.StatusOK, unknownUser.StatusCode)
	assert.Contains(t, first, "Incorrect Username and/or Password")
	assert.Contains(t, second, "Incorrect Username and/or Password")
}

func TestLogout_FlashSurvivesSignOut(t *testing.T) {
	ts := newTestServer(t)
	client := ts.newClient()
	ts.register(client, "alice", "pw")

	resp := ts.get(client, "/logout")
	require.Equal(t, "/login", location(t, resp))

	body := readBody(t, ts.get(client, "/login"))
	assert.Contains(t, body, "You have been logged out")

	// The session no longer grants access to authenticated pages.
	resp = ts.get(client, "/book_add")
	assert.Equal(t, "/login", location(t, resp))
}

func TestLoginPage_RedirectsAuthenticatedUsers(t *testing.T) {
	ts := newTestServer(t)
	client := ts.newClient()
	ts.register(client, "alice", "pw")

	resp := ts.get(client, "/login")
	assert.Equal(t, "/", location(t, resp))

	resp = ts.get(client, "/register")
	assert.Equal(t, "/", location(t, resp))
}
