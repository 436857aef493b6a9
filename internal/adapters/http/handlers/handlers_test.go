package handlers

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/wedding-rsvp/internal/domain"
)

const testSessionSecret = "test-session-secret-0123456789abcdef"

// discardLogger returns a logger that discards all output.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func anna() domain.GuestResponse {
	return domain.GuestResponse{
		ID:               1,
		GuestName:        "Anna",
		FoodPreferences:  []string{"nomeat"},
		DrinkPreferences: []string{"wine"},
		CreatedAt:        time.Date(2026, time.January, 1, 10, 0, 0, 0, time.UTC),
	}
}

// browser replays cookies between requests the way a browser would.
type browser struct {
	router  *gin.Engine
	cookies map[string]*http.Cookie
}

func newBrowser(router *gin.Engine) *browser {
	return &browser{router: router, cookies: make(map[string]*http.Cookie)}
}

func (b *browser) do(req *http.Request) *httptest.ResponseRecorder {
	for _, c := range b.cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	b.router.ServeHTTP(w, req)

	for _, c := range w.Result().Cookies() {
		b.cookies[c.Name] = c
	}

	return w
}

func (b *browser) get(target string) *httptest.ResponseRecorder {
	return b.do(httptest.NewRequest(http.MethodGet, target, nil))
}

func (b *browser) postForm(target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return b.do(req)
}
