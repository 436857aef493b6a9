package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gorilla/sessions"

	"github.com/jsamuelsen/wedding-rsvp/internal/domain"
)

// Session value keys.
const (
	sessionKeyDraft  = "draft"
	sessionKeyThanks = "thanks"
	sessionKeyError  = "error"
)

// maxSessionBytes bounds one encoded session file. A draft with a long
// allergy note full of escaped characters stays far below it.
const maxSessionBytes = 64 << 10

// SessionStoreConfig configures where form drafts are kept.
type SessionStoreConfig struct {
	// Dir holds one file per visitor. Defaults to a directory under the
	// system temp dir.
	Dir    string
	Secret string
	MaxAge time.Duration
	Secure bool
}

// NewSessionStore returns the store that keeps form drafts on disk. The
// cookie only carries the signed session id, so the size of a draft is not
// limited by what a browser accepts in a cookie.
func NewSessionStore(cfg SessionStoreConfig) (*sessions.FilesystemStore, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "wedding-rsvp-sessions")
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("creating session dir: %w", err)
	}

	store := sessions.NewFilesystemStore(dir, []byte(cfg.Secret))
	store.MaxLength(maxSessionBytes)
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	// Sets the cookie lifetime and the signature expiry together.
	store.MaxAge(int(cfg.MaxAge.Seconds()))

	return store, nil
}

// loadDraft restores the form kept in the session. A missing or unreadable
// draft yields an empty form.
func loadDraft(s *sessions.Session) *domain.RSVPForm {
	raw, ok := s.Values[sessionKeyDraft].(string)
	if !ok || raw == "" {
		return domain.NewRSVPForm()
	}

	var d domain.FormDraft
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		return domain.NewRSVPForm()
	}

	return domain.RestoreForm(d)
}

func saveDraft(s *sessions.Session, f *domain.RSVPForm) error {
	raw, err := json.Marshal(f.Draft())
	if err != nil {
		return err
	}

	s.Values[sessionKeyDraft] = string(raw)

	return nil
}

// popFlash returns and removes the first flash stored under key.
func popFlash(s *sessions.Session, key string) string {
	for _, v := range s.Flashes(key) {
		if str, ok := v.(string); ok {
			return str
		}
	}

	return ""
}
