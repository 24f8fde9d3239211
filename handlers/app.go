package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"nightshift/invoice"
	"nightshift/session"
)

// ErrNoSession is returned while nobody is logged in.
var ErrNoSession = errors.New("not logged in")

// Connector opens a new session, e.g. by logging in to the API.
type Connector func(ctx context.Context) (*session.Session, error)

// App はHTTPハンドラが共有する状態です。
type App struct {
	mu      sync.RWMutex
	sess    *session.Session
	connect Connector

	Printer invoice.Printer
	OrgName string
	Now     func() time.Time
}

func NewApp(connect Connector, printer invoice.Printer, orgName string) *App {
	return &App{connect: connect, Printer: printer, OrgName: orgName, Now: time.Now}
}

// Session returns the current session, connecting first when there is none.
func (a *App) Session(ctx context.Context) (*session.Session, error) {
	a.mu.RLock()
	s := a.sess
	a.mu.RUnlock()
	if s != nil {
		return s, nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.sess != nil {
		return a.sess, nil
	}
	if a.connect == nil {
		return nil, ErrNoSession
	}
	s, err := a.connect(ctx)
	if err != nil {
		return nil, err
	}
	a.sess = s
	return s, nil
}

// SetSession installs an already connected session.
func (a *App) SetSession(s *session.Session) {
	a.mu.Lock()
	a.sess = s
	a.mu.Unlock()
}

// Logout closes the current session. The next request reconnects.
func (a *App) Logout(ctx context.Context) error {
	a.mu.Lock()
	s := a.sess
	a.sess = nil
	a.mu.Unlock()
	if s == nil {
		return nil
	}
	return s.Close(ctx)
}

// withSession resolves the session or answers 401.
func (a *App) withSession(next func(w http.ResponseWriter, r *http.Request, s *session.Session)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := a.Session(r.Context())
		if err != nil {
			log.Printf("WARN: session unavailable: %v", err)
			WriteJSONError(w, "Not logged in", http.StatusUnauthorized)
			return
		}
		next(w, r, s)
	}
}
