package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/goowi/internal/client/api"
	"github.com/dmitrijs2005/goowi/internal/client/models"
	"github.com/dmitrijs2005/goowi/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/goowi/internal/common"
	"github.com/dmitrijs2005/goowi/internal/dbx"
	"github.com/dmitrijs2005/goowi/internal/logging"
)

const lastEmailKey = "lastEmail"

// Store keeps the session and account details in memory and the bearer
// credential in the metadata table.
type Store struct {
	api api.Client
	db  *sql.DB
	log logging.Logger
	now func() time.Time

	mu      sync.Mutex
	token   string
	session *models.Session
	details *models.UserDetails

	lmu       sync.Mutex
	listeners map[int]func(Event)
	nextID    int
}

func NewStore(client api.Client, db *sql.DB, log logging.Logger) *Store {
	if log == nil {
		log = logging.Discard()
	}
	return &Store{
		api:       client,
		db:        db,
		log:       log,
		now:       time.Now,
		listeners: make(map[int]func(Event)),
	}
}

func (s *Store) repo() metadata.Repository {
	return metadata.NewSQLiteRepository(s.db)
}

// Subscribe registers fn for every subsequent event and returns a function
// that removes it. Listeners run synchronously on the goroutine that caused
// the change, after the store lock is released.
func (s *Store) Subscribe(fn func(Event)) func() {
	s.lmu.Lock()
	defer s.lmu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() {
		s.lmu.Lock()
		defer s.lmu.Unlock()
		delete(s.listeners, id)
	}
}

func (s *Store) emit(kind EventKind) {
	e := Event{Kind: kind, Session: s.Session(), Details: s.Details()}

	s.lmu.Lock()
	fns := make([]func(Event), 0, len(s.listeners))
	for i := 0; i < s.nextID; i++ {
		if fn, ok := s.listeners[i]; ok {
			fns = append(fns, fn)
		}
	}
	s.lmu.Unlock()

	for _, fn := range fns {
		fn(e)
	}
}

// Session returns a copy of the current identity, nil when logged out.
func (s *Store) Session() *models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return nil
	}
	c := *s.session
	return &c
}

// Details returns a copy of the account details, nil until fetched.
func (s *Store) Details() *models.UserDetails {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.details == nil {
		return nil
	}
	c := *s.details
	return &c
}

// Token returns the current bearer credential or "". It is the token source
// of the API gateway.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// LastEmail returns the email of the most recent successful login, used to
// prefill the login prompt.
func (s *Store) LastEmail(ctx context.Context) string {
	v, _, err := s.repo().Get(ctx, lastEmailKey)
	if err != nil {
		s.log.Warn(ctx, "read last email", "error", err)
	}
	return v
}

// Restore loads the persisted credential. An undecodable or expired
// credential is deleted and the store stays logged out. A failure to fetch
// details is logged and does not undo the restore.
func (s *Store) Restore(ctx context.Context) error {
	token, ok, err := s.repo().Get(ctx, common.AccessTokenKey)
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	if !ok || token == "" {
		return nil
	}

	sess, err := decodeToken(token, s.now())
	if err != nil {
		s.log.Info(ctx, "discarding stored credential", "reason", err)
		return s.Logout(ctx)
	}

	s.mu.Lock()
	s.token = token
	s.session = sess
	s.mu.Unlock()

	if err := s.RefreshDetails(ctx); err != nil {
		s.log.Warn(ctx, "fetch account details", "error", err)
	}
	return nil
}

// Login authenticates, persists the credential and fetches account details.
// On failure the store is left untouched.
func (s *Store) Login(ctx context.Context, email, password string) error {
	resp, err := s.api.Login(ctx, email, password)
	if err != nil {
		return err
	}
	return s.begin(ctx, resp, email)
}

// Register creates the account and logs it in.
func (s *Store) Register(ctx context.Context, req models.RegisterRequest) error {
	resp, err := s.api.Register(ctx, req)
	if err != nil {
		return err
	}
	return s.begin(ctx, resp, req.Email)
}

func (s *Store) begin(ctx context.Context, resp *models.AuthResponse, email string) error {
	if resp.AccessToken == "" {
		return fmt.Errorf("%w: empty access token", common.ErrInvalidToken)
	}

	err := dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, common.AccessTokenKey, resp.AccessToken); err != nil {
			return err
		}
		return repo.Set(ctx, lastEmailKey, email)
	})
	if err != nil {
		return fmt.Errorf("persist credential: %w", err)
	}

	sess := &models.Session{Email: resp.User.Email, Role: resp.User.Role}
	if claimed, err := decodeToken(resp.AccessToken, s.now()); err == nil {
		sess.ExpiresAt = claimed.ExpiresAt
		if sess.Email == "" {
			sess.Email = claimed.Email
		}
		if sess.Role == "" {
			sess.Role = claimed.Role
		}
	}
	if sess.Email == "" {
		sess.Email = email
	}

	s.mu.Lock()
	s.token = resp.AccessToken
	s.session = sess
	s.details = nil
	s.mu.Unlock()

	if err := s.RefreshDetails(ctx); err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			s.HandleUnauthorized(ctx, resp.AccessToken)
			return err
		}
		s.log.Warn(ctx, "fetch account details", "error", err)
	}
	if s.Token() != resp.AccessToken {
		// torn down while the details were in flight
		return common.ErrorUnauthorized
	}
	s.emit(EventLoggedIn)
	return nil
}

// RefreshDetails refetches the account details.
func (s *Store) RefreshDetails(ctx context.Context) error {
	token := s.Token()
	if token == "" {
		return common.ErrorUnauthorized
	}

	me, err := s.api.Me(ctx)
	if err != nil {
		return err
	}
	d := me.Details()

	s.mu.Lock()
	if s.token != token {
		// logged out or replaced meanwhile
		s.mu.Unlock()
		return nil
	}
	s.details = &d
	s.mu.Unlock()

	s.emit(EventDetailsChanged)
	return nil
}

// UpdateProfileExists flips the onboarding flag locally without refetching.
func (s *Store) UpdateProfileExists(exists bool) {
	s.mu.Lock()
	if s.details == nil {
		s.mu.Unlock()
		return
	}
	s.details.ProfileExists = exists
	s.mu.Unlock()

	s.emit(EventDetailsChanged)
}

func (s *Store) ResendVerificationEmail(ctx context.Context) error {
	return s.api.ResendVerificationEmail(ctx)
}

// Logout forgets the credential locally and in storage.
func (s *Store) Logout(ctx context.Context) error {
	err := s.teardown(ctx)
	s.emit(EventLoggedOut)
	return err
}

// HandleUnauthorized tears the session down after the backend rejected
// token. Reports about a token that is no longer current are ignored, so a
// burst of 401s from one credential causes a single teardown.
func (s *Store) HandleUnauthorized(ctx context.Context, token string) {
	s.mu.Lock()
	if token == "" || s.token != token {
		s.mu.Unlock()
		return
	}
	s.token = ""
	s.session = nil
	s.details = nil
	s.mu.Unlock()

	if err := s.repo().Delete(ctx, common.AccessTokenKey); err != nil {
		s.log.Error(ctx, "delete credential", "error", err)
	}
	s.log.Info(ctx, "session expired")
	s.emit(EventUnauthorized)
}

func (s *Store) teardown(ctx context.Context) error {
	s.mu.Lock()
	s.token = ""
	s.session = nil
	s.details = nil
	s.mu.Unlock()

	if err := s.repo().Delete(ctx, common.AccessTokenKey); err != nil {
		return fmt.Errorf("delete credential: %w", err)
	}
	return nil
}
