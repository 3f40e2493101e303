package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/macormexico/sistema-pnc/internal/dto"
)

var ErrNotAuthenticated = errors.New("not signed in: run `pnc login` first")

// Session is the typed result of a successful login.
type Session struct {
	Name  string
	Email string
	Role  string
	Token string
}

// IsAdmin reports whether the cached role is admin.
func (s *Session) IsAdmin() bool {
	return s.Role == "admin"
}

// Authenticator performs the remote login.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*dto.LoginResponse, error)
}

// Guard reads and writes the session kept in a Store.
type Guard struct {
	store *Store
}

func NewGuard(store *Store) *Guard {
	return &Guard{store: store}
}

// Require returns the stored session, or ErrNotAuthenticated when the flag
// is absent.
func (g *Guard) Require() (*Session, error) {
	flag, ok, err := g.store.Get(KeyAuthenticated)
	if err != nil {
		return nil, err
	}
	if !ok || flag != "true" {
		return nil, ErrNotAuthenticated
	}

	var s Session
	for key, dst := range map[string]*string{
		KeyCurrentUser: &s.Name,
		KeyUserEmail:   &s.Email,
		KeyUserRole:    &s.Role,
		KeyToken:       &s.Token,
	} {
		v, _, err := g.store.Get(key)
		if err != nil {
			return nil, err
		}
		*dst = v
	}
	return &s, nil
}

// Login authenticates against the API and stores the flag and display fields.
func (g *Guard) Login(ctx context.Context, auth Authenticator, email, password string) (*Session, error) {
	resp, err := auth.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("login rejected: %s", resp.Message)
	}

	s := &Session{
		Name:  resp.User.Nombre,
		Email: resp.User.Email,
		Role:  resp.User.Rol,
		Token: resp.Token,
	}
	if err := g.store.Set(map[string]string{
		KeyAuthenticated: "true",
		KeyCurrentUser:   s.Name,
		KeyUserEmail:     s.Email,
		KeyUserRole:      s.Role,
		KeyToken:         s.Token,
	}); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return s, nil
}

// End clears the flag and the cached display fields.
func (g *Guard) End() error {
	return g.store.Delete(KeyAuthenticated, KeyCurrentUser, KeyUserEmail, KeyUserRole, KeyToken)
}
