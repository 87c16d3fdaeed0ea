package services

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"sweetnirwana/internal/domain"
	"sweetnirwana/internal/repos"
)

var ErrBadCreds = errors.New("invalid email or password")

// AuthService is the mocked authentication flow: a fixed account picker
// backed by seeded users. Authorization is handed out as an explicit
// Capability, never read from ambient state.
type AuthService struct {
	Users *repos.UserRepo
}

func (s *AuthService) Login(sid, email, password string) (*domain.User, error) {
	u, err := s.Users.ByEmail(email)
	if err != nil {
		return nil, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, ErrBadCreds
	}
	if err := s.Users.BindSession(sid, u.ID); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *AuthService) Logout(sid string) error {
	return s.Users.UnbindSession(sid)
}

func (s *AuthService) CurrentUser(sid string) (*domain.User, error) {
	return s.Users.SessionUser(sid)
}

// Accounts lists the hard-coded picker accounts (without hashes).
func (s *AuthService) Accounts() ([]domain.User, error) {
	users, err := s.Users.ListAccounts()
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].Hash = ""
	}
	return users, nil
}
