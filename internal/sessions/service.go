package sessions

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/foliocms/foliocms/internal/tokens"
)

// ErrInvalidSession covers every way a presented credential can fail:
// bad signature, expiry, revocation, or a missing server-side record.
var ErrInvalidSession = errors.New("invalid session")

// Service issues and verifies session credentials backed by a Repository.
type Service struct {
	repo   Repository
	secret []byte
	ttl    time.Duration
}

func NewService(repo Repository, secret []byte, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = 5 * 24 * time.Hour
	}
	return &Service{repo: repo, secret: secret, ttl: ttl}
}

// Issue creates a server-side session record for the operator and returns
// the signed credential to place in the session cookie.
func (s *Service) Issue(ctx context.Context, email string) (string, time.Time, error) {
	id, err := newSessionID()
	if err != nil {
		return "", time.Time{}, err
	}
	now := time.Now().UTC()
	expiresAt := now.Add(s.ttl)
	sess := &Session{ID: id, Email: email, ExpiresAt: expiresAt, CreatedAt: now}
	if err := s.repo.Create(ctx, sess); err != nil {
		return "", time.Time{}, err
	}
	credential, err := tokens.GenerateSessionToken(s.secret, id, email, expiresAt)
	if err != nil {
		return "", time.Time{}, err
	}
	return credential, expiresAt, nil
}

// Verify checks the credential signature and expiry, consults the revocation
// list, and confirms the server-side record still exists. Returns the
// operator email on success.
func (s *Service) Verify(ctx context.Context, credential string) (string, error) {
	id, email, err := tokens.ParseSessionToken(s.secret, credential)
	if err != nil {
		return "", ErrInvalidSession
	}
	revoked, err := IsCredentialRevoked(ctx, credential)
	if err != nil {
		return "", err
	}
	if revoked {
		return "", ErrInvalidSession
	}
	sess, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if sess == nil {
		return "", ErrInvalidSession
	}
	if time.Now().UTC().After(sess.ExpiresAt) {
		_ = s.repo.DeleteByID(ctx, id)
		return "", ErrInvalidSession
	}
	if sess.Email != email {
		return "", ErrInvalidSession
	}
	return sess.Email, nil
}

// Revoke deletes the session record and places the credential on the
// revocation list until its natural expiry.
func (s *Service) Revoke(ctx context.Context, credential string) error {
	id, _, err := tokens.ParseSessionToken(s.secret, credential)
	if err != nil {
		return ErrInvalidSession
	}
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return err
	}
	return RevokeCredential(ctx, credential, s.ttl)
}

func newSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
