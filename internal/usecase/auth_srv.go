package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"syndl/internal/data/entity"
	"syndl/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// passwordKey is the local store key holding the current admin password.
const passwordKey = "syndl_admin_password"

// AuthService guards the admin console. The credential check is a plain
// string comparison by design; hardening it is explicitly out of scope.
// Session tokens are ephemeral and live only in process memory.
type AuthService interface {
	Login(username, password string) (string, bool)
	Logout(token string)
	IsLoggedIn(token string) bool
	ChangePassword(ctx context.Context, newPassword, confirmPassword string) error
}

type authService struct {
	kv  repository.KVRepository
	log *zap.Logger

	mu         sync.Mutex
	credential entity.Credential
	sessions   map[string]struct{}
}

// NewAuthService seeds the credential from config, then overrides the
// password with the persisted value if one survives from a previous run.
func NewAuthService(kv repository.KVRepository, username, defaultPassword string, log *zap.Logger) AuthService {
	s := &authService{
		kv:  kv,
		log: log.With(zap.String("service", "auth")),
		credential: entity.Credential{
			Username: username,
			Password: defaultPassword,
		},
		sessions: make(map[string]struct{}),
	}

	saved, err := kv.Get(context.Background(), passwordKey)
	switch {
	case err == nil:
		s.credential.Password = saved
	case !errors.Is(err, repository.ErrKeyNotFound):
		s.log.Warn("Failed to load saved admin password, using default", zap.Error(err))
	}

	return s
}

func (s *authService) Login(username, password string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if username != s.credential.Username || password != s.credential.Password {
		s.log.Warn("Admin login rejected", zap.String("username", username))
		return "", false
	}

	token := uuid.NewString()
	s.sessions[token] = struct{}{}

	s.log.Info("Admin logged in")
	return token, true
}

func (s *authService) Logout(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}

func (s *authService) IsLoggedIn(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[token]
	return ok
}

func (s *authService) ChangePassword(ctx context.Context, newPassword, confirmPassword string) error {
	if newPassword != confirmPassword {
		return fmt.Errorf("invalid password: passwords do not match")
	}
	if len(newPassword) < 6 {
		return fmt.Errorf("invalid password: must be at least 6 characters")
	}

	s.mu.Lock()
	s.credential.Password = newPassword
	s.mu.Unlock()

	if err := s.kv.Put(ctx, passwordKey, newPassword); err != nil {
		s.log.Error("Failed to persist admin password", zap.Error(err))
		return fmt.Errorf("save password: %w", err)
	}

	s.log.Info("Admin password changed")
	return nil
}
