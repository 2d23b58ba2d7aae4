package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stockroom/internal/core/domain"
	"stockroom/internal/core/ports"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type sessionService struct {
	verifier   ports.TokenVerifier
	roles      ports.RoleRepository
	sessions   ports.SessionRepository
	sessionTTL time.Duration
	metrics    ports.MetricsRecorder
	logger     *zap.SugaredLogger
}

func NewSessionService(
	verifier ports.TokenVerifier,
	roles ports.RoleRepository,
	sessions ports.SessionRepository,
	sessionTTL time.Duration,
	metrics ports.MetricsRecorder, // can be nil
	logger *zap.SugaredLogger,
) ports.SessionService {
	return &sessionService{
		verifier:   verifier,
		roles:      roles,
		sessions:   sessions,
		sessionTTL: sessionTTL,
		metrics:    metrics,
		logger:     logger,
	}
}

func (s *sessionService) Login(ctx context.Context, idToken string) (string, *domain.Identity, error) {
	claims, err := s.verifier.Verify(ctx, idToken)
	if err != nil {
		return "", nil, domain.ErrInvalidToken
	}

	role, err := s.ResolveRole(ctx, claims.UID)
	if err != nil {
		return "", nil, fmt.Errorf("failed to resolve role: %w", err)
	}

	identity := &domain.Identity{
		UID:   claims.UID,
		Email: claims.Email,
		Role:  role,
	}

	sid := uuid.NewString()
	if err := s.sessions.Set(ctx, sid, identity, s.sessionTTL); err != nil {
		return "", nil, fmt.Errorf("failed to store session: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordSessionCreated()
	}
	s.logger.Infow("session created", "uid", identity.UID, "role", identity.Role)
	return sid, identity, nil
}

func (s *sessionService) Resolve(ctx context.Context, sid string) (*domain.Identity, error) {
	return s.sessions.Get(ctx, sid)
}

func (s *sessionService) Logout(ctx context.Context, sid string) error {
	return s.sessions.Delete(ctx, sid)
}

// ResolveRole looks up the persisted role for uid. An unknown uid is
// initialized to viewer, which makes the lookup a write on first touch.
func (s *sessionService) ResolveRole(ctx context.Context, uid domain.UserID) (domain.Role, error) {
	role, err := s.roles.Get(ctx, uid)
	if err == nil {
		return role, nil
	}
	if !errors.Is(err, domain.ErrRoleNotFound) {
		return "", err
	}

	if err := s.roles.Set(ctx, uid, domain.RoleViewer); err != nil {
		return "", fmt.Errorf("failed to persist default role: %w", err)
	}
	s.logger.Debugw("initialized default role", "uid", uid, "role", domain.RoleViewer)
	return domain.RoleViewer, nil
}
