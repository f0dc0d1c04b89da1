package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/muster/internal/domain"
	"github.com/alexanderramin/muster/internal/repository"
	"github.com/google/uuid"
)

type sessionService struct {
	sessions repository.SessionRepo
}

func NewSessionService(sessions repository.SessionRepo) SessionService {
	return &sessionService{sessions: sessions}
}

func (s *sessionService) Create(ctx context.Context, sess *domain.Session) error {
	if sess.Title == "" {
		return fmt.Errorf("session title is required")
	}
	if sess.Date.IsZero() {
		return fmt.Errorf("session date is required")
	}
	if sess.ID == "" {
		sess.ID = uuid.New().String()
	}
	if sess.Maps == nil {
		sess.Maps = []string{}
	}
	sess.CreatedAt = time.Now().UTC()
	return s.sessions.Create(ctx, sess)
}

func (s *sessionService) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	return s.sessions.GetByID(ctx, id)
}

func (s *sessionService) List(ctx context.Context) ([]*domain.Session, error) {
	return s.sessions.List(ctx)
}

func (s *sessionService) Count(ctx context.Context) (int, error) {
	return s.sessions.Count(ctx)
}

func (s *sessionService) Delete(ctx context.Context, id string) error {
	return s.sessions.Delete(ctx, id)
}
