package contact

import (
	"context"
	"errors"
	"strings"

	"shrimati-be/internal/logger"

	"go.uber.org/zap"
)

var ErrIncompleteMessage = errors.New("name, email and description are required")

type Service interface {
	Submit(ctx context.Context, m *Message) (*Message, error)
	ListAll(ctx context.Context) ([]*Message, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Submit(ctx context.Context, m *Message) (*Message, error) {
	if strings.TrimSpace(m.Name) == "" ||
		strings.TrimSpace(m.Email) == "" ||
		strings.TrimSpace(m.Description) == "" {
		return nil, ErrIncompleteMessage
	}

	saved, err := s.repo.Insert(ctx, m)
	if err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("contact message received",
		zap.Uint("id", saved.ID),
		zap.String("email", saved.Email),
	)
	return saved, nil
}

func (s *service) ListAll(ctx context.Context) ([]*Message, error) {
	return s.repo.ListAll(ctx)
}
