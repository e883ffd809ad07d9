package activity

import (
	"context"
	"strings"

	"kasmoni-app-go/pkg/logger"
	"github.com/google/uuid"
)

const defaultListLimit = 50

type Service struct {
	repo Repository
	log  logger.Logger
}

func NewService(repo Repository, log logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Record writes an audit entry. Recording is best-effort: a failed write is
// logged but never fails the action being recorded.
func (s *Service) Record(ctx context.Context, input RecordInput) {
	entry := Entry{
		ID:         uuid.NewString(),
		Actor:      strings.TrimSpace(input.Actor),
		Action:     input.Action,
		EntityType: input.EntityType,
		EntityID:   input.EntityID,
		Detail:     input.Detail,
	}
	if entry.Actor == "" {
		entry.Actor = "system"
	}

	if err := s.repo.Create(ctx, &entry); err != nil {
		s.log.InternalError("activity: record failed", err, "action", input.Action, "entity_type", input.EntityType)
	}
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Entry, int64, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	return s.repo.List(ctx, filter)
}
