package service

import (
	"context"

	"fraudconfig/internal/dto/resp"
	"fraudconfig/internal/repository"
)

// AuditService serves the read-only audit trail.
type AuditService struct {
	auditRepo repository.AuditInterface
}

func NewAuditService(auditRepo repository.AuditInterface) *AuditService {
	return &AuditService{auditRepo: auditRepo}
}

func (s *AuditService) List(ctx context.Context, entity string, offset, limit int) (*resp.AuditLogPage, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	audits, total, err := s.auditRepo.List(ctx, entity, offset, limit)
	if err != nil {
		return nil, err
	}
	return &resp.AuditLogPage{
		Items: auditItems(audits),
		Total: total,
	}, nil
}
