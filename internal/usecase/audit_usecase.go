package usecase

import (
	"context"
	"fmt"

	"mealdash/internal/domain/model"
	repo "mealdash/internal/repository"
)

// Read-only view over the audit trail for the back office.
type AuditUsecase struct {
	auditRepo repo.AuditLogRepository
}

func NewAuditUsecase(auditRepo repo.AuditLogRepository) *AuditUsecase {
	return &AuditUsecase{auditRepo: auditRepo}
}

type AuditListOutput struct {
	Logs []model.AuditLog `json:"logs"`
}

func (u *AuditUsecase) List(ctx context.Context, f repo.AuditLogFilter) (AuditListOutput, error) {
	if f.Limit < 1 || f.Limit > 200 {
		f.Limit = 50
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	logs, err := u.auditRepo.List(ctx, f)
	if err != nil {
		return AuditListOutput{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	return AuditListOutput{Logs: logs}, nil
}
