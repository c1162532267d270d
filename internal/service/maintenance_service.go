package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/meiway/mailplus-crm/internal/repository"
)

// MaintenanceService holds corrective data operations that sit outside the
// normal CRUD surface.
type MaintenanceService struct {
	contacts repository.ContactRepository
	logger   *zap.Logger
}

// ReassignResult reports both outcomes of the dual-path reassignment.
type ReassignResult struct {
	ReassignedRows int64
	PrimaryError   string
	FallbackRows   int64
	FallbackError  string
}

// Succeeded reports whether at least one path applied the reassignment.
func (r ReassignResult) Succeeded() bool {
	if r.PrimaryError == "" {
		return true
	}
	return r.FallbackError == ""
}

// NewMaintenanceService constructs the service.
func NewMaintenanceService(contacts repository.ContactRepository, logger *zap.Logger) *MaintenanceService {
	return &MaintenanceService{contacts: contacts, logger: logger}
}

// ReassignOwnership moves all contact rows to the caller. The primary path
// is a single bulk update; when it fails, a secondary corrective update over
// foreign-owned rows is attempted. Both outcomes are reported to the caller
// rather than suppressed.
func (s *MaintenanceService) ReassignOwnership(ctx context.Context, ownerID string) (*ReassignResult, error) {
	result := &ReassignResult{}

	rows, err := s.contacts.ReassignAll(ctx, ownerID)
	if err == nil {
		result.ReassignedRows = rows
		return result, nil
	}
	result.PrimaryError = err.Error()
	s.logger.Warn("bulk reassignment failed, attempting per-owner fallback", zap.Error(err))

	fallbackRows, fallbackErr := s.contacts.ReassignForeign(ctx, ownerID)
	if fallbackErr != nil {
		result.FallbackError = fallbackErr.Error()
		return result, fallbackErr
	}
	result.FallbackRows = fallbackRows
	return result, nil
}
