package services

import (
	"context"

	"rentflow-backend/internal/billing"
	"rentflow-backend/internal/models"
	"rentflow-backend/internal/repositories"
)

type LeaseService struct {
	Repo *repositories.LeaseRepository
}

func NewLeaseService(repo *repositories.LeaseRepository) *LeaseService {
	return &LeaseService{Repo: repo}
}

func (s *LeaseService) CreateLease(ctx context.Context, orgID int64, req *models.CreateLeaseRequest) (*models.Lease, error) {
	if req.TenantName == "" {
		return nil, billing.Invalid("tenant_name", "is required")
	}
	if req.PropertyName == "" {
		return nil, billing.Invalid("property_name", "is required")
	}
	if req.MonthlyRent <= 0 {
		return nil, billing.Invalid("monthly_rent", "must be greater than zero")
	}
	if req.StartDate <= 0 {
		return nil, billing.Invalid("start_date", "is required")
	}
	if req.EndDate != nil && *req.EndDate < req.StartDate {
		return nil, billing.Invalid("end_date", "must not be before start_date")
	}

	lease := &models.Lease{
		OrgID:        orgID,
		PropertyName: req.PropertyName,
		UnitName:     req.UnitName,
		TenantName:   req.TenantName,
		TenantEmail:  req.TenantEmail,
		MonthlyRent:  req.MonthlyRent,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Status:       models.LeaseStatusActive,
	}
	if err := s.Repo.Create(ctx, lease); err != nil {
		return nil, err
	}
	return lease, nil
}

func (s *LeaseService) GetLease(ctx context.Context, orgID, id int64) (*models.Lease, error) {
	return s.Repo.Get(ctx, orgID, id)
}

func (s *LeaseService) ListLeases(ctx context.Context, orgID int64) ([]*models.Lease, error) {
	return s.Repo.List(ctx, orgID)
}

func (s *LeaseService) UpdateLease(ctx context.Context, orgID, id int64, req *models.UpdateLeaseRequest) (*models.Lease, error) {
	lease, err := s.Repo.Get(ctx, orgID, id)
	if err != nil {
		return nil, err
	}

	if req.PropertyName != "" {
		lease.PropertyName = req.PropertyName
	}
	if req.UnitName != "" {
		lease.UnitName = req.UnitName
	}
	if req.TenantName != "" {
		lease.TenantName = req.TenantName
	}
	if req.TenantEmail != "" {
		lease.TenantEmail = req.TenantEmail
	}
	if req.MonthlyRent > 0 {
		lease.MonthlyRent = req.MonthlyRent
	}
	if req.EndDate != nil {
		if *req.EndDate < lease.StartDate {
			return nil, billing.Invalid("end_date", "must not be before start_date")
		}
		lease.EndDate = req.EndDate
	}
	if req.Status != "" {
		switch req.Status {
		case models.LeaseStatusActive, models.LeaseStatusEnded, models.LeaseStatusTerminated:
			lease.Status = req.Status
		default:
			return nil, billing.Invalid("status", "must be active, ended, or terminated")
		}
	}

	if err := s.Repo.Update(ctx, lease); err != nil {
		return nil, err
	}
	return lease, nil
}
