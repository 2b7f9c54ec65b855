package services

import (
	"context"

	"rentflow-backend/internal/billing"
	"rentflow-backend/internal/models"
	"rentflow-backend/internal/repositories"
)

type MaintenanceService struct {
	Repo       *repositories.MaintenanceRequestRepository
	LeaseRepo  *repositories.LeaseRepository
	VendorRepo *repositories.VendorRepository
}

func NewMaintenanceService(
	repo *repositories.MaintenanceRequestRepository,
	leaseRepo *repositories.LeaseRepository,
	vendorRepo *repositories.VendorRepository,
) *MaintenanceService {
	return &MaintenanceService{
		Repo:       repo,
		LeaseRepo:  leaseRepo,
		VendorRepo: vendorRepo,
	}
}

func (s *MaintenanceService) CreateRequest(ctx context.Context, orgID int64, req *models.CreateMaintenanceRequestRequest) (*models.MaintenanceRequest, error) {
	if req.Title == "" {
		return nil, billing.Invalid("title", "is required")
	}
	priority := req.Priority
	if priority == "" {
		priority = models.MaintenancePriorityNormal
	}
	switch priority {
	case models.MaintenancePriorityLow, models.MaintenancePriorityNormal, models.MaintenancePriorityUrgent:
	default:
		return nil, billing.Invalid("priority", "must be low, normal, or urgent")
	}
	if _, err := s.LeaseRepo.Get(ctx, orgID, req.LeaseID); err != nil {
		return nil, err
	}

	m := &models.MaintenanceRequest{
		OrgID:       orgID,
		LeaseID:     req.LeaseID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    priority,
		Status:      models.MaintenanceStatusOpen,
	}
	if err := s.Repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *MaintenanceService) GetRequest(ctx context.Context, orgID, id int64) (*models.MaintenanceRequest, error) {
	return s.Repo.Get(ctx, orgID, id)
}

func (s *MaintenanceService) ListRequests(ctx context.Context, orgID, leaseID int64, status string) ([]*models.MaintenanceRequest, error) {
	return s.Repo.List(ctx, orgID, leaseID, status)
}

func (s *MaintenanceService) UpdateRequest(ctx context.Context, orgID, id int64, req *models.UpdateMaintenanceRequestRequest) (*models.MaintenanceRequest, error) {
	m, err := s.Repo.Get(ctx, orgID, id)
	if err != nil {
		return nil, err
	}

	if req.VendorID != nil {
		vendor, err := s.VendorRepo.Get(ctx, orgID, *req.VendorID)
		if err != nil {
			return nil, err
		}
		if !vendor.IsActive {
			return nil, billing.Invalid("vendor_id", "vendor is inactive")
		}
		m.VendorID = req.VendorID
		if m.Status == models.MaintenanceStatusOpen {
			m.Status = models.MaintenanceStatusAssigned
		}
	}
	if req.Priority != "" {
		switch req.Priority {
		case models.MaintenancePriorityLow, models.MaintenancePriorityNormal, models.MaintenancePriorityUrgent:
			m.Priority = req.Priority
		default:
			return nil, billing.Invalid("priority", "must be low, normal, or urgent")
		}
	}
	if req.Status != "" {
		switch req.Status {
		case models.MaintenanceStatusOpen, models.MaintenanceStatusAssigned,
			models.MaintenanceStatusInProgress, models.MaintenanceStatusCompleted,
			models.MaintenanceStatusCancelled:
			m.Status = req.Status
		default:
			return nil, billing.Invalid("status", "unknown status")
		}
	}
	if req.Cost != nil {
		if *req.Cost < 0 {
			return nil, billing.Invalid("cost", "must not be negative")
		}
		m.Cost = req.Cost
	}

	if err := s.Repo.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *MaintenanceService) CreateVendor(ctx context.Context, orgID int64, req *models.CreateVendorRequest) (*models.Vendor, error) {
	if req.Name == "" {
		return nil, billing.Invalid("name", "is required")
	}
	v := &models.Vendor{
		OrgID: orgID,
		Name:  req.Name,
		Trade: req.Trade,
		Phone: req.Phone,
		Email: req.Email,
	}
	if err := s.VendorRepo.Create(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *MaintenanceService) ListVendors(ctx context.Context, orgID int64, activeOnly bool) ([]*models.Vendor, error) {
	return s.VendorRepo.List(ctx, orgID, activeOnly)
}

func (s *MaintenanceService) SetVendorActive(ctx context.Context, orgID, id int64, active bool) error {
	return s.VendorRepo.SetActive(ctx, orgID, id, active)
}
