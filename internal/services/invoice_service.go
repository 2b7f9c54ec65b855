package services

import (
	"context"

	"rentflow-backend/internal/billing"
	"rentflow-backend/internal/models"
	"rentflow-backend/internal/repositories"
	"rentflow-backend/internal/timeutil"
)

type InvoiceService struct {
	Repo      *repositories.InvoiceRepository
	LeaseRepo *repositories.LeaseRepository
}

func NewInvoiceService(repo *repositories.InvoiceRepository, leaseRepo *repositories.LeaseRepository) *InvoiceService {
	return &InvoiceService{Repo: repo, LeaseRepo: leaseRepo}
}

func (s *InvoiceService) CreateInvoice(ctx context.Context, orgID int64, req *models.CreateInvoiceRequest) (*models.InvoiceWithItems, error) {
	if len(req.Items) == 0 {
		return nil, billing.Invalid("items", "at least one line item is required")
	}
	if _, err := s.LeaseRepo.Get(ctx, orgID, req.LeaseID); err != nil {
		return nil, err
	}

	var total int64
	items := make([]models.InvoiceItem, 0, len(req.Items))
	for _, it := range req.Items {
		if it.Description == "" {
			return nil, billing.Invalid("items", "line item description is required")
		}
		if it.Amount == 0 {
			return nil, billing.Invalid("items", "line item amount must not be zero")
		}
		total += it.Amount
		items = append(items, models.InvoiceItem{Description: it.Description, Amount: it.Amount})
	}
	if total <= 0 {
		return nil, billing.Invalid("items", "invoice total must be greater than zero")
	}

	invoice := &models.Invoice{
		OrgID:       orgID,
		LeaseID:     req.LeaseID,
		TotalAmount: total,
		Status:      models.InvoiceStatusDraft,
		IssuedDate:  timeutil.ToMillis(timeutil.Now()),
		Notes:       req.Notes,
	}
	if err := s.Repo.CreateWithItems(ctx, invoice, items); err != nil {
		return nil, err
	}
	return &models.InvoiceWithItems{Invoice: *invoice, Items: items}, nil
}

func (s *InvoiceService) GetInvoice(ctx context.Context, orgID, id int64) (*models.InvoiceWithItems, error) {
	return s.Repo.Get(ctx, orgID, id)
}

func (s *InvoiceService) ListInvoices(ctx context.Context, orgID, leaseID int64, status string) ([]*models.Invoice, error) {
	return s.Repo.List(ctx, orgID, leaseID, status)
}

// invoiceTransitions lists the legal forward moves.
var invoiceTransitions = map[string][]string{
	models.InvoiceStatusDraft:  {models.InvoiceStatusIssued, models.InvoiceStatusVoid},
	models.InvoiceStatusIssued: {models.InvoiceStatusPaid, models.InvoiceStatusVoid},
}

func (s *InvoiceService) TransitionStatus(ctx context.Context, orgID, id int64, to string) (*models.InvoiceWithItems, error) {
	invoice, err := s.Repo.Get(ctx, orgID, id)
	if err != nil {
		return nil, err
	}

	allowed := false
	for _, next := range invoiceTransitions[invoice.Status] {
		if next == to {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, billing.Invalid("status", "cannot move invoice from "+invoice.Status+" to "+to)
	}

	if err := s.Repo.UpdateStatus(ctx, orgID, id, to); err != nil {
		return nil, err
	}
	return s.Repo.Get(ctx, orgID, id)
}
