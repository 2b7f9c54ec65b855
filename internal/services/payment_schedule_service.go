package services

import (
	"context"
	"time"

	"rentflow-backend/internal/billing"
	"rentflow-backend/internal/models"
	"rentflow-backend/internal/repositories"
	"rentflow-backend/internal/timeutil"
)

type PaymentScheduleService struct {
	Repo        *repositories.PaymentScheduleRepository
	LeaseRepo   *repositories.LeaseRepository
	ChangeRepo  *repositories.ScheduleChangeRequestRepository
}

func NewPaymentScheduleService(
	repo *repositories.PaymentScheduleRepository,
	leaseRepo *repositories.LeaseRepository,
	changeRepo *repositories.ScheduleChangeRequestRepository,
) *PaymentScheduleService {
	return &PaymentScheduleService{
		Repo:       repo,
		LeaseRepo:  leaseRepo,
		ChangeRepo: changeRepo,
	}
}

func (s *PaymentScheduleService) CreateSchedule(ctx context.Context, orgID int64, req *models.CreateScheduleRequest) (*models.PaymentSchedule, error) {
	if _, err := s.LeaseRepo.Get(ctx, orgID, req.LeaseID); err != nil {
		return nil, err
	}

	var endDate *time.Time
	if req.EndDate != nil {
		t := timeutil.FromMillis(*req.EndDate)
		endDate = &t
	}
	schedule, err := billing.NewSchedule(billing.ScheduleParams{
		OrgID:      orgID,
		LeaseID:    req.LeaseID,
		RentAmount: req.RentAmount,
		DueDay:     req.DueDay,
		StartDate:  timeutil.FromMillis(req.StartDate),
		EndDate:    endDate,
	})
	if err != nil {
		return nil, err
	}

	if err := s.Repo.Create(ctx, schedule); err != nil {
		return nil, err
	}
	return schedule, nil
}

// CreateWeeklyPlan splits a monthly rent into 4 installment schedules and
// stores them atomically. The installments always sum to the monthly rent.
func (s *PaymentScheduleService) CreateWeeklyPlan(ctx context.Context, orgID int64, req *models.WeeklyPlanRequest) ([]*models.PaymentSchedule, error) {
	if _, err := s.LeaseRepo.Get(ctx, orgID, req.LeaseID); err != nil {
		return nil, err
	}

	var start time.Time
	if req.StartDate != nil {
		start = timeutil.FromMillis(*req.StartDate)
	}
	plan, err := billing.WeeklyPlan(orgID, req.LeaseID, req.MonthlyRent, start, timeutil.Now())
	if err != nil {
		return nil, err
	}

	if err := s.Repo.CreateBatch(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *PaymentScheduleService) GetSchedule(ctx context.Context, orgID, id int64) (*models.PaymentSchedule, error) {
	return s.Repo.Get(ctx, orgID, id)
}

func (s *PaymentScheduleService) ListByLease(ctx context.Context, orgID, leaseID int64) ([]*models.PaymentSchedule, error) {
	return s.Repo.ListByLease(ctx, orgID, leaseID)
}

func (s *PaymentScheduleService) DeactivateSchedule(ctx context.Context, orgID, id int64) error {
	return s.Repo.Deactivate(ctx, orgID, id)
}

func (s *PaymentScheduleService) CreateChangeRequest(ctx context.Context, orgID int64, req *models.CreateChangeRequestRequest) (*models.ScheduleChangeRequest, error) {
	if req.RequestedDueDay == nil && req.RequestedStartDate == nil {
		return nil, billing.Invalid("change_request", "must request a new due day or start date")
	}
	if req.RequestedDueDay != nil && (*req.RequestedDueDay < 1 || *req.RequestedDueDay > 31) {
		return nil, billing.Invalid("requested_due_day", "must be between 1 and 31")
	}
	if _, err := s.Repo.Get(ctx, orgID, req.ScheduleID); err != nil {
		return nil, err
	}

	cr := &models.ScheduleChangeRequest{
		OrgID:              orgID,
		ScheduleID:         req.ScheduleID,
		RequestedDueDay:    req.RequestedDueDay,
		RequestedStartDate: req.RequestedStartDate,
		Reason:             req.Reason,
	}
	if err := s.ChangeRepo.Create(ctx, cr); err != nil {
		return nil, err
	}
	return cr, nil
}

func (s *PaymentScheduleService) ListChangeRequests(ctx context.Context, orgID int64, status string) ([]*models.ScheduleChangeRequest, error) {
	return s.ChangeRepo.List(ctx, orgID, status)
}

// ReviewChangeRequest approves or rejects a pending request. Approval does
// not mutate the schedule; the manager deactivates the old schedule and
// creates the replacement explicitly.
func (s *PaymentScheduleService) ReviewChangeRequest(ctx context.Context, orgID, id int64, approve bool, reviewerID int64) (*models.ScheduleChangeRequest, error) {
	status := models.ChangeRequestRejected
	if approve {
		status = models.ChangeRequestApproved
	}
	if err := s.ChangeRepo.Review(ctx, orgID, id, status, reviewerID); err != nil {
		return nil, err
	}
	return s.ChangeRepo.Get(ctx, orgID, id)
}
