package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"safar/internal/domain"
	"safar/internal/policy"
	"safar/internal/repository"
)

// ApplicationService handles driver applications: passengers apply, admins
// review.
type ApplicationService struct {
	appRepo  repository.ApplicationRepository
	policy   *policy.Policy
	notifier *NotificationService
}

// NewApplicationService creates a new ApplicationService.
func NewApplicationService(appRepo repository.ApplicationRepository, pol *policy.Policy, notifier *NotificationService) *ApplicationService {
	return &ApplicationService{appRepo: appRepo, policy: pol, notifier: notifier}
}

// Apply files a driver application for the calling passenger. A passenger
// may hold at most one pending application.
func (s *ApplicationService) Apply(ctx context.Context, caller policy.Identity) (*domain.DriverApplication, error) {
	if !s.policy.CanApplyAsDriver(caller) {
		return nil, ErrPermissionDenied
	}

	pending, err := s.appRepo.GetPendingByApplicantID(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	if pending != nil {
		return nil, NewValidationError(NonFieldErrors, "you already have a pending application")
	}

	now := time.Now()
	app := &domain.DriverApplication{
		ID:          uuid.New().String(),
		ApplicantID: caller.UserID,
		Status:      domain.ApplicationStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.appRepo.Create(ctx, app); err != nil {
		return nil, err
	}

	return app, nil
}

// GetApplication retrieves an application for review. Admin only.
func (s *ApplicationService) GetApplication(ctx context.Context, caller policy.Identity, id string) (*domain.DriverApplication, error) {
	if !s.policy.CanReviewApplications(caller) {
		return nil, ErrPermissionDenied
	}
	return s.appRepo.GetByID(ctx, id)
}

// ListApplications retrieves the review queue: pending first, then newest.
// Admin only.
func (s *ApplicationService) ListApplications(ctx context.Context, caller policy.Identity) ([]*domain.DriverApplication, error) {
	if !s.policy.CanReviewApplications(caller) {
		return nil, ErrPermissionDenied
	}
	return s.appRepo.GetAll(ctx)
}

// ReviewRequest carries a review decision.
type ReviewRequest struct {
	Status domain.ApplicationStatus
	Note   string
}

// Review approves or denies an application. Admin only; a decided
// application cannot be re-reviewed.
func (s *ApplicationService) Review(ctx context.Context, caller policy.Identity, id string, req ReviewRequest) (*domain.DriverApplication, error) {
	if !s.policy.CanReviewApplications(caller) {
		return nil, ErrPermissionDenied
	}

	if req.Status != domain.ApplicationStatusApproved && req.Status != domain.ApplicationStatusDenied {
		return nil, NewValidationError("status", "must be approved or denied")
	}

	app, err := s.appRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if app.Status != domain.ApplicationStatusPending {
		return nil, NewValidationError("status", "application has already been reviewed")
	}

	app.Status = req.Status
	app.Note = req.Note
	app.UpdatedAt = time.Now()

	if err := s.appRepo.Update(ctx, app); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.NotifyApplicationReviewed(ctx, app)
	}

	return app, nil
}
