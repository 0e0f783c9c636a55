package tests

import (
	"context"
	"errors"
	"testing"

	"safar/internal/domain"
	"safar/internal/policy"
	"safar/internal/service"
)

func newApplicationService() (*service.ApplicationService, *MockApplicationRepository) {
	appRepo := NewMockApplicationRepository()
	svc := service.NewApplicationService(appRepo, policy.New(policy.Options{}), nil)
	return svc, appRepo
}

func TestApplicationApply_PassengerSucceeds(t *testing.T) {
	t.Parallel()

	svc, _ := newApplicationService()

	app, err := svc.Apply(context.Background(), passengerCaller)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if app.ApplicantID != passengerCaller.UserID {
		t.Errorf("expected applicant %s, got %s", passengerCaller.UserID, app.ApplicantID)
	}
	if app.Status != domain.ApplicationStatusPending {
		t.Errorf("expected pending status, got %s", app.Status)
	}
}

func TestApplicationApply_DriverAndAdminDenied(t *testing.T) {
	t.Parallel()

	svc, _ := newApplicationService()

	if _, err := svc.Apply(context.Background(), driverCaller); !errors.Is(err, service.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied for driver, got: %v", err)
	}
	if _, err := svc.Apply(context.Background(), adminCaller); !errors.Is(err, service.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied for admin, got: %v", err)
	}
}

func TestApplicationApply_SecondPendingRejected(t *testing.T) {
	t.Parallel()

	svc, _ := newApplicationService()

	if _, err := svc.Apply(context.Background(), passengerCaller); err != nil {
		t.Fatalf("first apply failed: %v", err)
	}

	_, err := svc.Apply(context.Background(), passengerCaller)

	var verr *service.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got: %v", err)
	}
	if _, ok := verr.Fields[service.NonFieldErrors]; !ok {
		t.Errorf("expected non-field error, got: %v", verr.Fields)
	}
}

func TestApplicationApply_AllowedAgainAfterDecision(t *testing.T) {
	t.Parallel()

	svc, _ := newApplicationService()

	app, err := svc.Apply(context.Background(), passengerCaller)
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	if _, err := svc.Review(context.Background(), adminCaller, app.ID, service.ReviewRequest{
		Status: domain.ApplicationStatusDenied,
		Note:   "incomplete documents",
	}); err != nil {
		t.Fatalf("review failed: %v", err)
	}

	// A denied application no longer blocks a fresh one.
	if _, err := svc.Apply(context.Background(), passengerCaller); err != nil {
		t.Fatalf("expected re-apply to succeed, got: %v", err)
	}
}

func TestApplicationReview_AdminOnly(t *testing.T) {
	t.Parallel()

	svc, _ := newApplicationService()

	app, err := svc.Apply(context.Background(), passengerCaller)
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	_, err = svc.Review(context.Background(), driverCaller, app.ID, service.ReviewRequest{
		Status: domain.ApplicationStatusApproved,
	})
	if !errors.Is(err, service.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got: %v", err)
	}
}

func TestApplicationReview_ApproveSetsStatusAndNote(t *testing.T) {
	t.Parallel()

	svc, appRepo := newApplicationService()

	app, err := svc.Apply(context.Background(), passengerCaller)
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	reviewed, err := svc.Review(context.Background(), adminCaller, app.ID, service.ReviewRequest{
		Status: domain.ApplicationStatusApproved,
		Note:   "welcome aboard",
	})
	if err != nil {
		t.Fatalf("review failed: %v", err)
	}

	if reviewed.Status != domain.ApplicationStatusApproved {
		t.Errorf("expected approved, got %s", reviewed.Status)
	}
	if reviewed.Note != "welcome aboard" {
		t.Errorf("expected note to be stored, got %q", reviewed.Note)
	}

	stored := appRepo.GetApplication(app.ID)
	if stored == nil || stored.Status != domain.ApplicationStatusApproved {
		t.Error("expected decision to be persisted")
	}
}

func TestApplicationReview_InvalidDecisionRejected(t *testing.T) {
	t.Parallel()

	svc, _ := newApplicationService()

	app, err := svc.Apply(context.Background(), passengerCaller)
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	// Pending is not a decision; neither is garbage.
	for _, status := range []domain.ApplicationStatus{domain.ApplicationStatusPending, "maybe"} {
		_, err := svc.Review(context.Background(), adminCaller, app.ID, service.ReviewRequest{Status: status})
		var verr *service.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected ValidationError for status %q, got: %v", status, err)
		}
	}
}

func TestApplicationReview_AlreadyDecidedRejected(t *testing.T) {
	t.Parallel()

	svc, _ := newApplicationService()

	app, err := svc.Apply(context.Background(), passengerCaller)
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	if _, err := svc.Review(context.Background(), adminCaller, app.ID, service.ReviewRequest{
		Status: domain.ApplicationStatusApproved,
	}); err != nil {
		t.Fatalf("first review failed: %v", err)
	}

	_, err = svc.Review(context.Background(), adminCaller, app.ID, service.ReviewRequest{
		Status: domain.ApplicationStatusDenied,
	})

	var verr *service.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got: %v", err)
	}
}

func TestApplicationList_PendingFirstNewestWithin(t *testing.T) {
	t.Parallel()

	svc, appRepo := newApplicationService()

	appRepo.AddApplication(&domain.DriverApplication{ID: "app-1", ApplicantID: "u1", Status: domain.ApplicationStatusApproved})
	appRepo.AddApplication(&domain.DriverApplication{ID: "app-2", ApplicantID: "u2", Status: domain.ApplicationStatusPending})
	appRepo.AddApplication(&domain.DriverApplication{ID: "app-3", ApplicantID: "u3", Status: domain.ApplicationStatusDenied})

	apps, err := svc.ListApplications(context.Background(), adminCaller)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if len(apps) != 3 {
		t.Fatalf("expected 3 applications, got %d", len(apps))
	}
	if apps[0].Status != domain.ApplicationStatusPending {
		t.Errorf("expected pending first, got %s", apps[0].Status)
	}

	if _, err := svc.ListApplications(context.Background(), passengerCaller); !errors.Is(err, service.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied for passenger, got: %v", err)
	}
}
