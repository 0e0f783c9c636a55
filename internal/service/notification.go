package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"safar/internal/domain"
)

// NotificationType represents the type of notification.
type NotificationType string

const (
	NotificationTripRequested     NotificationType = "TRIP_REQUESTED"
	NotificationDriverAssigned    NotificationType = "DRIVER_ASSIGNED"
	NotificationTripStatusChanged NotificationType = "TRIP_STATUS_CHANGED"
	NotificationApplicationReview NotificationType = "APPLICATION_REVIEWED"
)

// NotificationService delivers trip and application lifecycle notifications.
// Delivery is log-backed; a push/SMS gateway would slot in behind the same
// methods.
type NotificationService struct {
	log *logrus.Logger
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(log *logrus.Logger) *NotificationService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &NotificationService{log: log}
}

// NotifyTripRequested notifies that a passenger requested a trip.
func (s *NotificationService) NotifyTripRequested(ctx context.Context, trip *domain.Trip) {
	s.log.WithFields(logrus.Fields{
		"type":         NotificationTripRequested,
		"trip_id":      trip.ID,
		"passenger_id": trip.PassengerID,
		"route_id":     trip.RouteID,
	}).Info("trip requested")
}

// NotifyDriverAssigned notifies a driver of a new assignment.
func (s *NotificationService) NotifyDriverAssigned(ctx context.Context, trip *domain.Trip) {
	s.log.WithFields(logrus.Fields{
		"type":       NotificationDriverAssigned,
		"trip_id":    trip.ID,
		"driver_id":  trip.DriverID,
		"vehicle_id": trip.VehicleID,
	}).Info("driver assigned to trip")
}

// NotifyTripStatusChanged notifies both parties of a status transition.
func (s *NotificationService) NotifyTripStatusChanged(ctx context.Context, trip *domain.Trip, from domain.TripStatus) {
	s.log.WithFields(logrus.Fields{
		"type":         NotificationTripStatusChanged,
		"trip_id":      trip.ID,
		"passenger_id": trip.PassengerID,
		"driver_id":    trip.DriverID,
		"from":         from,
		"to":           trip.Status,
	}).Info("trip status changed")
}

// NotifyApplicationReviewed notifies an applicant of a review decision.
func (s *NotificationService) NotifyApplicationReviewed(ctx context.Context, app *domain.DriverApplication) {
	s.log.WithFields(logrus.Fields{
		"type":         NotificationApplicationReview,
		"application":  app.ID,
		"applicant_id": app.ApplicantID,
		"status":       app.Status,
	}).Info("driver application reviewed")
}
