package domain

import "testing"

func TestCanTransition(t *testing.T) {
	t.Parallel()

	allowed := map[TripStatus][]TripStatus{
		TripStatusRequested:  {TripStatusRequested, TripStatusInProgress, TripStatusCancelled},
		TripStatusInProgress: {TripStatusInProgress, TripStatusCompleted, TripStatusCancelled},
		TripStatusCompleted:  {TripStatusCompleted},
		TripStatusCancelled:  {TripStatusCancelled},
	}

	all := []TripStatus{TripStatusRequested, TripStatusInProgress, TripStatusCompleted, TripStatusCancelled}

	for _, from := range all {
		for _, to := range all {
			want := false
			for _, s := range allowed[from] {
				if s == to {
					want = true
				}
			}
			if got := CanTransition(from, to); got != want {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", from, to, got, want)
			}
		}
	}
}

func TestValidTripStatus(t *testing.T) {
	t.Parallel()

	for _, s := range []TripStatus{TripStatusRequested, TripStatusInProgress, TripStatusCompleted, TripStatusCancelled} {
		if !ValidTripStatus(s) {
			t.Errorf("expected %s to be valid", s)
		}
	}
	if ValidTripStatus("paused") {
		t.Error("expected unknown status to be invalid")
	}
}
