package booking

import "testing"

func TestAttendanceStatusIsValid(t *testing.T) {
	for _, status := range GetAllAttendanceStatuses() {
		if !status.IsValid() {
			t.Errorf("%q should be valid", status)
		}
	}

	invalid := []AttendanceStatus{AttendanceUnset, "late", "Present"}
	for _, status := range invalid {
		if status.IsValid() {
			t.Errorf("%q should not be assignable", status)
		}
	}
}
