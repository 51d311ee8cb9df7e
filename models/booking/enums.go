package booking

// AttendanceStatus is the closed set of attendance markings an administrator
// can put on a booking. Empty means not yet marked.
type AttendanceStatus string

const (
	AttendanceUnset   AttendanceStatus = ""
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceExcused AttendanceStatus = "excused"
)

func (as AttendanceStatus) String() string {
	return string(as)
}

func (as AttendanceStatus) IsValid() bool {
	switch as {
	case AttendancePresent, AttendanceAbsent, AttendanceExcused:
		return true
	default:
		return false
	}
}

// GetAllAttendanceStatuses returns every status an admin may assign.
func GetAllAttendanceStatuses() []AttendanceStatus {
	return []AttendanceStatus{
		AttendancePresent,
		AttendanceAbsent,
		AttendanceExcused,
	}
}
