package zerror

// Status classifies a ZError independently of any transport.
type Status uint8

const (
	StatusUnknown Status = iota
	StatusNotFound
	StatusConflict
	StatusValidationFailed
	StatusUnprocessable
	StatusPersistence
	StatusMalformedData
	StatusInternal
)

func (s Status) String() string {
	switch s {
	case StatusNotFound:
		return "NOT_FOUND"
	case StatusConflict:
		return "CONFLICT"
	case StatusValidationFailed:
		return "VALIDATION_FAILED"
	case StatusUnprocessable:
		return "UNPROCESSABLE"
	case StatusPersistence:
		return "PERSISTENCE"
	case StatusMalformedData:
		return "MALFORMED_DATA"
	case StatusInternal:
		return "INTERNAL"
	default:
		return "UNKNOWN"
	}
}

// Recoverable reports whether the operator can fix the condition by
// re-entering input. Persistence and malformed data failures are not.
func (s Status) Recoverable() bool {
	switch s {
	case StatusNotFound, StatusConflict, StatusValidationFailed, StatusUnprocessable:
		return true
	default:
		return false
	}
}
