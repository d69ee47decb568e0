package oracle

// Status distinguishes a delivered verdict from an unavailable oracle.
type Status int

const (
	StatusUnavailable Status = iota
	StatusVerdict
)

func (s Status) String() string {
	if s == StatusVerdict {
		return "verdict"
	}
	return "unavailable"
}

// Result is the outcome of one consultation. Err explains an unavailable result.
type Result struct {
	Status  Status
	Verdict Verdict
	Err     error
}

// Delivered wraps a parsed verdict.
func Delivered(v Verdict) Result {
	return Result{Status: StatusVerdict, Verdict: v}
}

// Unavailable records why no verdict could be used.
func Unavailable(err error) Result {
	return Result{Status: StatusUnavailable, Err: err}
}
