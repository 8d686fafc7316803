package domain

// Status is the feed's refresh lifecycle state
type Status int32

// Lifecycle states. Ready and FetchFailed both go back to Fetching on the
// next scheduled or manual refresh.
const (
	StatusUninitialized Status = iota
	StatusFetching
	StatusReady
	StatusFetchFailed
)

// String implements fmt.Stringer
func (s Status) String() string {
	switch s {
	case StatusFetching:
		return "Fetching"
	case StatusReady:
		return "Ready"
	case StatusFetchFailed:
		return "FetchFailed"
	default:
		return "Uninitialized"
	}
}
