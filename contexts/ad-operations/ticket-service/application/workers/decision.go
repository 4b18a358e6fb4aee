package workers

import "time"

type DecisionKind int

const (
	DecisionSucceeded DecisionKind = iota
	DecisionRetry
	DecisionFatal
)

// Decision is the classified outcome of one deployment attempt. Retry
// scheduling is the caller's concern; the decision only says what happened
// and, for retries, how long to wait.
type Decision struct {
	Kind       DecisionKind
	ExternalID string
	RetryAfter time.Duration
	Reason     string
}

func Succeeded(externalID string) Decision {
	return Decision{Kind: DecisionSucceeded, ExternalID: externalID}
}

func Retry(after time.Duration) Decision {
	return Decision{Kind: DecisionRetry, RetryAfter: after}
}

func Fatal(reason string) Decision {
	return Decision{Kind: DecisionFatal, Reason: reason}
}
