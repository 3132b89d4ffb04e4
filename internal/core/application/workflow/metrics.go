package workflow

// Metrics receives workflow outcomes. Implementations must be safe for
// concurrent use.
type Metrics interface {
	TransitionApplied(from, to string)
	OperationFailed(operation, kind string)
	NotificationFailed(role string)
}

type nopMetrics struct{}

func (nopMetrics) TransitionApplied(string, string) {}
func (nopMetrics) OperationFailed(string, string)   {}
func (nopMetrics) NotificationFailed(string)        {}
