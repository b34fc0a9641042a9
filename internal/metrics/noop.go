package metrics

// NoopMetrics is a no-operation implementation of Recorder. All methods
// are empty, providing zero overhead when metrics are disabled.
type NoopMetrics struct{}

// Ensure NoopMetrics implements Recorder interface at compile time
var _ Recorder = (*NoopMetrics)(nil)

// NewNoopMetrics creates a new no-operation metrics recorder
func NewNoopMetrics() Recorder {
	return &NoopMetrics{}
}

func (n *NoopMetrics) RecordSignup(result string)                         {}
func (n *NoopMetrics) RecordTokenIssued()                                 {}
func (n *NoopMetrics) RecordTokenValidation(result string)                {}
func (n *NoopMetrics) RecordReferenceResolution(typename, result string)  {}
func (n *NoopMetrics) RecordHTTPRequest(m, p, s string, duration float64) {}
