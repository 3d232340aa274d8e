package scopez

// TraceID identifies a trace. High is zero for 64-bit trace ids.
type TraceID struct {
	High uint64 `json:"high,omitempty"`
	Low  uint64 `json:"low"`
}

// IsZero reports whether both halves of the id are zero.
func (id TraceID) IsZero() bool {
	return id.High == 0 && id.Low == 0
}

// String returns 16 hex characters for 64-bit ids and 32 otherwise.
func (id TraceID) String() string {
	if id.High == 0 {
		return ToLowerHex(id.Low)
	}
	return toLowerHex128(id.High, id.Low)
}

// SpanID identifies a span within a trace. Zero means absent.
type SpanID uint64

// String returns the id as 16 lowercase hex characters.
func (id SpanID) String() string {
	return ToLowerHex(uint64(id))
}

// TraceContext is the identifier triple of a point in a distributed trace.
// It is a comparable value and is never mutated once built.
//
//nolint:govet // Field order follows the trace hierarchy
type TraceContext struct {
	TraceID  TraceID `json:"trace_id"`
	SpanID   SpanID  `json:"span_id"`
	ParentID SpanID  `json:"parent_id,omitempty"`
}

// None is the absent TraceContext. Activating it clears the current context.
var None = TraceContext{}

// IsValid reports whether tc names a span: both trace and span ids set.
// Invalid contexts are treated as None.
func (tc TraceContext) IsValid() bool {
	return !tc.TraceID.IsZero() && tc.SpanID != 0
}

// HasParent reports whether tc carries a parent span id.
func (tc TraceContext) HasParent() bool {
	return tc.ParentID != 0
}

// TraceIDString returns the lowercase hex form of the trace id.
func (tc TraceContext) TraceIDString() string {
	return tc.TraceID.String()
}

// String renders tc as trace/span[/parent] for log messages.
func (tc TraceContext) String() string {
	if !tc.IsValid() {
		return "none"
	}
	s := tc.TraceIDString() + "/" + tc.SpanID.String()
	if tc.HasParent() {
		s += "/" + tc.ParentID.String()
	}
	return s
}
