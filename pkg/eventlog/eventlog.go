// Package eventlog provides a minimal in-memory event log model following XES
// conventions: a log owns traces, a trace owns events, and every level carries
// a set of typed attributes.  Attribute access is fully typed and reports
// missing or mismatched attributes as an AttributeError identifying the level,
// key and kind of the problem.
package eventlog

import "time"

// Attribute keys following the XES standard extensions.
const (
	TraceIDKey        = "concept:name"
	ActivityKey       = "concept:name"
	TimestampKey      = "time:timestamp"
	StartTimestampKey = "start_timestamp"
	LifecycleKey      = "lifecycle:transition"
	InstanceIDKey     = "concept:instance"
)

// Kind identifies the dynamic type of an attribute value.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindTime
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "String"
	case KindInt:
		return "Int"
	case KindFloat:
		return "Float"
	case KindTime:
		return "Time"
	default:
		return "Unknown"
	}
}

// Value is a tagged attribute value.  Construct with String, Int, Float or Time.
type Value struct {
	kind Kind
	s    string
	i    int64
	f    float64
	t    time.Time
}

// String returns a string-valued attribute.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Int returns an integer-valued attribute.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float returns a float-valued attribute.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// Time returns a timestamp-valued attribute.
func Time(t time.Time) Value { return Value{kind: KindTime, t: t} }

// Kind returns the dynamic type of the value.
func (v Value) Kind() Kind { return v.kind }

func (v Value) AsString() (string, bool)  { return v.s, v.kind == KindString }
func (v Value) AsInt() (int64, bool)      { return v.i, v.kind == KindInt }
func (v Value) AsFloat() (float64, bool)  { return v.f, v.kind == KindFloat }
func (v Value) AsTime() (time.Time, bool) { return v.t, v.kind == KindTime }

// Attributes maps attribute keys to values for one log, trace or event.
type Attributes map[string]Value

// Set adds the attribute, overwriting any existing value for the key.
func (a Attributes) Set(key string, v Value) { a[key] = v }

// Has reports whether the key is present.
func (a Attributes) Has(key string) bool {
	_, ok := a[key]
	return ok
}

// Event is a single recorded activity execution.
type Event struct {
	Attributes Attributes
}

// NewEvent returns an event with an initialized attribute map.
func NewEvent() Event { return Event{Attributes: Attributes{}} }

// Trace is the ordered event sequence of one case.
type Trace struct {
	Attributes Attributes
	Events     []Event
}

// Log is a collection of traces.
type Log struct {
	Attributes Attributes
	Traces     []Trace
}
