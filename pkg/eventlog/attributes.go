package eventlog

import "time"

func (a Attributes) stringByKey(level Level, key string) (string, error) {
	v, ok := a[key]
	if !ok {
		return "", missingErr(level, key)
	}
	s, ok := v.AsString()
	if !ok {
		return "", mismatchErr(level, key, KindString, v.Kind())
	}
	return s, nil
}

func (a Attributes) timeByKey(level Level, key string) (time.Time, error) {
	v, ok := a[key]
	if !ok {
		return time.Time{}, missingErr(level, key)
	}
	t, ok := v.AsTime()
	if !ok {
		return time.Time{}, mismatchErr(level, key, KindTime, v.Kind())
	}
	return t, nil
}

// StringAttr returns the string attribute for key, or an event-level AttributeError.
func (e Event) StringAttr(key string) (string, error) {
	return e.Attributes.stringByKey(LevelEvent, key)
}

// TimeAttr returns the timestamp attribute for key, or an event-level AttributeError.
func (e Event) TimeAttr(key string) (time.Time, error) {
	return e.Attributes.timeByKey(LevelEvent, key)
}

// StringAttr returns the string attribute for key, or a trace-level AttributeError.
func (t Trace) StringAttr(key string) (string, error) {
	return t.Attributes.stringByKey(LevelTrace, key)
}

// Activity returns the activity label of the event ("concept:name").
func (e Event) Activity() (string, error) {
	return e.StringAttr(ActivityKey)
}

// Lifecycle returns the lifecycle transition of the event ("lifecycle:transition").
func (e Event) Lifecycle() (string, error) {
	return e.StringAttr(LifecycleKey)
}

// InstanceID returns the activity instance id of the event ("concept:instance").
func (e Event) InstanceID() (string, error) {
	return e.StringAttr(InstanceIDKey)
}

// CompleteTimestamp returns the completion timestamp of the event ("time:timestamp").
func (e Event) CompleteTimestamp() (time.Time, error) {
	return e.TimeAttr(TimestampKey)
}

// StartTimestamp returns the start timestamp of the event ("start_timestamp").
func (e Event) StartTimestamp() (time.Time, error) {
	return e.TimeAttr(StartTimestampKey)
}

// ServiceTime returns the duration between the start and completion timestamps
// of the event.
func (e Event) ServiceTime() (time.Duration, error) {
	start, err := e.StartTimestamp()
	if err != nil {
		return 0, err
	}
	complete, err := e.CompleteTimestamp()
	if err != nil {
		return 0, err
	}
	return complete.Sub(start), nil
}
