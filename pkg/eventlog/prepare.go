package eventlog

import (
	"strconv"
	"time"
)

// InferLifecycle fills in a "complete" lifecycle transition for every event of
// the trace that has none, treating such events as atomic.
func InferLifecycle(t *Trace) {
	for i := range t.Events {
		if !t.Events[i].Attributes.Has(LifecycleKey) {
			t.Events[i].Attributes.Set(LifecycleKey, String("complete"))
		}
	}
}

// InferLifecycleLog applies InferLifecycle to every trace of the log.
func InferLifecycleLog(l *Log) {
	for i := range l.Traces {
		InferLifecycle(&l.Traces[i])
	}
}

// InferInstanceIDs assigns activity instance ids based on lifecycle
// information.  "start" events are matched to "complete" events of the same
// activity in FIFO order: the first started execution of an activity is the
// first to complete.  A "complete" event without a pending "start" gets a
// fresh id and is considered atomic.  Events with any other lifecycle
// transition are left untouched.  Existing instance ids are overwritten.
func InferInstanceIDs(t *Trace) error {
	pending := map[string][]int64{}
	var current int64

	for i := range t.Events {
		evt := &t.Events[i]
		activity, err := evt.Activity()
		if err != nil {
			return err
		}
		lifecycle, err := evt.Lifecycle()
		if err != nil {
			return err
		}
		switch lifecycle {
		case "complete":
			ids := pending[activity]
			var id int64
			if len(ids) > 0 {
				id = ids[0]
				pending[activity] = ids[1:]
			} else {
				current++
				id = current
			}
			evt.Attributes.Set(InstanceIDKey, String(strconv.FormatInt(id, 10)))
		case "start":
			current++
			evt.Attributes.Set(InstanceIDKey, String(strconv.FormatInt(current, 10)))
			pending[activity] = append(pending[activity], current)
		}
	}
	// Left-over pending ids are start events that never completed.
	return nil
}

// InferInstanceIDsLog applies InferInstanceIDs to every trace of the log.
func InferInstanceIDsLog(l *Log) error {
	for i := range l.Traces {
		if err := InferInstanceIDs(&l.Traces[i]); err != nil {
			return err
		}
	}
	return nil
}

// FoldStartTimestamps collapses correlated start/complete event pairs (matched
// by instance id) into a single event.  Only events with a "complete"
// transition remain, each enriched with a "start_timestamp" attribute taken
// from its start event, or its own completion timestamp if it has none
// (atomic).  Events with any other lifecycle transition are dropped.
func FoldStartTimestamps(t *Trace) error {
	starts := map[string]time.Time{}
	kept := t.Events[:0]

	for i := range t.Events {
		evt := t.Events[i]
		id, err := evt.InstanceID()
		if err != nil {
			return err
		}
		lifecycle, err := evt.Lifecycle()
		if err != nil {
			return err
		}
		switch lifecycle {
		case "start":
			ts, err := evt.CompleteTimestamp()
			if err != nil {
				return err
			}
			starts[id] = ts
		case "complete":
			start, ok := starts[id]
			if !ok {
				if start, err = evt.CompleteTimestamp(); err != nil {
					return err
				}
			} else {
				delete(starts, id)
			}
			evt.Attributes.Set(StartTimestampKey, Time(start))
			kept = append(kept, evt)
		}
	}
	t.Events = kept
	return nil
}

// FoldStartTimestampsLog applies FoldStartTimestamps to every trace of the log.
func FoldStartTimestampsLog(l *Log) error {
	for i := range l.Traces {
		if err := FoldStartTimestamps(&l.Traces[i]); err != nil {
			return err
		}
	}
	return nil
}

// EnsureStartTimestamps makes sure that every event in the log carries a
// "start_timestamp" attribute, deriving one where necessary:
//
//  1. If every event already has a start timestamp, nothing happens.
//  2. Events without lifecycle information are assumed atomic and get a
//     "complete" transition.
//  3. If events lack instance ids, ids are inferred by FIFO matching of
//     start/complete transitions per activity.
//  4. Start/complete pairs are folded into single completed events carrying
//     the start timestamp.
//
// Start events that never complete are lost, and inferred instance ids
// overwrite existing ones.
func EnsureStartTimestamps(l *Log) error {
	if allEventsHave(l, StartTimestampKey) {
		return nil
	}
	if !allEventsHave(l, LifecycleKey) {
		InferLifecycleLog(l)
	}
	if !allEventsHave(l, InstanceIDKey) {
		if err := InferInstanceIDsLog(l); err != nil {
			return err
		}
	}
	return FoldStartTimestampsLog(l)
}

func allEventsHave(l *Log, key string) bool {
	for i := range l.Traces {
		for j := range l.Traces[i].Events {
			if !l.Traces[i].Events[j].Attributes.Has(key) {
				return false
			}
		}
	}
	return true
}
