package emdiff

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/emdiff/emdiff/pkg/eventlog"
)

// JSON event log format: a log is an object with a "traces" array, each trace
// an object with optional "attributes" and an "events" array, each event a
// flat object of attributes.  String values that parse as RFC 3339 timestamps
// become timestamp attributes, numbers become floats, everything else stays a
// string.
//
//	{"traces": [
//	  {"attributes": {"concept:name": "case-1"},
//	   "events": [
//	     {"concept:name": "register",
//	      "time:timestamp": "2024-03-01T09:00:00Z"}]}]}

type jsonLog struct {
	Attributes map[string]json.RawMessage `json:"attributes"`
	Traces     []jsonTrace                `json:"traces"`
}

type jsonTrace struct {
	Attributes map[string]json.RawMessage   `json:"attributes"`
	Events     []map[string]json.RawMessage `json:"events"`
}

// ReadLogFile reads a JSON event log from path, transparently decompressing
// ".gz" files.
func ReadLogFile(path string) (*eventlog.Log, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		defer gz.Close()
		r = gz
	}

	log, err := ReadLog(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return log, nil
}

// ReadLog decodes a JSON event log.
func ReadLog(r io.Reader) (*eventlog.Log, error) {
	var raw jsonLog
	dec := json.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}

	log := &eventlog.Log{Attributes: decodeAttributes(raw.Attributes)}
	for _, rt := range raw.Traces {
		trace := eventlog.Trace{Attributes: decodeAttributes(rt.Attributes)}
		for _, re := range rt.Events {
			trace.Events = append(trace.Events, eventlog.Event{Attributes: decodeAttributes(re)})
		}
		log.Traces = append(log.Traces, trace)
	}
	return log, nil
}

func decodeAttributes(raw map[string]json.RawMessage) eventlog.Attributes {
	attrs := eventlog.Attributes{}
	for key, msg := range raw {
		attrs.Set(key, decodeValue(msg))
	}
	return attrs
}

func decodeValue(msg json.RawMessage) eventlog.Value {
	var s string
	if err := json.Unmarshal(msg, &s); err == nil {
		if ts, err := time.Parse(time.RFC3339, s); err == nil {
			return eventlog.Time(ts)
		}
		return eventlog.String(s)
	}
	var i int64
	if err := json.Unmarshal(msg, &i); err == nil {
		return eventlog.Int(i)
	}
	var f float64
	if err := json.Unmarshal(msg, &f); err == nil {
		return eventlog.Float(f)
	}
	// Booleans and nested structures have no typed counterpart; keep the
	// raw text so the attribute at least stays visible.
	return eventlog.String(string(msg))
}
