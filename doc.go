// Package logassert lets a test assert that specific messages were, or
// were not, emitted through zap at a specific severity.
//
// The package wires the capture engine into a test's lifecycle: [New]
// attaches a [capture.Capture] behind the zap global logger and detaches
// it on test cleanup, and [Checker] exposes the classic per-severity
// assertion family (AssertLoggedDebug, AssertNotLoggedError, ...) which
// desugars to Multiple-token containment queries over level views. Failed
// assertions report the full record dump so the expected and the actual
// output can be compared at a glance.
//
// For applications wired through a service container, [Mock] is a logger
// plugin double that routes every named logger through a capture, in the
// shape the RoadRunner logger plugin exposes.
//
// The matching semantics live in the [capture] package and can be used
// directly when the convenience surface is not enough.
package logassert
