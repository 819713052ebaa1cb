package logassert

import (
	"testing"

	"github.com/roadrunner-server/logassert/capture"
)

// Checker binds a Capture to one test and exposes the classic assertion
// surface over it. All Assert* methods mark the test failed through the
// bound testing.TB; none of them panic or return errors.
type Checker struct {
	tb  testing.TB
	cap *capture.Capture
}

// New attaches a fresh capture to the named logger behind the zap globals
// and detaches it automatically when the test finishes. The empty name
// observes every logger.
func New(tb testing.TB, loggerName string) *Checker {
	tb.Helper()

	c := capture.New()
	if err := c.Attach(loggerName); err != nil {
		tb.Fatalf("logassert: %v", err)
	}
	tb.Cleanup(c.Detach)

	return &Checker{tb: tb, cap: c}
}

// NewWithCapture wraps an existing capture, for tests that wire
// [capture.Capture.Core] into their own logger instead of the globals.
func NewWithCapture(tb testing.TB, c *capture.Capture) *Checker {
	return &Checker{tb: tb, cap: c}
}

// Capture returns the underlying capture.
func (c *Checker) Capture() *capture.Capture {
	return c.cap
}

// Reset drops the records captured so far, for independent assertion
// phases within one test.
func (c *Checker) Reset() {
	c.cap.Reset()
}

// Logged asserts that the pattern matches the view; on failure the
// reporter's full record dump becomes the test error.
func (c *Checker) Logged(v capture.View, p capture.Pattern) {
	c.tb.Helper()

	if !v.Contains(p) {
		c.tb.Error(v.Explain(p))
	}
}

// NotLogged asserts that the pattern does not match the view. Negating
// Nothing is a usage error and stops the test immediately.
func (c *Checker) NotLogged(v capture.View, p capture.Pattern) {
	c.tb.Helper()

	ok, err := v.NotContains(p)
	if err != nil {
		c.tb.Fatalf("logassert: %v", err)
		return
	}
	if !ok {
		r, _ := v.Find(p)
		c.tb.Error(v.ExplainPresent(p, r))
	}
}

// The classic method family is an enumerated table, one explicit method
// per severity; every entry desugars to Multiple(tokens...) against the
// corresponding view with no extra semantics.

// AssertLogged asserts one record at any level contains every token.
func (c *Checker) AssertLogged(tokens ...string) {
	c.tb.Helper()
	c.assertPos(c.cap.AnyLevel(), tokens)
}

// AssertLoggedDebug asserts one DEBUG record contains every token.
func (c *Checker) AssertLoggedDebug(tokens ...string) {
	c.tb.Helper()
	c.assertPos(c.cap.View(capture.Debug), tokens)
}

// AssertLoggedInfo asserts one INFO record contains every token.
func (c *Checker) AssertLoggedInfo(tokens ...string) {
	c.tb.Helper()
	c.assertPos(c.cap.View(capture.Info), tokens)
}

// AssertLoggedWarning asserts one WARNING record contains every token.
func (c *Checker) AssertLoggedWarning(tokens ...string) {
	c.tb.Helper()
	c.assertPos(c.cap.View(capture.Warning), tokens)
}

// AssertLoggedError asserts one ERROR record contains every token.
func (c *Checker) AssertLoggedError(tokens ...string) {
	c.tb.Helper()
	c.assertPos(c.cap.View(capture.Error), tokens)
}

// AssertLoggedCritical asserts one CRITICAL record contains every token.
func (c *Checker) AssertLoggedCritical(tokens ...string) {
	c.tb.Helper()
	c.assertPos(c.cap.View(capture.Critical), tokens)
}

// AssertNotLogged asserts no record at any level contains every token.
func (c *Checker) AssertNotLogged(tokens ...string) {
	c.tb.Helper()
	c.assertNeg(c.cap.AnyLevel(), tokens)
}

// AssertNotLoggedDebug asserts no DEBUG record contains every token.
func (c *Checker) AssertNotLoggedDebug(tokens ...string) {
	c.tb.Helper()
	c.assertNeg(c.cap.View(capture.Debug), tokens)
}

// AssertNotLoggedInfo asserts no INFO record contains every token.
func (c *Checker) AssertNotLoggedInfo(tokens ...string) {
	c.tb.Helper()
	c.assertNeg(c.cap.View(capture.Info), tokens)
}

// AssertNotLoggedWarning asserts no WARNING record contains every token.
func (c *Checker) AssertNotLoggedWarning(tokens ...string) {
	c.tb.Helper()
	c.assertNeg(c.cap.View(capture.Warning), tokens)
}

// AssertNotLoggedError asserts no ERROR record contains every token.
func (c *Checker) AssertNotLoggedError(tokens ...string) {
	c.tb.Helper()
	c.assertNeg(c.cap.View(capture.Error), tokens)
}

// AssertNotLoggedCritical asserts no CRITICAL record contains every token.
func (c *Checker) AssertNotLoggedCritical(tokens ...string) {
	c.tb.Helper()
	c.assertNeg(c.cap.View(capture.Critical), tokens)
}

func (c *Checker) assertPos(v capture.View, tokens []string) {
	c.tb.Helper()

	p, err := capture.Multiple(tokens...)
	if err != nil {
		c.tb.Fatalf("logassert: %v", err)
		return
	}
	c.Logged(v, p)
}

func (c *Checker) assertNeg(v capture.View, tokens []string) {
	c.tb.Helper()

	p, err := capture.Multiple(tokens...)
	if err != nil {
		c.tb.Fatalf("logassert: %v", err)
		return
	}
	c.NotLogged(v, p)
}
