package logassert

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/roadrunner-server/logassert/capture"
)

// recordingTB stores failures instead of failing the running test, so the
// checker's own reporting can be asserted on.
type recordingTB struct {
	testing.TB
	errs     []string
	fatals   []string
	cleanups []func()
}

func (r *recordingTB) Helper() {}

func (r *recordingTB) Error(args ...any) {
	r.errs = append(r.errs, fmt.Sprint(args...))
}

func (r *recordingTB) Errorf(format string, args ...any) {
	r.errs = append(r.errs, fmt.Sprintf(format, args...))
}

func (r *recordingTB) Fatalf(format string, args ...any) {
	r.fatals = append(r.fatals, fmt.Sprintf(format, args...))
}

func (r *recordingTB) Cleanup(f func()) {
	r.cleanups = append(r.cleanups, f)
}

func newRecorded() (*recordingTB, *Checker) {
	rtb := &recordingTB{}
	return rtb, NewWithCapture(rtb, capture.New())
}

func TestCheckerEndToEnd(t *testing.T) {
	l := New(t, "app")
	zap.L().Named("app").Debug("The secret of life, the universe and everything is 42")

	l.AssertLoggedDebug("secret", "life", "42")
	l.AssertLogged("secret", "42")
	l.AssertNotLoggedInfo("secret")
	l.AssertNotLoggedDebug("lost")
	l.AssertNotLogged("lost")
}

func TestCheckerFamilyDesugarsToMultiple(t *testing.T) {
	rtb, l := newRecorded()
	l.Capture().Logger("").Debug("foo bar 42")

	l.AssertLoggedDebug("foo", "bar")
	l.AssertLoggedDebug(`ba.`, `\d\d`)
	require.Empty(t, rtb.errs)

	// two of three present is a failure, reported with the full dump
	l.AssertLoggedDebug("foo", "bar", "extra")
	require.Len(t, rtb.errs, 1)
	assert.Contains(t, rtb.errs[0], `for Multiple("foo", "bar", "extra") in DEBUG failed; logged lines:`)
	assert.Contains(t, rtb.errs[0], `     DEBUG     "foo bar 42"`)
}

func TestCheckerPerSeverityViews(t *testing.T) {
	rtb, l := newRecorded()
	log := l.Capture().Logger("")
	log.Debug("d-msg")
	log.Info("i-msg")
	log.Warn("w-msg")
	log.Error("e-msg")
	log.DPanic("c-msg")

	l.AssertLoggedDebug("d-msg")
	l.AssertLoggedInfo("i-msg")
	l.AssertLoggedWarning("w-msg")
	l.AssertLoggedError("e-msg")
	l.AssertLoggedCritical("c-msg")

	l.AssertNotLoggedDebug("i-msg")
	l.AssertNotLoggedInfo("d-msg")
	l.AssertNotLoggedWarning("e-msg")
	l.AssertNotLoggedError("w-msg")
	l.AssertNotLoggedCritical("d-msg")

	require.Empty(t, rtb.errs)
	require.Empty(t, rtb.fatals)
}

func TestCheckerNegativeFailure(t *testing.T) {
	rtb, l := newRecorded()
	l.Capture().Logger("").Debug("aaa")

	l.AssertNotLoggedDebug("aaa")
	require.Len(t, rtb.errs, 1)
	assert.Contains(t, rtb.errs[0], `for Multiple("aaa") not in DEBUG failed; offending record:`)
	assert.Contains(t, rtb.errs[0], `     DEBUG     "aaa"`)
}

func TestCheckerMalformedTokenIsFatal(t *testing.T) {
	rtb, l := newRecorded()

	l.AssertLoggedDebug(`[bad`)
	require.Len(t, rtb.fatals, 1)
	assert.Contains(t, rtb.fatals[0], "logassert:")
}

func TestCheckerNegatedNothingIsFatal(t *testing.T) {
	rtb, l := newRecorded()

	l.NotLogged(l.Capture().View(capture.Debug), capture.Nothing)
	require.Len(t, rtb.fatals, 1)
	assert.Contains(t, rtb.fatals[0], "cannot be negated")
}

func TestCheckerGenericQueries(t *testing.T) {
	rtb, l := newRecorded()
	l.Capture().Logger("").Warn("Got 2 errors and 3 warnings:\n  error 1: foo\n  error 2: bar")

	seq, err := capture.Sequence(`Got 2 errors and \d+ warnings:`, capture.Exact("  error 1: foo"), capture.Exact("  error 2: bar"))
	require.NoError(t, err)
	l.Logged(l.Capture().View(capture.Warning), seq)
	l.NotLogged(l.Capture().View(capture.Error), seq)

	require.Empty(t, rtb.errs)
	require.Empty(t, rtb.fatals)
}

func TestCheckerResetBetweenPhases(t *testing.T) {
	rtb, l := newRecorded()
	log := l.Capture().Logger("")

	log.Info("welcome")
	l.AssertLoggedInfo("welcome")

	l.Reset()
	l.AssertNotLoggedInfo("welcome")
	l.Logged(l.Capture().View(capture.Info), capture.Nothing)

	log.Info("welcome")
	l.AssertLoggedInfo("welcome")

	require.Empty(t, rtb.errs)
	require.Empty(t, rtb.fatals)
}

func TestNewRegistersDetachCleanup(t *testing.T) {
	rtb := &recordingTB{}
	l := New(rtb, "svc")

	zap.L().Named("svc").Info("while attached")
	require.Len(t, rtb.cleanups, 1)

	// run the registered cleanup, as the test framework would at teardown
	for _, f := range rtb.cleanups {
		f()
	}
	zap.L().Named("svc").Info("after teardown")

	recs := l.Capture().AnyLevel().Records()
	require.Len(t, recs, 1)
	assert.Equal(t, "while attached", recs[0].Message)
}

func TestMockNamedLogger(t *testing.T) {
	m := NewMock()
	require.NoError(t, m.Init())

	m.NamedLogger("sqs").Info("pipeline was started", zap.String("pipeline", "test-1"))
	m.ServiceLogger().Debug("service wiring done")

	l := NewWithCapture(t, m.Capture())
	l.AssertLoggedInfo("pipeline was started")
	l.AssertLoggedDebug("service wiring")

	p, err := capture.Struct("pipeline was started", map[string]any{"pipeline": "test-1"})
	require.NoError(t, err)
	assert.True(t, m.Capture().View(capture.Info).Contains(p))
}
