package logassert

import (
	"go.uber.org/zap"

	"github.com/roadrunner-server/logassert/capture"
)

// Mock is a logger plugin double: it exposes the surface the RoadRunner
// logger plugin exposes to other plugins, with every logger it hands out
// backed by a single Capture. Register it in a container instead of the
// real logger plugin and assert on the capture afterwards.
type Mock struct {
	cap  *capture.Capture
	base *zap.Logger
}

func NewMock() *Mock {
	c := capture.New()
	return &Mock{cap: c, base: zap.New(c.Core())}
}

func (m *Mock) Init() error {
	return nil
}

// ServiceLogger returns the root capture-backed logger.
func (m *Mock) ServiceLogger() *zap.Logger {
	return m.base
}

// NamedLogger returns a capture-backed logger for the given plugin name.
func (m *Mock) NamedLogger(name string) *zap.Logger {
	return m.base.Named(name)
}

// Capture exposes the stored records for assertions.
func (m *Mock) Capture() *capture.Capture {
	return m.cap
}
