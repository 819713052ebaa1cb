package capture

import (
	"strings"
	"sync"

	"github.com/roadrunner-server/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Capture intercepts every emission reaching one logger identity and
// stores it as a Record, in emission order. One Capture belongs to exactly
// one test's lifecycle and must not be shared across concurrently running
// tests; concurrent emission into a single Capture is safe.
type Capture struct {
	mu      sync.Mutex
	records []Record
	seq     uint64

	// attachment to the zap globals, nil undo when detached
	attached bool
	target   string
	undo     func()
}

func New() *Capture {
	return &Capture{}
}

// Attach installs the capture behind the zap global logger, observing the
// named logger and its Named children (the empty name observes every
// logger). The sink sees every record regardless of the global core's own
// severity threshold. Attaching again with the same name is a no-op;
// attaching with a different name without an intervening Detach is a
// configuration error.
//
// Loggers built from the globals before Attach keep writing to the old
// core and are invisible to the capture. That includes sugared wrappers
// cached at package init time; build them after Attach, or wire
// [Capture.Core] into the logger yourself.
func (c *Capture) Attach(name string) error {
	const op = errors.Op("log_capture_attach")

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.attached {
		if c.target == name {
			return nil
		}
		return errors.E(op, errors.Errorf("already attached to logger %q, detach it first", c.target))
	}

	c.target = name
	prev := zap.L().Core()
	c.undo = zap.ReplaceGlobals(zap.New(zapcore.NewTee(prev, &core{c: c})))
	c.attached = true

	return nil
}

// Detach restores the previous global logger and stops future
// interception. Captured records are kept and stay queryable. Safe to
// call more than once. Cores handed out via [Capture.Core] keep recording,
// Detach only undoes Attach.
func (c *Capture) Detach() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.attached {
		return
	}

	c.undo()
	c.undo = nil
	c.target = ""
	c.attached = false
}

// Reset atomically clears the stored records. Attachment is not affected;
// the sequence counter keeps running so records never repeat an index.
// Callers must make sure concurrently logging code has finished before
// resetting.
func (c *Capture) Reset() {
	c.mu.Lock()
	c.records = c.records[:0]
	c.mu.Unlock()
}

// Core returns a zapcore.Core recording everything written to it. Tee it
// into any logger to observe that logger without touching the globals.
func (c *Capture) Core() zapcore.Core {
	return &core{c: c}
}

// Logger builds a named logger writing only to this capture, for code
// under test that accepts a *zap.Logger directly.
func (c *Capture) Logger(name string) *zap.Logger {
	l := zap.New(c.Core())
	if name != "" {
		l = l.Named(name)
	}
	return l
}

// View returns a read-only projection filtered to one severity.
func (c *Capture) View(l Level) View {
	return View{c: c, level: l}
}

// AnyLevel returns a projection over every severity, in emission order.
func (c *Capture) AnyLevel() View {
	return View{c: c, level: anyLevel}
}

func (c *Capture) append(r Record) {
	c.mu.Lock()
	r.Seq = c.seq
	c.seq++
	c.records = append(c.records, r)
	c.mu.Unlock()
}

// snapshot copies the current buffer so matching can run without holding
// the lock.
func (c *Capture) snapshot() []Record {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Record, len(c.records))
	copy(out, c.records)
	return out
}

// observes reports whether an entry from the named logger belongs to the
// observed subtree. Dotted names follow zap's Named chaining, mirroring
// hierarchical logger identities.
func (c *Capture) observes(logger string) bool {
	c.mu.Lock()
	target := c.target
	c.mu.Unlock()

	if target == "" {
		return true
	}
	return logger == target || strings.HasPrefix(logger, target+".")
}

// core is the sink side of a Capture: a zapcore.Core that stores entries
// instead of encoding them anywhere.
type core struct {
	c *Capture
	// fields bound via With, prepended to every write
	ctx []zapcore.Field
}

var _ zapcore.Core = (*core)(nil)

// Enabled always reports true: the sink imposes no severity filtering,
// level selection happens in the View.
func (s *core) Enabled(zapcore.Level) bool {
	return true
}

func (s *core) With(ff []zapcore.Field) zapcore.Core {
	ctx := make([]zapcore.Field, 0, len(s.ctx)+len(ff))
	ctx = append(ctx, s.ctx...)
	ctx = append(ctx, ff...)
	return &core{c: s.c, ctx: ctx}
}

func (s *core) Check(e zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if s.c.observes(e.LoggerName) {
		return ce.AddCore(e, s)
	}
	return ce
}

// Write stores the emission. It never fails and never blocks beyond the
// buffer mutex; the append is O(1).
func (s *core) Write(e zapcore.Entry, ff []zapcore.Field) error {
	all := ff
	if len(s.ctx) > 0 {
		all = make([]zapcore.Field, 0, len(s.ctx)+len(ff))
		all = append(all, s.ctx...)
		all = append(all, ff...)
	}

	s.c.append(Record{
		Level:   convLevel(e.Level),
		Message: e.Message,
		Fields:  convFields(all),
	})
	return nil
}

func (s *core) Sync() error {
	return nil
}
