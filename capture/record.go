package capture

// Level is the severity of a captured record, ordered from Debug up to
// Critical.
type Level int8

const (
	Debug Level = iota
	Info
	Warning
	Error
	Critical
)

// anyLevel marks a view that spans every severity.
const anyLevel Level = -1

const anyLevelName string = "any level"

var levelNames = [...]string{
	Debug:    "DEBUG",
	Info:     "INFO",
	Warning:  "WARNING",
	Error:    "ERROR",
	Critical: "CRITICAL",
}

func (l Level) String() string {
	if l < Debug || l > Critical {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// Record is a single captured emission. Records are immutable once
// appended to a Capture.
type Record struct {
	// Level is the severity the emission was logged at.
	Level Level
	// Message is the fully rendered text, all substitutions applied.
	Message string
	// Fields holds the structured payload attached to the emission.
	// It is nil (absent, not empty) for a plain message-only call.
	Fields map[string]any
	// Seq is the insertion index, unique and strictly increasing per
	// Capture instance. It defines emission order.
	Seq uint64
}
