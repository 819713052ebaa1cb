package capture

import (
	"go.uber.org/zap/zapcore"
)

// convLevel maps a zapcore level onto the engine's severity scale.
// DPanic, Panic and Fatal all collapse into Critical; custom levels below
// Debug are reported as Debug.
func convLevel(l zapcore.Level) Level {
	switch {
	case l <= zapcore.DebugLevel:
		return Debug
	case l == zapcore.InfoLevel:
		return Info
	case l == zapcore.WarnLevel:
		return Warning
	case l == zapcore.ErrorLevel:
		return Error
	default:
		return Critical
	}
}

// convFields renders zap fields into a plain map, nil when the emission
// carried none. Extraction is best-effort: a panicking custom marshaler
// must not reach the code under observation, the record is kept with the
// fields dropped instead.
func convFields(ff []zapcore.Field) (m map[string]any) {
	if len(ff) == 0 {
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			m = nil
		}
	}()

	enc := zapcore.NewMapObjectEncoder()
	for i := 0; i < len(ff); i++ {
		ff[i].AddTo(enc)
	}

	return enc.Fields
}
