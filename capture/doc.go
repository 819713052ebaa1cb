// Package capture implements the record sink and match engine behind the
// logassert assertion surface.
//
// The central type is [Capture], which intercepts every emission reaching a
// zap logger and stores it as a [Record] in emission order. The sink is a
// plain zapcore.Core: attach it behind the global logger with
// [Capture.Attach], tee it into your own logger via [Capture.Core], or build
// a capture-only logger with [Capture.Logger]. The sink itself never
// filters by severity; level selection happens in the read path.
//
// [View] is a cheap level-filtered projection over the buffer, resolved
// against the live records at query time. The containment query
// [View.Contains] evaluates a [Pattern] against the filtered records and
// returns a plain boolean; a failed query is never an error.
//
// Patterns form a closed set: [Regex] (the default kind), [Exact],
// [Multiple], [Sequence], [Struct], [CompleteStruct] and [Nothing].
// Malformed pattern input (an unparsable regular expression, an impossible
// sequence element) is reported at construction time, never at match time.
//
// On a failed query, [View.Explain] renders the pattern, the queried
// severity and the full record dump so the test author can see what was
// actually logged next to what was expected.
package capture
