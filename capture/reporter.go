package capture

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// Explain renders the diagnostic for a failed containment query: the
// pattern, the queried severity, then every captured record in emission
// order. The dump deliberately spans all levels even when the query was
// level-specific, so what was actually logged sits next to what was
// expected; no record is ever omitted.
func (v View) Explain(p Pattern) string {
	all := v.c.snapshot()

	var b strings.Builder
	if len(all) == 0 {
		fmt.Fprintf(&b, "for %s in %s failed; no logged lines at all!", p, v.levelName())
		return b.String()
	}

	fmt.Fprintf(&b, "for %s in %s failed; logged lines:", p, v.levelName())
	for i := range all {
		b.WriteByte('\n')
		b.WriteString(formatRecord(all[i]))
	}
	return b.String()
}

// ExplainPresent renders the diagnostic for a negated query that found an
// unwanted match.
func (v View) ExplainPresent(p Pattern, r Record) string {
	return fmt.Sprintf("for %s not in %s failed; offending record:\n%s", p, v.levelName(), formatRecord(r))
}

// formatRecord renders one dump row with the level name in a fixed-width
// column. Structured fields, when present, follow the message as JSON.
func formatRecord(r Record) string {
	row := fmt.Sprintf("     %-9s %q", r.Level.String(), r.Message)
	if r.Fields == nil {
		return row
	}

	raw, err := json.Marshal(r.Fields)
	if err != nil {
		// unmarshalable payloads still leave the row intact
		return row + "  fields=?"
	}
	return row + "  " + string(raw)
}
