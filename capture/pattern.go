package capture

import (
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/roadrunner-server/errors"
)

// Pattern is an immutable verifier value evaluated against captured
// records. The variant set is closed: Regex, Exact, Multiple, Sequence,
// Struct, CompleteStruct and Nothing; construction validates the input and
// never touches a Capture.
type Pattern interface {
	fmt.Stringer
	// match reports whether a single record satisfies the pattern.
	match(r Record) bool
}

// lineMatcher is the subset of patterns that can be evaluated against a
// single line of text, usable inside Sequence and as the message part of
// Struct.
type lineMatcher interface {
	Pattern
	matchLine(line string) bool
	// tokenRule compiles a plain-string expected value with this
	// pattern kind's own matching rule.
	tokenRule(token string) (func(string) bool, error)
}

// Regex compiles expr and matches it, unanchored, against a record's
// message. This is the default verifier kind.
func Regex(expr string) (Pattern, error) {
	const op = errors.Op("pattern_regex")

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, errors.E(op, err)
	}
	return &regexPattern{expr: expr, re: re}, nil
}

type regexPattern struct {
	expr string
	re   *regexp.Regexp
}

func (p *regexPattern) match(r Record) bool {
	return p.re.MatchString(r.Message)
}

func (p *regexPattern) matchLine(line string) bool {
	return p.re.MatchString(line)
}

func (p *regexPattern) tokenRule(token string) (func(string) bool, error) {
	const op = errors.Op("pattern_regex_token")

	re, err := regexp.Compile(token)
	if err != nil {
		return nil, errors.E(op, err)
	}
	return re.MatchString, nil
}

func (p *regexPattern) String() string {
	return fmt.Sprintf("Regex(%q)", p.expr)
}

// Exact matches when the token appears literally inside a record's
// message, regex metacharacters and all.
func Exact(token string) Pattern {
	return &exactPattern{token: token}
}

type exactPattern struct {
	token string
}

func (p *exactPattern) match(r Record) bool {
	return strings.Contains(r.Message, p.token)
}

func (p *exactPattern) matchLine(line string) bool {
	return strings.Contains(line, p.token)
}

func (p *exactPattern) tokenRule(token string) (func(string) bool, error) {
	return func(s string) bool { return strings.Contains(s, token) }, nil
}

func (p *exactPattern) String() string {
	return fmt.Sprintf("Exact(%q)", p.token)
}

// Multiple matches when one single record's message satisfies every token,
// each token evaluated as an unanchored regular expression. A record
// containing only some of the tokens does not match.
func Multiple(tokens ...string) (Pattern, error) {
	const op = errors.Op("pattern_multiple")

	res := make([]*regexp.Regexp, len(tokens))
	for i := range tokens {
		re, err := regexp.Compile(tokens[i])
		if err != nil {
			return nil, errors.E(op, err)
		}
		res[i] = re
	}
	return &multiplePattern{tokens: tokens, res: res}, nil
}

type multiplePattern struct {
	tokens []string
	res    []*regexp.Regexp
}

func (p *multiplePattern) match(r Record) bool {
	return p.matchLine(r.Message)
}

func (p *multiplePattern) matchLine(line string) bool {
	for _, re := range p.res {
		if !re.MatchString(line) {
			return false
		}
	}
	return true
}

func (p *multiplePattern) tokenRule(token string) (func(string) bool, error) {
	const op = errors.Op("pattern_multiple_token")

	re, err := regexp.Compile(token)
	if err != nil {
		return nil, errors.E(op, err)
	}
	return re.MatchString, nil
}

func (p *multiplePattern) String() string {
	qq := make([]string, len(p.tokens))
	for i := range p.tokens {
		qq[i] = fmt.Sprintf("%q", p.tokens[i])
	}
	return "Multiple(" + strings.Join(qq, ", ") + ")"
}

// Sequence matches when one record's message, split into lines, contains a
// contiguous run satisfying the sub-patterns in order, one line per
// sub-pattern, with no gaps. Elements may be strings (compiled as Regex)
// or Regex, Exact and Multiple values; other pattern kinds have no
// per-line meaning and are rejected.
func Sequence(lines ...any) (Pattern, error) {
	const op = errors.Op("pattern_sequence")

	if len(lines) == 0 {
		return nil, errors.E(op, errors.Str("sequence needs at least one line pattern"))
	}

	sub := make([]lineMatcher, len(lines))
	for i := range lines {
		switch v := lines[i].(type) {
		case string:
			p, err := Regex(v)
			if err != nil {
				return nil, errors.E(op, err)
			}
			sub[i] = p.(lineMatcher)
		case lineMatcher:
			sub[i] = v
		case Pattern:
			return nil, errors.E(op, errors.Errorf("pattern %s cannot be matched against a single line", v))
		default:
			return nil, errors.E(op, errors.Errorf("unsupported line pattern type %T", lines[i]))
		}
	}
	return &sequencePattern{lines: sub}, nil
}

type sequencePattern struct {
	lines []lineMatcher
}

func (p *sequencePattern) match(r Record) bool {
	text := strings.Split(r.Message, "\n")
	for off := 0; off+len(p.lines) <= len(text); off++ {
		ok := true
		for i := range p.lines {
			if !p.lines[i].matchLine(text[off+i]) {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}

func (p *sequencePattern) String() string {
	parts := make([]string, len(p.lines))
	for i := range p.lines {
		parts[i] = p.lines[i].String()
	}
	return "Sequence(" + strings.Join(parts, ", ") + ")"
}

// Struct matches a record that carries structured fields: the message must
// satisfy the message sub-pattern and every expected field must be present
// and match. Fields in the record beyond the expected ones are allowed.
//
// The message may be a string (compiled as Regex) or a Regex, Exact or
// Multiple value. Expected field values are classified by type: a Pattern
// is evaluated against the field's string form, a plain string follows the
// message sub-pattern's own rule, anything else must compare equal.
func Struct(message any, fields map[string]any) (Pattern, error) {
	return newStruct(message, fields, false)
}

// CompleteStruct is Struct with nothing unaccounted for: the record's
// field key set must equal the expected one exactly.
func CompleteStruct(message any, fields map[string]any) (Pattern, error) {
	return newStruct(message, fields, true)
}

func newStruct(message any, fields map[string]any, complete bool) (Pattern, error) {
	const op = errors.Op("pattern_struct")

	var msg lineMatcher
	switch v := message.(type) {
	case string:
		p, err := Regex(v)
		if err != nil {
			return nil, errors.E(op, err)
		}
		msg = p.(lineMatcher)
	case lineMatcher:
		msg = v
	default:
		return nil, errors.E(op, errors.Errorf("unsupported message pattern type %T", message))
	}

	// precompile the rules for string and Pattern expected values, so a
	// malformed one surfaces now and not at match time
	rules := make(map[string]func(string) bool, len(fields))
	for k, want := range fields {
		switch w := want.(type) {
		case lineMatcher:
			rules[k] = w.matchLine
		case Pattern:
			return nil, errors.E(op, errors.Errorf("pattern %s cannot verify field %q", w, k))
		case string:
			fn, err := msg.tokenRule(w)
			if err != nil {
				return nil, errors.E(op, err)
			}
			rules[k] = fn
		}
	}

	return &structPattern{msg: msg, fields: fields, rules: rules, complete: complete}, nil
}

type structPattern struct {
	msg      lineMatcher
	fields   map[string]any
	rules    map[string]func(string) bool
	complete bool
}

func (p *structPattern) match(r Record) bool {
	if r.Fields == nil {
		return false
	}
	if !p.msg.match(r) {
		return false
	}
	if p.complete && len(r.Fields) != len(p.fields) {
		return false
	}

	for k, want := range p.fields {
		got, ok := r.Fields[k]
		if !ok {
			return false
		}
		if rule, ruled := p.rules[k]; ruled {
			s, isStr := got.(string)
			if !isStr || !rule(s) {
				return false
			}
			continue
		}
		if !equalValue(got, want) {
			return false
		}
	}
	return true
}

func (p *structPattern) String() string {
	name := "Struct"
	if p.complete {
		name = "CompleteStruct"
	}

	keys := make([]string, 0, len(p.fields))
	for k := range p.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		switch w := p.fields[k].(type) {
		case Pattern:
			parts = append(parts, k+"="+w.String())
		case string:
			parts = append(parts, fmt.Sprintf("%s=%q", k, w))
		default:
			parts = append(parts, fmt.Sprintf("%s=%v", k, w))
		}
	}
	return fmt.Sprintf("%s(%s, %s)", name, p.msg, strings.Join(parts, ", "))
}

// equalValue compares a captured field value with an expected one. Zap's
// map encoder widens integers to int64 and floats to float64, so numeric
// values compare across widths; everything else goes through go-cmp.
func equalValue(got, want any) bool {
	if got == nil || want == nil {
		return got == nil && want == nil
	}
	if reflect.TypeOf(got) == reflect.TypeOf(want) {
		return cmp.Equal(got, want)
	}

	gn, gok := numeric(reflect.ValueOf(got))
	wn, wok := numeric(reflect.ValueOf(want))
	return gok && wok && gn == wn
}

func numeric(v reflect.Value) (float64, bool) {
	switch {
	case v.CanInt():
		return float64(v.Int()), true
	case v.CanUint():
		return float64(v.Uint()), true
	case v.CanFloat():
		return v.Float(), true
	}
	return 0, false
}

// Nothing matches only when the queried view holds no records at all. Its
// negation ("something was logged", without saying what) is intentionally
// not offered; negating queries reject it as a usage error.
var Nothing Pattern = nothingPattern{}

type nothingPattern struct{}

func (nothingPattern) match(Record) bool {
	return false
}

func (nothingPattern) String() string {
	return "nothing"
}

// IsNothing reports whether p is the Nothing pattern.
func IsNothing(p Pattern) bool {
	_, ok := p.(nothingPattern)
	return ok
}
