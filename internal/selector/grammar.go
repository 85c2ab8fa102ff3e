// Package selector parses monitor selector expressions and resolves them
// against a display inventory.
//
// Supported formats:
//
//	M2                 monitor ID (left to right, 1-based)
//	name:"DELL U2720Q" exact name, case-insensitive
//	name:DELL          name substring, case-insensitive
//	name:/^LG.*4K$/    name regular expression (RE2), case-insensitive
//	conn:HDMI          connection type
//	path:1a2b3c4d      path key shown by --list
//
// When several selectors could claim the same display, the one with the best
// precedence rank wins: path, ID, exact name, partial name, regex, connection.
package selector

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/rileyhilliard/mosdef/internal/display"
)

// Kind identifies the predicate a selector compiles to.
type Kind int

const (
	KindUnknown Kind = iota
	KindPathKey
	KindIndex
	KindNameExact
	KindNamePartial
	KindNameRegex
	KindConnection
)

func (k Kind) String() string {
	switch k {
	case KindPathKey:
		return "path"
	case KindIndex:
		return "id"
	case KindNameExact:
		return "name-exact"
	case KindNamePartial:
		return "name-partial"
	case KindNameRegex:
		return "name-regex"
	case KindConnection:
		return "connection"
	default:
		return "unknown"
	}
}

// SupportedFormats is shown whenever a selector can't be parsed.
const SupportedFormats = `M<n>, name:"exact", name:partial, name:/regex/, conn:<TYPE>, path:<key>`

// Selector is one parsed selector token.
type Selector struct {
	Raw  string
	Kind Kind

	index int
	text  string // lowercased name text or path key
	re    *regexp.Regexp
	conn  display.ConnectionType
}

// ParseError describes why a single token was rejected.
type ParseError struct {
	Selector string
	Message  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid selector '%s': %s", e.Selector, e.Message)
}

func parseErr(token, format string, args ...interface{}) *ParseError {
	return &ParseError{Selector: token, Message: fmt.Sprintf(format, args...)}
}

// Parse turns a single token into a Selector.
func Parse(token string) (Selector, error) {
	raw := strings.TrimSpace(token)
	if raw == "" {
		return Selector{}, parseErr(token, "empty selector")
	}

	keyword, payload, hasColon := strings.Cut(raw, ":")
	if hasColon {
		switch strings.ToLower(keyword) {
		case "name":
			return parseName(raw, payload)
		case "conn":
			return parseConn(raw, payload)
		case "path":
			return parsePath(raw, payload)
		}
	}

	if (raw[0] == 'M' || raw[0] == 'm') && len(raw) > 1 && isDigits(raw[1:]) {
		n, err := strconv.Atoi(raw[1:])
		if err != nil || n < 1 {
			return Selector{}, parseErr(raw, "monitor IDs start at M1")
		}
		return Selector{Raw: raw, Kind: KindIndex, index: n}, nil
	}

	return Selector{}, parseErr(raw, "unknown selector format (supported: %s)", SupportedFormats)
}

// Validate reports whether token parses. It never disagrees with Parse.
func Validate(token string) error {
	_, err := Parse(token)
	return err
}

func parseName(raw, payload string) (Selector, error) {
	switch {
	case strings.HasPrefix(payload, `"`):
		if len(payload) < 2 || !strings.HasSuffix(payload, `"`) {
			return Selector{}, parseErr(raw, "missing closing quote")
		}
		literal := payload[1 : len(payload)-1]
		if literal == "" {
			return Selector{}, parseErr(raw, "empty name")
		}
		return Selector{Raw: raw, Kind: KindNameExact, text: strings.ToLower(literal)}, nil

	case strings.HasPrefix(payload, "/"):
		if len(payload) < 2 || !strings.HasSuffix(payload, "/") {
			return Selector{}, parseErr(raw, "missing closing '/' in regex")
		}
		pattern := payload[1 : len(payload)-1]
		if pattern == "" {
			return Selector{}, parseErr(raw, "empty regex")
		}
		re, err := regexp.Compile("(?i)" + pattern)
		if err != nil {
			return Selector{}, parseErr(raw, "bad regex: %v", err)
		}
		return Selector{Raw: raw, Kind: KindNameRegex, re: re}, nil

	default:
		if strings.TrimSpace(payload) == "" {
			return Selector{}, parseErr(raw, "empty name")
		}
		return Selector{Raw: raw, Kind: KindNamePartial, text: strings.ToLower(payload)}, nil
	}
}

func parseConn(raw, payload string) (Selector, error) {
	c, ok := display.ParseConnectionType(payload)
	if !ok {
		return Selector{}, parseErr(raw, "unknown connection type '%s' (valid: %s)",
			payload, strings.Join(display.ConnectionNames(), ", "))
	}
	return Selector{Raw: raw, Kind: KindConnection, conn: c}, nil
}

func parsePath(raw, payload string) (Selector, error) {
	if payload == "" {
		return Selector{}, parseErr(raw, "empty path key")
	}
	for _, r := range payload {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return Selector{}, parseErr(raw, "path keys are hexadecimal, as shown by --list")
		}
	}
	return Selector{Raw: raw, Kind: KindPathKey, text: strings.ToLower(payload)}, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// Match reports whether the selector claims d.
func (s Selector) Match(d display.Display) bool {
	switch s.Kind {
	case KindPathKey:
		return strings.ToLower(d.PathKey) == s.text
	case KindIndex:
		return d.Index == s.index
	case KindNameExact:
		return strings.ToLower(d.Name) == s.text
	case KindNamePartial:
		return strings.Contains(strings.ToLower(d.Name), s.text)
	case KindNameRegex:
		return s.re.MatchString(d.Name)
	case KindConnection:
		return d.Connection == s.conn
	default:
		return false
	}
}

// Rank is the precedence rank, 1 being the strongest.
func (s Selector) Rank() int {
	switch s.Kind {
	case KindPathKey:
		return 1
	case KindIndex:
		return 2
	case KindNameExact:
		return 3
	case KindNamePartial:
		return 4
	case KindNameRegex:
		return 5
	case KindConnection:
		return 6
	default:
		return 7
	}
}

// Exact is true for kinds that name a single display on purpose.
func (s Selector) Exact() bool {
	return s.Kind == KindPathKey || s.Kind == KindIndex || s.Kind == KindNameExact
}

func (s Selector) String() string {
	return s.Raw
}

// Problem is one rejected entry of a selector list.
type Problem struct {
	Selector string
	Message  string
}

// ListError collects every rejected selector of one or more lists.
type ListError struct {
	Problems []Problem
}

func (e *ListError) Error() string {
	lines := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		lines[i] = fmt.Sprintf("%s: %s", p.Selector, p.Message)
	}
	return strings.Join(lines, "\n")
}

func (e *ListError) add(err error) {
	if pe, ok := err.(*ParseError); ok {
		e.Problems = append(e.Problems, Problem{Selector: pe.Selector, Message: pe.Message})
		return
	}
	e.Problems = append(e.Problems, Problem{Message: err.Error()})
}

// Split breaks a comma-separated value into trimmed, non-empty entries.
// Commas inside quotes or between regex slashes of a name: selector stay
// part of the entry.
func Split(value string) []string {
	var (
		parts   []string
		current strings.Builder
		quoted  bool
		inRegex bool
	)

	flush := func() {
		if p := strings.TrimSpace(current.String()); p != "" {
			parts = append(parts, p)
		}
		current.Reset()
	}

	for i := 0; i < len(value); i++ {
		c := value[i]
		switch {
		case c == '"' && !inRegex:
			quoted = !quoted
		case c == '/' && !quoted:
			so := strings.ToLower(strings.TrimSpace(current.String()))
			if so == "name:" {
				inRegex = true
			} else if inRegex {
				inRegex = false
			}
		case c == ',' && !quoted && !inRegex:
			flush()
			continue
		}
		current.WriteByte(c)
	}
	flush()
	return parts
}

// ParseList parses a comma-separated selector value. All bad entries are
// reported together in a *ListError.
func ParseList(value string) ([]Selector, error) {
	var (
		sels []Selector
		le   ListError
	)
	for _, part := range Split(value) {
		s, err := Parse(part)
		if err != nil {
			le.add(err)
			continue
		}
		sels = append(sels, s)
	}
	if len(le.Problems) > 0 {
		return nil, &le
	}
	return sels, nil
}
