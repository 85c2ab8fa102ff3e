package selector

import (
	"fmt"
	"strings"

	"github.com/rileyhilliard/mosdef/internal/display"
	"github.com/rileyhilliard/mosdef/internal/errors"
)

// Request carries the raw selector inputs of one invocation. Each entry may
// itself be a comma-separated list.
type Request struct {
	Only    []string
	Include []string
	Exclude []string
	Default string
}

func flatten(values []string) []string {
	var out []string
	for _, v := range values {
		out = append(out, Split(v)...)
	}
	return out
}

func (r Request) only() []string    { return flatten(r.Only) }
func (r Request) include() []string { return flatten(r.Include) }
func (r Request) exclude() []string { return flatten(r.Exclude) }

// Validate checks flag combinations and parses every selector. It does not
// need a display inventory and runs before anything touches the platform.
func (r Request) Validate() error {
	only, include, exclude := r.only(), r.include(), r.exclude()

	if len(only) > 0 && len(include) > 0 {
		return errors.New(errors.ErrArgs,
			"--only and --include can't be used together",
			"Use --only to pick exact targets, or --include/--exclude to adjust the default set.")
	}
	if len(only) > 0 && len(exclude) > 0 {
		return errors.New(errors.ErrArgs,
			"--only and --exclude can't be used together",
			"Drop the excluded displays from the --only list instead.")
	}

	var le ListError
	for _, group := range [][]string{only, include, exclude, Split(r.Default)} {
		for _, token := range group {
			if err := Validate(token); err != nil {
				le.add(err)
			}
		}
	}
	if len(le.Problems) > 0 {
		return errors.WrapWithCode(&le, errors.ErrSelector,
			"Invalid selector",
			"Supported formats: "+SupportedFormats+"\nRun 'mosdef --list' to see your displays.")
	}
	return nil
}

func parseAll(tokens []string) ([]Selector, error) {
	sels := make([]Selector, 0, len(tokens))
	for _, t := range tokens {
		s, err := Parse(t)
		if err != nil {
			return nil, err
		}
		sels = append(sels, s)
	}
	return sels, nil
}

// Resolve picks the target displays for req out of all.
//
//  1. --only is the whole target set.
//  2. Otherwise start from --include, then the saved default, then every display.
//  3. Remove anything matching --exclude.
//  4. An empty result is a *NoMatchError.
//  5. --only matching several displays through a non-exact selector is an
//     *AmbiguousError.
func Resolve(all []display.Display, req Request) ([]display.Display, error) {
	only, err := parseAll(req.only())
	if err != nil {
		return nil, err
	}

	if len(only) > 0 {
		matches := Order(all, only)
		if len(matches) == 0 {
			return nil, &NoMatchError{Selectors: req.only(), Inventory: display.SortByIndex(all)}
		}
		if amb := ambiguous(matches); len(matches) > 1 && len(amb) > 0 {
			return nil, &AmbiguousError{Selectors: req.only(), Candidates: amb}
		}
		return Displays(matches), nil
	}

	include, err := parseAll(req.include())
	if err != nil {
		return nil, err
	}
	def, err := parseAll(Split(req.Default))
	if err != nil {
		return nil, err
	}
	exclude, err := parseAll(req.exclude())
	if err != nil {
		return nil, err
	}

	var (
		working   []display.Display
		attempted []string
	)
	switch {
	case len(include) > 0:
		working = Displays(Order(all, include))
		attempted = req.include()
	case len(def) > 0:
		working = Displays(Order(all, def))
		attempted = Split(req.Default)
	default:
		working = display.SortByIndex(all)
	}

	if len(exclude) > 0 {
		kept := working[:0:0]
		for _, d := range working {
			if !matchesAny(d, exclude) {
				kept = append(kept, d)
			}
		}
		working = kept
		attempted = append(attempted, prefixed("not ", req.exclude())...)
	}

	if len(working) == 0 {
		return nil, &NoMatchError{Selectors: attempted, Inventory: display.SortByIndex(all)}
	}
	return working, nil
}

func matchesAny(d display.Display, sels []Selector) bool {
	for _, s := range sels {
		if s.Match(d) {
			return true
		}
	}
	return false
}

// ambiguous returns the displays that were claimed by a non-exact selector.
func ambiguous(matches []Match) []display.Display {
	var out []display.Display
	for _, m := range matches {
		if !m.Selector.Exact() {
			out = append(out, m.Display)
		}
	}
	return out
}

func prefixed(prefix string, values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = prefix + v
	}
	return out
}

// Suggestion lists the selectors that would pick out one display.
type Suggestion struct {
	Display   display.Display
	Selectors []string
}

// SuggestFor returns the ID, exact name, connection and path selectors of d.
func SuggestFor(d display.Display) Suggestion {
	return Suggestion{
		Display: d,
		Selectors: []string{
			d.ID,
			fmt.Sprintf("name:%q", d.Name),
			"conn:" + d.Connection.String(),
			PathSelector(d),
		},
	}
}

// PathSelector is the selector that can only ever match d.
func PathSelector(d display.Display) string {
	return "path:" + d.PathKey
}

// NoMatchError means the selectors left nothing to rotate.
type NoMatchError struct {
	Selectors []string
	Inventory []display.Display
}

func (e *NoMatchError) Error() string {
	if len(e.Selectors) == 0 {
		return "no displays found"
	}
	return fmt.Sprintf("no displays match %s", strings.Join(e.Selectors, ", "))
}

// Suggestions lists selectors for every known display.
func (e *NoMatchError) Suggestions() []Suggestion {
	out := make([]Suggestion, len(e.Inventory))
	for i, d := range e.Inventory {
		out[i] = SuggestFor(d)
	}
	return out
}

// AmbiguousError means --only picked several displays by a loose selector.
type AmbiguousError struct {
	Selectors  []string
	Candidates []display.Display
}

func (e *AmbiguousError) Error() string {
	names := make([]string, len(e.Candidates))
	for i, d := range e.Candidates {
		names[i] = fmt.Sprintf("%s (%s)", d.ID, d.Name)
	}
	return fmt.Sprintf("%s matches more than one display: %s",
		strings.Join(e.Selectors, ", "), strings.Join(names, ", "))
}

// Suggestions gives each ambiguous display its path: disambiguator.
func (e *AmbiguousError) Suggestions() []Suggestion {
	out := make([]Suggestion, len(e.Candidates))
	for i, d := range e.Candidates {
		out[i] = Suggestion{Display: d, Selectors: []string{PathSelector(d)}}
	}
	return out
}
