// Package grammar decomposes raw speaker labels into structured fields.
// Source formatting differs fundamentally per legislature, so each
// legislature family gets its own parser behind a common interface:
// peerage titles for the Lords, office/name/constituency brackets for
// the Commons and Northern Ireland, recursive bracket narrowing for
// the Scottish Parliament, and numeric speaker codes for the Senedd.
package grammar

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Fields is the structured decomposition of one speaker label.
type Fields struct {
	Raw         string
	Legislature string

	Title     string // lowercased courtesy or peerage title ("mr", "baroness")
	FirstName string
	LastName  string

	Place        string // peerage territorial designation ("Southwark")
	Constituency string
	Party        string
	Office       string
	SpeakerCode  string // numeric agent code (Senedd)

	// Segments holds bracketed fragments the parser could not classify
	// on its own; the resolver narrows candidates against each in turn.
	Segments []string

	TrailingColon bool
	MaidenSpeech  bool
}

// HasPersonalName reports whether the label carried any name part.
func (f *Fields) HasPersonalName() bool {
	return f.FirstName != "" || f.LastName != ""
}

// FullName returns "First Last" or whichever part is present.
func (f *Fields) FullName() string {
	if f.FirstName != "" && f.LastName != "" {
		return f.FirstName + " " + f.LastName
	}
	if f.LastName != "" {
		return f.LastName
	}
	return f.FirstName
}

// ParseError means the label matched no known grammar shape. It is
// never recovered locally; the ingestion pipeline decides whether to
// halt or route the fragment to patch tooling.
type ParseError struct {
	Fragment    string
	Legislature string
	Context     string // source date/page where available
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("unparseable speaker label %q (%s grammar)", e.Fragment, e.Legislature)
	if e.Context != "" {
		msg += " at " + e.Context
	}
	return msg
}

// SpeakerParser parses speaker labels for one legislature family.
// Implementations must be safe for concurrent use.
type SpeakerParser interface {
	// Name returns the human-readable parser name.
	Name() string

	// Legislatures returns the legislature codes this parser handles
	// (see pkg/types legislature constants).
	Legislatures() []string

	// Parse decomposes a raw label. On failure it returns a *ParseError.
	Parse(label string) (*Fields, error)
}

// Registry dispatches labels to the parser registered for a
// legislature. Thread-safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	parsers map[string]SpeakerParser
	byCode  map[string]string // legislature code -> parser name
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		parsers: make(map[string]SpeakerParser),
		byCode:  make(map[string]string),
	}
}

// DefaultRegistry returns a registry with every built-in parser registered.
func DefaultRegistry() *Registry {
	registry := NewRegistry()
	for _, parser := range []SpeakerParser{
		NewLordsParser(),
		NewCommonsParser(),
		NewScottishParser(),
		NewSeneddParser(),
	} {
		if err := registry.Register(parser); err != nil {
			panic(err) // built-ins cannot collide
		}
	}
	return registry
}

// Register adds a parser. A legislature code may only be claimed once.
func (r *Registry) Register(parser SpeakerParser) error {
	if parser == nil {
		return fmt.Errorf("speaker parser cannot be nil")
	}
	name := parser.Name()
	if name == "" {
		return fmt.Errorf("speaker parser name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.parsers[name]; exists {
		return fmt.Errorf("speaker parser %q already registered", name)
	}
	for _, code := range parser.Legislatures() {
		if claimed, exists := r.byCode[code]; exists {
			return fmt.Errorf("legislature %q already claimed by parser %q", code, claimed)
		}
	}
	r.parsers[name] = parser
	for _, code := range parser.Legislatures() {
		r.byCode[code] = name
	}
	return nil
}

// ForLegislature returns the parser claiming the given code.
func (r *Registry) ForLegislature(code string) (SpeakerParser, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	name, ok := r.byCode[code]
	if !ok {
		return nil, false
	}
	parser, ok := r.parsers[name]
	return parser, ok
}

// List returns registered parser names in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.parsers))
	for name := range r.parsers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of registered parsers.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.parsers)
}

// officeKeywords mark a label as denoting a role rather than a person.
var officeKeywords = []string{
	"speaker",
	"presiding officer",
	"first minister",
	"prime minister",
	"llywydd",
	"dirprwy lywydd",
	"minister",
	"secretary of state",
	"counsel general",
	"leader of the house",
	"leader of the opposition",
	"attorney general",
	"advocate general",
	"solicitor general",
	"lord chancellor",
	"chairman of ways and means",
	"temporary chair",
	"chairperson",
	"chairman",
	"chair",
	"clerk",
}

// IsOfficeLabel reports whether a label denotes an office rather than
// a personal name ("The Deputy Speaker", "First Minister").
func IsOfficeLabel(label string) bool {
	l := strings.ToLower(strings.TrimSpace(label))
	l = strings.TrimSuffix(l, ":")
	l = strings.TrimPrefix(l, "the ")
	// "Mr Speaker", "Madam Deputy Speaker" are offices, not names.
	for _, courtesy := range []string{"mr ", "mrs ", "madam ", "madame "} {
		l = strings.TrimPrefix(l, courtesy)
	}
	for _, keyword := range officeKeywords {
		if l == keyword || l == "deputy "+keyword || l == "acting "+keyword ||
			strings.HasPrefix(l, keyword+" ") || strings.HasPrefix(l, "deputy "+keyword+" ") ||
			strings.HasPrefix(l, keyword+" of ") || strings.HasPrefix(l, keyword+" for ") {
			return true
		}
	}
	return false
}

// maidenMarker is appended to a label for a member's first speech.
const maidenMarker = "maiden speech"

// splitCommon handles the decorations every grammar shares: a trailing
// colon and a "(Maiden Speech)" marker.
func splitCommon(label string, fields *Fields) string {
	trimmed := strings.TrimSpace(label)
	if strings.HasSuffix(trimmed, ":") {
		fields.TrailingColon = true
		trimmed = strings.TrimSpace(strings.TrimSuffix(trimmed, ":"))
	}
	return trimmed
}

// brackets extracts top-level parenthesized groups, respecting
// nesting, and returns the remaining base text plus the groups in
// source order.
func brackets(label string) (base string, groups []string) {
	var builder strings.Builder
	depth := 0
	start := 0
	for i, r := range label {
		switch r {
		case '(':
			if depth == 0 {
				start = i + 1
			}
			depth++
		case ')':
			depth--
			if depth == 0 {
				groups = append(groups, strings.TrimSpace(label[start:i]))
			}
			if depth < 0 {
				depth = 0 // tolerate stray closers from bad OCR
			}
		default:
			if depth == 0 {
				builder.WriteRune(r)
			}
		}
	}
	return strings.TrimSpace(builder.String()), groups
}
