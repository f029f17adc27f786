package grammar

import (
	"strings"

	"github.com/coolbeans/hansard/pkg/types"
)

// LordsParser handles the peerage grammar:
//
//	<Title> [<Name>] [of <Place>]
//
// where Title comes from a closed set and either the name or the
// territorial designation (or both) may be present. "Lord Bishop" and
// "Lord Archbishop" are courtesy variants and normalize to their base
// form, so "The Lord Bishop of Southwark" parses the same way as
// "Bishop of Southwark".
type LordsParser struct{}

// NewLordsParser creates a Lords peerage parser.
func NewLordsParser() *LordsParser { return &LordsParser{} }

func (p *LordsParser) Name() string { return "Lords Peerage Parser" }

func (p *LordsParser) Legislatures() []string {
	return []string{types.LegislatureLords}
}

// peerageTitles is the closed title set, ordered longest-first so the
// courtesy variants match before their base forms.
var peerageTitles = []struct {
	form string
	base string
}{
	{"lord archbishop", "archbishop"},
	{"lord bishop", "bishop"},
	{"archbishop", "archbishop"},
	{"bishop", "bishop"},
	{"marchioness", "marchioness"},
	{"marquess", "marquess"},
	{"viscountess", "viscountess"},
	{"viscount", "viscount"},
	{"countess", "countess"},
	{"baroness", "baroness"},
	{"duchess", "duchess"},
	{"duke", "duke"},
	{"earl", "earl"},
	{"lady", "lady"},
	{"lord", "lord"},
}

// Parse decomposes a peerage-style label.
func (p *LordsParser) Parse(label string) (*Fields, error) {
	fields := &Fields{Raw: label, Legislature: types.LegislatureLords}
	working := splitCommon(label, fields)

	working, groups := brackets(working)
	for _, group := range groups {
		if strings.EqualFold(group, maidenMarker) {
			fields.MaidenSpeech = true
		}
	}

	working = strings.TrimSpace(strings.TrimPrefix(working, "The "))
	working = strings.TrimSpace(strings.TrimPrefix(working, "the "))

	lower := strings.ToLower(working)
	for _, title := range peerageTitles {
		if lower == title.form || strings.HasPrefix(lower, title.form+" ") {
			fields.Title = title.base
			rest := strings.TrimSpace(working[len(title.form):])
			p.splitNameAndPlace(rest, fields)
			if fields.LastName == "" && fields.Place == "" && fields.Title != "" && rest != "" {
				// Something followed the title but parsed to nothing.
				return nil, &ParseError{Fragment: label, Legislature: types.LegislatureLords}
			}
			return fields, nil
		}
	}
	return nil, &ParseError{Fragment: label, Legislature: types.LegislatureLords}
}

// splitNameAndPlace splits "<Name> of <Place>", "<Name>", or
// "of <Place>" following a peerage title. Peerage names are single
// surnames ("Lord Smith of Finsbury"), so the whole name part goes to
// LastName.
func (p *LordsParser) splitNameAndPlace(rest string, fields *Fields) {
	if rest == "" {
		return
	}
	lower := strings.ToLower(rest)
	if strings.HasPrefix(lower, "of ") {
		fields.Place = strings.TrimSpace(rest[len("of "):])
		return
	}
	// Split on the last " of " so compound names keep their particles.
	if idx := strings.LastIndex(lower, " of "); idx >= 0 {
		fields.LastName = strings.TrimSpace(rest[:idx])
		fields.Place = strings.TrimSpace(rest[idx+len(" of "):])
		return
	}
	fields.LastName = strings.TrimSpace(rest)
}
