package grammar

import (
	"regexp"
	"strings"

	"github.com/coolbeans/hansard/pkg/types"
)

// CommonsParser handles the Commons and Northern Ireland Assembly
// grammar:
//
//	[<Office> (]<Title> <FirstName> <LastName>[)] [(<Constituency>)] [(<Party>)]
//
// Bracketed groups may be office-then-name, name-then-constituency, or
// name-then-office; the content of each group decides, tried as known
// office first, then party code, then constituency name. The division
// list format "JACKSON, Robert (Wantage)" is also accepted.
type CommonsParser struct{}

// NewCommonsParser creates a Commons/NI parser.
func NewCommonsParser() *CommonsParser { return &CommonsParser{} }

func (p *CommonsParser) Name() string { return "Commons Speaker Parser" }

func (p *CommonsParser) Legislatures() []string {
	return []string{types.LegislatureCommons, types.LegislatureNI}
}

// courtesyTitles are the titles a Commons-style name may open with.
var courtesyTitles = map[string]bool{
	"mr": true, "mrs": true, "ms": true, "miss": true,
	"sir": true, "dame": true, "dr": true, "rev": true, "reverend": true,
}

// partyCodes are the short party designations seen in brackets.
var partyCodes = map[string]bool{
	"con": true, "lab": true, "ld": true, "lib dem": true, "libdem": true,
	"snp": true, "pc": true, "dup": true, "uup": true, "sdlp": true,
	"sf": true, "alliance": true, "green": true, "ukip": true, "tuv": true,
	"labour": true, "conservative": true, "plaid cymru": true,
	"lab/co-op": true, "ind": true, "independent": true, "ssp": true,
}

// IsPartyCode reports whether bracketed content is a party designation.
func IsPartyCode(s string) bool {
	return partyCodes[strings.ToLower(strings.TrimSpace(s))]
}

// divisionListPattern matches "JACKSON, Robert" style division entries.
var divisionListPattern = regexp.MustCompile(`^([A-Z][A-Za-z'\-]+(?:\s+[A-Z][A-Za-z'\-]+)*),\s*([A-Z][A-Za-z'.\-]+(?:\s+[A-Z][A-Za-z'.\-]+)*)$`)

// Parse decomposes a Commons/NI-style label.
func (p *CommonsParser) Parse(label string) (*Fields, error) {
	fields := &Fields{Raw: label, Legislature: types.LegislatureCommons}
	working := splitCommon(label, fields)

	base, groups := brackets(working)
	if base == "" && len(groups) == 0 {
		return nil, &ParseError{Fragment: label, Legislature: types.LegislatureCommons}
	}

	// The base text is either the name or an office wrapping a
	// bracketed name.
	if IsOfficeLabel(base) {
		fields.Office = strings.TrimSpace(base)
	} else if base != "" {
		if !p.parseNamePart(base, fields) {
			return nil, &ParseError{Fragment: label, Legislature: types.LegislatureCommons}
		}
	}

	for _, group := range groups {
		switch {
		case group == "":
			continue
		case strings.EqualFold(group, maidenMarker):
			fields.MaidenSpeech = true
		case IsOfficeLabel(group):
			fields.Office = group
		case IsPartyCode(group):
			fields.Party = group
		case !fields.HasPersonalName() && p.looksLikeName(group):
			// Office-then-name: "Mr Deputy Speaker (Sir Lindsay Hoyle)".
			if !p.parseNamePart(group, fields) {
				return nil, &ParseError{Fragment: label, Legislature: types.LegislatureCommons}
			}
		default:
			if fields.Constituency == "" {
				fields.Constituency = group
			} else {
				fields.Segments = append(fields.Segments, group)
			}
		}
	}

	if !fields.HasPersonalName() && fields.Office == "" {
		return nil, &ParseError{Fragment: label, Legislature: types.LegislatureCommons}
	}
	return fields, nil
}

// parseNamePart fills the title and name fields from a bare name
// fragment. Returns false when the fragment has no usable name.
func (p *CommonsParser) parseNamePart(fragment string, fields *Fields) bool {
	fragment = strings.TrimSpace(fragment)

	if match := divisionListPattern.FindStringSubmatch(fragment); match != nil && strings.ToUpper(match[1]) == match[1] {
		fields.LastName = titleCase(match[1])
		fields.FirstName = match[2]
		return true
	}

	words := strings.Fields(fragment)
	for len(words) > 0 {
		token := strings.ToLower(strings.TrimSuffix(words[0], "."))
		if token == "the" || token == "rt" || token == "hon" || token == "right" || token == "honourable" {
			words = words[1:]
			continue
		}
		if courtesyTitles[token] {
			if fields.Title == "" {
				fields.Title = token
			}
			words = words[1:]
			continue
		}
		break
	}

	switch len(words) {
	case 0:
		return false
	case 1:
		fields.LastName = words[0]
	default:
		fields.FirstName = strings.Join(words[:len(words)-1], " ")
		fields.LastName = words[len(words)-1]
	}
	return true
}

// looksLikeName reports whether bracketed content is plausibly a
// personal name rather than a constituency: it opens with a courtesy
// title or honorific.
func (p *CommonsParser) looksLikeName(fragment string) bool {
	words := strings.Fields(fragment)
	if len(words) < 2 {
		return false
	}
	return courtesyTitles[strings.ToLower(strings.TrimSuffix(words[0], "."))]
}

// titleCase converts an all-caps division-list surname to title case,
// preserving apostrophes and hyphens ("O'BRIEN" -> "O'Brien").
func titleCase(s string) string {
	var builder strings.Builder
	startOfWord := true
	for _, r := range strings.ToLower(s) {
		if startOfWord && r >= 'a' && r <= 'z' {
			builder.WriteRune(r - 32)
		} else {
			builder.WriteRune(r)
		}
		startOfWord = r == ' ' || r == '\'' || r == '-'
	}
	return builder.String()
}
