package grammar

import (
	"strings"

	"github.com/coolbeans/hansard/pkg/types"
)

// ScottishParser handles the Scottish Parliament grammar, where labels
// stack bracketed qualifiers, sometimes nested:
//
//	"Mr John Swinney (North Tayside) (SNP)"
//	"The Deputy First Minister (Mr John Swinney (North Tayside))"
//
// Brackets are unwrapped recursively and every unclassified segment is
// kept, in source order, for the resolver to narrow candidates against
// by set intersection until exactly one match remains.
type ScottishParser struct {
	commons *CommonsParser
}

// NewScottishParser creates a Scottish Parliament parser.
func NewScottishParser() *ScottishParser {
	return &ScottishParser{commons: NewCommonsParser()}
}

func (p *ScottishParser) Name() string { return "Scottish Parliament Speaker Parser" }

func (p *ScottishParser) Legislatures() []string {
	return []string{types.LegislatureScotland}
}

// Parse decomposes a Scottish Parliament label.
func (p *ScottishParser) Parse(label string) (*Fields, error) {
	fields := &Fields{Raw: label, Legislature: types.LegislatureScotland}
	working := splitCommon(label, fields)

	if err := p.consume(working, fields); err != nil {
		return nil, err
	}
	if !fields.HasPersonalName() && fields.Office == "" {
		return nil, &ParseError{Fragment: label, Legislature: types.LegislatureScotland}
	}
	return fields, nil
}

// consume processes one bracket level, recursing into any group that
// itself contains brackets.
func (p *ScottishParser) consume(fragment string, fields *Fields) error {
	base, groups := brackets(fragment)

	if base != "" {
		if IsOfficeLabel(base) {
			if fields.Office == "" {
				fields.Office = strings.TrimSpace(base)
			}
		} else if !fields.HasPersonalName() {
			if !p.commons.parseNamePart(base, fields) {
				return &ParseError{Fragment: fields.Raw, Legislature: types.LegislatureScotland}
			}
		} else {
			fields.Segments = append(fields.Segments, strings.TrimSpace(base))
		}
	}

	for _, group := range groups {
		switch {
		case group == "":
			continue
		case strings.Contains(group, "("):
			// Nested qualifier: unwrap and classify each level on its own.
			if err := p.consume(group, fields); err != nil {
				return err
			}
		case strings.EqualFold(group, maidenMarker):
			fields.MaidenSpeech = true
		case IsPartyCode(group):
			fields.Party = group
		case IsOfficeLabel(group):
			if fields.Office == "" {
				fields.Office = group
			}
		case !fields.HasPersonalName() && p.commons.looksLikeName(group):
			if !p.commons.parseNamePart(group, fields) {
				return &ParseError{Fragment: fields.Raw, Legislature: types.LegislatureScotland}
			}
		default:
			if fields.Constituency == "" {
				fields.Constituency = group
			}
			fields.Segments = append(fields.Segments, group)
		}
	}
	return nil
}
