package grammar

import (
	"github.com/coolbeans/hansard/pkg/types"
)

// SeneddSpeakerScheme is the roster identifier scheme under which
// Senedd numeric speaker codes are recorded.
const SeneddSpeakerScheme = "senedd_speaker_code"

// SeneddParser handles Senedd (Welsh Parliament) labels. The Record of
// Proceedings tags speeches with numeric agent codes; prose labels
// fall back to the Commons-shape grammar, which the transcripts share.
type SeneddParser struct {
	commons *CommonsParser
}

// NewSeneddParser creates a Senedd parser.
func NewSeneddParser() *SeneddParser {
	return &SeneddParser{commons: NewCommonsParser()}
}

func (p *SeneddParser) Name() string { return "Senedd Speaker Parser" }

func (p *SeneddParser) Legislatures() []string {
	return []string{types.LegislatureSenedd}
}

// Parse decomposes a Senedd label.
func (p *SeneddParser) Parse(label string) (*Fields, error) {
	fields := &Fields{Raw: label, Legislature: types.LegislatureSenedd}
	working := splitCommon(label, fields)

	if isDigits(working) {
		fields.SpeakerCode = working
		return fields, nil
	}

	parsed, err := p.commons.Parse(label)
	if err != nil {
		return nil, &ParseError{Fragment: label, Legislature: types.LegislatureSenedd}
	}
	parsed.Legislature = types.LegislatureSenedd
	return parsed, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
