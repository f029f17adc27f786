// Package normalize reduces noisy speaker labels to a canonical
// comparable form: HTML entities decoded, honorific prefixes and
// post-nominal suffixes stripped, whitespace collapsed, and known
// problem renderings rewritten through a manual alias table.
//
// Normalization is idempotent and never fails; input that matches no
// rule passes through unchanged.
package normalize

import (
	"html"
	"regexp"
	"strings"
)

// Result carries the cleaned label plus how much was stripped.
// Callers use the strip counts to decide whether a last-name-only
// fallback is worth attempting: a label that lost a courtesy title
// ("Mr Hay") is a personal name, a label that lost nothing may be an
// office or a crowd phrase.
type Result struct {
	Cleaned string

	// PrefixesStripped counts leading honorific tokens removed,
	// where multi-word forms ("The Rt Hon") count once.
	PrefixesStripped int

	// SuffixesStripped counts trailing post-nominal groups removed.
	SuffixesStripped int
}

// honorificPrefixes are tried longest-first so "The Rt Hon" strips as
// one token rather than three. The list is closed: anything else at
// the front of a label is part of the name.
var honorificPrefixes = []string{
	"The Rt Hon",
	"Rt Hon",
	"The Right Hon",
	"Right Hon",
	"The Reverend",
	"The",
	"Mr",
	"Mrs",
	"Ms",
	"Miss",
	"Sir",
	"Dame",
	"Lord",
	"Lady",
	"Dr",
	"Mgr",
	"Rev",
	"Professor",
	"Prof",
	"Councillor",
	"Cllr",
}

// postNominalPattern strips trailing honours and role letters, with or
// without separating commas ("John Smith MP", "Sir John Smith, KCMG OBE").
var postNominalPattern = regexp.MustCompile(
	`(?:[,\s]+(?:OBE|CBE|MBE|KBE|DBE|GBE|MP|MSP|MLA|AM|MS|DL|TD|QC|KC|JP|Bt|Bart|KCMG|GCMG|KCB|GCB|KG|PC|FRS))+\.?$`)

// encodingFixes repairs recurring OCR and transcoding artifacts before
// any token stripping happens.
var encodingFixes = strings.NewReplacer(
	" ", " ", // non-breaking space
	"‘", "'",
	"’", "'",
	"“", `"`,
	"”", `"`,
	"–", "-",
	"—", "-",
	"&nbsp;", " ",
	"M'", "Mc", // 19th-century typesetting of Scottish surnames
)

var whitespacePattern = regexp.MustCompile(`\s+`)

// Normalizer applies the normalization pipeline, with an optional
// alias table for renderings that no general rule can repair.
type Normalizer struct {
	aliases map[string]string
}

// New creates a Normalizer. The alias table maps a fully-normalized
// label to its preferred rendering; a nil map is allowed. Each target
// is reduced to its own post-strip form first, so normalization stays
// idempotent even when an alias target carries a title.
func New(aliases map[string]string) *Normalizer {
	if len(aliases) == 0 {
		return &Normalizer{}
	}
	bare := &Normalizer{}
	table := make(map[string]string, len(aliases))
	for from, to := range aliases {
		table[from] = bare.Normalize(to).Cleaned
	}
	return &Normalizer{aliases: table}
}

// Normalize runs the full pipeline. The steps are order-sensitive:
// entity decoding and artifact repair first, then repeated prefix
// stripping, then suffix stripping, then whitespace collapse, then the
// alias table.
func (n *Normalizer) Normalize(raw string) Result {
	cleaned := html.UnescapeString(raw)
	cleaned = encodingFixes.Replace(cleaned)
	cleaned = strings.TrimSpace(cleaned)
	cleaned = strings.TrimSuffix(cleaned, ":")

	result := Result{}

	// Titles stack in mixed order ("The Rt Hon Dr"), so strip until no
	// listed prefix remains.
	for {
		stripped := stripOnePrefix(cleaned)
		if stripped == cleaned {
			break
		}
		cleaned = stripped
		result.PrefixesStripped++
	}

	for {
		stripped := postNominalPattern.ReplaceAllString(cleaned, "")
		if stripped == cleaned {
			break
		}
		cleaned = stripped
		result.SuffixesStripped++
	}

	cleaned = whitespacePattern.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(strings.Trim(cleaned, " ,."))

	if n != nil && n.aliases != nil {
		if alias, ok := n.aliases[cleaned]; ok {
			cleaned = alias
		}
	}

	result.Cleaned = cleaned
	return result
}

// Clean is a shorthand returning only the cleaned string.
func (n *Normalizer) Clean(raw string) string {
	return n.Normalize(raw).Cleaned
}

// PrepareLabel repairs a raw label for grammar parsing: entities
// decoded, encoding artifacts fixed, trailing post-nominals stripped,
// whitespace collapsed. Leading title tokens and the trailing colon
// stay in place; the grammar parsers classify those themselves.
func (n *Normalizer) PrepareLabel(raw string) string {
	cleaned := html.UnescapeString(raw)
	cleaned = encodingFixes.Replace(cleaned)
	cleaned = whitespacePattern.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(cleaned)

	colon := strings.HasSuffix(cleaned, ":")
	if colon {
		cleaned = strings.TrimSpace(strings.TrimSuffix(cleaned, ":"))
	}
	for {
		stripped := strings.TrimSpace(postNominalPattern.ReplaceAllString(cleaned, ""))
		if stripped == cleaned {
			break
		}
		cleaned = stripped
	}
	if colon {
		cleaned += ":"
	}
	return cleaned
}

// Key lowercases a cleaned label for index lookup.
func Key(cleaned string) string {
	return strings.ToLower(strings.TrimSpace(cleaned))
}

// stripOnePrefix removes the longest matching honorific prefix token,
// including a trailing period on abbreviated forms ("Dr.", "Rev.").
func stripOnePrefix(s string) string {
	for _, prefix := range honorificPrefixes {
		rest, ok := cutPrefixToken(s, prefix)
		if ok {
			return rest
		}
	}
	return s
}

// cutPrefixToken matches prefix case-insensitively at a word boundary,
// tolerating "Dr." for "Dr". Returns the remainder and whether it matched.
func cutPrefixToken(s, prefix string) (string, bool) {
	if len(s) < len(prefix) {
		return s, false
	}
	if !strings.EqualFold(s[:len(prefix)], prefix) {
		return s, false
	}
	rest := s[len(prefix):]
	if strings.HasPrefix(rest, ".") {
		rest = rest[1:]
	}
	// Must end at a word boundary: "Mgr" must not strip from "Mgrs".
	if rest != "" && rest[0] != ' ' {
		return s, false
	}
	trimmed := strings.TrimLeft(rest, " ")
	if trimmed == "" {
		// A label that is nothing but a title ("The Speaker" handled
		// elsewhere); do not strip the whole string away.
		return s, false
	}
	return trimmed, true
}
