package schema

import (
	"strings"
	"unicode"
)

// cleanParts trims non-alphanumeric punctuation from the ends of brand name
// parts and drops parts that end up empty.
func cleanParts(parts []string) []string {
	var cleaned []string
	for _, p := range parts {
		cp := strings.TrimFunc(p, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsNumber(r)
		})
		if cp != "" {
			cleaned = append(cleaned, cp)
		}
	}
	return cleaned
}

// titleCase uppercases the first rune of a part, using runes for Unicode
// safety, and leaves parts that are already all-caps (ISO, EAA) alone.
func titleCase(part string) string {
	if part == strings.ToUpper(part) {
		return part
	}
	rr := []rune(part)
	rr[0] = unicode.ToUpper(rr[0])
	return string(rr)
}

// DisplayBrand formats a brand slug like "raw_whey_iso" as "Raw Whey Iso" for
// table output. Slugs split on underscores, hyphens, and whitespace; already
// spaced names pass through with the same casing treatment.
func DisplayBrand(brand string) string {
	trimmed := strings.TrimSpace(brand)
	if trimmed == "" {
		return trimmed
	}

	parts := strings.FieldsFunc(trimmed, func(r rune) bool {
		return r == '_' || r == '-' || unicode.IsSpace(r)
	})
	cleaned := cleanParts(parts)
	if len(cleaned) == 0 {
		return trimmed
	}

	for i, p := range cleaned {
		cleaned[i] = titleCase(p)
	}
	return strings.Join(cleaned, " ")
}

// FormatTriggeredRules joins rule names as "glycine_disproportion, low_eaas".
func FormatTriggeredRules(rules []SpikingRule) string {
	names := make([]string, len(rules))
	for i, r := range rules {
		names[i] = string(r)
	}
	return strings.Join(names, ", ")
}

// FormatWarnings joins warning names for single-cell display.
func FormatWarnings(warnings []Warning) string {
	names := make([]string, len(warnings))
	for i, w := range warnings {
		names[i] = string(w)
	}
	return strings.Join(names, ", ")
}
