package report

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ErrMalformedInput is the only engine-level fault: input that is not valid
// UTF-8 text. It is deliberately distinct from "no fields found", which is a
// successful empty result.
var ErrMalformedInput = errors.New("report text is not valid UTF-8")

var leadingNumber = regexp.MustCompile(`^-?\d+(?:\.\d+)?`)

// Parse scans report text line by line and extracts every recognized
// label/value pair. It is a pure function: no I/O, no randomness, identical
// input always yields an identical result.
//
// Labels match registered synonyms exactly (after case-folding and
// whitespace normalization); near-miss spellings fall through to
// UnknownFields. A recognized label whose value fails validation is dropped
// silently rather than reclassified as unknown — callers that want to
// surface such typos must diff the input themselves. When the same field
// appears more than once, the first occurrence with a valid value wins and
// all later occurrences are ignored.
func Parse(text string) (ParseResult, error) {
	if !utf8.ValidString(text) {
		return ParseResult{Success: false}, ErrMalformedInput
	}

	res := ParseResult{Success: true}
	claimed := make(map[string]bool, len(registry))

	for _, line := range strings.Split(text, "\n") {
		rawLabel, rawValue, ok := splitPair(line)
		if !ok {
			continue
		}

		entry, found := lookupLabel(rawLabel)
		if !found {
			res.UnknownFields = append(res.UnknownFields, UnknownField{
				Label:        rawLabel,
				Value:        rawValue,
				UnknownField: true,
			})
			continue
		}

		if claimed[entry.spec.Name] {
			continue
		}

		value, valid := entry.spec.validateValue(rawValue)
		if !valid {
			continue
		}

		claimed[entry.spec.Name] = true
		res.ParsedFields = append(res.ParsedFields, ParsedField{
			FieldName:  entry.spec.Name,
			Value:      value,
			Confidence: entry.confidence,
			RawLabel:   rawLabel,
			RawValue:   rawValue,
		})
	}

	return res, nil
}

// splitPair extracts a (label, value) pair from one line. Supported forms:
// "Label: Value", "Label = Value", and "Label Value" where a whitespace run
// separates a registered label from its value. For the explicit separators
// the split is unconditional, so unrecognized labels still surface as
// unknown pairs. For the bare-whitespace form the split point is only
// unambiguous when a label prefix matches the registry, so unmatched prose
// lines are skipped instead of guessed at.
func splitPair(line string) (label, value string, ok bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return "", "", false
	}

	for _, sep := range []string{":", "="} {
		if i := strings.Index(line, sep); i >= 0 {
			label = strings.TrimSpace(line[:i])
			value = strings.TrimSpace(line[i+len(sep):])
			if label == "" || value == "" {
				return "", "", false
			}
			return label, value, true
		}
	}

	fields := strings.Fields(line)
	if len(fields) < 2 {
		return "", "", false
	}
	// Longest label prefix first so "sleep hours 6" binds the two-word
	// synonym before the one-word one.
	for i := len(fields) - 1; i >= 1; i-- {
		candidate := strings.Join(fields[:i], " ")
		if _, found := lookupLabel(candidate); found {
			return candidate, strings.Join(fields[i:], " "), true
		}
	}
	return "", "", false
}

// validateValue checks raw value text against the field's kind. A false
// return means the occurrence contributes nothing, as if absent.
func (s *fieldSpec) validateValue(raw string) (FieldValue, bool) {
	switch s.Kind {
	case KindNumber:
		m := leadingNumber.FindString(strings.TrimSpace(raw))
		if m == "" {
			return FieldValue{}, false
		}
		n, err := strconv.ParseFloat(m, 64)
		if err != nil || math.IsInf(n, 0) || math.IsNaN(n) {
			return FieldValue{}, false
		}
		if n < s.Min || n > s.Max {
			return FieldValue{}, false
		}
		return NumberValue(n), true

	case KindBoolean:
		token := strings.ToLower(strings.TrimSpace(raw))
		if truthyTokens[token] {
			return BoolValue(true), true
		}
		if falsyTokens[token] {
			return BoolValue(false), true
		}
		return FieldValue{}, false

	case KindEnum:
		lowered := strings.ToLower(raw)
		for _, tok := range s.Enum {
			if strings.Contains(lowered, tok.Token) {
				return EnumValue(tok.Canonical), true
			}
		}
		return FieldValue{}, false
	}

	return FieldValue{}, false
}

// ConvertToFormData projects parsed fields into a flat record keyed by
// canonical field name, suitable for pre-filling a form. Unknown fields are
// excluded entirely and the projection never introduces a key named
// "unknown".
func ConvertToFormData(fields []ParsedField) map[string]any {
	form := make(map[string]any, len(fields))
	for _, f := range fields {
		form[f.FieldName] = f.Value.Any()
	}
	return form
}
