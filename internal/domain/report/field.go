package report

import "encoding/json"

// ValueKind discriminates the typed value carried by a ParsedField.
type ValueKind string

const (
	KindNumber  ValueKind = "number"
	KindBoolean ValueKind = "boolean"
	KindEnum    ValueKind = "enum"
)

// Confidence reflects how unambiguous the matched label was. Full label
// spellings score high, domain abbreviations (HDL, SBP, exang) score
// medium, and terse tokens that collide with everyday words or other
// measurements (BP, TG, HR, CP, FBS) score low.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// FieldValue is a tagged union: exactly one of Number, Bool or Text is
// meaningful, selected by Kind.
type FieldValue struct {
	Kind   ValueKind
	Number float64
	Bool   bool
	Text   string
}

func NumberValue(n float64) FieldValue { return FieldValue{Kind: KindNumber, Number: n} }
func BoolValue(b bool) FieldValue      { return FieldValue{Kind: KindBoolean, Bool: b} }
func EnumValue(s string) FieldValue    { return FieldValue{Kind: KindEnum, Text: s} }

// Any returns the bare value for flat form-data projection.
func (v FieldValue) Any() any {
	switch v.Kind {
	case KindNumber:
		return v.Number
	case KindBoolean:
		return v.Bool
	default:
		return v.Text
	}
}

func (v FieldValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Any())
}

// ParsedField is one recognized datum extracted from report text. The raw
// label and value are retained for audit. A ParsedField is never tagged as
// unknown; that marker belongs exclusively to UnknownField.
type ParsedField struct {
	FieldName  string     `json:"fieldName"`
	Value      FieldValue `json:"value"`
	Confidence Confidence `json:"confidence"`
	RawLabel   string     `json:"rawLabel"`
	RawValue   string     `json:"rawValue"`
}

// UnknownField is a label/value pair that matched no registered field.
// UnknownField(the flag) is always true; it is the type-level marker that the
// engine refused to guess a mapping.
type UnknownField struct {
	Label        string `json:"label"`
	Value        string `json:"value"`
	UnknownField bool   `json:"unknown_field"`
}

// ParseResult is the immutable output of one extraction run. Success stays
// true when no fields were found; it flips only on an engine-level fault
// (malformed input encoding).
type ParseResult struct {
	Success       bool           `json:"success"`
	ParsedFields  []ParsedField  `json:"parsedFields"`
	UnknownFields []UnknownField `json:"unknownFields"`
}
