package models

import (
	"encoding/json"
	"strings"
	"time"
)

// Nullable distinguishes an omitted field from an explicit null in PATCH
// payloads. The zero value is omitted when tagged with omitzero.
type Nullable[T any] struct {
	Set   bool
	Value *T
}

// Null returns a Nullable that marshals to JSON null
func Null[T any]() Nullable[T] {
	return Nullable[T]{Set: true}
}

// Some returns a Nullable holding v
func Some[T any](v T) Nullable[T] {
	return Nullable[T]{Set: true, Value: &v}
}

// IsZero reports whether the field should be omitted
func (n Nullable[T]) IsZero() bool {
	return !n.Set
}

func (n Nullable[T]) MarshalJSON() ([]byte, error) {
	if n.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*n.Value)
}

func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

// ClienteRef is the compact client reference embedded in tickets and interventions
type ClienteRef struct {
	ID               int64  `json:"id"`
	CodiceGestionale string `json:"codice_gestionale"`
	RagioneSociale   string `json:"ragione_sociale"`
}

// TecnicoRef is the compact technician reference embedded in tickets and interventions
type TecnicoRef struct {
	ID           int64  `json:"id"`
	NomeCompleto string `json:"nome_completo"`
	Email        string `json:"email"`
}

// Timestamp layouts accepted from the backend
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses a backend date or datetime. Values without a zone are
// read in loc.
func ParseTimestamp(value string, loc *time.Location) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t.In(loc), true
	}
	for _, layout := range timestampLayouts[1:] {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DatePart returns the YYYY-MM-DD prefix of a backend timestamp
func DatePart(value string) string {
	if len(value) >= 10 {
		return value[:10]
	}
	return value
}

// ClockPart trims a HH:MM[:SS] time to HH:MM
func ClockPart(value string) string {
	if len(value) >= 5 {
		return value[:5]
	}
	return value
}
