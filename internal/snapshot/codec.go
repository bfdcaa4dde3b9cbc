// Package snapshot encodes and decodes the full aggregate for the
// durable store and the import/export paths.
package snapshot

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/luminafin/lumina/internal/domain"
)

// Encode serializes the aggregate to JSON. Amounts travel as decimal
// strings, so values survive the round-trip exactly.
func Encode(state domain.AppData) ([]byte, error) {
	data, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot: %w", err)
	}
	return data, nil
}

// Decode parses a snapshot or import document. It fails with a
// FormatError on malformed JSON and with a ValidationError from the
// schema check; the caller's state is untouched either way.
func Decode(data []byte) (domain.AppData, error) {
	var state domain.AppData
	if err := json.Unmarshal(data, &state); err != nil {
		return domain.AppData{}, &domain.FormatError{Reason: "malformed JSON", Err: err}
	}

	if verr := domain.ValidateImport(state); verr != nil {
		return domain.AppData{}, verr
	}

	return state, nil
}

// ExportFileName names an export artifact with the current date
// embedded, e.g. lumina_backup_2025-06-01.json.
func ExportFileName(prefix, ext string, date time.Time) string {
	return fmt.Sprintf("%s_%s.%s", prefix, date.Format("2006-01-02"), ext)
}
