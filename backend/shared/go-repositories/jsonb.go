package repositories

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// jsonbArg marshals v for a JSONB parameter. It is sent as text so pgx does
// not pick the binary jsonb encoding; a JSON null becomes SQL NULL.
func jsonbArg(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal jsonb: %w", err)
	}
	if bytes.Equal(b, []byte("null")) {
		return nil, nil
	}
	return string(b), nil
}

// scanJSONB decodes a JSONB column read into raw; NULL leaves dst untouched.
func scanJSONB(raw []byte, dst any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("unmarshal jsonb: %w", err)
	}
	return nil
}
