package storage

import (
	"database/sql"
	"encoding/json"
)

// JSON-encoded columns (stats, tags). Corrupt or partial values decode to an
// empty set instead of failing the read; the collections treat bad persisted
// data as first-run state.

func encodeStringList(v []string) *string {
	if len(v) == 0 {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	s := string(data)
	return &s
}

func decodeStringList(raw sql.NullString) []string {
	if !raw.Valid || raw.String == "" {
		return nil
	}
	var out []string
	if err := json.Unmarshal([]byte(raw.String), &out); err != nil {
		return nil
	}
	return out
}

func encodeStatMap(v map[string]int) *string {
	if len(v) == 0 {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	s := string(data)
	return &s
}

func decodeStatMap(raw sql.NullString) map[string]int {
	if !raw.Valid || raw.String == "" {
		return map[string]int{}
	}
	var out map[string]int
	if err := json.Unmarshal([]byte(raw.String), &out); err != nil || out == nil {
		return map[string]int{}
	}
	return out
}
