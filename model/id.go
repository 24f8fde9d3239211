package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ID はAPIから受け取るドキュメントIDです。
// Plain strings are kept as-is. Serialized object ids ({"$oid": ...} or
// {"date": ...}) are reduced to their inner value.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	if data[0] == '{' {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		for _, key := range []string{"$oid", "date", "timestamp"} {
			raw, ok := obj[key]
			if !ok {
				continue
			}
			var v any
			if err := json.Unmarshal(raw, &v); err != nil {
				return err
			}
			switch x := v.(type) {
			case string:
				*id = ID(x)
			case float64:
				*id = ID(fmt.Sprintf("%.0f", x))
			default:
				continue
			}
			return nil
		}
		*id = ""
		return nil
	}
	// numbers
	*id = ID(string(data))
	return nil
}

func (id ID) String() string {
	return string(id)
}
