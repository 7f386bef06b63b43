package mobile

import (
	"bytes"
	"encoding/json"
	"errors"
)

// flatten strips an error down to its message.
func flatten(err error) error {
	if err == nil {
		return nil
	}
	return errors.New(err.Error())
}

func encodeJSON(v interface{}) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	if err := enc.Encode(v); err != nil {
		return ""
	}
	return buf.String()
}

func decodeParents(jsonParents string) ([]string, error) {
	if len(bytes.TrimSpace([]byte(jsonParents))) == 0 {
		return nil, nil
	}

	var parents []string
	if err := json.Unmarshal([]byte(jsonParents), &parents); err != nil {
		return nil, err
	}
	return parents, nil
}
