package request

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

var ErrInvalidArguments = errors.New("method arguments must be a json object")

// MethodCallRequest is the optional envelope form of a channel call body:
// {"arguments": {...}}. A bare JSON object is taken as the arguments map.
type MethodCallRequest struct {
	Arguments map[string]any `json:"arguments"`
}

// ParseArguments decodes a channel call body. An empty body is an empty
// argument map.
func ParseArguments(raw []byte) (map[string]any, error) {
	if len(strings.TrimSpace(string(raw))) == 0 {
		return map[string]any{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	var args map[string]any
	if err := dec.Decode(&args); err != nil {
		return nil, ErrInvalidArguments
	}
	if args == nil {
		return map[string]any{}, nil
	}

	if wrapped, ok := args["arguments"]; ok && len(args) == 1 {
		switch v := wrapped.(type) {
		case map[string]any:
			return v, nil
		case nil:
			return map[string]any{}, nil
		default:
			return nil, ErrInvalidArguments
		}
	}
	return args, nil
}
