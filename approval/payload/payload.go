package payload

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingField = errors.New("missing required field")
	ErrInvalidField = errors.New("invalid field")
)

// Required fields of an issue request body, in validation order
var requiredFields = []string{"title", "type", "data", "msg_fields", "slack_channel"}

// IssueRequest is the body of an approval notify call
type IssueRequest struct {
	// Title is the message headline
	Title string `json:"title"`

	// Type is the caller's approval category, forwarded untouched
	Type string `json:"type"`

	// Data is the caller's payload, sent as a JSON-encoded object string
	Data map[string]any `json:"-"`

	// MsgFields names the Data keys shown in the message
	MsgFields []string `json:"msg_fields"`

	// Channel is the Slack channel id the message is posted to
	Channel string `json:"slack_channel"`
}

// Parse decodes and validates an issue request body
// Errors name the first offending field
func Parse(body []byte) (IssueRequest, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return IssueRequest{}, fmt.Errorf("%w: body is not a JSON object: %v", ErrInvalidField, err)
	}

	for _, name := range requiredFields {
		value, ok := raw[name]
		if !ok || string(value) == "null" {
			return IssueRequest{}, fmt.Errorf("%w: %s", ErrMissingField, name)
		}
	}

	var req IssueRequest
	var err error

	if req.Title, err = nonEmptyString(raw, "title"); err != nil {
		return IssueRequest{}, err
	}
	if req.Type, err = nonEmptyString(raw, "type"); err != nil {
		return IssueRequest{}, err
	}
	if req.Data, err = parseData(raw["data"]); err != nil {
		return IssueRequest{}, err
	}
	if err := json.Unmarshal(raw["msg_fields"], &req.MsgFields); err != nil {
		return IssueRequest{}, fmt.Errorf("%w: msg_fields must be an array of strings", ErrInvalidField)
	}
	if req.Channel, err = nonEmptyString(raw, "slack_channel"); err != nil {
		return IssueRequest{}, err
	}

	return req, nil
}

// parseData decodes data, a string holding a JSON object
func parseData(value json.RawMessage) (map[string]any, error) {
	var encoded string
	if err := json.Unmarshal(value, &encoded); err != nil {
		return nil, fmt.Errorf("%w: data must be a JSON-encoded string", ErrInvalidField)
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(encoded), &data); err != nil {
		return nil, fmt.Errorf("%w: data must encode a JSON object: %v", ErrInvalidField, err)
	}
	if data == nil {
		return nil, fmt.Errorf("%w: data must encode a JSON object", ErrInvalidField)
	}

	return data, nil
}

func nonEmptyString(raw map[string]json.RawMessage, name string) (string, error) {
	var s string
	if err := json.Unmarshal(raw[name], &s); err != nil {
		return "", fmt.Errorf("%w: %s must be a string", ErrInvalidField, name)
	}
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("%w: %s cannot be empty", ErrInvalidField, name)
	}
	return s, nil
}
