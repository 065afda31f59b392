package errors

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ErrorResponse is the body the server sends with 4xx/5xx responses.
//
// "detail" is either a plain message or a list of validation failures.
type ErrorResponse struct {
	Detail Detail `json:"detail"`
}

type Detail struct {
	Message    string
	Violations []Violation
}

// Violation is one item of a validation failure list.
type Violation struct {
	Loc  []any  `json:"loc"`
	Msg  string `json:"msg"`
	Type string `json:"type"`
}

func (v Violation) String() string {
	locs := make([]string, 0, len(v.Loc))
	for _, l := range v.Loc {
		locs = append(locs, fmt.Sprint(l))
	}
	if len(locs) == 0 {
		return v.Msg
	}
	return strings.Join(locs, ".") + ": " + v.Msg
}

func (d *Detail) UnmarshalJSON(b []byte) error {
	var message string
	if err := json.Unmarshal(b, &message); err == nil {
		d.Message = message
		return nil
	}

	var violations []Violation
	if err := json.Unmarshal(b, &violations); err == nil {
		d.Violations = violations
		return nil
	}

	// anything else is kept as raw json.
	d.Message = string(b)
	return nil
}

func (d Detail) MarshalJSON() ([]byte, error) {
	if len(d.Violations) != 0 {
		return json.Marshal(d.Violations)
	}
	return json.Marshal(d.Message)
}

func (d Detail) Empty() bool {
	return d.Message == "" && len(d.Violations) == 0
}

func (d Detail) String() string {
	if len(d.Violations) == 0 {
		return d.Message
	}
	lines := make([]string, 0, len(d.Violations))
	for _, v := range d.Violations {
		lines = append(lines, v.String())
	}
	return strings.Join(lines, "; ")
}
