package utils

import (
	"encoding/json"
	"strings"
)

// SplitAndTrim splits a comma-separated list, trims whitespace, and drops
// empty entries. Order is preserved.
func SplitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// StringList decodes either a JSON array of strings or a single
// comma-separated string ("React, Node.js" -> ["React","Node.js"]).
// Admin forms send the latter; API clients send the former.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		out := make([]string, 0, len(arr))
		for _, v := range arr {
			v = strings.TrimSpace(v)
			if v != "" {
				out = append(out, v)
			}
		}
		*l = out
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*l = SplitAndTrim(s)
	return nil
}
