package models

import (
	"encoding/json"
	"strings"
)

// TagList decodes from either a JSON array or a comma-separated string
// ("Ansible, Linux"), the shape the HTML editor form posts.
type TagList []string

func (t *TagList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*t = list
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*t = ParseTags(s)
	return nil
}

// ParseTags splits a comma-separated tag string.
func ParseTags(s string) TagList {
	if strings.TrimSpace(s) == "" {
		return TagList{}
	}
	return TagList(strings.Split(s, ","))
}

// NormalizeTags trims tags, drops empties and case-insensitive duplicates,
// and keeps the author's order and casing of the first occurrence.
func NormalizeTags(in []string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(in))
	for _, t := range in {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		key := strings.ToLower(t)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, t)
	}
	return out
}
