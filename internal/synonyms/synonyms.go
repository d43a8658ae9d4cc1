// Package synonyms expands query tokens through configured synonym groups.
package synonyms

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed synonyms.yaml
var defaultTable []byte

// Expander maps a token to itself plus every member of the synonym groups it belongs to.
// It is immutable after construction and safe for concurrent use.
type Expander struct {
	groups  map[string][]string // canonical key -> members (key first)
	byToken map[string][]string // any member -> keys of the groups containing it
}

var (
	defaultOnce     sync.Once
	defaultExpander *Expander
)

// Default returns the expander built from the embedded synonym table.
func Default() *Expander {
	defaultOnce.Do(func() {
		groups, err := ParseGroups(defaultTable)
		if err != nil {
			panic(fmt.Sprintf("embedded synonym table is invalid: %v", err))
		}
		defaultExpander = NewExpander(groups)
	})
	return defaultExpander
}

// DefaultGroups returns a copy of the embedded synonym groups.
func DefaultGroups() map[string][]string {
	return Default().Groups()
}

// ParseGroups decodes a YAML synonym table of the form `key: [value, ...]`.
func ParseGroups(data []byte) (map[string][]string, error) {
	var groups map[string][]string
	if err := yaml.Unmarshal(data, &groups); err != nil {
		return nil, fmt.Errorf("failed to parse synonym table: %w", err)
	}
	for key := range groups {
		if strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("synonym table contains an empty group key")
		}
	}
	return groups, nil
}

// NewExpander builds an expander from synonym groups. Keys and values are lower-cased;
// blank entries are ignored.
func NewExpander(groups map[string][]string) *Expander {
	e := &Expander{
		groups:  make(map[string][]string, len(groups)),
		byToken: make(map[string][]string),
	}

	keys := make([]string, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, rawKey := range keys {
		key := strings.ToLower(strings.TrimSpace(rawKey))
		if key == "" {
			continue
		}

		members := e.groups[key]
		if members == nil {
			members = []string{key}
		}
		for _, value := range groups[rawKey] {
			value = strings.ToLower(strings.TrimSpace(value))
			if value == "" || contains(members, value) {
				continue
			}
			members = append(members, value)
		}
		e.groups[key] = members
	}

	groupKeys := make([]string, 0, len(e.groups))
	for key := range e.groups {
		groupKeys = append(groupKeys, key)
	}
	sort.Strings(groupKeys)

	for _, key := range groupKeys {
		for _, member := range e.groups[key] {
			if !contains(e.byToken[member], key) {
				e.byToken[member] = append(e.byToken[member], key)
			}
		}
	}

	return e
}

// Expand returns the lower-cased token followed by the members of every group it belongs to.
// Unknown tokens expand to themselves only.
func (e *Expander) Expand(token string) []string {
	normalized := strings.ToLower(strings.TrimSpace(token))
	expanded := []string{normalized}
	if e == nil || normalized == "" {
		return expanded
	}

	for _, key := range e.byToken[normalized] {
		for _, member := range e.groups[key] {
			if !contains(expanded, member) {
				expanded = append(expanded, member)
			}
		}
	}
	return expanded
}

// Groups returns a copy of the expander's synonym groups.
func (e *Expander) Groups() map[string][]string {
	out := make(map[string][]string, len(e.groups))
	for key, members := range e.groups {
		values := make([]string, 0, len(members)-1)
		values = append(values, members[1:]...)
		out[key] = values
	}
	return out
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
