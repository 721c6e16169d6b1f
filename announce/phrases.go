package announce

import (
	"encoding/json"
	"fmt"
	"os"
)

// Phrases maps internal labels to spoken text
//
// Loaded from a flat JSON dictionary; keys not present fall back to the
// label itself, so an empty or missing dictionary is the identity mapping
type Phrases map[string]string

// LoadPhrases reads a JSON phrase dictionary
// A missing file is not an error and yields the identity mapping
func LoadPhrases(path string) (Phrases, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Phrases{}, nil
		}
		return nil, fmt.Errorf("phrases read: %w", err)
	}

	var p Phrases
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("phrases parse: %w", err)
	}
	return p, nil
}

// Lookup returns the phrase for label, or the label itself if absent
func (p Phrases) Lookup(label string) string {
	if p == nil {
		return label
	}
	if s, ok := p[label]; ok {
		return s
	}
	return label
}
