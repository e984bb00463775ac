package catalog

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Filter keeps the templates whose id or name matches the glob pattern.
// Name matching is case-insensitive. An empty pattern keeps everything.
func Filter(infos []Info, pattern string) ([]Info, error) {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return infos, nil
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern %q", pattern)
	}

	lower := strings.ToLower(pattern)
	var out []Info
	for _, info := range infos {
		// Patterns are valid, so Match cannot fail here.
		if ok, _ := doublestar.Match(pattern, info.ID); ok {
			out = append(out, info)
			continue
		}
		if ok, _ := doublestar.Match(lower, strings.ToLower(info.Name)); ok {
			out = append(out, info)
		}
	}
	return out, nil
}
