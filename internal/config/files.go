package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ExpandFiles expands glob patterns ("bench/**/*.cnf") in place. Plain
// paths are kept as given, even when they do not exist, so the tools
// report on them. Argument order is preserved and matches of one pattern
// are sorted.
func ExpandFiles(patterns []string) ([]string, error) {
	var files []string
	for _, p := range patterns {
		if !strings.ContainsAny(p, "*?[{") {
			files = append(files, p)
			continue
		}
		matches, err := doublestar.FilepathGlob(p, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("expanding %q: %w", p, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match %q", p)
		}
		sort.Strings(matches)
		files = append(files, matches...)
	}
	return files, nil
}
