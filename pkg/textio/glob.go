package textio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Expand resolves path arguments into a de-duplicated, ordered file list.
// Arguments may be plain paths or doublestar patterns ("notes/**/*.md").
// Matches for any ignore pattern are dropped. A pattern that matches nothing
// is an error.
func Expand(args []string, ignore []string) ([]string, error) {
	var (
		files []string
		seen  = make(map[string]bool)
	)

	for _, arg := range args {
		matches, err := resolve(arg)
		if err != nil {
			return nil, err
		}

		kept := 0
		for _, match := range matches {
			ignored, err := isIgnored(match, ignore)
			if err != nil {
				return nil, err
			}
			if ignored {
				continue
			}

			kept++
			if seen[match] {
				continue
			}
			seen[match] = true
			files = append(files, match)
		}

		if kept == 0 {
			return nil, fmt.Errorf("no files match %q", arg)
		}
	}

	return files, nil
}

func resolve(arg string) ([]string, error) {
	if info, err := os.Stat(arg); err == nil {
		if info.IsDir() {
			return nil, fmt.Errorf("%s is a directory, use a pattern such as %q", arg, filepath.Join(arg, "**", "*.md"))
		}
		return []string{filepath.Clean(arg)}, nil
	}

	if !doublestar.ValidatePathPattern(filepath.ToSlash(arg)) {
		return nil, fmt.Errorf("invalid pattern %q", arg)
	}

	matches, err := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("expand %q: %w", arg, err)
	}
	return matches, nil
}

func isIgnored(path string, patterns []string) (bool, error) {
	// Patterns are written relative ("**/drafts/**"), so match without the
	// volume and leading separator.
	slashed := strings.TrimPrefix(filepath.ToSlash(strings.TrimPrefix(path, filepath.VolumeName(path))), "/")
	for _, pattern := range patterns {
		ok, err := doublestar.Match(pattern, slashed)
		if err != nil {
			return false, fmt.Errorf("ignore pattern %q: %w", pattern, err)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}
