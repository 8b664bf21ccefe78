// Package resolve maps logical step names to executable script paths.
//
// Resolution is a pure function over an ordered directory list: the first
// directory containing a file with the step's name wins. A name containing
// a path separator bypasses the search and is checked directly.
package resolve

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// descriptionPrefix is the optional header a step script may carry to expose
// a one-line summary for interactive display.
const descriptionPrefix = "# Description:"

// descriptionScanLimit bounds how far into a script Describe looks.
const descriptionScanLimit = 10

// Resolve maps name to a script path. Repeated calls with the same inputs
// and filesystem state return the same result.
func Resolve(dirs []string, name string) (string, bool) {
	if strings.ContainsRune(name, os.PathSeparator) {
		return name, isRegularFile(name)
	}
	for _, dir := range dirs {
		path := filepath.Join(dir, name)
		if isRegularFile(path) {
			return path, true
		}
	}
	return "", false
}

// Describe returns the script's one-line description header, or "".
func Describe(path string) string {
	f, err := os.Open(path) // #nosec G304
	if err != nil {
		return ""
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for i := 0; i < descriptionScanLimit && scanner.Scan(); i++ {
		line := strings.TrimSpace(scanner.Text())
		if rest, ok := strings.CutPrefix(line, descriptionPrefix); ok {
			return strings.TrimSpace(rest)
		}
	}
	return ""
}

// Scripts adapts the resolver functions to a fixed search list.
type Scripts struct {
	Dirs []string
}

// Resolve looks up name against the configured directories.
func (s Scripts) Resolve(name string) (string, bool) {
	return Resolve(s.Dirs, name)
}

// Describe reads the description header of a resolved script.
func (s Scripts) Describe(path string) string {
	return Describe(path)
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
