package offsets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"rostermem/internal/common"
)

// defaultFilenames are the generic schema bundle names probed after any
// version-specific candidates.
var defaultFilenames = []string{"offsets.json"}

// DiscoverCandidates returns the ordered schema filenames to probe for a
// target executable: per-version names first (both common capitalizations),
// then the generic fallbacks. The list is de-duplicated preserving order.
func DiscoverCandidates(targetExe string) []string {
	names := make([]string, 0, len(defaultFilenames)+2)

	if hint := versionHint(targetExe); hint != "" {
		names = append(names,
			fmt.Sprintf("2k%s_offsets.json", hint),
			fmt.Sprintf("2K%s_Offsets.json", hint),
		)
	}

	names = append(names, defaultFilenames...)

	return common.Dedup(names)
}

// Discover walks the search directories and returns the ordered existing
// candidate paths for the target executable.
func Discover(dirs []string, targetExe string) []string {
	var out []string

	for _, dir := range dirs {
		// Accept both capitalizations of the bundle folder itself.
		for _, folder := range common.Dedup([]string{dir, alternateCase(dir)}) {
			for _, name := range DiscoverCandidates(targetExe) {
				path := filepath.Join(folder, name)
				if st, err := os.Stat(path); err == nil && !st.IsDir() {
					out = append(out, path)
				}
			}
		}
	}

	return common.Dedup(out)
}

// Load locates, parses and normalizes the first usable schema bundle for the
// target executable.
func Load(dirs []string, targetExe string) (*Document, error) {
	candidates := Discover(dirs, targetExe)
	if common.IsEmpty(candidates) {
		return nil, fmt.Errorf("no offset schema found for %q under %v: %w", targetExe, dirs, ErrEmptySchema)
	}

	var lastErr error

	for _, path := range candidates {
		doc, err := LoadFile(path, targetExe)
		if err != nil {
			lastErr = err
			continue
		}

		return doc, nil
	}

	return nil, lastErr
}

// LoadFile parses and normalizes one schema bundle.
func LoadFile(path, targetExe string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read offset schema %s: %w", path, err)
	}

	doc, err := Parse(data, targetExe)
	if err != nil {
		return nil, fmt.Errorf("offset schema %s: %w", path, err)
	}

	doc.Path = path

	return doc, nil
}

func alternateCase(dir string) string {
	base := filepath.Base(dir)
	if base == "" {
		return dir
	}

	alt := strings.ToLower(base)
	if base == alt {
		alt = strings.ToUpper(base[:1]) + base[1:]
	}

	return filepath.Join(filepath.Dir(dir), alt)
}
