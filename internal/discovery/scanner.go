package discovery

import (
	"os"
	"path/filepath"
	"strings"

	"bpr/internal/domain"
)

// FeatureExt is the file extension identifying a runnable unit.
const FeatureExt = ".feature"

// Scanner resolves feature paths into runnable units
type Scanner struct {
	skipDirs map[string]bool
}

// NewScanner creates a new Scanner with the given directories to skip
// when walking feature directories.
func NewScanner(skipDirs []string) *Scanner {
	skipMap := make(map[string]bool)
	for _, dir := range skipDirs {
		skipMap[dir] = true
	}
	return &Scanner{skipDirs: skipMap}
}

// Discover resolves the given paths into a flat ordered unit list.
// Directories expand to every feature file under them, recursively and in
// lexicographic order; a feature file maps to a single unit; anything else
// is a DiscoveryError. Paths concatenate in argument order and duplicate
// resolved paths are dropped, keeping the first occurrence. An empty final
// set is a DiscoveryError.
func (s *Scanner) Discover(paths []string) ([]domain.Unit, error) {
	if len(paths) == 0 {
		return nil, &domain.DiscoveryError{Reason: "no feature paths given"}
	}

	var units []domain.Unit
	seen := make(map[string]bool)

	add := func(path string) error {
		abs, err := filepath.Abs(path)
		if err != nil {
			return &domain.DiscoveryError{Path: path, Reason: "cannot be resolved"}
		}
		if seen[abs] {
			return nil
		}
		seen[abs] = true
		units = append(units, domain.Unit{
			Path:  abs,
			Name:  strings.TrimSuffix(filepath.Base(abs), FeatureExt),
			Index: len(units),
		})
		return nil
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, &domain.DiscoveryError{Path: path, Reason: "does not exist"}
		}

		if !info.IsDir() {
			if !strings.HasSuffix(path, FeatureExt) {
				return nil, &domain.DiscoveryError{Path: path, Reason: "is not a feature file"}
			}
			if err := add(path); err != nil {
				return nil, err
			}
			continue
		}

		found, err := s.scanDir(path)
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			if err := add(f); err != nil {
				return nil, err
			}
		}
	}

	if len(units) == 0 {
		return nil, &domain.DiscoveryError{Reason: "no feature files found"}
	}
	return units, nil
}

// scanDir walks root collecting feature files. WalkDir visits entries in
// lexical order, which gives the deterministic ordering discovery promises.
func (s *Scanner) scanDir(root string) ([]string, error) {
	var features []string

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			name := d.Name()
			// Skip hidden directories (starting with .)
			if strings.HasPrefix(name, ".") && name != "." && name != ".." {
				return filepath.SkipDir
			}
			if s.skipDirs[name] {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasSuffix(d.Name(), FeatureExt) {
			features = append(features, path)
		}
		return nil
	})
	if err != nil {
		return nil, &domain.DiscoveryError{Path: root, Reason: "cannot be walked: " + err.Error()}
	}

	return features, nil
}
