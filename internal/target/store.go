// Public domain.

package target

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Filename returns the on-disk set name for a telescope,
// e.g. main_set_SLT.json.
func Filename(tel Telescope) string {
	return fmt.Sprintf("main_set_%s.json", tel)
}

// Load reads the target set for a telescope from dir, migrating legacy
// schemas on the way in. A missing file yields an empty current-version
// set rather than an error.
func Load(dir string, tel Telescope) (*Set, error) {
	fn := filepath.Join(dir, Filename(tel))
	b, err := os.ReadFile(fn)
	if errors.Is(err, fs.ErrNotExist) {
		return &Set{Version: Version, Settings: Settings{Telescope: tel}, Targets: []Target{}}, nil
	}
	if err != nil {
		return nil, err
	}
	s, err := Decode(b)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", fn, err)
	}
	s.Settings.Telescope = tel
	return s, nil
}

// Save writes the set under dir in the current schema version.
func (s *Set) Save(dir string) error {
	b, err := s.Encode()
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, Filename(s.Settings.Telescope)), b, 0o644)
}
