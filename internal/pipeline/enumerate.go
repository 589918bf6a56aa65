package pipeline

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/samber/lo"
)

// ListInputs returns the paths of the regular files directly inside dir whose
// names end with suffix. Subdirectories are not descended into. With sorted
// set, paths are ordered by file name; otherwise they keep the order the
// directory listing returned.
func ListInputs(dir, suffix string, sorted bool) ([]string, error) {
	d, err := os.Open(dir)
	if err != nil {
		return nil, fmt.Errorf("open input dir: %w", err)
	}
	defer d.Close()

	entries, err := d.ReadDir(-1)
	if err != nil {
		return nil, fmt.Errorf("list input dir %s: %w", dir, err)
	}

	matches := lo.Filter(entries, func(e fs.DirEntry, _ int) bool {
		return strings.HasSuffix(e.Name(), suffix) && isRegular(dir, e)
	})

	names := lo.Map(matches, func(e fs.DirEntry, _ int) string { return e.Name() })
	if sorted {
		sort.Strings(names)
	}

	return lo.Map(names, func(name string, _ int) string {
		return filepath.Join(dir, name)
	}), nil
}

// isRegular accepts regular files and symlinks that resolve to one.
func isRegular(dir string, e fs.DirEntry) bool {
	switch {
	case e.Type().IsRegular():
		return true
	case e.Type()&fs.ModeSymlink != 0:
		fi, err := os.Stat(filepath.Join(dir, e.Name()))
		return err == nil && fi.Mode().IsRegular()
	default:
		return false
	}
}
