package runner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/donaldgifford/memberfmt/internal/config"
	"github.com/donaldgifford/memberfmt/internal/parser"
)

// collectFiles expands paths into the C# sources to process. Files named
// explicitly are always kept; directories are walked, skipping hidden
// directories and anything matching lint.exclude. The result is sorted
// and free of duplicates.
func collectFiles(paths []string, cfg *config.Config) ([]string, error) {
	var files []string
	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, root)
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != root && (strings.HasPrefix(d.Name(), ".") || cfg.Excluded(path)) {
					log.Debug().Str("dir", path).Msg("skipping directory")
					return filepath.SkipDir
				}
				return nil
			}
			if !parser.IsSource(path) || cfg.Excluded(path) {
				return nil
			}
			files = append(files, path)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", root, err)
		}
	}

	slices.Sort(files)
	return slices.Compact(files), nil
}
