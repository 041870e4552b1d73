package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-ini/ini"
	"github.com/maruel/natural"
	"github.com/rs/zerolog"
)

const fragmentExt = ".ini"

// IniManager merges the plugin fragments of a build tree into the single
// plugin configuration shipped for one board.
type IniManager struct {
	config *Config
	log    zerolog.Logger
}

func NewIniManager(config *Config, logger zerolog.Logger) *IniManager {
	return &IniManager{config: config, log: logger}
}

// FragmentFiles lists the regular .ini files directly inside dir, in natural
// name order so that later fragments win deterministically.
func (m *IniManager) FragmentFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list fragment folder: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name(), fragmentExt) {
			continue
		}
		info, err := os.Stat(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("stat fragment: %w", err)
		}
		if !info.Mode().IsRegular() {
			m.log.Debug().Str("entry", entry.Name()).Msg("not a regular file, ignored")
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Sort(natural.StringSlice(names))

	paths := make([]string, 0, len(names))
	for _, name := range names {
		paths = append(paths, filepath.Join(dir, name))
	}
	return paths, nil
}

// MergeFragments copies the related sections of every fragment in paths that
// applies to board, in order.
func (m *IniManager) MergeFragments(paths []string, board string) (*Merged, error) {
	merged := NewMerged()
	for _, path := range paths {
		if err := m.mergeFragment(merged, path, board); err != nil {
			return nil, err
		}
	}
	return merged, nil
}

func (m *IniManager) mergeFragment(merged *Merged, path, board string) error {
	frag, codecName, err := loadFragment(path)
	if err != nil {
		return err
	}
	log := m.log.With().Str("fragment", filepath.Base(path)).Logger()

	sessions, reason := selectSessions(frag, board)
	if reason != "" {
		log.Debug().Str("reason", reason).Msg("fragment skipped")
		return nil
	}
	log.Debug().Str("encoding", codecName).Strs("sections", sessions).Msg("fragment applies")

	defaults := frag.Section(ini.DefaultSection)
	if err := checkWritable(defaults); err != nil {
		return fmt.Errorf("%w in %s: %v", ErrUnsupportedValue, path, err)
	}
	for _, name := range sessions {
		if name == ini.DefaultSection {
			return fmt.Errorf("%w %q in %s", ErrInvalidSection, name, path)
		}
		sec, err := frag.GetSection(name)
		if name == "" || err != nil {
			return fmt.Errorf("%w: %q in %s", ErrMissingSection, name, path)
		}
		if err := checkWritable(sec); err != nil {
			return fmt.Errorf("%w in %s: %v", ErrUnsupportedValue, path, err)
		}
		replaced, err := merged.Put(sec, defaults)
		if err != nil {
			return fmt.Errorf("merge %s: %w", path, err)
		}
		if replaced {
			log.Info().Str("section", name).Msg("section replaced by later fragment")
		}
	}
	return nil
}

// Build merges the fragments found under buildDir for board.
func (m *IniManager) Build(buildDir, board string) (*Merged, error) {
	paths, err := m.FragmentFiles(m.config.sourcePath(buildDir))
	if err != nil {
		return nil, err
	}
	return m.MergeFragments(paths, board)
}

// CopyConfigIni builds the board configuration and writes it under outDir.
// It returns the path written.
func (m *IniManager) CopyConfigIni(buildDir, outDir, board string) (string, error) {
	merged, err := m.Build(buildDir, board)
	if err != nil {
		return "", err
	}

	outPath := m.config.outputPath(outDir)
	if err := saveToFile(outPath, merged, m.log); err != nil {
		return "", err
	}
	m.log.Info().
		Str("path", outPath).
		Str("board", board).
		Int("sections", len(merged.SectionNames())).
		Msg("plugin configuration written")
	return outPath, nil
}
