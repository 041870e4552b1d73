package main

import (
	"fmt"
	"io"

	"github.com/go-ini/ini"
)

func init() {
	// One "key = value" per line, keys not padded to a common width.
	ini.PrettyFormat = false
	ini.PrettyEqual = true
}

// Merged accumulates the sections selected from all fragments. Section names
// share one namespace: putting a section replaces any earlier one of the same
// name as a whole.
type Merged struct {
	file *ini.File
}

func NewMerged() *Merged {
	return &Merged{
		file: ini.Empty(iniOptions),
	}
}

// Put copies src, keys in source order, to the end of m. Keys of defaults
// that src does not define follow the section's own keys. It reports whether
// a previously merged section was replaced.
func (m *Merged) Put(src, defaults *ini.Section) (bool, error) {
	name := src.Name()

	replaced := false
	if _, err := m.file.GetSection(name); err == nil {
		m.file.DeleteSection(name)
		replaced = true
	}

	dst, err := m.file.NewSection(name)
	if err != nil {
		return replaced, fmt.Errorf("add section %q: %w", name, err)
	}

	own := make(map[string]bool, len(src.Keys()))
	for _, key := range src.Keys() {
		own[key.Name()] = true
		if _, err := dst.NewKey(key.Name(), key.Value()); err != nil {
			return replaced, fmt.Errorf("copy key %q of section %q: %w", key.Name(), name, err)
		}
	}
	if defaults == nil || defaults == src {
		return replaced, nil
	}
	for _, key := range defaults.Keys() {
		if own[key.Name()] {
			continue
		}
		if _, err := dst.NewKey(key.Name(), key.Value()); err != nil {
			return replaced, fmt.Errorf("copy default key %q into section %q: %w", key.Name(), name, err)
		}
	}
	return replaced, nil
}

// SectionNames returns merged section names in output order.
func (m *Merged) SectionNames() []string {
	names := make([]string, 0, len(m.file.Sections()))
	for _, sec := range m.file.Sections() {
		if sec.Name() == ini.DefaultSection {
			continue
		}
		names = append(names, sec.Name())
	}
	return names
}

// Get returns a copy of the merged sections as section -> key -> value.
func (m *Merged) Get() map[string]map[string]string {
	result := make(map[string]map[string]string)
	for _, name := range m.SectionNames() {
		sec := m.file.Section(name)
		values := make(map[string]string, len(sec.Keys()))
		for _, key := range sec.Keys() {
			values[key.Name()] = key.Value()
		}
		result[name] = values
	}
	return result
}

// WriteTo serializes the merged sections in INI syntax. Every section,
// the last one included, is followed by a blank line.
func (m *Merged) WriteTo(w io.Writer) (int64, error) {
	n, err := m.file.WriteTo(w)
	if err != nil || len(m.SectionNames()) == 0 {
		return n, err
	}
	nl, err := io.WriteString(w, ini.LineBreak)
	return n + int64(nl), err
}
