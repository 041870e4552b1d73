package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/go-ini/ini"
	"go.uber.org/multierr"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// iniOptions keep keys and section names case-sensitive and read values
// verbatim: surrounding quotes, a trailing backslash, ';' and '#' are data.
var iniOptions = ini.LoadOptions{
	IgnoreInlineComment:     true,
	IgnoreContinuation:      true,
	PreserveSurroundedQuote: true,
}

// fragmentOptions extend iniOptions so that repeated sections and keys stay
// visible for checkDuplicates and indented continuation lines parse, to be
// rejected by checkWritable if they are ever copied.
var fragmentOptions = func() ini.LoadOptions {
	opts := iniOptions
	opts.AllowShadows = true
	opts.AllowNonUniqueSections = true
	opts.AllowPythonMultilineValues = true
	return opts
}()

type codec struct {
	name string
	enc  encoding.Encoding
	// accept reports whether the codec may be tried on raw at all.
	accept func(raw []byte) bool
	// passesReplacement is set when U+FFFD already in raw decodes to itself.
	passesReplacement bool
}

// fragmentCodecs are tried in order until one decodes a fragment losslessly.
// GBK only gets input that is not already valid UTF-8, otherwise plain ASCII
// and UTF-8 files would be reinterpreted as double-byte text.
var fragmentCodecs = []codec{
	{name: "gbk", enc: simplifiedchinese.GBK, accept: func(raw []byte) bool { return !utf8.Valid(raw) }},
	{name: "utf-8-sig", enc: unicode.UTF8BOM, passesReplacement: true},
	{name: "utf-8", enc: unicode.UTF8, passesReplacement: true},
}

var (
	errNotApplicable = errors.New("not applicable")
	errIllFormed     = errors.New("invalid byte sequence")
	replacementChar  = []byte(string(utf8.RuneError))
)

// loadFragment reads and parses one fragment file. It returns the name of
// the codec that decoded it.
func loadFragment(path string) (*ini.File, string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read fragment: %w", err)
	}

	text, codecName, err := decodeFragment(path, raw)
	if err != nil {
		return nil, "", err
	}
	if err := checkQuotedValues(text); err != nil {
		return nil, "", fmt.Errorf("%w in %s: %v", ErrUnsupportedValue, path, err)
	}

	frag, err := ini.LoadSources(fragmentOptions, text)
	if err != nil {
		return nil, "", fmt.Errorf("%w %s: %v", ErrParse, path, err)
	}
	if err := checkDuplicates(frag); err != nil {
		return nil, "", fmt.Errorf("%w in %s: %v", ErrDuplicate, path, err)
	}
	return frag, codecName, nil
}

func decodeFragment(path string, raw []byte) ([]byte, string, error) {
	var errs error
	for _, c := range fragmentCodecs {
		if c.accept != nil && !c.accept(raw) {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", c.name, errNotApplicable))
			continue
		}
		text, err := c.decodeLossless(raw)
		if err == nil {
			return text, c.name, nil
		}
		errs = multierr.Append(errs, fmt.Errorf("%s: %w", c.name, err))
	}
	return nil, "", fmt.Errorf("%w(%s): %w", ErrUnknownEncoding, path, errs)
}

// decodeLossless decodes raw to UTF-8 and fails if the decoder had to
// substitute U+FFFD for bytes it could not map.
func (c codec) decodeLossless(raw []byte) ([]byte, error) {
	text, _, err := transform.Bytes(c.enc.NewDecoder(), raw)
	if err != nil {
		return nil, err
	}
	genuine := 0
	if c.passesReplacement {
		genuine = bytes.Count(raw, replacementChar)
	}
	if bytes.Count(text, replacementChar) > genuine {
		return nil, errIllFormed
	}
	return text, nil
}

// checkQuotedValues rejects values that go-ini unquotes on read however it is
// configured: a leading backtick or triple double quote.
func checkQuotedValues(text []byte) error {
	for i, line := range strings.Split(string(text), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line[0] == ';' || line[0] == '#' || line[0] == '[' {
			continue
		}
		idx := strings.IndexAny(line, "=:")
		if idx < 0 {
			continue
		}
		value := strings.TrimSpace(line[idx+1:])
		if strings.HasPrefix(value, "`") || strings.HasPrefix(value, `"""`) {
			return fmt.Errorf("line %d: quoted value %s", i+1, value)
		}
	}
	return nil
}

func checkDuplicates(frag *ini.File) error {
	seen := make(map[string]bool)
	for _, sec := range frag.Sections() {
		name := sec.Name()
		if name != ini.DefaultSection {
			if seen[name] {
				return fmt.Errorf("section %q defined twice", name)
			}
			seen[name] = true
		}
		for _, key := range sec.Keys() {
			if len(key.ValueWithShadows()) > 1 {
				return fmt.Errorf("key %q in section %q defined twice", key.Name(), name)
			}
		}
	}
	return nil
}

// checkWritable rejects values the INI writer could only emit in go-ini's
// own quoting: multi-line values and values holding a backtick.
func checkWritable(sec *ini.Section) error {
	for _, key := range sec.Keys() {
		switch value := key.Value(); {
		case strings.Contains(value, "\n"):
			return fmt.Errorf("key %q in section %q has a multi-line value", key.Name(), sec.Name())
		case strings.Contains(value, "`"):
			return fmt.Errorf("key %q in section %q has a backtick in its value", key.Name(), sec.Name())
		}
	}
	return nil
}
