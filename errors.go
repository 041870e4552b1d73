package main

import "errors"

var (
	// ErrUnknownEncoding is returned when no candidate code page decodes a fragment.
	ErrUnknownEncoding = errors.New("unknown encoding")
	// ErrParse is returned when a decoded fragment is not valid INI.
	ErrParse = errors.New("malformed fragment")
	// ErrDuplicate is returned when a fragment defines a section, or a key
	// within one section, more than once.
	ErrDuplicate = errors.New("duplicate definition")
	// ErrUnsupportedValue is returned for values that cannot be copied
	// verbatim: backtick or triple-quote quoting and multi-line values.
	ErrUnsupportedValue = errors.New("unsupported value")
	// ErrMissingSection is returned when related_sessions names a section the
	// fragment does not define.
	ErrMissingSection = errors.New("related section not found")
	// ErrInvalidSection is returned when related_sessions names the reserved
	// DEFAULT section.
	ErrInvalidSection = errors.New("invalid related section name")
	// ErrNotDirectory is returned when the output directory path exists but is
	// not a directory.
	ErrNotDirectory = errors.New("not a directory")
)
