package config

import "fmt"

// ParseError indicates a malformed configuration file.
type ParseError struct {
	File string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("config file %s: %v", e.File, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// FileNotFoundError indicates that a file named explicitly via
// --config-file does not exist. Missing files from the default search
// list are not an error.
type FileNotFoundError struct {
	Path string
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("config file %s doesn't exist", e.Path)
}

// ValueError indicates a key whose value could not be interpreted
// (e.g. a non-boolean value for a boolean key).
type ValueError struct {
	File  string
	Key   string
	Value string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("config file %s: key %q: invalid boolean value %q", e.File, e.Key, e.Value)
}
