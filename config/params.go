package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

var (
	ErrFileNotFound = errors.New("file not found")
	ErrFileIsEmpty  = errors.New("file is empty")
)

// FileError reports a credential file that could not be used.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// Parameters are the resolved values the updater runs with. Email and Token
// are credentials and are never printed.
type Parameters struct {
	Domain string
	Email  string
	Token  string
}

func (p Parameters) String() string {
	return fmt.Sprintf("{Domain:%s Email:<redacted> Token:<redacted>}", p.Domain)
}

func (p Parameters) GoString() string {
	return p.String()
}

// ResolveParameters turns the configured inputs into Parameters, reading
// files for every value that is not given inline.
func ResolveParameters(c *Config) (Parameters, error) {
	var (
		p   Parameters
		err error
	)

	if p.Domain, err = c.Domain.Resolve(); err != nil {
		return Parameters{}, fmt.Errorf("domain: %w", err)
	}
	if p.Email, err = c.Email.Resolve(); err != nil {
		return Parameters{}, fmt.Errorf("email: %w", err)
	}
	if p.Token, err = c.Token.Resolve(); err != nil {
		return Parameters{}, fmt.Errorf("token: %w", err)
	}

	return p, nil
}

// Resolve returns the inline value verbatim, or the content of File.
func (in Input) Resolve() (string, error) {
	if in.Value != "" {
		return in.Value, nil
	}
	return readFile(in.File)
}

func readFile(path string) (string, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return "", &FileError{Path: path, Err: ErrFileNotFound}
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return "", &FileError{Path: path, Err: err}
	}

	// only the single newline editors append is dropped
	content := strings.TrimSuffix(string(b), "\n")
	if content == "" {
		return "", &FileError{Path: path, Err: ErrFileIsEmpty}
	}
	return content, nil
}
