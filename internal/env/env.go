// Package env reads credentials and settings from the environment
package env

import (
	"io/fs"
	"os"
	"strings"
)

// Source looks up environment variables. A value can be given directly in the
// variable, or indirectly in a file named by the same variable suffixed with
// _FILE. Files are resolved from FS, with a leading "/" removed from the path.
type Source struct {
	FS     fs.FS
	Getenv func(key string) string
}

// OS returns a Source reading the process environment and the local
// filesystem.
func OS() Source {
	return Source{FS: os.DirFS("/"), Getenv: os.Getenv}
}

// Lookup returns the value of key, reading it from the file named by key_FILE
// when key is unset or empty. The returned bool is false when neither yields a
// non-empty value, or when the file can't be read.
func (s Source) Lookup(key string) (string, bool) {
	getenv := s.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	if v := getenv(key); v != "" {
		return v, true
	}

	p := getenv(key + "_FILE")
	if p == "" || s.FS == nil {
		return "", false
	}

	b, err := fs.ReadFile(s.FS, strings.TrimPrefix(p, "/"))
	if err != nil {
		return "", false
	}

	v := strings.TrimSpace(string(b))

	return v, v != ""
}

// Get is like Lookup, but returns def (or "") when the value isn't found.
func (s Source) Get(key string, def ...string) string {
	if v, ok := s.Lookup(key); ok {
		return v
	}

	if len(def) > 0 {
		return def[0]
	}

	return ""
}
