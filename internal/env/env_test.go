package env

import (
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
)

func mapenv(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestGet(t *testing.T) {
	t.Parallel()

	s := Source{Getenv: mapenv(map[string]string{"FOO": "foo"})}

	assert.Equal(t, "foo", s.Get("FOO"))
	assert.Empty(t, s.Get("BAR"))
	assert.Equal(t, "default value", s.Get("BAR", "default value"))
}

func TestLookup_File(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"tmp":            &fstest.MapFile{Mode: fs.ModeDir},
		"tmp/foo":        &fstest.MapFile{Data: []byte("foo\n")},
		"tmp/empty":      &fstest.MapFile{Data: []byte(" \n")},
		"tmp/unreadable": &fstest.MapFile{Mode: fs.ModeDir},
	}

	data := []struct {
		file     string
		expected string
		found    bool
	}{
		{"/tmp/foo", "foo", true},
		{"tmp/foo", "foo", true},
		{"/tmp/missing", "", false},
		{"/tmp/empty", "", false},
		{"/tmp/unreadable", "", false},
	}

	for _, d := range data {
		t.Run(d.file, func(t *testing.T) {
			t.Parallel()

			s := Source{FS: fsys, Getenv: mapenv(map[string]string{"FOO_FILE": d.file})}

			v, ok := s.Lookup("FOO")
			assert.Equal(t, d.found, ok)
			assert.Equal(t, d.expected, v)
			assert.Equal(t, "bar", s.Get("BAR", "bar"))
		})
	}
}

func TestLookup_VariableOverridesFile(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{"foo": &fstest.MapFile{Data: []byte("from file")}}
	s := Source{FS: fsys, Getenv: mapenv(map[string]string{
		"FOO":      "from env",
		"FOO_FILE": "/foo",
	})}

	assert.Equal(t, "from env", s.Get("FOO"))
}

func TestLookup_NoFS(t *testing.T) {
	t.Parallel()

	s := Source{Getenv: mapenv(map[string]string{"FOO_FILE": "/foo"})}

	_, ok := s.Lookup("FOO")
	assert.False(t, ok)
}
