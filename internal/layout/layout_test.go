package layout

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"folio.dev/internal/dom"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
viewport: 900
sections:
  home: {top: 0, height: 700}
  about: {top: 700, height: 500}
`), 0644))

	l, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 900, l.ViewportHeight())
	r, ok := l.Section("about")
	require.True(t, ok)
	assert.Equal(t, 1200, r.Bottom())
	assert.True(t, r.Contains(700))
	assert.False(t, r.Contains(1200))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}

func TestBoundsFallsBackToSection(t *testing.T) {
	doc, err := dom.ParseString(`<html><body><section id="projects"><div class="project-card">a</div></section><div class="loose"></div></body></html>`)
	require.NoError(t, err)
	l := &Static{Sections: map[string]Rect{"projects": {Top: 100, Height: 300}}}

	r, ok := l.Bounds(doc.First("project-card"))
	require.True(t, ok)
	assert.Equal(t, Rect{Top: 100, Height: 300}, r)

	_, ok = l.Bounds(doc.First("loose"))
	assert.False(t, ok)
	assert.Equal(t, DefaultViewportHeight, l.ViewportHeight())
}
