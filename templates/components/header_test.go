package components

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsScrolled(t *testing.T) {
	assert.False(t, IsScrolled(0))
	assert.False(t, IsScrolled(50))
	assert.True(t, IsScrolled(50.5))
	assert.True(t, IsScrolled(400))
}

func TestHeaderClass(t *testing.T) {
	assert.Contains(t, HeaderClass(false), "bg-transparent")
	assert.NotContains(t, HeaderClass(false), "shadow-md")
	assert.Contains(t, HeaderClass(true), "bg-white shadow-md")
	assert.True(t, strings.HasPrefix(HeaderClass(true), "site-header fixed"))
}

func TestHeader(t *testing.T) {
	var b strings.Builder
	require.NoError(t, Header().Render(&b))
	html := b.String()

	assert.Contains(t, html, `id="site-header"`)
	assert.Contains(t, html, `data-scroll-threshold="50"`)
	assert.Contains(t, html, `data-scrolled-class="bg-white shadow-md"`)
	assert.Contains(t, html, `data-top-class="bg-transparent"`)
	assert.Contains(t, html, `class="`+HeaderClass(false)+`"`)
}
