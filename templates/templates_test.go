package templates

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEmbeddedPages(t *testing.T) {
	tmpl, err := Parse()
	require.NoError(t, err)
	for _, name := range []string{"dashboard.html", "error.html", "empty.html"} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}

	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, "error.html", map[string]string{
		"Title":   "Failed to load the dataset",
		"Message": "<b>unreachable</b>",
	}))
	assert.Contains(t, buf.String(), "&lt;b&gt;unreachable&lt;/b&gt;")
}

func TestFuncs(t *testing.T) {
	fixed := Funcs["fixed"].(func(float64) string)
	assert.Equal(t, "3.14", fixed(3.14159))

	deref := Funcs["deref"].(func(*float64) string)
	v := 2.5
	assert.Equal(t, "2.50", deref(&v))
	assert.Equal(t, "n/a", deref(nil))
}
