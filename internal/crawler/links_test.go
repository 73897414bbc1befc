package crawler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractLinks(t *testing.T) {
	body := []byte(`<!DOCTYPE html>
<html>
<head><link href="/style.css" rel="stylesheet"></head>
<body>
  <a href="/about">About</a>
  <a name="anchor-only">No href</a>
  <nav><a href="news/latest">News</a></nav>
  <a href="">Empty</a>
</body>
</html>`)

	links, err := ExtractLinks(body)
	require.NoError(t, err)

	assert.Equal(t, []string{"/about", "news/latest", ""}, links)
}

func TestExtractLinks_NoAnchors(t *testing.T) {
	links, err := ExtractLinks([]byte("plain text, not html"))
	require.NoError(t, err)

	assert.Empty(t, links)
}
