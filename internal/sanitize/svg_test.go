package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSVGKeepsDrawingPrimitives(t *testing.T) {
	in := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100" width="100" height="100">` +
		`<rect x="10" y="10" width="20" height="20" fill="rgb(0,0,0)"/>` +
		`<circle cx="50.50" cy="50.50" r="8.40" fill="rgb(0,0,0)"/>` +
		`</svg>`

	out, err := SVG(in)
	require.NoError(t, err)

	assert.Contains(t, out, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100" width="100" height="100">`)
	assert.Contains(t, out, `<rect x="10" y="10" width="20" height="20" fill="rgb(0,0,0)">`)
	assert.Contains(t, out, `<circle cx="50.50" cy="50.50" r="8.40" fill="rgb(0,0,0)">`)
}

func TestSVGStripsScripts(t *testing.T) {
	in := `<svg xmlns="http://www.w3.org/2000/svg">` +
		`<script>alert("boom")</script>` +
		`<rect x="1" y="1" width="2" height="2"/>` +
		`</svg>`

	out, err := SVG(in)
	require.NoError(t, err)

	assert.NotContains(t, out, "script")
	assert.NotContains(t, out, "alert")
	assert.Contains(t, out, "<rect")
}

func TestSVGStripsEventHandlerAttributes(t *testing.T) {
	in := `<svg xmlns="http://www.w3.org/2000/svg">` +
		`<rect x="1" y="1" width="2" height="2" onclick="steal()" onload="run()"/>` +
		`</svg>`

	out, err := SVG(in)
	require.NoError(t, err)

	assert.NotContains(t, out, "onclick")
	assert.NotContains(t, out, "onload")
	assert.Contains(t, out, `<rect x="1" y="1" width="2" height="2">`)
}

func TestSVGStripsForeignContentSubtree(t *testing.T) {
	in := `<svg xmlns="http://www.w3.org/2000/svg">` +
		`<foreignObject><body xmlns="http://www.w3.org/1999/xhtml"><iframe src="https://evil.example"></iframe></body></foreignObject>` +
		`<circle cx="5" cy="5" r="2"/>` +
		`</svg>`

	out, err := SVG(in)
	require.NoError(t, err)

	assert.NotContains(t, out, "foreignObject")
	assert.NotContains(t, out, "iframe")
	assert.NotContains(t, out, "evil.example")
	assert.Contains(t, out, "<circle")
}

func TestSVGStripsHyperlinksAndNamespacedAttributes(t *testing.T) {
	in := `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink">` +
		`<a xlink:href="javascript:run()"><rect x="1" y="1" width="2" height="2"/></a>` +
		`</svg>`

	out, err := SVG(in)
	require.NoError(t, err)

	assert.NotContains(t, out, "href")
	assert.NotContains(t, out, "javascript")
	// The anchor and everything under it is gone.
	assert.NotContains(t, out, "<rect")
}

func TestSVGKeepsGradientsAndTitles(t *testing.T) {
	in := `<svg xmlns="http://www.w3.org/2000/svg">` +
		`<title>code</title>` +
		`<defs><linearGradient id="gr"><stop offset="0%" stop-color="rgb(0,0,0)"/></linearGradient></defs>` +
		`<rect width="4" height="4" fill="url(#gr)"/>` +
		`</svg>`

	out, err := SVG(in)
	require.NoError(t, err)

	assert.Contains(t, out, "<title>code</title>")
	assert.Contains(t, out, `<linearGradient id="gr">`)
	assert.Contains(t, out, `<stop offset="0%" stop-color="rgb(0,0,0)">`)
}

func TestSVGRejectsMalformedMarkup(t *testing.T) {
	_, err := SVG(`<svg xmlns="http://www.w3.org/2000/svg"><rect`)
	assert.Error(t, err)
}

func TestSVGRejectsMissingRoot(t *testing.T) {
	_, err := SVG(`<html><p>nope</p></html>`)
	assert.Error(t, err)
}
