package studio

import (
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qrstudio/qrstudio/internal/cache"
)

func TestStudioCollapsesInputBurst(t *testing.T) {
	c := cache.New(10, zerolog.Nop())
	st := New(c, 50*time.Millisecond, zerolog.Nop())
	defer st.Close()

	// A burst of edits inside one debounce window renders once, with the
	// final values.
	for _, size := range []int{100, 200, 300, 400, 500} {
		size := size
		st.Session.Apply(Input{Size: &size})
		st.Orch.Trigger()
		time.Sleep(5 * time.Millisecond)
	}

	require.Eventually(t, func() bool {
		_, _, ok := st.Session.Shown()
		return ok
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, 1, c.Len())
	_, key, ok := st.Session.Shown()
	require.True(t, ok)
	assert.True(t, strings.Contains(key, "|s=500|"), "expected final size in key %q", key)
}

func TestStudioGenerateImmediate(t *testing.T) {
	c := cache.New(10, zerolog.Nop())
	st := New(c, time.Minute, zerolog.Nop())
	defer st.Close()

	st.Generate()

	shown, _, ok := st.Session.Shown()
	require.True(t, ok)
	assert.NotNil(t, shown.Image())
	assert.Equal(t, StateIdle, st.State())

	status, _ := st.Session.Status()
	assert.Equal(t, StatusSuccess, status)

	// The same configuration again is served from cache.
	st.Generate()
	status, _ = st.Session.Status()
	assert.Equal(t, StatusCachedSuccess, status)
}

func TestStudioFailureKeepsLastGoodRender(t *testing.T) {
	c := cache.New(10, zerolog.Nop())
	st := New(c, time.Minute, zerolog.Nop())
	defer st.Close()

	st.Generate()
	_, goodKey, ok := st.Session.Shown()
	require.True(t, ok)

	// Content beyond any QR version's capacity fails the encode step.
	st.Session.Apply(Input{Fields: map[string]string{"text": strings.Repeat("x", 5000)}})
	st.Generate()

	status, message := st.Session.Status()
	assert.Equal(t, StatusError, status)
	assert.NotEmpty(t, message)
	_, key, ok := st.Session.Shown()
	require.True(t, ok, "failed pass must not drop the displayed artifact")
	assert.Equal(t, goodKey, key)

	// A later good pass recovers and clears the error.
	st.Session.Apply(Input{Fields: map[string]string{"text": "hello"}})
	st.Generate()
	status, message = st.Session.Status()
	assert.Equal(t, StatusSuccess, status)
	assert.Empty(t, message)
}
