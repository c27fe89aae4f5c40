package browser

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/chromedp/chromedp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveJS(t *testing.T) {
	js := resolveJS(nil)
	assert.Contains(t, js, "for (const step of [])")

	js = resolveJS([]pathStep{{Sel: "ul.list li", Idx: 2}, {Sel: "strong", Idx: 0}})
	assert.Contains(t, js, `[{"sel":"ul.list li","idx":2},{"sel":"strong","idx":0}]`)
	assert.Contains(t, js, "return {missing: true}")

	js = resolveJS([]pathStep{{Sel: `input[name="q"]`, Idx: 0}})
	assert.Contains(t, js, `"sel":"input[name=\"q\"]"`)
}

func TestJSString(t *testing.T) {
	assert.Equal(t, `"button[type='submit']"`, jsString("button[type='submit']"))
	assert.Equal(t, `"input[id=\"q\"]"`, jsString(`input[id="q"]`))
	assert.Equal(t, `"a\\b"`, jsString(`a\b`))
}

const chromeTestPage = `<html><body>
<form onsubmit="return false"><input id="q" value="old"></form>
<div id="hidden" style="visibility: hidden">hidden</div>
<div id="gone" style="display: none">gone</div>
<ul class="list"><li><strong>First</strong></li><li><strong>Second</strong></li></ul>
<script>
document.getElementById('q').addEventListener('keydown', e => {
	if (e.key === 'Enter') { document.body.dataset.submitted = 'yes'; }
});
</script>
</body></html>`

func evalString(t *testing.T, s *ChromeSession, js string) string {
	t.Helper()
	var out string
	require.NoError(t, chromedp.Run(s.ctx, chromedp.Evaluate(js, &out)))
	return out
}

// integration test: needs a local Chromium (CHROME_PATH or on PATH)
func TestChromeSession_AgainstServedPage(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(chromeTestPage))
	}))
	defer srv.Close()

	ctx := context.Background()
	session, err := OpenChrome(ctx, true)
	if err != nil {
		t.Skipf("chrome not available: %v", err)
	}
	defer session.Close()

	require.NoError(t, session.Navigate(ctx, srv.URL))

	rows, err := session.FindElements(ctx, "ul.list > li")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	title, err := rows[1].FindElement(ctx, "strong")
	require.NoError(t, err)
	text, err := title.Text(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Second", text)

	_, err = rows[0].FindElement(ctx, "em")
	assert.ErrorIs(t, err, ErrNotFound)

	visibility := map[string]bool{"#q": true, "#hidden": false, "#gone": false}
	for selector, want := range visibility {
		el, err := session.FindElement(ctx, selector)
		require.NoError(t, err, selector)
		visible, err := el.Visible(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, visible, selector)
	}

	//quoted attribute selectors reach the page intact
	input, err := session.FindElement(ctx, `input[id="q"]`)
	require.NoError(t, err)
	require.NoError(t, input.Clear(ctx))
	assert.Equal(t, "", evalString(t, session, `document.getElementById('q').value`))
	require.NoError(t, input.Type(ctx, "golang"))
	assert.Equal(t, "golang", evalString(t, session, `document.getElementById('q').value`))

	require.NoError(t, input.Press(ctx, KeyEnter))
	assert.Equal(t, "yes", evalString(t, session, `document.body.dataset.submitted || ''`))

	//shrink the list under the handles taken above
	var removed bool
	require.NoError(t, chromedp.Run(session.ctx, chromedp.Evaluate(
		`(() => { document.querySelector('ul.list').lastElementChild.remove(); return true; })()`, &removed)))
	require.True(t, removed)

	_, err = rows[1].Text(ctx)
	assert.ErrorIs(t, err, ErrStale)
	_, err = title.Text(ctx)
	assert.ErrorIs(t, err, ErrStale)
	_, err = rows[1].FindElement(ctx, "strong")
	assert.ErrorIs(t, err, ErrStale)

	text, err = rows[0].Text(ctx)
	require.NoError(t, err)
	assert.Equal(t, "First", text)
}
