package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/chromedp/chromedp"
	"github.com/chromedp/chromedp/kb"
)

// ChromeSession implements Driver over the Chrome DevTools protocol.
// Elements are kept as selector paths and resolved in the page on every call,
// so a path that no longer resolves is reported as ErrStale.
type ChromeSession struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// OpenChrome launches a local Chromium through chromedp.
func OpenChrome(ctx context.Context, headless bool) (*ChromeSession, error) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", headless),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("lang", "pt-BR"),
	)
	if p := os.Getenv("CHROME_PATH"); p != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(p))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(context.WithoutCancel(ctx), allocOpts...)
	tabCtx, tabCancel := chromedp.NewContext(allocCtx)

	s := &ChromeSession{
		ctx: tabCtx,
		cancel: func() {
			tabCancel()
			allocCancel()
		},
	}

	//start the browser now so launch errors surface here
	if err := chromedp.Run(tabCtx, chromedp.Navigate("about:blank")); err != nil {
		s.cancel()
		return nil, fmt.Errorf("failed to start chrome: %w", err)
	}
	return s, nil
}

// run executes actions on the tab while honouring the caller's context.
func (s *ChromeSession) run(ctx context.Context, actions ...chromedp.Action) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	runCtx, cancel := context.WithCancel(s.ctx)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	if err := chromedp.Run(runCtx, actions...); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	return nil
}

func (s *ChromeSession) Navigate(ctx context.Context, url string) error {
	if err := s.run(ctx, chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("failed to load %s: %w", url, err)
	}
	return nil
}

func (s *ChromeSession) FindElement(ctx context.Context, selector string) (Element, error) {
	return findFirst(ctx, s, nil, selector)
}

func (s *ChromeSession) FindElements(ctx context.Context, selector string) ([]Element, error) {
	return findAll(ctx, s, nil, selector)
}

func (s *ChromeSession) Screenshot(path string) error {
	var buf []byte
	if err := chromedp.Run(s.ctx, chromedp.FullScreenshot(&buf, 90)); err != nil {
		return err
	}
	return os.WriteFile(path, buf, 0644)
}

func (s *ChromeSession) Close() error {
	s.cancel()
	log.Println("🧹 Chrome session closed.")
	return nil
}

// pathStep selects the idx-th match of sel below the previous step.
type pathStep struct {
	Sel string `json:"sel"`
	Idx int    `json:"idx"`
}

type chromeElement struct {
	session *ChromeSession
	path    []pathStep
}

type nodeResult struct {
	Missing bool   `json:"missing"`
	Count   int    `json:"count"`
	Text    string `json:"text"`
	Visible bool   `json:"visible"`
}

// resolveJS returns a JS function body prefix that binds `el` to the node at path,
// or returns {missing: true} when any step no longer matches.
func resolveJS(path []pathStep) string {
	if path == nil {
		path = []pathStep{}
	}
	steps, _ := json.Marshal(path)
	return fmt.Sprintf(`let el = document;
for (const step of %s) {
	const all = el.querySelectorAll(step.sel);
	if (step.idx >= all.length) { return {missing: true}; }
	el = all[step.idx];
}
`, steps)
}

// jsString quotes s as a JS string literal.
func jsString(s string) string {
	quoted, _ := json.Marshal(s)
	return string(quoted)
}

func (s *ChromeSession) eval(ctx context.Context, path []pathStep, body string) (nodeResult, error) {
	var res nodeResult
	js := "(() => {\n" + resolveJS(path) + body + "\n})()"
	if err := s.run(ctx, chromedp.Evaluate(js, &res)); err != nil {
		return res, err
	}
	return res, nil
}

func findAll(ctx context.Context, s *ChromeSession, parent []pathStep, selector string) ([]Element, error) {
	res, err := s.eval(ctx, parent, fmt.Sprintf(`return {count: el.querySelectorAll(%s).length};`, jsString(selector)))
	if err != nil {
		return nil, err
	}
	if res.Missing {
		return nil, ErrStale
	}
	elements := make([]Element, res.Count)
	for i := range elements {
		path := append(append([]pathStep(nil), parent...), pathStep{Sel: selector, Idx: i})
		elements[i] = &chromeElement{session: s, path: path}
	}
	return elements, nil
}

func findFirst(ctx context.Context, s *ChromeSession, parent []pathStep, selector string) (Element, error) {
	elements, err := findAll(ctx, s, parent, selector)
	if err != nil {
		return nil, err
	}
	if len(elements) == 0 {
		return nil, fmt.Errorf("%q: %w", selector, ErrNotFound)
	}
	return elements[0], nil
}

// do runs body against the element and maps an unresolvable path to ErrStale.
func (e *chromeElement) do(ctx context.Context, body string) (nodeResult, error) {
	res, err := e.session.eval(ctx, e.path, body)
	if err != nil {
		return res, err
	}
	if res.Missing {
		return res, ErrStale
	}
	return res, nil
}

func (e *chromeElement) Text(ctx context.Context) (string, error) {
	res, err := e.do(ctx, `return {text: el.innerText};`)
	return res.Text, err
}

func (e *chromeElement) Visible(ctx context.Context) (bool, error) {
	res, err := e.do(ctx, `const style = window.getComputedStyle(el);
return {visible: style.visibility !== 'hidden' && el.getClientRects().length > 0};`)
	return res.Visible, err
}

func (e *chromeElement) Clear(ctx context.Context) error {
	_, err := e.do(ctx, `el.focus(); el.value = ''; el.dispatchEvent(new Event('input', {bubbles: true})); return {};`)
	return err
}

func (e *chromeElement) focus(ctx context.Context) error {
	_, err := e.do(ctx, `el.focus(); return {};`)
	return err
}

func (e *chromeElement) Type(ctx context.Context, text string) error {
	if err := e.focus(ctx); err != nil {
		return err
	}
	return e.session.run(ctx, chromedp.KeyEvent(text))
}

func (e *chromeElement) Press(ctx context.Context, key string) error {
	if err := e.focus(ctx); err != nil {
		return err
	}
	if key == KeyEnter {
		key = kb.Enter
	}
	return e.session.run(ctx, chromedp.KeyEvent(key))
}

func (e *chromeElement) Click(ctx context.Context) error {
	_, err := e.do(ctx, `el.click(); return {};`)
	return err
}

func (e *chromeElement) FindElement(ctx context.Context, selector string) (Element, error) {
	return findFirst(ctx, e.session, e.path, selector)
}
