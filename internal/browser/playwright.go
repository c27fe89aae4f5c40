package browser

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/playwright-community/playwright-go"
)

type PlaywrightManager struct {
	pw      *playwright.Playwright
	browser playwright.Browser
}

// NewPlaywright starts the playwright driver and launches Chromium.
// Browsers must already be installed.
func NewPlaywright(ctx context.Context, headless bool) (*PlaywrightManager, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("could not start playwright: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(headless),
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("could not launch chromium: %w", err)
	}

	return &PlaywrightManager{
		pw:      pw,
		browser: browser,
	}, nil
}

// NewSession opens a fresh browser context with a single page.
func (pm *PlaywrightManager) NewSession() (*PlaywrightSession, error) {
	browserCtx, err := pm.browser.NewContext(playwright.BrowserNewContextOptions{
		Locale: playwright.String("pt-BR"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create browser context: %w", err)
	}

	page, err := browserCtx.NewPage()
	if err != nil {
		browserCtx.Close()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	return &PlaywrightSession{browserCtx: browserCtx, page: page}, nil
}

func (pm *PlaywrightManager) Close() error {
	var errs []error
	if pm.browser != nil {
		if err := pm.browser.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close browser: %w", err))
		}
	}
	if pm.pw != nil {
		if err := pm.pw.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("stop playwright: %w", err))
		}
	}
	return errors.Join(errs...)
}

// OpenPlaywright starts playwright and returns a session that owns the whole
// driver, so closing the session shuts everything down.
func OpenPlaywright(ctx context.Context, headless bool) (*PlaywrightSession, error) {
	pm, err := NewPlaywright(ctx, headless)
	if err != nil {
		return nil, err
	}

	session, err := pm.NewSession()
	if err != nil {
		pm.Close()
		return nil, err
	}
	session.manager = pm
	return session, nil
}

// PlaywrightSession implements Driver on top of one playwright page.
type PlaywrightSession struct {
	manager    *PlaywrightManager
	browserCtx playwright.BrowserContext
	page       playwright.Page
}

func (s *PlaywrightSession) Navigate(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := s.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(30000),
	}); err != nil {
		return fmt.Errorf("failed to load %s: %w", url, translatePlaywrightError(err))
	}
	return nil
}

func (s *PlaywrightSession) FindElement(ctx context.Context, selector string) (Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	handle, err := s.page.QuerySelector(selector)
	if err != nil {
		return nil, translatePlaywrightError(err)
	}
	if handle == nil {
		return nil, fmt.Errorf("%q: %w", selector, ErrNotFound)
	}
	return &playwrightElement{handle: handle}, nil
}

func (s *PlaywrightSession) FindElements(ctx context.Context, selector string) ([]Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	handles, err := s.page.QuerySelectorAll(selector)
	if err != nil {
		return nil, translatePlaywrightError(err)
	}
	return wrapHandles(handles), nil
}

func (s *PlaywrightSession) Screenshot(path string) error {
	_, err := s.page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	})
	return err
}

func (s *PlaywrightSession) Close() error {
	var errs []error
	if s.browserCtx != nil {
		if err := s.browserCtx.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close browser context: %w", err))
		}
	}
	if s.manager != nil {
		if err := s.manager.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	log.Println("🧹 Browser session closed.")
	return errors.Join(errs...)
}

type playwrightElement struct {
	handle playwright.ElementHandle
}

func wrapHandles(handles []playwright.ElementHandle) []Element {
	elements := make([]Element, len(handles))
	for i, h := range handles {
		elements[i] = &playwrightElement{handle: h}
	}
	return elements
}

func (e *playwrightElement) Text(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	text, err := e.handle.InnerText()
	return text, translatePlaywrightError(err)
}

func (e *playwrightElement) Visible(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	visible, err := e.handle.IsVisible()
	return visible, translatePlaywrightError(err)
}

func (e *playwrightElement) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return translatePlaywrightError(e.handle.Fill(""))
}

func (e *playwrightElement) Type(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return translatePlaywrightError(e.handle.Type(text))
}

func (e *playwrightElement) Press(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return translatePlaywrightError(e.handle.Press(key))
}

func (e *playwrightElement) Click(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return translatePlaywrightError(e.handle.Click())
}

func (e *playwrightElement) FindElement(ctx context.Context, selector string) (Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	handle, err := e.handle.QuerySelector(selector)
	if err != nil {
		return nil, translatePlaywrightError(err)
	}
	if handle == nil {
		return nil, fmt.Errorf("%q: %w", selector, ErrNotFound)
	}
	return &playwrightElement{handle: handle}, nil
}

// translatePlaywrightError maps playwright failures onto the driver sentinels.
func translatePlaywrightError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, playwright.ErrTimeout) {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}
	msg := err.Error()
	if strings.Contains(msg, "not attached to the DOM") || strings.Contains(msg, "Element is detached") {
		return fmt.Errorf("%w: %w", ErrStale, err)
	}
	return err
}
