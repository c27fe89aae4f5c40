package browser

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
)

// SnapshotDriver serves saved HTML documents instead of a live browser.
// Every URL maps to one document; unknown URLs fall back to the default page.
// Typing updates the input's value attribute, key presses and clicks are recorded.
type SnapshotDriver struct {
	mu       sync.Mutex
	pages    map[string][]byte
	fallback []byte
	doc      *goquery.Document
	url      string
	actions  []string
}

// NewSnapshotDriver builds a driver from url -> html pages. fallback may be nil.
func NewSnapshotDriver(pages map[string]string, fallback string) *SnapshotDriver {
	d := &SnapshotDriver{pages: make(map[string][]byte, len(pages))}
	for url, html := range pages {
		d.pages[url] = []byte(html)
	}
	if fallback != "" {
		d.fallback = []byte(fallback)
	}
	return d
}

// OpenSnapshot loads one saved page from disk and serves it for every URL.
func OpenSnapshot(path string) (*SnapshotDriver, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	d := &SnapshotDriver{pages: map[string][]byte{}, fallback: data}
	if err := d.load("file://"+path, data); err != nil {
		return nil, err
	}
	log.Printf("📂 Snapshot loaded from %s", path)
	return d, nil
}

func (d *SnapshotDriver) load(url string, data []byte) error {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", url, err)
	}
	d.doc = doc
	d.url = url
	return nil
}

func (d *SnapshotDriver) Navigate(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	data, ok := d.pages[url]
	if !ok {
		data = d.fallback
	}
	if data == nil {
		return fmt.Errorf("no snapshot for %s", url)
	}
	d.actions = append(d.actions, "navigate "+url)
	return d.load(url, data)
}

func (d *SnapshotDriver) FindElement(ctx context.Context, selector string) (Element, error) {
	elements, err := d.FindElements(ctx, selector)
	if err != nil {
		return nil, err
	}
	if len(elements) == 0 {
		return nil, fmt.Errorf("%q: %w", selector, ErrNotFound)
	}
	return elements[0], nil
}

func (d *SnapshotDriver) FindElements(ctx context.Context, selector string) ([]Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.doc == nil {
		return nil, fmt.Errorf("%q: %w", selector, ErrNotFound)
	}
	return d.wrap(d.doc.Find(selector)), nil
}

func (d *SnapshotDriver) wrap(sel *goquery.Selection) []Element {
	elements := make([]Element, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		elements = append(elements, &snapshotElement{driver: d, sel: s})
	})
	return elements
}

// Document exposes the current document, mostly for assertions in tests.
func (d *SnapshotDriver) Document() *goquery.Document {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.doc
}

// URL is the last navigated URL.
func (d *SnapshotDriver) URL() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.url
}

// Actions lists navigations, clicks and key presses in order.
func (d *SnapshotDriver) Actions() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.actions...)
}

func (d *SnapshotDriver) record(action string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.actions = append(d.actions, action)
}

func (d *SnapshotDriver) Close() error {
	return nil
}

type snapshotElement struct {
	driver *SnapshotDriver
	sel    *goquery.Selection
}

func (e *snapshotElement) Text(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return e.sel.Text(), nil
}

func (e *snapshotElement) Visible(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	for s := e.sel; s.Length() > 0; s = s.Parent() {
		if _, hidden := s.Attr("hidden"); hidden {
			return false, nil
		}
		style := strings.ReplaceAll(strings.ToLower(s.AttrOr("style", "")), " ", "")
		if strings.Contains(style, "display:none") || strings.Contains(style, "visibility:hidden") {
			return false, nil
		}
	}
	return true, nil
}

func (e *snapshotElement) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e.sel.SetAttr("value", "")
	return nil
}

func (e *snapshotElement) Type(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e.sel.SetAttr("value", e.sel.AttrOr("value", "")+text)
	return nil
}

func (e *snapshotElement) Press(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e.driver.record("press " + key + " " + describe(e.sel))
	return nil
}

func (e *snapshotElement) Click(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e.driver.record("click " + describe(e.sel))
	return nil
}

func (e *snapshotElement) FindElement(ctx context.Context, selector string) (Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	found := e.sel.Find(selector).First()
	if found.Length() == 0 {
		return nil, fmt.Errorf("%q: %w", selector, ErrNotFound)
	}
	return &snapshotElement{driver: e.driver, sel: found}, nil
}

// describe renders a short tag#id.class label for action logs.
func describe(s *goquery.Selection) string {
	label := goquery.NodeName(s)
	if id, ok := s.Attr("id"); ok {
		label += "#" + id
	}
	if class, ok := s.Attr("class"); ok && class != "" {
		label += "." + strings.Join(strings.Fields(class), ".")
	}
	return label
}
