package page

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/raysh454/formpilot/internal/interfaces"
	"github.com/raysh454/formpilot/internal/model"
	"github.com/raysh454/formpilot/internal/utils"
)

// HTMLDocOpener fetches a page over HTTP and exposes it as an in-memory
// goquery document. It sees the served HTML only — no scripts run — which
// makes it deterministic and ideal for tests and dry runs.
type HTMLDocOpener struct {
	client *http.Client
	logger interfaces.Logger
}

func NewHTMLDocOpener(cfg Config, logger interfaces.Logger) *HTMLDocOpener {
	return &HTMLDocOpener{
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

func (o *HTMLDocOpener) Open(ctx context.Context, url string) (interfaces.Session, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", url, err)
	}

	if o.logger != nil {
		o.logger.Debug("opened htmldoc session",
			interfaces.Field{Key: "url", Value: url})
	}

	return &HTMLDocSession{doc: doc, url: resp.Request.URL.String()}, nil
}

func (o *HTMLDocOpener) Close() error { return nil }

// HTMLDocSession implements interfaces.Session over a parsed document.
// Fills mutate the in-memory tree; synthetic events and focus handling are
// meaningless without a live DOM and are no-ops here.
type HTMLDocSession struct {
	doc *goquery.Document
	url string
}

// NewHTMLSession parses raw HTML directly, bypassing HTTP. Used by tests
// and the inline demo.
func NewHTMLSession(html, url string) (*HTMLDocSession, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return &HTMLDocSession{doc: doc, url: url}, nil
}

// Document exposes the underlying tree so tests can assert on mutations.
func (s *HTMLDocSession) Document() *goquery.Document { return s.doc }

func (s *HTMLDocSession) Fields(ctx context.Context) ([]model.FieldMetadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var fields []model.FieldMetadata
	s.doc.Find("input, textarea, select").Each(func(_ int, sel *goquery.Selection) {
		tag := goquery.NodeName(sel)
		typeAttr := strings.ToLower(sel.AttrOr("type", ""))

		if _, disabled := sel.Attr("disabled"); disabled {
			return
		}
		if sel.AttrOr("aria-disabled", "") == "true" {
			return
		}
		if tag == "input" && !fillableInputType(typeAttr) {
			return
		}

		fields = append(fields, model.FieldMetadata{
			Tag:          tag,
			TypeAttr:     typeAttr,
			Name:         sel.AttrOr("name", ""),
			ID:           sel.AttrOr("id", ""),
			Placeholder:  sel.AttrOr("placeholder", ""),
			AriaLabel:    sel.AttrOr("aria-label", ""),
			Autocomplete: sel.AttrOr("autocomplete", ""),
			LabelText:    s.labelText(sel),
			Value:        currentValue(tag, sel),
			Locator:      s.buildLocator(tag, sel),
		})
	})

	return fields, nil
}

func (s *HTMLDocSession) Fill(ctx context.Context, locator, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	sel := s.doc.Find(locator)
	if sel.Length() == 0 {
		return interfaces.ErrElementNotFound
	}
	sel = sel.First()

	switch goquery.NodeName(sel) {
	case "select":
		fillSelect(sel, value)
	case "textarea":
		sel.SetText(value)
	default:
		sel.SetAttr("value", value)
	}
	return nil
}

func (s *HTMLDocSession) URL(ctx context.Context) (string, error) { return s.url, nil }

func (s *HTMLDocSession) Close() error { return nil }

// labelText resolves the associated label: label[for=id] first, then a
// wrapping <label>.
func (s *HTMLDocSession) labelText(sel *goquery.Selection) string {
	if id, ok := sel.Attr("id"); ok && id != "" {
		lbl := s.doc.Find(fmt.Sprintf(`label[for=%q]`, id))
		if lbl.Length() > 0 {
			return strings.TrimSpace(lbl.First().Text())
		}
	}
	parent := sel.Closest("label")
	if parent.Length() > 0 {
		return strings.TrimSpace(parent.First().Text())
	}
	return ""
}

// buildLocator mirrors the locator priority used at apply time:
// #id, then tag[name=...], then tag:nth-of-type within the parent.
func (s *HTMLDocSession) buildLocator(tag string, sel *goquery.Selection) string {
	if id, ok := sel.Attr("id"); ok && id != "" {
		return "#" + utils.EscapeCSSIdentifier(id)
	}
	if name, ok := sel.Attr("name"); ok && name != "" {
		return fmt.Sprintf(`%s[name=%q]`, tag, name)
	}

	parent := sel.Parent()
	if parent.Length() == 0 {
		return tag
	}
	idx := 1
	node := sel.Get(0)
	parent.ChildrenFiltered(tag).EachWithBreak(func(i int, sib *goquery.Selection) bool {
		if sib.Get(0) == node {
			idx = i + 1
			return false
		}
		return true
	})
	return fmt.Sprintf("%s:nth-of-type(%d)", tag, idx)
}

// currentValue reports what the element holds at scan time.
func currentValue(tag string, sel *goquery.Selection) string {
	switch tag {
	case "textarea":
		return sel.Text()
	case "select":
		opts := sel.Find("option")
		if opts.Length() == 0 {
			return ""
		}
		chosen := opts.First()
		opts.EachWithBreak(func(_ int, opt *goquery.Selection) bool {
			if _, ok := opt.Attr("selected"); ok {
				chosen = opt
				return false
			}
			return true
		})
		return optionValue(chosen)
	default:
		return sel.AttrOr("value", "")
	}
}

// fillSelect matches value case-insensitively against each option's value
// or display text; the first match becomes selected. No match leaves the
// element unchanged.
func fillSelect(sel *goquery.Selection, value string) {
	want := strings.ToLower(value)
	var match *goquery.Selection
	sel.Find("option").EachWithBreak(func(_ int, opt *goquery.Selection) bool {
		if strings.ToLower(optionValue(opt)) == want ||
			strings.ToLower(strings.TrimSpace(opt.Text())) == want {
			match = opt
			return false
		}
		return true
	})
	if match == nil {
		return
	}
	sel.Find("option").RemoveAttr("selected")
	match.SetAttr("selected", "selected")
}

// optionValue is the option's submit value: the value attribute when
// present, otherwise its text.
func optionValue(opt *goquery.Selection) string {
	if v, ok := opt.Attr("value"); ok {
		return v
	}
	return strings.TrimSpace(opt.Text())
}
