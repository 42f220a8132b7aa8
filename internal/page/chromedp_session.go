package page

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"

	"github.com/raysh454/formpilot/internal/interfaces"
	"github.com/raysh454/formpilot/internal/model"
)

// ChromedpOpener owns a browser allocator and opens one tab per session.
type ChromedpOpener struct {
	allocCtx    context.Context
	allocCancel context.CancelFunc
	cfg         Config
	logger      interfaces.Logger
}

func NewChromedpOpener(cfg Config, logger interfaces.Logger) (*ChromedpOpener, error) {
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	if !cfg.Headless {
		opts = append(opts, chromedp.Flag("headless", false))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)
	return &ChromedpOpener{
		allocCtx:    allocCtx,
		allocCancel: cancel,
		cfg:         cfg,
		logger:      logger,
	}, nil
}

// Open navigates a fresh tab to url and waits for the network to go idle so
// script-rendered forms are present before the first scan.
func (o *ChromedpOpener) Open(ctx context.Context, url string) (interfaces.Session, error) {
	tabCtx, tabCancel := chromedp.NewContext(o.allocCtx)

	idle := waitNetworkIdle(tabCtx, o.cfg.IdleAfter)

	if err := chromedp.Run(tabCtx, network.Enable(), chromedp.Navigate(url)); err != nil {
		tabCancel()
		return nil, fmt.Errorf("navigate %s: %w", url, err)
	}

	select {
	case <-idle:
	case <-time.After(o.cfg.Timeout):
		// Busy pages never settle; scan whatever is there.
		if o.logger != nil {
			o.logger.Warn("network idle timeout, proceeding",
				interfaces.Field{Key: "url", Value: url})
		}
	case <-ctx.Done():
		tabCancel()
		return nil, ctx.Err()
	}

	return &ChromedpSession{ctx: tabCtx, cancel: tabCancel}, nil
}

func (o *ChromedpOpener) Close() error {
	o.allocCancel()
	return nil
}

// waitNetworkIdle signals once no request has been in flight for idleAfter.
func waitNetworkIdle(ctx context.Context, idleAfter time.Duration) chan struct{} {
	idleChan := make(chan struct{})
	var activeReqs int32
	var timer *time.Timer
	var timerMutex sync.Mutex
	var once sync.Once

	startTimer := func() {
		timerMutex.Lock()
		defer timerMutex.Unlock()

		if timer != nil {
			timer.Stop()
		}

		timer = time.AfterFunc(idleAfter, func() {
			if atomic.LoadInt32(&activeReqs) == 0 {
				once.Do(func() { close(idleChan) })
			}
		})
	}

	// Pages that issue no requests after navigation still settle.
	startTimer()

	chromedp.ListenTarget(ctx, func(ev any) {
		switch ev.(type) {
		case *network.EventRequestWillBeSent:
			atomic.AddInt32(&activeReqs, 1)
		case *network.EventLoadingFinished, *network.EventLoadingFailed:
			if atomic.AddInt32(&activeReqs, -1) <= 0 {
				startTimer()
			}
		}
	})

	return idleChan
}

// ChromedpSession implements interfaces.Session against a live tab. Field
// extraction and filling both run as injected script so the semantics match
// what a content script would observe and do.
type ChromedpSession struct {
	ctx    context.Context
	cancel context.CancelFunc
}

func (s *ChromedpSession) Fields(ctx context.Context) ([]model.FieldMetadata, error) {
	var fields []model.FieldMetadata
	if err := chromedp.Run(s.ctx, chromedp.Evaluate(scanFieldsJS, &fields)); err != nil {
		return nil, fmt.Errorf("scan fields: %w", err)
	}
	return fields, nil
}

func (s *ChromedpSession) Fill(ctx context.Context, locator, value string) error {
	locJSON, err := json.Marshal(locator)
	if err != nil {
		return fmt.Errorf("encode locator: %w", err)
	}
	valJSON, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode value: %w", err)
	}

	var status string
	expr := fmt.Sprintf(fillFieldJS, locJSON, valJSON)
	if err := chromedp.Run(s.ctx, chromedp.Evaluate(expr, &status)); err != nil {
		return fmt.Errorf("fill %s: %w", locator, err)
	}

	switch {
	case status == "ok":
		return nil
	case status == "not_found":
		return interfaces.ErrElementNotFound
	default:
		return fmt.Errorf("fill %s: %s", locator, strings.TrimPrefix(status, "error: "))
	}
}

func (s *ChromedpSession) URL(ctx context.Context) (string, error) {
	var u string
	if err := chromedp.Run(s.ctx, chromedp.Location(&u)); err != nil {
		return "", fmt.Errorf("get location: %w", err)
	}
	return u, nil
}

func (s *ChromedpSession) Close() error {
	s.cancel()
	return nil
}

// scanFieldsJS collects metadata for every fillable element. Key names
// match model.FieldMetadata's JSON tags.
const scanFieldsJS = `(() => {
  const esc = (s) => (window.CSS && CSS.escape) ? CSS.escape(s) : s;
  const labelFor = (el) => {
    if (el.id) {
      const lbl = document.querySelector('label[for="' + esc(el.id) + '"]');
      if (lbl) return (lbl.textContent || "").trim();
    }
    const parent = el.closest("label");
    if (parent) return (parent.textContent || "").trim();
    return "";
  };
  const locator = (el) => {
    if (el.id) return "#" + esc(el.id);
    const tag = el.tagName.toLowerCase();
    const name = el.getAttribute("name");
    if (name) return tag + '[name="' + esc(name) + '"]';
    const parent = el.parentElement;
    if (!parent) return tag;
    const siblings = Array.from(parent.querySelectorAll(tag));
    return tag + ":nth-of-type(" + (siblings.indexOf(el) + 1) + ")";
  };
  const excluded = ["hidden", "submit", "button", "reset", "file"];
  return Array.from(document.querySelectorAll("input, textarea, select"))
    .filter((el) =>
      !el.hasAttribute("disabled") &&
      el.getAttribute("aria-disabled") !== "true" &&
      !(el.type && excluded.includes(el.type)))
    .map((el) => ({
      tag: el.tagName.toLowerCase(),
      type_attr: (el.getAttribute("type") || "").toLowerCase(),
      name: el.getAttribute("name") || "",
      id: el.id || "",
      placeholder: el.getAttribute("placeholder") || "",
      aria_label: el.getAttribute("aria-label") || "",
      autocomplete: el.getAttribute("autocomplete") || "",
      label_text: labelFor(el),
      value: el.value || "",
      locator: locator(el)
    }));
})()`

// fillFieldJS sets the value and emits the change notifications reactive
// frameworks listen for. Select options match case-insensitively on value
// or display text; no match leaves the element unchanged.
const fillFieldJS = `((locator, value) => {
  const el = document.querySelector(locator);
  if (!el) return "not_found";
  try {
    el.focus();
    if (el.tagName.toLowerCase() === "select") {
      const opt = Array.from(el.options).find((o) =>
        o.value.toLowerCase() === value.toLowerCase() ||
        o.text.toLowerCase() === value.toLowerCase());
      if (opt) el.value = opt.value;
    } else {
      el.value = value;
    }
    el.dispatchEvent(new Event("input", { bubbles: true }));
    el.dispatchEvent(new Event("change", { bubbles: true }));
    el.blur();
    return "ok";
  } catch (e) {
    return "error: " + String(e);
  }
})(%s, %s)`
