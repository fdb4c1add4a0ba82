package summarize

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"

	"github.com/theboringdotapp/newsletter-builder/internal/domain"
	"github.com/theboringdotapp/newsletter-builder/internal/version"
)

const (
	// DefaultFetchTimeout bounds the whole page fetch, body included.
	DefaultFetchTimeout = 10 * time.Second

	maxBodyBytes    = 2 << 20
	maxMarkdownRune = 6000
)

// Page is what the summarizer knows about a URL before asking the model.
type Page struct {
	URL         string
	Title       string
	Description string
	Markdown    string // readable body, truncated
}

// Fetcher downloads a page and extracts its metadata and readable text.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
}

// NewFetcher creates a fetcher. A nil client uses http.DefaultClient and a
// non-positive timeout uses DefaultFetchTimeout.
func NewFetcher(client *http.Client, timeout time.Duration) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	return &Fetcher{client: client, timeout: timeout}
}

// Fetch retrieves rawURL. The request is aborted once the fetch timeout
// elapses, whatever the caller's deadline.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (Page, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return Page{}, fmt.Errorf("url %q: %w", rawURL, domain.ErrInvalidInput)
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return Page{}, fmt.Errorf("request creation failed: %w", err)
	}
	req.Header.Set("User-Agent", version.UserAgent("link summarizer"))
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.5")

	resp, err := f.client.Do(req)
	if err != nil {
		return Page{}, domain.UpstreamServiceError{Service: "fetch", Detail: "request failed", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Page{}, domain.UpstreamServiceError{
			Service:    "fetch",
			StatusCode: resp.StatusCode,
			Detail:     fmt.Sprintf("unexpected status fetching %s", u.String()),
		}
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return Page{}, domain.UpstreamServiceError{Service: "fetch", Detail: "parse HTML failed", Err: err}
	}

	return extractPage(u.String(), doc), nil
}

func extractPage(pageURL string, doc *goquery.Document) Page {
	p := Page{URL: pageURL}

	p.Title = firstNonEmpty(
		metaContent(doc, `meta[property="og:title"]`),
		strings.TrimSpace(doc.Find("title").First().Text()),
		strings.TrimSpace(doc.Find("h1").First().Text()),
	)
	p.Description = firstNonEmpty(
		metaContent(doc, `meta[name="description"]`),
		metaContent(doc, `meta[property="og:description"]`),
		metaContent(doc, `meta[name="twitter:description"]`),
	)

	doc.Find("script, style, noscript, svg, nav, footer, iframe, form").Remove()

	content := doc.Find("article").First()
	if content.Length() == 0 {
		content = doc.Find("main").First()
	}
	if content.Length() == 0 {
		content = doc.Find("body")
	}

	if html, err := content.Html(); err == nil {
		if md, err := htmltomarkdown.ConvertString(html); err == nil {
			p.Markdown = truncateRunes(strings.TrimSpace(md), maxMarkdownRune)
		}
	}
	if p.Markdown == "" {
		p.Markdown = truncateRunes(collapseSpaces(content.Text()), maxMarkdownRune)
	}
	return p
}

func metaContent(doc *goquery.Document, selector string) string {
	v, _ := doc.Find(selector).First().Attr("content")
	return strings.TrimSpace(v)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
