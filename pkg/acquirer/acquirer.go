// Package acquirer fetches the raw document for a URL through a tiered
// fallback chain: structured-extraction service, direct fetch, and finally a
// URL-derived stub. For a syntactically valid URL it always returns some
// document; tier failures are logged and swallowed, never propagated.
package acquirer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability"

	"github.com/recetly/recipe-parser/models"
)

// ErrInvalidURL is the only caller-visible acquisition error.
var ErrInvalidURL = errors.New("invalid url")

// minBodyLen rejects near-empty bodies on the raw-fetch tier; error pages and
// bot walls tend to be tiny.
const minBodyLen = 512

// maxBodyLen caps how much of a response is read.
const maxBodyLen = 8 << 20

// Acquirer implements the tiered source-acquisition chain.
type Acquirer struct {
	client    *http.Client
	endpoint  string
	apiKey    string
	userAgent string
	timeout   time.Duration
	logger    *slog.Logger
}

func New(cfg *models.Config, logger *slog.Logger) *Acquirer {
	if cfg == nil {
		cfg = models.DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	timeout := cfg.FetchTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Acquirer{
		client:    &http.Client{Timeout: timeout},
		endpoint:  cfg.ExtractorEndpoint,
		apiKey:    cfg.ExtractorAPIKey,
		userAgent: cfg.UserAgent,
		timeout:   timeout,
		logger:    logger,
	}
}

// serviceResponse is the JSON shape of the readability-style extraction
// service (tier 1).
type serviceResponse struct {
	Content       string `json:"content"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	DatePublished string `json:"date_published"`
	LeadImageURL  string `json:"lead_image_url"`
}

// Acquire returns a document for the URL, degrading tier by tier. It errors
// only when the URL itself cannot be parsed.
func (a *Acquirer) Acquire(ctx context.Context, rawURL string) (*models.RawDocument, error) {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}
	target := parsed.String()

	if doc, err := a.fromService(ctx, target); err == nil {
		return doc, nil
	} else if a.endpoint != "" {
		a.logger.Warn("extraction service tier failed", "url", target, "error", err)
	}

	if doc, err := a.fromRawFetch(ctx, target, parsed); err == nil {
		return doc, nil
	} else {
		a.logger.Warn("raw fetch tier failed", "url", target, "error", err)
	}

	return a.stub(parsed), nil
}

// fromService is tier 1: the external content-extraction service.
func (a *Acquirer) fromService(ctx context.Context, target string) (*models.RawDocument, error) {
	if a.endpoint == "" {
		return nil, errors.New("no extraction service configured")
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	endpoint := a.endpoint + "?url=" + url.QueryEscape(target)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build service request: %w", err)
	}
	if a.apiKey != "" {
		req.Header.Set("x-api-key", a.apiKey)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("service returned status %d", resp.StatusCode)
	}

	var payload serviceResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyLen)).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode service response: %w", err)
	}
	if strings.TrimSpace(payload.Content) == "" {
		return nil, errors.New("service returned empty content")
	}

	return &models.RawDocument{
		SourceURL:    target,
		HTML:         payload.Content,
		PageTitle:    payload.Title,
		LeadImageURL: payload.LeadImageURL,
		Author:       payload.Author,
		PublishedAt:  payload.DatePublished,
		Tier:         models.TierService,
	}, nil
}

// fromRawFetch is tier 2: a direct GET with a desktop user agent, followed by
// a local readability pass for metadata enrichment.
func (a *Acquirer) fromRawFetch(ctx context.Context, target string, parsed *url.URL) (*models.RawDocument, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if a.userAgent != "" {
		req.Header.Set("User-Agent", a.userAgent)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyLen))
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}
	if len(body) < minBodyLen {
		return nil, fmt.Errorf("body too small (%d bytes), likely an error page", len(body))
	}

	doc := &models.RawDocument{
		SourceURL: target,
		HTML:      string(body),
		Tier:      models.TierRawFetch,
	}
	a.enrich(doc, body, parsed)
	return doc, nil
}

// enrich runs go-readability over a raw-fetched body to recover metadata the
// service tier would have provided. Failures leave the document as-is.
func (a *Acquirer) enrich(doc *models.RawDocument, body []byte, parsed *url.URL) {
	parser := readability.NewParser()
	article, err := parser.Parse(strings.NewReader(string(body)), parsed)
	if err != nil {
		a.logger.Debug("readability enrichment failed", "url", doc.SourceURL, "error", err)
		return
	}
	doc.PageTitle = article.Title
	doc.LeadImageURL = article.Image
	doc.Author = article.Byline
	if article.PublishedTime != nil {
		doc.PublishedAt = article.PublishedTime.Format("2006-01-02")
	}
}

// stub is tier 3: a degraded document synthesized from the URL alone, so the
// downstream pipeline never sees nil.
func (a *Acquirer) stub(parsed *url.URL) *models.RawDocument {
	title := titleFromURL(parsed)
	return &models.RawDocument{
		SourceURL: parsed.String(),
		HTML:      fmt.Sprintf("<html><head><title>%s</title></head><body></body></html>", html.EscapeString(title)),
		PageTitle: title,
		Tier:      models.TierStub,
		Degraded:  true,
	}
}

// titleFromURL derives a human-ish title from the hostname and last path
// segment: "cocina.example.com/recetas/pollo-al-horno" -> "Pollo al horno".
func titleFromURL(parsed *url.URL) string {
	segment := ""
	for _, part := range strings.Split(parsed.Path, "/") {
		if p := strings.TrimSpace(part); p != "" {
			segment = p
		}
	}
	if segment != "" {
		segment = strings.TrimSuffix(segment, ".html")
		segment = strings.TrimSuffix(segment, ".php")
		segment = strings.ReplaceAll(segment, "-", " ")
		segment = strings.ReplaceAll(segment, "_", " ")
		segment = strings.Join(strings.Fields(segment), " ")
		if segment != "" {
			r := []rune(segment)
			return strings.ToUpper(string(r[0])) + string(r[1:])
		}
	}
	host := strings.TrimPrefix(parsed.Hostname(), "www.")
	if host == "" {
		return "Untitled recipe"
	}
	return host
}
