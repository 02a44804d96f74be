package e2etest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	neturl "net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/myrjola/spermcourt/internal/errors"
)

// Client plays the game over HTTP like a browser with a cookie jar would.
type Client struct {
	client *http.Client
	url    string
}

// NewClient creates an HTTP client for the server at url.
func NewClient(url string) (*Client, error) {
	jar, err := newUnsafeCookieJar()
	if err != nil {
		return nil, errors.Wrap(err, "create unsafe cookie jar")
	}
	return &Client{
		client: &http.Client{Jar: jar},
		url:    url,
	}, nil
}

// URL returns the base URL of the server.
func (c *Client) URL() string {
	return c.url
}

// HTTPClient returns the underlying client sharing the cookie jar, e.g. for streaming requests.
func (c *Client) HTTPClient() *http.Client {
	return c.client
}

// WaitForReady calls the specified endpoint until it gets a HTTP 200 Success
// response or until the context is cancelled or the 1-second timeout is reached.
func (c *Client) WaitForReady(ctx context.Context, urlPath string) error {
	timeout := 1 * time.Second
	startTime := time.Now()
	for {
		resp, err := c.Get(ctx, urlPath)
		if err == nil {
			status := resp.StatusCode
			if err = resp.Body.Close(); err != nil {
				return errors.Wrap(err, "close response body")
			}
			if status == http.StatusOK {
				return nil
			}
		}
		select {
		case <-ctx.Done():
			return errors.Wrap(ctx.Err(), "context cancelled")
		default:
			if time.Since(startTime) >= timeout {
				return errors.New("timeout waiting for endpoint to be ready")
			}
			time.Sleep(100 * time.Millisecond) //nolint:mnd // 100ms
		}
	}
}

// Get fetches a URL and returns the response.
func (c *Client) Get(ctx context.Context, urlPath string) (*http.Response, error) {
	req, err := c.newRequestWithContext(ctx, http.MethodGet, urlPath, nil)
	if err != nil {
		return nil, errors.Wrap(err, "create request with context")
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "do request")
	}
	return resp, nil
}

// GetDoc fetches a URL and returns a goquery document.
func (c *Client) GetDoc(ctx context.Context, urlPath string) (*goquery.Document, error) {
	resp, err := c.Get(ctx, urlPath)
	if err != nil {
		return nil, errors.Wrap(err, "client get")
	}
	return documentFromResponse(resp)
}

// GetJSON fetches a URL and decodes the JSON response into v.
func (c *Client) GetJSON(ctx context.Context, urlPath string, v any) error {
	resp, err := c.Get(ctx, urlPath)
	if err != nil {
		return errors.Wrap(err, "client get")
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if http.StatusOK != resp.StatusCode {
		return errors.New("unexpected status code", slog.Int("status", resp.StatusCode))
	}
	if err = json.NewDecoder(resp.Body).Decode(v); err != nil {
		return errors.Wrap(err, "decode JSON", slog.String("path", urlPath))
	}
	return nil
}

// SubmitForm finds the form with action formActionURLPath on the page at formURLPath, submits it with its hidden
// inputs and the extra values, and returns the document the browser ends up on after redirects.
func (c *Client) SubmitForm(
	ctx context.Context,
	formURLPath string,
	formActionURLPath string,
	values neturl.Values,
) (*goquery.Document, error) {
	resp, err := c.submit(ctx, formURLPath, formActionURLPath, values, false)
	if err != nil {
		return nil, err
	}
	return documentFromResponse(resp)
}

// SubmitFormHTMX is like SubmitForm but submits as htmx does, so the response is the re-rendered fragment.
func (c *Client) SubmitFormHTMX(
	ctx context.Context,
	formURLPath string,
	formActionURLPath string,
	values neturl.Values,
) (*goquery.Document, error) {
	resp, err := c.submit(ctx, formURLPath, formActionURLPath, values, true)
	if err != nil {
		return nil, err
	}
	return documentFromResponse(resp)
}

func (c *Client) submit(
	ctx context.Context,
	formURLPath string,
	formActionURLPath string,
	values neturl.Values,
	htmx bool,
) (*http.Response, error) {
	doc, err := c.GetDoc(ctx, formURLPath)
	if err != nil {
		return nil, errors.Wrap(err, "get document")
	}

	form, err := findForm(doc, formActionURLPath)
	if err != nil {
		return nil, errors.Wrap(err, "find form")
	}

	formData := neturl.Values{}
	form.Find("input[type=hidden]").Each(func(_ int, input *goquery.Selection) {
		name, _ := input.Attr("name")
		value, _ := input.Attr("value")
		if name != "" {
			formData.Set(name, value)
		}
	})
	if _, ok := formData["csrf_token"]; !ok {
		return nil, errors.New("csrf_token not found in form", slog.String("action", formActionURLPath))
	}
	for key, vs := range values {
		formData[key] = vs
	}

	req, err := c.newRequestWithContext(ctx, http.MethodPost, formActionURLPath, strings.NewReader(formData.Encode()))
	if err != nil {
		return nil, errors.Wrap(err, "new request with context")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "do request")
	}
	return resp, nil
}

// findForm returns the first form posting to action.
func findForm(doc *goquery.Document, action string) (*goquery.Selection, error) {
	form := doc.Find(fmt.Sprintf("form[action='%s']", action)).First()
	if form.Length() == 0 {
		return nil, errors.New("form not found", slog.String("action", action))
	}
	return form, nil
}

func documentFromResponse(resp *http.Response) (*goquery.Document, error) {
	defer func() {
		_ = resp.Body.Close()
	}()
	if http.StatusOK != resp.StatusCode {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512)) //nolint:mnd // enough for an error message
		return nil, errors.New("unexpected status code",
			slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
	}
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "create document from reader")
	}
	return doc, nil
}

// newRequestWithContext creates a new HTTP request to the server that respects the given context.
func (c *Client) newRequestWithContext(
	ctx context.Context,
	method, urlPath string,
	body io.Reader,
) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.url+urlPath, body)
	if err != nil {
		return nil, errors.Wrap(err, "create request")
	}
	return req, nil
}
