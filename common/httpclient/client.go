package httpclient

import (
	"context"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	jsoniter "github.com/json-iterator/go"
	log "github.com/sirupsen/logrus"
	"golang.org/x/net/http/httpguts"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Header is a fixed request header. Sensitive values are never logged.
type Header struct {
	Name      string
	Value     string
	Sensitive bool
}

func (h Header) String() string {
	if h.Sensitive {
		return h.Name + ": <redacted>"
	}
	return h.Name + ": " + h.Value
}

// Client issues requests with a set of headers fixed at construction.
type Client struct {
	client  *resty.Client
	headers []Header
}

type Option func(*resty.Client)

// WithTimeout bounds every request. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *resty.Client) {
		c.SetTimeout(d)
	}
}

func WithTransport(rt http.RoundTripper) Option {
	return func(c *resty.Client) {
		c.SetTransport(rt)
	}
}

// New returns a client without any extra headers.
func New(opts ...Option) *Client {
	c, _ := NewWithHeaders(nil, opts...)
	return c
}

// NewWithHeaders returns a client sending headers on every request. Names and
// values are checked up front so that bad credentials fail before any request.
func NewWithHeaders(headers []Header, opts ...Option) (*Client, error) {
	for _, h := range headers {
		if !httpguts.ValidHeaderFieldName(h.Name) {
			return nil, &HeaderError{Name: h.Name, Err: ErrInvalidHeaderName}
		}
		if !httpguts.ValidHeaderFieldValue(h.Value) {
			return nil, &HeaderError{Name: h.Name, Err: ErrInvalidHeaderValue}
		}
	}

	cli := resty.New()
	cli.SetLogger(log.WithField("module", "http"))
	for _, opt := range opts {
		opt(cli)
	}
	for _, h := range headers {
		cli.SetHeader(h.Name, h.Value)
	}

	return &Client{
		client:  cli,
		headers: append([]Header(nil), headers...),
	}, nil
}

// Headers returns a copy of the fixed headers.
func (c *Client) Headers() []Header {
	return append([]Header(nil), c.headers...)
}

func (c *Client) redactedHeaders() []string {
	out := make([]string, 0, len(c.headers))
	for _, h := range c.headers {
		out = append(out, h.String())
	}
	return out
}

// Response is a decoded 2xx response.
type Response[T any] struct {
	Status int
	Body   T
}

// Get issues a GET and decodes a 2xx JSON body into T.
func Get[T any](ctx context.Context, c *Client, url string) (*Response[T], error) {
	return do[T](ctx, c, http.MethodGet, url, nil)
}

// Put issues a PUT with a JSON body and decodes a 2xx JSON body into T.
func Put[T any](ctx context.Context, c *Client, url string, body []byte) (*Response[T], error) {
	return do[T](ctx, c, http.MethodPut, url, body)
}

func do[T any](ctx context.Context, c *Client, method string, url string, body []byte) (*Response[T], error) {
	req := c.client.R().SetContext(ctx)
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}

	log.WithFields(log.Fields{"method": method, "url": url, "headers": c.redactedHeaders()}).Debug("http request")
	resp, err := req.Execute(method, url)
	if err != nil {
		return nil, &TransportError{Method: method, URL: url, Err: err}
	}
	log.WithFields(log.Fields{"method": method, "url": url, "status": resp.StatusCode()}).Debug("http response")

	if !resp.IsSuccess() {
		return nil, &StatusCodeError{
			Method: method,
			URL:    url,
			Status: resp.StatusCode(),
			Body:   string(resp.Body()),
		}
	}

	rtn := &Response[T]{Status: resp.StatusCode()}
	if err := json.Unmarshal(resp.Body(), &rtn.Body); err != nil {
		return nil, &SerializationError{Err: err}
	}
	return rtn, nil
}

// Marshal encodes v as JSON, reporting failures as SerializationError.
func Marshal(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, &SerializationError{Err: err}
	}
	return b, nil
}
