package cloud

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Tully9/CernAtlasSBOM/common"
	"github.com/Tully9/CernAtlasSBOM/set"
)

type internalClient struct {
	endpoint string
	client   *http.Client
	tracing  bool
	critical bool
}

type Request struct {
	Url     string
	Headers map[string]string
	Stream  io.Writer
}

type Response struct {
	Status  int
	Err     error
	Body    []byte
	Elapsed common.Duration
}

type Client interface {
	Endpoint() string
	NewRequest(string) *Request
	Head(request *Request) *Response
	Get(request *Request) *Response
	WithTimeout(time.Duration) Client
	WithTracing() Client
	Uncritical() Client
}

func EnsureHttps(endpoint string) (string, error) {
	nice := strings.TrimRight(strings.TrimSpace(endpoint), "/")
	parsed, err := url.Parse(nice)
	if err != nil {
		return "", err
	}
	if parsed.Host == "127.0.0.1" || strings.HasPrefix(parsed.Host, "127.0.0.1:") {
		return nice, nil
	}
	if parsed.Scheme != "https" {
		return "", fmt.Errorf("Endpoint '%s' must start with https:// prefix.", nice)
	}
	return nice, nil
}

func NewClient(endpoint string) (Client, error) {
	https, err := EnsureHttps(endpoint)
	if err != nil {
		return nil, err
	}
	return &internalClient{
		endpoint: https,
		client:   &http.Client{},
		tracing:  false,
		critical: true,
	}, nil
}

// NewUnsafeClient skips the https requirement; test servers only.
func NewUnsafeClient(endpoint string) (Client, error) {
	return &internalClient{
		endpoint: strings.TrimRight(endpoint, "/"),
		client:   &http.Client{},
		tracing:  false,
		critical: true,
	}, nil
}

func (it *internalClient) Uncritical() Client {
	it.critical = false
	return it
}

func (it *internalClient) WithTimeout(timeout time.Duration) Client {
	return &internalClient{
		endpoint: it.endpoint,
		client: &http.Client{
			Timeout: timeout,
		},
		tracing:  it.tracing,
		critical: it.critical,
	}
}

func (it *internalClient) WithTracing() Client {
	return &internalClient{
		endpoint: it.endpoint,
		client:   it.client,
		tracing:  true,
		critical: it.critical,
	}
}

func (it *internalClient) Endpoint() string {
	return it.endpoint
}

func (it *internalClient) does(method string, request *Request) *Response {
	stopwatch := common.Stopwatch("stopwatch")
	response := new(Response)
	url := it.Endpoint() + request.Url
	common.Trace("Doing %s %s", method, url)
	defer func() {
		response.Elapsed = stopwatch.Elapsed()
		common.Trace("%s %s took %s", method, url, response.Elapsed)
	}()
	httpRequest, err := http.NewRequest(method, url, nil)
	if err != nil {
		response.Status = 9001
		response.Err = err
		return response
	}
	httpRequest.Header.Add("User-Agent", common.UserAgent())
	for name, value := range request.Headers {
		httpRequest.Header.Add(name, value)
	}
	httpResponse, err := it.client.Do(httpRequest)
	if err != nil {
		if it.critical {
			common.Error("http.Do", err)
		} else {
			common.Uncritical("http.Do", err)
		}
		response.Status = 9002
		response.Err = err
		return response
	}
	defer httpResponse.Body.Close()
	if it.tracing {
		common.Trace("Response %d headers:", httpResponse.StatusCode)
		for _, key := range set.Keys(httpResponse.Header) {
			common.Trace("> %s: %q", key, httpResponse.Header[key])
		}
	}
	response.Status = httpResponse.StatusCode
	if request.Stream != nil {
		io.Copy(request.Stream, httpResponse.Body)
	} else {
		response.Body, response.Err = io.ReadAll(httpResponse.Body)
	}
	return response
}

func (it *internalClient) NewRequest(url string) *Request {
	return &Request{
		Url:     url,
		Headers: make(map[string]string),
	}
}

func (it *internalClient) Head(request *Request) *Response {
	return it.does("HEAD", request)
}

func (it *internalClient) Get(request *Request) *Response {
	return it.does("GET", request)
}
