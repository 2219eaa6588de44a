// Package remote is the HTTP client of the remote document store.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"currypoint/config"
	"currypoint/internal/domain/repository"

	"github.com/pkg/errors"
)

const maxErrorBody = 512

// Client implements repository.DocumentStore against {baseURL}/{database}.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a document store client for cfg.
func NewClient(cfg config.RemoteStorageConfig, logger *slog.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, errors.New("remote base URL is required")
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, errors.Wrapf(err, "parse remote base URL %q", cfg.BaseURL)
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		endpoint: strings.TrimRight(cfg.BaseURL, "/") + "/" + url.PathEscape(cfg.Database),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}, nil
}

// Endpoint is the database URL requests are sent to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Ping checks that the server and its backend answer.
func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodGet, "/ping", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return checkStatus(resp)
}

// List fetches the whole collection. A non-array body is treated as empty.
func (c *Client) List(ctx context.Context, collection repository.Collection) ([]json.RawMessage, error) {
	resp, err := c.do(ctx, http.MethodGet, "/"+collection.String(), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", collection)
	}

	var docs []json.RawMessage
	if err := json.Unmarshal(body, &docs); err != nil {
		c.logger.Warn("Remote returned a non-array collection",
			slog.String("collection", collection.String()),
		)

		return []json.RawMessage{}, nil
	}
	if docs == nil {
		docs = []json.RawMessage{}
	}

	return docs, nil
}

// ReplaceAll posts the whole collection.
func (c *Client) ReplaceAll(ctx context.Context, collection repository.Collection, docs []json.RawMessage) error {
	if docs == nil {
		docs = []json.RawMessage{}
	}

	body, err := json.Marshal(docs)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.send(ctx, http.MethodPost, "/"+collection.String(), body)
}

// Upsert puts one document under its id.
func (c *Client) Upsert(ctx context.Context, collection repository.Collection, id int, doc json.RawMessage) error {
	return c.send(ctx, http.MethodPut, "/"+collection.String()+"/"+strconv.Itoa(id), doc)
}

// Delete removes one document by id.
func (c *Client) Delete(ctx context.Context, collection repository.Collection, id int) error {
	resp, err := c.do(ctx, http.MethodDelete, "/"+collection.String()+"/"+strconv.Itoa(id), nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return errors.Wrapf(repository.ErrDocumentNotFound, "%s/%d", collection, id)
	}

	return checkStatus(resp)
}

func (c *Client) send(ctx context.Context, method, path string, body []byte) error {
	resp, err := c.do(ctx, method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return checkStatus(resp)
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, reader)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "%s %s", method, path)
	}

	return resp, nil
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)

		return nil
	}

	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	return errors.Errorf("remote returned non-success status %d for %s %s: %s",
		resp.StatusCode, resp.Request.Method, resp.Request.URL.Path, strings.TrimSpace(string(snippet)))
}
