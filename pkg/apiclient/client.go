// Package apiclient - типизированный HTTP-клиент админ-панели коворкинга.
// Ошибки сервера приходят конвертом {"kind","detail"} и разворачиваются
// в *apperrors.Error, так что вызывающий код может проверять их через errors.As.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"coworkadmin/internal/apperrors"
)

// Client ходит в REST API админ-панели
type Client struct {
	baseURL string
	httpc   *http.Client
}

// Option настраивает клиент при создании
type Option func(*Client)

// WithHTTPClient подменяет транспорт (таймауты, прокси, тесты)
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpc = hc }
}

// New создаёт клиент для API по адресу baseURL
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do выполняет запрос и декодирует ответ или конверт ошибки.
// in == nil - без тела, out == nil - тело ответа не интересует.
func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return apperrors.Wrap(err, apperrors.KindUnavailable, "сервер недоступен")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeErrorEnvelope(resp)
	}
	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// doRaw выполняет запрос и отдаёт тело ответа как есть (CSV, конфиги).
// Закрыть ReadCloser обязан вызывающий.
func (c *Client) doRaw(ctx context.Context, method, path string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindUnavailable, "сервер недоступен")
	}
	if resp.StatusCode >= 400 {
		defer resp.Body.Close()
		return nil, decodeErrorEnvelope(resp)
	}
	return resp.Body, nil
}

// postMultipart отправляет один файл multipart-формой и декодирует ответ
func (c *Client) postMultipart(ctx context.Context, path, field, filename string, file io.Reader, out interface{}) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	if err != nil {
		return fmt.Errorf("build multipart form: %w", err)
	}
	if _, err := io.Copy(fw, file); err != nil {
		return fmt.Errorf("read upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("finish multipart form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpc.Do(req)
	if err != nil {
		return apperrors.Wrap(err, apperrors.KindUnavailable, "сервер недоступен")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeErrorEnvelope(resp)
	}
	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// decodeErrorEnvelope разворачивает конверт {"kind","detail"} в *apperrors.Error.
// Если тело не конверт, kind выводится из HTTP-статуса.
func decodeErrorEnvelope(resp *http.Response) error {
	var e apperrors.Error
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&e); err == nil && e.Kind != "" {
		return &e
	}
	return &apperrors.Error{
		Kind:   kindFromStatus(resp.StatusCode),
		Detail: fmt.Sprintf("сервер ответил статусом %d", resp.StatusCode),
	}
}

func kindFromStatus(status int) apperrors.Kind {
	switch status {
	case http.StatusNotFound:
		return apperrors.KindNotFound
	case http.StatusBadRequest:
		return apperrors.KindValidation
	case http.StatusConflict:
		return apperrors.KindConflict
	case http.StatusServiceUnavailable:
		return apperrors.KindUnavailable
	default:
		return apperrors.KindUnknown
	}
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, in, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, in, out)
}

func (c *Client) put(ctx context.Context, path string, in, out interface{}) error {
	return c.do(ctx, http.MethodPut, path, in, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}
