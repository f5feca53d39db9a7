package clinicapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"clinic-admin/internal/monitoring"
)

// ErrNetwork indica que la petición no pudo enviarse o su respuesta no pudo leerse.
var ErrNetwork = errors.New("clinic api unreachable")

// APIError es una respuesta no 2xx de la API. Message es el texto del servidor tal cual.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// IsStatus indica si err es un APIError con el status dado.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// Client habla con la API REST de la clínica. Cada llamada autorizada recibe
// el bearer token explícitamente; el cliente no guarda estado de sesión.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewClient construye un cliente apuntando a baseURL.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = "http://localhost:5000"
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

type request struct {
	method   string
	path     string
	endpoint string
	query    url.Values
	token    string
	body     any
}

func (c *Client) do(ctx context.Context, r request, out any) error {
	var body io.Reader
	if r.body != nil {
		payload, err := json.Marshal(r.body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	target := c.baseURL + r.path
	if len(r.query) > 0 {
		target += "?" + r.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, r.method, target, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		monitoring.ObserveUpstream(r.method, r.endpoint, "error", time.Since(start))
		c.logger.Warn("clinic api request failed",
			zap.String("method", r.method),
			zap.String("endpoint", r.endpoint),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()
	monitoring.ObserveUpstream(r.method, r.endpoint, strconv.Itoa(resp.StatusCode), time.Since(start))

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %v", ErrNetwork, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Info("clinic api rejected request",
			zap.String("method", r.method),
			zap.String("endpoint", r.endpoint),
			zap.Int("status", resp.StatusCode),
		)
		return &APIError{Status: resp.StatusCode, Message: errorMessage(resp.StatusCode, respBody)}
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decode %s response: %w", r.endpoint, err)
	}
	return nil
}

// errorMessage extrae el mensaje del servidor: el campo message/error si el
// cuerpo es JSON, el texto plano en otro caso.
func errorMessage(status int, body []byte) string {
	text := strings.TrimSpace(string(body))
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	if text == "" {
		return fmt.Sprintf("status %d", status)
	}
	return text
}

func idPath(prefix string, id int64) string {
	return prefix + "/" + strconv.FormatInt(id, 10)
}
