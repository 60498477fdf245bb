package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/jhoicas/estoque-cliente/internal/domain"
	"github.com/jhoicas/estoque-cliente/pkg/logger"
)

const (
	maxBodyBytes   = 1 << 20
	maxDetailChars = 300
	headerRequest  = "X-Request-ID"
)

// Options configuración común de los clientes REST.
type Options struct {
	BaseURL   string
	Timeout   time.Duration
	RateLimit float64 // peticiones por segundo; 0 = sin límite
	RateBurst int
	UserAgent string
	// HTTPClient opcional (tests); si es nil se crea uno con Timeout.
	HTTPClient *http.Client
	Logger     *logger.Logger
}

// transport envía peticiones sin lógica de sesión. Lo comparten el cliente autenticado
// (peticiones, refresh) y el login.
type transport struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	userAgent  string
	log        *logger.Logger
}

func newTransport(opts Options) *transport {
	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		hc = &http.Client{Timeout: timeout}
	}
	var limiter *rate.Limiter
	if opts.RateLimit > 0 {
		burst := opts.RateBurst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	ua := opts.UserAgent
	if ua == "" {
		ua = "estoque-cliente"
	}
	return &transport{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		httpClient: hc,
		limiter:    limiter,
		userAgent:  ua,
		log:        log.Named("apiclient"),
	}
}

// response status y cuerpo ya leído.
type response struct {
	status int
	body   []byte
}

func (r response) ok() bool { return r.status >= 200 && r.status < 300 }

// send ejecuta una petición. body se pasa como bytes para poder reenviarla idéntica.
// bearer vacío = sin cabecera Authorization.
func (t *transport) send(ctx context.Context, method, path string, body []byte, bearer string) (response, error) {
	if t.limiter != nil {
		if err := t.limiter.Wait(ctx); err != nil {
			return response{}, fmt.Errorf("apiclient: %s %s: %w", method, path, err)
		}
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, t.baseURL+path, reader)
	if err != nil {
		return response{}, fmt.Errorf("apiclient: crear HTTP request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", t.userAgent)
	req.Header.Set(headerRequest, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	start := time.Now()
	resp, err := t.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return response{}, fmt.Errorf("apiclient: %s %s: timeout o cancelación: %w", method, path, ctx.Err())
		}
		t.log.Debug().Err(err).Str("method", method).Str("path", path).Str("request_id", requestID).Msg("sin respuesta")
		return response{}, fmt.Errorf("%w: %s %s: %w", domain.ErrNetwork, method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return response{}, fmt.Errorf("%w: leer respuesta de %s %s: %w", domain.ErrNetwork, method, path, err)
	}

	t.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Str("request_id", requestID).
		Dur("elapsed", time.Since(start)).
		Msg("petición")

	return response{status: resp.StatusCode, body: raw}, nil
}

// encodeBody serializa in (nil = sin cuerpo).
func encodeBody(in any) ([]byte, error) {
	if in == nil {
		return nil, nil
	}
	b, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("apiclient: serializar request: %w", err)
	}
	return b, nil
}

// decodeBody deserializa el cuerpo de una respuesta 2xx en out.
func decodeBody(r response, out any) error {
	if out == nil || len(bytes.TrimSpace(r.body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.body, out); err != nil {
		return fmt.Errorf("apiclient: respuesta inválida: %w", err)
	}
	return nil
}

// apiError construye el error de una respuesta no 2xx extrayendo un mensaje legible:
// "detail" (string u objeto con detail), o el primer error de campo, o el texto crudo.
func apiError(r response) *domain.APIError {
	return &domain.APIError{Status: r.status, Detail: extractDetail(r.body), Body: r.body}
}

func extractDetail(body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return ""
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &m); err != nil {
		return truncate(string(trimmed))
	}
	if raw, ok := m["detail"]; ok {
		if s := messageFrom(raw); s != "" {
			return s
		}
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if s := messageFrom(m[k]); s != "" {
			if k == "detail" || k == "non_field_errors" {
				return s
			}
			return k + ": " + s
		}
	}
	return truncate(string(trimmed))
}

// messageFrom acepta "texto", ["texto", ...] o {"detail": ...}.
func messageFrom(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil && len(list) > 0 {
		return list[0]
	}
	var nested map[string]json.RawMessage
	if err := json.Unmarshal(raw, &nested); err == nil {
		if d, ok := nested["detail"]; ok {
			return messageFrom(d)
		}
	}
	return ""
}

func truncate(s string) string {
	if len([]rune(s)) <= maxDetailChars {
		return s
	}
	return string([]rune(s)[:maxDetailChars]) + "…"
}
