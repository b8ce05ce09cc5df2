package calendar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Client HTTP клиент внешнего календаря
type Client struct {
	baseURL    string
	apiKey     string
	calendarID string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента календаря.
// timeout ограничивает каждый вызов целиком, включая чтение ответа.
func NewClient(baseURL, apiKey, calendarID string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		calendarID: calendarID,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		log: log,
	}
}

// CheckAvailability проверяет, свободен ли интервал [start, end) во внешнем календаре
func (c *Client) CheckAvailability(ctx context.Context, start, end time.Time) (bool, error) {
	body := availabilityRequest{
		Start: start.Format(time.RFC3339),
		End:   end.Format(time.RFC3339),
	}

	resp, err := c.do(ctx, http.MethodPost, c.calendarPath("availability"), body)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, unexpectedStatus(resp)
	}

	var result availabilityResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return false, fmt.Errorf("%w: failed to decode availability: %v", ErrInvalidResponse, err)
	}
	if result.Available == nil {
		return false, fmt.Errorf("%w: availability flag is missing", ErrInvalidResponse)
	}

	return *result.Available, nil
}

// CreateEvent создает событие и возвращает его идентификатор во внешнем календаре
func (c *Client) CreateEvent(ctx context.Context, meta EventMeta) (string, error) {
	body := eventInsertRequest{
		Summary:     meta.Title,
		Description: fmt.Sprintf("Project #%d", meta.ProjectNumber),
		Location:    meta.Address,
		Start:       eventDateTime{DateTime: meta.Start.Format(time.RFC3339)},
		End:         eventDateTime{DateTime: meta.End.Format(time.RFC3339)},
		Metadata: map[string]string{
			"project_id":     strconv.FormatInt(meta.ProjectID, 10),
			"project_number": strconv.FormatInt(meta.ProjectNumber, 10),
			"client_id":      strconv.FormatInt(meta.ClientID, 10),
		},
	}

	resp, err := c.do(ctx, http.MethodPost, c.calendarPath("events"), body)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", unexpectedStatus(resp)
	}

	var event eventResponse
	if err := json.NewDecoder(resp.Body).Decode(&event); err != nil {
		return "", fmt.Errorf("%w: failed to decode event: %v", ErrInvalidResponse, err)
	}
	if event.ID == "" {
		return "", fmt.Errorf("%w: event id is empty", ErrInvalidResponse)
	}

	c.log.Info("Calendar event created: event_id=%s, project_id=%d", event.ID, meta.ProjectID)
	return event.ID, nil
}

// DeleteEvent удаляет событие из внешнего календаря.
// Уже удаленное событие (404, 410) считается успешно удаленным.
func (c *Client) DeleteEvent(ctx context.Context, eventID string) error {
	resp, err := c.do(ctx, http.MethodDelete, c.calendarPath("events", eventID), nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent:
		c.log.Info("Calendar event deleted: event_id=%s", eventID)
		return nil
	case http.StatusNotFound, http.StatusGone:
		c.log.Info("Calendar event already gone: event_id=%s", eventID)
		return nil
	default:
		return unexpectedStatus(resp)
	}
}

func (c *Client) calendarPath(parts ...string) string {
	escaped := make([]string, 0, len(parts)+2)
	escaped = append(escaped, "calendars", url.PathEscape(c.calendarID))
	for _, p := range parts {
		escaped = append(escaped, url.PathEscape(p))
	}
	return c.baseURL + "/" + strings.Join(escaped, "/")
}

func (c *Client) do(ctx context.Context, method, endpoint string, payload interface{}) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}

	return resp, nil
}

func unexpectedStatus(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return fmt.Errorf("%w: status %d", ErrUnauthorized, resp.StatusCode)
	}
	return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
}
