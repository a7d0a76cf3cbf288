// Package availability is the boundary to the opaque booking
// subsystem. Reservations are created through it; this service never
// computes bookable slots itself.
package availability

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"seatly/internal/shared/config"
	"seatly/internal/shared/utils/apperr"
)

// Slot is one bookable window as reported by the subsystem
type Slot struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Capacity  int       `json:"capacity"`
}

// CreateReservationRequest is forwarded to the subsystem verbatim
type CreateReservationRequest struct {
	GuestName       string     `json:"guest_name"`
	Phone           string     `json:"phone,omitempty"`
	PartySize       int        `json:"party_size"`
	StartTime       time.Time  `json:"start_time"`
	DurationMinutes int        `json:"duration_minutes"`
	SeatPreferences [][]string `json:"seat_preferences,omitempty"`
	Notes           string     `json:"notes,omitempty"`
}

// CreateReservationResponse carries the subsystem-assigned identity
type CreateReservationResponse struct {
	ID        string    `json:"id"`
	StartTime time.Time `json:"start_time"`
}

type Client interface {
	Slots(ctx context.Context, date string, partySize int) ([]Slot, error)
	CreateReservation(ctx context.Context, req CreateReservationRequest) (*CreateReservationResponse, error)
}

type httpClient struct {
	baseURL string
	client  *http.Client
}

func NewHTTPClient(cfg config.AvailabilityConfig) Client {
	return &httpClient{
		baseURL: cfg.BaseURL,
		client:  &http.Client{Timeout: cfg.Timeout},
	}
}

func (c *httpClient) Slots(ctx context.Context, date string, partySize int) ([]Slot, error) {
	endpoint := fmt.Sprintf("%s/slots?date=%s&party_size=%s",
		c.baseURL, url.QueryEscape(date), strconv.Itoa(partySize))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, apperr.Transient("failed to build availability request", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, apperr.Transient("availability subsystem unreachable", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var slots []Slot
	if err := json.NewDecoder(resp.Body).Decode(&slots); err != nil {
		return nil, apperr.Transient("invalid availability response", err)
	}
	return slots, nil
}

func (c *httpClient) CreateReservation(ctx context.Context, createReq CreateReservationRequest) (*CreateReservationResponse, error) {
	body, err := json.Marshal(createReq)
	if err != nil {
		return nil, apperr.Transient("failed to encode reservation request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/reservations", bytes.NewReader(body))
	if err != nil {
		return nil, apperr.Transient("failed to build availability request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, apperr.Transient("availability subsystem unreachable", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var created CreateReservationResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, apperr.Transient("invalid availability response", err)
	}
	return &created, nil
}

// checkStatus maps subsystem HTTP failures onto the local error
// taxonomy: 4xx means the request was wrong, everything else is a
// transient upstream fault.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		return apperr.Validation("availability rejected the request: %s", string(detail))
	}
	return apperr.Transient(fmt.Sprintf("availability subsystem error (status %d)", resp.StatusCode), nil)
}
