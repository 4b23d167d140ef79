package chaletservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/m04kA/SMC-ChaletBookingService/internal/domain"
)

// Client клиент каталога шале (Chalet Directory)
// Используется только для подсказки депозита и отображения, доступность считается без него
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента каталога шале
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetChalet получает шале по ID
func (c *Client) GetChalet(ctx context.Context, chaletID int64) (*domain.Chalet, error) {
	url := fmt.Sprintf("%s/internal/chalets/%d", c.baseURL, chaletID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid chalet ID format", ErrInvalidResponse)
	case http.StatusNotFound:
		return nil, ErrChaletNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var chalet Chalet
	if err := json.NewDecoder(resp.Body).Decode(&chalet); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return chalet.ToDomain(), nil
}

// GetChaletWithGracefulDegradation получает шале с graceful degradation
// ErrChaletNotFound пробрасывается как есть, любая другая ошибка превращается в ErrServiceDegraded
func (c *Client) GetChaletWithGracefulDegradation(ctx context.Context, chaletID int64) (*domain.Chalet, error) {
	chalet, err := c.GetChalet(ctx, chaletID)
	if err != nil {
		if errors.Is(err, ErrChaletNotFound) {
			c.log.Warn("Chalet id=%d not found in directory", chaletID)
			return nil, err
		}

		c.log.Error("Chalet directory unavailable, applying graceful degradation for chalet_id=%d: %v", chaletID, err)
		return nil, fmt.Errorf("%w: chalet_id=%d, error=%v", ErrServiceDegraded, chaletID, err)
	}

	c.log.Info("Fetched chalet id=%d, nightly_price=%.2f", chalet.ID, chalet.NightlyPrice)
	return chalet, nil
}
