// Package paymentprovider реализует REST-клиент внешнего платёжного провайдера:
// создание платёжной преференции и получение данных платежа по идентификатору.
package paymentprovider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"
)

// ErrExternalService возвращается, когда провайдер недоступен или отвечает ошибкой.
var ErrExternalService = errors.New("payment provider error")

// Client — HTTP-клиент платёжного провайдера.
type Client struct {
	accessToken string
	apiURL      string
	httpClient  *http.Client
}

// NewClient создаёт новый клиент с таймаутом исходящих запросов 10 секунд.
func NewClient(accessToken, apiURL string) *Client {
	return &Client{
		accessToken: accessToken,
		apiURL:      apiURL,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	url := c.apiURL + path
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, url, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func (c *Client) do(req *http.Request, result any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Join(ErrExternalService, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return errors.Join(ErrExternalService, errors.New("unexpected status: "+resp.Status))
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return errors.Join(ErrExternalService, err)
	}
	return nil
}

// CreatePreference отправляет запрос на создание платёжной преференции
// и возвращает её идентификатор и адрес чекаута.
func (c *Client) CreatePreference(ctx context.Context, reqParams CreatePreferenceRequest) (*CreatePreferenceResponse, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/checkout/preferences", reqParams)
	if err != nil {
		return nil, err
	}

	var preferenceResp CreatePreferenceResponse
	if err := c.do(req, &preferenceResp); err != nil {
		return nil, err
	}
	return &preferenceResp, nil
}

// GetPayment запрашивает данные платежа по его идентификатору.
func (c *Client) GetPayment(ctx context.Context, paymentID string) (*Payment, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/v1/payments/"+paymentID, nil)
	if err != nil {
		return nil, err
	}

	var payment Payment
	if err := c.do(req, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}
