// Package paymentprovider - клиент размещённой страницы оплаты
// (checkout sessions) платёжного провайдера.
package paymentprovider

import (
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
)

const sessionsPath = "/v1/checkout/sessions"

// Metadata keys, которые возвращаются в событии завершения оплаты.
const (
	MetadataUserID    = "korisnikId"
	MetadataCourseIDs = "kursIds"
)

var ErrEmptyCart = errors.New("checkout session without items")

type Client struct {
	apiKey     string
	apiURL     string
	currency   string
	successURL string
	cancelURL  string
	httpClient *http.Client
}

// Options параметры клиента.
type Options struct {
	APIURL     string
	APIKey     string
	Currency   string
	SuccessURL string
	CancelURL  string
	Timeout    time.Duration
}

// NewClient создаёт новый клиент провайдера.
func NewClient(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	currency := strings.ToLower(opts.Currency)
	if currency == "" {
		currency = "eur"
	}
	return &Client{
		apiKey:     opts.APIKey,
		apiURL:     strings.TrimRight(opts.APIURL, "/"),
		currency:   currency,
		successURL: opts.SuccessURL,
		cancelURL:  opts.CancelURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) newRequest(ctx context.Context, method, path string, form url.Values) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.apiURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req, nil
}

func (c *Client) sessionForm(params SessionRequest) (url.Values, error) {
	courseIDs, err := json.Marshal(params.CourseIDs)
	if err != nil {
		return nil, err
	}

	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("payment_method_types[0]", "card")
	form.Set("success_url", c.successURL)
	form.Set("cancel_url", c.cancelURL)
	form.Set("metadata["+MetadataUserID+"]", params.UserID)
	form.Set("metadata["+MetadataCourseIDs+"]", string(courseIDs))

	for i, item := range params.Items {
		prefix := "line_items[" + strconv.Itoa(i) + "]"
		form.Set(prefix+"[quantity]", "1")
		form.Set(prefix+"[price_data][currency]", c.currency)
		form.Set(prefix+"[price_data][unit_amount]", strconv.FormatInt(item.UnitAmount, 10))
		form.Set(prefix+"[price_data][product_data][name]", item.Name)
		if item.Image != "" {
			form.Set(prefix+"[price_data][product_data][images][0]", item.Image)
		}
	}
	return form, nil
}

// CreateCheckoutSession создаёт сессию оплаты и возвращает адрес страницы оплаты.
func (c *Client) CreateCheckoutSession(ctx context.Context, params SessionRequest) (*Session, error) {
	const op = "paymentprovider.CreateCheckoutSession"
	if len(params.Items) == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrEmptyCart)
	}

	form, err := c.sessionForm(params)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req, err := c.newRequest(ctx, http.MethodPost, sessionsPath, form)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		var perr providerError
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		if json.Unmarshal(body, &perr) == nil && perr.Error.Message != "" {
			return nil, fmt.Errorf("%s: unexpected status %s: %s", op, resp.Status, perr.Error.Message)
		}
		return nil, fmt.Errorf("%s: unexpected status %s", op, resp.Status)
	}

	var session Session
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if session.URL == "" {
		return nil, fmt.Errorf("%s: provider returned session without url", op)
	}
	return &session, nil
}
