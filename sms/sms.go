package sms

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Sender delivers a one-time code to a phone number. Delivery is
// fire-and-forget relative to OTP persistence: the caller stores the code
// before asking for delivery.
type Sender interface {
	Send(phone, code string) error
}

// Fast2SMS sends codes through the Fast2SMS OTP route.
type Fast2SMS struct {
	BaseURL       string
	Authorization string
	Client        *http.Client
}

func NewFast2SMS(baseURL, authorization string) *Fast2SMS {
	return &Fast2SMS{
		BaseURL:       baseURL,
		Authorization: authorization,
		Client:        &http.Client{Timeout: 10 * time.Second},
	}
}

func (f *Fast2SMS) Send(phone, code string) error {
	u, err := url.Parse(f.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid gateway URL: %w", err)
	}

	q := u.Query()
	q.Set("authorization", f.Authorization)
	q.Set("route", "otp")
	q.Set("variables_values", code)
	q.Set("flash", "0")
	q.Set("numbers", phone)
	u.RawQuery = q.Encode()

	resp, err := f.Client.Get(u.String())
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("sms gateway returned %s", resp.Status)
	}

	var body struct {
		Return  bool            `json:"return"`
		Message json.RawMessage `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("unreadable gateway response: %w", err)
	}
	if !body.Return {
		return fmt.Errorf("sms gateway rejected delivery: %s", body.Message)
	}
	return nil
}
