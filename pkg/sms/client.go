// Package sms sends OTP messages through an HTTP SMS gateway.
package sms

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type ISMSClient interface {
	SendOTP(ctx context.Context, phone, code string) error
}

type Client struct {
	baseURL string
	apiKey  string
	sender  string
	client  *http.Client
}

func NewClient(baseURL, apiKey, sender string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		sender:  sender,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) SendOTP(ctx context.Context, phone, code string) error {
	params := url.Values{}
	params.Add("apikey", c.apiKey)
	params.Add("sender", c.sender)
	params.Add("numbers", phone)
	params.Add("message", fmt.Sprintf("Your verification code is %s. Valid for 5 minutes.", code))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/send", strings.NewReader(params.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("sms gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("sms gateway returned %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

// ConsoleClient logs codes instead of sending; used in dev when no
// gateway is configured.
type ConsoleClient struct{}

func (ConsoleClient) SendOTP(ctx context.Context, phone, code string) error {
	fmt.Printf(">>> [DEBUG OTP] OTP for %s is: %s <<<\n", phone, code)
	return nil
}
