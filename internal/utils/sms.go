package utils

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
)

// SMSClient sends payment-reminder texts through a Mobizon-style HTTP
// gateway. With DryRun (or an empty key) it only logs.
type SMSClient struct {
	APIKey string
	APIURL string
	Sender string
	DryRun bool
}

type sendSMSResponse struct {
	Code int `json:"code"`
	Data struct {
		MessageID string `json:"messageId"`
	} `json:"data"`
}

func NewSMSClient(apiKey, apiURL, sender string, dryRun bool) *SMSClient {
	if apiURL == "" {
		apiURL = "https://api.mobizon.kz/service/message/sendsmsmessage"
	}
	return &SMSClient{APIKey: apiKey, APIURL: apiURL, Sender: sender, DryRun: dryRun}
}

func (c *SMSClient) Send(to, text string) error {
	if c.DryRun || c.APIKey == "" {
		log.Printf("[sms][dry-run] to=%s text=%q", to, text)
		return nil
	}

	form := url.Values{
		"apiKey":    {c.APIKey},
		"recipient": {to},
		"text":      {text},
	}
	if c.Sender != "" {
		form.Set("from", c.Sender)
	}

	resp, err := http.PostForm(c.APIURL, form)
	if err != nil {
		return fmt.Errorf("send SMS request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	var result sendSMSResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("parse SMS response: %w", err)
	}
	if result.Code != 0 {
		return fmt.Errorf("sms gateway returned error code: %d", result.Code)
	}
	return nil
}
