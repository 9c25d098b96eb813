package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// SMSClient talks to the Twilio-style SMS gateway. One instance is shared by
// all callers; it holds no per-send state.
type SMSClient struct {
	url        string
	accountSID string
	authToken  string
	from       string
	client     *http.Client
}

func NewSMSClient(url, accountSID, authToken, from string) *SMSClient {
	return &SMSClient{
		url:        url,
		accountSID: accountSID,
		authToken:  authToken,
		from:       from,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type sendRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
	Body string `json:"body"`
}

type sendResponse struct {
	MessageID string `json:"messageId"`
	Status    string `json:"status"`
}

// Send delivers one message and returns the gateway-assigned delivery id and
// the delivery status reported at send time.
func (c *SMSClient) Send(ctx context.Context, to, body string) (messageID, status string, err error) {
	reqBody, err := json.Marshal(sendRequest{
		From: c.from,
		To:   to,
		Body: body,
	})
	if err != nil {
		return "", "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(reqBody))
	if err != nil {
		return "", "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.accountSID, c.authToken)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", "", fmt.Errorf("unexpected status code: %d body=%q", resp.StatusCode, string(respBody))
	}

	var sr sendResponse
	if err := json.Unmarshal(respBody, &sr); err != nil {
		return "", "", fmt.Errorf("failed to decode json: %w body=%q", err, string(respBody))
	}
	if sr.MessageID == "" {
		return "", "", fmt.Errorf("missing messageId in response body=%q", string(respBody))
	}
	if sr.Status == "" {
		sr.Status = "queued"
	}

	return sr.MessageID, sr.Status, nil
}
