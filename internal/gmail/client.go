// Package gmail is the mail transport capability: an oauth2-backed client
// over the Gmail REST API that yields alert email bodies as raw documents
// for the source parsers.
package gmail

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"hiretrack-backend/internal/sources"
)

const (
	defaultBaseURL = "https://gmail.googleapis.com/gmail/v1"
	readonlyScope  = "https://www.googleapis.com/auth/gmail.readonly"
	maxResults     = 50
)

// Queries per alert sender. The after: date is appended at fetch time.
var (
	CareerNetworkQueries = []string{
		"from:jobs-noreply@linkedin.com",
		"from:jobalerts-noreply@linkedin.com",
	}
	JobBoardQueries = []string{
		"from:noreply@indeed.com",
		"from:alert@indeed.com",
	}
)

// Client talks to the Gmail REST API over an authorized HTTP client.
type Client struct {
	HTTPClient *http.Client
	BaseURL    string
}

// New wraps an already-authorized HTTP client.
func New(httpClient *http.Client) *Client {
	return &Client{HTTPClient: httpClient, BaseURL: defaultBaseURL}
}

// NewFromFiles builds a Client from an OAuth client-secret file and a
// cached token file. The token must have been obtained beforehand (see
// AuthCodeURL/Exchange); refresh is handled transparently.
func NewFromFiles(ctx context.Context, credentialsPath, tokenPath string) (*Client, error) {
	config, err := configFromFile(credentialsPath)
	if err != nil {
		return nil, err
	}
	token, err := tokenFromFile(tokenPath)
	if err != nil {
		return nil, fmt.Errorf("load token %s: %w (run the authorization flow first)", tokenPath, err)
	}
	return New(oauth2.NewClient(ctx, config.TokenSource(ctx, token))), nil
}

func configFromFile(path string) (*oauth2.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read credentials %s: %w", path, err)
	}
	config, err := google.ConfigFromJSON(data, readonlyScope)
	if err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}
	return config, nil
}

func tokenFromFile(path string) (*oauth2.Token, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, err
	}
	return &token, nil
}

// AuthCodeURL returns the consent URL for the one-time authorization flow.
func AuthCodeURL(credentialsPath string) (string, error) {
	config, err := configFromFile(credentialsPath)
	if err != nil {
		return "", err
	}
	return config.AuthCodeURL("state-token", oauth2.AccessTypeOffline), nil
}

// Exchange redeems an authorization code and caches the token at tokenPath.
func Exchange(ctx context.Context, credentialsPath, tokenPath, code string) error {
	config, err := configFromFile(credentialsPath)
	if err != nil {
		return err
	}
	token, err := config.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("exchange code: %w", err)
	}
	data, err := json.Marshal(token)
	if err != nil {
		return err
	}
	return os.WriteFile(tokenPath, data, 0o600)
}

type messageRef struct {
	ID string `json:"id"`
}

type messageList struct {
	Messages []messageRef `json:"messages"`
}

type messageBody struct {
	Data string `json:"data"`
}

type messagePayload struct {
	MimeType string           `json:"mimeType"`
	Body     messageBody      `json:"body"`
	Parts    []messagePayload `json:"parts"`
}

type message struct {
	InternalDate string         `json:"internalDate"`
	Payload      messagePayload `json:"payload"`
}

// Search returns the decoded bodies of messages matching the query, newest
// first as the API returns them, each stamped with the message's internal
// date.
func (c *Client) Search(ctx context.Context, query string) ([]sources.Document, error) {
	listURL := fmt.Sprintf("%s/users/me/messages?q=%s&maxResults=%d", c.BaseURL, url.QueryEscape(query), maxResults)
	var list messageList
	if err := c.getJSON(ctx, listURL, &list); err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	var docs []sources.Document
	for _, ref := range list.Messages {
		var msg message
		msgURL := fmt.Sprintf("%s/users/me/messages/%s?format=full", c.BaseURL, url.PathEscape(ref.ID))
		if err := c.getJSON(ctx, msgURL, &msg); err != nil {
			return nil, fmt.Errorf("get message %s: %w", ref.ID, err)
		}
		body := extractBody(msg.Payload)
		if body == "" {
			continue
		}
		docs = append(docs, sources.Document{
			Body:     body,
			Observed: internalDate(msg.InternalDate),
		})
	}
	return docs, nil
}

func (c *Client) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("gmail api status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// extractBody walks a MIME payload and returns the first HTML body it
// finds, falling back to the top-level body data.
func extractBody(payload messagePayload) string {
	if payload.Body.Data != "" {
		return decodeBody(payload.Body.Data)
	}
	for _, part := range payload.Parts {
		if part.MimeType == "text/html" && part.Body.Data != "" {
			return decodeBody(part.Body.Data)
		}
	}
	for _, part := range payload.Parts {
		if len(part.Parts) > 0 {
			if body := extractBody(part); body != "" {
				return body
			}
		}
	}
	return ""
}

func decodeBody(data string) string {
	decoded, err := base64.RawURLEncoding.DecodeString(trimPadding(data))
	if err != nil {
		return ""
	}
	return string(decoded)
}

func trimPadding(data string) string {
	for len(data) > 0 && data[len(data)-1] == '=' {
		data = data[:len(data)-1]
	}
	return data
}

func internalDate(raw string) time.Time {
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || ms <= 0 {
		return time.Now().UTC()
	}
	return time.UnixMilli(ms).UTC()
}
