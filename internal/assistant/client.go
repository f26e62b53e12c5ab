package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// ErrNoQuestion is returned by Ask for a blank question.
var ErrNoQuestion = errors.New("no question provided")

// Client talks to the document Q&A back-end, which extracts PDF text and
// answers questions over the documents it has indexed.
type Client struct {
	client *resty.Client
}

// Source is a document excerpt the back-end used for an answer.
type Source struct {
	Content  string         `json:"content"`
	Metadata map[string]any `json:"metadata"`
}

// Answer is the back-end's reply to a question.
type Answer struct {
	Text    string
	Sources []Source
}

type response struct {
	Status  string   `json:"status"`
	Message string   `json:"message"`
	Text    string   `json:"text"`
	Answer  string   `json:"answer"`
	Sources []Source `json:"sources"`
}

// New creates a client for the back-end at baseURL.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		client: resty.New().
			SetBaseURL(strings.TrimRight(baseURL, "/")).
			SetTimeout(timeout).
			SetHeader("Accept", "application/json"),
	}
}

// ProcessDocument sends plain text to be indexed for later questions.
func (c *Client) ProcessDocument(ctx context.Context, text string) error {
	_, err := c.do(c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"text": text}), "/api/process-document")
	return err
}

// ProcessPDF uploads a PDF, which the back-end indexes, and returns its extracted text.
func (c *Client) ProcessPDF(ctx context.Context, name string, data []byte) (string, error) {
	body, err := c.do(c.client.R().
		SetContext(ctx).
		SetFileReader("file", name, bytes.NewReader(data)), "/api/process-pdf")
	if err != nil {
		return "", err
	}
	return body.Text, nil
}

// ExtractPDF lets the client serve as the PDF extractor for local file loading.
func (c *Client) ExtractPDF(ctx context.Context, name string, data []byte) (string, error) {
	return c.ProcessPDF(ctx, name, data)
}

// Ask asks a question, optionally about a ticker. The answer text is
// normalized with FormatAnswer.
func (c *Client) Ask(ctx context.Context, question, ticker string) (*Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, ErrNoQuestion
	}
	payload := map[string]string{"question": question}
	if ticker != "" {
		payload["ticker"] = strings.ToUpper(ticker)
	}

	body, err := c.do(c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload), "/api/ask")
	if err != nil {
		return nil, err
	}
	return &Answer{Text: FormatAnswer(body.Answer), Sources: body.Sources}, nil
}

func (c *Client) do(req *resty.Request, path string) (*response, error) {
	resp, err := req.Post(path)
	if err != nil {
		return nil, fmt.Errorf("backend %s: %w", path, err)
	}

	var body response
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		if resp.IsError() {
			return nil, fmt.Errorf("backend %s: status %d", path, resp.StatusCode())
		}
		return nil, fmt.Errorf("backend %s: decode response: %w", path, err)
	}
	if resp.IsError() || body.Status == "error" {
		msg := body.Message
		if msg == "" {
			msg = resp.Status()
		}
		return nil, fmt.Errorf("backend %s: %s", path, msg)
	}
	return &body, nil
}
