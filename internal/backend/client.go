// Package backend talks to the remote chat backend over HTTP and normalizes
// its failures into the error kinds the UI knows how to explain.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/attt/sohbet/internal/chat"
	"github.com/attt/sohbet/internal/errors"
	"github.com/attt/sohbet/internal/logger"
)

const (
	DefaultBaseURL        = "http://localhost:8080"
	DefaultSendTimeout    = 30 * time.Second
	DefaultSessionTimeout = 10 * time.Second
	DefaultHealthTimeout  = 5 * time.Second

	// maxBodyBytes bounds how much of a response is read.
	maxBodyBytes = 4 << 20
)

// Options configures a Client. Zero values fall back to the defaults above.
type Options struct {
	BaseURL        string
	HTTPClient     *http.Client
	SendTimeout    time.Duration
	SessionTimeout time.Duration
	HealthTimeout  time.Duration
	Version        string
}

// Client is a typed client for the chat backend API.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	sendTimeout    time.Duration
	sessionTimeout time.Duration
	healthTimeout  time.Duration
	userAgent      string
}

// New creates a Client.
func New(opts Options) *Client {
	c := &Client{
		baseURL:        strings.TrimRight(opts.BaseURL, "/"),
		httpClient:     opts.HTTPClient,
		sendTimeout:    opts.SendTimeout,
		sessionTimeout: opts.SessionTimeout,
		healthTimeout:  opts.HealthTimeout,
		userAgent:      "sohbet",
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{}
	}
	if c.sendTimeout <= 0 {
		c.sendTimeout = DefaultSendTimeout
	}
	if c.sessionTimeout <= 0 {
		c.sessionTimeout = DefaultSessionTimeout
	}
	if c.healthTimeout <= 0 {
		c.healthTimeout = DefaultHealthTimeout
	}
	if opts.Version != "" {
		c.userAgent = "sohbet/" + opts.Version
	}
	return c
}

// BaseURL returns the backend root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// errorBody is the shape of backend error payloads.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// do performs one request. in is JSON-encoded when non-nil; the response body
// is decoded into out when out is non-nil.
func (c *Client) do(ctx context.Context, op errors.Op, method, path string, timeout time.Duration, in, out any) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return errors.E(op, errors.KindInvalid, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return errors.E(op, errors.KindInvalid, fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log := logger.WithComponent("backend")
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn("request failed", "op", op, "method", method, "path", path, "duration", time.Since(start), "error", err)
		return errors.Unreachable(op, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		log.Warn("reading response failed", "op", op, "path", path, "error", err)
		return errors.Unreachable(op, err)
	}
	log.Debug("request done", "op", op, "method", method, "path", path, "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		_ = json.Unmarshal(data, &eb)
		detail := eb.Message
		if detail == "" {
			detail = eb.Error
		}
		return errors.HTTPStatus(op, resp.StatusCode, detail)
	}

	if out == nil {
		return nil
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return errors.Malformed(op, "empty body")
	}
	if err := json.Unmarshal(data, out); err != nil {
		return errors.Malformed(op, err.Error())
	}
	return nil
}

func sessionPath(id string) string {
	return "/api/sessions/" + url.PathEscape(id)
}

type sendRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId,omitempty"`
}

type messageResponse struct {
	Message   *chat.Message `json:"message"`
	SessionID string        `json:"sessionId"`
}

// SendResult is the assistant reply to a sent message.
type SendResult struct {
	Message   chat.Message
	SessionID string
}

// SendMessage posts text to the backend. An empty sessionID asks the backend
// to allocate one.
func (c *Client) SendMessage(ctx context.Context, text, sessionID string) (SendResult, error) {
	const op errors.Op = "backend.SendMessage"

	var resp messageResponse
	if err := c.do(ctx, op, http.MethodPost, "/api/chat/send", c.sendTimeout, sendRequest{Message: text, SessionID: sessionID}, &resp); err != nil {
		return SendResult{}, err
	}
	if err := validMessage(op, resp.Message); err != nil {
		return SendResult{}, err
	}

	sid := resp.SessionID
	if sid == "" {
		sid = resp.Message.SessionID
	}
	if sid == "" {
		sid = sessionID
	}
	msg := *resp.Message
	msg.SessionID = sid
	return SendResult{Message: msg, SessionID: sid}, nil
}

type regenerateRequest struct {
	MessageID string `json:"messageId"`
	SessionID string `json:"sessionId"`
}

// RegenerateMessage asks the backend for a fresh reply in place of messageID.
func (c *Client) RegenerateMessage(ctx context.Context, messageID, sessionID string) (chat.Message, error) {
	const op errors.Op = "backend.RegenerateMessage"

	var resp messageResponse
	if err := c.do(ctx, op, http.MethodPost, "/api/chat/regenerate", c.sendTimeout, regenerateRequest{MessageID: messageID, SessionID: sessionID}, &resp); err != nil {
		return chat.Message{}, err
	}
	if err := validMessage(op, resp.Message); err != nil {
		return chat.Message{}, err
	}
	msg := *resp.Message
	if msg.SessionID == "" {
		msg.SessionID = sessionID
	}
	return msg, nil
}

// GetMessages returns the stored messages of a session.
func (c *Client) GetMessages(ctx context.Context, sessionID string) ([]chat.Message, error) {
	const op errors.Op = "backend.GetMessages"

	var msgs []chat.Message
	if err := c.do(ctx, op, http.MethodGet, "/api/chat/messages/"+url.PathEscape(sessionID), c.sessionTimeout, nil, &msgs); err != nil {
		return nil, err
	}
	if msgs == nil {
		msgs = []chat.Message{}
	}
	for i := range msgs {
		if err := validMessage(op, &msgs[i]); err != nil {
			return nil, err
		}
	}
	return msgs, nil
}

type sessionsResponse struct {
	Sessions *[]chat.ChatSession `json:"sessions"`
}

// ListSessions returns every session the backend knows. On failure the slice
// is empty but non-nil, alongside the error.
func (c *Client) ListSessions(ctx context.Context) ([]chat.ChatSession, error) {
	const op errors.Op = "backend.ListSessions"

	var resp sessionsResponse
	if err := c.do(ctx, op, http.MethodGet, "/api/sessions", c.sessionTimeout, nil, &resp); err != nil {
		return []chat.ChatSession{}, err
	}
	if resp.Sessions == nil {
		return []chat.ChatSession{}, errors.Malformed(op, "missing sessions array")
	}
	list := *resp.Sessions
	for i := range list {
		if err := validSession(op, &list[i]); err != nil {
			return []chat.ChatSession{}, err
		}
	}
	if list == nil {
		list = []chat.ChatSession{}
	}
	return list, nil
}

type sessionResponse struct {
	Session *chat.ChatSession `json:"session"`
}

type createSessionRequest struct {
	Title string `json:"title"`
}

// CreateSession creates a session with the given title.
func (c *Client) CreateSession(ctx context.Context, title string) (chat.ChatSession, error) {
	const op errors.Op = "backend.CreateSession"

	var resp sessionResponse
	if err := c.do(ctx, op, http.MethodPost, "/api/sessions", c.sessionTimeout, createSessionRequest{Title: title}, &resp); err != nil {
		return chat.ChatSession{}, err
	}
	if resp.Session == nil {
		return chat.ChatSession{}, errors.Malformed(op, "missing session")
	}
	if err := validSession(op, resp.Session); err != nil {
		return chat.ChatSession{}, err
	}
	return *resp.Session, nil
}

// GetSession fetches one session with its messages.
func (c *Client) GetSession(ctx context.Context, id string) (chat.ChatSession, error) {
	const op errors.Op = "backend.GetSession"

	var s chat.ChatSession
	if err := c.do(ctx, op, http.MethodGet, sessionPath(id), c.sessionTimeout, nil, &s); err != nil {
		return chat.ChatSession{}, err
	}
	if err := validSession(op, &s); err != nil {
		return chat.ChatSession{}, err
	}
	return s, nil
}

// SessionUpdate lists the fields to change; nil fields are left alone.
type SessionUpdate struct {
	Title      *string `json:"title,omitempty"`
	IsFavorite *bool   `json:"isFavorite,omitempty"`
}

// UpdateSession changes a session's title or favorite flag.
func (c *Client) UpdateSession(ctx context.Context, id string, upd SessionUpdate) (chat.ChatSession, error) {
	const op errors.Op = "backend.UpdateSession"

	var resp sessionResponse
	if err := c.do(ctx, op, http.MethodPut, sessionPath(id), c.sessionTimeout, upd, &resp); err != nil {
		return chat.ChatSession{}, err
	}
	if resp.Session == nil {
		return chat.ChatSession{}, errors.Malformed(op, "missing session")
	}
	if err := validSession(op, resp.Session); err != nil {
		return chat.ChatSession{}, err
	}
	return *resp.Session, nil
}

// DeleteSession removes a session.
func (c *Client) DeleteSession(ctx context.Context, id string) error {
	return c.do(ctx, "backend.DeleteSession", http.MethodDelete, sessionPath(id), c.sessionTimeout, nil, nil)
}

// ToggleFavorite flips the favorite flag of a session on the backend.
func (c *Client) ToggleFavorite(ctx context.Context, id string) (chat.ChatSession, error) {
	const op errors.Op = "backend.ToggleFavorite"

	var s chat.ChatSession
	if err := c.do(ctx, op, http.MethodPost, sessionPath(id)+"/favorite", c.sessionTimeout, struct{}{}, &s); err != nil {
		return chat.ChatSession{}, err
	}
	if err := validSession(op, &s); err != nil {
		return chat.ChatSession{}, err
	}
	return s, nil
}

// HealthCheck reports whether the backend answered /health with a 2xx in time.
func (c *Client) HealthCheck(ctx context.Context) bool {
	err := c.do(ctx, "backend.HealthCheck", http.MethodGet, "/health", c.healthTimeout, nil, nil)
	return err == nil
}

func validMessage(op errors.Op, m *chat.Message) error {
	if m == nil {
		return errors.Malformed(op, "missing message")
	}
	if m.ID == "" {
		return errors.Malformed(op, "message without id")
	}
	if m.Sender == "" {
		m.Sender = chat.SenderBot
	}
	if m.Sender != chat.SenderBot && m.Sender != chat.SenderUser {
		return errors.Malformed(op, fmt.Sprintf("unknown sender %q", m.Sender))
	}
	return nil
}

func validSession(op errors.Op, s *chat.ChatSession) error {
	if s.ID == "" {
		return errors.Malformed(op, "session without id")
	}
	if s.Messages == nil {
		s.Messages = []chat.Message{}
	}
	for i := range s.Messages {
		if err := validMessage(op, &s.Messages[i]); err != nil {
			return err
		}
	}
	return nil
}
