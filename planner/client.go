// Package planner is the transport client for the trip-planning assistant
// backend.
//
// The backend exposes the conversation as one HTTP endpoint family: a
// streaming leg that answers with newline-delimited JSON frames, and a
// single-shot leg with the same request shape that answers with one
// complete JSON object. The client always tries the streaming leg first
// and falls back to the single-shot leg when streaming cannot be
// established; only when both legs fail does the caller see an error.
//
// The client performs no state mutation beyond network I/O. Frame
// interpretation (message history, context merging) belongs to the model
// package.
package planner

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	streamPath   = "/api/chat/stream"
	completePath = "/api/chat"

	defaultTurnTimeout = 90 * time.Second

	// maxFrameBytes bounds a single stream line. Comprehensive payloads
	// with full spot lists have been observed near 100 KB.
	maxFrameBytes = 1 << 20
)

// TurnMessage is one outbound history entry. Only role and content go over
// the wire; payloads are never echoed back.
type TurnMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the outbound body for both legs: the most recent turns
// plus the full trip context. Context is always sent whole, while inbound
// context travels as deltas; the asymmetry is deliberate.
type ChatRequest struct {
	Messages []TurnMessage  `json:"messages"`
	Context  map[string]any `json:"context"`
}

// FrameHandler receives each decoded frame in strict arrival order.
// Returning an error stops the stream.
type FrameHandler func(StreamFrame) error

// Client talks to one planning backend.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	turnTimeout time.Duration
}

// NewClient validates the backend URL and builds a client. An empty
// timeout selects the default upper bound on total turn latency.
func NewClient(baseURL string, turnTimeout time.Duration) (*Client, error) {
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid planner URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("invalid planner URL %q: unsupported scheme", baseURL)
	}
	if turnTimeout <= 0 {
		turnTimeout = defaultTurnTimeout
	}

	return &Client{
		httpClient:  &http.Client{},
		baseURL:     strings.TrimRight(parsed.String(), "/"),
		turnTimeout: turnTimeout,
	}, nil
}

// Converse runs one assistant turn: stream frames to handler, falling back
// to the single-shot leg when the stream could not deliver anything.
//
// The fallback fires on connection failure, timeout, or a non-success
// status before the first frame arrived. A stream that dies after
// delivering frames is treated as implicitly terminated instead; the
// partial turn stands and no duplicate fallback content is fetched.
// If the fallback also fails, its error is the single terminal error the
// caller surfaces to the user.
func (c *Client) Converse(ctx context.Context, req ChatRequest, handler FrameHandler) error {
	delivered := 0
	err := c.stream(ctx, req, func(frame StreamFrame) error {
		delivered++
		return handler(frame)
	})
	if err == nil {
		return nil
	}

	var transportErr *TransportError
	if delivered == 0 && errors.As(err, &transportErr) {
		frame, fallbackErr := c.Complete(ctx, req)
		if fallbackErr != nil {
			return fallbackErr
		}
		return handler(frame)
	}

	return err
}

// stream opens the streaming leg and feeds decoded frames to handler.
//
// Malformed frames are skipped without aborting the remaining stream. A
// connection that closes without the end marker, including a mid-stream
// deadline, counts as an implicit terminal signal once at least one frame
// has been read.
func (c *Client) stream(ctx context.Context, req ChatRequest, handler FrameHandler) error {
	ctx, cancel := context.WithTimeout(ctx, c.turnTimeout)
	defer cancel()

	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to encode chat request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+streamPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build stream request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/x-ndjson")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return &TransportError{Op: "stream", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &TransportError{Op: "stream", Status: resp.StatusCode}
	}

	framesRead := 0
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), maxFrameBytes)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if isEndMarker(line) {
			return nil
		}

		frame, decodeErr := decodeFrame(line)
		if decodeErr != nil {
			// A single bad frame must never abort the stream.
			continue
		}

		framesRead++
		if err := handler(frame); err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		if framesRead == 0 {
			return &TransportError{Op: "stream", Err: err}
		}
		// Closed mid-turn after real frames: implicit terminal signal.
		return nil
	}

	// EOF without the end marker is likewise an implicit terminal signal.
	return nil
}

// Complete is the non-streaming fallback: identical payload, one complete
// JSON object back. The response has the same field shape as a stream
// frame with status implied complete.
func (c *Client) Complete(ctx context.Context, req ChatRequest) (StreamFrame, error) {
	ctx, cancel := context.WithTimeout(ctx, c.turnTimeout)
	defer cancel()

	body, err := json.Marshal(req)
	if err != nil {
		return StreamFrame{}, fmt.Errorf("failed to encode chat request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+completePath, bytes.NewReader(body))
	if err != nil {
		return StreamFrame{}, fmt.Errorf("failed to build fallback request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return StreamFrame{}, &TransportError{Op: "complete", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return StreamFrame{}, &TransportError{Op: "complete", Status: resp.StatusCode}
	}

	var frame StreamFrame
	if err := json.NewDecoder(resp.Body).Decode(&frame); err != nil {
		return StreamFrame{}, &TransportError{Op: "complete", Err: err}
	}
	if frame.Status == "" {
		frame.Status = StatusComplete
	}

	return frame, nil
}

// BaseURL returns the backend the client was built against.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Ping checks that the backend is reachable.
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return err
	}
	resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("planner health check: unexpected status %d", resp.StatusCode)
	}
	return nil
}
