package fireflies

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/voxtools/fireflies-mcp/internal/logging"
)

const (
	// DefaultEndpoint is the production GraphQL endpoint.
	DefaultEndpoint = "https://api.fireflies.ai/graphql"

	// DefaultRequestTimeout bounds a single backend request.
	DefaultRequestTimeout = 60 * time.Second

	// DefaultListDeadline is the wall-clock bound on a whole list invocation.
	// When it elapses before the primary query settles, the degraded retry is
	// issued and the primary result is discarded.
	DefaultListDeadline = 90 * time.Second

	// DefaultListLimit applies when get_transcripts is called without a limit.
	DefaultListLimit = 20

	// DefaultSearchLimit applies when search_transcripts is called without a limit.
	DefaultSearchLimit = 10

	// searchFetchFloor is the minimum candidate page size fetched for
	// client-side search. Search always fetches max(limit, searchFetchFloor)
	// candidates before filtering and truncating to limit.
	searchFetchFloor = 20
)

var dateOnlyRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Client talks to the transcription backend's GraphQL endpoint. It holds only
// immutable per-instance configuration, so a single Client is safe for
// concurrent use; every call is otherwise stateless.
type Client struct {
	endpoint     string
	apiKey       string
	httpClient   *http.Client
	logger       *slog.Logger
	listDeadline time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithEndpoint overrides the GraphQL endpoint URL.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		if endpoint != "" {
			c.endpoint = endpoint
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client. The caller owns the
// client's timeout configuration.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the structured logger used for request diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithListDeadline overrides the list-invocation wall-clock bound.
func WithListDeadline(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.listDeadline = d
		}
	}
}

// NewClient creates a backend client authenticating with the given API key.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("apiKey cannot be empty")
	}

	c := &Client{
		endpoint:     DefaultEndpoint,
		apiKey:       apiKey,
		httpClient:   &http.Client{Timeout: DefaultRequestTimeout},
		logger:       slog.Default(),
		listDeadline: DefaultListDeadline,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// graphqlRequest is the POST body for every backend call.
type graphqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

type graphqlError struct {
	Message string `json:"message"`
}

// graphqlResponse is the backend's response envelope: either a data payload
// or a non-empty error list.
type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphqlError  `json:"errors,omitempty"`
}

// Execute submits a GraphQL document with variables and decodes the data
// payload into out. Failures are classified into the *Error taxonomy.
func (c *Client) Execute(ctx context.Context, query string, variables map[string]interface{}, out interface{}) error {
	body, err := json.Marshal(graphqlRequest{Query: query, Variables: variables})
	if err != nil {
		return &Error{Kind: KindInternal, Message: "failed to encode request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return &Error{Kind: KindInternal, Message: "failed to build request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		classified := classifyTransport(err)
		c.logger.Debug("backend request failed",
			slog.Duration(logging.KeyDuration, time.Since(start)),
			logging.Err(classified))
		return classified
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Kind: KindInternal, Message: "failed to read response", Err: err}
	}

	c.logger.Debug("backend request completed",
		slog.Int("http_status", resp.StatusCode),
		slog.Duration(logging.KeyDuration, time.Since(start)))

	if resp.StatusCode != http.StatusOK {
		return classifyStatus(resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var envelope graphqlResponse
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return &Error{Kind: KindInternal, Message: "failed to decode response envelope", Err: err}
	}

	// The backend does not guarantee ordering of multiple errors; only the
	// first message is surfaced.
	if len(envelope.Errors) > 0 {
		return newError(KindInternal, "query execution failed: %s", envelope.Errors[0].Message)
	}

	if out != nil && len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return &Error{Kind: KindInternal, Message: "failed to decode response data", Err: err}
		}
	}
	return nil
}

// ListOptions are the optional filters for ListTranscripts. Date bounds use
// YYYY-MM-DD or full ISO-8601 form; omitted bounds impose no filter. No local
// validation is applied beyond normalization; invalid values are a
// backend-classified failure.
type ListOptions struct {
	Limit    int
	FromDate string
	ToDate   string
}

type transcriptsPayload struct {
	Transcripts []Transcript `json:"transcripts"`
}

// ListTranscripts returns one page of transcripts, newest first per the
// backend's ordering. When the primary query is classified as a timeout, or
// the list deadline elapses while it is still in flight, a single degraded
// retry with minimal fields (id, title, date) is issued and the returned
// degraded flag is true. The abandoned primary result is discarded.
func (c *Client) ListTranscripts(ctx context.Context, opts ListOptions) ([]Transcript, bool, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}

	variables := map[string]interface{}{"limit": limit}
	if opts.FromDate != "" {
		variables["fromDate"] = normalizeDate(opts.FromDate)
	}
	if opts.ToDate != "" {
		variables["toDate"] = normalizeDate(opts.ToDate)
	}

	type listResult struct {
		transcripts []Transcript
		err         error
	}
	primary := make(chan listResult, 1)
	go func() {
		var payload transcriptsPayload
		err := c.Execute(ctx, listTranscriptsQuery, variables, &payload)
		primary <- listResult{payload.Transcripts, err}
	}()

	timer := time.NewTimer(c.listDeadline)
	defer timer.Stop()

	select {
	case res := <-primary:
		if res.err == nil {
			return res.transcripts, false, nil
		}
		if !IsKind(res.err, KindTimeout) {
			return nil, false, res.err
		}
		c.logger.Warn("primary transcript list timed out, retrying with minimal fields",
			logging.Operation("listTranscripts"), logging.Err(res.err))
	case <-timer.C:
		c.logger.Warn("transcript list exceeded deadline, retrying with minimal fields",
			logging.Operation("listTranscripts"),
			slog.Duration("deadline", c.listDeadline))
	case <-ctx.Done():
		return nil, false, classifyTransport(ctx.Err())
	}

	var payload transcriptsPayload
	if err := c.Execute(ctx, listTranscriptsMinimalQuery, variables, &payload); err != nil {
		return nil, false, err
	}
	return payload.Transcripts, true, nil
}

type transcriptPayload struct {
	Transcript *Transcript `json:"transcript"`
}

// GetTranscript returns the full shape of one transcript, including
// sentences.
func (c *Client) GetTranscript(ctx context.Context, transcriptID string) (*Transcript, error) {
	if strings.TrimSpace(transcriptID) == "" {
		return nil, newError(KindInvalidParams, "transcript_id cannot be empty")
	}

	var payload transcriptPayload
	if err := c.Execute(ctx, transcriptDetailsQuery, map[string]interface{}{"transcriptId": transcriptID}, &payload); err != nil {
		return nil, err
	}
	if payload.Transcript == nil {
		return nil, newError(KindNotFound, "transcript %q not found", transcriptID)
	}
	return payload.Transcript, nil
}

// SearchTranscripts performs case-insensitive substring matching over
// transcript titles, sentence text and keywords, evaluated client-side
// against a single fetched page of max(limit, 20) candidates, then truncated
// to limit.
func (c *Client) SearchTranscripts(ctx context.Context, query string, limit int) ([]Transcript, error) {
	if strings.TrimSpace(query) == "" {
		return nil, newError(KindInvalidParams, "query cannot be empty")
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	fetchLimit := limit
	if fetchLimit < searchFetchFloor {
		fetchLimit = searchFetchFloor
	}

	var payload transcriptsPayload
	if err := c.Execute(ctx, searchCandidatesQuery, map[string]interface{}{"limit": fetchLimit}, &payload); err != nil {
		return nil, err
	}

	needle := strings.ToLower(query)
	matches := make([]Transcript, 0, limit)
	for _, t := range payload.Transcripts {
		if matchesQuery(&t, needle) {
			matches = append(matches, t)
			if len(matches) == limit {
				break
			}
		}
	}
	return matches, nil
}

// matchesQuery reports whether the lowercased needle occurs in the
// transcript's title, any sentence text, or any keyword.
func matchesQuery(t *Transcript, needle string) bool {
	if strings.Contains(strings.ToLower(t.Title), needle) {
		return true
	}
	for _, s := range t.Sentences {
		if strings.Contains(strings.ToLower(s.Text), needle) {
			return true
		}
	}
	if t.Summary != nil {
		for _, kw := range t.Summary.Keywords {
			if strings.Contains(strings.ToLower(kw), needle) {
				return true
			}
		}
	}
	return false
}

// GetSummary fetches the summary-focused subset of a transcript. A transcript
// without any summary record fails with InvalidParams wrapping ErrNoSummary;
// an empty summary record is valid and returned as-is.
func (c *Client) GetSummary(ctx context.Context, transcriptID string) (*Transcript, error) {
	if strings.TrimSpace(transcriptID) == "" {
		return nil, newError(KindInvalidParams, "transcript_id cannot be empty")
	}

	var payload transcriptPayload
	if err := c.Execute(ctx, transcriptSummaryQuery, map[string]interface{}{"transcriptId": transcriptID}, &payload); err != nil {
		return nil, err
	}
	if payload.Transcript == nil {
		return nil, newError(KindNotFound, "transcript %q not found", transcriptID)
	}
	if payload.Transcript.Summary == nil {
		return nil, &Error{
			Kind:    KindInvalidParams,
			Message: fmt.Sprintf("transcript %q has no summary", transcriptID),
			Err:     ErrNoSummary,
		}
	}
	return payload.Transcript, nil
}

// normalizeDate expands a bare YYYY-MM-DD bound to midnight UTC in ISO-8601
// form; anything else is forwarded as-is for the backend to validate.
func normalizeDate(date string) string {
	if dateOnlyRe.MatchString(date) {
		return date + "T00:00:00.000Z"
	}
	return date
}
