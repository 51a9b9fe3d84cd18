package interview

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"hireview/internal/dto"
)

const defaultClientTimeout = 60 * time.Second

// Client talks to the candidate endpoints: fetching the interview definition
// behind a share link, uploading one take per question, and the completion
// handshake. It implements Submitter.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

type ClientOption func(*Client)

// WithHTTPClient substitutes the underlying transport (tests, custom
// timeouts).
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultClientTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// apiEnvelope mirrors dto.ApiResponse with the payload left raw for
// per-endpoint decoding.
type apiEnvelope struct {
	Status     bool            `json:"status"`
	StatusCode int             `json:"statusCode"`
	Data       json.RawMessage `json:"data"`
	Error      string          `json:"error"`
	Message    string          `json:"message"`
}

// FetchJob resolves a share link to the job definition with its ordered
// questions.
func (c *Client) FetchJob(ctx context.Context, linkID string) (*dto.JobResponseDTO, error) {
	endpoint := fmt.Sprintf("%s/api/candidate/job?linkId=%s", c.baseURL, url.QueryEscape(linkID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	envelope, status, err := c.do(req)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, ErrJobLinkNotFound
	}
	if !envelope.Status {
		return nil, fmt.Errorf("fetching job: %s", envelope.Error)
	}

	var job dto.JobResponseDTO
	if err := json.Unmarshal(envelope.Data, &job); err != nil {
		return nil, fmt.Errorf("decoding job payload: %w", err)
	}
	return &job, nil
}

// SubmitResponse uploads one take as a multipart payload.
func (c *Client) SubmitResponse(ctx context.Context, sub Submission) error {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	fields := map[string]string{
		"jobId":          fmt.Sprintf("%d", sub.JobID),
		"candidateName":  sub.CandidateName,
		"candidateEmail": sub.CandidateEmail,
		"questionId":     fmt.Sprintf("%d", sub.QuestionID),
		"duration":       fmt.Sprintf("%d", sub.Duration),
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return fmt.Errorf("writing field %s: %w", name, err)
		}
	}

	part, err := writer.CreateFormFile("video", sub.Filename)
	if err != nil {
		return fmt.Errorf("creating video part: %w", err)
	}
	if _, err := part.Write(sub.Data); err != nil {
		return fmt.Errorf("writing video data: %w", err)
	}
	if err := writer.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/candidate/submit", &body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	envelope, _, err := c.do(req)
	if err != nil {
		return err
	}
	if !envelope.Status {
		return fmt.Errorf("server rejected upload: %s", envelope.Error)
	}
	return nil
}

// CompleteApplication issues the completion handshake for the application.
func (c *Client) CompleteApplication(ctx context.Context, candidateEmail string, jobID uint) error {
	payload, err := json.Marshal(dto.CompleteApplicationDTO{
		CandidateEmail: candidateEmail,
		JobID:          jobID,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/candidate/complete", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	envelope, _, err := c.do(req)
	if err != nil {
		return err
	}
	if !envelope.Status {
		return fmt.Errorf("completion rejected: %s", envelope.Error)
	}
	return nil
}

func (c *Client) do(req *http.Request) (*apiEnvelope, int, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("reading response body: %w", err)
	}

	var envelope apiEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, resp.StatusCode, fmt.Errorf("decoding response (HTTP %d): %w", resp.StatusCode, err)
	}
	return &envelope, resp.StatusCode, nil
}
