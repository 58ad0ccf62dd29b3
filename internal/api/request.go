package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/rickgao/bazaar-data/internal/version"
)

// doRequest performs a single GET against the configured endpoint.
func (c *Client) doRequest(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("create request: %w", err)}
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())
	if c.apiKey != "" {
		req.Header.Set("API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("do request: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodyBytes+1))
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("read response: %w", err)}
	}
	if int64(len(body)) > c.maxBodyBytes {
		return nil, &DecodeError{Err: fmt.Errorf("response body exceeds %d bytes", c.maxBodyBytes)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &TransportError{
			StatusCode: resp.StatusCode,
			Body:       body,
			Err:        errors.New(http.StatusText(resp.StatusCode)),
		}
	}

	return body, nil
}

// get performs the GET and decodes the body into result, validating
// required fields. No retries: retry cadence belongs to the poller.
func (c *Client) get(ctx context.Context, result any) error {
	body, err := c.doRequest(ctx)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, result); err != nil {
		return &DecodeError{Err: fmt.Errorf("unmarshal response: %w", err)}
	}

	if err := c.validate.Struct(result); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fe.Namespace())
			}
			return &DecodeError{Fields: fields, Err: err}
		}
		return &DecodeError{Err: err}
	}

	return nil
}
