package registration

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
)

// GenericSubmitError is shown when the registration endpoint cannot be
// reached or answers with something unintelligible.
const GenericSubmitError = "Failed to create account. Please try again."

type submitResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// HTTPSubmitter posts the registration payload to the persistence boundary.
// Application-level rejections surface the server's error string verbatim;
// transport failures collapse into GenericSubmitError.
type HTTPSubmitter struct {
	endpoint string
	client   *http.Client
}

func NewHTTPSubmitter(endpoint string, client *http.Client) *HTTPSubmitter {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSubmitter{endpoint: endpoint, client: client}
}

func (s *HTTPSubmitter) Submit(ctx context.Context, payload SubmissionPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errors.New(GenericSubmitError)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.New(GenericSubmitError)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return errors.New(GenericSubmitError)
	}
	defer resp.Body.Close()

	var out submitResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return errors.New(GenericSubmitError)
	}
	if resp.StatusCode < 300 && out.Success {
		return nil
	}
	if out.Error != "" {
		return errors.New(out.Error)
	}
	return errors.New(GenericSubmitError)
}
