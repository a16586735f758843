package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/fieldlab/crop-advisor/internal/pestinfer"
	"github.com/fieldlab/crop-advisor/internal/refdata"
)

// HTTPClassifier calls a remote inference service. The service answers with
// a winning label plus a per-class probability vector in percent; we sort
// the vector, rescale to [0,1], and cut to top-K.
type HTTPClassifier struct {
	baseURL string
	topK    int
	http    *http.Client
}

func NewHTTPClassifier(baseURL string, topK int) *HTTPClassifier {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &HTTPClassifier{
		baseURL: strings.TrimRight(baseURL, "/"),
		topK:    topK,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type classifierResponse struct {
	Success       bool    `json:"success"`
	Error         string  `json:"error,omitempty"`
	Label         string  `json:"label"`
	Confidence    float64 `json:"confidence"`
	Probabilities []struct {
		Class       string  `json:"class"`
		Probability float64 `json:"probability"`
	} `json:"probabilities"`
}

func (c *HTTPClassifier) Classify(ctx context.Context, image []byte, filename string) ([]pestinfer.DiseasePrediction, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("build upload: %w", err)
	}
	if _, err := part.Write(image); err != nil {
		return nil, fmt.Errorf("build upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("build upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/predict", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("classifier request: %w", err)
	}
	defer resp.Body.Close()
	blob, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		return nil, refdata.NewInternalError("classifier returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(blob)))
	}

	var parsed classifierResponse
	if err := json.Unmarshal(blob, &parsed); err != nil {
		return nil, fmt.Errorf("parse classifier response: %w", err)
	}
	if parsed.Error != "" {
		return nil, refdata.NewInternalError("classifier error: %s", parsed.Error)
	}
	return c.toPredictions(parsed)
}

func (c *HTTPClassifier) toPredictions(parsed classifierResponse) ([]pestinfer.DiseasePrediction, error) {
	if len(parsed.Probabilities) == 0 {
		if strings.TrimSpace(parsed.Label) == "" {
			return nil, refdata.NewInternalError("classifier returned no predictions")
		}
		p := pestinfer.DiseasePrediction{Disease: parsed.Label, Confidence: parsed.Confidence / 100}
		if err := p.Validate(); err != nil {
			return nil, err
		}
		return []pestinfer.DiseasePrediction{p}, nil
	}

	out := make([]pestinfer.DiseasePrediction, 0, len(parsed.Probabilities))
	for _, e := range parsed.Probabilities {
		out = append(out, pestinfer.DiseasePrediction{Disease: e.Class, Confidence: e.Probability / 100})
	}
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Confidence > out[b].Confidence
	})
	if len(out) > c.topK {
		out = out[:c.topK]
	}
	for _, p := range out {
		if err := p.Validate(); err != nil {
			return nil, err
		}
	}
	return out, nil
}
