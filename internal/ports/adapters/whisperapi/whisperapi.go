// Package whisperapi transcribes audio through the hosted Whisper HTTP API.
package whisperapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/forPelevin/smartcut/internal/types"
)

const (
	defaultBaseURL = "https://api.openai.com"
	defaultModel   = "whisper-1"

	maxFileSizeBytes = 25 * 1024 * 1024
	maxRetries       = 3
	retryDelayBase   = 2 * time.Second
	requestTimeout   = 10 * time.Minute
)

type Adapter struct {
	key        string
	model      string
	baseURL    string
	client     *http.Client
	retryDelay time.Duration
}

func New(apiKey, model, baseURL string) *Adapter {
	if model == "" {
		model = defaultModel
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Adapter{
		key:        apiKey,
		model:      model,
		baseURL:    strings.TrimRight(baseURL, "/"),
		client:     &http.Client{Timeout: requestTimeout},
		retryDelay: retryDelayBase,
	}
}

// Transcribe uploads the audio file and returns word-level timestamps.
// language is a two-letter hint; empty means auto-detect. Transient failures
// are retried with exponential backoff.
func (a *Adapter) Transcribe(ctx context.Context, audioPath, language string) (types.Transcript, error) {
	info, err := os.Stat(audioPath)
	if err != nil {
		return types.Transcript{}, fmt.Errorf("stat audio: %w", err)
	}
	if info.Size() > maxFileSizeBytes {
		return types.Transcript{}, fmt.Errorf(
			"audio file is %.1fMB, the transcription API accepts at most %dMB; split the audio first",
			float64(info.Size())/1024/1024, maxFileSizeBytes/1024/1024,
		)
	}

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			delay := a.retryDelay << attempt
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return types.Transcript{}, ctx.Err()
			}
		}

		tr, err := a.transcribeOnce(ctx, audioPath, language)
		if err == nil {
			return tr, nil
		}
		if ctx.Err() != nil {
			return types.Transcript{}, err
		}
		lastErr = err
	}
	return types.Transcript{}, fmt.Errorf("transcription failed after %d attempts: %w", maxRetries, lastErr)
}

func (a *Adapter) transcribeOnce(ctx context.Context, audioPath, language string) (types.Transcript, error) {
	body, contentType, err := buildMultipartBody(audioPath, a.model, language)
	if err != nil {
		return types.Transcript{}, err
	}

	url := a.baseURL + "/v1/audio/transcriptions"
	req, err := http.NewRequestWithContext(ctx, "POST", url, body)
	if err != nil {
		return types.Transcript{}, err
	}
	req.Header.Set("Authorization", "Bearer "+a.key)
	req.Header.Set("Content-Type", contentType)

	resp, err := a.client.Do(req)
	if err != nil {
		return types.Transcript{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rb, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return types.Transcript{}, fmt.Errorf("whisper api status %d: %s", resp.StatusCode, strings.TrimSpace(string(rb)))
	}

	var raw verboseResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return types.Transcript{}, fmt.Errorf("decode whisper response: %w", err)
	}
	return raw.toTranscript(), nil
}

func buildMultipartBody(audioPath, model, language string) (io.Reader, string, error) {
	f, err := os.Open(audioPath)
	if err != nil {
		return nil, "", fmt.Errorf("open audio: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, "", fmt.Errorf("read audio: %w", err)
	}

	fields := map[string]string{
		"model":                     model,
		"response_format":           "verbose_json",
		"timestamp_granularities[]": "word",
	}
	if language != "" {
		fields["language"] = language
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, "", err
		}
	}
	// Both granularities are needed: segments for text ordering, words for
	// timing.
	if err := w.WriteField("timestamp_granularities[]", "segment"); err != nil {
		return nil, "", err
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

type verboseResponse struct {
	Language string  `json:"language"`
	Duration float64 `json:"duration"`
	Segments []struct {
		Start float64 `json:"start"`
		End   float64 `json:"end"`
		Text  string  `json:"text"`
	} `json:"segments"`
	Words []struct {
		Word  string  `json:"word"`
		Start float64 `json:"start"`
		End   float64 `json:"end"`
	} `json:"words"`
}

func (r verboseResponse) toTranscript() types.Transcript {
	tr := types.Transcript{Language: r.Language}
	if tr.Language == "" {
		tr.Language = "unknown"
	}

	for i, seg := range r.Segments {
		out := types.Segment{
			ID:    i,
			Start: seg.Start,
			End:   seg.End,
			Text:  strings.TrimSpace(seg.Text),
		}
		// Words are attached to the segment whose range holds their start.
		for _, w := range r.Words {
			if w.Start < seg.Start || w.Start >= seg.End {
				continue
			}
			out.Words = append(out.Words, types.Word{
				Word:  strings.TrimSpace(w.Word),
				Start: w.Start,
				End:   w.End,
			})
		}
		tr.Segments = append(tr.Segments, out)
	}

	tr.Duration = r.Duration
	if tr.Duration == 0 && len(tr.Segments) > 0 {
		tr.Duration = tr.Segments[len(tr.Segments)-1].End
	}
	return tr
}
