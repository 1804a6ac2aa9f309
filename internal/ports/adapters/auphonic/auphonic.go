// Package auphonic drives the job-based audio enhancement API: upload,
// poll, download.
package auphonic

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
)

const (
	defaultBaseURL = "https://auphonic.com/api"

	pollInterval    = 5 * time.Second
	maxPollAttempts = 120
	requestTimeout  = 5 * time.Minute
)

// Production status codes as reported by the API.
const (
	statusIncomplete = 0
	statusQueued     = 1
	statusInProgress = 2
	statusDone       = 3
	statusError      = 4
)

type Adapter struct {
	key      string
	baseURL  string
	client   *http.Client
	interval time.Duration
}

func New(apiKey, baseURL string) *Adapter {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Adapter{
		key:      apiKey,
		baseURL:  strings.TrimRight(baseURL, "/"),
		client:   &http.Client{Timeout: requestTimeout},
		interval: pollInterval,
	}
}

// CreateProduction uploads the audio and starts processing, returning the
// production id to poll.
func (a *Adapter) CreateProduction(ctx context.Context, audioPath, presetUUID, title string) (string, error) {
	if title == "" {
		title = "SmartCut Enhancement"
	}

	body, contentType, err := buildUploadBody(audioPath, presetUUID, title)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", a.baseURL+"/simple/productions.json", body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+a.key)
	req.Header.Set("Content-Type", contentType)

	resp, err := a.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("auphonic create status %d", resp.StatusCode)
	}

	var raw struct {
		StatusCode   int    `json:"status_code"`
		ErrorMessage string `json:"error_message"`
		Data         struct {
			UUID string `json:"uuid"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return "", fmt.Errorf("decode auphonic response: %w", err)
	}
	if raw.StatusCode != 200 {
		msg := raw.ErrorMessage
		if msg == "" {
			msg = "unknown error"
		}
		return "", fmt.Errorf("auphonic error: %s", msg)
	}
	if raw.Data.UUID == "" {
		return "", fmt.Errorf("auphonic response has no production uuid")
	}
	return raw.Data.UUID, nil
}

// PollUntilDone blocks until the production finishes, errors out, or the
// attempt budget runs out.
func (a *Adapter) PollUntilDone(ctx context.Context, productionID string) error {
	for attempt := 0; attempt < maxPollAttempts; attempt++ {
		status, errMsg, err := a.getStatus(ctx, productionID)
		if err != nil {
			return err
		}

		switch status {
		case statusDone:
			return nil
		case statusError:
			return fmt.Errorf("auphonic production failed: %s", errMsg)
		case statusIncomplete, statusQueued, statusInProgress:
		default:
			return fmt.Errorf("auphonic production in unknown state %d", status)
		}

		select {
		case <-time.After(a.interval):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return fmt.Errorf("auphonic production timed out after %s", time.Duration(maxPollAttempts)*a.interval)
}

// DownloadResult fetches the first output file of a finished production.
func (a *Adapter) DownloadResult(ctx context.Context, productionID, outPath string) error {
	var raw struct {
		Data struct {
			OutputFiles []struct {
				DownloadURL string `json:"download_url"`
			} `json:"output_files"`
		} `json:"data"`
	}
	if err := a.getJSON(ctx, a.productionURL(productionID), &raw); err != nil {
		return err
	}
	if len(raw.Data.OutputFiles) == 0 {
		return fmt.Errorf("auphonic production %s has no output files", productionID)
	}
	url := raw.Data.OutputFiles[0].DownloadURL
	if url == "" {
		return fmt.Errorf("auphonic production %s has no download url", productionID)
	}

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+a.key)

	resp, err := a.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("auphonic download status %d", resp.StatusCode)
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", outPath, err)
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		return fmt.Errorf("write enhanced audio: %w", err)
	}
	return out.Close()
}

// Enhance runs the full workflow: create, wait, download.
func (a *Adapter) Enhance(ctx context.Context, audioPath, outPath, presetUUID string) error {
	id, err := a.CreateProduction(ctx, audioPath, presetUUID, "")
	if err != nil {
		return err
	}
	if err := a.PollUntilDone(ctx, id); err != nil {
		return err
	}
	return a.DownloadResult(ctx, id, outPath)
}

func (a *Adapter) productionURL(productionID string) string {
	return a.baseURL + "/production/" + productionID + ".json"
}

func (a *Adapter) getStatus(ctx context.Context, productionID string) (int, string, error) {
	var raw struct {
		Data struct {
			Status       int    `json:"status"`
			ErrorMessage string `json:"error_message"`
		} `json:"data"`
	}
	if err := a.getJSON(ctx, a.productionURL(productionID), &raw); err != nil {
		return 0, "", err
	}
	return raw.Data.Status, raw.Data.ErrorMessage, nil
}

func (a *Adapter) getJSON(ctx context.Context, url string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+a.key)

	resp, err := a.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("auphonic status %d for %s", resp.StatusCode, url)
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode auphonic response: %w", err)
	}
	return nil
}

func buildUploadBody(audioPath, presetUUID, title string) (io.Reader, string, error) {
	f, err := os.Open(audioPath)
	if err != nil {
		return nil, "", fmt.Errorf("open audio: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("input_file", filepath.Base(audioPath))
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, "", fmt.Errorf("read audio: %w", err)
	}

	if err := w.WriteField("title", title); err != nil {
		return nil, "", err
	}
	if err := w.WriteField("action", "start"); err != nil {
		return nil, "", err
	}
	if presetUUID != "" {
		if err := w.WriteField("preset", presetUUID); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
