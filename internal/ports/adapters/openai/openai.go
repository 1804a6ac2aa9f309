// Package openai asks a chat model to spot duplicate takes and pick accent
// words. Both calls are advisory; callers treat failures as "no answer".
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/forPelevin/smartcut/internal/types"
)

const (
	defaultBaseURL = "https://api.openai.com"
	defaultModel   = "gpt-4o-mini"

	requestTimeout = 90 * time.Second
)

type Adapter struct {
	key     string
	model   string
	baseURL string
	client  *http.Client
}

func New(apiKey, model, baseURL string) *Adapter {
	if model == "" {
		model = defaultModel
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Adapter{
		key:     apiKey,
		model:   model,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: requestTimeout},
	}
}

const duplicatePromptHead = `You are analyzing a video transcript where the speaker often repeats the same phrase multiple times (multiple takes). The LAST take is always the best.

Below are consecutive text blocks separated by pauses. Identify groups of blocks that are duplicate takes of the same content. For each group, mark which one to KEEP (always the last one in the group) and which ones to REMOVE.

Rules:
- Only group blocks that are clearly attempts at saying the same thing
- If a block is unique content (not a retry), don't include it in any group
- The "keep" block should always be the last one in the duplicate group
- Be conservative - only mark as duplicates if you're confident

Blocks:
`

const duplicatePromptTail = `

Return JSON in this exact format:
{
  "groups": [
    {
      "block_ids": [1, 2, 3],
      "keep": 3,
      "remove": [1, 2],
      "reason": "Three attempts at the same intro"
    }
  ]
}

If there are no duplicates, return: {"groups": []}`

// DetectDuplicates sends the paragraph texts to the model and returns its
// grouping decisions. The answer shape is validated but group membership is
// trusted as-is.
func (a *Adapter) DetectDuplicates(ctx context.Context, paragraphs []types.ParagraphText) ([]types.DuplicateGroup, error) {
	if len(paragraphs) == 0 {
		return nil, nil
	}

	var blocks strings.Builder
	for i, p := range paragraphs {
		if i > 0 {
			blocks.WriteByte('\n')
		}
		fmt.Fprintf(&blocks, "[%d] %q", p.ID, p.Text)
	}
	prompt := duplicatePromptHead + blocks.String() + duplicatePromptTail

	content, err := a.chatJSON(ctx, chatRequest{
		system:      "You are a video editing assistant that identifies duplicate takes in transcripts.",
		user:        prompt,
		temperature: 0.1,
	})
	if err != nil {
		return nil, err
	}

	var out struct {
		Groups []types.DuplicateGroup `json:"groups"`
	}
	if err := json.Unmarshal([]byte(content), &out); err != nil {
		return nil, fmt.Errorf("parse duplicate groups: %w", err)
	}
	return out.Groups, nil
}

const accentPromptFormat = `Identify 2-4 key words in this subtitle text that should be visually emphasized (highlighted in a different color). Choose important nouns, verbs, or key terms that carry the main meaning.

Text: %q

Return JSON array of words to accent (exactly as they appear in the text):
{"accent_words": ["word1", "word2"]}

Rules:
- Choose 2-4 words maximum
- Pick words that carry the core meaning
- Don't accent common words like "и", "в", "на", "это", "the", "is", "a"
- Return words exactly as they appear (same case, same form)`

// AccentWords returns the words of text to visually emphasize. Texts under
// three words are skipped without a model call.
func (a *Adapter) AccentWords(ctx context.Context, text string) ([]string, error) {
	if len(strings.Fields(text)) < 3 {
		return nil, nil
	}

	content, err := a.chatJSON(ctx, chatRequest{
		system:      "You are a subtitle styling assistant.",
		user:        fmt.Sprintf(accentPromptFormat, text),
		temperature: 0.3,
	})
	if err != nil {
		return nil, err
	}

	var out struct {
		AccentWords []string `json:"accent_words"`
	}
	if err := json.Unmarshal([]byte(content), &out); err != nil {
		return nil, fmt.Errorf("parse accent words: %w", err)
	}
	return out.AccentWords, nil
}

type chatRequest struct {
	system      string
	user        string
	temperature float64
}

func (a *Adapter) chatJSON(ctx context.Context, cr chatRequest) (string, error) {
	payload := map[string]any{
		"model": a.model,
		"messages": []map[string]any{
			{"role": "system", "content": cr.system},
			{"role": "user", "content": cr.user},
		},
		"response_format": map[string]any{"type": "json_object"},
		"temperature":     cr.temperature,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	reqCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, "POST", a.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+a.key)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		if errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("chat timeout after %s (model=%s)", requestTimeout, a.model)
		}
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rb, readErr := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if readErr != nil {
			return "", fmt.Errorf("chat status %d and read body failed: %v", resp.StatusCode, readErr)
		}
		return "", fmt.Errorf("chat status %d: %s", resp.StatusCode, truncate(redactSecrets(string(rb), a.key), 400))
	}

	var raw struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return "", err
	}
	if len(raw.Choices) == 0 {
		return "", errors.New("chat response has no choices")
	}
	content := strings.TrimSpace(raw.Choices[0].Message.Content)
	if content == "" {
		return "", errors.New("chat response is empty")
	}
	return content, nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

var (
	bearerTokenRE = regexp.MustCompile(`(?i)\bBearer\s+[A-Za-z0-9._-]+\b`)
	authHeaderRE  = regexp.MustCompile(`(?i)(authorization\s*[:=]\s*)([^\n\r,;]+)`)
	apiKeyFieldRE = regexp.MustCompile(`(?i)(api[_-]?key\s*[:=]\s*)([^\n\r,;]+)`)
)

func redactSecrets(s, apiKey string) string {
	if s == "" {
		return s
	}
	out := s
	if apiKey != "" {
		out = strings.ReplaceAll(out, apiKey, "[REDACTED]")
	}
	out = bearerTokenRE.ReplaceAllString(out, "Bearer [REDACTED]")
	out = authHeaderRE.ReplaceAllString(out, "${1}[REDACTED]")
	out = apiKeyFieldRE.ReplaceAllString(out, "${1}[REDACTED]")
	return out
}
