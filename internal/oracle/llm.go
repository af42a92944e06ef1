package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// LLMJudge scores a submission by prompting a generateContent-style LLM
// endpoint and parsing the mandated "SCORE: n" first line.
type LLMJudge struct {
	inner  *http.Client
	url    string
	apiKey string
}

func NewLLMJudge(url, apiKey string, timeout time.Duration) *LLMJudge {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &LLMJudge{
		inner:  &http.Client{Timeout: timeout},
		url:    url,
		apiKey: apiKey,
	}
}

type llmPayload struct {
	Contents          []llmContent `json:"contents"`
	SystemInstruction llmContent   `json:"systemInstruction"`
}

type llmContent struct {
	Parts []llmPart `json:"parts"`
}

type llmPart struct {
	Text string `json:"text"`
}

type llmResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

var scoreLine = regexp.MustCompile(`SCORE:\s*(-?\d+)`)

func (j *LLMJudge) Evaluate(ctx context.Context, req Request) (Result, error) {
	payload := llmPayload{
		Contents:          []llmContent{{Parts: []llmPart{{Text: userQuery(req)}}}},
		SystemInstruction: llmContent{Parts: []llmPart{{Text: judgePrompt(req.Direction)}}},
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return Result{}, err
	}
	endpoint := j.url
	if j.apiKey != "" {
		endpoint += "?key=" + j.apiKey
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(raw))
	if err != nil {
		return Result{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := j.inner.Do(httpReq)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	body, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrUnavailable, readErr)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Result{}, fmt.Errorf("%w: judge returned status %d", ErrUnavailable, resp.StatusCode)
	}

	var parsed llmResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return Result{}, fmt.Errorf("%w: empty candidates", ErrUnavailable)
	}
	text := parsed.Candidates[0].Content.Parts[0].Text
	score, ok := ParseScoreText(text)
	if !ok {
		log.Warn().Str("judge_text", firstLine(text)).Msg("judge output missing score line")
		return Result{}, fmt.Errorf("%w: no score line", ErrUnavailable)
	}
	return Result{
		TotalScore: ClampScore(score),
		Commentary: commentaryFrom(text),
	}, nil
}

// ParseScoreText extracts the total from the mandated first-line
// "SCORE: n" contract.
func ParseScoreText(text string) (int, bool) {
	m := scoreLine.FindStringSubmatch(firstLine(text))
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

func firstLine(text string) string {
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		return text[:i]
	}
	return text
}

// commentaryFrom keeps the per-criterion lines after the score line.
func commentaryFrom(text string) string {
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		return strings.TrimSpace(text[i+1:])
	}
	return ""
}

func userQuery(req Request) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hackathon theme: %s\n", req.Theme)
	fmt.Fprintf(&b, "Judging direction: %s\n", req.Direction)
	fmt.Fprintf(&b, "Submitted idea: %s\n", req.Pitch)
	fmt.Fprintf(&b, "Technologies used: %s\n", strings.Join(req.TechNames, ", "))
	return b.String()
}

func judgePrompt(direction string) string {
	header := "Always output 'SCORE: [total]' on the very first line, with no preamble.\n" +
		"Then list each criterion's points and reasoning.\n\n" +
		"You are a hackathon AI judge. Evaluate the given idea and its technology\n" +
		"selection. Score each criterion up to its stated maximum for a 100-point total.\n"
	switch direction {
	case "business-focused":
		return header +
			"Criteria:\n" +
			"1. Theme fit (20): does the idea match the theme\n" +
			"2. Market potential (30): could this become a viable product\n" +
			"3. Idea/technology fit (20): is the stack appropriate for the idea\n" +
			"4. Feasibility (30): can it realistically be built\n"
	case "fun-focused":
		return header +
			"Criteria:\n" +
			"1. Theme fit (20): does the idea match the theme\n" +
			"2. Originality (30): how unique and entertaining is the idea\n" +
			"3. Idea/technology fit (20): is the stack appropriate for the idea\n" +
			"4. Feasibility (30): can it realistically be built\n"
	default: // tech-focused
		return header +
			"Criteria:\n" +
			"1. Theme fit (20): does the idea match the theme\n" +
			"2. Idea/technology fit (20): is the stack appropriate for the idea\n" +
			"3. Technology synergy (30): how well the technologies combine, and how novel\n" +
			"4. Feasibility (30): can it realistically be built\n"
	}
}
