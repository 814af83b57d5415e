// Package openai provides an LLM-backed implementation of
// metascrape.Summarizer against any OpenAI-compatible chat-completion API,
// including OpenRouter.
package openai

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/akarpinski/metascrape"
	openai "github.com/sashabaranov/go-openai"
)

// maxPromptChars bounds how much extracted text is embedded in the prompt,
// to stay clear of model token limits.
const maxPromptChars = 8000

const systemInstruction = "You are a helpful assistant that summarizes web content accurately and concisely."

// summaryTimeout bounds a single completion request.
const summaryTimeout = 60 * time.Second

// Ensure Summarizer implements metascrape.Summarizer at compile time.
var _ metascrape.Summarizer = (*Summarizer)(nil)

// Summarizer generates content summaries through a chat-completion endpoint.
type Summarizer struct {
	client *openai.Client
	model  string
}

// NewSummarizer creates a Summarizer against the API at baseURL (e.g.
// "https://api.openai.com/v1" or "https://openrouter.ai/api/v1"). OpenRouter
// endpoints get the attribution headers it expects.
func NewSummarizer(baseURL, token, model string) *Summarizer {
	cfg := openai.DefaultConfig(token)
	cfg.BaseURL = strings.TrimRight(baseURL, "/")

	httpClient := &http.Client{Timeout: summaryTimeout}
	if strings.Contains(baseURL, "openrouter.ai") {
		httpClient.Transport = &openrouterTransport{next: http.DefaultTransport}
	}
	cfg.HTTPClient = httpClient

	return &Summarizer{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// Summarize returns a summary of text, embedding up to maxPromptChars of it
// in the prompt. The first choice's message content is returned verbatim.
func (s *Summarizer) Summarize(ctx context.Context, text, title, url string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", metascrape.Errorf(metascrape.EINVALID, "no content to summarize")
	}
	if len(text) > maxPromptChars {
		text = text[:maxPromptChars]
	}

	prompt := fmt.Sprintf(`Please provide a comprehensive summary of the following web content:
Title: %s
URL: %s

The summary should:
1. Focus on the main ideas, findings, and important details
2. Be well-structured with appropriate headings
3. Retain key facts and statistics
4. Be about 30%% of the original length (or shorter if the content is very long)
5. Present information in clear, concise language

Here's the content to summarize:

%s
`, title, url, text)

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemInstruction},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.3,
		MaxTokens:   1500,
	})
	if err != nil {
		return "", metascrape.Errorf(metascrape.EUNAVAILABLE, "failed to summarize content: %v", err)
	}
	if len(resp.Choices) == 0 {
		return "", metascrape.Errorf(metascrape.EUNAVAILABLE, "failed to summarize content: invalid response structure from API")
	}

	return resp.Choices[0].Message.Content, nil
}

// openrouterTransport adds the attribution headers OpenRouter expects.
type openrouterTransport struct {
	next http.RoundTripper
}

func (t *openrouterTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("HTTP-Referer", "https://github.com/akarpinski/metascrape")
	req.Header.Set("X-Title", "metascrape")
	return t.next.RoundTrip(req)
}
