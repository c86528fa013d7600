// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ai

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/pdiddy/ebook-engine/internal/httputil"
	"github.com/pdiddy/ebook-engine/pkg/types"
)

// OpenAI implements Backend against the OpenAI API (or any OpenAI-compatible
// gateway via BaseURL) using the official SDK: chat completions for text and
// structured calls, the images endpoint for illustrations.
type OpenAI struct {
	model      string
	imageModel string
	opts       []option.RequestOption
	httpClient *http.Client
	userAgent  string
	maxRetries int
}

// NewOpenAI builds a backend from configuration. The API key and text model
// are required; the image model defaults to "gpt-image-1".
func NewOpenAI(cfg types.AIConfig) (*OpenAI, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai api key missing; provide ai.api_key or .secrets/openai-api-key")
	}
	if cfg.Model == "" {
		return nil, errors.New("ai model is required")
	}

	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	imageModel := cfg.ImageModel
	if imageModel == "" {
		imageModel = "gpt-image-1"
	}

	return &OpenAI{
		model:      cfg.Model,
		imageModel: imageModel,
		opts:       opts,
		httpClient: &http.Client{Timeout: cfg.HTTP.Timeout},
		userAgent:  cfg.HTTP.UserAgent,
		maxRetries: cfg.MaxRetries,
	}, nil
}

// Text runs one chat completion with the prompt as the user message.
func (o *OpenAI) Text(ctx context.Context, prompt string) (string, error) {
	client := openai.NewClient(o.opts...)

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: empty choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// JSON runs a completion and decodes the response into out, tolerating the
// code fences models add around JSON.
func (o *OpenAI) JSON(ctx context.Context, prompt string, out any) error {
	raw, err := o.Text(ctx, prompt)
	if err != nil {
		return err
	}
	return DecodeJSON(raw, out)
}

// Image generates one illustration. Depending on the model the API returns
// inline base64 data or a short-lived URL; URL responses are downloaded with
// bounded retry on rate limiting.
func (o *OpenAI) Image(ctx context.Context, prompt string) ([]byte, error) {
	client := openai.NewClient(o.opts...)

	resp, err := client.Images.Generate(ctx, openai.ImageGenerateParams{
		Prompt: prompt,
		Model:  openai.ImageModel(o.imageModel),
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 {
		return nil, errors.New("openai: empty image data")
	}

	data := resp.Data[0]
	if data.B64JSON != "" {
		decoded, err := base64.StdEncoding.DecodeString(data.B64JSON)
		if err != nil {
			return nil, fmt.Errorf("decoding image payload: %w", err)
		}
		return decoded, nil
	}
	if data.URL != "" {
		return o.download(ctx, data.URL)
	}
	return nil, errors.New("openai: image response carries neither data nor url")
}

func (o *OpenAI) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating image request: %w", err)
	}
	if o.userAgent != "" {
		req.Header.Set("User-Agent", o.userAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, o.httpClient, req, o.maxRetries)
	if err != nil {
		return nil, fmt.Errorf("downloading image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("downloading image: HTTP %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
