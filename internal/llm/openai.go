package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// OpenAIClient calls a deployment-scoped Chat Completions endpoint.
// The endpoint URL, deployment name, and API version come from
// configuration; authentication is delegated to a Credential.
type OpenAIClient struct {
	deployment string
	cred       Credential
	client     *openai.Client
}

const (
	defaultChatTimeout  = 30 * time.Second
	chatTemperature     = 0.4
	chatMaxTokens       = 400
	chatTopP            = 1.0
	chatFrequencyPenalty = 0.0
	chatPresencePenalty = 0.0
)

// NewOpenAIClient builds a client against {endpoint}/openai/deployments/{deployment}.
func NewOpenAIClient(endpoint, deployment, apiVersion string, cred Credential) (*OpenAIClient, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("endpoint required")
	}
	if deployment == "" {
		return nil, fmt.Errorf("deployment required")
	}
	if cred == nil {
		return nil, fmt.Errorf("credential required")
	}
	base := strings.TrimSuffix(endpoint, "/") + "/openai/deployments/" + deployment + "/"
	cli := openai.NewClient(
		option.WithBaseURL(base),
		option.WithQuery("api-version", apiVersion),
		// One attempt per summarization call; failures degrade upstream.
		option.WithMaxRetries(0),
	)
	return &OpenAIClient{
		deployment: deployment,
		cred:       cred,
		client:     &cli,
	}, nil
}

func (c *OpenAIClient) Complete(ctx context.Context, system, user string) (string, error) {
	if c == nil || c.client == nil {
		return "", fmt.Errorf("nil openai client")
	}
	reqCtx, cancel := context.WithTimeout(ctx, defaultChatTimeout)
	defer cancel()

	name, value, err := c.cred.Header(reqCtx)
	if err != nil {
		return "", &TransportError{Err: err}
	}

	resp, err := c.client.Chat.Completions.New(reqCtx, openai.ChatCompletionNewParams{
		Model:            openai.ChatModel(c.deployment),
		Messages:         buildMessages(system, user),
		Temperature:      openai.Float(chatTemperature),
		MaxTokens:        openai.Int(chatMaxTokens),
		TopP:             openai.Float(chatTopP),
		FrequencyPenalty: openai.Float(chatFrequencyPenalty),
		PresencePenalty:  openai.Float(chatPresencePenalty),
	}, option.WithHeader(name, value))
	if err != nil {
		var apierr *openai.Error
		if errors.As(err, &apierr) {
			return "", &CompletionError{StatusCode: apierr.StatusCode, Body: apierr.RawJSON()}
		}
		return "", &TransportError{Err: err}
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", &CompletionError{StatusCode: 200, Body: "no choices returned"}
	}
	return resp.Choices[0].Message.Content, nil
}

func buildMessages(system, user string) []openai.ChatCompletionMessageParamUnion {
	return []openai.ChatCompletionMessageParamUnion{
		{
			OfSystem: &openai.ChatCompletionSystemMessageParam{
				Content: openai.ChatCompletionSystemMessageParamContentUnion{
					OfString: openai.String(system),
				},
			},
		},
		{
			OfUser: &openai.ChatCompletionUserMessageParam{
				Content: openai.ChatCompletionUserMessageParamContentUnion{
					OfString: openai.String(user),
				},
			},
		},
	}
}
