package ai

import (
	"context"
	"errors"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"github.com/openai/openai-go/v2/shared"
	"go.uber.org/zap"

	"aurelialuxe.com/boutique/pkg/logging"
)

// ErrEmptyResponse is wrapped when the model returns no content
var ErrEmptyResponse = errors.New("empty completion")

// Message is one chat message sent to the model. ImageURL, when set, attaches
// an image (usually a data URL) to a user message.
type Message struct {
	Role     Role
	Text     string
	ImageURL string
}

// CompletionRequest describes a single chat completion call
type CompletionRequest struct {
	System      string
	Messages    []Message
	Temperature float64
	TopP        float64
	MaxTokens   int64
	JSON        bool
}

// Completer turns a conversation into a single model reply
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// OpenAICompleter calls an OpenAI compatible chat completions endpoint (Azure OpenAI included)
type OpenAICompleter struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

// NewOpenAICompleter returns nil when the endpoint or key is missing, which disables the AI features
func NewOpenAICompleter(endpoint, apiKey, model string, logger *zap.Logger) *OpenAICompleter {
	logger = logging.OrNop(logger).Named("ai")
	if endpoint == "" || apiKey == "" {
		logger.Info("AI service disabled - Azure OpenAI credentials not provided")
		return nil
	}
	if model == "" {
		model = "gpt-4o-mini"
	}

	clientValue := openai.NewClient(
		option.WithBaseURL(endpoint),
		option.WithAPIKey(apiKey),
	)
	logger.Info("AI service initialized", zap.String("model", model))
	return &OpenAICompleter{client: &clientValue, model: model, logger: logger}
}

func (c *OpenAICompleter) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(c.model),
		Messages: buildMessages(req),
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(req.MaxTokens)
	}
	if req.Temperature > 0 {
		params.Temperature = openai.Float(req.Temperature)
	}
	if req.TopP > 0 {
		params.TopP = openai.Float(req.TopP)
	}
	if req.JSON {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		}
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		c.logger.Warn("AI API error", zap.Error(err))
		return "", &AIError{Message: "Failed to generate AI response", Cause: err}
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", &AIError{Message: "AI returned empty response", Cause: ErrEmptyResponse}
	}

	return resp.Choices[0].Message.Content, nil
}

func buildMessages(req CompletionRequest) []openai.ChatCompletionMessageParamUnion {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Messages)+1)
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessageParamUnion{
			OfSystem: &openai.ChatCompletionSystemMessageParam{
				Content: openai.ChatCompletionSystemMessageParamContentUnion{
					OfString: openai.String(req.System),
				},
			},
		})
	}

	for _, m := range req.Messages {
		switch {
		case m.Role == RoleAssistant:
			messages = append(messages, openai.ChatCompletionMessageParamUnion{
				OfAssistant: &openai.ChatCompletionAssistantMessageParam{
					Content: openai.ChatCompletionAssistantMessageParamContentUnion{
						OfString: openai.String(m.Text),
					},
				},
			})
		case m.ImageURL != "":
			messages = append(messages, openai.ChatCompletionMessageParamUnion{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfArrayOfContentParts: []openai.ChatCompletionContentPartUnionParam{
							{OfText: &openai.ChatCompletionContentPartTextParam{Text: m.Text}},
							{OfImageURL: &openai.ChatCompletionContentPartImageParam{
								ImageURL: openai.ChatCompletionContentPartImageImageURLParam{URL: m.ImageURL},
							}},
						},
					},
				},
			})
		default:
			messages = append(messages, openai.ChatCompletionMessageParamUnion{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfString: openai.String(m.Text),
					},
				},
			})
		}
	}
	return messages
}

// AIError represents an AI service error
type AIError struct {
	Message string
	Cause   error
}

func (e *AIError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *AIError) Unwrap() error {
	return e.Cause
}
