package openai

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

type ChatClient struct {
	client *openai.Client
	model  string
}

func NewChatClient(apiKey, model string) *ChatClient {
	return &ChatClient{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

// GenerateAnswer asks the chat model to answer a question grounded in
// the retrieved study material context.
func (c *ChatClient) GenerateAnswer(
	ctx context.Context,
	query string,
	context string,
) (string, error) {
	systemPrompt := `You are a study assistant that answers questions using the student's uploaded course materials.

Instructions:
1. Answer ONLY from the provided context.
2. If the context does not contain the answer, say "I couldn't find that in your study materials."
3. Keep answers clear, concise and well structured.`

	userPrompt := fmt.Sprintf(`Based on the following study materials:

%s

Question: %s

Answer:`, context, query)

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: userPrompt,
			},
		},
		Temperature: 0.7,
		MaxTokens:   700,
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate answer: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}

	return resp.Choices[0].Message.Content, nil
}
