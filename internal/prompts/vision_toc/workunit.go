package vision_toc

import (
	"github.com/stratadocs/strata/internal/providers"
)

// Input contains the data for one vision transcription request.
type Input struct {
	PageNum   int
	PageImage []byte
}

// CreateRequest builds the chat request for a single TOC page image.
func CreateRequest(input Input) *providers.ChatRequest {
	return &providers.ChatRequest{
		Messages: []providers.Message{
			{Role: "system", Content: SystemPrompt},
			{
				Role:    "user",
				Content: BuildUserPrompt(input.PageNum),
				Images:  [][]byte{input.PageImage},
			},
		},
		Temperature: 0.1,
		MaxTokens:   4096,
	}
}
