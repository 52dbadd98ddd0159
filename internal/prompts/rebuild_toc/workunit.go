package rebuild_toc

import (
	"encoding/json"

	"github.com/stratadocs/strata/internal/providers"
)

// Input contains the scrambled region text for reconstruction.
type Input struct {
	RegionText string
}

// CreateRequest builds the reconstruction chat request.
func CreateRequest(input Input) *providers.ChatRequest {
	return &providers.ChatRequest{
		Messages: []providers.Message{
			{Role: "system", Content: SystemPrompt},
			{Role: "user", Content: BuildUserPrompt(input.RegionText)},
		},
		ResponseFormat: buildResponseFormat(),
		Temperature:    0.1,
		MaxTokens:      8192,
	}
}

// ParseResult parses the model's JSON payload into a Result.
func ParseResult(parsedJSON json.RawMessage) (*Result, error) {
	var result Result
	if err := json.Unmarshal(parsedJSON, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func buildResponseFormat() *providers.ResponseFormat {
	jsonSchema, _ := json.Marshal(ReconstructionSchema["json_schema"])
	return &providers.ResponseFormat{
		Type:       "json_schema",
		JSONSchema: jsonSchema,
	}
}
