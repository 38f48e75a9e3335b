// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package openai

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/poiesic/kgraph/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// GraphExtractor implements ai.GraphExtractor using OpenAI-compatible chat APIs.
type GraphExtractor struct {
	client      llms.Model
	minStrength int
	logger      *slog.Logger
}

// entity and relation are internal types used for JSON unmarshaling.
// They match the structure expected from the LLM.
type entity struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

type relation struct {
	Source      string `json:"source"`
	Target      string `json:"target"`
	Description string `json:"description"`
	Strength    int    `json:"strength"`
}

// extraction is the wrapper structure for the LLM's JSON response.
type extraction struct {
	Entities  []entity   `json:"entities"`
	Relations []relation `json:"relations"`
}

// newGraphExtractor is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newGraphExtractor(config *ai.Config) (*GraphExtractor, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.CompletionHost),
		openai.WithToken(config.APIKey),
		openai.WithModel(config.CompletionModel),
	)
	if err != nil {
		return nil, err
	}

	return &GraphExtractor{
		client:      client,
		minStrength: config.MinStrength,
		logger:      slog.Default().With("component", "openai-extractor"),
	}, nil
}

// NewGraphExtractor creates a new graph extractor using the provided configuration.
//
// Returns ai.GraphExtractor interface to enforce abstraction.
func NewGraphExtractor(config *ai.Config) (ai.GraphExtractor, error) {
	return newGraphExtractor(config)
}

// ExtractGraph extracts entities and relations from text using an LLM.
// Relations below the configured minimum strength are filtered out, as are
// relations whose endpoints don't appear among the extracted entities.
func (e *GraphExtractor) ExtractGraph(ctx context.Context, text string) (*ai.ExtractedGraph, error) {
	content := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(buildExtractionPrompt())},
		},
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(text)},
		},
	}

	// Try up to 3 times in case of malformed JSON
	var result extraction
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		response, err := e.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
		if err != nil {
			e.logger.Error("failed to generate content", "attempt", attempt+1, "err", err)
			return nil, err
		}

		if len(response.Choices) < 1 {
			e.logger.Debug("no choices returned from model")
			return &ai.ExtractedGraph{}, nil
		}

		if err := json.Unmarshal([]byte(stripCodeFences(response.Choices[0].Content)), &result); err != nil {
			lastErr = err
			e.logger.Warn("error parsing extraction response",
				"attempt", attempt+1,
				"err", err)
			continue
		}

		lastErr = nil
		break
	}

	if lastErr != nil {
		e.logger.Error("failed to parse extraction response after retries", "err", lastErr)
		return nil, lastErr
	}

	graph := &ai.ExtractedGraph{
		Entities:  make([]ai.ExtractedEntity, 0, len(result.Entities)),
		Relations: make([]ai.ExtractedRelation, 0, len(result.Relations)),
	}

	known := make(map[string]bool, len(result.Entities))
	for _, ent := range result.Entities {
		name := strings.ToLower(strings.TrimSpace(ent.Name))
		if name == "" {
			continue
		}
		known[name] = true
		graph.Entities = append(graph.Entities, ai.ExtractedEntity{
			Name:        name,
			Type:        strings.ReplaceAll(ent.Type, " ", "_"),
			Description: strings.TrimSpace(ent.Description),
		})
	}

	for _, rel := range result.Relations {
		source := strings.ToLower(strings.TrimSpace(rel.Source))
		target := strings.ToLower(strings.TrimSpace(rel.Target))
		if !known[source] || !known[target] || source == target {
			e.logger.Debug("dropping relation with unknown endpoint", "source", source, "target", target)
			continue
		}
		if rel.Strength < e.minStrength {
			continue
		}
		graph.Relations = append(graph.Relations, ai.ExtractedRelation{
			Source:      source,
			Target:      target,
			Description: strings.TrimSpace(rel.Description),
			Strength:    rel.Strength,
		})
	}

	e.logger.Debug("extracted graph",
		"entities", len(graph.Entities),
		"relations", len(graph.Relations))

	return graph, nil
}

// stripCodeFences removes markdown code fences some models wrap around JSON.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
