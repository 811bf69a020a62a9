package grader

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/dabin/mathmission/internal/logger"
	"github.com/dabin/mathmission/internal/models"
)

const systemPrompt = `You are a math teacher grading a student's handwritten answer that has been transcribed to text. Grade strictly but award partial credit for correct steps. Respond with a single JSON object and nothing else.`

const scoringPromptTemplate = `Problem:
%s

Reference solution:
%s

Student answer:
%s

Grade the answer on these criteria:
1. Whether the final answer is correct
2. Whether each step of the working is logically valid
3. Correct use of the underlying concepts and formulas
4. Any mistakes and their likely cause
5. Partial credit for correct portions

Respond with JSON in exactly this shape:
{
  "score": <integer 0-100>,
  "is_correct": <true|false>,
  "concept_understanding": ["<concept the student used correctly>", ...],
  "mistakes_detected": ["<mistake>", ...],
  "feedback": "<overall feedback for the student>",
  "suggestions": ["<what to practice next>", ...]
}`

// OpenAIGrader implements Grader against any OpenAI-compatible chat
// completion API.
type OpenAIGrader struct {
	client *openai.Client
	model  string
	log    *logger.Logger
}

type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

// NewOpenAIGrader creates a grader backed by the configured API.
func NewOpenAIGrader(cfg OpenAIConfig) (*OpenAIGrader, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("grader API key is required")
	}

	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	return &OpenAIGrader{
		client: openai.NewClientWithConfig(config),
		model:  cfg.Model,
		log:    logger.Default().WithPrefix("grader"),
	}, nil
}

func (g *OpenAIGrader) Grade(ctx context.Context, problem models.Problem, answerText string) (*Result, error) {
	log := logger.FromContext(ctx).WithPrefix("grader").WithField("problem_id", problem.ID)
	log.Debug("grading answer: %d chars", len(answerText))
	start := time.Now()

	solution := problem.Solution
	if solution == "" {
		solution = "not provided"
	}
	prompt := fmt.Sprintf(scoringPromptTemplate, problem.Content, solution, answerText)

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: 0,
	})
	if err != nil {
		log.Error("grading request failed after %v: %v", time.Since(start), err)
		return nil, fmt.Errorf("grading request: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("grading response contained no choices")
	}

	result, err := parseResult(resp.Choices[0].Message.Content)
	if err != nil {
		log.Error("failed to parse grading response: %v", err)
		return nil, err
	}

	log.Info("answer graded in %v: score=%d", time.Since(start), result.Score)
	return result, nil
}

// parseResult decodes the model output, tolerating stray prose around
// the JSON object.
func parseResult(content string) (*Result, error) {
	raw := content
	if start := strings.Index(raw, "{"); start >= 0 {
		if end := strings.LastIndex(raw, "}"); end > start {
			raw = raw[start : end+1]
		}
	}

	var result Result
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, fmt.Errorf("decode grading result: %w", err)
	}

	if result.Score < 0 {
		result.Score = 0
	}
	if result.Score > 100 {
		result.Score = 100
	}
	return &result, nil
}
