package grader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResult(t *testing.T) {
	result, err := parseResult(`{
		"score": 85,
		"is_correct": true,
		"concept_understanding": ["arithmetic sums"],
		"mistakes_detected": [],
		"feedback": "Well reasoned.",
		"suggestions": ["try harder variants"]
	}`)
	require.NoError(t, err)
	assert.Equal(t, 85, result.Score)
	assert.True(t, result.IsCorrect)
	assert.Equal(t, []string{"arithmetic sums"}, result.Concepts)
	assert.Equal(t, "Well reasoned.", result.Feedback)
}

func TestParseResult_StrayProse(t *testing.T) {
	// Models sometimes wrap the object in prose or code fences.
	result, err := parseResult("Here is the grading:\n```json\n{\"score\": 40, \"feedback\": \"partial\"}\n```")
	require.NoError(t, err)
	assert.Equal(t, 40, result.Score)
	assert.Equal(t, "partial", result.Feedback)
}

func TestParseResult_ClampsScore(t *testing.T) {
	result, err := parseResult(`{"score": 150}`)
	require.NoError(t, err)
	assert.Equal(t, 100, result.Score)

	result, err = parseResult(`{"score": -10}`)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Score)
}

func TestParseResult_Malformed(t *testing.T) {
	_, err := parseResult("the model refused to answer")
	require.Error(t, err)
}

func TestNewOpenAIGrader_RequiresKey(t *testing.T) {
	_, err := NewOpenAIGrader(OpenAIConfig{})
	require.Error(t, err)

	g, err := NewOpenAIGrader(OpenAIConfig{APIKey: "test-key", Model: "gpt-4o-mini"})
	require.NoError(t, err)
	assert.NotNil(t, g)
}
