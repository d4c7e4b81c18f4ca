package recommend

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/tmc/langchaingo/llms"
)

// MockLLM is a mock implementation of the llms.Model interface
type MockLLM struct {
	mock.Mock
}

func (m *MockLLM) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

func (m *MockLLM) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	args := m.Called(ctx, messages)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*llms.ContentResponse), args.Error(1)
}

func textResponse(content string) *llms.ContentResponse {
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: content}},
	}
}

func TestParseSuggestions(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     []string
	}{
		{"plain list", "Bread, Butter, Jam", []string{"Bread", "Butter", "Jam"}},
		{"trims whitespace and periods", " Bread ,  Butter. ", []string{"Bread", "Butter"}},
		{"caps at three", "A, B, C, D, E", []string{"A", "B", "C"}},
		{"empty response", "", nil},
		{"only separators", ", ,", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseSuggestions(tt.response))
		})
	}
}

func TestAgentRecommenderSuggest(t *testing.T) {
	t.Run("parses model output", func(t *testing.T) {
		mockLLM := new(MockLLM)
		mockLLM.On("GenerateContent", mock.Anything, mock.Anything).
			Return(textResponse("Cereal, Oatmeal, Cookies"), nil)

		rec := NewAgentRecommender(mockLLM, time.Second)
		got, err := rec.Suggest(context.Background(), "Milk")

		assert.NoError(t, err)
		assert.Equal(t, []string{"Cereal", "Oatmeal", "Cookies"}, got)
		mockLLM.AssertExpectations(t)
	})

	t.Run("model failure surfaces as error", func(t *testing.T) {
		mockLLM := new(MockLLM)
		mockLLM.On("GenerateContent", mock.Anything, mock.Anything).
			Return(nil, errors.New("rate limited"))

		rec := NewAgentRecommender(mockLLM, time.Second)
		_, err := rec.Suggest(context.Background(), "Milk")

		assert.Error(t, err)
	})

	t.Run("empty choices degrade to nothing", func(t *testing.T) {
		mockLLM := new(MockLLM)
		mockLLM.On("GenerateContent", mock.Anything, mock.Anything).
			Return(&llms.ContentResponse{}, nil)

		rec := NewAgentRecommender(mockLLM, time.Second)
		got, err := rec.Suggest(context.Background(), "Milk")

		assert.NoError(t, err)
		assert.Empty(t, got)
	})
}

type scriptedRecommender struct {
	responses map[string][]string
	errs      map[string]error
}

func (s *scriptedRecommender) Suggest(ctx context.Context, itemName string) ([]string, error) {
	if err, ok := s.errs[itemName]; ok {
		return nil, err
	}
	return s.responses[itemName], nil
}

func TestSuggestAll(t *testing.T) {
	rec := &scriptedRecommender{
		responses: map[string][]string{
			"Milk":  {"Cereal", "Oatmeal"},
			"Bread": {"Butter"},
		},
		errs: map[string]error{
			"Eggs": errors.New("timeout"),
		},
	}

	results := SuggestAll(context.Background(), rec, []string{"Milk", "Bread", "Eggs"}, 2)

	assert.Len(t, results, 3)
	assert.Equal(t, []string{"Cereal", "Oatmeal"}, results["Milk"])
	assert.Equal(t, []string{"Butter"}, results["Bread"])
	assert.Equal(t, []string{}, results["Eggs"])
}

func TestSuggestAllEmptyInput(t *testing.T) {
	results := SuggestAll(context.Background(), NoopRecommender{}, nil, 2)
	assert.Empty(t, results)
}
