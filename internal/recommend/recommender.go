// Package recommend provides the similar-product suggestion capability.
// Suggestions come from an LLM and are treated as an opaque, possibly-empty,
// possibly-unrelated external contribution: callers must tolerate failures,
// duplicates and nonsense, and a failed call always degrades to an empty list.
package recommend

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/llms"
	"golang.org/x/sync/errgroup"
)

// MaxSuggestions caps how many related item names a single call may return.
const MaxSuggestions = 3

// Recommender answers "given an item name, what 0-3 related items are usually
// bought with it?". Implementations may be slow or fail; callers own the
// degradation policy.
type Recommender interface {
	Suggest(ctx context.Context, itemName string) ([]string, error)
}

// AgentRecommender asks an LLM for complementary products. It is constructed
// once at process start and passed to whoever needs it; there is no hidden
// lazily-initialized global.
type AgentRecommender struct {
	model   llms.Model
	timeout time.Duration
}

func NewAgentRecommender(model llms.Model, timeout time.Duration) *AgentRecommender {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &AgentRecommender{model: model, timeout: timeout}
}

func (r *AgentRecommender) Suggest(ctx context.Context, itemName string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	prompt := fmt.Sprintf(
		"Suggest 2-3 similar products or complementary items for %s that people often buy together. "+
			"Only list the item names, separated by commas.", itemName)

	resp, err := r.model.GenerateContent(ctx, []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
	}, llms.WithMaxTokens(128))
	if err != nil {
		return nil, fmt.Errorf("suggestion call failed for %q: %w", itemName, err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return nil, nil
	}

	return ParseSuggestions(resp.Choices[0].Content), nil
}

// ParseSuggestions splits a comma-separated model response into at most
// MaxSuggestions cleaned item names.
func ParseSuggestions(response string) []string {
	var out []string
	for _, part := range strings.Split(response, ",") {
		name := strings.TrimSpace(part)
		name = strings.Trim(name, ".")
		if name == "" {
			continue
		}
		out = append(out, name)
		if len(out) == MaxSuggestions {
			break
		}
	}
	return out
}

// NoopRecommender is used when no AI endpoint is configured. Every call
// resolves to an empty suggestion list.
type NoopRecommender struct{}

func (NoopRecommender) Suggest(ctx context.Context, itemName string) ([]string, error) {
	return nil, nil
}

// SuggestAll fans out one Suggest call per distinct item name, at most
// maxParallel at a time. The calls are independent: a failure or timeout of
// one resolves to an empty list for that item, logged but never raised, and
// does not abort the others. The returned map has an entry for every name.
func SuggestAll(ctx context.Context, rec Recommender, names []string, maxParallel int) map[string][]string {
	results := make(map[string][]string, len(names))
	if len(names) == 0 {
		return results
	}

	var mu sync.Mutex
	g := new(errgroup.Group)
	if maxParallel > 0 {
		g.SetLimit(maxParallel)
	}

	for _, name := range names {
		g.Go(func() error {
			suggestions, err := rec.Suggest(ctx, name)
			if err != nil {
				log.Warn().Err(err).Str("item", name).Msg("recommendation degraded to empty")
				suggestions = []string{}
			}
			if suggestions == nil {
				suggestions = []string{}
			}
			mu.Lock()
			results[name] = suggestions
			mu.Unlock()
			return nil
		})
	}

	_ = g.Wait()
	return results
}
