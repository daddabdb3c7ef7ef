package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leofalp/sportsintel/core/briefing"
	"github.com/leofalp/sportsintel/core/client"
	"github.com/leofalp/sportsintel/core/client/middleware"
	"github.com/leofalp/sportsintel/internal/config"
	"github.com/leofalp/sportsintel/internal/render"
	"github.com/leofalp/sportsintel/providers/ai"
	"github.com/leofalp/sportsintel/providers/ai/gemini"
	"github.com/leofalp/sportsintel/providers/ai/openai"
	"github.com/leofalp/sportsintel/providers/observability"
)

const defaultQuery = "the biggest sports stories of the last 24 hours"

var briefCmd = &cobra.Command{
	Use:   "brief [query]",
	Short: "Stream a sports briefing",
	Long: `Stream a sports briefing for query, or for the day's top stories when no
query is given. Progress is shown on stderr while the answer streams; the
finished briefing goes to stdout.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.TrimSpace(strings.Join(args, " "))
		if query == "" {
			query = defaultQuery
		}

		c, err := newClient(cfg, observer)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		return runBriefing(ctx, briefing.New(c, briefing.WithObserver(observer)), query, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

func init() {
	briefCmd.Flags().StringVar(&providerName, "provider", "", "LLM provider: gemini or openai")
	briefCmd.Flags().StringVar(&modelName, "model", "", "model name (default depends on provider)")
	briefCmd.Flags().BoolVar(&noSearch, "no-search", false, "disable hosted web search")
	briefCmd.Flags().DurationVar(&timeout, "timeout", 0, "overall timeout, e.g. 90s (0 = none)")
}

func runBriefing(ctx context.Context, session *briefing.Session, query string, stdout, stderr io.Writer) error {
	status := render.New(stderr)
	sink := briefing.SinkFunc(func(update briefing.Update) {
		status.Status("streaming: %d events, %d bytes", len(update.Response.Events), update.BufferLength)
	})

	status.Status("searching: %s", query)
	response, err := session.Run(ctx, query, sink)
	status.ClearStatus()
	if errors.Is(err, briefing.ErrIncompleteResponse) && !jsonOutput {
		if partial := session.Latest(); partial != nil {
			fmt.Fprintln(stderr, "showing partial results")
			if renderErr := render.New(stdout).Briefing(partial); renderErr != nil {
				return renderErr
			}
		}
	}
	if err != nil {
		return err
	}

	if jsonOutput {
		return writeJSON(stdout, response)
	}
	return render.New(stdout).Briefing(response)
}

// newClient builds the provider and client described by c.
func newClient(c *config.Config, observer observability.Provider) (*client.Client, error) {
	provider, defaultModel, err := newProvider(c)
	if err != nil {
		return nil, err
	}

	model := c.Model
	if model == "" {
		model = defaultModel
	}

	opts := []client.Option{
		client.WithDefaultModel(model),
		client.WithSystemPrompt(briefing.SystemPrompt),
		client.WithWebSearch(c.WebSearch),
	}
	if c.MaxOutputTokens > 0 {
		opts = append(opts, client.WithGenerationConfig(&ai.GenerationConfig{MaxOutputTokens: c.MaxOutputTokens}))
	}
	if observer != nil {
		opts = append(opts, client.WithObserver(observer))
	}
	if c.Timeout > 0 {
		opts = append(opts, client.WithMiddleware(middleware.NewTimeoutMiddleware(c.Timeout)))
	}
	return client.New(provider, opts...)
}

func newProvider(c *config.Config) (ai.Provider, string, error) {
	switch c.Provider {
	case config.ProviderGemini:
		provider := gemini.New()
		if c.GeminiBaseURL != "" {
			provider.WithBaseURL(c.GeminiBaseURL)
		}
		return provider, gemini.DefaultModel, nil
	case config.ProviderOpenAI:
		provider := openai.New()
		if c.OpenAIBaseURL != "" {
			provider.WithBaseURL(c.OpenAIBaseURL)
		}
		return provider, openai.DefaultModel, nil
	default:
		return nil, "", fmt.Errorf("unknown provider %q", c.Provider)
	}
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
