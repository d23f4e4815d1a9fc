package catalog

import (
	"context"
	"fmt"
	"strings"
)

func providerKey(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")
}

// builtin is the illustrative starter catalog. Prices are not
// authoritative; the tool compares, it does not bill.
var builtin = []Service{
	{
		ID:              "openai",
		Name:            "ChatGPT",
		Provider:        "OpenAI",
		Description:     "General-purpose assistant built on advanced language models",
		LogoPath:        "/images/logos/chatgpt.png",
		PlanPricingURL:  "https://openai.com/chatgpt/pricing",
		ModelPricingURL: "https://openai.com/api/pricing",
		Models: []Model{
			{ID: "gpt-3.5-turbo", Name: "GPT-3.5 Turbo", InputPrice: 0.0015, OutputPrice: 0.002, ContextWindow: 4096},
			{ID: "gpt-4", Name: "GPT-4", InputPrice: 0.03, OutputPrice: 0.06, ContextWindow: 8192},
		},
		Plans: []Plan{
			{ID: "basic", Name: "Basic", MonthlyPrice: 20, YearlyPrice: 200},
			{ID: "pro", Name: "Pro", MonthlyPrice: 50, YearlyPrice: 500},
			{ID: "team", Name: "Team", MonthlyPrice: 100, YearlyPrice: 1000},
		},
	},
	{
		ID:              "anthropic",
		Name:            "Claude",
		Provider:        "Anthropic",
		Description:     "Language models focused on safe and steerable behaviour",
		LogoPath:        "/images/logos/claude.png",
		PlanPricingURL:  "https://www.anthropic.com/pricing",
		ModelPricingURL: "https://www.anthropic.com/api",
		Models: []Model{
			{ID: "claude-2", Name: "Claude 2", InputPrice: 0.01102, OutputPrice: 0.03268, ContextWindow: 100000},
		},
		Plans: []Plan{
			{ID: "standard", Name: "Standard", MonthlyPrice: 30, YearlyPrice: 300},
			{ID: "enterprise", Name: "Enterprise", MonthlyPrice: 200, YearlyPrice: 2000},
		},
	},
	{
		ID:              "google",
		Name:            "Gemini",
		Provider:        "Google",
		Description:     "Multimodal models from Google DeepMind",
		LogoPath:        "/images/logos/gemini.png",
		PlanPricingURL:  "https://one.google.com/about/ai-premium",
		ModelPricingURL: "https://ai.google.dev/pricing",
		Models: []Model{
			{ID: "gemini-pro", Name: "Gemini Pro", InputPrice: 0.00025, OutputPrice: 0.0005, ContextWindow: 32768},
		},
		Plans: []Plan{
			{ID: "starter", Name: "Starter", MonthlyPrice: 15, YearlyPrice: 150},
			{ID: "advanced", Name: "Advanced", MonthlyPrice: 40, YearlyPrice: 400},
		},
	},
}

// Seed inserts or replaces the built-in catalog. Safe to run repeatedly.
func (s *Store) Seed(ctx context.Context) error {
	for i := range builtin {
		if err := s.PutService(ctx, &builtin[i]); err != nil {
			return fmt.Errorf("seed %s: %w", builtin[i].ID, err)
		}
	}
	return nil
}
