// Package catalog provides the AI service catalog: vendor offerings with
// their API model pricing and subscription plans, backed by SQLite.
package catalog

// Model is a priced API capability. Prices are currency per 1000 units.
type Model struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	InputPrice    float64 `json:"inputPrice"`
	OutputPrice   float64 `json:"outputPrice"`
	ContextWindow int     `json:"contextWindow"`
}

// Plan is a subscription tier. YearlyPrice 0 means no yearly option.
type Plan struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	MonthlyPrice float64 `json:"monthlyPrice"`
	YearlyPrice  float64 `json:"yearlyPrice"`
}

// Service is a vendor offering bundling API models and subscription plans.
type Service struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Provider        string  `json:"provider"`
	Description     string  `json:"description"`
	LogoPath        string  `json:"logoPath"`
	PlanPricingURL  string  `json:"planPricingUrl"`
	ModelPricingURL string  `json:"modelPricingUrl"`
	Models          []Model `json:"models"`
	Plans           []Plan  `json:"plans"`
}

// Summary is the list-view shape of a service, without models and plans.
type Summary struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Provider        string `json:"provider"`
	Description     string `json:"description"`
	LogoPath        string `json:"logoPath"`
	PlanPricingURL  string `json:"planPricingUrl"`
	ModelPricingURL string `json:"modelPricingUrl"`
}

// Summary returns the list-view shape of the service.
func (s *Service) Summary() Summary {
	return Summary{
		ID:              s.ID,
		Name:            s.Name,
		Provider:        s.Provider,
		Description:     s.Description,
		LogoPath:        s.LogoPath,
		PlanPricingURL:  s.PlanPricingURL,
		ModelPricingURL: s.ModelPricingURL,
	}
}

// Model returns the model with the given id, or nil.
func (s *Service) Model(id string) *Model {
	for i := range s.Models {
		if s.Models[i].ID == id {
			return &s.Models[i]
		}
	}
	return nil
}

// Plan returns the plan with the given id, or nil.
func (s *Service) Plan(id string) *Plan {
	for i := range s.Plans {
		if s.Plans[i].ID == id {
			return &s.Plans[i]
		}
	}
	return nil
}
