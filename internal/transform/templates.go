package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/jptax/internal/domain"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// TemplateRegistry manages built-in what-if templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []InputTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}

// List returns all registered template names, sorted
func (tr *TemplateRegistry) List() []string {
	names := lo.Keys(tr.templates)
	sort.Strings(names)
	return names
}

// CreateBuiltInTemplates creates a registry with common household what-ifs
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	// iDeCo
	registry.Register(Template{
		Name:        "ideco_12k",
		Description: "Contribute 12,000 yen per month to iDeCo",
		Transforms:  []InputTransform{&SetPensionContribution{Monthly: decimal.NewFromInt(12000)}},
	})
	registry.Register(Template{
		Name:        "ideco_23k",
		Description: "Contribute 23,000 yen per month to iDeCo (company employee cap)",
		Transforms:  []InputTransform{&SetPensionContribution{Monthly: decimal.NewFromInt(23000)}},
	})

	// Furusato nozei
	registry.Register(Template{
		Name:        "donate_30k",
		Description: "Donate 30,000 yen through furusato nozei",
		Transforms:  []InputTransform{&SetDonation{Amount: decimal.NewFromInt(30000)}},
	})
	registry.Register(Template{
		Name:        "donate_50k",
		Description: "Donate 50,000 yen through furusato nozei",
		Transforms:  []InputTransform{&SetDonation{Amount: decimal.NewFromInt(50000)}},
	})

	// Family
	registry.Register(Template{
		Name:        "add_spouse",
		Description: "Claim the spouse deduction",
		Transforms:  []InputTransform{&SetSpouse{HasSpouse: true}},
	})
	registry.Register(Template{
		Name:        "add_general_dependent",
		Description: "Add one general dependent (ages 16-18 or 23-69)",
		Transforms:  []InputTransform{&AdjustDependents{General: 1}},
	})
	registry.Register(Template{
		Name:        "add_specific_dependent",
		Description: "Add one specific dependent (ages 19-22)",
		Transforms:  []InputTransform{&AdjustDependents{Specific: 1}},
	})

	// Income
	registry.Register(Template{
		Name:        "raise_10pct",
		Description: "Gross salary up 10%",
		Transforms:  []InputTransform{&AdjustGrossIncome{Percent: decimal.NewFromInt(10)}},
	})

	// Combination
	registry.Register(Template{
		Name:        "max_savings",
		Description: "iDeCo at 23,000 yen per month plus a 50,000 yen donation",
		Transforms: []InputTransform{
			&SetPensionContribution{Monthly: decimal.NewFromInt(23000)},
			&SetDonation{Amount: decimal.NewFromInt(50000)},
		},
	})

	return registry
}

// ApplyTemplate applies a template to base inputs
func ApplyTemplate(base domain.TaxInputs, template Template) (domain.TaxInputs, error) {
	return ApplyTransforms(base, template.Transforms)
}

// ParseTemplateList parses a comma-separated list of template names
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}
	return lo.Filter(lo.Map(strings.Split(templateList, ","), func(s string, _ int) string {
		return strings.TrimSpace(s)
	}), func(s string, _ int) bool {
		return s != ""
	})
}

// GetTemplateHelp returns formatted help text for all templates
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	var sb strings.Builder
	sb.WriteString("Available Templates:\n\n")
	for _, name := range registry.List() {
		t := registry.templates[name]
		sb.WriteString(fmt.Sprintf("  %-26s %s\n", t.Name, t.Description))
	}
	sb.WriteString("\nUsage:\n")
	sb.WriteString("  jptax compare household.yaml --with ideco_23k,donate_50k\n")
	return sb.String()
}
