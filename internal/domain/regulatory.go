package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// RuleSet contains every statutory constant the engine uses for one tax year.
// Callers pick a rule set explicitly; nothing in the engine reads ambient state.
type RuleSet struct {
	Metadata        RuleMetadata        `yaml:"metadata" toml:"metadata" json:"metadata"`
	IncomeTax       IncomeTaxRules      `yaml:"income_tax" toml:"income_tax" json:"income_tax"`
	ResidentTax     ResidentTaxRules    `yaml:"resident_tax" toml:"resident_tax" json:"resident_tax"`
	Deductions      DeductionRules      `yaml:"deductions" toml:"deductions" json:"deductions"`
	SocialInsurance SocialInsuranceRule `yaml:"social_insurance" toml:"social_insurance" json:"social_insurance"`
	HousingLoan     HousingLoanRules    `yaml:"housing_loan" toml:"housing_loan" json:"housing_loan"`
	Donation        DonationRules       `yaml:"donation" toml:"donation" json:"donation"`
	OtherTaxes      OtherTaxRules       `yaml:"other_taxes" toml:"other_taxes" json:"other_taxes"`
}

// RuleMetadata describes where a rule set comes from
type RuleMetadata struct {
	TaxYear     int    `yaml:"tax_year" toml:"tax_year" json:"tax_year"`
	Description string `yaml:"description" toml:"description" json:"description"`
}

// TaxBracket is one tier of a quick-calculation table: amount*Rate - Deduction for
// amounts up to Max. The last tier of a table is unbounded whatever its Max.
type TaxBracket struct {
	Max       decimal.Decimal `yaml:"max" toml:"max" json:"max"`
	Rate      decimal.Decimal `yaml:"rate" toml:"rate" json:"rate"`
	Deduction decimal.Decimal `yaml:"deduction" toml:"deduction" json:"deduction"`
}

// LinearTier is one tier of a deduction step function: amount*Rate + Fixed for
// amounts up to Max. The last tier is unbounded.
type LinearTier struct {
	Max   decimal.Decimal `yaml:"max" toml:"max" json:"max"`
	Rate  decimal.Decimal `yaml:"rate" toml:"rate" json:"rate"`
	Fixed decimal.Decimal `yaml:"fixed" toml:"fixed" json:"fixed"`
}

// StepTier is one tier of a flat step function. The deduction is Amount for totals up
// to Max; totals above the last tier get zero.
type StepTier struct {
	Max    decimal.Decimal `yaml:"max" toml:"max" json:"max"`
	Amount decimal.Decimal `yaml:"amount" toml:"amount" json:"amount"`
}

// IncomeTaxRules holds the national income tax table
type IncomeTaxRules struct {
	Brackets []TaxBracket `yaml:"brackets" toml:"brackets" json:"brackets"`
	// SurtaxMultiplier is the reconstruction surtax applied after the bracket lookup (1.021).
	SurtaxMultiplier decimal.Decimal `yaml:"surtax_multiplier" toml:"surtax_multiplier" json:"surtax_multiplier"`
	// TaxableRounding is the unit taxable income is floored to.
	TaxableRounding decimal.Decimal `yaml:"taxable_rounding" toml:"taxable_rounding" json:"taxable_rounding"`
}

// ResidentTaxRules holds the flat municipal/prefectural tax parameters
type ResidentTaxRules struct {
	Rate                decimal.Decimal `yaml:"rate" toml:"rate" json:"rate"`
	PerCapitaLevy       decimal.Decimal `yaml:"per_capita_levy" toml:"per_capita_levy" json:"per_capita_levy"`
	AdjustmentDeduction decimal.Decimal `yaml:"adjustment_deduction" toml:"adjustment_deduction" json:"adjustment_deduction"`
	TaxableRounding     decimal.Decimal `yaml:"taxable_rounding" toml:"taxable_rounding" json:"taxable_rounding"`
}

// DeductionPair is a deduction with separate income tax and resident tax amounts.
type DeductionPair struct {
	Income   decimal.Decimal `yaml:"income" toml:"income" json:"income"`
	Resident decimal.Decimal `yaml:"resident" toml:"resident" json:"resident"`
}

// DeductionRules holds the income deduction tables
type DeductionRules struct {
	Employment          []LinearTier    `yaml:"employment" toml:"employment" json:"employment"`
	BasicIncome         []StepTier      `yaml:"basic_income" toml:"basic_income" json:"basic_income"`
	BasicResident       decimal.Decimal `yaml:"basic_resident" toml:"basic_resident" json:"basic_resident"`
	LifeInsuranceIncome []LinearTier    `yaml:"life_insurance_income" toml:"life_insurance_income" json:"life_insurance_income"`
	LifeInsuranceRes    []LinearTier    `yaml:"life_insurance_resident" toml:"life_insurance_resident" json:"life_insurance_resident"`

	EarthquakeIncomeCap    decimal.Decimal `yaml:"earthquake_income_cap" toml:"earthquake_income_cap" json:"earthquake_income_cap"`
	EarthquakeResidentCap  decimal.Decimal `yaml:"earthquake_resident_cap" toml:"earthquake_resident_cap" json:"earthquake_resident_cap"`
	EarthquakeResidentRate decimal.Decimal `yaml:"earthquake_resident_rate" toml:"earthquake_resident_rate" json:"earthquake_resident_rate"`

	MedicalFloorCap  decimal.Decimal `yaml:"medical_floor_cap" toml:"medical_floor_cap" json:"medical_floor_cap"`
	MedicalFloorRate decimal.Decimal `yaml:"medical_floor_rate" toml:"medical_floor_rate" json:"medical_floor_rate"`

	Spouse            DeductionPair `yaml:"spouse" toml:"spouse" json:"spouse"`
	GeneralDependent  DeductionPair `yaml:"general_dependent" toml:"general_dependent" json:"general_dependent"`
	SpecificDependent DeductionPair `yaml:"specific_dependent" toml:"specific_dependent" json:"specific_dependent"`
}

// SocialInsuranceRule holds the automatic social insurance estimate
type SocialInsuranceRule struct {
	AutoRate decimal.Decimal `yaml:"auto_rate" toml:"auto_rate" json:"auto_rate"`
}

// HousingLoanRules holds the housing loan credit parameters
type HousingLoanRules struct {
	BalanceCap decimal.Decimal `yaml:"balance_cap" toml:"balance_cap" json:"balance_cap"`
	CreditRate decimal.Decimal `yaml:"credit_rate" toml:"credit_rate" json:"credit_rate"`
	// ResidentCaps is keyed by move-in period.
	ResidentCaps map[LoanPeriod]ResidentLoanCap `yaml:"resident_caps" toml:"resident_caps" json:"resident_caps"`
}

// ResidentLoanCap bounds the loan credit carried over to resident tax:
// min(Amount, floor(taxableIncome*Rate)).
type ResidentLoanCap struct {
	Amount decimal.Decimal `yaml:"amount" toml:"amount" json:"amount"`
	Rate   decimal.Decimal `yaml:"rate" toml:"rate" json:"rate"`
}

// DonationRules holds the furusato nozei parameters
type DonationRules struct {
	// SelfBurden is the non-deductible part of every donation (2,000 yen).
	SelfBurden decimal.Decimal `yaml:"self_burden" toml:"self_burden" json:"self_burden"`
	// SearchCap bounds the limit solver's search range.
	SearchCap decimal.Decimal `yaml:"search_cap" toml:"search_cap" json:"search_cap"`
	// SearchTolerance is the solver convergence width and the rounding unit of the limit.
	SearchTolerance decimal.Decimal `yaml:"search_tolerance" toml:"search_tolerance" json:"search_tolerance"`
}

// OtherTaxRules holds the constants of the auxiliary household tax estimates
type OtherTaxRules struct {
	ConsumptionEffectiveRate decimal.Decimal                 `yaml:"consumption_effective_rate" toml:"consumption_effective_rate" json:"consumption_effective_rate"`
	TobaccoPerStick          decimal.Decimal                 `yaml:"tobacco_per_stick" toml:"tobacco_per_stick" json:"tobacco_per_stick"`
	GasolineTaxPerLiter      decimal.Decimal                 `yaml:"gasoline_tax_per_liter" toml:"gasoline_tax_per_liter" json:"gasoline_tax_per_liter"`
	GasolineReferencePrice   decimal.Decimal                 `yaml:"gasoline_reference_price" toml:"gasoline_reference_price" json:"gasoline_reference_price"`
	CarTaxRates              map[CarCategory]decimal.Decimal `yaml:"car_tax_rates" toml:"car_tax_rates" json:"car_tax_rates"`
	InheritanceBaseExemption decimal.Decimal                 `yaml:"inheritance_base_exemption" toml:"inheritance_base_exemption" json:"inheritance_base_exemption"`
	InheritancePerHeir       decimal.Decimal                 `yaml:"inheritance_per_heir" toml:"inheritance_per_heir" json:"inheritance_per_heir"`
	InheritanceBrackets      []TaxBracket                    `yaml:"inheritance_brackets" toml:"inheritance_brackets" json:"inheritance_brackets"`
	InheritanceAmortizeYears int                             `yaml:"inheritance_amortize_years" toml:"inheritance_amortize_years" json:"inheritance_amortize_years"`
}

func yen(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// DefaultRuleSet returns the current rule set (tax year 2025 reform).
func DefaultRuleSet() RuleSet {
	return RuleSet2025()
}

// RuleSet2025 returns the rules after the 2025 reform: 650,000 yen minimum employment
// deduction and the tiered basic deduction topping out at 950,000 yen.
func RuleSet2025() RuleSet {
	rs := baseRuleSet()
	rs.Metadata = RuleMetadata{TaxYear: 2025, Description: "2025 reform (tiered basic deduction)"}
	rs.Deductions.Employment = employmentTiers(yen(650000))
	rs.Deductions.BasicIncome = []StepTier{
		{Max: yen(1320000), Amount: yen(950000)},
		{Max: yen(3360000), Amount: yen(880000)},
		{Max: yen(4890000), Amount: yen(680000)},
		{Max: yen(6550000), Amount: yen(630000)},
		{Max: yen(23500000), Amount: yen(580000)},
		{Max: yen(24000000), Amount: yen(480000)},
		{Max: yen(24500000), Amount: yen(320000)},
	}
	return rs
}

// RuleSet2024 returns the rules in force before the 2025 reform.
func RuleSet2024() RuleSet {
	rs := baseRuleSet()
	rs.Metadata = RuleMetadata{TaxYear: 2024, Description: "pre-2025 rules (flat 480,000 basic deduction)"}
	rs.Deductions.Employment = employmentTiers(yen(550000))
	rs.Deductions.BasicIncome = []StepTier{
		{Max: yen(24000000), Amount: yen(480000)},
		{Max: yen(24500000), Amount: yen(320000)},
		{Max: yen(25000000), Amount: yen(160000)},
	}
	return rs
}

// RuleSetForYear returns the built-in rule set for a tax year.
func RuleSetForYear(year int) (RuleSet, error) {
	switch year {
	case 0, 2025:
		return RuleSet2025(), nil
	case 2024:
		return RuleSet2024(), nil
	default:
		return RuleSet{}, fmt.Errorf("no built-in rule set for tax year %d (available: %v)", year, SupportedTaxYears())
	}
}

// SupportedTaxYears lists the tax years with built-in rule sets.
func SupportedTaxYears() []int {
	return []int{2024, 2025}
}

func employmentTiers(minimum decimal.Decimal) []LinearTier {
	return []LinearTier{
		{Max: yen(1625000), Rate: decimal.Zero, Fixed: minimum},
		{Max: yen(1800000), Rate: dec("0.4"), Fixed: yen(-100000)},
		{Max: yen(3600000), Rate: dec("0.3"), Fixed: yen(80000)},
		{Max: yen(6600000), Rate: dec("0.2"), Fixed: yen(440000)},
		{Max: yen(8500000), Rate: dec("0.1"), Fixed: yen(1100000)},
		{Max: decimal.Zero, Rate: decimal.Zero, Fixed: yen(1950000)},
	}
}

func baseRuleSet() RuleSet {
	return RuleSet{
		IncomeTax: IncomeTaxRules{
			Brackets: []TaxBracket{
				{Max: yen(1950000), Rate: dec("0.05"), Deduction: decimal.Zero},
				{Max: yen(3300000), Rate: dec("0.10"), Deduction: yen(97500)},
				{Max: yen(6950000), Rate: dec("0.20"), Deduction: yen(427500)},
				{Max: yen(9000000), Rate: dec("0.23"), Deduction: yen(636000)},
				{Max: yen(18000000), Rate: dec("0.33"), Deduction: yen(1536000)},
				{Max: yen(40000000), Rate: dec("0.40"), Deduction: yen(2796000)},
				{Max: decimal.Zero, Rate: dec("0.45"), Deduction: yen(4796000)},
			},
			SurtaxMultiplier: dec("1.021"),
			TaxableRounding:  yen(1000),
		},
		ResidentTax: ResidentTaxRules{
			Rate:                dec("0.10"),
			PerCapitaLevy:       yen(5000),
			AdjustmentDeduction: yen(2500),
			TaxableRounding:     yen(1000),
		},
		Deductions: DeductionRules{
			BasicResident: yen(430000),
			LifeInsuranceIncome: []LinearTier{
				{Max: yen(20000), Rate: dec("1"), Fixed: decimal.Zero},
				{Max: yen(40000), Rate: dec("0.5"), Fixed: yen(10000)},
				{Max: yen(80000), Rate: dec("0.25"), Fixed: yen(20000)},
				{Max: decimal.Zero, Rate: decimal.Zero, Fixed: yen(40000)},
			},
			LifeInsuranceRes: []LinearTier{
				{Max: yen(12000), Rate: dec("1"), Fixed: decimal.Zero},
				{Max: yen(32000), Rate: dec("0.5"), Fixed: yen(6000)},
				{Max: yen(56000), Rate: dec("0.25"), Fixed: yen(14000)},
				{Max: decimal.Zero, Rate: decimal.Zero, Fixed: yen(28000)},
			},
			EarthquakeIncomeCap:    yen(50000),
			EarthquakeResidentCap:  yen(25000),
			EarthquakeResidentRate: dec("0.5"),
			MedicalFloorCap:        yen(100000),
			MedicalFloorRate:       dec("0.05"),
			Spouse:                 DeductionPair{Income: yen(380000), Resident: yen(330000)},
			GeneralDependent:       DeductionPair{Income: yen(380000), Resident: yen(330000)},
			SpecificDependent:      DeductionPair{Income: yen(630000), Resident: yen(450000)},
		},
		SocialInsurance: SocialInsuranceRule{AutoRate: dec("0.15")},
		HousingLoan: HousingLoanRules{
			BalanceCap: yen(30000000),
			CreditRate: dec("0.007"),
			ResidentCaps: map[LoanPeriod]ResidentLoanCap{
				LoanPeriodPre2022:  {Amount: yen(136500), Rate: dec("0.07")},
				LoanPeriodFrom2022: {Amount: yen(97500), Rate: dec("0.05")},
			},
		},
		Donation: DonationRules{
			SelfBurden:      yen(2000),
			SearchCap:       yen(1000000),
			SearchTolerance: yen(1000),
		},
		OtherTaxes: OtherTaxRules{
			ConsumptionEffectiveRate: dec("0.09"),
			TobaccoPerStick:          dec("15.2"),
			GasolineTaxPerLiter:      dec("56.6"),
			GasolineReferencePrice:   yen(175),
			CarTaxRates: map[CarCategory]decimal.Decimal{
				CarNone:   decimal.Zero,
				CarKei:    yen(10800),
				Car1000:   yen(25000),
				Car1500:   yen(30500),
				Car2000:   yen(36000),
				Car2500:   yen(43500),
				Car3000:   yen(50000),
				Car3500:   yen(57000),
				Car4000:   yen(65500),
				Car4500:   yen(75500),
				Car6000:   yen(87000),
				CarOver6k: yen(110000),
			},
			InheritanceBaseExemption: yen(30000000),
			InheritancePerHeir:       yen(6000000),
			InheritanceBrackets: []TaxBracket{
				{Max: yen(10000000), Rate: dec("0.10"), Deduction: decimal.Zero},
				{Max: yen(30000000), Rate: dec("0.15"), Deduction: yen(500000)},
				{Max: yen(50000000), Rate: dec("0.20"), Deduction: yen(2000000)},
				{Max: yen(100000000), Rate: dec("0.30"), Deduction: yen(7000000)},
				{Max: yen(200000000), Rate: dec("0.40"), Deduction: yen(17000000)},
				{Max: yen(300000000), Rate: dec("0.45"), Deduction: yen(27000000)},
				{Max: yen(600000000), Rate: dec("0.50"), Deduction: yen(42000000)},
				{Max: decimal.Zero, Rate: dec("0.55"), Deduction: yen(72000000)},
			},
			InheritanceAmortizeYears: 30,
		},
	}
}

// Assumptions summarizes the rule set as human-readable lines for reports.
func (rs RuleSet) Assumptions() []string {
	lines := []string{}
	if rs.Metadata.Description != "" {
		lines = append(lines, fmt.Sprintf("Rules: tax year %d, %s", rs.Metadata.TaxYear, rs.Metadata.Description))
	}
	if len(rs.Deductions.Employment) > 0 {
		lines = append(lines, fmt.Sprintf("Minimum employment income deduction: %s yen", rs.Deductions.Employment[0].Fixed))
	}
	lines = append(lines,
		fmt.Sprintf("Social insurance (auto): %s%% of salary", rs.SocialInsurance.AutoRate.Shift(2)),
		fmt.Sprintf("Income tax includes the reconstruction surtax (x%s)", rs.IncomeTax.SurtaxMultiplier),
		fmt.Sprintf("Resident tax: %s%% flat plus %s yen per-capita levy", rs.ResidentTax.Rate.Shift(2), rs.ResidentTax.PerCapitaLevy),
		fmt.Sprintf("Furusato nozei self-burden: %s yen per year", rs.Donation.SelfBurden),
	)
	return lines
}
