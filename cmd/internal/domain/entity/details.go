package entity

// The five type-specific payloads. Numeric ranges and narrative length bounds
// are enforced by the schema package, not here.

type BusinessOperations struct {
	PremisesType  string `bson:"premisesType,omitempty" json:"premisesType,omitempty"` // owned, rented, shared
	SellingReason string `bson:"sellingReason" json:"sellingReason"`
}

type BusinessFinancials struct {
	AnnualRevenue Money    `bson:"annualRevenue" json:"annualRevenue"`
	NetProfit     *Money   `bson:"netProfit,omitempty" json:"netProfit,omitempty"`
	ProfitMargin  *float64 `bson:"profitMargin,omitempty" json:"profitMargin,omitempty"`
}

type BusinessSale struct {
	AskingPrice      Money  `bson:"askingPrice" json:"askingPrice"`
	Negotiable       bool   `bson:"negotiable" json:"negotiable"`
	IncludesProperty bool   `bson:"includesProperty,omitempty" json:"includesProperty,omitempty"`
	Highlights       string `bson:"highlights" json:"highlights"`
}

type BusinessDetails struct {
	EstablishedYear int                `bson:"establishedYear" json:"establishedYear"`
	EntityType      string             `bson:"entityType" json:"entityType"`
	EmployeeCount   int                `bson:"employeeCount" json:"employeeCount"`
	Operations      BusinessOperations `bson:"operations" json:"operations"`
	Financials      BusinessFinancials `bson:"financials" json:"financials"`
	Sale            BusinessSale       `bson:"sale" json:"sale"`
}

type FranchiseInvestment struct {
	FranchiseFee Money `bson:"franchiseFee" json:"franchiseFee"`
	TotalMin     Money `bson:"totalMin" json:"totalMin"`
	TotalMax     Money `bson:"totalMax" json:"totalMax"`
}

type FranchiseTraining struct {
	Summary       string `bson:"summary" json:"summary"`
	DurationWeeks *int   `bson:"durationWeeks,omitempty" json:"durationWeeks,omitempty"`
}

type FranchiseDetails struct {
	BrandName       string              `bson:"brandName" json:"brandName"`
	FranchiseType   string              `bson:"franchiseType" json:"franchiseType"`
	TotalOutlets    int                 `bson:"totalOutlets" json:"totalOutlets"`
	EstablishedYear int                 `bson:"establishedYear" json:"establishedYear"`
	Investment      FranchiseInvestment `bson:"investment" json:"investment"`
	RoyaltyPercent  float64             `bson:"royaltyPercent" json:"royaltyPercent"`
	Training        FranchiseTraining   `bson:"training" json:"training"`
	TermYears       int                 `bson:"termYears" json:"termYears"`
}

type StartupDetails struct {
	Stage          string  `bson:"stage" json:"stage"`
	FoundedYear    int     `bson:"foundedYear" json:"foundedYear"`
	TeamSize       int     `bson:"teamSize" json:"teamSize"`
	FundingRaised  *Money  `bson:"fundingRaised,omitempty" json:"fundingRaised,omitempty"`
	TargetRaise    Money   `bson:"targetRaise" json:"targetRaise"`
	EquityOffered  float64 `bson:"equityOffered" json:"equityOffered"`
	MonthlyRevenue *Money  `bson:"monthlyRevenue,omitempty" json:"monthlyRevenue,omitempty"`
	Pitch          string  `bson:"pitch" json:"pitch"`
	Traction       string  `bson:"traction,omitempty" json:"traction,omitempty"`
}

type InvestmentRange struct {
	Min Money `bson:"min" json:"min"`
	Max Money `bson:"max" json:"max"`
}

type InvestorDetails struct {
	InvestorType         string          `bson:"investorType" json:"investorType"`
	InvestmentRange      InvestmentRange `bson:"investmentRange" json:"investmentRange"`
	PreferredStages      []string        `bson:"preferredStages" json:"preferredStages"`
	PastInvestments      *int            `bson:"pastInvestments,omitempty" json:"pastInvestments,omitempty"`
	InvestmentPhilosophy string          `bson:"investmentPhilosophy" json:"investmentPhilosophy"`
	DealStructures       []string        `bson:"dealStructures,omitempty" json:"dealStructures,omitempty"`
}

// TrafficSources is a percentage breakdown that must sum to 100.
type TrafficSources struct {
	Organic  float64 `bson:"organic" json:"organic"`
	Paid     float64 `bson:"paid" json:"paid"`
	Social   float64 `bson:"social" json:"social"`
	Direct   float64 `bson:"direct" json:"direct"`
	Referral float64 `bson:"referral" json:"referral"`
}

// RevenueSources is a percentage breakdown that must sum to 100, or be all
// zero meaning "not yet specified". The asymmetry with TrafficSources is
// intentional.
type RevenueSources struct {
	Ads           float64 `bson:"ads" json:"ads"`
	Affiliate     float64 `bson:"affiliate" json:"affiliate"`
	Products      float64 `bson:"products" json:"products"`
	Subscriptions float64 `bson:"subscriptions" json:"subscriptions"`
	Services      float64 `bson:"services" json:"services"`
}

type DigitalAssetDetails struct {
	AssetType      string         `bson:"assetType" json:"assetType"`
	MonthlyTraffic int            `bson:"monthlyTraffic" json:"monthlyTraffic"`
	MonthlyRevenue Money          `bson:"monthlyRevenue" json:"monthlyRevenue"`
	MonthlyProfit  *Money         `bson:"monthlyProfit,omitempty" json:"monthlyProfit,omitempty"`
	TrafficSources TrafficSources `bson:"trafficSources" json:"trafficSources"`
	RevenueSources RevenueSources `bson:"revenueSources" json:"revenueSources"`
	Monetization   string         `bson:"monetization" json:"monetization"`
	AskingPrice    Money          `bson:"askingPrice" json:"askingPrice"`
	TechStack      []string       `bson:"techStack,omitempty" json:"techStack,omitempty"`
}
