package schema_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listingdesk/cmd/internal/domain/entity"
	"listingdesk/cmd/internal/domain/schema"
)

func validBase(t entity.ListingType) *entity.Listing {
	return &entity.Listing{
		Type:        t,
		Name:        "Acme Trading Co",
		Industries:  []string{"retail", "wholesale"},
		Description: strings.Repeat("A well established trading operation with loyal customers. ", 4),
		Location: entity.Location{
			State: "Karnataka",
			City:  "Bengaluru",
		},
		ContactInfo: entity.ContactInfo{
			Email: "owner@example.com",
		},
		Media: entity.Media{
			GalleryImages: []entity.GalleryImage{
				{URL: "https://cdn.example.com/a.jpg", Path: "images/a.jpg"},
				{URL: "https://cdn.example.com/b.jpg", Path: "images/b.jpg"},
				{URL: "https://cdn.example.com/c.jpg", Path: "images/c.jpg"},
			},
		},
	}
}

func narrative(n int) string {
	return strings.Repeat("x", n)
}

func validBusiness() *entity.Listing {
	l := validBase(entity.TypeBusiness)
	l.BusinessDetails = &entity.BusinessDetails{
		EstablishedYear: 2010,
		EntityType:      "private_limited",
		EmployeeCount:   12,
		Operations: entity.BusinessOperations{
			PremisesType:  "rented",
			SellingReason: narrative(80),
		},
		Financials: entity.BusinessFinancials{
			AnnualRevenue: entity.Money{Value: 5_000_000},
		},
		Sale: entity.BusinessSale{
			AskingPrice: entity.Money{Value: 12_000_000},
			Negotiable:  true,
			Highlights:  narrative(150),
		},
	}
	return l
}

func validFranchise() *entity.Listing {
	l := validBase(entity.TypeFranchise)
	l.FranchiseDetails = &entity.FranchiseDetails{
		BrandName:       "ChaiPoint",
		FranchiseType:   "unit",
		TotalOutlets:    40,
		EstablishedYear: 2012,
		Investment: entity.FranchiseInvestment{
			FranchiseFee: entity.Money{Value: 500_000},
			TotalMin:     entity.Money{Value: 1_500_000},
			TotalMax:     entity.Money{Value: 3_000_000},
		},
		RoyaltyPercent: 6,
		Training: entity.FranchiseTraining{
			Summary: narrative(200),
		},
		TermYears: 5,
	}
	return l
}

func validStartup() *entity.Listing {
	l := validBase(entity.TypeStartup)
	l.StartupDetails = &entity.StartupDetails{
		Stage:         "early_revenue",
		FoundedYear:   2021,
		TeamSize:      6,
		TargetRaise:   entity.Money{Value: 20_000_000},
		EquityOffered: 15,
		Pitch:         narrative(300),
	}
	return l
}

func validInvestor() *entity.Listing {
	l := validBase(entity.TypeInvestor)
	l.InvestorDetails = &entity.InvestorDetails{
		InvestorType: "angel",
		InvestmentRange: entity.InvestmentRange{
			Min: entity.Money{Value: 1_000_000},
			Max: entity.Money{Value: 10_000_000},
		},
		PreferredStages:      []string{"idea", "mvp"},
		InvestmentPhilosophy: narrative(120),
		DealStructures:       []string{"equity", "convertible"},
	}
	return l
}

func validDigitalAsset() *entity.Listing {
	l := validBase(entity.TypeDigitalAsset)
	l.DigitalAssetDetails = &entity.DigitalAssetDetails{
		AssetType:      "saas",
		MonthlyTraffic: 40_000,
		MonthlyRevenue: entity.Money{Value: 250_000},
		TrafficSources: entity.TrafficSources{Organic: 60, Paid: 20, Social: 10, Direct: 5, Referral: 5},
		RevenueSources: entity.RevenueSources{Subscriptions: 100},
		Monetization:   narrative(180),
		AskingPrice:    entity.Money{Value: 9_000_000},
	}
	return l
}

func TestValidate_AllTypesPass(t *testing.T) {
	fixtures := map[entity.ListingType]*entity.Listing{
		entity.TypeBusiness:     validBusiness(),
		entity.TypeFranchise:    validFranchise(),
		entity.TypeStartup:      validStartup(),
		entity.TypeInvestor:     validInvestor(),
		entity.TypeDigitalAsset: validDigitalAsset(),
	}

	for lt, fixture := range fixtures {
		rec, errs := schema.Get(lt).Validate(fixture)
		require.Empty(t, errs, "type %s should validate cleanly: %v", lt, errs)
		require.NotNil(t, rec)

		// Defaults are applied to the returned copy.
		assert.Equal(t, entity.StatusDraft, rec.Status)
		assert.Equal(t, entity.PlanFree, rec.Plan)
		assert.Equal(t, entity.DefaultCountry, rec.Location.Country)
	}
}

func TestValidate_AppliesMoneyCurrencyDefault(t *testing.T) {
	rec, errs := schema.Get(entity.TypeBusiness).Validate(validBusiness())
	require.Empty(t, errs)
	assert.Equal(t, "INR", rec.BusinessDetails.Financials.AnnualRevenue.Currency)
	assert.Equal(t, "INR", rec.BusinessDetails.Sale.AskingPrice.Currency)
}

func TestValidate_DoesNotMutateCandidate(t *testing.T) {
	candidate := validBusiness()
	candidate.Status = ""
	candidate.Name = "  Acme Trading Co  "

	rec, errs := schema.Get(entity.TypeBusiness).Validate(candidate)
	require.Empty(t, errs)

	assert.Equal(t, "Acme Trading Co", rec.Name)
	assert.Equal(t, "  Acme Trading Co  ", candidate.Name, "caller's record must stay untouched")
	assert.Equal(t, entity.ListingStatus(""), candidate.Status)
}

func TestValidate_NameCharset(t *testing.T) {
	candidate := validBusiness()
	candidate.Name = "Acme!!"

	rec, errs := schema.Get(entity.TypeBusiness).Validate(candidate)
	assert.Nil(t, rec)
	require.Len(t, errs, 1)
	assert.Equal(t, "name", errs[0].Path)
}

func TestValidate_CollectsAllViolations(t *testing.T) {
	candidate := validBusiness()
	candidate.Name = ""
	candidate.Description = "too short"
	candidate.ContactInfo.Email = "not-an-email"
	candidate.BusinessDetails.EntityType = "sole_trader"

	rec, errs := schema.Get(entity.TypeBusiness).Validate(candidate)
	assert.Nil(t, rec)

	byPath := errs.ByPath()
	assert.Contains(t, byPath, "name")
	assert.Contains(t, byPath, "description")
	assert.Contains(t, byPath, "contactInfo.email")
	assert.Contains(t, byPath, "businessDetails.entityType")
}

func TestValidate_MissingPayload(t *testing.T) {
	candidate := validBase(entity.TypeStartup)

	_, errs := schema.Get(entity.TypeStartup).Validate(candidate)
	assert.Contains(t, errs.ByPath(), "startupDetails")
}

func TestValidate_ForeignPayloadRejected(t *testing.T) {
	candidate := validStartup()
	candidate.BusinessDetails = validBusiness().BusinessDetails

	_, errs := schema.Get(entity.TypeStartup).Validate(candidate)
	assert.Contains(t, errs.ByPath(), "businessDetails")
}

func TestValidate_TrafficSourcesWithinTolerance(t *testing.T) {
	candidate := validDigitalAsset()
	candidate.DigitalAssetDetails.TrafficSources = entity.TrafficSources{
		Organic: 50, Paid: 20, Social: 15, Direct: 10, Referral: 4.99,
	}

	_, errs := schema.Get(entity.TypeDigitalAsset).Validate(candidate)
	assert.Empty(t, errs, "a 99.99 sum is within the 0.1 tolerance")
}

func TestValidate_TrafficSourcesOffByFive(t *testing.T) {
	candidate := validDigitalAsset()
	candidate.DigitalAssetDetails.TrafficSources = entity.TrafficSources{Organic: 95}

	_, errs := schema.Get(entity.TypeDigitalAsset).Validate(candidate)
	assert.Contains(t, errs.ByPath(), "digitalAssetDetails.trafficSources")
}

func TestValidate_RevenueSourcesAllZeroAccepted(t *testing.T) {
	candidate := validDigitalAsset()
	candidate.DigitalAssetDetails.RevenueSources = entity.RevenueSources{}

	_, errs := schema.Get(entity.TypeDigitalAsset).Validate(candidate)
	assert.Empty(t, errs, "all-zero revenue sources mean 'not yet specified'")
}

func TestValidate_RevenueSourcesPartialSumRejected(t *testing.T) {
	candidate := validDigitalAsset()
	candidate.DigitalAssetDetails.RevenueSources = entity.RevenueSources{Ads: 50, Products: 40}

	_, errs := schema.Get(entity.TypeDigitalAsset).Validate(candidate)
	assert.Contains(t, errs.ByPath(), "digitalAssetDetails.revenueSources")
}

func TestValidate_TrafficSourcesAllZeroRejected(t *testing.T) {
	candidate := validDigitalAsset()
	candidate.DigitalAssetDetails.TrafficSources = entity.TrafficSources{}

	_, errs := schema.Get(entity.TypeDigitalAsset).Validate(candidate)
	assert.Contains(t, errs.ByPath(), "digitalAssetDetails.trafficSources",
		"traffic sources never accept an all-zero breakdown")
}

func TestValidate_RefinementSkippedWhenFieldFailed(t *testing.T) {
	candidate := validInvestor()
	// Negative min fails the field check AND would fail the min<=max
	// refinement; only the field error may surface.
	candidate.InvestorDetails.InvestmentRange.Min = entity.Money{Value: -5}
	candidate.InvestorDetails.InvestmentRange.Max = entity.Money{Value: -10}

	_, errs := schema.Get(entity.TypeInvestor).Validate(candidate)
	byPath := errs.ByPath()
	assert.Contains(t, byPath, "investorDetails.investmentRange.min.value")
	assert.Contains(t, byPath, "investorDetails.investmentRange.max.value")
	assert.NotContains(t, byPath, "investorDetails.investmentRange")
}

func TestValidate_InvestmentRangeRefinement(t *testing.T) {
	candidate := validInvestor()
	candidate.InvestorDetails.InvestmentRange.Min = entity.Money{Value: 10}
	candidate.InvestorDetails.InvestmentRange.Max = entity.Money{Value: 5}

	_, errs := schema.Get(entity.TypeInvestor).Validate(candidate)
	assert.Contains(t, errs.ByPath(), "investorDetails.investmentRange")
}

func TestValidate_FranchiseInvestmentRefinement(t *testing.T) {
	candidate := validFranchise()
	candidate.FranchiseDetails.Investment.TotalMin = entity.Money{Value: 100}
	candidate.FranchiseDetails.Investment.TotalMax = entity.Money{Value: 50}

	_, errs := schema.Get(entity.TypeFranchise).Validate(candidate)
	assert.Contains(t, errs.ByPath(), "franchiseDetails.investment")
}

func TestValidate_GalleryCardinality(t *testing.T) {
	candidate := validBusiness()
	candidate.Media.GalleryImages = candidate.Media.GalleryImages[:2]

	_, errs := schema.Get(entity.TypeBusiness).Validate(candidate)
	assert.Contains(t, errs.ByPath(), "media.galleryImages")
}

func TestGet_UnknownTypeFallsBackToBase(t *testing.T) {
	s := schema.Get(entity.ListingType("timeshare"))
	require.Same(t, schema.Base, s)

	// The base schema only knows the shared fields, so a record carrying a
	// payload for an unknown type validates against those alone.
	candidate := validBase(entity.ListingType("timeshare"))
	_, errs := s.Validate(candidate)
	assert.Empty(t, errs)
}
