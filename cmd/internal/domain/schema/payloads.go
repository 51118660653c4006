package schema

import (
	"time"

	"listingdesk/cmd/internal/domain/entity"
)

// One rule per listing type covering its payload. Each rule first checks
// that the payload matching the discriminator is present and that no foreign
// payload is attached, then descends into the payload fields.

const minYear = 1800

func maxYear() int {
	return time.Now().UTC().Year()
}

// requirePayload tags a missing payload and rejects payloads belonging to a
// different listing type. Returns false when the matching payload is absent.
func requirePayload(l *entity.Listing, c *Checker) bool {
	attached := map[string]bool{
		"businessDetails":     l.BusinessDetails != nil,
		"franchiseDetails":    l.FranchiseDetails != nil,
		"startupDetails":      l.StartupDetails != nil,
		"investorDetails":     l.InvestorDetails != nil,
		"digitalAssetDetails": l.DigitalAssetDetails != nil,
	}
	want := payloadField(l.Type)
	for field, present := range attached {
		if present && field != want {
			c.Failf(field, "does not belong to a %s listing", l.Type)
		}
	}
	if !attached[want] {
		c.Fail(want, "is required")
		return false
	}
	return true
}

func payloadField(t entity.ListingType) string {
	switch t {
	case entity.TypeBusiness:
		return "businessDetails"
	case entity.TypeFranchise:
		return "franchiseDetails"
	case entity.TypeStartup:
		return "startupDetails"
	case entity.TypeInvestor:
		return "investorDetails"
	case entity.TypeDigitalAsset:
		return "digitalAssetDetails"
	}
	return ""
}

func ruleBusiness(l *entity.Listing, c *Checker) {
	if !requirePayload(l, c) {
		return
	}
	d := l.BusinessDetails
	c.IntRange("businessDetails.establishedYear", d.EstablishedYear, minYear, maxYear())
	c.Enum("businessDetails.entityType", d.EntityType, true,
		"sole_proprietorship", "partnership", "llp", "private_limited", "public_limited")
	c.IntMin("businessDetails.employeeCount", d.EmployeeCount, 0)

	c.Enum("businessDetails.operations.premisesType", d.Operations.PremisesType, false,
		"owned", "rented", "shared")
	c.RequiredString("businessDetails.operations.sellingReason", d.Operations.SellingReason, 50, 1000)

	c.Money("businessDetails.financials.annualRevenue", &d.Financials.AnnualRevenue, true)
	c.Money("businessDetails.financials.netProfit", d.Financials.NetProfit, false)
	if d.Financials.ProfitMargin != nil {
		c.Percent("businessDetails.financials.profitMargin", *d.Financials.ProfitMargin)
	}

	c.Money("businessDetails.sale.askingPrice", &d.Sale.AskingPrice, true)
	c.RequiredString("businessDetails.sale.highlights", d.Sale.Highlights, 100, 2000)
}

func ruleFranchise(l *entity.Listing, c *Checker) {
	if !requirePayload(l, c) {
		return
	}
	d := l.FranchiseDetails
	c.RequiredString("franchiseDetails.brandName", d.BrandName, 3, 100)
	c.Enum("franchiseDetails.franchiseType", d.FranchiseType, true,
		"unit", "multi_unit", "master", "area_developer")
	c.IntMin("franchiseDetails.totalOutlets", d.TotalOutlets, 1)
	c.IntRange("franchiseDetails.establishedYear", d.EstablishedYear, minYear, maxYear())

	c.Money("franchiseDetails.investment.franchiseFee", &d.Investment.FranchiseFee, true)
	c.Money("franchiseDetails.investment.totalMin", &d.Investment.TotalMin, true)
	c.Money("franchiseDetails.investment.totalMax", &d.Investment.TotalMax, true)
	if c.OK("franchiseDetails.investment.totalMin.value", "franchiseDetails.investment.totalMax.value") &&
		d.Investment.TotalMin.Value > d.Investment.TotalMax.Value {
		c.Fail("franchiseDetails.investment", "minimum investment cannot exceed maximum investment")
	}

	c.Percent("franchiseDetails.royaltyPercent", d.RoyaltyPercent)
	c.RequiredString("franchiseDetails.training.summary", d.Training.Summary, 100, 2000)
	if d.Training.DurationWeeks != nil {
		c.IntMin("franchiseDetails.training.durationWeeks", *d.Training.DurationWeeks, 0)
	}
	c.IntRange("franchiseDetails.termYears", d.TermYears, 1, 99)
}

func ruleStartup(l *entity.Listing, c *Checker) {
	if !requirePayload(l, c) {
		return
	}
	d := l.StartupDetails
	c.Enum("startupDetails.stage", d.Stage, true,
		"idea", "mvp", "early_revenue", "growth", "scaling")
	c.IntRange("startupDetails.foundedYear", d.FoundedYear, minYear, maxYear())
	c.IntMin("startupDetails.teamSize", d.TeamSize, 1)
	c.Money("startupDetails.fundingRaised", d.FundingRaised, false)
	c.Money("startupDetails.targetRaise", &d.TargetRaise, true)
	c.Percent("startupDetails.equityOffered", d.EquityOffered)
	c.Money("startupDetails.monthlyRevenue", d.MonthlyRevenue, false)
	c.RequiredString("startupDetails.pitch", d.Pitch, 100, 2000)
	c.OptionalString("startupDetails.traction", d.Traction, 50, 2000)
}

func ruleInvestor(l *entity.Listing, c *Checker) {
	if !requirePayload(l, c) {
		return
	}
	d := l.InvestorDetails
	c.Enum("investorDetails.investorType", d.InvestorType, true,
		"individual", "angel", "vc", "family_office", "corporate", "private_equity")

	c.Money("investorDetails.investmentRange.min", &d.InvestmentRange.Min, true)
	c.Money("investorDetails.investmentRange.max", &d.InvestmentRange.Max, true)
	if c.OK("investorDetails.investmentRange.min.value", "investorDetails.investmentRange.max.value") &&
		d.InvestmentRange.Min.Value > d.InvestmentRange.Max.Value {
		c.Fail("investorDetails.investmentRange", "minimum cannot exceed maximum")
	}

	c.StringList("investorDetails.preferredStages", d.PreferredStages, 1, 5, true)
	if d.PastInvestments != nil {
		c.IntMin("investorDetails.pastInvestments", *d.PastInvestments, 0)
	}
	c.RequiredString("investorDetails.investmentPhilosophy", d.InvestmentPhilosophy, 100, 1000)
	if len(d.DealStructures) > 4 {
		c.Fail("investorDetails.dealStructures", "must have at most 4 entries")
	} else {
		for i, s := range d.DealStructures {
			c.Enum(indexed("investorDetails.dealStructures", i), s, true,
				"equity", "debt", "convertible", "revenue_share")
		}
	}
}

func ruleDigitalAsset(l *entity.Listing, c *Checker) {
	if !requirePayload(l, c) {
		return
	}
	d := l.DigitalAssetDetails
	c.Enum("digitalAssetDetails.assetType", d.AssetType, true,
		"website", "mobile_app", "saas", "ecommerce", "domain", "content_blog")
	c.IntMin("digitalAssetDetails.monthlyTraffic", d.MonthlyTraffic, 0)
	c.Money("digitalAssetDetails.monthlyRevenue", &d.MonthlyRevenue, true)
	c.Money("digitalAssetDetails.monthlyProfit", d.MonthlyProfit, false)

	ts := d.TrafficSources
	c.PercentGroup("digitalAssetDetails.trafficSources", false,
		PercentPart{"organic", ts.Organic},
		PercentPart{"paid", ts.Paid},
		PercentPart{"social", ts.Social},
		PercentPart{"direct", ts.Direct},
		PercentPart{"referral", ts.Referral},
	)

	// Unlike traffic sources, an all-zero revenue breakdown is accepted and
	// read as "not yet specified".
	rs := d.RevenueSources
	c.PercentGroup("digitalAssetDetails.revenueSources", true,
		PercentPart{"ads", rs.Ads},
		PercentPart{"affiliate", rs.Affiliate},
		PercentPart{"products", rs.Products},
		PercentPart{"subscriptions", rs.Subscriptions},
		PercentPart{"services", rs.Services},
	)

	c.RequiredString("digitalAssetDetails.monetization", d.Monetization, 100, 2000)
	c.Money("digitalAssetDetails.askingPrice", &d.AskingPrice, true)
	c.StringList("digitalAssetDetails.techStack", d.TechStack, 0, 10, true)
}
