package schema

import (
	"strings"

	"listingdesk/cmd/internal/domain/entity"
)

// normalize deep-copies the candidate and applies trims and defaults to the
// copy. The caller's record is never mutated, so a failed validation leaves
// no side effects behind.
func normalize(in *entity.Listing) *entity.Listing {
	out := *in

	out.Name = strings.TrimSpace(in.Name)
	out.Description = strings.TrimSpace(in.Description)

	out.Industries = cloneStrings(in.Industries)
	for i, v := range out.Industries {
		out.Industries[i] = strings.TrimSpace(v)
	}

	if out.Status == "" {
		out.Status = entity.StatusDraft
	}
	if out.Plan == "" {
		out.Plan = entity.PlanFree
	}
	if out.Location.Country == "" {
		out.Location.Country = entity.DefaultCountry
	}
	out.Location.State = strings.TrimSpace(in.Location.State)
	out.Location.City = strings.TrimSpace(in.Location.City)
	out.ContactInfo.Email = strings.TrimSpace(in.ContactInfo.Email)
	out.ContactInfo.ContactName = strings.TrimSpace(in.ContactInfo.ContactName)

	out.Media.FeaturedImage = cloneGalleryImage(in.Media.FeaturedImage)
	out.Media.GalleryImages = append([]entity.GalleryImage(nil), in.Media.GalleryImages...)

	out.Documents = append([]entity.DocumentMetadata(nil), in.Documents...)
	for i := range out.Documents {
		if out.Documents[i].VerificationStatus == "" {
			out.Documents[i].VerificationStatus = entity.VerificationPending
		}
	}

	out.BusinessDetails = normalizeBusiness(in.BusinessDetails)
	out.FranchiseDetails = normalizeFranchise(in.FranchiseDetails)
	out.StartupDetails = normalizeStartup(in.StartupDetails)
	out.InvestorDetails = normalizeInvestor(in.InvestorDetails)
	out.DigitalAssetDetails = normalizeDigitalAsset(in.DigitalAssetDetails)

	out.SubmittedAt = cloneInt64(in.SubmittedAt)
	out.DeletedAt = cloneInt64(in.DeletedAt)

	return &out
}

func normalizeBusiness(d *entity.BusinessDetails) *entity.BusinessDetails {
	if d == nil {
		return nil
	}
	out := *d
	out.Operations.SellingReason = strings.TrimSpace(d.Operations.SellingReason)
	out.Sale.Highlights = strings.TrimSpace(d.Sale.Highlights)
	defaultCurrency(&out.Financials.AnnualRevenue)
	out.Financials.NetProfit = cloneMoney(d.Financials.NetProfit)
	out.Financials.ProfitMargin = cloneFloat64(d.Financials.ProfitMargin)
	defaultCurrency(&out.Sale.AskingPrice)
	return &out
}

func normalizeFranchise(d *entity.FranchiseDetails) *entity.FranchiseDetails {
	if d == nil {
		return nil
	}
	out := *d
	out.BrandName = strings.TrimSpace(d.BrandName)
	out.Training.Summary = strings.TrimSpace(d.Training.Summary)
	out.Training.DurationWeeks = cloneInt(d.Training.DurationWeeks)
	defaultCurrency(&out.Investment.FranchiseFee)
	defaultCurrency(&out.Investment.TotalMin)
	defaultCurrency(&out.Investment.TotalMax)
	return &out
}

func normalizeStartup(d *entity.StartupDetails) *entity.StartupDetails {
	if d == nil {
		return nil
	}
	out := *d
	out.Pitch = strings.TrimSpace(d.Pitch)
	out.Traction = strings.TrimSpace(d.Traction)
	out.FundingRaised = cloneMoney(d.FundingRaised)
	out.MonthlyRevenue = cloneMoney(d.MonthlyRevenue)
	defaultCurrency(&out.TargetRaise)
	return &out
}

func normalizeInvestor(d *entity.InvestorDetails) *entity.InvestorDetails {
	if d == nil {
		return nil
	}
	out := *d
	out.InvestmentPhilosophy = strings.TrimSpace(d.InvestmentPhilosophy)
	out.PreferredStages = cloneStrings(d.PreferredStages)
	out.DealStructures = cloneStrings(d.DealStructures)
	out.PastInvestments = cloneInt(d.PastInvestments)
	defaultCurrency(&out.InvestmentRange.Min)
	defaultCurrency(&out.InvestmentRange.Max)
	return &out
}

func normalizeDigitalAsset(d *entity.DigitalAssetDetails) *entity.DigitalAssetDetails {
	if d == nil {
		return nil
	}
	out := *d
	out.Monetization = strings.TrimSpace(d.Monetization)
	out.TechStack = cloneStrings(d.TechStack)
	out.MonthlyProfit = cloneMoney(d.MonthlyProfit)
	defaultCurrency(&out.MonthlyRevenue)
	defaultCurrency(&out.AskingPrice)
	return &out
}

func defaultCurrency(m *entity.Money) {
	if m.Currency == "" {
		m.Currency = entity.DefaultCurrency
	}
}

func cloneMoney(m *entity.Money) *entity.Money {
	if m == nil {
		return nil
	}
	out := *m
	defaultCurrency(&out)
	return &out
}

func cloneGalleryImage(g *entity.GalleryImage) *entity.GalleryImage {
	if g == nil {
		return nil
	}
	out := *g
	return &out
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s...)
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

func cloneInt64(v *int64) *int64 {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

func cloneFloat64(v *float64) *float64 {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
