package schema

import (
	"regexp"
	"strconv"

	"listingdesk/cmd/internal/domain/entity"
)

// Rules shared by every listing type. Extended schemas are composed as
// baseRules + one payload rule; the order only affects error ordering.

var (
	phoneRe   = regexp.MustCompile(`^\+?[0-9][0-9 -]{5,14}$`)
	pincodeRe = regexp.MustCompile(`^[0-9]{6}$`)
)

func baseRules() []Rule {
	return []Rule{
		ruleName,
		ruleIndustries,
		ruleDescription,
		ruleStatus,
		rulePlan,
		ruleLocation,
		ruleContact,
		ruleMedia,
		ruleDocuments,
	}
}

func ruleName(l *entity.Listing, c *Checker) {
	c.Name("name", l.Name, 3, 100)
}

func ruleIndustries(l *entity.Listing, c *Checker) {
	c.StringList("industries", l.Industries, 1, 3, true)
}

func ruleDescription(l *entity.Listing, c *Checker) {
	c.RequiredString("description", l.Description, 100, 5000)
}

func ruleStatus(l *entity.Listing, c *Checker) {
	c.Enum("status", string(l.Status), true,
		string(entity.StatusDraft),
		string(entity.StatusPending),
		string(entity.StatusPublished),
		string(entity.StatusRejected),
		string(entity.StatusArchived),
	)
}

func rulePlan(l *entity.Listing, c *Checker) {
	c.Enum("plan", string(l.Plan), true,
		string(entity.PlanFree),
		string(entity.PlanBasic),
		string(entity.PlanAdvanced),
		string(entity.PlanPremium),
		string(entity.PlanPlatinum),
	)
}

func ruleLocation(l *entity.Listing, c *Checker) {
	c.RequiredString("location.country", l.Location.Country, 2, 60)
	c.RequiredString("location.state", l.Location.State, 2, 60)
	c.RequiredString("location.city", l.Location.City, 2, 60)
	c.OptionalString("location.address", l.Location.Address, 5, 250)
	if l.Location.Pincode != "" && !pincodeRe.MatchString(l.Location.Pincode) {
		c.Fail("location.pincode", "must be a six-digit pincode")
	}
}

func ruleContact(l *entity.Listing, c *Checker) {
	ci := l.ContactInfo
	c.Email("contactInfo.email", ci.Email, true)
	if ci.Phone != "" && !phoneRe.MatchString(ci.Phone) {
		c.Fail("contactInfo.phone", "must be a valid phone number")
	}
	if ci.AlternatePhone != "" && !phoneRe.MatchString(ci.AlternatePhone) {
		c.Fail("contactInfo.alternatePhone", "must be a valid phone number")
	}
	c.URL("contactInfo.website", ci.Website, false)
	c.OptionalString("contactInfo.contactName", ci.ContactName, 2, 100)
	c.Enum("contactInfo.preferredContact", ci.PreferredContact, false, "email", "phone", "whatsapp")
}

func ruleMedia(l *entity.Listing, c *Checker) {
	if fi := l.Media.FeaturedImage; fi != nil {
		c.URL("media.featuredImage.url", fi.URL, true)
		c.RequiredString("media.featuredImage.path", fi.Path, 1, 500)
	}

	gallery := l.Media.GalleryImages
	if len(gallery) < 3 {
		c.Fail("media.galleryImages", "must have at least 3 entries")
		return
	}
	if len(gallery) > 10 {
		c.Fail("media.galleryImages", "must have at most 10 entries")
		return
	}
	for i, img := range gallery {
		item := indexed("media.galleryImages", i)
		c.URL(item+".url", img.URL, true)
		c.RequiredString(item+".path", img.Path, 1, 500)
		c.OptionalString(item+".alt", img.Alt, 1, 200)
	}
}

func ruleDocuments(l *entity.Listing, c *Checker) {
	for i, doc := range l.Documents {
		item := indexed("documents", i)
		c.RequiredString(item+".id", doc.ID, 1, 100)
		c.RequiredString(item+".type", doc.Type, 2, 60)
		c.RequiredString(item+".name", doc.Name, 1, 200)
		c.OptionalString(item+".description", doc.Description, 1, 500)
		c.URL(item+".url", doc.URL, true)
		c.RequiredString(item+".path", doc.Path, 1, 500)
		c.RequiredString(item+".format", doc.Format, 1, 10)
		c.IntMin(item+".size", int(doc.Size), 0)
		c.Enum(item+".verificationStatus", doc.VerificationStatus, true,
			entity.VerificationPending,
			entity.VerificationVerified,
			entity.VerificationRejected,
		)
	}
}

func indexed(path string, i int) string {
	return path + "[" + strconv.Itoa(i) + "]"
}
