package entity

// ListingType discriminates which payload a listing carries.
// It is immutable once the record is created.
type ListingType string

const (
	TypeBusiness     ListingType = "business"
	TypeFranchise    ListingType = "franchise"
	TypeStartup      ListingType = "startup"
	TypeInvestor     ListingType = "investor"
	TypeDigitalAsset ListingType = "digital_asset"
)

// Known reports whether t is one of the five supported listing types.
func (t ListingType) Known() bool {
	switch t {
	case TypeBusiness, TypeFranchise, TypeStartup, TypeInvestor, TypeDigitalAsset:
		return true
	}
	return false
}

// ListingStatus is the review lifecycle state of a listing.
// Soft deletion is an orthogonal flag, not a status.
type ListingStatus string

const (
	StatusDraft     ListingStatus = "draft"
	StatusPending   ListingStatus = "pending"
	StatusPublished ListingStatus = "published"
	StatusRejected  ListingStatus = "rejected"
	StatusArchived  ListingStatus = "archived"
)

type ListingPlan string

const (
	PlanFree     ListingPlan = "free"
	PlanBasic    ListingPlan = "basic"
	PlanAdvanced ListingPlan = "advanced"
	PlanPremium  ListingPlan = "premium"
	PlanPlatinum ListingPlan = "platinum"
)

// Money is a currency-tagged amount. Currency defaults to INR when omitted.
type Money struct {
	Value    float64 `bson:"value" json:"value"`
	Currency string  `bson:"currency,omitempty" json:"currency,omitempty"`
}

const DefaultCurrency = "INR"

type Location struct {
	Country string `bson:"country,omitempty" json:"country,omitempty"`
	State   string `bson:"state" json:"state"`
	City    string `bson:"city" json:"city"`
	Address string `bson:"address,omitempty" json:"address,omitempty"`
	Pincode string `bson:"pincode,omitempty" json:"pincode,omitempty"`
}

const DefaultCountry = "India"

type ContactInfo struct {
	Email            string `bson:"email" json:"email"`
	Phone            string `bson:"phone,omitempty" json:"phone,omitempty"`
	AlternatePhone   string `bson:"alternatePhone,omitempty" json:"alternatePhone,omitempty"`
	Website          string `bson:"website,omitempty" json:"website,omitempty"`
	ContactName      string `bson:"contactName,omitempty" json:"contactName,omitempty"`
	PreferredContact string `bson:"preferredContact,omitempty" json:"preferredContact,omitempty"`
}

type GalleryImage struct {
	URL  string `bson:"url" json:"url"`
	Path string `bson:"path" json:"path"`
	Alt  string `bson:"alt,omitempty" json:"alt,omitempty"`
}

type Media struct {
	FeaturedImage *GalleryImage  `bson:"featuredImage,omitempty" json:"featuredImage,omitempty"`
	GalleryImages []GalleryImage `bson:"galleryImages" json:"galleryImages"`
}

// Listing is the root marketplace record. One document per listing in the
// document store; the bson tags are the persisted layout, the json tags the
// wire layout (they name the same fields).
//
// Timestamps are UTC epoch millis and are always server-assigned on the
// relevant transition, never taken from the client.
type Listing struct {
	ID      string      `bson:"_id,omitempty" json:"id,omitempty"`
	OwnerID int64       `bson:"ownerId" json:"ownerId"`
	Type    ListingType `bson:"type" json:"type"`

	Name        string        `bson:"name" json:"name"`
	Industries  []string      `bson:"industries" json:"industries"`
	Description string        `bson:"description" json:"description"`
	Status      ListingStatus `bson:"status" json:"status"`
	Plan        ListingPlan   `bson:"plan" json:"plan"`
	Location    Location      `bson:"location" json:"location"`
	ContactInfo ContactInfo   `bson:"contactInfo" json:"contactInfo"`
	Media       Media         `bson:"media" json:"media"`

	// Exactly one of these is non-nil, selected by Type.
	BusinessDetails     *BusinessDetails     `bson:"businessDetails,omitempty" json:"businessDetails,omitempty"`
	FranchiseDetails    *FranchiseDetails    `bson:"franchiseDetails,omitempty" json:"franchiseDetails,omitempty"`
	StartupDetails      *StartupDetails      `bson:"startupDetails,omitempty" json:"startupDetails,omitempty"`
	InvestorDetails     *InvestorDetails     `bson:"investorDetails,omitempty" json:"investorDetails,omitempty"`
	DigitalAssetDetails *DigitalAssetDetails `bson:"digitalAssetDetails,omitempty" json:"digitalAssetDetails,omitempty"`

	Documents []DocumentMetadata `bson:"documents,omitempty" json:"documents,omitempty"`

	ViewCount int64 `bson:"viewCount" json:"viewCount"`

	IsDeleted   bool   `bson:"isDeleted" json:"isDeleted"`
	CreatedAt   int64  `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt   int64  `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
	SubmittedAt *int64 `bson:"submittedAt,omitempty" json:"submittedAt,omitempty"`
	DeletedAt   *int64 `bson:"deletedAt,omitempty" json:"deletedAt,omitempty"`
}

// Details returns the payload matching the listing type, or nil if the
// payload for that type is absent.
func (l *Listing) Details() any {
	switch l.Type {
	case TypeBusiness:
		if l.BusinessDetails != nil {
			return l.BusinessDetails
		}
	case TypeFranchise:
		if l.FranchiseDetails != nil {
			return l.FranchiseDetails
		}
	case TypeStartup:
		if l.StartupDetails != nil {
			return l.StartupDetails
		}
	case TypeInvestor:
		if l.InvestorDetails != nil {
			return l.InvestorDetails
		}
	case TypeDigitalAsset:
		if l.DigitalAssetDetails != nil {
			return l.DigitalAssetDetails
		}
	}
	return nil
}
