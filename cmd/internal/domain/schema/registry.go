package schema

import "listingdesk/cmd/internal/domain/entity"

// The registry maps a listing type to its compiled schema. Five listing
// types share the base field set and differ only in their payload rule, so
// adding a type means registering one more schema here.

var (
	// Base covers only the shared fields. It is the fallback for an
	// unrecognized discriminator; records of a known type always get the
	// extended schema.
	Base = New("", baseRules()...)

	business     = extend(entity.TypeBusiness, ruleBusiness)
	franchise    = extend(entity.TypeFranchise, ruleFranchise)
	startup      = extend(entity.TypeStartup, ruleStartup)
	investor     = extend(entity.TypeInvestor, ruleInvestor)
	digitalAsset = extend(entity.TypeDigitalAsset, ruleDigitalAsset)

	registry = map[entity.ListingType]*Schema{
		entity.TypeBusiness:     business,
		entity.TypeFranchise:    franchise,
		entity.TypeStartup:      startup,
		entity.TypeInvestor:     investor,
		entity.TypeDigitalAsset: digitalAsset,
	}
)

func extend(t entity.ListingType, payload Rule) *Schema {
	return New(t, append(baseRules(), payload)...)
}

// Get returns the schema for the given listing type, or Base when the type
// is unrecognized.
func Get(t entity.ListingType) *Schema {
	if s, ok := registry[t]; ok {
		return s
	}
	return Base
}
