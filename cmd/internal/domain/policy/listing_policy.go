package policy

import (
	"listingdesk/cmd/internal/domain/entity"
	"listingdesk/cmd/internal/utils/apierror"
)

// ListingPolicy is the permission oracle for listing mutations: a record may
// only be written by its owner or by an elevated actor, and the check runs
// before any store call.
// It returns apierror.ErrorResponse directly for seamless integration with handlers.
type ListingPolicy struct{}

func NewListingPolicy() *ListingPolicy {
	return &ListingPolicy{}
}

func (p *ListingPolicy) CanView(listing *entity.Listing, actor *entity.User) apierror.ErrorResponse {
	if listing == nil {
		return apierror.NotFoundError
	}
	// Published listings are public; anything else is owner/elevated only.
	if listing.Status == entity.StatusPublished && !listing.IsDeleted {
		return nil
	}
	if p.owns(listing, actor) || actor.IsElevated() {
		return nil
	}
	return apierror.NotFoundError // do not reveal that the record exists
}

func (p *ListingPolicy) CanCreate(actor *entity.User) apierror.ErrorResponse {
	if !actor.Permissions.HasEffective(entity.PermissionCreateListings) {
		return apierror.PermissionDeniedError
	}
	return nil
}

func (p *ListingPolicy) CanEdit(listing *entity.Listing, actor *entity.User) apierror.ErrorResponse {
	if listing == nil {
		return apierror.NotFoundError
	}
	if p.owns(listing, actor) || actor.IsElevated() {
		return nil
	}
	return apierror.PermissionDeniedError
}

func (p *ListingPolicy) CanDelete(listing *entity.Listing, actor *entity.User) apierror.ErrorResponse {
	return p.CanEdit(listing, actor)
}

func (p *ListingPolicy) CanArchive(listing *entity.Listing, actor *entity.User) apierror.ErrorResponse {
	return p.CanEdit(listing, actor)
}

func (p *ListingPolicy) CanUpload(actor *entity.User) apierror.ErrorResponse {
	if !actor.Permissions.HasEffective(entity.PermissionUploadAssets) {
		return apierror.PermissionDeniedError
	}
	return nil
}

func (p *ListingPolicy) owns(listing *entity.Listing, actor *entity.User) bool {
	return listing.OwnerID == actor.ID
}
