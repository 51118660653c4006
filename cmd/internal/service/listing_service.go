package service

import (
	"context"
	"errors"

	"github.com/labstack/gommon/log"

	"listingdesk/cmd/internal/contract"
	"listingdesk/cmd/internal/domain/docstore"
	"listingdesk/cmd/internal/domain/entity"
	"listingdesk/cmd/internal/domain/events"
	"listingdesk/cmd/internal/domain/policy"
	"listingdesk/cmd/internal/domain/schema"
	"listingdesk/cmd/internal/utils/apierror"
)

const ListingCollection = "listings"

type DefaultListingService struct {
	Store     docstore.Store
	Policy    *policy.ListingPolicy
	WSService *WebSocketService
}

func NewListingService(store docstore.Store, pol *policy.ListingPolicy, wsService *WebSocketService) *DefaultListingService {
	return &DefaultListingService{
		Store:     store,
		Policy:    pol,
		WSService: wsService,
	}
}

func (s *DefaultListingService) GetListing(ctx context.Context, actor *entity.User, id string) (*contract.ListingResponse, apierror.ErrorResponse) {
	listing, apierr := s.fetch(ctx, id)
	if apierr != nil {
		return nil, apierr
	}

	if apierr := s.Policy.CanView(listing, actor); apierr != nil {
		return nil, apierr
	}

	if listing.Status == entity.StatusPublished && !listing.IsDeleted {
		go s.bumpViewCount(listing.ID)
	}
	return contract.ToListingResponse(listing), nil
}

// GetMyListings returns the actor's own non-deleted listings. Elevated actors
// see every non-deleted record.
func (s *DefaultListingService) GetMyListings(ctx context.Context, actor *entity.User) ([]*contract.ListingResponse, apierror.ErrorResponse) {
	filter := map[string]any{"isDeleted": false}
	if !actor.IsElevated() {
		filter["ownerId"] = actor.ID
	}

	var listings []*entity.Listing
	if err := s.Store.Find(ctx, ListingCollection, filter, &listings); err != nil {
		log.Errorf("failed to fetch listings for user %d: %v", actor.ID, err)
		return nil, apierror.PersistenceError
	}

	resp := make([]*contract.ListingResponse, len(listings))
	for i, l := range listings {
		resp[i] = contract.ToListingResponse(l)
	}
	return resp, nil
}

// SaveDraft persists an incomplete record. Drafts skip full-schema validation
// on purpose; only the type discriminator has to be recognizable. A candidate
// without an id creates a new draft, one with an id updates it in place.
func (s *DefaultListingService) SaveDraft(ctx context.Context, actor *entity.User, candidate *entity.Listing) (*contract.ListingResponse, apierror.ErrorResponse) {
	if !candidate.Type.Known() {
		return nil, apierror.UnknownListingType
	}

	if candidate.ID == "" {
		return s.createDraft(ctx, actor, candidate)
	}

	existing, apierr := s.fetch(ctx, candidate.ID)
	if apierr != nil {
		return nil, apierr
	}
	if apierr := s.Policy.CanEdit(existing, actor); apierr != nil {
		return nil, apierr
	}
	if existing.Status != entity.StatusDraft {
		return nil, apierror.DraftStateError
	}
	if candidate.Type != existing.Type {
		return nil, apierror.TypeImmutableError
	}

	fields := mutableFields(candidate)
	if err := s.Store.Update(ctx, ListingCollection, existing.ID, fields); err != nil {
		log.Errorf("failed to update draft %s: %v", existing.ID, err)
		return nil, apierror.PersistenceError
	}

	updated, apierr := s.fetch(ctx, existing.ID)
	if apierr != nil {
		return nil, apierr
	}
	return contract.ToListingResponse(updated), nil
}

// Submit validates the full record against its schema and moves it to
// pending. Validation failure is returned as the complete field error list
// and the store is never contacted.
func (s *DefaultListingService) Submit(ctx context.Context, actor *entity.User, candidate *entity.Listing) (*contract.SubmitResponse, apierror.ErrorResponse) {
	if !candidate.Type.Known() {
		return nil, apierror.UnknownListingType
	}

	normalized, errs := schema.Get(candidate.Type).Validate(candidate)
	if errs != nil {
		return nil, apierror.FromFieldErrors(errs.ByPath())
	}

	if candidate.ID == "" {
		if apierr := s.Policy.CanCreate(actor); apierr != nil {
			return nil, apierr
		}

		normalized.OwnerID = actor.ID
		normalized.Status = entity.StatusPending
		normalized.IsDeleted = false

		// submittedAt is server-assigned like every other timestamp; stamping
		// it at Create keeps submission a single write.
		id, err := s.Store.Create(ctx, ListingCollection, normalized, "submittedAt")
		if err != nil {
			log.Errorf("failed to create listing: %v", err)
			return nil, apierror.PersistenceError
		}

		created, apierr := s.fetch(ctx, id)
		if apierr != nil {
			return nil, apierr
		}

		s.dispatch(&events.ListingSubmitted{ListingResponse: contract.ToListingResponse(created)})
		return &contract.SubmitResponse{ID: id, Status: string(entity.StatusPending)}, nil
	}

	existing, apierr := s.fetch(ctx, candidate.ID)
	if apierr != nil {
		return nil, apierr
	}
	if apierr := s.Policy.CanEdit(existing, actor); apierr != nil {
		return nil, apierr
	}
	if existing.Status != entity.StatusDraft && existing.Status != entity.StatusPending {
		return nil, apierror.SubmitStateError
	}
	if normalized.Type != existing.Type {
		return nil, apierror.TypeImmutableError
	}

	fields := mutableFields(normalized)
	fields["status"] = entity.StatusPending
	fields["submittedAt"] = docstore.ServerTimestamp

	if err := s.Store.Update(ctx, ListingCollection, existing.ID, fields); err != nil {
		log.Errorf("failed to submit listing %s: %v", existing.ID, err)
		return nil, apierror.PersistenceError
	}

	normalized.ID = existing.ID
	normalized.OwnerID = existing.OwnerID
	normalized.Status = entity.StatusPending
	s.dispatch(&events.ListingSubmitted{ListingResponse: contract.ToListingResponse(normalized)})
	return &contract.SubmitResponse{ID: existing.ID, Status: string(entity.StatusPending)}, nil
}

// Update patches an existing record's editable fields without full-schema
// validation. Status and ownership never change through this path.
func (s *DefaultListingService) Update(ctx context.Context, actor *entity.User, id string, candidate *entity.Listing) (*contract.ListingResponse, apierror.ErrorResponse) {
	existing, apierr := s.fetch(ctx, id)
	if apierr != nil {
		return nil, apierr
	}
	if apierr := s.Policy.CanEdit(existing, actor); apierr != nil {
		return nil, apierr
	}

	// The discriminator is immutable; patches carry the record's own type.
	candidate.Type = existing.Type

	fields := mutableFields(candidate)
	if err := s.Store.Update(ctx, ListingCollection, id, fields); err != nil {
		log.Errorf("failed to update listing %s: %v", id, err)
		return nil, apierror.PersistenceError
	}

	updated, apierr := s.fetch(ctx, id)
	if apierr != nil {
		return nil, apierr
	}

	resp := contract.ToListingResponse(updated)
	s.dispatch(&events.ListingUpdated{ListingResponse: resp})
	return resp, nil
}

// SoftDelete flags the record as deleted and stamps deletedAt. The status is
// left untouched and the document stays retrievable by id for its owner.
func (s *DefaultListingService) SoftDelete(ctx context.Context, actor *entity.User, id string) apierror.ErrorResponse {
	existing, apierr := s.fetch(ctx, id)
	if apierr != nil {
		return apierr
	}
	if apierr := s.Policy.CanDelete(existing, actor); apierr != nil {
		return apierr
	}

	fields := map[string]any{
		"isDeleted": true,
		"deletedAt": docstore.ServerTimestamp,
		"updatedAt": docstore.ServerTimestamp,
	}
	if err := s.Store.Update(ctx, ListingCollection, id, fields); err != nil {
		log.Errorf("failed to soft-delete listing %s: %v", id, err)
		return apierror.PersistenceError
	}

	s.dispatch(&events.ListingDeleted{ListingID: id})
	return nil
}

// Archive is the terminal manual transition, allowed from published and
// rejected only.
func (s *DefaultListingService) Archive(ctx context.Context, actor *entity.User, id string) apierror.ErrorResponse {
	existing, apierr := s.fetch(ctx, id)
	if apierr != nil {
		return apierr
	}
	if apierr := s.Policy.CanArchive(existing, actor); apierr != nil {
		return apierr
	}
	if existing.Status != entity.StatusPublished && existing.Status != entity.StatusRejected {
		return apierror.ArchiveStateError
	}

	fields := map[string]any{
		"status":    entity.StatusArchived,
		"updatedAt": docstore.ServerTimestamp,
	}
	if err := s.Store.Update(ctx, ListingCollection, id, fields); err != nil {
		log.Errorf("failed to archive listing %s: %v", id, err)
		return apierror.PersistenceError
	}

	s.dispatch(&events.ListingArchived{ListingID: id})
	return nil
}

func (s *DefaultListingService) createDraft(ctx context.Context, actor *entity.User, candidate *entity.Listing) (*contract.ListingResponse, apierror.ErrorResponse) {
	if apierr := s.Policy.CanCreate(actor); apierr != nil {
		return nil, apierr
	}

	candidate.OwnerID = actor.ID
	candidate.Status = entity.StatusDraft
	candidate.IsDeleted = false
	candidate.SubmittedAt = nil
	candidate.DeletedAt = nil

	id, err := s.Store.Create(ctx, ListingCollection, candidate)
	if err != nil {
		log.Errorf("failed to create draft: %v", err)
		return nil, apierror.PersistenceError
	}
	candidate.ID = id

	created, apierr := s.fetch(ctx, id)
	if apierr != nil {
		return nil, apierr
	}

	resp := contract.ToListingResponse(created)
	s.dispatch(&events.ListingCreated{ListingResponse: resp})
	return resp, nil
}

func (s *DefaultListingService) fetch(ctx context.Context, id string) (*entity.Listing, apierror.ErrorResponse) {
	var listing entity.Listing
	err := s.Store.Get(ctx, ListingCollection, id, &listing)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, apierror.NotFoundError
	}
	if err != nil {
		log.Errorf("failed to fetch listing %s: %v", id, err)
		return nil, apierror.PersistenceError
	}
	return &listing, nil
}

// bumpViewCount is best effort; a failed increment is not worth failing a
// read. The store applies the increment atomically, so concurrent views do
// not lose counts.
func (s *DefaultListingService) bumpViewCount(id string) {
	if err := s.Store.Increment(context.Background(), ListingCollection, id, "viewCount", 1); err != nil {
		log.Warnf("failed to bump view count for %s: %v", id, err)
	}
}

func (s *DefaultListingService) dispatch(evt events.SocketEvent) {
	if s.WSService == nil {
		return
	}
	go s.WSService.Broadcast(context.Background(), evt)
}

// mutableFields is the partial-update projection of a candidate record: the
// client-editable fields plus the payload slot for its type. Timestamps,
// status, ownership and the soft-delete flag are managed by the lifecycle
// methods, never patched from here.
func mutableFields(l *entity.Listing) map[string]any {
	fields := map[string]any{
		"name":        l.Name,
		"industries":  l.Industries,
		"description": l.Description,
		"plan":        l.Plan,
		"location":    l.Location,
		"contactInfo": l.ContactInfo,
		"media":       l.Media,
		"documents":   l.Documents,
		"updatedAt":   docstore.ServerTimestamp,
	}

	switch l.Type {
	case entity.TypeBusiness:
		fields["businessDetails"] = l.BusinessDetails
	case entity.TypeFranchise:
		fields["franchiseDetails"] = l.FranchiseDetails
	case entity.TypeStartup:
		fields["startupDetails"] = l.StartupDetails
	case entity.TypeInvestor:
		fields["investorDetails"] = l.InvestorDetails
	case entity.TypeDigitalAsset:
		fields["digitalAssetDetails"] = l.DigitalAssetDetails
	}
	return fields
}
