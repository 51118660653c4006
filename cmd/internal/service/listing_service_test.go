package service_test

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listingdesk/cmd/internal/domain/docstore"
	"listingdesk/cmd/internal/domain/entity"
	"listingdesk/cmd/internal/domain/policy"
	"listingdesk/cmd/internal/service"
	"listingdesk/cmd/internal/utils/apierror"
)

// fakeStore keeps listings in a map and stamps timestamps from a strictly
// increasing fake clock, mirroring the real adapter's contract. The mutex is
// for the view-count goroutine.
type fakeStore struct {
	mu    sync.Mutex
	docs  map[string]*entity.Listing
	clock int64
	seq   int

	createCalls int
	updateCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{docs: map[string]*entity.Listing{}, clock: 1000}
}

func (f *fakeStore) tick() int64 {
	f.clock++
	return f.clock
}

func (f *fakeStore) Create(_ context.Context, _ string, doc any, stamps ...string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.createCalls++
	l, ok := doc.(*entity.Listing)
	if !ok {
		return "", fmt.Errorf("unexpected document type %T", doc)
	}

	cp := *l
	f.seq++
	cp.ID = fmt.Sprintf("doc-%d", f.seq)
	now := f.tick()
	cp.CreatedAt = now
	cp.UpdatedAt = now
	for _, stamp := range stamps {
		applyField(&cp, stamp, now)
	}

	f.docs[cp.ID] = &cp
	return cp.ID, nil
}

func (f *fakeStore) Get(_ context.Context, _ string, id string, out any) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	stored, ok := f.docs[id]
	if !ok {
		return docstore.ErrNotFound
	}
	*out.(*entity.Listing) = *stored
	return nil
}

func (f *fakeStore) Find(_ context.Context, _ string, filter map[string]any, out any) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	var res []*entity.Listing
	for _, l := range f.docs {
		if owner, ok := filter["ownerId"]; ok && l.OwnerID != owner.(int64) {
			continue
		}
		if del, ok := filter["isDeleted"]; ok && l.IsDeleted != del.(bool) {
			continue
		}
		cp := *l
		res = append(res, &cp)
	}
	*out.(*[]*entity.Listing) = res
	return nil
}

func (f *fakeStore) Update(_ context.Context, _ string, id string, fields map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.updateCalls++
	l, ok := f.docs[id]
	if !ok {
		return docstore.ErrNotFound
	}

	now := f.tick()
	for k, v := range fields {
		if docstore.IsServerTimestamp(v) {
			v = now
		}
		applyField(l, k, v)
	}
	return nil
}

func (f *fakeStore) Increment(_ context.Context, _ string, id, field string, delta int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	l, ok := f.docs[id]
	if !ok {
		return docstore.ErrNotFound
	}
	if field == "viewCount" {
		l.ViewCount += delta
	}
	return nil
}

func (f *fakeStore) viewCount(id string) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.docs[id].ViewCount
}

func applyField(l *entity.Listing, key string, v any) {
	switch key {
	case "name":
		l.Name = v.(string)
	case "industries":
		l.Industries = v.([]string)
	case "description":
		l.Description = v.(string)
	case "plan":
		l.Plan = v.(entity.ListingPlan)
	case "status":
		l.Status = v.(entity.ListingStatus)
	case "location":
		l.Location = v.(entity.Location)
	case "contactInfo":
		l.ContactInfo = v.(entity.ContactInfo)
	case "media":
		l.Media = v.(entity.Media)
	case "documents":
		l.Documents = v.([]entity.DocumentMetadata)
	case "businessDetails":
		l.BusinessDetails = v.(*entity.BusinessDetails)
	case "franchiseDetails":
		l.FranchiseDetails = v.(*entity.FranchiseDetails)
	case "startupDetails":
		l.StartupDetails = v.(*entity.StartupDetails)
	case "investorDetails":
		l.InvestorDetails = v.(*entity.InvestorDetails)
	case "digitalAssetDetails":
		l.DigitalAssetDetails = v.(*entity.DigitalAssetDetails)
	case "isDeleted":
		l.IsDeleted = v.(bool)
	case "viewCount":
		l.ViewCount = v.(int64)
	case "updatedAt":
		l.UpdatedAt = v.(int64)
	case "submittedAt":
		ts := v.(int64)
		l.SubmittedAt = &ts
	case "deletedAt":
		ts := v.(int64)
		l.DeletedAt = &ts
	}
}

func newListingService(store *fakeStore) *service.DefaultListingService {
	return service.NewListingService(store, policy.NewListingPolicy(), nil)
}

func member(id int64) *entity.User {
	return &entity.User{
		ID:          id,
		Username:    fmt.Sprintf("user%d", id),
		Permissions: entity.PermissionCreateListings | entity.PermissionUploadAssets,
		Active:      true,
	}
}

func manager(id int64) *entity.User {
	u := member(id)
	u.Permissions = u.Permissions.Add(entity.PermissionManageListings)
	return u
}

func validStartupListing() *entity.Listing {
	return &entity.Listing{
		Type:        entity.TypeStartup,
		Name:        "Orbit Analytics",
		Industries:  []string{"software"},
		Description: strings.Repeat("Product analytics for small subscription businesses. ", 4),
		Location:    entity.Location{State: "Karnataka", City: "Bengaluru"},
		ContactInfo: entity.ContactInfo{Email: "founder@orbit.example"},
		Media: entity.Media{
			GalleryImages: []entity.GalleryImage{
				{URL: "https://cdn.example.com/1.jpg", Path: "images/1.jpg"},
				{URL: "https://cdn.example.com/2.jpg", Path: "images/2.jpg"},
				{URL: "https://cdn.example.com/3.jpg", Path: "images/3.jpg"},
			},
		},
		StartupDetails: &entity.StartupDetails{
			Stage:         "growth",
			FoundedYear:   2020,
			TeamSize:      9,
			TargetRaise:   entity.Money{Value: 50_000_000},
			EquityOffered: 12,
			Pitch:         strings.Repeat("x", 150),
		},
	}
}

func validDigitalAssetListing() *entity.Listing {
	l := validStartupListing()
	l.Type = entity.TypeDigitalAsset
	l.StartupDetails = nil
	l.DigitalAssetDetails = &entity.DigitalAssetDetails{
		AssetType:      "saas",
		MonthlyTraffic: 40_000,
		MonthlyRevenue: entity.Money{Value: 250_000},
		TrafficSources: entity.TrafficSources{Organic: 60, Paid: 20, Social: 10, Direct: 5, Referral: 5},
		RevenueSources: entity.RevenueSources{Subscriptions: 100},
		Monetization:   strings.Repeat("x", 180),
		AskingPrice:    entity.Money{Value: 9_000_000},
	}
	return l
}

func TestSubmit_InvalidNeverContactsStore(t *testing.T) {
	store := newFakeStore()
	svc := newListingService(store)

	candidate := validStartupListing()
	candidate.StartupDetails.Pitch = "" // required field missing
	candidate.StartupDetails.TeamSize = 0

	resp, apierr := svc.Submit(context.Background(), member(1), candidate)
	assert.Nil(t, resp)
	require.NotNil(t, apierr)

	structured, ok := apierr.(*apierror.StructuredError)
	require.True(t, ok, "validation failure must carry the field error list")
	assert.Equal(t, 422, structured.Code())
	assert.Contains(t, structured.Errors, "startupDetails.pitch")
	assert.Contains(t, structured.Errors, "startupDetails.teamSize")

	assert.Zero(t, store.createCalls)
	assert.Zero(t, store.updateCalls)
}

func TestSubmit_CreatesPendingRecord(t *testing.T) {
	store := newFakeStore()
	svc := newListingService(store)

	resp, apierr := svc.Submit(context.Background(), member(1), validStartupListing())
	require.Nil(t, apierr)
	require.NotNil(t, resp)
	assert.Equal(t, string(entity.StatusPending), resp.Status)

	stored := store.docs[resp.ID]
	require.NotNil(t, stored)
	assert.Equal(t, entity.StatusPending, stored.Status)
	assert.Equal(t, int64(1), stored.OwnerID)
	require.NotNil(t, stored.SubmittedAt, "submission must stamp submittedAt")
	assert.Equal(t, entity.PlanFree, stored.Plan, "defaults are applied before persisting")
	assert.Zero(t, store.updateCalls, "a new submission is a single write")
}

func TestSubmit_UnknownType(t *testing.T) {
	svc := newListingService(newFakeStore())

	candidate := validStartupListing()
	candidate.Type = "timeshare"

	_, apierr := svc.Submit(context.Background(), member(1), candidate)
	assert.Equal(t, apierror.UnknownListingType, apierr)
}

func TestSaveDraft_TwiceUpdatesInPlace(t *testing.T) {
	store := newFakeStore()
	svc := newListingService(store)
	actor := member(1)

	draft, apierr := svc.SaveDraft(context.Background(), actor, validStartupListing())
	require.Nil(t, apierr)
	assert.Equal(t, entity.StatusDraft, draft.Listing.Status)

	firstCreated := draft.Listing.CreatedAt
	firstUpdated := draft.Listing.UpdatedAt

	again := validStartupListing()
	again.ID = draft.Listing.ID
	again.Name = "Orbit Analytics Labs"

	saved, apierr := svc.SaveDraft(context.Background(), actor, again)
	require.Nil(t, apierr)

	assert.Equal(t, draft.Listing.ID, saved.Listing.ID)
	assert.Equal(t, firstCreated, saved.Listing.CreatedAt, "createdAt never changes after the first persist")
	assert.Greater(t, saved.Listing.UpdatedAt, firstUpdated)
	assert.Equal(t, "Orbit Analytics Labs", saved.Listing.Name)
}

func TestSaveDraft_TypeChangeRejected(t *testing.T) {
	store := newFakeStore()
	svc := newListingService(store)
	actor := member(1)

	draft, apierr := svc.SaveDraft(context.Background(), actor, validStartupListing())
	require.Nil(t, apierr)
	updatesBefore := store.updateCalls

	again := validStartupListing()
	again.ID = draft.Listing.ID
	again.Type = entity.TypeBusiness

	_, apierr = svc.SaveDraft(context.Background(), actor, again)
	assert.Equal(t, apierror.TypeImmutableError, apierr)
	assert.Equal(t, updatesBefore, store.updateCalls)

	stored := store.docs[draft.Listing.ID]
	assert.Equal(t, entity.TypeStartup, stored.Type)
	assert.NotNil(t, stored.StartupDetails)
	assert.Nil(t, stored.BusinessDetails)
}

func TestSubmit_TypeChangeRejected(t *testing.T) {
	store := newFakeStore()
	svc := newListingService(store)
	actor := member(1)

	draft, apierr := svc.SaveDraft(context.Background(), actor, validStartupListing())
	require.Nil(t, apierr)
	updatesBefore := store.updateCalls

	// A fully valid digital-asset body must not slip its payload into an
	// existing startup record.
	candidate := validDigitalAssetListing()
	candidate.ID = draft.Listing.ID

	_, apierr = svc.Submit(context.Background(), actor, candidate)
	assert.Equal(t, apierror.TypeImmutableError, apierr)
	assert.Equal(t, updatesBefore, store.updateCalls)

	stored := store.docs[draft.Listing.ID]
	assert.Equal(t, entity.TypeStartup, stored.Type)
	assert.Equal(t, entity.StatusDraft, stored.Status)
	assert.NotNil(t, stored.StartupDetails)
	assert.Nil(t, stored.DigitalAssetDetails, "the foreign payload never reaches the document")
}

func TestGetListing_CountsViews(t *testing.T) {
	store := newFakeStore()
	svc := newListingService(store)
	actor := member(1)

	draft, apierr := svc.SaveDraft(context.Background(), actor, validStartupListing())
	require.Nil(t, apierr)
	store.docs[draft.Listing.ID].Status = entity.StatusPublished

	_, apierr = svc.GetListing(context.Background(), actor, draft.Listing.ID)
	require.Nil(t, apierr)
	_, apierr = svc.GetListing(context.Background(), actor, draft.Listing.ID)
	require.Nil(t, apierr)

	// The bump runs detached from the request.
	require.Eventually(t, func() bool {
		return store.viewCount(draft.Listing.ID) == 2
	}, time.Second, 10*time.Millisecond, "both views must be counted")
}

func TestSoftDelete_KeepsStatusAndRecord(t *testing.T) {
	store := newFakeStore()
	svc := newListingService(store)
	actor := member(1)

	draft, apierr := svc.SaveDraft(context.Background(), actor, validStartupListing())
	require.Nil(t, apierr)

	require.Nil(t, svc.SoftDelete(context.Background(), actor, draft.Listing.ID))

	stored := store.docs[draft.Listing.ID]
	assert.True(t, stored.IsDeleted)
	require.NotNil(t, stored.DeletedAt)
	assert.Equal(t, entity.StatusDraft, stored.Status, "soft delete leaves the status alone")

	// The owner can still fetch it by id.
	got, apierr := svc.GetListing(context.Background(), actor, draft.Listing.ID)
	require.Nil(t, apierr)
	assert.True(t, got.Listing.IsDeleted)
}

func TestUpdate_NonOwnerDenied(t *testing.T) {
	store := newFakeStore()
	svc := newListingService(store)

	draft, apierr := svc.SaveDraft(context.Background(), member(1), validStartupListing())
	require.Nil(t, apierr)
	updatesBefore := store.updateCalls

	patch := validStartupListing()
	patch.Name = "Hijacked"

	_, apierr = svc.Update(context.Background(), member(2), draft.Listing.ID, patch)
	assert.Equal(t, apierror.PermissionDeniedError, apierr)
	assert.Equal(t, updatesBefore, store.updateCalls, "a denied actor must not reach the store")
}

func TestUpdate_ElevatedActorAllowed(t *testing.T) {
	store := newFakeStore()
	svc := newListingService(store)

	draft, apierr := svc.SaveDraft(context.Background(), member(1), validStartupListing())
	require.Nil(t, apierr)

	patch := validStartupListing()
	patch.Name = "Orbit Analytics India"

	updated, apierr := svc.Update(context.Background(), manager(9), draft.Listing.ID, patch)
	require.Nil(t, apierr)
	assert.Equal(t, "Orbit Analytics India", updated.Listing.Name)
	assert.Equal(t, int64(1), updated.Listing.OwnerID, "ownership never changes on update")
}

func TestArchive_Transitions(t *testing.T) {
	store := newFakeStore()
	svc := newListingService(store)
	actor := member(1)

	draft, apierr := svc.SaveDraft(context.Background(), actor, validStartupListing())
	require.Nil(t, apierr)

	// Archiving a draft is a conflict.
	assert.Equal(t, apierror.ArchiveStateError, svc.Archive(context.Background(), actor, draft.Listing.ID))

	// Reviewer moved it to published out of band.
	store.docs[draft.Listing.ID].Status = entity.StatusPublished

	require.Nil(t, svc.Archive(context.Background(), actor, draft.Listing.ID))
	assert.Equal(t, entity.StatusArchived, store.docs[draft.Listing.ID].Status)
}

func TestGetListing_HiddenFromStrangers(t *testing.T) {
	store := newFakeStore()
	svc := newListingService(store)

	draft, apierr := svc.SaveDraft(context.Background(), member(1), validStartupListing())
	require.Nil(t, apierr)

	// Non-owner, non-elevated: a draft must look like it does not exist.
	_, apierr = svc.GetListing(context.Background(), member(2), draft.Listing.ID)
	assert.Equal(t, apierror.NotFoundError, apierr)

	// Elevated actors see everything.
	_, apierr = svc.GetListing(context.Background(), manager(9), draft.Listing.ID)
	assert.Nil(t, apierr)
}

func TestGetMyListings_ScopedToOwner(t *testing.T) {
	store := newFakeStore()
	svc := newListingService(store)

	_, apierr := svc.SaveDraft(context.Background(), member(1), validStartupListing())
	require.Nil(t, apierr)
	_, apierr = svc.SaveDraft(context.Background(), member(2), validStartupListing())
	require.Nil(t, apierr)

	mine, apierr := svc.GetMyListings(context.Background(), member(1))
	require.Nil(t, apierr)
	assert.Len(t, mine, 1)

	all, apierr := svc.GetMyListings(context.Background(), manager(9))
	require.Nil(t, apierr)
	assert.Len(t, all, 2)
}

func TestSaveDraft_WithoutCreatePermission(t *testing.T) {
	svc := newListingService(newFakeStore())

	actor := member(1)
	actor.Permissions = actor.Permissions.Remove(entity.PermissionCreateListings)

	_, apierr := svc.SaveDraft(context.Background(), actor, validStartupListing())
	assert.Equal(t, apierror.PermissionDeniedError, apierr)
}
