package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"listingdesk/cmd/internal/contract"
	"listingdesk/cmd/internal/domain/entity"
	"listingdesk/cmd/internal/utils"
	"listingdesk/cmd/internal/utils/apierror"
)

// ListingService accepts *entity.User so the service can check ownership
// without hitting the DB again. Bodies bind straight into the record type;
// deep validation is the schema engine's job, not the HTTP layer's.
type ListingService interface {
	GetListing(ctx context.Context, actor *entity.User, id string) (*contract.ListingResponse, apierror.ErrorResponse)
	GetMyListings(ctx context.Context, actor *entity.User) ([]*contract.ListingResponse, apierror.ErrorResponse)
	SaveDraft(ctx context.Context, actor *entity.User, candidate *entity.Listing) (*contract.ListingResponse, apierror.ErrorResponse)
	Submit(ctx context.Context, actor *entity.User, candidate *entity.Listing) (*contract.SubmitResponse, apierror.ErrorResponse)
	Update(ctx context.Context, actor *entity.User, id string, candidate *entity.Listing) (*contract.ListingResponse, apierror.ErrorResponse)
	SoftDelete(ctx context.Context, actor *entity.User, id string) apierror.ErrorResponse
	Archive(ctx context.Context, actor *entity.User, id string) apierror.ErrorResponse
}

type DefaultListingRoute struct {
	ListingService ListingService
}

func NewListingDefault(listingService ListingService) *DefaultListingRoute {
	return &DefaultListingRoute{ListingService: listingService}
}

func (l *DefaultListingRoute) GetListings(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	listings, apierr := l.ListingService.GetMyListings(c.Request().Context(), user)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"listings": listings}
	return c.JSON(http.StatusOK, &resp)
}

func (l *DefaultListingRoute) GetListing(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	listing, apierr := l.ListingService.GetListing(c.Request().Context(), user, c.Param("id"))
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, listing)
}

func (l *DefaultListingRoute) SaveDraft(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var candidate entity.Listing
	if err := c.Bind(&candidate); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	draft, apierr := l.ListingService.SaveDraft(c.Request().Context(), user, &candidate)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, draft)
}

func (l *DefaultListingRoute) Submit(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var candidate entity.Listing
	if err := c.Bind(&candidate); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	submitted, apierr := l.ListingService.Submit(c.Request().Context(), user, &candidate)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, submitted)
}

func (l *DefaultListingRoute) UpdateListing(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var candidate entity.Listing
	if err := c.Bind(&candidate); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	updated, apierr := l.ListingService.Update(c.Request().Context(), user, c.Param("id"), &candidate)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, updated)
}

func (l *DefaultListingRoute) DeleteListing(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	if apierr := l.ListingService.SoftDelete(c.Request().Context(), user, c.Param("id")); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.NoContent(http.StatusOK)
}

func (l *DefaultListingRoute) ArchiveListing(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	if apierr := l.ListingService.Archive(c.Request().Context(), user, c.Param("id")); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.NoContent(http.StatusOK)
}
