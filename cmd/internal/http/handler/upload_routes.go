package handler

import (
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"listingdesk/cmd/internal/contract"
	"listingdesk/cmd/internal/domain/entity"
	"listingdesk/cmd/internal/infrastructure/aws/storage"
	"listingdesk/cmd/internal/utils"
	"listingdesk/cmd/internal/utils/apierror"
)

type UploadService interface {
	UploadImage(ctx context.Context, actor *entity.User, fileHeader *multipart.FileHeader, progress storage.ProgressFunc) (*entity.ImageMetadata, apierror.ErrorResponse)
	UploadDocument(ctx context.Context, actor *entity.User, req *contract.UploadDocumentRequest, fileHeader *multipart.FileHeader, progress storage.ProgressFunc) (*entity.DocumentMetadata, apierror.ErrorResponse)
	DeleteImage(ctx context.Context, actor *entity.User, path string) apierror.ErrorResponse
	DeleteDocument(ctx context.Context, actor *entity.User, path string) apierror.ErrorResponse
}

type DefaultUploadRoute struct {
	UploadService UploadService
}

func NewUploadDefault(uploadService UploadService) *DefaultUploadRoute {
	return &DefaultUploadRoute{UploadService: uploadService}
}

func (u *DefaultUploadRoute) UploadImage(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MissingFileError)
	}

	// The HTTP surface has nowhere to stream progress to; the sink is for
	// programmatic callers.
	meta, apierr := u.UploadService.UploadImage(c.Request().Context(), user, fileHeader, nil)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, meta)
}

func (u *DefaultUploadRoute) UploadDocument(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	jsonPayload := strings.TrimSpace(c.FormValue("json_payload"))
	if jsonPayload == "" {
		return c.JSON(http.StatusBadRequest, apierror.FormJSONRequiredError)
	}

	var req contract.UploadDocumentRequest
	if err := json.Unmarshal([]byte(jsonPayload), &req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MissingFileError)
	}

	meta, apierr := u.UploadService.UploadDocument(c.Request().Context(), user, &req, fileHeader, nil)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, meta)
}

func (u *DefaultUploadRoute) DeleteImage(c echo.Context) error {
	return u.deleteAsset(c, u.UploadService.DeleteImage)
}

func (u *DefaultUploadRoute) DeleteDocument(c echo.Context) error {
	return u.deleteAsset(c, u.UploadService.DeleteDocument)
}

func (u *DefaultUploadRoute) deleteAsset(
	c echo.Context,
	remove func(ctx context.Context, actor *entity.User, path string) apierror.ErrorResponse,
) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var req contract.DeleteAssetRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	if strings.TrimSpace(req.Path) == "" {
		return c.JSON(http.StatusBadRequest, apierror.NewMissingParamError("path"))
	}

	if apierr := remove(c.Request().Context(), user, req.Path); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.NoContent(http.StatusOK)
}
