package service

import (
	"bytes"
	"context"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/gommon/log"

	"listingdesk/cmd/internal/contract"
	"listingdesk/cmd/internal/domain/entity"
	"listingdesk/cmd/internal/domain/policy"
	"listingdesk/cmd/internal/infrastructure/aws/storage"
	"listingdesk/cmd/internal/utils"
	"listingdesk/cmd/internal/utils/apierror"
	"listingdesk/cmd/internal/utils/uid"
)

type DefaultUploadService struct {
	Blob     storage.BlobClient
	Policy   *policy.ListingPolicy
	Validate *validator.Validate
}

func NewUploadService(blob storage.BlobClient, pol *policy.ListingPolicy, validate *validator.Validate) *DefaultUploadService {
	return &DefaultUploadService{
		Blob:     blob,
		Policy:   pol,
		Validate: validate,
	}
}

// UploadImage stores a gallery/featured image under a fresh uuid key and
// assembles its metadata. Pixel dimensions are probed best-effort: a file we
// cannot decode still uploads, just without width/height.
func (u *DefaultUploadService) UploadImage(
	ctx context.Context,
	actor *entity.User,
	fileHeader *multipart.FileHeader,
	progress storage.ProgressFunc,
) (*entity.ImageMetadata, apierror.ErrorResponse) {
	if apierr := u.Policy.CanUpload(actor); apierr != nil {
		return nil, apierr
	}

	ext, apierr := checkUploadFile(fileHeader, contract.MaxImageSizeBytes, contract.ValidImageTypes)
	if apierr != nil {
		return nil, apierr
	}

	data, apierr := readUploadFile(fileHeader)
	if apierr != nil {
		return nil, apierr
	}

	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return nil, apierror.InvalidMediaTypeError
	}

	key := storage.PathImages + uuid.NewString() + strings.ToLower(ext)
	if err := u.Blob.Upload(ctx, key, data, mtype.String(), progress); err != nil {
		log.Errorf("failed to upload image %s: %v", key, err)
		return nil, apierror.UploadFailedError
	}

	meta := &entity.ImageMetadata{
		URL:         u.Blob.PublicURL(key),
		Path:        key,
		Alt:         utils.BaseName(fileHeader.Filename),
		Size:        int64(len(data)),
		ContentType: mtype.String(),
		UploadedAt:  utils.NowUTC(),
	}

	if cfg, _, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		meta.Width = &cfg.Width
		meta.Height = &cfg.Height
	} else {
		log.Warnf("could not probe dimensions of %s: %v", fileHeader.Filename, err)
	}
	return meta, nil
}

// UploadDocument stores a listing document under documents/{type}/ and
// returns its metadata with a fresh id and a pending verification status.
func (u *DefaultUploadService) UploadDocument(
	ctx context.Context,
	actor *entity.User,
	req *contract.UploadDocumentRequest,
	fileHeader *multipart.FileHeader,
	progress storage.ProgressFunc,
) (*entity.DocumentMetadata, apierror.ErrorResponse) {
	if apierr := u.Policy.CanUpload(actor); apierr != nil {
		return nil, apierr
	}

	utils.Sanitize(req)
	if valerr := u.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	ext, apierr := checkUploadFile(fileHeader, contract.MaxDocumentSizeBytes, contract.ValidDocumentTypes)
	if apierr != nil {
		return nil, apierr
	}

	data, apierr := readUploadFile(fileHeader)
	if apierr != nil {
		return nil, apierr
	}

	mtype := mimetype.Detect(data)
	key := storage.PathDocuments + req.Type + "/" + uuid.NewString() + strings.ToLower(ext)
	if err := u.Blob.Upload(ctx, key, data, mtype.String(), progress); err != nil {
		log.Errorf("failed to upload document %s: %v", key, err)
		return nil, apierror.UploadFailedError
	}

	return &entity.DocumentMetadata{
		ID:                 uid.GenerateString(),
		Type:               req.Type,
		Name:               fileHeader.Filename,
		Description:        req.Description,
		URL:                u.Blob.PublicURL(key),
		Path:               key,
		Format:             strings.ToUpper(strings.TrimPrefix(ext, ".")),
		Size:               int64(len(data)),
		ContentType:        mtype.String(),
		IsPublic:           req.IsPublic,
		UploadedAt:         utils.NowUTC(),
		VerificationStatus: entity.VerificationPending,
	}, nil
}

func (u *DefaultUploadService) DeleteImage(ctx context.Context, actor *entity.User, path string) apierror.ErrorResponse {
	return u.deleteObject(ctx, actor, path, storage.PathImages)
}

func (u *DefaultUploadService) DeleteDocument(ctx context.Context, actor *entity.User, path string) apierror.ErrorResponse {
	return u.deleteObject(ctx, actor, path, storage.PathDocuments)
}

// deleteObject removes one stored asset. Keys outside the expected namespace
// are rejected so this route can never touch arbitrary bucket objects.
func (u *DefaultUploadService) deleteObject(ctx context.Context, actor *entity.User, path, prefix string) apierror.ErrorResponse {
	if apierr := u.Policy.CanUpload(actor); apierr != nil {
		return apierr
	}

	if !strings.HasPrefix(path, prefix) || strings.Contains(path, "..") {
		return apierror.NotFoundError
	}

	if err := u.Blob.Delete(ctx, path); err != nil {
		log.Errorf("failed to delete object %s: %v", path, err)
		return apierror.InternalServerError
	}
	return nil
}

func checkUploadFile(fileHeader *multipart.FileHeader, maxSize int64, validTypes []string) (string, apierror.ErrorResponse) {
	if fileHeader == nil {
		return "", apierror.MissingFileError
	}

	if strings.TrimSpace(fileHeader.Filename) == "" {
		return "", apierror.MissingFileNameError
	}

	if fileHeader.Size > maxSize {
		return "", apierror.NewFileTooLargeError(maxSize)
	}

	ext, ok := utils.CheckFileExt(fileHeader.Filename, validTypes)
	if !ok {
		return "", apierror.NewInvalidFileExtError(ext)
	}
	return ext, nil
}

func readUploadFile(fileHeader *multipart.FileHeader) ([]byte, apierror.ErrorResponse) {
	file, err := fileHeader.Open()
	if err != nil {
		log.Errorf("failed to open file: %v", err)
		return nil, apierror.InternalServerError
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		log.Errorf("failed to read file: %v", err)
		return nil, apierror.InternalServerError
	}
	return data, nil
}
