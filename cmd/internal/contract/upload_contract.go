package contract

const (
	MaxImageSizeBytes    = 5 * 1024 * 1024
	MaxDocumentSizeBytes = 20 * 1024 * 1024
)

var (
	ValidImageTypes    = []string{"png", "jpg", "jpeg", "webp", "gif"}
	ValidDocumentTypes = []string{"pdf", "doc", "docx", "xls", "xlsx", "csv", "png", "jpg", "jpeg"}
)

// UploadDocumentRequest travels in the 'json_payload' form field next to the
// file part.
type UploadDocumentRequest struct {
	Type        string `json:"type" validate:"required,min=2,max=60,nospaces"`
	Description string `json:"description" validate:"omitempty,max=500"`
	IsPublic    bool   `json:"is_public"`
}

// DeleteAssetRequest targets a stored object by its path.
type DeleteAssetRequest struct {
	Path string `json:"path" validate:"required,min=1,max=500"`
}
