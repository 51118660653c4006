package entity

// VerificationStatus of an uploaded listing document.
const (
	VerificationPending  = "pending"
	VerificationVerified = "verified"
	VerificationRejected = "rejected"
)

// ImageMetadata is assembled after a successful image upload. Width/Height
// are probed best-effort and omitted when the image cannot be decoded.
type ImageMetadata struct {
	URL         string `bson:"url" json:"url"`
	Path        string `bson:"path" json:"path"`
	Alt         string `bson:"alt,omitempty" json:"alt,omitempty"`
	Width       *int   `bson:"width,omitempty" json:"width,omitempty"`
	Height      *int   `bson:"height,omitempty" json:"height,omitempty"`
	Size        int64  `bson:"size" json:"size"`
	ContentType string `bson:"contentType" json:"contentType"`
	UploadedAt  int64  `bson:"uploadedAt" json:"uploadedAt"`
}

// DocumentMetadata describes a document attached to a listing.
type DocumentMetadata struct {
	ID                 string `bson:"id" json:"id"`
	Type               string `bson:"type" json:"type"`
	Name               string `bson:"name" json:"name"`
	Description        string `bson:"description,omitempty" json:"description,omitempty"`
	URL                string `bson:"url" json:"url"`
	Path               string `bson:"path" json:"path"`
	Format             string `bson:"format" json:"format"`
	Size               int64  `bson:"size" json:"size"`
	ContentType        string `bson:"contentType" json:"contentType"`
	IsPublic           bool   `bson:"isPublic" json:"isPublic"`
	UploadedAt         int64  `bson:"uploadedAt" json:"uploadedAt"`
	VerificationStatus string `bson:"verificationStatus" json:"verificationStatus"`
}
