package contract

import (
	"listingdesk/cmd/internal/domain/entity"
	"listingdesk/cmd/internal/utils"
)

// ListingResponse is the wire form of a listing. It shadows the epoch-milli
// timestamps of the embedded record with RFC3339 strings.
type ListingResponse struct {
	*entity.Listing
	CreatedAt   string `json:"createdAt,omitempty"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
	SubmittedAt string `json:"submittedAt,omitempty"`
	DeletedAt   string `json:"deletedAt,omitempty"`
}

func ToListingResponse(l *entity.Listing) *ListingResponse {
	resp := &ListingResponse{Listing: l}
	if l.CreatedAt > 0 {
		resp.CreatedAt = utils.FormatEpoch(l.CreatedAt)
	}
	if l.UpdatedAt > 0 {
		resp.UpdatedAt = utils.FormatEpoch(l.UpdatedAt)
	}
	if l.SubmittedAt != nil {
		resp.SubmittedAt = utils.FormatEpoch(*l.SubmittedAt)
	}
	if l.DeletedAt != nil {
		resp.DeletedAt = utils.FormatEpoch(*l.DeletedAt)
	}
	return resp
}

// SubmitResponse acknowledges a successful submission.
type SubmitResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}
