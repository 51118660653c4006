package events

import "listingdesk/cmd/internal/contract"

type SocketEvent interface {
	GetType() contract.EventType
}

type Ack struct{}

func (*Ack) GetType() contract.EventType {
	return contract.EventAck
}

type ConnectionKill struct {
	Reason *string `json:"reason,omitempty"`
}

func (e *ConnectionKill) GetType() contract.EventType {
	return contract.EventConnectionKill
}

// ListingCreated holds the whole listing response body.
type ListingCreated struct {
	*contract.ListingResponse
}

func (e *ListingCreated) GetType() contract.EventType {
	return contract.EventListingCreated
}

// ListingSubmitted notifies dashboards that a record entered review.
type ListingSubmitted struct {
	*contract.ListingResponse
}

func (e *ListingSubmitted) GetType() contract.EventType {
	return contract.EventListingSubmitted
}

type ListingUpdated struct {
	*contract.ListingResponse
}

func (e *ListingUpdated) GetType() contract.EventType {
	return contract.EventListingUpdated
}

type ListingArchived struct {
	ListingID string `json:"id"`
}

func (e *ListingArchived) GetType() contract.EventType {
	return contract.EventListingArchived
}

// ListingDeleted carries only the id; the record itself is soft-deleted,
// not removed.
type ListingDeleted struct {
	ListingID string `json:"id"`
}

func (e *ListingDeleted) GetType() contract.EventType {
	return contract.EventListingDeleted
}
