package contract

type EventType string

const (
	EventPing EventType = "ping"

	EventConnectionKill EventType = "CONNECTION_KILL"
	EventSessionExpired EventType = "SESSION_EXPIRED"
	EventAck            EventType = "ACK"

	EventListingCreated   EventType = "LISTING_CREATED"
	EventListingSubmitted EventType = "LISTING_SUBMITTED"
	EventListingUpdated   EventType = "LISTING_UPDATED"
	EventListingArchived  EventType = "LISTING_ARCHIVED"
	EventListingDeleted   EventType = "LISTING_DELETED"
)

// IncomingSocketMessage is used for messages we receive from the users.
type IncomingSocketMessage struct {
	Type EventType `json:"type"`
}

// OutgoingSocketMessage is what we send to the Client
type OutgoingSocketMessage struct {
	Type EventType   `json:"type"`
	Data interface{} `json:"data,omitempty"`
}
