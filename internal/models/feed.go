package models

import (
	"encoding/json"
	"fmt"
)

// EventType identifies what happened in a feed entry.
type EventType string

const (
	EventItemAdded    EventType = "ITEM_ADDED"
	EventItemUpdated  EventType = "ITEM_UPDATED"
	EventPurchased    EventType = "PURCHASED"
	EventMemberJoined EventType = "MEMBER_JOINED"
)

// Valid reports whether t is a known event type.
func (t EventType) Valid() bool {
	switch t {
	case EventItemAdded, EventItemUpdated, EventPurchased, EventMemberJoined:
		return true
	}
	return false
}

// FeedPayload is the event-specific data of a feed entry.
// Each event type has exactly one payload type.
type FeedPayload interface {
	EventType() EventType
}

// ItemAddedPayload is carried by ITEM_ADDED.
type ItemAddedPayload struct {
	ItemName   string `json:"itemName"`
	WishlistID string `json:"wishlistId"`
}

func (ItemAddedPayload) EventType() EventType { return EventItemAdded }

// ItemUpdatedPayload is carried by ITEM_UPDATED.
type ItemUpdatedPayload struct {
	ItemName   string `json:"itemName"`
	WishlistID string `json:"wishlistId"`
}

func (ItemUpdatedPayload) EventType() EventType { return EventItemUpdated }

// PurchasedPayload is carried by PURCHASED. RecipientName is the wishlist title,
// usually the owner's name.
type PurchasedPayload struct {
	ItemName      string `json:"itemName"`
	RecipientName string `json:"recipientName"`
	WishlistID    string `json:"wishlistId"`
}

func (PurchasedPayload) EventType() EventType { return EventPurchased }

// MemberJoinedPayload is carried by MEMBER_JOINED.
type MemberJoinedPayload struct {
	GroupID   string `json:"groupId"`
	GroupName string `json:"groupName"`
}

func (MemberJoinedPayload) EventType() EventType { return EventMemberJoined }

// FeedItem is one recipient's copy of a broadcast event.
type FeedItem struct {
	ID string

	// UserID is the recipient. Never equal to ActorID.
	UserID  string
	ActorID string
	Type    EventType
	Payload FeedPayload

	// RelatedID is the subject entity (e.g. item ID), used for revocation.
	RelatedID string
	CreatedAt int64

	// Actor is joined at read time.
	Actor *UserSummary
}

// MarshalFeedPayload serializes a payload for storage.
func MarshalFeedPayload(p FeedPayload) ([]byte, error) {
	if p == nil {
		return nil, fmt.Errorf("feed payload is nil")
	}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %w", p.EventType(), err)
	}
	return data, nil
}

// UnmarshalFeedPayload decodes stored payload bytes for the given event type.
func UnmarshalFeedPayload(t EventType, data []byte) (FeedPayload, error) {
	var p FeedPayload
	var err error
	switch t {
	case EventItemAdded:
		var v ItemAddedPayload
		err = unmarshalPayload(t, data, &v)
		p = v
	case EventItemUpdated:
		var v ItemUpdatedPayload
		err = unmarshalPayload(t, data, &v)
		p = v
	case EventPurchased:
		var v PurchasedPayload
		err = unmarshalPayload(t, data, &v)
		p = v
	case EventMemberJoined:
		var v MemberJoinedPayload
		err = unmarshalPayload(t, data, &v)
		p = v
	default:
		return nil, fmt.Errorf("unknown feed event type: %q", t)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func unmarshalPayload(t EventType, data []byte, dst any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to unmarshal %s payload: %w", t, err)
	}
	return nil
}
