package models

// Conversation is an anonymous question thread about a wishlist.
// The wishlist owner sees the question but not who asked it.
type Conversation struct {
	ID         string
	WishlistID string
	AuthorID   string

	// ItemID is empty when the question is about the wishlist as a whole.
	ItemID   string
	ItemName string

	CreatedAt int64
	UpdatedAt int64

	// Messages are ordered oldest first. Populated by GetConversation.
	Messages []Message

	// LastMessage is populated by ListConversations.
	LastMessage *Message
}

// Message is one post in a conversation.
type Message struct {
	ID             string
	ConversationID string
	AuthorID       string
	Body           string
	CreatedAt      int64
}
