package models

// NotificationType identifies why a notification was raised.
type NotificationType string

const (
	NotificationNewQuestion NotificationType = "NEW_QUESTION"
	NotificationNewReply    NotificationType = "NEW_REPLY"
)

// Notification is a direct alert to one user.
type Notification struct {
	ID        string
	UserID    string
	Type      NotificationType
	Message   string
	Link      string
	Read      bool
	CreatedAt int64
}
