package models

// NotificationKind selects the toast style
type NotificationKind string

const (
	NotificationSuccess NotificationKind = "success"
	NotificationError   NotificationKind = "error"
)

// Notification is a transient, non-blocking message shown after an action
type Notification struct {
	Kind    NotificationKind
	Message string
}

// IsZero reports whether there is nothing to show
func (n Notification) IsZero() bool {
	return n.Message == ""
}

// SuccessNotification builds a success toast
func SuccessNotification(message string) Notification {
	return Notification{Kind: NotificationSuccess, Message: message}
}

// ErrorNotification builds an error toast
func ErrorNotification(message string) Notification {
	return Notification{Kind: NotificationError, Message: message}
}
