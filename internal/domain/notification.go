package domain

type NotificationVariant string

const (
	VariantDefault     NotificationVariant = "default"
	VariantDestructive NotificationVariant = "destructive"
)

// Notification is a short user-facing message attached to API responses.
type Notification struct {
	Title       string              `json:"title"`
	Description string              `json:"description,omitempty"`
	Variant     NotificationVariant `json:"variant"`
}

func Notify(title, description string) Notification {
	return Notification{Title: title, Description: description, Variant: VariantDefault}
}

func Alert(title, description string) Notification {
	return Notification{Title: title, Description: description, Variant: VariantDestructive}
}
