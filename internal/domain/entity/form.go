package entity

import "time"

type Mode string

const (
	ModeRegister Mode = "register"
	ModeEdit     Mode = "edit"
)

type DialogState string

const (
	DialogClosed DialogState = "closed"
	DialogOpen   DialogState = "open"
)

// Draft is the advertisement being composed in a form.
type Draft struct {
	OrganizationID string
	Name           string
	Media          Media
	Type           AdvertisementType
	StartDate      time.Time
	EndDate        time.Time
}

// Baseline holds the server-known values an edit form started from.
// Nil dates and an empty type fall back to the form defaults.
type Baseline struct {
	ID        string
	Name      string
	Type      AdvertisementType
	Media     Media
	StartDate *time.Time
	EndDate   *time.Time
}

type CreatePayload struct {
	OrganizationID string
	Name           string
	Type           AdvertisementType
	StartDate      string
	EndDate        string
	File           string
}

// UpdatePayload carries only the changed fields; nil means untouched.
type UpdatePayload struct {
	ID        string
	Name      *string
	File      *string
	Type      *AdvertisementType
	StartDate *string
	EndDate   *string
}

// Fields lists the names of the fields present in the payload, id excluded.
func (p UpdatePayload) Fields() []string {
	fields := make([]string, 0, 5)
	if p.Name != nil {
		fields = append(fields, "name")
	}
	if p.File != nil {
		fields = append(fields, "file")
	}
	if p.Type != nil {
		fields = append(fields, "type")
	}
	if p.StartDate != nil {
		fields = append(fields, "startDate")
	}
	if p.EndDate != nil {
		fields = append(fields, "endDate")
	}
	return fields
}

type NotificationLevel string

const (
	NotificationSuccess NotificationLevel = "success"
	NotificationError   NotificationLevel = "error"
)

type Notification struct {
	Level   NotificationLevel `json:"level"`
	Message string            `json:"message"`
	At      time.Time         `json:"at"`
}

type SubmitResult struct {
	Mode            Mode
	AdvertisementID string
	Sequence        int64
	Fields          []string
	// Discarded is set when the call succeeded after the dialog had moved on.
	Discarded bool
}
