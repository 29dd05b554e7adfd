package entity

type CreateFormDTO struct {
	OrganizationID string `json:"-"`
	Language       string `json:"-"`

	Mode                   Mode              `json:"mode" validate:"required,oneof=register edit"`
	IDEdit                 string            `json:"id_edit"`
	NameEdit               string            `json:"name_edit"`
	TypeEdit               AdvertisementType `json:"type_edit" validate:"omitempty,oneof=BANNER POPUP"`
	AdvertisementMediaEdit string            `json:"advertisement_media_edit"`
	StartDateEdit          string            `json:"start_date_edit"`
	EndDateEdit            string            `json:"end_date_edit"`
}

type UpdateDraftDTO struct {
	FormID string `json:"-"`

	Name      *string            `json:"name"`
	Type      *AdvertisementType `json:"type" validate:"omitempty,oneof=BANNER POPUP"`
	StartDate *string            `json:"start_date"`
	EndDate   *string            `json:"end_date"`
}

type UploadMediaDTO struct {
	FormID   string
	FileName string
	Data     []byte
}

type GetAdvertisementsDTO struct {
	OrganizationID string
	After          *string
}

type GetSubmissionsDTO struct {
	OrganizationID string
	Limit          int `validate:"min=0,max=100"`
}

type TokenInfo struct {
	OrganizationID string
	IsAdmin        bool
}

func (t TokenInfo) CanAccess(organizationID string) bool {
	return t.IsAdmin || t.OrganizationID == organizationID
}

// FormView is the externally visible state of a form.
type FormView struct {
	ID             string         `json:"id"`
	OrganizationID string         `json:"organization_id"`
	Mode           Mode           `json:"mode"`
	Dialog         DialogState    `json:"dialog"`
	InFlight       bool           `json:"in_flight"`
	Draft          DraftView      `json:"draft"`
	Notifications  []Notification `json:"notifications"`
}

type DraftView struct {
	Name      string            `json:"name"`
	Media     Media             `json:"media"`
	Type      AdvertisementType `json:"type"`
	StartDate string            `json:"start_date"`
	EndDate   string            `json:"end_date"`
}
