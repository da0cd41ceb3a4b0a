package domain

// CreateClientInput is the payload for creating a client
type CreateClientInput struct {
	Name          string   `json:"name" validate:"required,min=1,max=200"`
	Phone         string   `json:"phone" validate:"required,min=8,max=20"`
	Birthday      *string  `json:"birthday,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Notes         string   `json:"notes,omitempty" validate:"omitempty,max=2000"`
	ReferrerID    *string  `json:"referrer_id,omitempty" validate:"omitempty,uuid4"`
	WhatsappLink  string   `json:"whatsapp_link,omitempty" validate:"omitempty,max=300"`
	FacebookLink  string   `json:"facebook_link,omitempty" validate:"omitempty,max=300"`
	InstagramLink string   `json:"instagram_link,omitempty" validate:"omitempty,max=300"`
	TiktokLink    string   `json:"tiktok_link,omitempty" validate:"omitempty,max=300"`
	TagIDs        []string `json:"tag_ids,omitempty" validate:"omitempty,dive,uuid4"`
}

// UpdateClientInput is the payload for updating a client's static attributes
type UpdateClientInput struct {
	Name          string   `json:"name" validate:"required,min=1,max=200"`
	Phone         string   `json:"phone" validate:"required,min=8,max=20"`
	Birthday      *string  `json:"birthday,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Notes         string   `json:"notes,omitempty" validate:"omitempty,max=2000"`
	ReferrerID    *string  `json:"referrer_id,omitempty" validate:"omitempty,uuid4"`
	WhatsappLink  string   `json:"whatsapp_link,omitempty" validate:"omitempty,max=300"`
	FacebookLink  string   `json:"facebook_link,omitempty" validate:"omitempty,max=300"`
	InstagramLink string   `json:"instagram_link,omitempty" validate:"omitempty,max=300"`
	TiktokLink    string   `json:"tiktok_link,omitempty" validate:"omitempty,max=300"`
	TagIDs        []string `json:"tag_ids,omitempty" validate:"omitempty,dive,uuid4"`
}

// BulkIDsInput targets a batch operation at a list of client ids
type BulkIDsInput struct {
	IDs []string `json:"ids" validate:"required,min=1,dive,uuid4"`
}

// ReassignReferrerInput targets a batched referrer update. A nil ReferrerID
// clears the referrer on every targeted client
type ReassignReferrerInput struct {
	IDs        []string `json:"ids" validate:"required,min=1,dive,uuid4"`
	ReferrerID *string  `json:"referrer_id,omitempty" validate:"omitempty,uuid4"`
}

// ViewCriteriaInput updates the derived view filter state
type ViewCriteriaInput struct {
	Preset string   `json:"preset" validate:"required,oneof=all with_visits with_sales referred"`
	Search string   `json:"search,omitempty" validate:"omitempty,max=200"`
	TagIDs []string `json:"tag_ids,omitempty" validate:"omitempty,dive,uuid4"`
}

// ViewSortInput toggles the view sort on a field
type ViewSortInput struct {
	Field string `json:"field" validate:"required,oneof=name total_spent total_visits last_visit_date created_at"`
}

// SelectAllInput checks or unchecks everything currently visible
type SelectAllInput struct {
	Checked bool `json:"checked"`
}

// SelectOneInput toggles one client in the selection
type SelectOneInput struct {
	ID      string `json:"id" validate:"required,uuid4"`
	Checked bool   `json:"checked"`
}
