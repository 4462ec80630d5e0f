package dto

// TimeBlockReq creates or updates one planned slot.
type TimeBlockReq struct {
	CategoryID  uint64  `json:"category_id" binding:"required"`
	Date        string  `json:"date" binding:"required" validate:"datetime=2006-01-02"`
	StartMinute int     `json:"start_minute" validate:"min=0,max=1439"`
	DurationMin int     `json:"duration_min" binding:"required" validate:"min=1,max=1440"`
	Activity    string  `json:"activity" binding:"required" validate:"min=1,max=120"`
	Note        *string `json:"note,omitempty" validate:"omitempty,max=500"`
}

// TimeBlockDTO is the stored slot view.
type TimeBlockDTO struct {
	ID          uint64  `json:"id"`
	CategoryID  uint64  `json:"category_id"`
	Date        string  `json:"date"`
	StartMinute int     `json:"start_minute"`
	DurationMin int     `json:"duration_min"`
	Activity    string  `json:"activity"`
	Note        *string `json:"note,omitempty"`
}
