package dto

// CheckinReq records (or re-records) one axis for one day. Date is
// optional and defaults to today in the user's timezone.
type CheckinReq struct {
	CategoryID uint64  `json:"category_id" binding:"required"`
	Date       *string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Mood       *int    `json:"mood,omitempty" validate:"omitempty,min=1,max=10"`
	Note       *string `json:"note,omitempty" validate:"omitempty,max=500"`
}

// CheckinDTO is the stored checkin view.
type CheckinDTO struct {
	ID         uint64  `json:"id"`
	CategoryID uint64  `json:"category_id"`
	Date       string  `json:"date"`
	Mood       int     `json:"mood,omitempty"`
	Note       *string `json:"note,omitempty"`
}

// DayDTO bundles one day's checkins with the completion summary the
// hexagon view renders.
type DayDTO struct {
	Date      string       `json:"date"`
	Checkins  []CheckinDTO `json:"checkins"`
	Completed int          `json:"completed"`
	Total     int          `json:"total"`
}
