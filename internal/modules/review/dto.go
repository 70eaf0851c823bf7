package review

type SubmitReviewRequest struct {
	JobID      int64  `json:"job_id" binding:"required"`
	ProviderID int64  `json:"provider_id" binding:"required"`
	Rating     int    `json:"rating" binding:"required"`
	Comment    string `json:"comment"`
}
