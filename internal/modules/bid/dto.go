package bid

type SubmitBidRequest struct {
	Price   int64  `json:"price" binding:"required"`
	Message string `json:"message"`
}
