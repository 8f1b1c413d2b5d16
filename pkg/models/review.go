package models

// Review represents a client review left on a catalog piece
type Review struct {
	ID       string `json:"id"`
	UserName string `json:"userName" validate:"required,min=2,max=100"`
	Rating   int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment  string `json:"comment" validate:"max=2000"`
	Date     string `json:"date"`
}

// IsPositive checks if the review is positive (4-5 stars)
func (r *Review) IsPositive() bool {
	return r.Rating >= 4
}
