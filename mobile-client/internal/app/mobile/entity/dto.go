package entity

// ProductFilter - параметры фильтрации и сортировки списка товаров.
// Любое изменение фильтра обязано проходить через reset фетчера.
type ProductFilter struct {
	Category  string
	Search    string
	MinPrice  *float64
	MaxPrice  *float64
	MinRating *float64
	Sort      string // формат "field,dir", например "price,asc"
}

type CreateReviewRequest struct {
	ReviewerName string `json:"reviewerName" validate:"required,min=2,max=50"`
	Rating       int    `json:"rating" validate:"required,min=1,max=5"`
	Comment      string `json:"comment" validate:"required,min=3,max=2000"`
}

type CompareRequest struct {
	ProductIDs []int64 `json:"productIds"`
}

type CompareResponse struct {
	Products []Product `json:"products"`
	Analysis string    `json:"analysis"`
}
