package dto

// Name limits follow the varchar(80) columns of items and sales.
type CreateItemRequest struct {
	Name  string `json:"name"  validate:"required,min=1,max=80"`
	Price *int64 `json:"price" validate:"required,min=0,max=100000000"`
}

type UpdateItemRequest struct {
	Name  *string `json:"name"  validate:"omitempty,min=1,max=80"`
	Price *int64  `json:"price" validate:"omitempty,min=0,max=100000000"`
}

type ItemResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
}
