package models

import "time"

// Product is a stocked item. Rack is a free-text location label, not a reference to racks.id.
type Product struct {
	ID             int       `json:"id"`
	Name           string    `json:"name"`
	Rack           string    `json:"rack"`
	WeightPerPiece float64   `json:"weightPerPiece"`
	Measurement    string    `json:"measurement"`
	Temp1          string    `json:"temp1,omitempty"`
	Temp2          string    `json:"temp2,omitempty"`
	Temp3          string    `json:"temp3,omitempty"`
	Remark         string    `json:"remark,omitempty"`
	OpeningStock   int       `json:"openingStock"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// ProductRequest is the body for creating or replacing a product
type ProductRequest struct {
	Name           string  `json:"name" validate:"required"`
	Rack           string  `json:"rack"`
	WeightPerPiece float64 `json:"weightPerPiece" validate:"gte=0"`
	Measurement    string  `json:"measurement"`
	Temp1          string  `json:"temp1"`
	Temp2          string  `json:"temp2"`
	Temp3          string  `json:"temp3"`
	Remark         string  `json:"remark"`
	OpeningStock   int     `json:"openingStock" validate:"gte=0"`
}
