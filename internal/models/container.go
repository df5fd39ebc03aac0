package models

import "time"

// Built-in container types. Custom types are allowed.
const (
	ContainerBag   = "Bag"
	ContainerCrate = "Crate"
	ContainerLoose = "Loose"
)

// Container is a reusable carrying unit. Weight is the empty (tare) weight in kg.
type Container struct {
	ID        int       `json:"id"`
	Type      string    `json:"type"`
	Weight    float64   `json:"weight"`
	Remark    string    `json:"remark,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ContainerRequest struct {
	Type   string  `json:"type" validate:"required"`
	Weight float64 `json:"weight" validate:"gte=0"`
	Remark string  `json:"remark"`
}
