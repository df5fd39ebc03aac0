package models

import "time"

// Direction tells inward (arrival) and outward (dispatch) movements apart
type Direction string

const (
	DirectionInward  Direction = "inward"
	DirectionOutward Direction = "outward"
)

// StockEntry is one inward or outward movement. NetWeight is derived from
// GrossWeight and the container tare when the entry is created, but it is
// stored and can be edited independently afterwards.
type StockEntry struct {
	ID                int       `json:"id"`
	Direction         Direction `json:"direction"`
	ProductID         int       `json:"productId"`
	Quantity          int       `json:"quantity"`
	Date              string    `json:"date"` // YYYY-MM-DD
	RackID            int       `json:"rackId"`
	ContainerID       int       `json:"containerId"` // 0 = no container
	ContainerQuantity int       `json:"containerQuantity"`
	GrossWeight       float64   `json:"grossWeight"`
	NetWeight         float64   `json:"netWeight"`
	Remark1           string    `json:"remark1,omitempty"`
	Remark2           string    `json:"remark2,omitempty"`
	Remark3           string    `json:"remark3,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// StockEntryRequest creates or replaces an entry. A nil NetWeight is
// computed from the gross weight and container.
type StockEntryRequest struct {
	ProductID         int      `json:"productId" validate:"required,gt=0"`
	Quantity          int      `json:"quantity" validate:"gt=0"`
	Date              string   `json:"date" validate:"required,datetime=2006-01-02"`
	RackID            int      `json:"rackId" validate:"gte=0"`
	ContainerID       int      `json:"containerId" validate:"gte=0"`
	ContainerQuantity int      `json:"containerQuantity" validate:"gte=0"`
	GrossWeight       float64  `json:"grossWeight" validate:"gte=0"`
	NetWeight         *float64 `json:"netWeight,omitempty"`
	Remark1           string   `json:"remark1"`
	Remark2           string   `json:"remark2"`
	Remark3           string   `json:"remark3"`
}

// EntryFilter narrows an entry listing. Zero values mean no restriction.
type EntryFilter struct {
	ProductID int    `json:"productId"`
	From      string `json:"from"` // inclusive, YYYY-MM-DD
	To        string `json:"to"`   // inclusive, YYYY-MM-DD
}

// StockEntryView is an entry with display labels resolved
type StockEntryView struct {
	StockEntry
	ProductName   string `json:"productName"`
	RackNumber    string `json:"rackNumber"`
	ContainerType string `json:"containerType"`
}
