package models

import "time"

const (
	MeasurementKGS   = "KGS"
	MeasurementPCS   = "PCS"
	MeasurementLoose = "Loose"
)

type Measurement struct {
	ID        int       `json:"id"`
	Type      string    `json:"type"`
	Temp1     string    `json:"temp1,omitempty"`
	Temp2     string    `json:"temp2,omitempty"`
	Remark    string    `json:"remark,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type MeasurementRequest struct {
	Type   string `json:"type" validate:"required"`
	Temp1  string `json:"temp1"`
	Temp2  string `json:"temp2"`
	Remark string `json:"remark"`
}
