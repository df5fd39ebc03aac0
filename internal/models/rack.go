package models

import "time"

type Rack struct {
	ID        int       `json:"id"`
	Number    string    `json:"number"`
	Temp1     string    `json:"temp1,omitempty"`
	Temp2     string    `json:"temp2,omitempty"`
	Remark    string    `json:"remark,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type RackRequest struct {
	Number string `json:"number" validate:"required,alphanum"`
	Temp1  string `json:"temp1"`
	Temp2  string `json:"temp2"`
	Remark string `json:"remark"`
}
