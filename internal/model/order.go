package model

import "time"

type Order struct {
	OrderID     string     `bson:"order_id" json:"order_id"`
	Customer    string     `bson:"customer" json:"customer"`
	CustomerID  string     `bson:"customer_id,omitempty" json:"customer_id,omitempty"`
	Status      string     `bson:"status" json:"status"`
	Value       float64    `bson:"value" json:"value"`
	Items       string     `bson:"items" json:"items"`
	TruckID     string     `bson:"truck_id,omitempty" json:"truck_id,omitempty"`
	Region      string     `bson:"region" json:"region"`
	Priority    string     `bson:"priority" json:"priority"`
	DeliveryETA time.Time  `bson:"delivery_eta,omitempty" json:"delivery_eta,omitempty"`
	DeliveredAt *time.Time `bson:"delivered_at,omitempty" json:"delivered_at,omitempty"`

	BatchEnvelope `bson:",inline"`
}

func (o *Order) DocID() string { return o.OrderID }
