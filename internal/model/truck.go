package model

import "time"

type Route struct {
	ID                string  `bson:"id" json:"id"`
	Distance          float64 `bson:"distance" json:"distance"`
	EstimatedDuration int     `bson:"estimated_duration" json:"estimated_duration"`
	ActualDuration    *int    `bson:"actual_duration,omitempty" json:"actual_duration,omitempty"`
}

type Cargo struct {
	Type        string  `bson:"type" json:"type"`
	Weight      float64 `bson:"weight" json:"weight"`
	Volume      float64 `bson:"volume" json:"volume"`
	Description string  `bson:"description" json:"description"`
	Priority    string  `bson:"priority" json:"priority"`
}

type Truck struct {
	TruckID          string      `bson:"truck_id" json:"truck_id"`
	PlateNumber      string      `bson:"plate_number" json:"plate_number"`
	DriverID         string      `bson:"driver_id" json:"driver_id"`
	DriverName       string      `bson:"driver_name" json:"driver_name"`
	CurrentLocation  LocationRef `bson:"current_location" json:"current_location"`
	Destination      LocationRef `bson:"destination" json:"destination"`
	Route            Route       `bson:"route" json:"route"`
	Status           string      `bson:"status" json:"status"` // on_time, delayed, in_transit, resting
	EstimatedArrival time.Time   `bson:"estimated_arrival,omitempty" json:"estimated_arrival,omitempty"`
	Cargo            *Cargo      `bson:"cargo,omitempty" json:"cargo,omitempty"`

	BatchEnvelope `bson:",inline"`
}

func (t *Truck) DocID() string { return t.TruckID }
