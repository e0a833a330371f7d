package model

type Coordinates struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lon float64 `bson:"lon" json:"lon"`
}

// Location is a standalone document in the locations collection.
type Location struct {
	LocationID  string      `bson:"location_id" json:"location_id"`
	Name        string      `bson:"name" json:"name"`
	Type        string      `bson:"type" json:"type"` // station, port, depot, warehouse
	Coordinates Coordinates `bson:"coordinates" json:"coordinates"`
	Address     string      `bson:"address" json:"address"`
	Region      string      `bson:"region" json:"region"`

	BatchEnvelope `bson:",inline"`
}

func (l *Location) DocID() string { return l.LocationID }

// LocationRef is the location shape embedded inside truck documents.
type LocationRef struct {
	ID          string      `bson:"id" json:"id"`
	Name        string      `bson:"name" json:"name"`
	Type        string      `bson:"type" json:"type"`
	Coordinates Coordinates `bson:"coordinates" json:"coordinates"`
	Address     string      `bson:"address" json:"address"`
}

// Ref converts a stored location into the embeddable form.
func (l *Location) Ref() LocationRef {
	return LocationRef{
		ID:          l.LocationID,
		Name:        l.Name,
		Type:        l.Type,
		Coordinates: l.Coordinates,
		Address:     l.Address,
	}
}
