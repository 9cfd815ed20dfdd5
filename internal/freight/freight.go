package freight

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound            = errors.New("freight cost not found")
	ErrUnknownShipmentType = errors.New("unknown shipment type")
)

// ShipmentType is the transport mode of a shipment.
type ShipmentType string

const (
	ShipmentSea  ShipmentType = "sea"
	ShipmentAir  ShipmentType = "air"
	ShipmentRoad ShipmentType = "road"
)

var ShipmentTypes = []ShipmentType{ShipmentSea, ShipmentAir, ShipmentRoad}

func (t ShipmentType) Valid() bool {
	switch t {
	case ShipmentSea, ShipmentAir, ShipmentRoad:
		return true
	}

	return false
}

func (t ShipmentType) Label() string {
	switch t {
	case ShipmentSea:
		return "Sea Freight"
	case ShipmentAir:
		return "Air Freight"
	case ShipmentRoad:
		return "Road Freight"
	}

	return string(t)
}

// Components are the inputs a freight cost is computed from.
type Components struct {
	ShipmentType  ShipmentType
	Origin        string
	Destination   string
	Weight        float64
	Volume        float64
	FreightRate   float64 // per weight unit
	FuelSurcharge float64
	Insurance     float64
	Handling      float64
	Documentation float64
}

// TotalCost is freightRate × weight plus every add-on charge.
func (c Components) TotalCost() float64 {
	return c.FreightRate*c.Weight + c.FuelSurcharge + c.Insurance + c.Handling + c.Documentation
}

// Cost is a saved shipment-level freight calculation. It has no update path;
// a wrong record is deleted and created again.
type Cost struct {
	Components
	ID        uuid.UUID
	CreatedAt time.Time
}
