// Package car defines the car reservation port consumed during subscription
// creation, backed by the external car service.
package car

import (
	"context"

	"carsub/internal/domain/shared"
)

// FuelType classifies a car's drivetrain.
type FuelType string

const (
	FuelPetrol       FuelType = "petrol"
	FuelDiesel       FuelType = "diesel"
	FuelElectric     FuelType = "electric"
	FuelHybridDiesel FuelType = "hybrid_diesel"
	FuelHybridPetrol FuelType = "hybrid_petrol"
	FuelHybridPlugIn FuelType = "hybrid_plug_in"
)

// Car describes a vehicle as returned by the car service.
type Car struct {
	ID                string
	OEM               string
	Model             string
	FuelType          FuelType
	ExternalProductID string
	LicensePlate      *string
}

// Gateway confirms car reservations in the external car service.
type Gateway interface {
	// ConfirmReservation consumes a reservation token and returns the
	// reserved car's identifier. Errors carry the upstream classification:
	// not found, conflict, forbidden or service unavailable.
	ConfirmReservation(ctx context.Context, token string, md shared.Metadata) (string, error)
}
