package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	VehicleAvailable = "available"
	VehicleInUse     = "in use"
	VehicleSold      = "sold"
	VehicleOnService = "on service"
)

type Vehicle struct {
	ID      primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	VIN     string              `bson:"vin" json:"vin"`
	Model   string              `bson:"model" json:"model"`
	Mileage float64             `bson:"mileage" json:"mileage"`
	Driver  *primitive.ObjectID `bson:"driver,omitempty" json:"driver,omitempty"`
	Status  string              `bson:"status" json:"status"`
	// DriverName is filled in by the list handler, never stored.
	DriverName string    `bson:"-" json:"driverName,omitempty"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time `bson:"updatedAt" json:"updatedAt"`
}

// NullableDriver distinguishes a driver field that was absent from the
// payload (Set false) from an explicit null (Set true, Value nil), which
// means "unassign". A plain pointer cannot represent both: encoding/json
// leaves it nil either way.
type NullableDriver struct {
	Set   bool
	Value *primitive.ObjectID
}

func (d *NullableDriver) UnmarshalJSON(data []byte) error {
	d.Set = true
	if string(data) == "null" {
		d.Value = nil
		return nil
	}
	return json.Unmarshal(data, &d.Value)
}

// VehicleUpdate carries a partial update. Nil fields are left untouched.
type VehicleUpdate struct {
	VIN     *string        `json:"vin"`
	Model   *string        `json:"model"`
	Mileage *float64       `json:"mileage"`
	Driver  NullableDriver `json:"driver"`
	Status  *string        `json:"status"`
}

func validVehicleStatus(s string) bool {
	switch s {
	case VehicleAvailable, VehicleInUse, VehicleSold, VehicleOnService:
		return true
	}
	return false
}

// Validate checks a full create payload and fills in defaults.
func (v *Vehicle) Validate() error {
	if strings.TrimSpace(v.VIN) == "" {
		return fmt.Errorf("vin is required")
	}
	if strings.TrimSpace(v.Model) == "" {
		return fmt.Errorf("model is required")
	}
	if v.Mileage < 0 {
		return fmt.Errorf("mileage must not be negative")
	}
	if v.Status == "" {
		v.Status = VehicleAvailable
	}
	if !validVehicleStatus(v.Status) {
		return fmt.Errorf("status must be one of: %s, %s, %s, %s",
			VehicleAvailable, VehicleInUse, VehicleSold, VehicleOnService)
	}
	return nil
}

// Validate rejects partial updates that would leave a record in an invalid state.
func (u *VehicleUpdate) Validate() error {
	if u.VIN != nil && strings.TrimSpace(*u.VIN) == "" {
		return fmt.Errorf("vin cannot be empty")
	}
	if u.Model != nil && strings.TrimSpace(*u.Model) == "" {
		return fmt.Errorf("model cannot be empty")
	}
	if u.Mileage != nil && *u.Mileage < 0 {
		return fmt.Errorf("mileage must not be negative")
	}
	if u.Status != nil && !validVehicleStatus(*u.Status) {
		return fmt.Errorf("status must be one of: %s, %s, %s, %s",
			VehicleAvailable, VehicleInUse, VehicleSold, VehicleOnService)
	}
	return nil
}
