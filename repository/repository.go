// Package repository is the thin storage adapter between the HTTP
// controllers and the document store. Controllers only see the interfaces
// and the sentinel errors; the mongo implementation is wired in main and
// the memory implementation backs the tests.
package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"fleethr/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate key")
	ErrInvalidID = errors.New("invalid id")
)

type EmployeeRepository interface {
	List(ctx context.Context) ([]models.Employee, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.Employee, error)
	Create(ctx context.Context, emp *models.Employee) (*models.Employee, error)
	Update(ctx context.Context, id primitive.ObjectID, upd *models.EmployeeUpdate) (*models.Employee, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	// AwardPoints increments the points total and appends the history entry
	// as one atomic document update, returning the record after the award.
	AwardPoints(ctx context.Context, id primitive.ObjectID, points int, reason string) (*models.Employee, error)
	// NamesByID resolves employee ids to full names in a single query.
	NamesByID(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]string, error)
}

type VehicleRepository interface {
	List(ctx context.Context) ([]models.Vehicle, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.Vehicle, error)
	Create(ctx context.Context, v *models.Vehicle) (*models.Vehicle, error)
	Update(ctx context.Context, id primitive.ObjectID, upd *models.VehicleUpdate) (*models.Vehicle, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ParseID validates a path parameter before any store access.
func ParseID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return id, nil
}
