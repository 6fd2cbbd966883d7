package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"fleethr/models"
)

type MongoEmployeeRepository struct {
	col *mongo.Collection
}

func NewMongoEmployeeRepository(col *mongo.Collection) *MongoEmployeeRepository {
	return &MongoEmployeeRepository{col: col}
}

func (r *MongoEmployeeRepository) List(ctx context.Context) ([]models.Employee, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	employees := []models.Employee{}
	if err := cur.All(ctx, &employees); err != nil {
		return nil, err
	}
	return employees, nil
}

func (r *MongoEmployeeRepository) Get(ctx context.Context, id primitive.ObjectID) (*models.Employee, error) {
	var emp models.Employee
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&emp)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

func (r *MongoEmployeeRepository) Create(ctx context.Context, emp *models.Employee) (*models.Employee, error) {
	now := time.Now().UTC()
	emp.ID = primitive.NewObjectID()
	emp.CreatedAt = now
	emp.UpdatedAt = now

	if _, err := r.col.InsertOne(ctx, emp); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return emp, nil
}

func (r *MongoEmployeeRepository) Update(ctx context.Context, id primitive.ObjectID, upd *models.EmployeeUpdate) (*models.Employee, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if upd.StaffNumber != nil {
		set["staffNumber"] = *upd.StaffNumber
	}
	if upd.FullName != nil {
		set["fullName"] = *upd.FullName
	}
	if upd.IdentityNumber != nil {
		set["identityNumber"] = *upd.IdentityNumber
	}
	if upd.Qualifications != nil {
		set["qualifications"] = *upd.Qualifications
	}
	if upd.Position != nil {
		set["position"] = *upd.Position
	}
	if upd.Salary != nil {
		set["salary"] = *upd.Salary
	}
	if upd.ContractStatus != nil {
		set["contractStatus"] = *upd.ContractStatus
	}
	if upd.AcademicTraining != nil {
		set["academicTraining"] = *upd.AcademicTraining
	}
	if upd.ProfessionalTraining != nil {
		set["professionalTraining"] = *upd.ProfessionalTraining
	}

	var emp models.Employee
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&emp)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return &emp, nil
}

func (r *MongoEmployeeRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// AwardPoints issues the increment and the history append as a single
// document update so the total and the log cannot diverge under
// concurrent awards.
func (r *MongoEmployeeRepository) AwardPoints(ctx context.Context, id primitive.ObjectID, points int, reason string) (*models.Employee, error) {
	now := time.Now().UTC()
	entry := models.PointsEntry{Points: points, Reason: reason, Date: now}

	var emp models.Employee
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{
			"$inc":  bson.M{"points": points},
			"$push": bson.M{"pointsHistory": entry},
			"$set":  bson.M{"updatedAt": now},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&emp)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

func (r *MongoEmployeeRepository) NamesByID(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]string, error) {
	names := map[primitive.ObjectID]string{}
	if len(ids) == 0 {
		return names, nil
	}

	cur, err := r.col.Find(ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		options.Find().SetProjection(bson.M{"fullName": 1}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var doc struct {
			ID       primitive.ObjectID `bson:"_id"`
			FullName string             `bson:"fullName"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		names[doc.ID] = doc.FullName
	}
	return names, cur.Err()
}

type MongoVehicleRepository struct {
	col *mongo.Collection
}

func NewMongoVehicleRepository(col *mongo.Collection) *MongoVehicleRepository {
	return &MongoVehicleRepository{col: col}
}

func (r *MongoVehicleRepository) List(ctx context.Context) ([]models.Vehicle, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	vehicles := []models.Vehicle{}
	if err := cur.All(ctx, &vehicles); err != nil {
		return nil, err
	}
	return vehicles, nil
}

func (r *MongoVehicleRepository) Get(ctx context.Context, id primitive.ObjectID) (*models.Vehicle, error) {
	var v models.Vehicle
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&v)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *MongoVehicleRepository) Create(ctx context.Context, v *models.Vehicle) (*models.Vehicle, error) {
	now := time.Now().UTC()
	v.ID = primitive.NewObjectID()
	v.CreatedAt = now
	v.UpdatedAt = now

	if _, err := r.col.InsertOne(ctx, v); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return v, nil
}

func (r *MongoVehicleRepository) Update(ctx context.Context, id primitive.ObjectID, upd *models.VehicleUpdate) (*models.Vehicle, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	unset := bson.M{}
	if upd.VIN != nil {
		set["vin"] = *upd.VIN
	}
	if upd.Model != nil {
		set["model"] = *upd.Model
	}
	if upd.Mileage != nil {
		set["mileage"] = *upd.Mileage
	}
	if upd.Status != nil {
		set["status"] = *upd.Status
	}
	if upd.Driver.Set {
		if upd.Driver.Value == nil {
			unset["driver"] = ""
		} else {
			set["driver"] = *upd.Driver.Value
		}
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	var v models.Vehicle
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&v)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return &v, nil
}

func (r *MongoVehicleRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
