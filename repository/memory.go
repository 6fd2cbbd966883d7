package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"fleethr/models"
)

// MemoryEmployeeRepository keeps records in a map behind a mutex. It backs
// the handler tests and mirrors the uniqueness behavior of the mongo
// indexes.
type MemoryEmployeeRepository struct {
	mu        sync.Mutex
	employees map[primitive.ObjectID]models.Employee
}

func NewMemoryEmployeeRepository() *MemoryEmployeeRepository {
	return &MemoryEmployeeRepository{employees: map[primitive.ObjectID]models.Employee{}}
}

func copyEmployee(e models.Employee) models.Employee {
	out := e
	out.PointsHistory = append([]models.PointsEntry{}, e.PointsHistory...)
	out.AcademicTraining = append([]string{}, e.AcademicTraining...)
	out.ProfessionalTraining = append([]string{}, e.ProfessionalTraining...)
	return out
}

func (r *MemoryEmployeeRepository) staffNumberTaken(num string, exclude primitive.ObjectID) bool {
	for id, e := range r.employees {
		if id != exclude && e.StaffNumber == num {
			return true
		}
	}
	return false
}

func (r *MemoryEmployeeRepository) List(ctx context.Context) ([]models.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.Employee, 0, len(r.employees))
	for _, e := range r.employees {
		out = append(out, copyEmployee(e))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *MemoryEmployeeRepository) Get(ctx context.Context, id primitive.ObjectID) (*models.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.employees[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := copyEmployee(e)
	return &out, nil
}

func (r *MemoryEmployeeRepository) Create(ctx context.Context, emp *models.Employee) (*models.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.staffNumberTaken(emp.StaffNumber, primitive.NilObjectID) {
		return nil, ErrDuplicate
	}

	now := time.Now().UTC()
	emp.ID = primitive.NewObjectID()
	emp.CreatedAt = now
	emp.UpdatedAt = now
	r.employees[emp.ID] = copyEmployee(*emp)
	return emp, nil
}

func (r *MemoryEmployeeRepository) Update(ctx context.Context, id primitive.ObjectID, upd *models.EmployeeUpdate) (*models.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.employees[id]
	if !ok {
		return nil, ErrNotFound
	}
	if upd.StaffNumber != nil {
		if r.staffNumberTaken(*upd.StaffNumber, id) {
			return nil, ErrDuplicate
		}
		e.StaffNumber = *upd.StaffNumber
	}
	if upd.FullName != nil {
		e.FullName = *upd.FullName
	}
	if upd.IdentityNumber != nil {
		e.IdentityNumber = *upd.IdentityNumber
	}
	if upd.Qualifications != nil {
		e.Qualifications = *upd.Qualifications
	}
	if upd.Position != nil {
		e.Position = *upd.Position
	}
	if upd.Salary != nil {
		e.Salary = *upd.Salary
	}
	if upd.ContractStatus != nil {
		e.ContractStatus = *upd.ContractStatus
	}
	if upd.AcademicTraining != nil {
		e.AcademicTraining = append([]string{}, (*upd.AcademicTraining)...)
	}
	if upd.ProfessionalTraining != nil {
		e.ProfessionalTraining = append([]string{}, (*upd.ProfessionalTraining)...)
	}
	e.UpdatedAt = time.Now().UTC()
	r.employees[id] = e

	out := copyEmployee(e)
	return &out, nil
}

func (r *MemoryEmployeeRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.employees[id]; !ok {
		return ErrNotFound
	}
	delete(r.employees, id)
	return nil
}

func (r *MemoryEmployeeRepository) AwardPoints(ctx context.Context, id primitive.ObjectID, points int, reason string) (*models.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.employees[id]
	if !ok {
		return nil, ErrNotFound
	}
	now := time.Now().UTC()
	e.Points += points
	e.PointsHistory = append(e.PointsHistory, models.PointsEntry{Points: points, Reason: reason, Date: now})
	e.UpdatedAt = now
	r.employees[id] = e

	out := copyEmployee(e)
	return &out, nil
}

func (r *MemoryEmployeeRepository) NamesByID(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := map[primitive.ObjectID]string{}
	for _, id := range ids {
		if e, ok := r.employees[id]; ok {
			names[id] = e.FullName
		}
	}
	return names, nil
}

// MemoryVehicleRepository is the in-memory counterpart of the vehicles
// collection.
type MemoryVehicleRepository struct {
	mu       sync.Mutex
	vehicles map[primitive.ObjectID]models.Vehicle
}

func NewMemoryVehicleRepository() *MemoryVehicleRepository {
	return &MemoryVehicleRepository{vehicles: map[primitive.ObjectID]models.Vehicle{}}
}

func (r *MemoryVehicleRepository) vinTaken(vin string, exclude primitive.ObjectID) bool {
	for id, v := range r.vehicles {
		if id != exclude && v.VIN == vin {
			return true
		}
	}
	return false
}

func (r *MemoryVehicleRepository) List(ctx context.Context) ([]models.Vehicle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.Vehicle, 0, len(r.vehicles))
	for _, v := range r.vehicles {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *MemoryVehicleRepository) Get(ctx context.Context, id primitive.ObjectID) (*models.Vehicle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.vehicles[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &v, nil
}

func (r *MemoryVehicleRepository) Create(ctx context.Context, v *models.Vehicle) (*models.Vehicle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.vinTaken(v.VIN, primitive.NilObjectID) {
		return nil, ErrDuplicate
	}

	now := time.Now().UTC()
	v.ID = primitive.NewObjectID()
	v.CreatedAt = now
	v.UpdatedAt = now
	r.vehicles[v.ID] = *v
	return v, nil
}

func (r *MemoryVehicleRepository) Update(ctx context.Context, id primitive.ObjectID, upd *models.VehicleUpdate) (*models.Vehicle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.vehicles[id]
	if !ok {
		return nil, ErrNotFound
	}
	if upd.VIN != nil {
		if r.vinTaken(*upd.VIN, id) {
			return nil, ErrDuplicate
		}
		v.VIN = *upd.VIN
	}
	if upd.Model != nil {
		v.Model = *upd.Model
	}
	if upd.Mileage != nil {
		v.Mileage = *upd.Mileage
	}
	if upd.Status != nil {
		v.Status = *upd.Status
	}
	if upd.Driver.Set {
		if upd.Driver.Value == nil {
			v.Driver = nil
		} else {
			id := *upd.Driver.Value
			v.Driver = &id
		}
	}
	v.UpdatedAt = time.Now().UTC()
	r.vehicles[id] = v
	return &v, nil
}

func (r *MemoryVehicleRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.vehicles[id]; !ok {
		return ErrNotFound
	}
	delete(r.vehicles, id)
	return nil
}
