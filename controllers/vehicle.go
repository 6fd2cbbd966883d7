package controllers

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"fleethr/models"
	"fleethr/repository"
)

type VehicleController struct {
	repo      repository.VehicleRepository
	employees repository.EmployeeRepository
	log       *zap.Logger
}

func NewVehicleController(repo repository.VehicleRepository, employees repository.EmployeeRepository, log *zap.Logger) *VehicleController {
	return &VehicleController{repo: repo, employees: employees, log: log}
}

// GetVehicles lists every vehicle with the driver reference resolved to
// the employee's current full name. Driver names are fetched in one
// batch query; a dangling reference simply yields no name.
func (ctl *VehicleController) GetVehicles(c *fiber.Ctx) error {
	vehicles, err := ctl.repo.List(c.Context())
	if err != nil {
		return storeError(c, ctl.log, err, "")
	}

	ids := make([]primitive.ObjectID, 0, len(vehicles))
	for _, v := range vehicles {
		if v.Driver != nil {
			ids = append(ids, *v.Driver)
		}
	}
	names, err := ctl.employees.NamesByID(c.Context(), ids)
	if err != nil {
		return storeError(c, ctl.log, err, "")
	}
	for i := range vehicles {
		if vehicles[i].Driver != nil {
			vehicles[i].DriverName = names[*vehicles[i].Driver]
		}
	}
	return c.JSON(vehicles)
}

// GetVehicleByID returns one vehicle, with the driver name resolved the
// same way the list is.
func (ctl *VehicleController) GetVehicleByID(c *fiber.Ctx) error {
	id, err := repository.ParseID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid vehicle id"})
	}

	v, err := ctl.repo.Get(c.Context(), id)
	if err != nil {
		return storeError(c, ctl.log, err, "")
	}
	if v.Driver != nil {
		names, err := ctl.employees.NamesByID(c.Context(), []primitive.ObjectID{*v.Driver})
		if err != nil {
			return storeError(c, ctl.log, err, "")
		}
		v.DriverName = names[*v.Driver]
	}
	return c.JSON(v)
}

func (ctl *VehicleController) CreateVehicle(c *fiber.Ctx) error {
	var v models.Vehicle
	if err := c.BodyParser(&v); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := v.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	created, err := ctl.repo.Create(c.Context(), &v)
	if err != nil {
		return storeError(c, ctl.log, err, "vin already exists")
	}
	ctl.log.Info("vehicle created",
		zap.String("id", created.ID.Hex()),
		zap.String("vin", created.VIN))
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (ctl *VehicleController) UpdateVehicle(c *fiber.Ctx) error {
	id, err := repository.ParseID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid vehicle id"})
	}

	var upd models.VehicleUpdate
	if err := c.BodyParser(&upd); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := upd.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	v, err := ctl.repo.Update(c.Context(), id, &upd)
	if err != nil {
		return storeError(c, ctl.log, err, "vin already exists")
	}
	return c.JSON(v)
}

func (ctl *VehicleController) DeleteVehicle(c *fiber.Ctx) error {
	id, err := repository.ParseID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid vehicle id"})
	}

	if err := ctl.repo.Delete(c.Context(), id); err != nil {
		return storeError(c, ctl.log, err, "")
	}
	return c.JSON(fiber.Map{"message": "vehicle deleted"})
}
