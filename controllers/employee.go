package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"fleethr/models"
	"fleethr/repository"
)

type EmployeeController struct {
	repo repository.EmployeeRepository
	log  *zap.Logger
}

func NewEmployeeController(repo repository.EmployeeRepository, log *zap.Logger) *EmployeeController {
	return &EmployeeController{repo: repo, log: log}
}

func (ctl *EmployeeController) GetEmployees(c *fiber.Ctx) error {
	employees, err := ctl.repo.List(c.Context())
	if err != nil {
		return storeError(c, ctl.log, err, "")
	}
	return c.JSON(employees)
}

func (ctl *EmployeeController) GetEmployeeByID(c *fiber.Ctx) error {
	id, err := repository.ParseID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid employee id"})
	}

	emp, err := ctl.repo.Get(c.Context(), id)
	if err != nil {
		return storeError(c, ctl.log, err, "")
	}
	return c.JSON(emp)
}

func (ctl *EmployeeController) CreateEmployee(c *fiber.Ctx) error {
	var emp models.Employee
	if err := c.BodyParser(&emp); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := emp.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	created, err := ctl.repo.Create(c.Context(), &emp)
	if err != nil {
		return storeError(c, ctl.log, err, "staff number already exists")
	}
	ctl.log.Info("employee created",
		zap.String("id", created.ID.Hex()),
		zap.String("staffNumber", created.StaffNumber))
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (ctl *EmployeeController) UpdateEmployee(c *fiber.Ctx) error {
	id, err := repository.ParseID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid employee id"})
	}

	var upd models.EmployeeUpdate
	if err := c.BodyParser(&upd); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := upd.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	emp, err := ctl.repo.Update(c.Context(), id, &upd)
	if err != nil {
		return storeError(c, ctl.log, err, "staff number already exists")
	}
	return c.JSON(emp)
}

func (ctl *EmployeeController) DeleteEmployee(c *fiber.Ctx) error {
	id, err := repository.ParseID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid employee id"})
	}

	if err := ctl.repo.Delete(c.Context(), id); err != nil {
		return storeError(c, ctl.log, err, "")
	}
	return c.JSON(fiber.Map{"message": "employee deleted"})
}

type addPointsRequest struct {
	Points int    `json:"points"`
	Reason string `json:"reason"`
}

// AddPoints awards points to an employee. The increment and the history
// append are issued as a single store update so the total and the log
// stay in step.
func (ctl *EmployeeController) AddPoints(c *fiber.Ctx) error {
	id, err := repository.ParseID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid employee id"})
	}

	var req addPointsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.Points <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "points must be a positive number"})
	}
	if strings.TrimSpace(req.Reason) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "reason is required"})
	}

	emp, err := ctl.repo.AwardPoints(c.Context(), id, req.Points, req.Reason)
	if err != nil {
		return storeError(c, ctl.log, err, "")
	}
	ctl.log.Info("points awarded",
		zap.String("id", emp.ID.Hex()),
		zap.Int("points", req.Points),
		zap.String("reason", req.Reason))
	return c.JSON(fiber.Map{
		"message":  "points added",
		"employee": emp,
	})
}
