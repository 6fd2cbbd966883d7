package routes

import (
	"github.com/gofiber/fiber/v2"

	"fleethr/controllers"
)

func RegisterRoutes(app *fiber.App, emp *controllers.EmployeeController, veh *controllers.VehicleController) {

	// employees
	app.Get("/employees", emp.GetEmployees)
	app.Get("/employees/:id", emp.GetEmployeeByID)
	app.Post("/employees", emp.CreateEmployee)
	app.Put("/employees/:id", emp.UpdateEmployee)
	app.Delete("/employees/:id", emp.DeleteEmployee)
	app.Patch("/employees/:id/add-points", emp.AddPoints)

	// vehicles
	app.Get("/vehicles", veh.GetVehicles)
	app.Get("/vehicles/:id", veh.GetVehicleByID)
	app.Post("/vehicles", veh.CreateVehicle)
	app.Put("/vehicles/:id", veh.UpdateVehicle)
	app.Delete("/vehicles/:id", veh.DeleteVehicle)

	// anything else
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "route not found"})
	})
}
