package main

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"

	"fleethr/condb"
	"fleethr/config"
	"fleethr/controllers"
	"fleethr/logger"
	"fleethr/repository"
	"fleethr/routes"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// a broken backing store is fatal: better to die than serve errors
	db, err := condb.Connect(context.Background(), cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	defer db.Close(context.Background())

	empRepo := repository.NewMongoEmployeeRepository(db.Employees())
	vehRepo := repository.NewMongoVehicleRepository(db.Vehicles())

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowOrigins, // comma-separated allow-list
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	routes.RegisterRoutes(app,
		controllers.NewEmployeeController(empRepo, log),
		controllers.NewVehicleController(vehRepo, empRepo, log),
	)

	log.Info("server listening", zap.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
