package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"

	"leave-backend/config"
	_ "leave-backend/docs"
	"leave-backend/internal/controllers"
	"leave-backend/internal/middleware"
	"leave-backend/internal/repository"
	"leave-backend/internal/routes"
	"leave-backend/internal/services"
)

// Services is everything the HTTP layer calls into.
type Services struct {
	Leaves        services.LeaveService
	Reports       services.ReportService
	Balances      services.BalanceService
	Users         services.UserService
	Organizations services.OrganizationService
}

func NewServices(cfg config.Config, store repository.Store, logger *zap.Logger) Services {
	return Services{
		Leaves:        services.NewLeaveService(store, logger),
		Reports:       services.NewReportService(store, logger),
		Balances:      services.NewBalanceService(store, logger),
		Users:         services.NewUserService(store, services.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL), logger),
		Organizations: services.NewOrganizationService(store, logger),
	}
}

// New builds the fiber app with middleware, docs, health check and the API routes.
func New(cfg config.Config, store repository.Store, svc Services, logger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "leave-backend",
		ErrorHandler: controllers.ErrorHandler(),
	})

	app.Use(middleware.RequestID())
	app.Use(middleware.RequestLogger(logger))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.ClientURL,
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
	}))

	app.Get("/docs/*", swagger.HandlerDefault)
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.SendString("ok") })

	routes.Setup(app, routes.Handlers{
		Leaves: &controllers.LeaveHandler{
			Leaves:   svc.Leaves,
			Reports:  svc.Reports,
			Balances: svc.Balances,
		},
		Users:         &controllers.UserHandler{Users: svc.Users},
		Organizations: &controllers.OrganizationHandler{Orgs: svc.Organizations},
	},
		middleware.JWTUidOnly(cfg.JWTSecret),
		middleware.InjectViewer(store.Users),
	)

	return app
}
