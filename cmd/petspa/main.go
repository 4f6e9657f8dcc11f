package main

import (
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"petspa/internal/api"
	"petspa/internal/config"
	"petspa/internal/http/handlers"
	applog "petspa/internal/log"
	"petspa/internal/session"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			applog.SetOutput(io.MultiWriter(os.Stdout, f))
		}
	}

	// Trace context propagation for outbound API calls
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{}))
	if os.Getenv("ENABLE_TRACING") == "1" {
		tp := sdktrace.NewTracerProvider(sdktrace.WithSampler(sdktrace.AlwaysSample()))
		otel.SetTracerProvider(tp)
		applog.Base().Info("tracing enabled")
	}

	sessions, err := session.Open(cfg.SessionDSN)
	if err != nil {
		log.Fatal(err)
	}

	apiClient := api.New(cfg.APIBaseURL)
	auth := session.NewManager(apiClient, sessions)

	// Templates & app
	engine := html.New("./web/templates", ".html")
	engine.Reload(true)

	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			// Avoid leaking internals; best-effort render
			if rerr := c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{
				"Message": "Something went wrong. Please try again.",
			}); rerr != nil {
				return c.Status(fiber.StatusInternalServerError).SendString("Something went wrong. Please try again.")
			}
			return nil
		},
	})
	app.Server().MaxRequestBodySize = 5 << 20 // pet photos come through here

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(handlers.Attach(auth))
	app.Use(limiter.New(limiter.Config{
		Max:        60,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/static/")
		},
	}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   false, // set true behind HTTPS
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", nil)
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Security check failed. Please refresh and try again."})
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok := c.Locals("csrf"); tok != nil {
			c.Locals("CSRFToken", tok.(string))
		}
		return c.Next()
	})

	app.Static("/static", "./web/static")

	deps := handlers.NewDeps(apiClient, auth)

	// Public pages
	app.Get("/", deps.CatalogHandler.Home)
	app.Get("/products", deps.CatalogHandler.Products)

	// Auth (login throttled)
	app.Get("/login", deps.AuthHandler.LoginForm)
	app.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).Render("login", fiber.Map{"Err": "Too many attempts. Please try again later."})
		},
	}), deps.AuthHandler.Login)
	app.Get("/register", deps.AuthHandler.RegisterForm)
	app.Post("/register", deps.AuthHandler.Register)
	app.Post("/logout", deps.AuthHandler.Logout)

	// Cart & checkout
	user := app.Group("", handlers.RequireUser(auth))
	user.Get("/cart", deps.CartHandler.View)
	user.Post("/cart", deps.CartHandler.Add)
	user.Post("/cart/update", deps.CartHandler.Update)
	user.Post("/cart/remove", deps.CartHandler.Remove)
	user.Post("/cart/clear", deps.CartHandler.Clear)
	user.Post("/checkout", deps.CheckoutHandler.Begin)
	user.Get("/checkout/summary", deps.CheckoutHandler.Summary)
	user.Post("/checkout/confirm", deps.CheckoutHandler.Confirm)
	user.Get("/checkout/done", deps.CheckoutHandler.Done)
	user.Post("/checkout/back", deps.CheckoutHandler.Back)

	// Pets & appointments
	user.Get("/pets", deps.PetHandler.List)
	user.Post("/pets", deps.PetHandler.Create)
	user.Post("/pets/:id/update", deps.PetHandler.Update)
	user.Post("/pets/:id/delete", deps.PetHandler.Delete)
	user.Post("/pets/:id/photo", deps.PetHandler.UploadPhoto)
	user.Get("/appointments", deps.AppointmentHandler.List)
	user.Get("/appointments/calendar", deps.AppointmentHandler.Calendar)
	user.Get("/appointments/new", deps.AppointmentHandler.NewForm)
	user.Post("/appointments", deps.AppointmentHandler.Create)
	user.Get("/appointments/:id/edit", deps.AppointmentHandler.EditForm)
	user.Post("/appointments/:id/update", deps.AppointmentHandler.Update)
	user.Post("/appointments/:id/delete", deps.AppointmentHandler.Delete)

	// Invoices
	user.Get("/invoices", deps.InvoiceHandler.List)
	user.Get("/invoices/:id", deps.InvoiceHandler.Detail)
	user.Get("/invoices/:id/pdf", deps.InvoiceHandler.PDF)
	user.Get("/invoices/:id/receipt", deps.InvoiceHandler.Receipt)

	// Admin
	admin := app.Group("/admin", handlers.RequireAdmin(auth))
	admin.Get("/", deps.AdminHandler.Dashboard)
	admin.Get("/clients", deps.AdminHandler.Clients)
	admin.Post("/clients/:id/delete", deps.AdminHandler.DeleteClient)
	admin.Get("/services", deps.AdminHandler.Services)
	admin.Post("/services", deps.AdminHandler.CreateService)
	admin.Post("/services/:id/update", deps.AdminHandler.UpdateService)
	admin.Post("/services/:id/delete", deps.AdminHandler.DeleteService)
	admin.Get("/products", deps.AdminHandler.Products)
	admin.Post("/products", deps.AdminHandler.CreateProduct)
	admin.Post("/products/:id/update", deps.AdminHandler.UpdateProduct)
	admin.Post("/products/:id/delete", deps.AdminHandler.DeleteProduct)
	admin.Get("/appointments", deps.AdminHandler.Appointments)
	admin.Post("/appointments/:id/invoice", deps.AdminHandler.InvoiceAppointment)
	admin.Get("/invoices", deps.AdminHandler.Invoices)
	admin.Post("/invoices/:id/pay", deps.AdminHandler.MarkPaid)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Page not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
