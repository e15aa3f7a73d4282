// Package http содержит компоненты HTTP сервера.
package http

import (
	"github.com/gofiber/fiber/v3"

	"notebook/internal/notebook/adapters/http/handlers"
	"notebook/internal/notebook/adapters/http/middleware"
	"notebook/internal/notebook/ports/api"
	"notebook/internal/notebook/ports/services"
)

// Dependencies - зависимости HTTP слоя.
type Dependencies struct {
	Accounts      api.AccountUseCase
	Notes         api.NoteUseCase
	Listing       api.ListingUseCase
	Images        api.ImageUseCase
	Sessions      services.SessionProvider
	Database      handlers.Pinger
	SessionCookie string
}

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(app *fiber.App, deps Dependencies) {
	notesHandler := handlers.NewNotesHandler(deps.Notes)
	listingHandler := handlers.NewListingHandler(deps.Listing)
	uploadHandler := handlers.NewUploadHandler(deps.Images)
	systemHandler := handlers.NewSystemHandler(deps.Database)

	// Middleware для всех запросов.
	app.Use(middleware.NewRequestIDMiddleware())
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())

	apiV1 := app.Group("/api/v1")
	apiV1.Get("/healthz", systemHandler.Health)

	// Защищенные маршруты.
	protected := apiV1.Group("", middleware.NewSessionMiddleware(deps.Sessions, deps.Accounts, deps.SessionCookie))
	protected.Get("/me", systemHandler.Me)
	protected.Get("/tags", listingHandler.ListTags)
	protected.Post("/uploads/image", uploadHandler.UploadImage)

	notesRoutes := protected.Group("/notes")
	notesRoutes.Get("/", listingHandler.ListNotes)
	notesRoutes.Post("/", notesHandler.CreateNote)
	notesRoutes.Post("/remove-tag", notesHandler.RemoveTag)
	notesRoutes.Get("/:id", notesHandler.GetNote)
	notesRoutes.Put("/:id", notesHandler.UpdateNote)
	notesRoutes.Delete("/:id", notesHandler.DeleteNote)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Route not found",
		})
	})
}
