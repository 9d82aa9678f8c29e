package echoServer

import (
	"campusshelter/app/echoServer/controller/admin"
	"campusshelter/app/echoServer/controller/auth"
	"campusshelter/app/echoServer/controller/booking"
	"campusshelter/app/echoServer/controller/document"
	"campusshelter/app/echoServer/controller/lease"
	"campusshelter/app/echoServer/controller/maintenance"
	"campusshelter/app/echoServer/controller/message"
	"campusshelter/app/echoServer/controller/property"
	"campusshelter/app/echoServer/controller/review"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

type C struct {
	Auth        *auth.Controller
	Property    *property.Controller
	Booking     *booking.Controller
	Lease       *lease.Controller
	Review      *review.Controller
	Maintenance *maintenance.Controller
	Message     *message.Controller
	Document    *document.Controller
	Admin       *admin.Controller
	JWTSecret   string
	UploadDir   string
}

func Register(e *echo.Echo, c C) {
	// Public
	e.POST("/auth/register", c.Auth.Register)
	e.POST("/auth/login", c.Auth.Login)
	e.GET("/properties", c.Property.List)
	e.GET("/properties/:id", c.Property.Detail)
	e.GET("/properties/:id/reviews", c.Review.ListForProperty)
	e.Static("/uploads", c.UploadDir)

	// Auth
	g := e.Group("")
	g.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(c.JWTSecret),

		NewClaimsFunc: func(c echo.Context) jwt.Claims { return jwt.MapClaims{} },
		TokenLookup:   "header:Authorization",
	}))
	g.Use(ExtractIdentity())

	// Properties (write side)
	g.POST("/properties", c.Property.Create)
	g.PATCH("/properties/:id", c.Property.Update)
	g.DELETE("/properties/:id", c.Property.Delete)

	// Bookings
	g.GET("/bookings", c.Booking.List)
	g.POST("/bookings", c.Booking.Create)
	g.PATCH("/bookings/:id", c.Booking.UpdateStatus)

	// Leases
	g.POST("/leases", c.Lease.Create)
	g.GET("/leases/:id", c.Lease.Detail)

	// Reviews
	g.POST("/reviews", c.Review.Create)

	// Maintenance
	g.GET("/maintenance", c.Maintenance.List)
	g.POST("/maintenance", c.Maintenance.Create)
	g.PATCH("/maintenance/:id", c.Maintenance.UpdateStatus)

	// Messages
	g.GET("/messages", c.Message.List)
	g.POST("/messages", c.Message.Send)

	// Documents
	g.POST("/documents/upload", c.Document.Upload)

	// Admin
	g.GET("/admin/users", c.Admin.Users)
	g.GET("/admin/analytics", c.Admin.Analytics)
	g.PATCH("/admin/properties/:id", c.Admin.SetPropertyApproval)
	g.DELETE("/admin/properties/:id", c.Admin.DeleteProperty)
}
