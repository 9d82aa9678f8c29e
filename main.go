// Package main campus housing API.
//
// @title           CampusShelter API
// @version         1.0
// @description     Student housing marketplace (properties, bookings, leases, reviews, maintenance, messaging).
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description  Use:  Bearer <JWT>
package main

import (
	"campusshelter/app/echoServer"
	adminctrl "campusshelter/app/echoServer/controller/admin"
	authctrl "campusshelter/app/echoServer/controller/auth"
	bookingctrl "campusshelter/app/echoServer/controller/booking"
	documentctrl "campusshelter/app/echoServer/controller/document"
	leasectrl "campusshelter/app/echoServer/controller/lease"
	maintenancectrl "campusshelter/app/echoServer/controller/maintenance"
	messagectrl "campusshelter/app/echoServer/controller/message"
	propertyctrl "campusshelter/app/echoServer/controller/property"
	reviewctrl "campusshelter/app/echoServer/controller/review"
	"campusshelter/app/echoServer/validation"
	"campusshelter/config"
	adminrepo "campusshelter/repository/admin"
	bookingrepo "campusshelter/repository/booking"
	documentrepo "campusshelter/repository/document"
	leaserepo "campusshelter/repository/lease"
	maintenancerepo "campusshelter/repository/maintenance"
	messagerepo "campusshelter/repository/message"
	propertyrepo "campusshelter/repository/property"
	reviewrepo "campusshelter/repository/review"
	userrepo "campusshelter/repository/user"
	adminsvc "campusshelter/service/admin"
	authsvc "campusshelter/service/auth"
	bookingsvc "campusshelter/service/booking"
	documentsvc "campusshelter/service/document"
	leasesvc "campusshelter/service/lease"
	maintenancesvc "campusshelter/service/maintenance"
	messagesvc "campusshelter/service/message"
	propertysvc "campusshelter/service/property"
	reviewsvc "campusshelter/service/review"
	"campusshelter/util/database"
	"context"
	"log/slog"
	"os"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	// DB: *sql.DB
	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.InitSchema(ctx, db); err != nil {
		log.Error("schema init failed", "err", err)
		os.Exit(1)
	}

	// repos
	ur := userrepo.New(db)
	pr := propertyrepo.New(db)
	br := bookingrepo.New(db)
	lr := leaserepo.New(db)
	rr := reviewrepo.New(db)
	mr := maintenancerepo.New(db)
	msgr := messagerepo.New(db)
	dr := documentrepo.New(db)
	ar := adminrepo.New(db)

	// services
	as := authsvc.New(ur, cfg.JWTSecret)
	ps := propertysvc.New(pr, rr)
	bs := bookingsvc.New(br)
	ls := leasesvc.New(lr)
	rs := reviewsvc.New(rr)
	ms := maintenancesvc.New(mr)
	msgs := messagesvc.New(msgr)
	ds := documentsvc.New(dr, cfg.UploadDir)
	ads := adminsvc.New(ar, pr)

	// controllers
	authC := &authctrl.Controller{Svc: as, Log: log}
	propertyC := &propertyctrl.Controller{Svc: ps, Log: log}
	bookingC := &bookingctrl.Controller{Svc: bs, Log: log}
	leaseC := &leasectrl.Controller{Svc: ls, Log: log}
	reviewC := &reviewctrl.Controller{Svc: rs, Log: log}
	maintenanceC := &maintenancectrl.Controller{Svc: ms, Log: log}
	messageC := &messagectrl.Controller{Svc: msgs, Log: log}
	documentC := &documentctrl.Controller{Svc: ds, Log: log}
	adminC := &adminctrl.Controller{Svc: ads, Log: log}

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		Auth:        authC,
		Property:    propertyC,
		Booking:     bookingC,
		Lease:       leaseC,
		Review:      reviewC,
		Maintenance: maintenanceC,
		Message:     messageC,
		Document:    documentC,
		Admin:       adminC,

		JWTSecret: cfg.JWTSecret,
		UploadDir: cfg.UploadDir,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}
	if port == "" {
		port = "8080"
	}

	slog.Info("starting server", "env", cfg.Env, "port", port)

	e.Logger.Fatal(e.Start(":" + port))
}
