package handlers

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/you/excursion-booking/internal/middlewares"
	"github.com/you/excursion-booking/internal/service"
)

// Router assembles the full HTTP surface. Kept out of main so httptest can
// stand up the same routes.
func Router(identity *service.IdentitySvc, inv *service.InventorySvc, bookings *service.BookingSvc) *gin.Engine {
	r := gin.Default()
	r.Use(otelgin.Middleware("booking-api"))
	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
	}))

	ph := NewPublicHandler(inv, bookings)
	r.GET("/operators", ph.Operators)
	r.GET("/cars", ph.Cars)
	r.GET("/cars/:id", ph.Car)
	r.GET("/excursions", ph.Excursions)
	r.GET("/bookings", ph.Bookings)
	r.GET("/car-reservations", ph.CarReservations)
	r.GET("/excursion-reservations", ph.ExcursionReservations)
	r.POST("/api/pay", ph.Pay)

	ah := NewAuthHandler(identity)
	r.POST("/api/admin/login", ah.Login)

	admin := r.Group("/api/admin")
	admin.Use(middlewares.Auth(identity))
	{
		admin.POST("/change-password", ah.ChangePassword)

		adm := NewAdminHandler(inv, bookings)
		admin.GET("/cars", adm.Cars)
		admin.POST("/cars", adm.CreateCar)
		admin.PUT("/cars/:id", adm.UpdateCar)
		admin.DELETE("/cars/:id", adm.DeleteCar)

		admin.GET("/excursions", adm.Excursions)
		admin.POST("/excursions", adm.CreateExcursion)
		admin.PUT("/excursions/:id", adm.UpdateExcursion)
		admin.DELETE("/excursions/:id", adm.DeleteExcursion)

		admin.GET("/bookings", adm.Bookings)
	}

	super := r.Group("/api/super")
	super.Use(middlewares.Auth(identity), middlewares.RequireSuperuser())
	{
		sh := NewSuperHandler(identity, inv)
		super.GET("/users", sh.Users)
		super.POST("/users", sh.CreateUser)
		super.PUT("/users/:id", sh.UpdateUser)
		super.DELETE("/users/:id", sh.DeleteUser)

		super.GET("/suppliers", sh.Suppliers)
		super.POST("/suppliers", sh.CreateSupplier)
		super.PUT("/suppliers/:id", sh.UpdateSupplier)
		super.DELETE("/suppliers/:id", sh.DeleteSupplier)
	}

	return r
}
