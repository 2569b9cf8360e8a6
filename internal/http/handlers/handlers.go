package handlers

import (
	"database/sql"
	"time"

	"gateway/internal/http/middleware"
	"gateway/internal/repositories"
	"gateway/internal/services"

	"github.com/gin-gonic/gin"
)

// Handlers carries what the endpoints need to build per-request services.
type Handlers struct {
	DB        *sql.DB
	Limits    services.ListLimits
	JWTSecret []byte
	JWTTTL    time.Duration
}

func (h Handlers) orders(c *gin.Context) services.OrderService {
	return services.OrderService{
		DB:        h.DB,
		Repo:      repositories.OrderRepository{DB: h.DB},
		Drivers:   repositories.DriverRepository{DB: h.DB},
		Routes:    repositories.RouteRepository{DB: h.DB},
		Limits:    h.Limits,
		RequestID: middleware.GetRequestID(c),
	}
}

func (h Handlers) drivers(c *gin.Context) services.DriverService {
	return services.DriverService{
		Repo:      repositories.DriverRepository{DB: h.DB},
		Limits:    h.Limits,
		RequestID: middleware.GetRequestID(c),
	}
}

func (h Handlers) vehicles(c *gin.Context) services.VehicleService {
	return services.VehicleService{
		Repo:      repositories.VehicleRepository{DB: h.DB},
		Limits:    h.Limits,
		RequestID: middleware.GetRequestID(c),
	}
}

func (h Handlers) routes() services.RouteService {
	return services.RouteService{
		Repo:   repositories.RouteRepository{DB: h.DB},
		Limits: h.Limits,
	}
}

func (h Handlers) dispatch(c *gin.Context) services.DispatchService {
	return services.DispatchService{
		DB:        h.DB,
		Orders:    repositories.OrderRepository{DB: h.DB},
		Drivers:   repositories.DriverRepository{DB: h.DB},
		Vehicles:  repositories.VehicleRepository{DB: h.DB},
		RequestID: middleware.GetRequestID(c),
	}
}

func (h Handlers) dashboard() services.DashboardService {
	return services.DashboardService{
		Orders:   repositories.OrderRepository{DB: h.DB},
		Drivers:  repositories.DriverRepository{DB: h.DB},
		Vehicles: repositories.VehicleRepository{DB: h.DB},
	}
}

func (h Handlers) auth(c *gin.Context) services.AuthService {
	return services.AuthService{
		Users:     repositories.UserRepository{DB: h.DB},
		Secret:    h.JWTSecret,
		TTL:       h.JWTTTL,
		RequestID: middleware.GetRequestID(c),
	}
}
