package api

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/trangvt/claria/internal/db"
	"github.com/trangvt/claria/internal/services"
	"gorm.io/gorm"
)

const (
	authCookieName = "claria_auth"
	contextUserKey = "current_patient"
)

const (
	defaultAuthTokenTTL  = 7 * 24 * time.Hour
	rememberAuthTokenTTL = 30 * 24 * time.Hour
)

type authClaims struct {
	PatientID string `json:"pid"`
	jwt.RegisteredClaims
}

type Handler struct {
	db           *gorm.DB
	secretKey    []byte
	location     *time.Location
	cookieSecure bool

	repositories *db.Repositories
	auth         *services.AuthService
	appointments *services.AppointmentService
	cart         *services.CartService
	gateway      *services.PaymentGateway
}

func NewHandler(database *gorm.DB, secretKey string, location *time.Location, gateway *services.PaymentGateway) *Handler {
	if location == nil {
		location = time.UTC
	}

	repositories := db.NewRepositories(database)
	return &Handler{
		db:           database,
		secretKey:    []byte(secretKey),
		location:     location,
		repositories: repositories,
		auth:         services.NewAuthService(repositories.Patients),
		appointments: services.NewAppointmentService(repositories.Appointments),
		cart:         services.NewCartService(repositories.KV),
		gateway:      gateway,
	}
}

// UseSecureCookies marks auth cookies Secure, for deployments behind TLS.
func (handler *Handler) UseSecureCookies(secure bool) {
	handler.cookieSecure = secure
}

func (handler *Handler) now() time.Time {
	return time.Now().In(handler.location)
}
