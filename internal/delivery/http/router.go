package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"devevent/internal/adapters/auth"
	"devevent/internal/delivery/http/controllers"
	"devevent/internal/delivery/http/middleware"
	"devevent/internal/domain"
)

// UploadsPrefix is the URL prefix under which locally stored images are served.
const UploadsPrefix = "/uploads/"

// RouterDeps collects what NewRouter wires into the mux.
type RouterDeps struct {
	Logger               *slog.Logger
	EventController      *controllers.EventController
	BookingController    *controllers.BookingController
	RevalidateController *controllers.RevalidateController
	// RevalidateVerifier guards POST /revalidate; nil leaves it open.
	RevalidateVerifier domain.TokenVerifier
	UploadDir          string
	CORSAllowedOrigins []string
}

// NewRouter initializes the HTTP router with all application routes and the
// request ID, logging and CORS middleware. CORS preflights never reach the mux.
func NewRouter(d RouterDeps) http.Handler {
	mux := http.NewServeMux()

	// Events
	mux.HandleFunc("GET /events", d.EventController.ListEvents)
	mux.HandleFunc("POST /events", d.EventController.CreateEvent)
	mux.HandleFunc("GET /events/{slug}", d.EventController.GetEvent)
	mux.HandleFunc("GET /events/{slug}/similar", d.EventController.ListSimilarEvents)

	// Bookings
	mux.HandleFunc("POST /events/{slug}/bookings", d.BookingController.CreateBooking)
	mux.HandleFunc("GET /events/{slug}/bookings/count", d.BookingController.CountBookings)

	// Cache
	requireToken := middleware.RequireToken(d.RevalidateVerifier, auth.RevalidateSubject, d.Logger)
	mux.HandleFunc("POST /revalidate", requireToken(d.RevalidateController.Revalidate))

	// Local uploads
	if d.UploadDir != "" {
		mux.Handle("GET "+UploadsPrefix, http.StripPrefix(UploadsPrefix, http.FileServer(http.Dir(d.UploadDir))))
	}

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	var h http.Handler = mux
	h = middleware.CORS(d.CORSAllowedOrigins, h)
	h = middleware.LoggingMiddleware(d.Logger, h)
	h = middleware.RequestID(h)
	return h
}
