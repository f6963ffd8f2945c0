package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"github.com/gorilla/mux"
	"github.com/muhammadheryan/property-listing/application/auth"
	listingapp "github.com/muhammadheryan/property-listing/application/listing"
	userapp "github.com/muhammadheryan/property-listing/application/user"
	"github.com/muhammadheryan/property-listing/cmd/config"
	"github.com/muhammadheryan/property-listing/constant"
	"github.com/muhammadheryan/property-listing/model"
	"github.com/muhammadheryan/property-listing/thirdparty/media"
	"github.com/muhammadheryan/property-listing/utils/errors"
	validatorx "github.com/muhammadheryan/property-listing/utils/validator"
	httpSwagger "github.com/swaggo/http-swagger"
)

// HealthCheck probes one dependency; nil means healthy.
type HealthCheck func(ctx context.Context) error

type Options struct {
	AuthApp      auth.AuthApp
	UserApp      userapp.UserApp
	ListingApp   listingapp.ListingApp
	MediaServer  media.Server
	HealthChecks map[string]HealthCheck
	CORS         config.CORSConfig
	RateLimit    *RateLimiter
	MaxUpload    int64
}

type RestHandler struct {
	AuthApp      auth.AuthApp
	UserApp      userapp.UserApp
	ListingApp   listingapp.ListingApp
	healthChecks map[string]HealthCheck
	maxUpload    int64
}

func NewTransport(opts Options) http.Handler {
	router := mux.NewRouter()

	rh := &RestHandler{
		AuthApp:      opts.AuthApp,
		UserApp:      opts.UserApp,
		ListingApp:   opts.ListingApp,
		healthChecks: opts.HealthChecks,
		maxUpload:    opts.MaxUpload,
	}

	// protected routes are registered first so /users/profil wins over /users/{id}
	protected := router.NewRoute().Subrouter()
	protected.Use(AuthMiddleware(opts.AuthApp))
	protected.HandleFunc("/users/profil", rh.Profile).Methods(http.MethodGet)
	protected.HandleFunc("/users/contact", rh.UpdateContact).Methods(http.MethodPatch)
	protected.HandleFunc("/posts/create", rh.CreateListing).Methods(http.MethodPost)
	protected.HandleFunc("/posts/my-properties", rh.MyListings).Methods(http.MethodGet)
	protected.HandleFunc("/posts/{id}/status", rh.UpdateListingStatus).Methods(http.MethodPatch)
	protected.HandleFunc("/posts/{id}", rh.UpdateListing).Methods(http.MethodPatch)
	protected.HandleFunc("/posts/{id}", rh.DeleteListing).Methods(http.MethodDelete)

	// Swagger UI
	router.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	// Public routes
	router.HandleFunc("/", rh.Root).Methods(http.MethodGet)
	router.HandleFunc("/health", rh.Health).Methods(http.MethodGet)
	router.HandleFunc("/auth/login", rh.Login).Methods(http.MethodPost)
	router.HandleFunc("/users/create", rh.Register).Methods(http.MethodPost)
	router.HandleFunc("/users/all", rh.ListUsers).Methods(http.MethodGet)
	router.HandleFunc("/users/{id}", rh.GetUser).Methods(http.MethodGet)
	router.HandleFunc("/posts/public/all", rh.PublicListings).Methods(http.MethodGet)
	router.HandleFunc("/posts/public/{id}", rh.PublicListing).Methods(http.MethodGet)

	if opts.MediaServer != nil {
		router.PathPrefix(opts.MediaServer.Prefix()).Handler(opts.MediaServer.Handler()).Methods(http.MethodGet, http.MethodHead)
	}

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, errors.SetCustomError(constant.ErrNotFound))
	})

	// middleware
	router.Use(LoggingMiddleware())
	router.Use(opts.RateLimit.Middleware())

	return CORSMiddleware(opts.CORS)(router)
}

// Root handler
// @Summary Service banner
// @Tags System
// @Produce json
// @Success 200 {object} map[string]string
// @Router / [get]
func (s *RestHandler) Root(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, map[string]string{
		"message": "Immobilier API",
		"status":  "running",
	})
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// Health handler
// @Summary Dependency health
// @Tags System
// @Produce json
// @Success 200 {object} healthResponse
// @Failure 503 {object} healthResponse
// @Router /health [get]
func (s *RestHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	names := make([]string, 0, len(s.healthChecks))
	for name := range s.healthChecks {
		names = append(names, name)
	}
	sort.Strings(names)

	res := healthResponse{Status: "healthy", Checks: make(map[string]string, len(names))}
	status := http.StatusOK
	for _, name := range names {
		if err := s.healthChecks[name](ctx); err != nil {
			res.Checks[name] = err.Error()
			res.Status = "unhealthy"
			status = http.StatusServiceUnavailable
			continue
		}
		res.Checks[name] = "ok"
	}

	writeJSON(w, status, res)
}

// Login handler
// @Summary Login agency
// @Description OAuth2 password form, the username carries the email
// @Tags Auth
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username formData string true "Email"
// @Param password formData string true "Password"
// @Success 200 {object} model.LoginResponse
// @Failure 403 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Router /auth/login [post]
func (s *RestHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	req := model.LoginRequest{
		Username: r.PostForm.Get("username"),
		Password: r.PostForm.Get("password"),
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.AuthApp.Login(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// Register handler
// @Summary Register agency
// @Description Create an agency account and send a welcome email
// @Tags Users
// @Accept json
// @Produce json
// @Param request body model.RegisterRequest true "Register Request"
// @Success 201 {object} model.UserResponse
// @Failure 400 {object} ErrorResponse
// @Router /users/create [post]
func (s *RestHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.UserApp.Register(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeCreated(w, res)
}

// ListUsers handler
// @Summary List users
// @Tags Users
// @Produce json
// @Success 200 {array} model.UserResponse
// @Router /users/all [get]
func (s *RestHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	res, err := s.UserApp.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// Profile handler
// @Summary Caller profile
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.UserResponse
// @Failure 401 {object} ErrorResponse
// @Router /users/profil [get]
func (s *RestHandler) Profile(w http.ResponseWriter, r *http.Request) {
	res, err := s.UserApp.GetByID(r.Context(), callerID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// GetUser handler
// @Summary Get user by id
// @Tags Users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} model.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /users/{id} [get]
func (s *RestHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	res, err := s.UserApp.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// UpdateContact handler
// @Summary Update caller contact
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.UpdateContactRequest true "Contact"
// @Success 200 {object} model.UserResponse
// @Failure 400 {object} ErrorResponse
// @Router /users/contact [patch]
func (s *RestHandler) UpdateContact(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.UserApp.UpdateContact(r.Context(), callerID(r), &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}
