package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/weeklisthq/weeklist-api/internal/api/shared"
	"github.com/weeklisthq/weeklist-api/internal/service"
	"github.com/weeklisthq/weeklist-api/internal/store"
)

// InvalidPayloadMessage is returned for request bodies that fail decoding or
// validation.
const InvalidPayloadMessage = "Invalid request payload!"

// AuthHandler handles user registration and login.
type AuthHandler struct {
	userService service.UserService
	validator   *validator.Validate
	logger      *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(userService service.UserService, log *slog.Logger) *AuthHandler {
	if log == nil {
		log = slog.Default()
	}
	return &AuthHandler{
		userService: userService,
		validator:   validator.New(),
		logger:      log.With("component", "auth_handler"),
	}
}

// Register handles POST /register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, InvalidPayloadMessage, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, InvalidPayloadMessage, err)
		return
	}

	user, token, err := h.userService.Register(r.Context(),
		req.Fullname, req.Email, req.Password, req.Age, req.Gender, req.Mobile)
	if err != nil {
		if store.IsDuplicateError(err) {
			shared.RespondWithError(w, r, http.StatusConflict, "Email or mobile already exists!", err)
			return
		}
		status := MapErrorToStatusCode(err)
		if status == http.StatusBadRequest {
			shared.RespondWithError(w, r, status, InvalidPayloadMessage, err)
			return
		}
		shared.RespondWithError(w, r, status, SomethingWentWrong, err)
		return
	}

	h.logger.Debug("registration succeeded", "user_id", user.ID)
	shared.RespondWithData(w, r, http.StatusCreated, "User registered successfully!", AuthData{Token: token})
}

// Login handles GET /login. Credentials arrive in a JSON body; query
// parameters are accepted as a fallback because some clients cannot attach a
// body to a GET request.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	req, err := h.loginRequest(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, InvalidPayloadMessage, err)
		return
	}

	user, token, err := h.userService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrUserNotFound):
			shared.RespondWithError(w, r, http.StatusNotFound, "User does not exist", err)
		case errors.Is(err, service.ErrInvalidCredentials):
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid credentials!", err)
		default:
			shared.RespondWithError(w, r, MapErrorToStatusCode(err), SomethingWentWrong, err)
		}
		return
	}

	h.logger.Debug("login succeeded", "user_id", user.ID)
	shared.RespondWithData(w, r, http.StatusOK, "You've logged in successfully!", AuthData{Token: token})
}

func (h *AuthHandler) loginRequest(r *http.Request) (LoginRequest, error) {
	var req LoginRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := DecodeJSON(r, &req); err != nil {
			return req, err
		}
	} else {
		req.Email = r.URL.Query().Get("email")
		req.Password = r.URL.Query().Get("password")
	}
	return req, h.validator.Struct(req)
}
