package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/userweather/apiserver/internal/services"
)

var errInvalidUserID = errors.New("invalid user id")

// UserHandler provides HTTP handlers for user records and their weather.
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler constructs a handler with the provided service.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// UserRouter registers user routes on the given router.
func UserRouter(r chi.Router, userService *services.UserService) {
	handler := NewUserHandler(userService)

	r.Get("/", handler.ListUsers)
	r.Post("/", handler.CreateUser)
	r.Route("/{userID}", func(r chi.Router) {
		r.Get("/", handler.GetUser)
		r.Put("/", handler.UpdateUser)
		r.Delete("/", handler.DeleteUser)
		r.Get("/weather", handler.GetUserWeather)
	})
}

func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeList(w, users, len(users))
}

func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseUserID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.userService.Get(r.Context(), id)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeData(w, http.StatusOK, user, "Success")
}

func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var input services.CreateUserInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input.Name = strings.TrimSpace(input.Name)
	input.ZipCode = strings.TrimSpace(input.ZipCode)
	if err := validateCreateUser(input); err != nil {
		writeAppError(w, err)
		return
	}

	user, err := h.userService.Create(r.Context(), input)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeData(w, http.StatusCreated, user, "User created successfully")
}

func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseUserID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var input services.UpdateUserInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validateUpdateUser(input); err != nil {
		writeAppError(w, err)
		return
	}

	user, err := h.userService.Update(r.Context(), id, input)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeData(w, http.StatusOK, user, "User updated successfully")
}

func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseUserID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.userService.Delete(r.Context(), id); err != nil {
		writeAppError(w, err)
		return
	}
	writeData(w, http.StatusOK, nil, "User deleted successfully")
}

func (h *UserHandler) GetUserWeather(w http.ResponseWriter, r *http.Request) {
	id, err := parseUserID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	userWeather, err := h.userService.Weather(r.Context(), id)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeData(w, http.StatusOK, userWeather, "Success")
}

func parseUserID(r *http.Request) (string, error) {
	id := strings.TrimSpace(chi.URLParam(r, "userID"))
	if id == "" {
		return "", errInvalidUserID
	}
	return id, nil
}
