package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/kartik2406/accounts/api/http/presenter"
	"github.com/kartik2406/accounts/pkg/auth"
	"github.com/kartik2406/accounts/pkg/security/jwt"
)

type AuthHandler struct {
	useCase auth.AuthUseCase
}

func NewAuthHandler(useCase auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{useCase: useCase}
}

type registerRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNo     string `json:"phoneNo"`
	ZipCode     string `json:"zipCode"`
	Country     string `json:"country"`
	DateOfBirth string `json:"dateOfBirth"`
}

// Register handles account registration. No token is issued here; the
// client logs in as a separate step.
// @Summary Register account
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body registerRequest true "registration payload"
// @Success 201 {object} map[string]any
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 500 {object} presenter.ServerErrorResponse
// @Router  /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "Invalid JSON payload")
	}

	_, err := h.useCase.Register(c.Context(), auth.RegisterInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Password:    req.Password,
		PhoneNo:     req.PhoneNo,
		ZipCode:     req.ZipCode,
		Country:     req.Country,
		DateOfBirth: req.DateOfBirth,
	})
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrMissingFields):
			return presenter.Error(c, http.StatusBadRequest, "All fields are required")
		case errors.Is(err, auth.ErrPasswordTooShort):
			return presenter.Error(c, http.StatusBadRequest, "Password must be at least 6 characters")
		case errors.Is(err, auth.ErrInvalidDateOfBirth):
			return presenter.Error(c, http.StatusBadRequest, "Invalid date of birth")
		case errors.Is(err, auth.ErrEmailExists):
			return presenter.Error(c, http.StatusBadRequest, "Email already exists")
		default:
			return presenter.ServerError(c, err)
		}
	}

	return presenter.JSON(c, http.StatusCreated, fiber.Map{
		"message": "User registered successfully",
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles credential verification and token issuance.
// @Summary Login
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body loginRequest true "login payload"
// @Success 200 {object} map[string]any
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Failure 500 {object} presenter.ServerErrorResponse
// @Router  /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "Invalid JSON payload")
	}

	result, err := h.useCase.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrMissingFields):
			return presenter.Error(c, http.StatusBadRequest, "All fields are required")
		case errors.Is(err, auth.ErrNotFound):
			return presenter.Error(c, http.StatusNotFound, "User not found")
		case errors.Is(err, auth.ErrInvalidCredentials):
			return presenter.Error(c, http.StatusBadRequest, "Invalid credentials")
		default:
			return presenter.ServerError(c, err)
		}
	}

	return presenter.JSON(c, http.StatusOK, fiber.Map{
		"message": "Login successful",
		"token":   result.Token,
		"user":    result.User.Public(),
	})
}

// Me returns the authenticated account's public projection. Requires the
// JWT middleware to have verified the token.
// @Summary Current account
// @Tags    auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	email, _ := c.Locals(jwt.LocalsEmail).(string)

	user, err := h.useCase.Account(c.Context(), email)
	if err != nil {
		if errors.Is(err, auth.ErrNotFound) {
			return presenter.Error(c, http.StatusNotFound, "User not found")
		}
		return presenter.ServerError(c, err)
	}

	return presenter.JSON(c, http.StatusOK, fiber.Map{"user": user.Public()})
}
