package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/ltsmerch/storefront/internal/api/middleware"
	"github.com/ltsmerch/storefront/internal/errors"
	"github.com/ltsmerch/storefront/internal/models"
	service "github.com/ltsmerch/storefront/internal/services"
	"github.com/ltsmerch/storefront/internal/utils"
	"github.com/ltsmerch/storefront/internal/utils/response"
)

type UserHandler struct {
	userService service.UserService
	validator   *validator.Validate
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService, validator: validator.New()}
}

// Register godoc
//
//	@Summary	Create a new account
//	@Tags		users
//	@Accept		json
//	@Produce	json
//	@Param		request	body	models.RegisterRequest	true	"Registration details"
//	@Success	201		{object}	response.APIResponse
//	@Router		/api/v1/users/register [post]
func (h *UserHandler) Register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.RegisterRequest

		if err := utils.DecodeJSONBody(w, r, &req); err != nil {
			return
		}

		if !utils.ValidateStruct(w, h.validator, &req) {
			return
		}

		user, err := h.userService.Register(r.Context(), &req)
		if err != nil {
			logger := middleware.LoggerFromContext(r.Context())
			logger.Warn("Registration failed", "email", req.Email, "error", err.Error())
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusCreated, user)
	}
}

// Login godoc
//
//	@Summary	Authenticate and receive a token
//	@Tags		users
//	@Accept		json
//	@Produce	json
//	@Param		request	body	models.LoginRequest	true	"Credentials"
//	@Success	200		{object}	response.APIResponse
//	@Router		/api/v1/users/login [post]
func (h *UserHandler) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest

		if err := utils.DecodeJSONBody(w, r, &req); err != nil {
			return
		}

		if !utils.ValidateStruct(w, h.validator, &req) {
			return
		}

		resp, err := h.userService.Login(r.Context(), &req)
		if err != nil {
			logger := middleware.LoggerFromContext(r.Context())
			logger.Warn("Login failed", "email", req.Email, "error", err.Error())
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, resp)
	}
}

// Profile godoc
//
//	@Summary	Get the signed-in user's profile
//	@Tags		users
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	response.APIResponse
//	@Router		/api/v1/users/me [get]
func (h *UserHandler) Profile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		user, err := h.userService.Profile(r.Context(), claims.UserID)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, user)
	}
}
