package auth

import (
	"errors"
	"net/http"

	"hireview/internal/dto"
	"hireview/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type AuthController struct {
	authService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Signup godoc
// @Summary (Recruiter) Create an account
// @Tags Auth
// @Accept json
// @Produce json
// @Param signup body dto.SignupRequestDTO true "Email, name and password"
// @Success 201 {object} dto.ApiResponse{data=dto.RecruiterDTO}
// @Failure 400 {object} dto.ApiResponse "Invalid request body"
// @Failure 409 {object} dto.ApiResponse "Email already exists"
// @Router /auth/signup [post]
func (c *AuthController) Signup(ctx *gin.Context) {
	var req dto.SignupRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Failure(http.StatusBadRequest, "Invalid request body"))
		return
	}

	recruiter, err := c.authService.Signup(req)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			ctx.JSON(http.StatusConflict, dto.Failure(http.StatusConflict, "Email already exists"))
			return
		}
		log.Error().Err(err).Str("email", req.Email).Msg("Signup: service error")
		ctx.JSON(http.StatusInternalServerError, dto.Failure(http.StatusInternalServerError, err.Error()))
		return
	}
	ctx.JSON(http.StatusCreated, dto.Success(http.StatusCreated, recruiter, "Signup successful"))
}

// Login godoc
// @Summary (Recruiter) Log in
// @Tags Auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequestDTO true "Email and password"
// @Success 200 {object} dto.ApiResponse{data=dto.RecruiterDTO}
// @Failure 401 {object} dto.ApiResponse "Invalid credentials"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Failure(http.StatusBadRequest, "Invalid request body"))
		return
	}

	recruiter, err := c.authService.Login(req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			ctx.JSON(http.StatusUnauthorized, dto.Failure(http.StatusUnauthorized, "Invalid credentials"))
			return
		}
		log.Error().Err(err).Str("email", req.Email).Msg("Login: service error")
		ctx.JSON(http.StatusInternalServerError, dto.Failure(http.StatusInternalServerError, err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, dto.Success(http.StatusOK, recruiter, "Login successful"))
}
