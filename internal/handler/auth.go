package handler

import (
	"net/http"

	"bomboniere/internal/dto"
	"bomboniere/internal/middleware"
	"bomboniere/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct{ svc service.AuthService }

func NewAuthHandler(svc service.AuthService) *AuthHandler { return &AuthHandler{svc: svc} }

// Login godoc
// @Summary Autentica um usuário e cria uma sessão
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Credenciais"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} apierror.APIError
// @Router /v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Logout godoc
// @Summary Encerra a sessão atual
// @Tags auth
// @Security BearerAuth
// @Success 204
// @Router /v1/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	token := c.GetString(middleware.TokenKey)
	if err := h.svc.Logout(c.Request.Context(), token); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Me godoc
// @Summary Retorna o usuário autenticado
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UsuarioResponse
// @Router /v1/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	token := c.GetString(middleware.TokenKey)
	resp, err := h.svc.Me(c.Request.Context(), token)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Refresh godoc
// @Summary Estende a validade da sessão atual
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.LoginResponse
// @Router /v1/auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	token := c.GetString(middleware.TokenKey)
	resp, err := h.svc.Refresh(c.Request.Context(), token)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
