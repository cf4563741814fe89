package handler

import (
	"net/http"
	"strconv"

	"bomboniere/internal/dto"
	"bomboniere/internal/service"

	"github.com/gin-gonic/gin"
)

type CategoriaHandler struct{ svc service.CategoriaService }

func NewCategoriaHandler(svc service.CategoriaService) *CategoriaHandler {
	return &CategoriaHandler{svc: svc}
}

// Criar godoc
// @Summary Cadastra uma categoria
// @Tags categorias
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CriarCategoriaRequest true "Categoria"
// @Success 201 {object} dto.CategoriaResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/categorias [post]
func (h *CategoriaHandler) Criar(c *gin.Context) {
	var req dto.CriarCategoriaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Criar(c.Request.Context(), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar godoc
// @Summary Lista categorias
// @Tags categorias
// @Produce json
// @Security BearerAuth
// @Param incluir_inativas query bool false "Inclui categorias desativadas"
// @Success 200 {array} dto.CategoriaResponse
// @Router /v1/categorias [get]
func (h *CategoriaHandler) Listar(c *gin.Context) {
	incluirInativas, _ := strconv.ParseBool(c.Query("incluir_inativas"))
	resp, err := h.svc.Listar(c.Request.Context(), incluirInativas)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Obter godoc
// @Summary Retorna uma categoria pelo id
// @Tags categorias
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da categoria"
// @Success 200 {object} dto.CategoriaResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/categorias/{id} [get]
func (h *CategoriaHandler) Obter(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.ObterPorID(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Atualizar godoc
// @Summary Atualiza uma categoria
// @Tags categorias
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da categoria"
// @Param body body dto.CriarCategoriaRequest true "Campos a atualizar"
// @Success 200 {object} dto.CategoriaResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/categorias/{id} [put]
func (h *CategoriaHandler) Atualizar(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req dto.CriarCategoriaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Atualizar(c.Request.Context(), id, req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Remover godoc
// @Summary Desativa uma categoria (soft delete)
// @Tags categorias
// @Security BearerAuth
// @Param id path string true "ID da categoria"
// @Success 204
// @Failure 404 {object} apierror.APIError
// @Router /v1/categorias/{id} [delete]
func (h *CategoriaHandler) Remover(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.svc.Remover(c.Request.Context(), id); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
