package handler

import (
	"net/http"

	"bomboniere/internal/apierror"
	"bomboniere/internal/dto"
	"bomboniere/internal/service"

	"github.com/gin-gonic/gin"
)

type ClienteHandler struct{ svc service.ClienteService }

func NewClienteHandler(svc service.ClienteService) *ClienteHandler {
	return &ClienteHandler{svc: svc}
}

// Criar godoc
// @Summary Cadastra um cliente
// @Tags clientes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CriarPessoaRequest true "Cliente"
// @Success 201 {object} dto.PessoaResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/clientes [post]
func (h *ClienteHandler) Criar(c *gin.Context) {
	var req dto.CriarPessoaRequest
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
// @Summary Lista clientes
// @Tags clientes
// @Produce json
// @Security BearerAuth
// @Param busca query string false "Busca por nome ou documento"
// @Param incluir_inativos query bool false "Inclui clientes desativados"
// @Success 200 {array} dto.PessoaResponse
// @Router /v1/clientes [get]
func (h *ClienteHandler) Listar(c *gin.Context) {
	var filter dto.PessoaFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("parâmetros inválidos: "+err.Error()))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Obter godoc
// @Summary Retorna um cliente pelo id
// @Tags clientes
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do cliente"
// @Success 200 {object} dto.PessoaResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/clientes/{id} [get]
func (h *ClienteHandler) Obter(c *gin.Context) {
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
// @Summary Atualiza um cliente
// @Tags clientes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do cliente"
// @Param body body dto.AtualizarPessoaRequest true "Campos a atualizar"
// @Success 200 {object} dto.PessoaResponse
// @Failure 404 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError
// @Router /v1/clientes/{id} [put]
func (h *ClienteHandler) Atualizar(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req dto.AtualizarPessoaRequest
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
// @Summary Desativa um cliente (soft delete)
// @Tags clientes
// @Security BearerAuth
// @Param id path string true "ID do cliente"
// @Success 204
// @Failure 404 {object} apierror.APIError
// @Router /v1/clientes/{id} [delete]
func (h *ClienteHandler) Remover(c *gin.Context) {
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

// Reativar godoc
// @Summary Reativa um cliente desativado
// @Tags clientes
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do cliente"
// @Success 200 {object} dto.PessoaResponse
// @Router /v1/clientes/{id}/reativar [post]
func (h *ClienteHandler) Reativar(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.Reativar(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
