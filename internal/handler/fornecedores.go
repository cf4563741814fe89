package handler

import (
	"net/http"

	"bomboniere/internal/apierror"
	"bomboniere/internal/dto"
	"bomboniere/internal/service"

	"github.com/gin-gonic/gin"
)

type FornecedorHandler struct{ svc service.FornecedorService }

func NewFornecedorHandler(svc service.FornecedorService) *FornecedorHandler {
	return &FornecedorHandler{svc: svc}
}

// Criar godoc
// @Summary Cadastra um fornecedor
// @Tags fornecedores
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CriarPessoaRequest true "Fornecedor"
// @Success 201 {object} dto.PessoaResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/fornecedores [post]
func (h *FornecedorHandler) Criar(c *gin.Context) {
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
// @Summary Lista fornecedores
// @Tags fornecedores
// @Produce json
// @Security BearerAuth
// @Param busca query string false "Busca por nome ou documento"
// @Param incluir_inativos query bool false "Inclui fornecedores desativados"
// @Success 200 {array} dto.PessoaResponse
// @Router /v1/fornecedores [get]
func (h *FornecedorHandler) Listar(c *gin.Context) {
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
// @Summary Retorna um fornecedor pelo id
// @Tags fornecedores
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do fornecedor"
// @Success 200 {object} dto.PessoaResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/fornecedores/{id} [get]
func (h *FornecedorHandler) Obter(c *gin.Context) {
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
// @Summary Atualiza um fornecedor
// @Tags fornecedores
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do fornecedor"
// @Param body body dto.AtualizarPessoaRequest true "Campos a atualizar"
// @Success 200 {object} dto.PessoaResponse
// @Failure 404 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError
// @Router /v1/fornecedores/{id} [put]
func (h *FornecedorHandler) Atualizar(c *gin.Context) {
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
// @Summary Desativa um fornecedor (soft delete)
// @Tags fornecedores
// @Security BearerAuth
// @Param id path string true "ID do fornecedor"
// @Success 204
// @Failure 404 {object} apierror.APIError
// @Router /v1/fornecedores/{id} [delete]
func (h *FornecedorHandler) Remover(c *gin.Context) {
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
// @Summary Reativa um fornecedor desativado
// @Tags fornecedores
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do fornecedor"
// @Success 200 {object} dto.PessoaResponse
// @Router /v1/fornecedores/{id}/reativar [post]
func (h *FornecedorHandler) Reativar(c *gin.Context) {
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
