package handler

import (
	"net/http"

	"bomboniere/internal/apierror"
	"bomboniere/internal/dto"
	"bomboniere/internal/service"

	"github.com/gin-gonic/gin"
)

type ProdutoHandler struct{ svc service.ProdutoService }

func NewProdutoHandler(svc service.ProdutoService) *ProdutoHandler {
	return &ProdutoHandler{svc: svc}
}

// Criar godoc
// @Summary Cadastra um produto
// @Tags produtos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CriarProdutoRequest true "Produto"
// @Success 201 {object} dto.ProdutoResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/produtos [post]
func (h *ProdutoHandler) Criar(c *gin.Context) {
	var req dto.CriarProdutoRequest
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
// @Summary Lista produtos do catálogo
// @Tags produtos
// @Produce json
// @Security BearerAuth
// @Param busca query string false "Busca por nome ou código de barras"
// @Param categoria_id query string false "Filtra por categoria"
// @Param incluir_inativos query bool false "Inclui produtos desativados"
// @Param estoque_baixo query bool false "Somente produtos em alerta de estoque"
// @Success 200 {array} dto.ProdutoResponse
// @Router /v1/produtos [get]
func (h *ProdutoHandler) Listar(c *gin.Context) {
	var filter dto.ProdutoFilter
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
// @Summary Retorna um produto pelo id
// @Tags produtos
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do produto"
// @Success 200 {object} dto.ProdutoResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/produtos/{id} [get]
func (h *ProdutoHandler) Obter(c *gin.Context) {
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

// ObterPorBarcode godoc
// @Summary Consulta de preço por código de barras (PDV)
// @Tags produtos
// @Produce json
// @Security BearerAuth
// @Param codigo path string true "Código de barras"
// @Success 200 {object} dto.ProdutoResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/produtos/barcode/{codigo} [get]
func (h *ProdutoHandler) ObterPorBarcode(c *gin.Context) {
	codigo := c.Param("codigo")
	if codigo == "" {
		c.JSON(http.StatusBadRequest, apierror.New("código de barras inválido"))
		return
	}
	resp, err := h.svc.ObterPorBarcode(c.Request.Context(), codigo)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Atualizar godoc
// @Summary Atualiza um produto
// @Tags produtos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do produto"
// @Param body body dto.AtualizarProdutoRequest true "Campos a atualizar"
// @Success 200 {object} dto.ProdutoResponse
// @Failure 404 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError
// @Router /v1/produtos/{id} [put]
func (h *ProdutoHandler) Atualizar(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req dto.AtualizarProdutoRequest
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
// @Summary Desativa um produto (soft delete)
// @Tags produtos
// @Security BearerAuth
// @Param id path string true "ID do produto"
// @Success 204
// @Failure 404 {object} apierror.APIError
// @Router /v1/produtos/{id} [delete]
func (h *ProdutoHandler) Remover(c *gin.Context) {
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
// @Summary Reativa um produto desativado
// @Tags produtos
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do produto"
// @Success 200 {object} dto.ProdutoResponse
// @Router /v1/produtos/{id}/reativar [post]
func (h *ProdutoHandler) Reativar(c *gin.Context) {
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
