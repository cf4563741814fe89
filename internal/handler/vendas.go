package handler

import (
	"net/http"

	"bomboniere/internal/apierror"
	"bomboniere/internal/dto"
	"bomboniere/internal/service"

	"github.com/gin-gonic/gin"
)

type VendaHandler struct{ svc service.VendaService }

func NewVendaHandler(svc service.VendaService) *VendaHandler { return &VendaHandler{svc: svc} }

// Finalizar godoc
// @Summary Finaliza uma venda do PDV
// @Tags vendas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.FinalizarVendaRequest true "Itens e pagamentos"
// @Success 201 {object} dto.FinalizarVendaResponse
// @Failure 400 {object} apierror.APIError
// @Failure 404 {object} apierror.APIError
// @Router /v1/vendas [post]
func (h *VendaHandler) Finalizar(c *gin.Context) {
	var req dto.FinalizarVendaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Finalizar(c.Request.Context(), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar godoc
// @Summary Lista vendas com paginação e filtro por data
// @Tags vendas
// @Produce json
// @Security BearerAuth
// @Param data query string false "YYYY-MM-DD"
// @Param page query int false "Página"
// @Param limit query int false "Itens por página"
// @Success 200 {object} dto.VendaListResponse
// @Router /v1/vendas [get]
func (h *VendaHandler) Listar(c *gin.Context) {
	var filter dto.VendaFilter
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
// @Summary Retorna uma venda pelo id
// @Tags vendas
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da venda"
// @Success 200 {object} dto.VendaResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/vendas/{id} [get]
func (h *VendaHandler) Obter(c *gin.Context) {
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

// Resumo godoc
// @Summary Estatísticas de vendas do dia
// @Tags vendas
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ResumoVendasResponse
// @Router /v1/vendas/stats/resumo [get]
func (h *VendaHandler) Resumo(c *gin.Context) {
	resp, err := h.svc.Resumo(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Cupom godoc
// @Summary Gera o cupom PDF de uma venda
// @Tags vendas
// @Produce application/pdf
// @Security BearerAuth
// @Param id path string true "ID da venda"
// @Success 200 {file} binary
// @Failure 404 {object} apierror.APIError
// @Router /v1/vendas/{id}/cupom [get]
func (h *VendaHandler) Cupom(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	path, err := h.svc.GerarCupom(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.Header("Content-Type", "application/pdf")
	c.File(path)
}
