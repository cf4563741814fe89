package handler

import (
	"net/http"

	"bomboniere/internal/dto"
	"bomboniere/internal/service"

	"github.com/gin-gonic/gin"
)

type CaixaHandler struct{ svc service.CaixaService }

func NewCaixaHandler(svc service.CaixaService) *CaixaHandler { return &CaixaHandler{svc: svc} }

// Status godoc
// @Summary Retorna o caixa aberto, se houver
// @Tags caixa
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StatusCaixaResponse
// @Router /v1/caixa/status [get]
func (h *CaixaHandler) Status(c *gin.Context) {
	resp, err := h.svc.Status(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Abrir godoc
// @Summary Abre uma nova sessão de caixa
// @Tags caixa
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.AbrirCaixaRequest true "Dados de abertura"
// @Success 201 {object} dto.CaixaResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/caixa/abrir [post]
func (h *CaixaHandler) Abrir(c *gin.Context) {
	var req dto.AbrirCaixaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Abrir(c.Request.Context(), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Atualizar godoc
// @Summary Sobrescreve totais e movimentações do caixa aberto
// @Tags caixa
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.AtualizarCaixaRequest true "Estado do caixa"
// @Success 200 {object} dto.CaixaResponse
// @Router /v1/caixa/atualizar [put]
func (h *CaixaHandler) Atualizar(c *gin.Context) {
	var req dto.AtualizarCaixaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Atualizar(c.Request.Context(), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RegistrarMovimentacao godoc
// @Summary Registra um reforço ou sangria
// @Tags caixa
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.MovimentacaoRequest true "Movimentação"
// @Success 201 {object} dto.CaixaResponse
// @Router /v1/caixa/movimentacoes [post]
func (h *CaixaHandler) RegistrarMovimentacao(c *gin.Context) {
	var req dto.MovimentacaoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarMovimentacao(c.Request.Context(), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Fechar godoc
// @Summary Fecha o caixa aberto e gera o fechamento
// @Tags caixa
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.FecharCaixaRequest true "Saldo contado"
// @Success 200 {object} dto.FechamentoResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/caixa/fechar [post]
func (h *CaixaHandler) Fechar(c *gin.Context) {
	var req dto.FecharCaixaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Fechar(c.Request.Context(), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListarFechamentos godoc
// @Summary Lista os fechamentos de caixa
// @Tags caixa
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.FechamentoResponse
// @Router /v1/caixa/fechamentos [get]
func (h *CaixaHandler) ListarFechamentos(c *gin.Context) {
	resp, err := h.svc.ListarFechamentos(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ObterFechamento godoc
// @Summary Retorna um fechamento pelo id
// @Tags caixa
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do fechamento"
// @Success 200 {object} dto.FechamentoResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/caixa/fechamentos/{id} [get]
func (h *CaixaHandler) ObterFechamento(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.ObterFechamento(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// LimparFechamentos godoc
// @Summary Remove todos os fechamentos
// @Tags caixa
// @Security BearerAuth
// @Success 204
// @Router /v1/caixa/fechamentos [delete]
func (h *CaixaHandler) LimparFechamentos(c *gin.Context) {
	if err := h.svc.LimparFechamentos(c.Request.Context()); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
