package handler

import (
	"net/http"
	"strconv"

	"bomboniere/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type DashboardHandler struct {
	svc        service.DashboardService
	metaMensal decimal.Decimal
}

func NewDashboardHandler(svc service.DashboardService, metaMensal decimal.Decimal) *DashboardHandler {
	return &DashboardHandler{svc: svc, metaMensal: metaMensal}
}

// Resumo godoc
// @Summary Resumo do dia para o painel
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ResumoDashboardResponse
// @Router /v1/dashboard/resumo [get]
func (h *DashboardHandler) Resumo(c *gin.Context) {
	resp, err := h.svc.Resumo(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Grafico godoc
// @Summary Série de receita com média móvel e linha de meta
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Param dias query int false "Janela em dias (padrão 30; >=90 agrupa por semana)"
// @Param meta query number false "Meta mensal (padrão da configuração)"
// @Success 200 {object} dto.GraficoReceitaResponse
// @Router /v1/dashboard/grafico [get]
func (h *DashboardHandler) Grafico(c *gin.Context) {
	dias, _ := strconv.Atoi(c.Query("dias"))

	meta := h.metaMensal
	if raw := c.Query("meta"); raw != "" {
		if parsed, err := decimal.NewFromString(raw); err == nil && parsed.IsPositive() {
			meta = parsed
		}
	}

	resp, err := h.svc.Grafico(c.Request.Context(), dias, meta)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
