package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bomboniere/internal/apierror"
	"bomboniere/internal/dto"
	"bomboniere/internal/infra"
	"bomboniere/internal/model"
	"bomboniere/internal/repository"
	"bomboniere/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type VendaService interface {
	Finalizar(ctx context.Context, req dto.FinalizarVendaRequest) (*dto.FinalizarVendaResponse, error)
	Listar(ctx context.Context, filter dto.VendaFilter) (*dto.VendaListResponse, error)
	ObterPorID(ctx context.Context, id uuid.UUID) (*dto.VendaResponse, error)
	Resumo(ctx context.Context) (*dto.ResumoVendasResponse, error)
	// GerarCupom renders the thermal receipt PDF and returns its file path.
	GerarCupom(ctx context.Context, id uuid.UUID) (string, error)
}

type vendaService struct {
	vendas   repository.VendaRepository
	produtos repository.ProdutoRepository
	caixas   repository.CaixaRepository
	notif    worker.Notificador
	cupomDir string
}

func NewVendaService(
	vendas repository.VendaRepository,
	produtos repository.ProdutoRepository,
	caixas repository.CaixaRepository,
	notif worker.Notificador,
	cupomDir string,
) VendaService {
	return &vendaService{vendas: vendas, produtos: produtos, caixas: caixas, notif: notif, cupomDir: cupomDir}
}

// estoqueAlerta carries what the low-stock notification needs, captured inside
// the transaction so the alert reflects the post-sale stock.
type estoqueAlerta struct {
	produtoID     uuid.UUID
	nome          string
	estoque       int
	estoqueMinimo int
}

// Finalizar resolves every item by barcode, checks and decrements stock,
// records the sale with payment allocations and bumps the open register's
// totals, all in one transaction. Notifications go out only after commit.
func (s *vendaService) Finalizar(ctx context.Context, req dto.FinalizarVendaRequest) (*dto.FinalizarVendaResponse, error) {
	if len(req.Itens) == 0 {
		return nil, apierror.Invalid("venda precisa de ao menos um item")
	}
	if len(req.FormasPagamento) == 0 {
		return nil, apierror.Invalid("venda precisa de ao menos uma forma de pagamento")
	}
	if req.Desconto.IsNegative() {
		return nil, apierror.Invalid("desconto não pode ser negativo")
	}

	valorPago := decimal.Zero
	formas := make([]string, 0, len(req.FormasPagamento))
	for _, p := range req.FormasPagamento {
		if p.Valor.LessThanOrEqual(decimal.Zero) {
			return nil, apierror.Invalid("valor de pagamento deve ser positivo")
		}
		valorPago = valorPago.Add(p.Valor)
		formas = append(formas, p.Forma)
	}

	var venda *model.Venda
	var alertas []estoqueAlerta

	txErr := runTx(ctx, s.vendas.DB(), func(tx *gorm.DB) error {
		total := decimal.Zero
		quantidadeTotal := 0
		itens := make([]model.VendaItem, 0, len(req.Itens))
		alertas = alertas[:0]

		// alertaIdx dedupes low-stock alerts when a product shows up on more
		// than one line; the last line's count wins.
		alertaIdx := make(map[uuid.UUID]int)

		for _, item := range req.Itens {
			// The in-tx read sees the decrements already issued for earlier
			// lines, so a repeated barcode draws down the same stock.
			produto, err := s.produtos.FindByBarcodeTx(tx, item.CodigoBarras)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apierror.NotFound(fmt.Sprintf("produto não encontrado: %s", item.CodigoBarras))
				}
				return err
			}
			if !produto.Ativo {
				return apierror.Invalid(fmt.Sprintf("produto inativo: %s", produto.Nome))
			}

			if produto.Estoque < item.Quantidade {
				return apierror.Invalid(fmt.Sprintf(
					"estoque insuficiente para %s: disponível %d, solicitado %d",
					produto.Nome, produto.Estoque, item.Quantidade,
				))
			}

			preco := item.PrecoUnitario
			if preco.IsZero() {
				preco = produto.PrecoVenda
			}
			subtotal := preco.Mul(decimal.NewFromInt(int64(item.Quantidade)))
			total = total.Add(subtotal)
			quantidadeTotal += item.Quantidade

			itens = append(itens, model.VendaItem{
				ProdutoID:     produto.ID,
				Nome:          produto.Nome,
				CodigoBarras:  produto.CodigoBarras,
				Quantidade:    item.Quantidade,
				PrecoUnitario: preco,
				CustoUnitario: produto.PrecoCusto,
				Subtotal:      subtotal,
			})

			if err := s.produtos.DecrementEstoqueTx(tx, produto.ID, item.Quantidade); err != nil {
				return err
			}

			restante := produto.Estoque - item.Quantidade
			if restante == 0 || (produto.EstoqueMinimo > 0 && restante <= produto.EstoqueMinimo) {
				alerta := estoqueAlerta{
					produtoID:     produto.ID,
					nome:          produto.Nome,
					estoque:       restante,
					estoqueMinimo: produto.EstoqueMinimo,
				}
				if i, ok := alertaIdx[produto.ID]; ok {
					alertas[i] = alerta
				} else {
					alertaIdx[produto.ID] = len(alertas)
					alertas = append(alertas, alerta)
				}
			}
		}

		total = total.Sub(req.Desconto)
		if total.IsNegative() {
			return apierror.Invalid("desconto maior que o total da venda")
		}
		if valorPago.LessThan(total) {
			return apierror.Invalid("valor pago insuficiente")
		}

		pagamentos := make([]model.VendaPagamento, 0, len(req.FormasPagamento))
		for _, p := range req.FormasPagamento {
			pagamentos = append(pagamentos, model.VendaPagamento{Forma: p.Forma, Valor: p.Valor})
		}

		venda = &model.Venda{
			Total:           total,
			ValorPago:       valorPago,
			Troco:           valorPago.Sub(total),
			QuantidadeItens: quantidadeTotal,
			Desconto:        req.Desconto,
			Itens:           itens,
			Pagamentos:      pagamentos,
		}
		if err := s.vendas.Create(ctx, tx, venda); err != nil {
			return err
		}

		return s.bumpCaixa(tx, venda)
	})
	if txErr != nil {
		return nil, txErr
	}

	s.notif.VendaFinalizada(ctx, worker.VendaFinalizadaEvent{
		VendaID:         venda.ID.String(),
		Total:           venda.Total,
		QuantidadeItens: venda.QuantidadeItens,
		Formas:          formas,
	})
	for _, a := range alertas {
		s.notif.EstoqueBaixo(ctx, worker.EstoqueBaixoEvent{
			ProdutoID:     a.produtoID.String(),
			Nome:          a.nome,
			Estoque:       a.estoque,
			EstoqueMinimo: a.estoqueMinimo,
		})
	}

	return &dto.FinalizarVendaResponse{Success: true, VendaID: venda.ID.String()}, nil
}

// bumpCaixa folds the sale into the open register: total goes into
// TotalVendas and a "venda" entry lands in the ledger. No open register is
// not an error — the sale still completes.
func (s *vendaService) bumpCaixa(tx *gorm.DB, venda *model.Venda) error {
	caixa, err := s.caixas.FindAbertoTx(tx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	if err := s.caixas.IncrementTotalVendasTx(tx, caixa.ID, venda.Total); err != nil {
		return err
	}

	caixaID := caixa.ID
	obs := fmt.Sprintf("venda %s", venda.ID)
	mov := &model.MovimentacaoCaixa{
		CaixaID:    &caixaID,
		Tipo:       "venda",
		Valor:      venda.Total,
		Observacao: &obs,
	}
	return s.caixas.CreateMovimentacaoTx(tx, mov)
}

func (s *vendaService) Listar(ctx context.Context, filter dto.VendaFilter) (*dto.VendaListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}

	vendas, total, err := s.vendas.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	data := make([]dto.VendaResponse, 0, len(vendas))
	for i := range vendas {
		data = append(data, *vendaToResponse(&vendas[i]))
	}
	return &dto.VendaListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *vendaService) ObterPorID(ctx context.Context, id uuid.UUID) (*dto.VendaResponse, error) {
	venda, err := s.vendas.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("venda não encontrada")
		}
		return nil, err
	}
	return vendaToResponse(venda), nil
}

// Resumo aggregates today's sales for the PDV header widget.
func (s *vendaService) Resumo(ctx context.Context) (*dto.ResumoVendasResponse, error) {
	now := time.Now()
	inicioHoje := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	vendas, err := s.vendas.ListSince(ctx, inicioHoje)
	if err != nil {
		return nil, err
	}

	receita := decimal.Zero
	for i := range vendas {
		receita = receita.Add(vendas[i].Total)
	}

	ticket := decimal.Zero
	if len(vendas) > 0 {
		ticket = receita.Div(decimal.NewFromInt(int64(len(vendas)))).Round(2)
	}

	return &dto.ResumoVendasResponse{
		VendasHoje:  len(vendas),
		ReceitaHoje: receita,
		TicketMedio: ticket,
	}, nil
}

func (s *vendaService) GerarCupom(ctx context.Context, id uuid.UUID) (string, error) {
	venda, err := s.vendas.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apierror.NotFound("venda não encontrada")
		}
		return "", err
	}
	return infra.GenerateCupomPDF(venda, s.cupomDir)
}

func vendaToResponse(v *model.Venda) *dto.VendaResponse {
	itens := make([]dto.ItemVendaResponse, 0, len(v.Itens))
	for _, it := range v.Itens {
		itens = append(itens, dto.ItemVendaResponse{
			ProdutoID:     it.ProdutoID.String(),
			Nome:          it.Nome,
			CodigoBarras:  it.CodigoBarras,
			Quantidade:    it.Quantidade,
			PrecoUnitario: it.PrecoUnitario,
			Subtotal:      it.Subtotal,
		})
	}
	pagamentos := make([]dto.PagamentoRequest, 0, len(v.Pagamentos))
	for _, p := range v.Pagamentos {
		pagamentos = append(pagamentos, dto.PagamentoRequest{Forma: p.Forma, Valor: p.Valor})
	}
	return &dto.VendaResponse{
		ID:              v.ID.String(),
		Total:           v.Total,
		ValorPago:       v.ValorPago,
		Troco:           v.Troco,
		Desconto:        v.Desconto,
		QuantidadeItens: v.QuantidadeItens,
		Itens:           itens,
		FormasPagamento: pagamentos,
		CreatedAt:       v.CreatedAt.Format(time.RFC3339),
	}
}
