package service

import (
	"context"
	"errors"
	"time"

	"bomboniere/internal/apierror"
	"bomboniere/internal/dto"
	"bomboniere/internal/model"
	"bomboniere/internal/repository"
	"bomboniere/internal/worker"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CaixaService interface {
	Status(ctx context.Context) (*dto.StatusCaixaResponse, error)
	Abrir(ctx context.Context, req dto.AbrirCaixaRequest) (*dto.CaixaResponse, error)
	Atualizar(ctx context.Context, req dto.AtualizarCaixaRequest) (*dto.CaixaResponse, error)
	RegistrarMovimentacao(ctx context.Context, req dto.MovimentacaoRequest) (*dto.CaixaResponse, error)
	Fechar(ctx context.Context, req dto.FecharCaixaRequest) (*dto.FechamentoResponse, error)
	ListarFechamentos(ctx context.Context) ([]dto.FechamentoResponse, error)
	ObterFechamento(ctx context.Context, id uuid.UUID) (*dto.FechamentoResponse, error)
	LimparFechamentos(ctx context.Context) error
}

type caixaService struct {
	repo  repository.CaixaRepository
	notif worker.Notificador
}

func NewCaixaService(repo repository.CaixaRepository, notif worker.Notificador) CaixaService {
	return &caixaService{repo: repo, notif: notif}
}

// ── Status ───────────────────────────────────────────────────────────────────

func (s *caixaService) Status(ctx context.Context) (*dto.StatusCaixaResponse, error) {
	caixa, err := s.repo.FindAberto(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dto.StatusCaixaResponse{Aberto: false}, nil
		}
		return nil, err
	}
	return &dto.StatusCaixaResponse{Aberto: true, Caixa: caixaToResponse(caixa)}, nil
}

// ── Abrir ────────────────────────────────────────────────────────────────────
// The existence check keeps the error message friendly; the partial unique
// index uni_caixa_aberto is what actually guarantees the singleton under
// concurrent opens.

func (s *caixaService) Abrir(ctx context.Context, req dto.AbrirCaixaRequest) (*dto.CaixaResponse, error) {
	if _, err := s.repo.FindAberto(ctx); err == nil {
		return nil, apierror.Conflict("caixa já está aberto")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	abertura := parseDataHora(req.DataHoraAbertura, time.Now())
	caixa := &model.Caixa{
		Operador:      req.Operador,
		DataAbertura:  abertura,
		ValorAbertura: req.ValorAbertura,
		Ativo:         true,
	}
	if err := s.repo.Create(ctx, caixa); err != nil {
		return nil, err
	}
	return caixaToResponse(caixa), nil
}

// ── Atualizar ────────────────────────────────────────────────────────────────
// Legacy PUT /caixa/atualizar: the front-end sends its whole view of the
// session and the server overwrites totals and the ledger with it.

func (s *caixaService) Atualizar(ctx context.Context, req dto.AtualizarCaixaRequest) (*dto.CaixaResponse, error) {
	caixa, err := s.findAberto(ctx)
	if err != nil {
		return nil, err
	}

	caixa.TotalVendas = req.TotalVendas
	caixa.TotalReforcos = req.TotalReforcos
	caixa.TotalSangrias = req.TotalSangrias

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.UpdateTotaisTx(tx, caixa); err != nil {
			return err
		}
		if err := s.repo.DeleteMovimentacoesTx(tx, caixa.ID); err != nil {
			return err
		}
		for _, m := range req.Movimentacoes {
			caixaID := caixa.ID
			mov := &model.MovimentacaoCaixa{
				CaixaID:    &caixaID,
				Tipo:       m.Tipo,
				Valor:      m.Valor,
				Observacao: m.Observacao,
				CreatedAt:  parseDataHora(m.DataHora, time.Now()),
			}
			if err := s.repo.CreateMovimentacaoTx(tx, mov); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	atualizado, err := s.repo.FindAberto(ctx)
	if err != nil {
		return nil, err
	}
	return caixaToResponse(atualizado), nil
}

// ── RegistrarMovimentacao ────────────────────────────────────────────────────
// Reforço or sangria. A sangria may exceed the current balance — a negative
// float is recorded, not rejected.

func (s *caixaService) RegistrarMovimentacao(ctx context.Context, req dto.MovimentacaoRequest) (*dto.CaixaResponse, error) {
	caixa, err := s.findAberto(ctx)
	if err != nil {
		return nil, err
	}

	switch req.Tipo {
	case "reforco":
		caixa.TotalReforcos = caixa.TotalReforcos.Add(req.Valor)
	case "sangria":
		caixa.TotalSangrias = caixa.TotalSangrias.Add(req.Valor)
	default:
		return nil, apierror.Invalid("tipo de movimentação inválido")
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.UpdateTotaisTx(tx, caixa); err != nil {
			return err
		}
		caixaID := caixa.ID
		mov := &model.MovimentacaoCaixa{
			CaixaID:    &caixaID,
			Tipo:       req.Tipo,
			Valor:      req.Valor,
			Observacao: req.Observacao,
		}
		return s.repo.CreateMovimentacaoTx(tx, mov)
	})
	if txErr != nil {
		return nil, txErr
	}

	atualizado, err := s.repo.FindAberto(ctx)
	if err != nil {
		return nil, err
	}
	return caixaToResponse(atualizado), nil
}

// ── Fechar ───────────────────────────────────────────────────────────────────
// Expected balance and difference are computed server-side from the session —
// client-sent totals are ignored. Closure creation, ledger re-parenting and
// session deletion happen in one transaction.

func (s *caixaService) Fechar(ctx context.Context, req dto.FecharCaixaRequest) (*dto.FechamentoResponse, error) {
	caixa, err := s.findAberto(ctx)
	if err != nil {
		return nil, err
	}

	esperado := caixa.Saldo()
	diferenca := req.SaldoReal.Sub(esperado)
	fechamento := &model.FechamentoCaixa{
		Operador:       caixa.Operador,
		DataAbertura:   caixa.DataAbertura,
		DataFechamento: parseDataHora(req.DataHoraFechamento, time.Now()),
		ValorAbertura:  caixa.ValorAbertura,
		TotalVendas:    caixa.TotalVendas,
		TotalReforcos:  caixa.TotalReforcos,
		TotalSangrias:  caixa.TotalSangrias,
		SaldoEsperado:  esperado,
		SaldoContado:   req.SaldoReal,
		Diferenca:      diferenca,
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateFechamentoTx(tx, fechamento); err != nil {
			return err
		}
		if err := s.repo.ReparentMovimentacoesTx(tx, caixa.ID, fechamento.ID); err != nil {
			return err
		}
		return s.repo.DeleteCaixaTx(tx, caixa.ID)
	})
	if txErr != nil {
		return nil, txErr
	}

	s.notif.CaixaFechado(ctx, worker.CaixaFechadoEvent{
		Operador:      fechamento.Operador,
		SaldoEsperado: fechamento.SaldoEsperado,
		SaldoContado:  fechamento.SaldoContado,
		Diferenca:     fechamento.Diferenca,
	})

	completo, err := s.repo.FindFechamentoByID(ctx, fechamento.ID)
	if err != nil {
		// The closure committed; respond with what we have.
		completo = fechamento
	}
	return fechamentoToResponse(completo), nil
}

// ── Fechamentos ──────────────────────────────────────────────────────────────

func (s *caixaService) ListarFechamentos(ctx context.Context) ([]dto.FechamentoResponse, error) {
	fechamentos, err := s.repo.ListFechamentos(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.FechamentoResponse, 0, len(fechamentos))
	for i := range fechamentos {
		resp = append(resp, *fechamentoToResponse(&fechamentos[i]))
	}
	return resp, nil
}

func (s *caixaService) ObterFechamento(ctx context.Context, id uuid.UUID) (*dto.FechamentoResponse, error) {
	f, err := s.repo.FindFechamentoByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("fechamento não encontrado")
	}
	return fechamentoToResponse(f), nil
}

func (s *caixaService) LimparFechamentos(ctx context.Context) error {
	return s.repo.DeleteFechamentos(ctx)
}

// ── Helpers ──────────────────────────────────────────────────────────────────

func (s *caixaService) findAberto(ctx context.Context) (*model.Caixa, error) {
	caixa, err := s.repo.FindAberto(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.Conflict("nenhum caixa aberto")
		}
		return nil, err
	}
	return caixa, nil
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// parseDataHora accepts the RFC 3339 timestamps the front-end sends and falls
// back to the given default on anything else.
func parseDataHora(raw string, fallback time.Time) time.Time {
	if raw == "" {
		return fallback
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t
	}
	return fallback
}

func caixaToResponse(c *model.Caixa) *dto.CaixaResponse {
	movs := make([]dto.MovimentacaoRecorde, 0, len(c.Movimentacoes))
	for _, m := range c.Movimentacoes {
		movs = append(movs, dto.MovimentacaoRecorde{
			Tipo:       m.Tipo,
			Valor:      m.Valor,
			DataHora:   m.CreatedAt.Format(time.RFC3339),
			Observacao: m.Observacao,
		})
	}
	return &dto.CaixaResponse{
		ID:               c.ID.String(),
		Operador:         c.Operador,
		DataHoraAbertura: c.DataAbertura.Format(time.RFC3339),
		ValorAbertura:    c.ValorAbertura,
		TotalVendas:      c.TotalVendas,
		TotalReforcos:    c.TotalReforcos,
		TotalSangrias:    c.TotalSangrias,
		Saldo:            c.Saldo(),
		Movimentacoes:    movs,
	}
}

func fechamentoToResponse(f *model.FechamentoCaixa) *dto.FechamentoResponse {
	movs := make([]dto.MovimentacaoRecorde, 0, len(f.Movimentacoes))
	for _, m := range f.Movimentacoes {
		movs = append(movs, dto.MovimentacaoRecorde{
			Tipo:       m.Tipo,
			Valor:      m.Valor,
			DataHora:   m.CreatedAt.Format(time.RFC3339),
			Observacao: m.Observacao,
		})
	}
	return &dto.FechamentoResponse{
		ID:                 f.ID.String(),
		Operador:           f.Operador,
		DataHoraAbertura:   f.DataAbertura.Format(time.RFC3339),
		DataHoraFechamento: f.DataFechamento.Format(time.RFC3339),
		ValorAbertura:      f.ValorAbertura,
		TotalVendas:        f.TotalVendas,
		TotalReforcos:      f.TotalReforcos,
		TotalSangrias:      f.TotalSangrias,
		SaldoEsperado:      f.SaldoEsperado,
		SaldoReal:          f.SaldoContado,
		Diferenca:          f.Diferenca,
		Movimentacoes:      movs,
	}
}
