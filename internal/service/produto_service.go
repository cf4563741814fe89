package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"bomboniere/internal/apierror"
	"bomboniere/internal/dto"
	"bomboniere/internal/model"
	"bomboniere/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Barcode lookups are the hottest read in the PDV; a short redis cache keeps
// scan latency flat during rush hours.
const (
	barcodeCachePrefix = "preco:"
	barcodeCacheTTL    = 60 * time.Second
)

type ProdutoService interface {
	Criar(ctx context.Context, req dto.CriarProdutoRequest) (*dto.ProdutoResponse, error)
	Listar(ctx context.Context, filter dto.ProdutoFilter) ([]dto.ProdutoResponse, error)
	ObterPorID(ctx context.Context, id uuid.UUID) (*dto.ProdutoResponse, error)
	ObterPorBarcode(ctx context.Context, codigoBarras string) (*dto.ProdutoResponse, error)
	Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarProdutoRequest) (*dto.ProdutoResponse, error)
	Remover(ctx context.Context, id uuid.UUID) error
	Reativar(ctx context.Context, id uuid.UUID) (*dto.ProdutoResponse, error)
}

type produtoService struct {
	repo repository.ProdutoRepository
	rdb  *redis.Client // nil disables the barcode cache
}

func NewProdutoService(repo repository.ProdutoRepository, rdb *redis.Client) ProdutoService {
	return &produtoService{repo: repo, rdb: rdb}
}

func (s *produtoService) Criar(ctx context.Context, req dto.CriarProdutoRequest) (*dto.ProdutoResponse, error) {
	exists, err := s.repo.ExistsBarcode(ctx, req.CodigoBarras, nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apierror.Conflict("código de barras já cadastrado")
	}

	p := &model.Produto{
		CodigoBarras:  req.CodigoBarras,
		Nome:          req.Nome,
		Descricao:     req.Descricao,
		PrecoVenda:    req.PrecoVenda,
		PrecoCusto:    req.PrecoCusto,
		DescontoPct:   req.DescontoPct,
		Estoque:       req.Estoque,
		EstoqueMinimo: req.EstoqueMinimo,
		Ativo:         true,
	}
	if p.CategoriaID, err = parseOptionalUUID(req.CategoriaID); err != nil {
		return nil, apierror.Invalid("categoria_id inválido")
	}
	if p.FornecedorID, err = parseOptionalUUID(req.FornecedorID); err != nil {
		return nil, apierror.Invalid("fornecedor_id inválido")
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return produtoToResponse(p), nil
}

func (s *produtoService) Listar(ctx context.Context, filter dto.ProdutoFilter) ([]dto.ProdutoResponse, error) {
	produtos, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ProdutoResponse, 0, len(produtos))
	for i := range produtos {
		resp = append(resp, *produtoToResponse(&produtos[i]))
	}
	return resp, nil
}

func (s *produtoService) ObterPorID(ctx context.Context, id uuid.UUID) (*dto.ProdutoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("produto não encontrado")
		}
		return nil, err
	}
	return produtoToResponse(p), nil
}

// ObterPorBarcode serves the PDV price lookup, cache-aside over redis.
func (s *produtoService) ObterPorBarcode(ctx context.Context, codigoBarras string) (*dto.ProdutoResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, barcodeCachePrefix+codigoBarras).Result(); err == nil {
			var resp dto.ProdutoResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return &resp, nil
			}
		}
	}

	p, err := s.repo.FindByBarcode(ctx, codigoBarras)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("produto não encontrado")
		}
		return nil, err
	}
	if !p.Ativo {
		return nil, apierror.NotFound("produto não encontrado")
	}

	resp := produtoToResponse(p)
	if s.rdb != nil {
		if data, err := json.Marshal(resp); err == nil {
			if err := s.rdb.Set(ctx, barcodeCachePrefix+codigoBarras, data, barcodeCacheTTL).Err(); err != nil {
				log.Warn().Err(err).Str("codigo", codigoBarras).Msg("barcode cache set failed")
			}
		}
	}
	return resp, nil
}

func (s *produtoService) Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarProdutoRequest) (*dto.ProdutoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("produto não encontrado")
		}
		return nil, err
	}

	codigoAntigo := p.CodigoBarras
	if req.CodigoBarras != nil && *req.CodigoBarras != p.CodigoBarras {
		exists, err := s.repo.ExistsBarcode(ctx, *req.CodigoBarras, &id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, apierror.Conflict("código de barras já cadastrado")
		}
		p.CodigoBarras = *req.CodigoBarras
	}
	if req.Nome != nil {
		p.Nome = *req.Nome
	}
	if req.Descricao != nil {
		p.Descricao = req.Descricao
	}
	if req.PrecoVenda != nil {
		p.PrecoVenda = *req.PrecoVenda
	}
	if req.PrecoCusto != nil {
		p.PrecoCusto = *req.PrecoCusto
	}
	if req.DescontoPct != nil {
		p.DescontoPct = *req.DescontoPct
	}
	if req.Estoque != nil {
		p.Estoque = *req.Estoque
	}
	if req.EstoqueMinimo != nil {
		p.EstoqueMinimo = *req.EstoqueMinimo
	}
	if req.CategoriaID != nil {
		if p.CategoriaID, err = parseOptionalUUID(req.CategoriaID); err != nil {
			return nil, apierror.Invalid("categoria_id inválido")
		}
	}
	if req.FornecedorID != nil {
		if p.FornecedorID, err = parseOptionalUUID(req.FornecedorID); err != nil {
			return nil, apierror.Invalid("fornecedor_id inválido")
		}
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	s.invalidateBarcodeCache(ctx, codigoAntigo, p.CodigoBarras)
	return produtoToResponse(p), nil
}

func (s *produtoService) Remover(ctx context.Context, id uuid.UUID) error {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NotFound("produto não encontrado")
		}
		return err
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.invalidateBarcodeCache(ctx, p.CodigoBarras, "")
	return nil
}

func (s *produtoService) Reativar(ctx context.Context, id uuid.UUID) (*dto.ProdutoResponse, error) {
	if err := s.repo.Reactivate(ctx, id); err != nil {
		return nil, err
	}
	return s.ObterPorID(ctx, id)
}

func (s *produtoService) invalidateBarcodeCache(ctx context.Context, codigos ...string) {
	if s.rdb == nil {
		return
	}
	for _, c := range codigos {
		if c == "" {
			continue
		}
		if err := s.rdb.Del(ctx, barcodeCachePrefix+c).Err(); err != nil {
			log.Warn().Err(err).Str("codigo", c).Msg("barcode cache invalidation failed")
		}
	}
}

func parseOptionalUUID(raw *string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func produtoToResponse(p *model.Produto) *dto.ProdutoResponse {
	var categoriaID, fornecedorID *string
	if p.CategoriaID != nil {
		s := p.CategoriaID.String()
		categoriaID = &s
	}
	if p.FornecedorID != nil {
		s := p.FornecedorID.String()
		fornecedorID = &s
	}
	return &dto.ProdutoResponse{
		ID:            p.ID.String(),
		CodigoBarras:  p.CodigoBarras,
		Nome:          p.Nome,
		Descricao:     p.Descricao,
		PrecoVenda:    p.PrecoVenda,
		PrecoCusto:    p.PrecoCusto,
		DescontoPct:   p.DescontoPct,
		Estoque:       p.Estoque,
		EstoqueMinimo: p.EstoqueMinimo,
		EstoqueBaixo:  p.EstoqueBaixo(),
		CategoriaID:   categoriaID,
		FornecedorID:  fornecedorID,
		Ativo:         p.Ativo,
	}
}
