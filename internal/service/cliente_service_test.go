package service

import (
	"context"
	"testing"

	"bomboniere/internal/apierror"
	"bomboniere/internal/dto"
	"bomboniere/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── In-memory ClienteRepository ──────────────────────────────────────────────

type memClienteRepo struct {
	clientes map[uuid.UUID]*model.Cliente
}

func newMemClienteRepo() *memClienteRepo {
	return &memClienteRepo{clientes: make(map[uuid.UUID]*model.Cliente)}
}

func (r *memClienteRepo) Create(_ context.Context, c *model.Cliente) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.clientes[c.ID] = c
	return nil
}

func (r *memClienteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Cliente, error) {
	c, ok := r.clientes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *memClienteRepo) List(_ context.Context, filter dto.PessoaFilter) ([]model.Cliente, error) {
	var out []model.Cliente
	for _, c := range r.clientes {
		if !filter.IncluirInativos && !c.Ativo {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

func (r *memClienteRepo) Update(_ context.Context, c *model.Cliente) error {
	r.clientes[c.ID] = c
	return nil
}

func (r *memClienteRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if c, ok := r.clientes[id]; ok {
		c.Ativo = false
	}
	return nil
}

func (r *memClienteRepo) Reactivate(_ context.Context, id uuid.UUID) error {
	if c, ok := r.clientes[id]; ok {
		c.Ativo = true
	}
	return nil
}

func (r *memClienteRepo) ExistsDocumento(_ context.Context, documento string, excludeID *uuid.UUID) (bool, error) {
	for _, c := range r.clientes {
		if c.Documento != nil && *c.Documento == documento && (excludeID == nil || c.ID != *excludeID) {
			return true, nil
		}
	}
	return false, nil
}

// ── Tests ────────────────────────────────────────────────────────────────────

func strPtr(s string) *string { return &s }

func TestCriarClienteDocumentoDuplicado(t *testing.T) {
	svc := NewClienteService(newMemClienteRepo())

	_, err := svc.Criar(context.Background(), dto.CriarPessoaRequest{
		Nome:      "Ana",
		Documento: strPtr("123.456.789-00"),
	})
	require.NoError(t, err)

	_, err = svc.Criar(context.Background(), dto.CriarPessoaRequest{
		Nome:      "Beatriz",
		Documento: strPtr("123.456.789-00"),
	})
	require.Error(t, err)
	assert.Equal(t, apierror.KindConflict, apierror.KindOf(err))
}

func TestAtualizarClienteMantendoProprioDocumento(t *testing.T) {
	svc := NewClienteService(newMemClienteRepo())

	criado, err := svc.Criar(context.Background(), dto.CriarPessoaRequest{
		Nome:      "Ana",
		Documento: strPtr("123.456.789-00"),
	})
	require.NoError(t, err)

	id := uuid.MustParse(criado.ID)
	atualizado, err := svc.Atualizar(context.Background(), id, dto.AtualizarPessoaRequest{
		Nome:      strPtr("Ana Souza"),
		Documento: strPtr("123.456.789-00"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana Souza", atualizado.Nome)
}

func TestAtualizarClienteDocumentoDeOutro(t *testing.T) {
	svc := NewClienteService(newMemClienteRepo())

	_, err := svc.Criar(context.Background(), dto.CriarPessoaRequest{
		Nome:      "Ana",
		Documento: strPtr("111.111.111-11"),
	})
	require.NoError(t, err)

	outro, err := svc.Criar(context.Background(), dto.CriarPessoaRequest{
		Nome:      "Bruno",
		Documento: strPtr("222.222.222-22"),
	})
	require.NoError(t, err)

	_, err = svc.Atualizar(context.Background(), uuid.MustParse(outro.ID), dto.AtualizarPessoaRequest{
		Documento: strPtr("111.111.111-11"),
	})
	require.Error(t, err)
	assert.Equal(t, apierror.KindConflict, apierror.KindOf(err))
}

func TestRemoverClienteSoftDelete(t *testing.T) {
	repo := newMemClienteRepo()
	svc := NewClienteService(repo)

	criado, err := svc.Criar(context.Background(), dto.CriarPessoaRequest{Nome: "Ana"})
	require.NoError(t, err)
	id := uuid.MustParse(criado.ID)

	require.NoError(t, svc.Remover(context.Background(), id))

	// Still retrievable by id, but excluded from the default listing
	obtido, err := svc.ObterPorID(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, obtido.Ativo)

	lista, err := svc.Listar(context.Background(), dto.PessoaFilter{})
	require.NoError(t, err)
	assert.Empty(t, lista)

	lista, err = svc.Listar(context.Background(), dto.PessoaFilter{IncluirInativos: true})
	require.NoError(t, err)
	assert.Len(t, lista, 1)
}

func TestReativarCliente(t *testing.T) {
	svc := NewClienteService(newMemClienteRepo())

	criado, err := svc.Criar(context.Background(), dto.CriarPessoaRequest{Nome: "Ana"})
	require.NoError(t, err)
	id := uuid.MustParse(criado.ID)

	require.NoError(t, svc.Remover(context.Background(), id))

	reativado, err := svc.Reativar(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, reativado.Ativo)
}
