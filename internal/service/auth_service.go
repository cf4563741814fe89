package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"bomboniere/internal/apierror"
	"bomboniere/internal/dto"
	"bomboniere/internal/model"
	"bomboniere/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Session tokens are opaque 256-bit random strings stored server-side, so a
// logout (or the sweeper) revokes them immediately.
const tokenBytes = 32

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Logout(ctx context.Context, token string) error
	// Autenticar resolves a bearer token to its session, deleting it lazily
	// when expired. Used by the auth middleware.
	Autenticar(ctx context.Context, token string) (*model.Sessao, error)
	Me(ctx context.Context, token string) (*dto.UsuarioResponse, error)
	// Refresh extends the session by its own TTL class (regular or remember-me).
	Refresh(ctx context.Context, token string) (*dto.LoginResponse, error)
}

type authService struct {
	usuarios repository.UsuarioRepository
	sessoes  repository.SessaoRepository

	sessionTTL    time.Duration
	rememberMeTTL time.Duration
}

func NewAuthService(usuarios repository.UsuarioRepository, sessoes repository.SessaoRepository, sessionTTL, rememberMeTTL time.Duration) AuthService {
	return &authService{
		usuarios:      usuarios,
		sessoes:       sessoes,
		sessionTTL:    sessionTTL,
		rememberMeTTL: rememberMeTTL,
	}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	usuario, err := s.usuarios.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.Unauthorized("credenciais inválidas")
		}
		return nil, err
	}
	if !usuario.Ativo {
		return nil, apierror.Unauthorized("credenciais inválidas")
	}
	if bcrypt.CompareHashAndPassword([]byte(usuario.SenhaHash), []byte(req.Senha)) != nil {
		return nil, apierror.Unauthorized("credenciais inválidas")
	}

	token, err := generateToken()
	if err != nil {
		return nil, err
	}

	sessao := &model.Sessao{
		Token:     token,
		UsuarioID: usuario.ID,
		LembrarMe: req.Lembrar,
		ExpiraEm:  time.Now().Add(s.ttlFor(req.Lembrar)),
	}
	if err := s.sessoes.Create(ctx, sessao); err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token:    token,
		ExpiraEm: sessao.ExpiraEm.Format(time.RFC3339),
		Usuario:  usuarioToResponse(usuario),
	}, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	return s.sessoes.DeleteByToken(ctx, token)
}

func (s *authService) Autenticar(ctx context.Context, token string) (*model.Sessao, error) {
	sessao, err := s.sessoes.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.Unauthorized("sessão inválida")
		}
		return nil, err
	}
	if sessao.Expirada(time.Now()) {
		_ = s.sessoes.DeleteByToken(ctx, token)
		return nil, apierror.Unauthorized("sessão expirada")
	}
	return sessao, nil
}

func (s *authService) Me(ctx context.Context, token string) (*dto.UsuarioResponse, error) {
	sessao, err := s.Autenticar(ctx, token)
	if err != nil {
		return nil, err
	}
	resp := usuarioToResponse(sessao.Usuario)
	return &resp, nil
}

func (s *authService) Refresh(ctx context.Context, token string) (*dto.LoginResponse, error) {
	sessao, err := s.Autenticar(ctx, token)
	if err != nil {
		return nil, err
	}

	novaExpiracao := time.Now().Add(s.ttlFor(sessao.LembrarMe))
	if err := s.sessoes.UpdateExpiry(ctx, token, novaExpiracao); err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token:    token,
		ExpiraEm: novaExpiracao.Format(time.RFC3339),
		Usuario:  usuarioToResponse(sessao.Usuario),
	}, nil
}

func (s *authService) ttlFor(lembrar bool) time.Duration {
	if lembrar {
		return s.rememberMeTTL
	}
	return s.sessionTTL
}

func generateToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func usuarioToResponse(u *model.Usuario) dto.UsuarioResponse {
	if u == nil {
		return dto.UsuarioResponse{}
	}
	return dto.UsuarioResponse{
		ID:    u.ID.String(),
		Email: u.Email,
		Nome:  u.Nome,
		Ativo: u.Ativo,
	}
}
