package dto

type LoginRequest struct {
	Email   string `json:"email"   validate:"required,email"`
	Senha   string `json:"senha"   validate:"required,min=6"`
	Lembrar bool   `json:"lembrar"`
}

type LoginResponse struct {
	Token    string          `json:"token"`
	ExpiraEm string          `json:"expira_em"`
	Usuario  UsuarioResponse `json:"usuario"`
}

type UsuarioResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Nome  string `json:"nome"`
	Ativo bool   `json:"ativo"`
}
