package dto

// Shared request/response shapes for clientes and fornecedores — the two
// differ only in the kind of tax document (CPF vs CNPJ).

type CriarPessoaRequest struct {
	Nome      string  `json:"nome"      validate:"required,min=2"`
	Documento *string `json:"documento" validate:"omitempty,min=11,max=18"`
	Telefone  *string `json:"telefone"`
	Email     *string `json:"email"     validate:"omitempty,email"`
	Endereco  *string `json:"endereco"`
}

type AtualizarPessoaRequest struct {
	Nome      *string `json:"nome"      validate:"omitempty,min=2"`
	Documento *string `json:"documento" validate:"omitempty,min=11,max=18"`
	Telefone  *string `json:"telefone"`
	Email     *string `json:"email"     validate:"omitempty,email"`
	Endereco  *string `json:"endereco"`
}

type PessoaFilter struct {
	Busca           string `form:"busca"`
	IncluirInativos bool   `form:"incluir_inativos"`
}

type PessoaResponse struct {
	ID        string  `json:"id"`
	Nome      string  `json:"nome"`
	Documento *string `json:"documento"`
	Telefone  *string `json:"telefone"`
	Email     *string `json:"email"`
	Endereco  *string `json:"endereco"`
	Ativo     bool    `json:"ativo"`
}
