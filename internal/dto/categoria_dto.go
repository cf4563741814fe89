package dto

type CriarCategoriaRequest struct {
	Nome      string  `json:"nome"      validate:"required,min=2"`
	Descricao *string `json:"descricao"`
}

type CategoriaResponse struct {
	ID        string  `json:"id"`
	Nome      string  `json:"nome"`
	Descricao *string `json:"descricao"`
	Ativo     bool    `json:"ativo"`
}
