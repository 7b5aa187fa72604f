package domain

import (
	"time"
)

// Sexo enumera os valores aceitos para o campo sexo da pessoa.
type Sexo string

const (
	SexoMasculino Sexo = "masculino"
	SexoFeminino  Sexo = "feminino"
	SexoOutro     Sexo = "outro"
)

// Person representa o registro de pessoa (tabela pessoas).
// Compartilhada pelas versões v1 e v2 da API.
// @Description Registro de pessoa cadastrada.
type Person struct {
	ID              int64     `json:"id" example:"1"`
	Nome            string    `json:"nome" example:"João Silva Santos"`
	Sexo            *Sexo     `json:"sexo,omitempty" example:"masculino"`
	Email           *string   `json:"email,omitempty" example:"joao@email.com"`
	DataNascimento  string    `json:"dataDeNascimento" example:"1990-01-15"`
	Naturalidade    *string   `json:"naturalidade,omitempty" example:"São Paulo, SP"`
	Nacionalidade   *string   `json:"nacionalidade,omitempty" example:"Brasileira"`
	CPF             string    `json:"cpf" example:"11144477735"` // Somente dígitos
	Endereco        *string   `json:"endereco,omitempty" example:"Rua das Flores, 123"`
	DataCriacao     time.Time `json:"dataCriacao"`
	DataAtualizacao time.Time `json:"dataAtualizacao"`
}

// CreatePersonInput é o payload de criação (POST /api/v{1,2}/pessoas).
// As regras de cada campo ficam nas tags validate; a obrigatoriedade do
// endereço depende da versão e é verificada pela política de schema.
type CreatePersonInput struct {
	Nome           string  `json:"nome" validate:"required,notblank,max=200"`
	Sexo           *string `json:"sexo,omitempty" validate:"omitnil,oneof=masculino feminino outro"`
	Email          *string `json:"email,omitempty" validate:"omitnil,email,max=100"`
	DataNascimento string  `json:"dataDeNascimento" validate:"required,birthdate"`
	Naturalidade   *string `json:"naturalidade,omitempty" validate:"omitnil,max=100"`
	Nacionalidade  *string `json:"nacionalidade,omitempty" validate:"omitnil,max=100"`
	CPF            string  `json:"cpf" validate:"required,cpf"`
	Endereco       *string `json:"endereco,omitempty" validate:"omitnil,max=300"`
}

// UpdatePersonInput é o payload de atualização parcial (PATCH).
// Campos nil não são alterados.
type UpdatePersonInput struct {
	Nome           *string `json:"nome,omitempty" validate:"omitnil,notblank,max=200"`
	Sexo           *string `json:"sexo,omitempty" validate:"omitnil,oneof=masculino feminino outro"`
	Email          *string `json:"email,omitempty" validate:"omitnil,email,max=100"`
	DataNascimento *string `json:"dataDeNascimento,omitempty" validate:"omitnil,birthdate"`
	Naturalidade   *string `json:"naturalidade,omitempty" validate:"omitnil,max=100"`
	Nacionalidade  *string `json:"nacionalidade,omitempty" validate:"omitnil,max=100"`
	CPF            *string `json:"cpf,omitempty" validate:"omitnil,cpf"`
	Endereco       *string `json:"endereco,omitempty" validate:"omitnil,max=300"`
}

// PersonFilter define os parâmetros de busca e paginação.
type PersonFilter struct {
	Page         int
	Limit        int
	Search       string
	SearchFields []string // Colunas consultadas pelo termo de busca (OR)
}

// PersonPage é a resposta paginada de listagem.
type PersonPage struct {
	Data       []Person `json:"data"`
	Total      int      `json:"total" example:"1"`
	Page       int      `json:"page" example:"1"`
	TotalPages int      `json:"totalPages" example:"1"`
}
