package domain

// SchemaPolicy descreve as diferenças entre as versões do recurso pessoas.
// As duas versões compartilham a mesma tabela e o mesmo serviço.
type SchemaPolicy struct {
	Version         int
	AddressRequired bool     // v2: endereco obrigatório na criação
	SearchFields    []string // colunas consultadas por ?search=
	AddressLookup   bool     // v2: GET /endereco/{endereco}
}

var (
	PolicyV1 = SchemaPolicy{
		Version:         1,
		AddressRequired: false,
		SearchFields:    []string{"nome", "email", "cpf", "naturalidade", "nacionalidade"},
		AddressLookup:   false,
	}

	PolicyV2 = SchemaPolicy{
		Version:         2,
		AddressRequired: true,
		SearchFields:    []string{"nome", "email", "cpf", "naturalidade", "nacionalidade", "endereco"},
		AddressLookup:   true,
	}
)
