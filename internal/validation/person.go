package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"cadastro/internal/domain"
	apperror "cadastro/internal/errors"
)

const invalidPayloadMsg = "Dados inválidos."

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// instance devolve o validator compartilhado com as regras cpf e birthdate registradas.
func instance() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		// Os nomes nas mensagens seguem as chaves JSON do payload.
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})

		// notblank: só espaços em branco conta como vazio.
		_ = v.RegisterValidation("notblank", validators.NotBlank)
		_ = v.RegisterValidation("cpf", func(fl validator.FieldLevel) bool {
			return IsValidCPF(fl.Field().String())
		})
		_ = v.RegisterValidation("birthdate", func(fl validator.FieldLevel) bool {
			return IsValidBirthDate(fl.Field().String())
		})

		validate = v
	})
	return validate
}

// ValidateCreatePerson valida o payload de criação segundo a política da versão.
// Retorna um ValidationError com a lista de campos inválidos.
func ValidateCreatePerson(input domain.CreatePersonInput, policy domain.SchemaPolicy) error {
	details, err := structDetails(input)
	if err != nil {
		return err
	}

	if policy.AddressRequired && (input.Endereco == nil || strings.TrimSpace(*input.Endereco) == "") {
		details = append(details, fmt.Sprintf("endereco: campo obrigatório na v%d", policy.Version))
	}

	if len(details) > 0 {
		return apperror.NewValidationErrorWithDetails(invalidPayloadMsg, details)
	}
	return nil
}

// ValidateUpdatePerson valida o payload de atualização parcial; só os campos enviados são verificados.
func ValidateUpdatePerson(input domain.UpdatePersonInput, policy domain.SchemaPolicy) error {
	details, err := structDetails(input)
	if err != nil {
		return err
	}

	if policy.AddressRequired && input.Endereco != nil && strings.TrimSpace(*input.Endereco) == "" {
		details = append(details, "endereco: não pode ser vazio")
	}

	if len(details) > 0 {
		return apperror.NewValidationErrorWithDetails(invalidPayloadMsg, details)
	}
	return nil
}

func structDetails(input any) ([]string, error) {
	err := instance().Struct(input)
	if err == nil {
		return nil, nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return nil, apperror.NewInternalError("Falha ao validar payload.", err)
	}

	details := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		details = append(details, fmt.Sprintf("%s: %s", fe.Field(), messageFor(fe)))
	}
	return details, nil
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "campo obrigatório"
	case "max":
		return fmt.Sprintf("deve ter no máximo %s caracteres", fe.Param())
	case "notblank":
		return "não pode ser vazio"
	case "email":
		return "email inválido"
	case "oneof":
		return fmt.Sprintf("deve ser um dos valores: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "cpf":
		return "CPF inválido"
	case "birthdate":
		return "Data de nascimento inválida"
	default:
		return fmt.Sprintf("falhou na regra %s", fe.Tag())
	}
}
