// Package validation concentra as regras de validação de entrada do cadastro:
// CPF, data de nascimento e os payloads de pessoa.
package validation

import "strings"

const cpfLength = 11

// NormalizeCPF remove todos os caracteres que não são dígitos ("111.444.777-35" -> "11144477735").
func NormalizeCPF(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsValidCPF valida os dígitos verificadores (módulo 11) de um CPF, com ou sem pontuação.
// Retorna false para vazio, tamanho diferente de 11 ou sequências repetidas ("00000000000").
func IsValidCPF(candidate string) bool {
	cpf := NormalizeCPF(candidate)
	if len(cpf) != cpfLength {
		return false
	}
	if strings.Count(cpf, cpf[:1]) == cpfLength {
		return false
	}

	digits := make([]int, cpfLength)
	for i := 0; i < cpfLength; i++ {
		digits[i] = int(cpf[i] - '0')
	}

	return checkDigit(digits[:9]) == digits[9] && checkDigit(digits[:10]) == digits[10]
}

// checkDigit calcula o dígito verificador com pesos decrescentes de len+1 até 2.
func checkDigit(digits []int) int {
	weight := len(digits) + 1
	sum := 0
	for _, d := range digits {
		sum += d * weight
		weight--
	}
	rest := (sum * 10) % 11
	if rest == 10 {
		return 0
	}
	return rest
}
