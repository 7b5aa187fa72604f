package validation

import (
	"regexp"
	"time"
)

// DateLayout é o formato aceito para datas de nascimento (ISO YYYY-MM-DD).
const DateLayout = "2006-01-02"

const maxAgeYears = 150

var (
	birthDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

	// now é substituível nos testes.
	now = time.Now
)

// IsValidBirthDate verifica se o valor é uma data real, não futura e com no máximo 150 anos.
// Aceita string (somente YYYY-MM-DD), *string, time.Time e *time.Time.
func IsValidBirthDate(value any) bool {
	return IsValidBirthDateAt(value, now())
}

// IsValidBirthDateAt aplica a mesma regra de IsValidBirthDate usando ref como "agora".
func IsValidBirthDateAt(value any, ref time.Time) bool {
	date, ok := toDate(value)
	if !ok {
		return false
	}
	if date.After(ref) {
		return false
	}
	if date.Before(ref.AddDate(-maxAgeYears, 0, 0)) {
		return false
	}
	return true
}

func toDate(value any) (time.Time, bool) {
	switch v := value.(type) {
	case string:
		return parseDate(v)
	case *string:
		if v == nil {
			return time.Time{}, false
		}
		return parseDate(*v)
	case time.Time:
		return v, !v.IsZero()
	case *time.Time:
		if v == nil {
			return time.Time{}, false
		}
		return *v, !v.IsZero()
	default:
		return time.Time{}, false
	}
}

func parseDate(s string) (time.Time, bool) {
	if !birthDatePattern.MatchString(s) {
		return time.Time{}, false
	}
	// time.Parse rejeita datas inexistentes como 2023-02-30.
	date, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return date, true
}
