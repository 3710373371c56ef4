package password

import (
	"errors"
	"strings"
	"unicode"
)

const (
	// MinLength минимальная длина пароля в символах.
	MinLength = 8
	// MaxBytes предел bcrypt: более длинный пароль не захешировать.
	MaxBytes = 72
)

// ErrWeakPassword возвращается, если пароль не проходит проверку сложности.
var ErrWeakPassword = errors.New("weak password")

// WeakPasswordError перечисляет все нарушенные правила сложности пароля.
type WeakPasswordError struct {
	Problems []string
}

func (e *WeakPasswordError) Error() string {
	return strings.Join(e.Problems, ", ")
}

// Is позволяет сравнивать ошибку с ErrWeakPassword через errors.Is.
func (e *WeakPasswordError) Is(target error) bool {
	return target == ErrWeakPassword
}

// Validate проверяет сложность пароля: длина не меньше MinLength,
// длина не больше MaxBytes байт, хотя бы одна строчная буква, одна заглавная и одна цифра.
// Возвращает *WeakPasswordError со всеми нарушениями сразу.
func Validate(password string) error {
	var hasLower, hasUpper, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	var problems []string
	if len([]rune(password)) < MinLength {
		problems = append(problems, "password must be at least 8 characters long")
	}
	if len(password) > MaxBytes {
		problems = append(problems, "password must be at most 72 bytes")
	}
	if !hasLower {
		problems = append(problems, "password must contain a lowercase letter")
	}
	if !hasUpper {
		problems = append(problems, "password must contain an uppercase letter")
	}
	if !hasDigit {
		problems = append(problems, "password must contain a digit")
	}
	if len(problems) > 0 {
		return &WeakPasswordError{Problems: problems}
	}
	return nil
}
