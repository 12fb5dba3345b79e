package validation

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	emailRe    = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	nameRe     = regexp.MustCompile(`^[A-Za-zÀ-ÖØ-öø-ÿ ]+$`)
	durationRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)
	letterRe   = regexp.MustCompile(`[A-Za-z]`)
	digitRe    = regexp.MustCompile(`[0-9]`)
)

// ValidateEmail verifica formato e tamanho do e-mail.
func ValidateEmail(s string) (bool, string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return false, "O e-mail é obrigatório"
	}
	if len(s) > 150 {
		return false, "O e-mail deve ter no máximo 150 caracteres"
	}
	if !emailRe.MatchString(s) {
		return false, "Formato de e-mail inválido"
	}
	return true, ""
}

// ValidatePassword aplica a política de senha: 6 a 100 caracteres,
// pelo menos uma letra e um dígito.
func ValidatePassword(s string) (bool, string) {
	if len(s) < 6 || len(s) > 100 {
		return false, "A senha deve ter entre 6 e 100 caracteres"
	}
	if !letterRe.MatchString(s) || !digitRe.MatchString(s) {
		return false, "A senha deve conter pelo menos uma letra e um número"
	}
	return true, ""
}

// ValidateName verifica o nome de exibição: 3 a 150 caracteres,
// apenas letras (com acentos) e espaços.
func ValidateName(s string) (bool, string) {
	s = strings.TrimSpace(s)
	if len([]rune(s)) < 3 || len([]rune(s)) > 150 {
		return false, "O nome deve ter entre 3 e 150 caracteres"
	}
	if !nameRe.MatchString(s) {
		return false, "O nome deve conter apenas letras e espaços"
	}
	return true, ""
}

// ValidateSubjectName verifica o nome da matéria: 2 a 100 caracteres.
func ValidateSubjectName(s string) (bool, string) {
	s = strings.TrimSpace(s)
	n := len([]rune(s))
	if n < 2 || n > 100 {
		return false, "O nome da matéria deve ter entre 2 e 100 caracteres"
	}
	return true, ""
}

// ValidateDuration aceita vazio (campo opcional) ou HH:MM com
// horas 00-23 e minutos 00-59.
func ValidateDuration(s string) (bool, string) {
	if s == "" {
		return true, ""
	}
	if !durationRe.MatchString(s) {
		return false, "A duração deve estar no formato HH:MM"
	}
	return true, ""
}

// ParseDurationToMinutes converte "HH:MM" em minutos.
// Entrada malformada ou vazia vale 0.
func ParseDurationToMinutes(s string) int {
	if !durationRe.MatchString(s) {
		return 0
	}
	parts := strings.SplitN(s, ":", 2)
	h, _ := strconv.Atoi(parts[0])
	m, _ := strconv.Atoi(parts[1])
	return h*60 + m
}
