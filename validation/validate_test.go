package validation

import "testing"

func TestValidateDuration(t *testing.T) {
	cases := []struct {
		in    string
		valid bool
	}{
		{"", true},
		{"02:30", true},
		{"00:00", true},
		{"23:59", true},
		{"24:00", false},
		{"12:60", false},
		{"9:30", false},
		{"abc", false},
		{"12-30", false},
		{"123:45", false},
	}
	for _, tc := range cases {
		ok, _ := ValidateDuration(tc.in)
		if ok != tc.valid {
			t.Errorf("ValidateDuration(%q) = %v, esperado %v", tc.in, ok, tc.valid)
		}
	}
}

func TestParseDurationToMinutes(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"10:15", 615},
		{"02:30", 150},
		{"00:00", 0},
		{"23:59", 1439},
		{"abc", 0},
		{"", 0},
		{"24:00", 0},
	}
	for _, tc := range cases {
		if got := ParseDurationToMinutes(tc.in); got != tc.want {
			t.Errorf("ParseDurationToMinutes(%q) = %d, esperado %d", tc.in, got, tc.want)
		}
	}
}

func TestValidateEmail(t *testing.T) {
	cases := []struct {
		in    string
		valid bool
	}{
		{"aluno@example.com", true},
		{"a.b+c_d%e@sub.dominio.org", true},
		{"", false},
		{"sem-arroba.com", false},
		{"a@b", false},
		{"a@b.c", false}, // TLD com 1 caractere
		{"a@b.co", true},
	}
	for _, tc := range cases {
		ok, msg := ValidateEmail(tc.in)
		if ok != tc.valid {
			t.Errorf("ValidateEmail(%q) = %v (%s), esperado %v", tc.in, ok, msg, tc.valid)
		}
		if !ok && msg == "" {
			t.Errorf("ValidateEmail(%q): rejeição sem mensagem", tc.in)
		}
	}
}

func TestValidateEmailTooLong(t *testing.T) {
	local := make([]byte, 150)
	for i := range local {
		local[i] = 'a'
	}
	if ok, _ := ValidateEmail(string(local) + "@example.com"); ok {
		t.Error("e-mail com mais de 150 caracteres deveria ser rejeitado")
	}
}

func TestValidatePassword(t *testing.T) {
	cases := []struct {
		in    string
		valid bool
	}{
		{"abc123", true},
		{"Senha2024", true},
		{"curta", false},     // menos de 6
		{"abcdef", false},    // sem dígito
		{"123456", false},    // sem letra
		{"a1b2c3d4", true},
	}
	for _, tc := range cases {
		ok, _ := ValidatePassword(tc.in)
		if ok != tc.valid {
			t.Errorf("ValidatePassword(%q) = %v, esperado %v", tc.in, ok, tc.valid)
		}
	}
}

func TestValidateName(t *testing.T) {
	cases := []struct {
		in    string
		valid bool
	}{
		{"Maria Clara", true},
		{"José", true},
		{"Jo", false},            // menos de 3
		{"Maria123", false},      // dígitos
		{"Maria-Clara", false},   // pontuação
	}
	for _, tc := range cases {
		ok, _ := ValidateName(tc.in)
		if ok != tc.valid {
			t.Errorf("ValidateName(%q) = %v, esperado %v", tc.in, ok, tc.valid)
		}
	}
}

func TestValidateSubjectName(t *testing.T) {
	if ok, _ := ValidateSubjectName("PT"); !ok {
		t.Error("nome de matéria com 2 caracteres deveria ser aceito")
	}
	if ok, _ := ValidateSubjectName("X"); ok {
		t.Error("nome de matéria com 1 caractere deveria ser rejeitado")
	}
}
