package validation

import (
	"strings"
	"testing"
)

func TestSanitizeTextKeepsAllowedTags(t *testing.T) {
	in := "<p>Revisar <b>capítulo 3</b> e <em>exercícios</em></p>"
	out := SanitizeText(in)
	for _, tag := range []string{"<p>", "<b>", "<em>"} {
		if !strings.Contains(out, tag) {
			t.Errorf("tag permitida %s foi removida: %q", tag, out)
		}
	}
}

func TestSanitizeTextStripsScripts(t *testing.T) {
	out := SanitizeText(`<p>ok</p><script>alert("x")</script>`)
	if strings.Contains(out, "script") || strings.Contains(out, "alert") {
		t.Errorf("script não foi removido: %q", out)
	}
}

func TestSanitizeTextStripsAttributes(t *testing.T) {
	out := SanitizeText(`<p onclick="evil()" style="color:red">texto</p>`)
	if strings.Contains(out, "onclick") || strings.Contains(out, "style") {
		t.Errorf("atributos não foram removidos: %q", out)
	}
	if !strings.Contains(out, "texto") {
		t.Errorf("conteúdo perdido: %q", out)
	}
}

func TestSanitizeTextEmpty(t *testing.T) {
	if got := SanitizeText(""); got != "" {
		t.Errorf("entrada vazia deveria voltar vazia, veio %q", got)
	}
}
