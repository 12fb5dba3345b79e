package services

import (
	"context"
	"fmt"
	"os"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Função enxuta para processar um prompt e retornar o texto do Gemini
func GeminiGenerateText(prompt string) (string, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, option.WithAPIKey(os.Getenv("GEMINI_API_KEY")))
	if err != nil {
		return "", fmt.Errorf("não foi possível criar o cliente Gemini: %v", err)
	}
	defer client.Close()

	model := client.GenerativeModel("gemini-2.0-flash")
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("erro ao processar no Gemini: %v", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini não retornou resultado válido")
	}
	return fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]), nil
}

// StudySuggestions gera sugestões de estudo a partir das matérias do usuário.
func StudySuggestions(subjects []string) (string, error) {
	if len(subjects) == 0 {
		return "Cadastre suas matérias para receber sugestões de estudo personalizadas.", nil
	}
	prompt := "Você é um orientador de estudos. Para um estudante com as matérias a seguir, " +
		"sugira em português um plano curto de estudo (3 a 5 itens, direto ao ponto): "
	for i, s := range subjects {
		if i > 0 {
			prompt += ", "
		}
		prompt += s
	}
	return GeminiGenerateText(prompt)
}
