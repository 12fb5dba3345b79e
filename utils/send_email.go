package utils

import (
	"fmt"
	"net/smtp"
	"os"
)

func SendEmail(to, subject, body string) error {
	from := os.Getenv("SMTP_EMAIL")
	pass := os.Getenv("SMTP_PASSWORD")

	// Headers: suporte a UTF-8 e HTML
	msg := ""
	msg += "MIME-Version: 1.0\r\n"
	msg += "Content-Type: text/html; charset=\"UTF-8\"\r\n"
	msg += fmt.Sprintf("From: %s\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", to)
	msg += fmt.Sprintf("Subject: %s\r\n", subject)
	msg += "\r\n" + body

	err := smtp.SendMail(
		"smtp.gmail.com:587",
		smtp.PlainAuth("", from, pass, "smtp.gmail.com"),
		from,
		[]string{to},
		[]byte(msg),
	)

	if err != nil {
		return fmt.Errorf("falha ao enviar e-mail: %v", err)
	}
	return nil
}

// SendPasswordResetEmail envia o link de redefinição de senha.
func SendPasswordResetEmail(to, token string) error {
	baseURL := os.Getenv("APP_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:5173"
	}
	link := fmt.Sprintf("%s/redefinir-senha?token=%s", baseURL, token)

	subject := "FocusUp - Redefinição de senha"
	body := `
	<h3>Olá,</h3>
	<p>Recebemos um pedido para redefinir a senha da sua conta <b>FocusUp</b>.</p>
	<p><a href="` + link + `">Clique aqui para criar uma nova senha</a></p>
	<p>O link expira em 1 hora. Se você não pediu a redefinição, ignore este e-mail.</p>
	<hr>
	<p><i>Este é um e-mail automático, não responda.</i></p>
	`
	return SendEmail(to, subject, body)
}
