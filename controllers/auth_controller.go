package controllers

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"cloud.google.com/go/auth/credentials/idtoken"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/focusup-app/focusup-backend/models"
	"github.com/focusup-app/focusup-backend/ratelimit"
	"github.com/focusup-app/focusup-backend/services"
	"github.com/focusup-app/focusup-backend/utils"
	"github.com/focusup-app/focusup-backend/validation"
)

// Limiter compartilhado pelos handlers de autenticação; injetado pelo router.
var AuthLimiter *ratelimit.Limiter

// ====== INPUT STRUCTS ======
type RegisterInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ====== HANDLERS ======
func Register(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Preencha todos os campos"})
		return
	}

	// Limite de tentativas de cadastro por endereço
	if AuthLimiter != nil {
		if ok, remaining := AuthLimiter.Allow(c.ClientIP(), ratelimit.ActionSignup); !ok {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"message": fmt.Sprintf("Muitas tentativas de cadastro. Tente novamente em %d minutos.", remaining),
			})
			return
		}
	}

	if ok, msg := validation.ValidateName(input.Name); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": msg})
		return
	}
	if ok, msg := validation.ValidateEmail(input.Email); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": msg})
		return
	}
	if ok, msg := validation.ValidatePassword(input.Password); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": msg})
		return
	}

	// Verifica se o e-mail já existe
	var existing models.User
	if err := db.Where("email = ?", input.Email).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "E-mail já cadastrado"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Não foi possível processar a senha"})
		return
	}

	name := input.Name
	newUser := models.User{
		Email:    input.Email,
		Password: string(hashed),
		Name:     &name,
	}

	if err := db.Create(&newUser).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erro ao criar usuário"})
		return
	}

	// Boas-vindas
	services.CreateNotification(db, newUser.ID, models.NotifSystem,
		"Bem-vindo ao FocusUp!",
		"Cadastre suas matérias e registre suas atividades para acompanhar seus estudos.",
		nil, "fa-graduation-cap")

	token, err := utils.GenerateToken(newUser.ID.String())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Não foi possível gerar o token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Cadastro realizado com sucesso",
		"token":   token,
		"user": gin.H{
			"id":    newUser.ID,
			"email": newUser.Email,
			"name":  newUser.Name,
		},
	})
}

func Login(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Informe e-mail e senha"})
		return
	}

	// Limite de tentativas de login por endereço
	if AuthLimiter != nil {
		if ok, remaining := AuthLimiter.Allow(c.ClientIP(), ratelimit.ActionLogin); !ok {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"message": fmt.Sprintf("Muitas tentativas de login. Tente novamente em %d minutos.", remaining),
			})
			return
		}
	}

	var user models.User
	if err := db.Where("email = ?", input.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "E-mail ou senha incorretos"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "E-mail ou senha incorretos"})
		return
	}

	token, err := utils.GenerateToken(user.ID.String())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Não foi possível gerar o token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login realizado com sucesso",
		"token":   token,
		"user": gin.H{
			"id":         user.ID,
			"email":      user.Email,
			"name":       user.Name,
			"photo":      user.Photo,
			"dark_theme": user.DarkTheme,
		},
	})
}

type GoogleLoginInput struct {
	IDToken string `json:"id_token" binding:"required"`
}

func GoogleLogin(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var input GoogleLoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "id_token é obrigatório"})
		return
	}

	// Valida o token com o GOOGLE_CLIENT_ID correto
	payload, err := idtoken.Validate(c, input.IDToken, os.Getenv("GOOGLE_CLIENT_ID"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Token Google inválido"})
		return
	}

	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)

	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		// Primeiro acesso: cria a conta
		user = models.User{
			ID:    uuid.New(),
			Email: email,
			Name:  &name,
			// Senha vazia: conta criada pelo login Google
		}
		if err := db.Create(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Não foi possível criar a conta"})
			return
		}
		services.CreateNotification(db, user.ID, models.NotifSystem,
			"Bem-vindo ao FocusUp!",
			"Cadastre suas matérias e registre suas atividades para acompanhar seus estudos.",
			nil, "fa-graduation-cap")
	}

	token, err := utils.GenerateToken(user.ID.String())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Não foi possível gerar o token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
			"name":  user.Name,
		},
	})
}

// ==== REDEFINIÇÃO DE SENHA ====
type ForgotPasswordInput struct {
	Email string `json:"email" binding:"required"`
}

func ForgotPassword(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var input ForgotPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Informe o e-mail"})
		return
	}

	// Resposta genérica nos dois casos para não revelar contas existentes
	genericResponse := func() {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Se o e-mail estiver cadastrado, você receberá o link de redefinição.",
		})
	}

	var user models.User
	if err := db.Where("email = ?", input.Email).First(&user).Error; err != nil {
		genericResponse()
		return
	}

	token := uuid.NewString()
	expiry := time.Now().Add(1 * time.Hour)
	user.ResetToken = &token
	user.ResetTokenExpiry = &expiry
	if err := db.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erro ao gerar o link. Tente novamente."})
		return
	}

	// Envio do e-mail sem bloquear a resposta
	go func(email, token string) {
		if err := utils.SendPasswordResetEmail(email, token); err != nil {
			log.Printf("Erro ao enviar e-mail de redefinição para %s: %v", email, err)
		}
	}(user.Email, token)

	genericResponse()
}

type ResetPasswordInput struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

func ResetPassword(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var input ResetPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Token e nova senha são obrigatórios"})
		return
	}

	if ok, msg := validation.ValidatePassword(input.NewPassword); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": msg})
		return
	}

	var user models.User
	if err := db.Where("reset_token = ?", input.Token).First(&user).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Link inválido ou já utilizado"})
		return
	}
	if user.ResetTokenExpiry == nil || time.Now().After(*user.ResetTokenExpiry) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "O link de redefinição expirou. Peça um novo."})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Não foi possível processar a senha"})
		return
	}

	user.Password = string(hashed)
	user.ResetToken = nil
	user.ResetTokenExpiry = nil
	if err := db.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erro ao salvar a nova senha"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Senha redefinida com sucesso"})
}

// Troca de senha com a conta logada
type ChangePasswordInput struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

func ChangePassword(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)
	userID := c.GetString("user_id")

	var input ChangePasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Informe a senha atual e a nova senha"})
		return
	}

	if ok, msg := validation.ValidatePassword(input.NewPassword); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": msg})
		return
	}

	var user models.User
	if err := db.Where("id = ?", userID).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Usuário não encontrado"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.OldPassword)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Senha atual incorreta"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Não foi possível processar a nova senha"})
		return
	}

	user.Password = string(hashed)
	if err := db.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erro ao atualizar a senha"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Senha alterada com sucesso"})
}
