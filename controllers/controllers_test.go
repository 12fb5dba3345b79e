package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/focusup-app/focusup-backend/config"
	"github.com/focusup-app/focusup-backend/models"
)

func setupTestDB(t *testing.T, name string) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{}, &models.Subject{}, &models.Activity{}, &models.Goal{},
		&models.Notification{}, &models.Badge{}, &models.UserBadge{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := config.SeedBadges(db); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return db
}

// Router de teste: injeta o db e autentica como o usuário informado,
// sem passar pelo JWT.
func testRouter(db *gorm.DB, userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("db", db)
		c.Set("user_id", userID.String())
		c.Next()
	})

	r.POST("/api/materias", CreateSubject)
	r.GET("/api/materias", GetSubjects)
	r.POST("/api/atividades", CreateActivity)
	r.POST("/api/metas", CreateGoal)
	r.PATCH("/api/metas/:id/concluir", CompleteGoal)
	r.GET("/api/notificacoes/nao-lidas", GetUnreadCount)
	r.PATCH("/api/notificacoes/:id/lida", MarkNotificationAsRead)
	r.DELETE("/api/notificacoes/:id", DeleteNotification)
	return r
}

func seedUser(t *testing.T, db *gorm.DB, email string) models.User {
	u := models.User{ID: uuid.New(), Email: email, Password: "hash"}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func doJSON(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestMarkReadOnForeignNotificationIsNotFound(t *testing.T) {
	db := setupTestDB(t, t.Name())
	owner := seedUser(t, db, "dona@example.com")
	intruder := seedUser(t, db, "intruso@example.com")

	notif := models.Notification{
		UserID:  owner.ID,
		Type:    models.NotifSystem,
		Title:   "Particular",
		Message: "só da dona",
	}
	if err := db.Create(&notif).Error; err != nil {
		t.Fatalf("seed notif: %v", err)
	}

	r := testRouter(db, intruder.ID)
	w := doJSON(r, http.MethodPatch, "/api/notificacoes/"+notif.ID.String()+"/lida", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("esperava 404 para notificação alheia, veio %d", w.Code)
	}

	// O registro da dona permanece intacto
	var reloaded models.Notification
	db.First(&reloaded, "id = ?", notif.ID)
	if reloaded.IsRead {
		t.Fatal("notificação alheia não pode ser mutada")
	}
}

func TestDeleteForeignNotificationIsNotFound(t *testing.T) {
	db := setupTestDB(t, t.Name())
	owner := seedUser(t, db, "dona2@example.com")
	intruder := seedUser(t, db, "intruso2@example.com")

	notif := models.Notification{UserID: owner.ID, Type: models.NotifSystem, Title: "T", Message: "M"}
	db.Create(&notif)

	r := testRouter(db, intruder.ID)
	w := doJSON(r, http.MethodDelete, "/api/notificacoes/"+notif.ID.String(), nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("esperava 404, veio %d", w.Code)
	}

	var n int64
	db.Model(&models.Notification{}).Where("id = ?", notif.ID).Count(&n)
	if n != 1 {
		t.Fatal("a notificação da dona foi excluída")
	}
}

func TestMarkReadIsIdempotent(t *testing.T) {
	db := setupTestDB(t, t.Name())
	u := seedUser(t, db, "leitor@example.com")

	notif := models.Notification{UserID: u.ID, Type: models.NotifSystem, Title: "T", Message: "M"}
	db.Create(&notif)

	r := testRouter(db, u.ID)
	for i := 0; i < 2; i++ {
		w := doJSON(r, http.MethodPatch, "/api/notificacoes/"+notif.ID.String()+"/lida", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("marcação %d deveria dar 200, veio %d", i+1, w.Code)
		}
	}

	var reloaded models.Notification
	db.First(&reloaded, "id = ?", notif.ID)
	if !reloaded.IsRead || reloaded.ReadAt == nil {
		t.Fatal("notificação deveria estar lida com read_at preenchido")
	}
}

func TestUnreadCountUsesNaoLidasKey(t *testing.T) {
	db := setupTestDB(t, t.Name())
	u := seedUser(t, db, "contador@example.com")

	db.Create(&models.Notification{UserID: u.ID, Type: models.NotifSystem, Title: "1", Message: "m"})
	db.Create(&models.Notification{UserID: u.ID, Type: models.NotifSystem, Title: "2", Message: "m", IsRead: true})

	r := testRouter(db, u.ID)
	w := doJSON(r, http.MethodGet, "/api/notificacoes/nao-lidas", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("esperava 200, veio %d", w.Code)
	}

	var resp struct {
		NaoLidas int64 `json:"nao_lidas"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("resposta inválida: %v", err)
	}
	if resp.NaoLidas != 1 {
		t.Fatalf("esperava 1 não lida, veio %d", resp.NaoLidas)
	}
}

func TestGoalCompletionIsOneWay(t *testing.T) {
	db := setupTestDB(t, t.Name())
	u := seedUser(t, db, "metas@example.com")
	r := testRouter(db, u.ID)

	goal := models.Goal{UserID: u.ID, Title: "Terminar o resumo", Status: models.GoalActive}
	db.Create(&goal)

	w := doJSON(r, http.MethodPatch, "/api/metas/"+goal.ID.String()+"/concluir", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("primeira conclusão deveria dar 200, veio %d: %s", w.Code, w.Body.String())
	}

	// Segunda conclusão: conflito, sem reabertura modelada
	w = doJSON(r, http.MethodPatch, "/api/metas/"+goal.ID.String()+"/concluir", nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("segunda conclusão deveria dar 409, veio %d", w.Code)
	}

	var reloaded models.Goal
	db.First(&reloaded, "id = ?", goal.ID)
	if reloaded.Status != models.GoalCompleted || reloaded.CompletedAt == nil {
		t.Fatal("meta deveria permanecer concluída com completed_at")
	}

	// A conclusão dispara a conquista de primeira meta
	var grants int64
	db.Model(&models.UserBadge{}).Where("user_id = ?", u.ID).Count(&grants)
	if grants != 1 {
		t.Fatalf("esperava a conquista de primeira meta, veio %d concessões", grants)
	}
}

func TestDuplicateSubjectNameConflicts(t *testing.T) {
	db := setupTestDB(t, t.Name())
	u := seedUser(t, db, "dup@example.com")
	r := testRouter(db, u.ID)

	w := doJSON(r, http.MethodPost, "/api/materias", gin.H{"name": "Cálculo"})
	if w.Code != http.StatusCreated {
		t.Fatalf("criação deveria dar 201, veio %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(r, http.MethodPost, "/api/materias", gin.H{"name": "Cálculo"})
	if w.Code != http.StatusConflict {
		t.Fatalf("nome repetido deveria dar 409, veio %d", w.Code)
	}

	// Outro usuário pode usar o mesmo nome
	other := seedUser(t, db, "outra@example.com")
	r2 := testRouter(db, other.ID)
	w = doJSON(r2, http.MethodPost, "/api/materias", gin.H{"name": "Cálculo"})
	if w.Code != http.StatusCreated {
		t.Fatalf("mesmo nome em contas diferentes deveria passar, veio %d", w.Code)
	}
}

func TestForgotPasswordNeverRevealsAccounts(t *testing.T) {
	db := setupTestDB(t, t.Name())
	u := seedUser(t, db, "existe@example.com")
	r := testRouter(db, u.ID)
	r.POST("/api/auth/esqueci-senha", ForgotPassword)

	w := doJSON(r, http.MethodPost, "/api/auth/esqueci-senha", gin.H{"email": "ninguem@example.com"})
	if w.Code != http.StatusOK {
		t.Fatalf("e-mail desconhecido deveria dar 200 genérico, veio %d", w.Code)
	}
	if !bytes.Contains(w.Body.Bytes(), []byte("Se o e-mail estiver cadastrado")) {
		t.Fatalf("resposta deveria ser genérica, veio %s", w.Body.String())
	}

	// E-mail desconhecido não pode gerar token
	var n int64
	db.Model(&models.User{}).Where("reset_token IS NOT NULL").Count(&n)
	if n != 0 {
		t.Fatal("nenhum token deveria existir para e-mail desconhecido")
	}
}

func TestSubjectSearchIgnoresCase(t *testing.T) {
	db := setupTestDB(t, t.Name())
	u := seedUser(t, db, "busca@example.com")
	r := testRouter(db, u.ID)

	for _, name := range []string{"Matemática", "História"} {
		w := doJSON(r, http.MethodPost, "/api/materias", gin.H{"name": name})
		if w.Code != http.StatusCreated {
			t.Fatalf("criar %q: veio %d", name, w.Code)
		}
	}

	w := doJSON(r, http.MethodGet, "/api/materias?search=MATEM", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("busca deveria dar 200, veio %d: %s", w.Code, w.Body.String())
	}
	var body struct {
		Subjects []struct {
			Name string `json:"name"`
		} `json:"subjects"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Subjects) != 1 || body.Subjects[0].Name != "Matemática" {
		t.Fatalf("busca por MATEM deveria achar só Matemática, veio %+v", body.Subjects)
	}
}

func TestCreateActivityRejectsBadDuration(t *testing.T) {
	db := setupTestDB(t, t.Name())
	u := seedUser(t, db, "ativo@example.com")
	r := testRouter(db, u.ID)

	w := doJSON(r, http.MethodPost, "/api/atividades", gin.H{
		"primary_topic": "Logaritmos",
		"duration":      "24:00",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("duração 24:00 deveria dar 400, veio %d", w.Code)
	}

	var n int64
	db.Model(&models.Activity{}).Where("user_id = ?", u.ID).Count(&n)
	if n != 0 {
		t.Fatal("requisição rejeitada não pode persistir nada")
	}
}

func TestCreateActivitySanitizesDescription(t *testing.T) {
	db := setupTestDB(t, t.Name())
	u := seedUser(t, db, "sanit@example.com")
	r := testRouter(db, u.ID)

	w := doJSON(r, http.MethodPost, "/api/atividades", gin.H{
		"primary_topic": "Redação",
		"description":   `<p>ok</p><script>alert(1)</script>`,
		"duration":      "01:30",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("esperava 201, veio %d: %s", w.Code, w.Body.String())
	}

	var act models.Activity
	db.First(&act, "user_id = ?", u.ID)
	if act.Description == nil {
		t.Fatal("descrição deveria ter sido salva")
	}
	if bytes.Contains([]byte(*act.Description), []byte("script")) {
		t.Fatalf("descrição não foi sanitizada: %q", *act.Description)
	}
}

func TestCreateActivityGrantsFirstActivity(t *testing.T) {
	db := setupTestDB(t, t.Name())
	u := seedUser(t, db, "primeira@example.com")
	r := testRouter(db, u.ID)

	w := doJSON(r, http.MethodPost, "/api/atividades", gin.H{
		"primary_topic": "Revisão de frações",
		"duration":      "00:45",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("esperava 201, veio %d: %s", w.Code, w.Body.String())
	}

	var grant models.UserBadge
	if err := db.Preload("Badge").Where("user_id = ?", u.ID).First(&grant).Error; err != nil {
		t.Fatalf("primeira atividade deveria conceder conquista: %v", err)
	}
	if grant.Badge.Criterion != models.CriterionFirstActivity {
		t.Fatalf("critério errado: %s", grant.Badge.Criterion)
	}
}
