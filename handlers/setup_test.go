package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/asharbutt0314/foodexpress/config"
	"github.com/asharbutt0314/foodexpress/handlers"
	"github.com/asharbutt0314/foodexpress/mailer"
	"github.com/asharbutt0314/foodexpress/models"
	"github.com/asharbutt0314/foodexpress/routes"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

//
// ---------- STUBS & FAKES ----------
//

var errTransport = errors.New("smtp unreachable")

type sentMail struct {
	To      string
	Subject string
	HTML    string
}

// mailRecorder implements mailer.Mailer in memory.
type mailRecorder struct {
	mu   sync.Mutex
	sent []sentMail
	fail error
}

func (m *mailRecorder) Send(to, subject, html string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, HTML: html})
	return nil
}

func (m *mailRecorder) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

func (m *mailRecorder) last() (sentMail, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sent) == 0 {
		return sentMail{}, false
	}
	return m.sent[len(m.sent)-1], true
}

//
// ---------- HARNESS ----------
//

// newTestServer wires the full route table against an in-memory
// database and a recording mailer.
func newTestServer(t *testing.T) (*gin.Engine, *mailRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.Load()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("raw db handle: %v", err)
	}
	// One connection, or every pooled conn gets its own :memory: db.
	sqlDB.SetMaxOpenConns(1)

	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	config.DB = db

	rec := &mailRecorder{}
	prev := mailer.Default
	mailer.Default = rec
	t.Cleanup(func() { mailer.Default = prev })

	handlers.Cart.Clear("")

	r := gin.New()
	routes.SetupRoutes(r)
	return r, rec
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}

//
// ---------- FIXTURES ----------
//

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	return string(hash)
}

func seedAccount(t *testing.T, a models.Account) models.Account {
	t.Helper()
	if err := config.DB.Create(&a).Error; err != nil {
		t.Fatalf("seed account: %v", err)
	}
	return a
}

func seedRestaurant(t *testing.T, name string) models.Account {
	t.Helper()
	return seedAccount(t, models.Account{
		Kind:           models.KindRestaurant,
		Username:       name + " owner",
		RestaurantName: name,
		Email:          name + "@example.com",
		PasswordHash:   mustHash(t, "secret123"),
		IsVerified:     true,
	})
}

func seedDiner(t *testing.T, name string) models.Account {
	t.Helper()
	return seedAccount(t, models.Account{
		Kind:         models.KindDiner,
		Username:     name,
		Email:        name + "@example.com",
		PasswordHash: mustHash(t, "secret123"),
		IsVerified:   true,
	})
}

func seedProduct(t *testing.T, ownerID, name string, price float64, discount int) models.Product {
	t.Helper()
	p := models.Product{Name: name, Price: price, Discount: discount, OwnerID: ownerID}
	if err := config.DB.Create(&p).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return p
}

func reloadAccount(t *testing.T, id string) models.Account {
	t.Helper()
	var a models.Account
	if err := config.DB.Where("id = ?", id).First(&a).Error; err != nil {
		t.Fatalf("reload account: %v", err)
	}
	return a
}
