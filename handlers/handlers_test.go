package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"covoiturage-api/config"
	"covoiturage-api/handlers"
	"covoiturage-api/middleware"
	"covoiturage-api/models"
	"covoiturage-api/routes"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// stubMailer records sends instead of talking to SMTP
type stubMailer struct {
	mu   sync.Mutex
	fail bool
	sent []string
}

func (m *stubMailer) Send(to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return fmt.Errorf("smtp transport down")
	}
	m.sent = append(m.sent, to)
	return nil
}

var dbSeq int

// setupRouter wires a fresh in-memory database and a stub mailer
// behind the real route table
func setupRouter(t *testing.T) (*gin.Engine, *stubMailer) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbSeq++
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"), dbSeq)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	config.DB = db

	mail := &stubMailer{}
	handlers.Mail = mail

	r := gin.New()
	routes.SetupRoutes(r)
	return r, mail
}

// createUser inserts a user and returns it with a valid token
func createUser(t *testing.T, email string, role models.UserRole) (models.User, string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := models.User{Email: email, PasswordHash: string(hash), Role: role}
	if err := config.DB.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	token, err := middleware.GenerateToken(&user)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return user, token
}

// createTrip inserts a planned trip owned by the given driver
func createTrip(t *testing.T, driverID uint, seats int) models.Trip {
	t.Helper()
	trip := models.Trip{
		DriverID:       driverID,
		DepartureCity:  "Tunis",
		Destination:    "Sfax",
		DateTime:       time.Now().Add(48 * time.Hour),
		AvailableSeats: seats,
		Price:          25,
		Status:         models.StatusPlanned,
	}
	if err := config.DB.Create(&trip).Error; err != nil {
		t.Fatalf("create trip: %v", err)
	}
	return trip
}

// doJSON performs a request with an optional bearer token and JSON body
func doJSON(r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out
}

func wantStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("status = %d, want %d (body: %s)", w.Code, want, w.Body.String())
	}
}

func reloadTrip(t *testing.T, id uint) models.Trip {
	t.Helper()
	var trip models.Trip
	if err := config.DB.First(&trip, id).Error; err != nil {
		t.Fatalf("reload trip: %v", err)
	}
	return trip
}

func futureDate() time.Time {
	return time.Now().Add(72 * time.Hour).Truncate(time.Second)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
