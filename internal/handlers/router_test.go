package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/you/excursion-booking/internal/domain"
	"github.com/you/excursion-booking/internal/repository"
	"github.com/you/excursion-booking/internal/service"
	"github.com/you/excursion-booking/pkg/auth"
)

type nopPublisher struct{}

func (nopPublisher) PublishJSON(context.Context, string, any) error { return nil }

type env struct {
	router   *gin.Engine
	identity *service.IdentitySvc
	gdb      *gorm.DB
}

func newEnv(t *testing.T) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	users := repository.NewUserRepo(gdb)
	suppliers := repository.NewSupplierRepo(gdb)
	excursions := repository.NewExcursionRepo(gdb)
	cars := repository.NewCarRepo(gdb)
	ledger := repository.NewBookingRepo(gdb)
	for _, m := range []interface{ Migrate() error }{users, suppliers, excursions, cars, ledger} {
		require.NoError(t, m.Migrate())
	}

	signer := auth.NewSigner("test-secret", 12*time.Hour)
	timeout := 5 * time.Second
	identity := service.NewIdentitySvc(users, signer, timeout)
	inventory := service.NewInventorySvc(suppliers, excursions, cars, timeout)
	bookings := service.NewBookingSvc(ledger, nopPublisher{}, zap.NewNop(), timeout)

	return &env{router: Router(identity, inventory, bookings), identity: identity, gdb: gdb}
}

func (e *env) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *env) seedUser(t *testing.T, email string, supplierID *int64, super bool) {
	t.Helper()
	_, err := e.identity.CreateUser(context.Background(), email, "pass1234", supplierID, super)
	require.NoError(t, err)
}

func (e *env) login(t *testing.T, email string) string {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/admin/login", "", gin.H{"email": email, "password": "pass1234"})
	require.Equal(t, http.StatusOK, w.Code)
	var out struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out.Token
}

func (e *env) seedCar(t *testing.T, supplierID int64) *domain.Car {
	t.Helper()
	c := &domain.Car{Brand: "Toyota", Model: "Camry", PricePerDay: 150, SupplierID: supplierID}
	require.NoError(t, repository.NewCarRepo(e.gdb).Create(context.Background(), c))
	return c
}

func TestLoginEndpoint(t *testing.T) {
	e := newEnv(t)
	sup := int64(1)
	e.seedUser(t, "admin@example.com", &sup, false)

	w := e.do(t, http.MethodPost, "/api/admin/login", "", gin.H{"email": "admin@example.com", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = e.do(t, http.MethodPost, "/api/admin/login", "", gin.H{"email": "admin@example.com", "password": "pass1234"})
	require.Equal(t, http.StatusOK, w.Code)
	var out struct {
		Token       string `json:"token"`
		IsSuperuser bool   `json:"is_superuser"`
		SupplierID  *int64 `json:"supplier_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.NotEmpty(t, out.Token)
	assert.False(t, out.IsSuperuser)
	require.NotNil(t, out.SupplierID)
	assert.Equal(t, int64(1), *out.SupplierID)
}

func TestPayEndpoint(t *testing.T) {
	e := newEnv(t)
	car := e.seedCar(t, 1)

	payload := gin.H{
		"firstName": "Anna", "lastName": "K", "phone": "+971-50-000-0000",
		"contact_method": "whatsapp", "language": "en",
		"date": "2024-03-10", "end_date": "2024-03-12",
		"total_price": 450, "supplier_id": 1, "booking_type": "car", "car_id": car.ID,
	}

	w := e.do(t, http.MethodPost, "/api/pay", "", payload)
	require.Equal(t, http.StatusOK, w.Code)
	var out struct {
		Status    string `json:"status"`
		BookingID int64  `json:"booking_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, "success", out.Status)
	assert.NotZero(t, out.BookingID)

	// overlapping range
	payload["date"], payload["end_date"] = "2024-03-12", "2024-03-14"
	w = e.do(t, http.MethodPost, "/api/pay", "", payload)
	assert.Equal(t, http.StatusConflict, w.Code)

	// structural failure
	w = e.do(t, http.MethodPost, "/api/pay", "", gin.H{"booking_type": "car", "supplier_id": 1, "date": "2024-03-10"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCarReservationsCalendar(t *testing.T) {
	e := newEnv(t)
	car := e.seedCar(t, 1)

	payload := gin.H{
		"firstName": "Anna", "lastName": "K", "phone": "+971-50-000-0000",
		"contact_method": "whatsapp", "language": "en",
		"date": "2024-03-10", "end_date": "2024-03-12",
		"total_price": 450, "supplier_id": 1, "booking_type": "car", "car_id": car.ID,
	}
	require.Equal(t, http.StatusOK, e.do(t, http.MethodPost, "/api/pay", "", payload).Code)

	w := e.do(t, http.MethodGet, fmt.Sprintf("/car-reservations?car_id=%d", car.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var days []string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &days))
	assert.Equal(t, []string{"2024-03-10", "2024-03-11", "2024-03-12"}, days)
}

func TestTenantScopingOnAdminSurface(t *testing.T) {
	e := newEnv(t)
	supA, supB := int64(1), int64(2)
	e.seedUser(t, "a@example.com", &supA, false)
	e.seedUser(t, "root@example.com", nil, true)
	carA := e.seedCar(t, supA)
	carB := e.seedCar(t, supB)

	tokenA := e.login(t, "a@example.com")
	tokenRoot := e.login(t, "root@example.com")

	// scoped caller gets their own cars even when filtering for another tenant
	w := e.do(t, http.MethodGet, "/api/admin/cars?supplier_id=2", tokenA, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var cars []domain.Car
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cars))
	require.Len(t, cars, 1)
	assert.Equal(t, carA.ID, cars[0].ID)

	// cross-tenant mutation is forbidden
	w = e.do(t, http.MethodPut, fmt.Sprintf("/api/admin/cars/%d", carB.ID), tokenA, gin.H{"brand": "Kia"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// superuser passes unconditionally
	w = e.do(t, http.MethodPut, fmt.Sprintf("/api/admin/cars/%d", carB.ID), tokenRoot, gin.H{"brand": "Kia"})
	assert.Equal(t, http.StatusNoContent, w.Code)

	// superuser may filter explicitly
	w = e.do(t, http.MethodGet, "/api/admin/cars?supplier_id=2", tokenRoot, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cars))
	require.Len(t, cars, 1)
	assert.Equal(t, carB.ID, cars[0].ID)
}

func TestSuperRoutesRequireSuperuser(t *testing.T) {
	e := newEnv(t)
	sup := int64(1)
	e.seedUser(t, "a@example.com", &sup, false)
	token := e.login(t, "a@example.com")

	w := e.do(t, http.MethodGet, "/api/super/users", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = e.do(t, http.MethodGet, "/api/super/users", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSupersededTokenRejected(t *testing.T) {
	e := newEnv(t)
	e.seedUser(t, "root@example.com", nil, true)

	first := e.login(t, "root@example.com")
	require.Equal(t, http.StatusOK, e.do(t, http.MethodGet, "/api/super/users", first, nil).Code)

	second := e.login(t, "root@example.com")
	assert.Equal(t, http.StatusUnauthorized, e.do(t, http.MethodGet, "/api/super/users", first, nil).Code)
	assert.Equal(t, http.StatusOK, e.do(t, http.MethodGet, "/api/super/users", second, nil).Code)
}

func TestChangePasswordEndpoint(t *testing.T) {
	e := newEnv(t)
	e.seedUser(t, "root@example.com", nil, true)
	token := e.login(t, "root@example.com")

	w := e.do(t, http.MethodPost, "/api/admin/change-password", token, gin.H{"new_password": "abc"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = e.do(t, http.MethodPost, "/api/admin/change-password", token, gin.H{"new_password": "longer-pass"})
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestSupplierDeleteConflict(t *testing.T) {
	e := newEnv(t)
	e.seedUser(t, "root@example.com", nil, true)
	token := e.login(t, "root@example.com")

	w := e.do(t, http.MethodPost, "/api/super/suppliers", token, gin.H{"name": "Dubai Adventures", "type": "car"})
	require.Equal(t, http.StatusCreated, w.Code)
	var sup domain.Supplier
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sup))

	e.seedCar(t, sup.ID)
	w = e.do(t, http.MethodDelete, fmt.Sprintf("/api/super/suppliers/%d", sup.ID), token, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}
