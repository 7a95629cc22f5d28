package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tablebird/tablebird-console/config"
	"github.com/tablebird/tablebird-console/models"
	"github.com/tablebird/tablebird-console/services"
)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	return router
}

// noopCue is an AudioCue that always succeeds.
type noopCue struct{}

func (noopCue) Play() error { return nil }

// setupConsoleServices wires the full service stack against the mock gateway
// and a fresh in-memory state store, and returns the mock for seeding.
func setupConsoleServices(t *testing.T) *services.MockGatewayService {
	t.Helper()

	config.SetConfig(&config.Config{
		GoEnv:            "test",
		OrderWindowLimit: 100,
		MetricsDays:      10,
	})

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := db.AutoMigrate(&models.StateEntry{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	gateway := services.NewMockGatewayService()
	gateway.SetAsMockForTesting()

	state := services.InitStateService(db)
	services.InitAuthService(state)
	cache := services.InitCacheService()
	services.InitAnalyticsService()
	services.InitStatusService(gateway, cache)
	services.InitBulkService(gateway, cache)
	services.InitWatcherService(gateway, state, services.LogNotifier{}, noopCue{}, time.Minute)

	return gateway
}

// performRequest runs one request through the router and decodes the
// response envelope.
func performRequest(t *testing.T, router *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to encode request body: %v", err)
		}
		reader = bytes.NewBuffer(encoded)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	if err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to decode response body %q: %v", w.Body.String(), err)
	}
	return w, response
}

func errorCode(t *testing.T, response map[string]interface{}) string {
	t.Helper()
	errorData, ok := response["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("Response has no error object: %v", response)
	}
	return errorData["code"].(string)
}

// makeOrder builds a test order with one line item covering the full total.
func makeOrder(number, name, phone string, total float64, status models.OrderStatus, createdAt time.Time) models.Order {
	return models.Order{
		OrderNumber: number,
		UserName:    name,
		PhoneNumber: phone,
		Items: []models.OrderLineItem{
			{ID: 1, Name: "Margherita", Price: total, Quantity: 1, Subtotal: total},
		},
		Total:     total,
		Status:    status,
		CreatedAt: createdAt,
	}
}
