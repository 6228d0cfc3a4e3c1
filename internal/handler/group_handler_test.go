package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/feralclo/release-engine/internal/repository"
	"github.com/feralclo/release-engine/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setupRouter wires handlers over memory repositories
func setupRouter() (*gin.Engine, *repository.MemoryTierRepository, *repository.MemorySettingsRepository) {
	tierRepo := repository.NewMemoryTierRepository()
	settingsRepo := repository.NewMemorySettingsRepository()

	tierSvc := service.NewTierService(tierRepo, settingsRepo, nil)
	groupSvc := service.NewGroupService(tierRepo, settingsRepo, nil)

	tierHandler := NewTierHandler(tierSvc)
	groupHandler := NewGroupHandler(groupSvc)

	router := gin.New()
	v1 := router.Group("/api/v1")
	{
		events := v1.Group("/events/:id")
		{
			events.GET("/groups", groupHandler.List)
			events.POST("/groups", groupHandler.Create)
			events.PATCH("/groups/:name", groupHandler.Rename)
			events.DELETE("/groups/:name", groupHandler.Delete)
			events.POST("/groups/:name/move", groupHandler.Move)
			events.PUT("/groups/:name/release-mode", groupHandler.SetReleaseMode)

			events.GET("/tiers", tierHandler.List)
			events.POST("/tiers", tierHandler.Create)
			events.POST("/tiers/reorder", tierHandler.Reorder)
			events.PATCH("/tiers/:tierID", tierHandler.Update)
			events.DELETE("/tiers/:tierID", tierHandler.Delete)
			events.PUT("/tiers/:tierID/status", tierHandler.SetStatus)
			events.PUT("/tiers/:tierID/group", tierHandler.AssignGroup)

			events.GET("/availability", tierHandler.GetAvailability)
		}
	}

	return router, tierRepo, settingsRepo
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
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
	router.ServeHTTP(w, req)
	return w
}

// envelope mirrors the standard response wrapper for assertions
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response: %v\nbody: %s", err, w.Body.String())
	}
	return env
}

func TestGroupHandler_Create(t *testing.T) {
	router, _, _ := setupRouter()

	w := doJSON(t, router, "POST", "/api/v1/events/evt-1/groups", map[string]string{"name": "VIP"})

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	env := decodeEnvelope(t, w)
	if !env.Success {
		t.Error("Expected success response")
	}
}

func TestGroupHandler_Create_Duplicate(t *testing.T) {
	router, _, _ := setupRouter()

	doJSON(t, router, "POST", "/api/v1/events/evt-1/groups", map[string]string{"name": "VIP"})
	w := doJSON(t, router, "POST", "/api/v1/events/evt-1/groups", map[string]string{"name": "VIP"})

	if w.Code != http.StatusConflict {
		t.Fatalf("Expected status 409, got %d", w.Code)
	}

	env := decodeEnvelope(t, w)
	if env.Error == nil || env.Error.Code != "DUPLICATE_ENTRY" {
		t.Errorf("Expected DUPLICATE_ENTRY error, got %+v", env.Error)
	}
}

func TestGroupHandler_Create_ReservedName(t *testing.T) {
	router, _, _ := setupRouter()

	w := doJSON(t, router, "POST", "/api/v1/events/evt-1/groups", map[string]string{"name": "ungrouped"})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", w.Code)
	}
}

func TestGroupHandler_Create_MissingName(t *testing.T) {
	router, _, _ := setupRouter()

	w := doJSON(t, router, "POST", "/api/v1/events/evt-1/groups", map[string]string{})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", w.Code)
	}
}

func TestGroupHandler_List(t *testing.T) {
	router, _, _ := setupRouter()

	doJSON(t, router, "POST", "/api/v1/events/evt-1/groups", map[string]string{"name": "Early Bird"})
	doJSON(t, router, "POST", "/api/v1/events/evt-1/groups", map[string]string{"name": "VIP"})

	w := doJSON(t, router, "GET", "/api/v1/events/evt-1/groups", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	env := decodeEnvelope(t, w)
	var data struct {
		Groups []struct {
			Name        string `json:"name"`
			Position    int    `json:"position"`
			ReleaseMode string `json:"release_mode"`
		} `json:"groups"`
		UngroupedMode string `json:"ungrouped_release_mode"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}

	if len(data.Groups) != 2 {
		t.Fatalf("Expected 2 groups, got %d", len(data.Groups))
	}
	if data.Groups[0].Name != "Early Bird" || data.Groups[1].Name != "VIP" {
		t.Errorf("Unexpected group order: %+v", data.Groups)
	}
	if data.Groups[0].ReleaseMode != "all" {
		t.Errorf("Expected default release mode 'all', got %q", data.Groups[0].ReleaseMode)
	}
	if data.UngroupedMode != "all" {
		t.Errorf("Expected ungrouped mode 'all', got %q", data.UngroupedMode)
	}
}

func TestGroupHandler_Rename(t *testing.T) {
	router, _, _ := setupRouter()

	doJSON(t, router, "POST", "/api/v1/events/evt-1/groups", map[string]string{"name": "VIP"})

	w := doJSON(t, router, "PATCH", "/api/v1/events/evt-1/groups/VIP", map[string]string{"name": "Premium"})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, "GET", "/api/v1/events/evt-1/groups", nil)
	env := decodeEnvelope(t, w)
	var data struct {
		Groups []struct {
			Name string `json:"name"`
		} `json:"groups"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if len(data.Groups) != 1 || data.Groups[0].Name != "Premium" {
		t.Errorf("Expected renamed group 'Premium', got %+v", data.Groups)
	}
}

func TestGroupHandler_Rename_Conflict(t *testing.T) {
	router, _, _ := setupRouter()

	doJSON(t, router, "POST", "/api/v1/events/evt-1/groups", map[string]string{"name": "VIP"})
	doJSON(t, router, "POST", "/api/v1/events/evt-1/groups", map[string]string{"name": "Premium"})

	w := doJSON(t, router, "PATCH", "/api/v1/events/evt-1/groups/VIP", map[string]string{"name": "Premium"})
	if w.Code != http.StatusConflict {
		t.Fatalf("Expected status 409, got %d", w.Code)
	}
}

func TestGroupHandler_Delete(t *testing.T) {
	router, _, _ := setupRouter()

	doJSON(t, router, "POST", "/api/v1/events/evt-1/groups", map[string]string{"name": "VIP"})

	w := doJSON(t, router, "DELETE", "/api/v1/events/evt-1/groups/VIP", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	w = doJSON(t, router, "GET", "/api/v1/events/evt-1/groups", nil)
	env := decodeEnvelope(t, w)
	var data struct {
		Groups []struct{} `json:"groups"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if len(data.Groups) != 0 {
		t.Errorf("Expected no groups after delete, got %d", len(data.Groups))
	}
}

func TestGroupHandler_Move(t *testing.T) {
	router, _, _ := setupRouter()

	doJSON(t, router, "POST", "/api/v1/events/evt-1/groups", map[string]string{"name": "A"})
	doJSON(t, router, "POST", "/api/v1/events/evt-1/groups", map[string]string{"name": "B"})

	w := doJSON(t, router, "POST", "/api/v1/events/evt-1/groups/B/move", map[string]string{"direction": "up"})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	w = doJSON(t, router, "GET", "/api/v1/events/evt-1/groups", nil)
	env := decodeEnvelope(t, w)
	var data struct {
		Groups []struct {
			Name string `json:"name"`
		} `json:"groups"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if data.Groups[0].Name != "B" {
		t.Errorf("Expected 'B' first after move up, got %q", data.Groups[0].Name)
	}
}

func TestGroupHandler_Move_InvalidDirection(t *testing.T) {
	router, _, _ := setupRouter()

	doJSON(t, router, "POST", "/api/v1/events/evt-1/groups", map[string]string{"name": "A"})

	w := doJSON(t, router, "POST", "/api/v1/events/evt-1/groups/A/move", map[string]string{"direction": "sideways"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", w.Code)
	}
}

func TestGroupHandler_SetReleaseMode(t *testing.T) {
	router, _, _ := setupRouter()

	doJSON(t, router, "POST", "/api/v1/events/evt-1/groups", map[string]string{"name": "VIP"})

	w := doJSON(t, router, "PUT", "/api/v1/events/evt-1/groups/VIP/release-mode", map[string]string{"mode": "sequential"})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, "GET", "/api/v1/events/evt-1/groups", nil)
	env := decodeEnvelope(t, w)
	var data struct {
		Groups []struct {
			Name        string `json:"name"`
			ReleaseMode string `json:"release_mode"`
		} `json:"groups"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if data.Groups[0].ReleaseMode != "sequential" {
		t.Errorf("Expected mode 'sequential', got %q", data.Groups[0].ReleaseMode)
	}
}

func TestGroupHandler_SetReleaseMode_Ungrouped(t *testing.T) {
	router, _, _ := setupRouter()

	w := doJSON(t, router, "PUT", "/api/v1/events/evt-1/groups/ungrouped/release-mode", map[string]string{"mode": "sequential"})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, "GET", "/api/v1/events/evt-1/groups", nil)
	env := decodeEnvelope(t, w)
	var data struct {
		UngroupedMode string `json:"ungrouped_release_mode"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if data.UngroupedMode != "sequential" {
		t.Errorf("Expected ungrouped mode 'sequential', got %q", data.UngroupedMode)
	}
}

func TestGroupHandler_SetReleaseMode_InvalidMode(t *testing.T) {
	router, _, _ := setupRouter()

	w := doJSON(t, router, "PUT", "/api/v1/events/evt-1/groups/VIP/release-mode", map[string]string{"mode": "random"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", w.Code)
	}
}
