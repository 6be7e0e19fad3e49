package folders

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/server/respond"
)

func newTestRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func postJSON(t *testing.T, router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestCreateFolderEndpoint(t *testing.T) {
	svc, _ := newTestFolderService()
	router := newTestRouter(svc)

	resp := postJSON(t, router, "/api/v1/folders", `{"user_id":7,"folder_name":"Jobs"}`)
	if resp.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", resp.Code, resp.Body.String())
	}

	var body struct {
		Success   bool   `json:"success"`
		FolderID  int64  `json:"folder_id"`
		FolderKey string `json:"folder_key"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !body.Success || body.FolderID == 0 || body.FolderKey != "Jobs" {
		t.Fatalf("body = %+v", body)
	}
}

func TestCreateFolderConflictEnvelope(t *testing.T) {
	svc, _ := newTestFolderService()
	router := newTestRouter(svc)

	if resp := postJSON(t, router, "/api/v1/folders", `{"user_id":7,"folder_name":"Jobs"}`); resp.Code != http.StatusCreated {
		t.Fatalf("first create: %d", resp.Code)
	}
	resp := postJSON(t, router, "/api/v1/folders", `{"user_id":7,"folder_name":"Jobs"}`)
	if resp.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", resp.Code)
	}

	var body respond.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error envelope: %v", err)
	}
	if body.Error.Code != "conflict" {
		t.Fatalf("error code = %q, want conflict", body.Error.Code)
	}
}

func TestCreateFolderValidation(t *testing.T) {
	svc, _ := newTestFolderService()
	router := newTestRouter(svc)

	tests := []struct {
		name string
		body string
	}{
		{name: "missing user", body: `{"folder_name":"Jobs"}`},
		{name: "missing name", body: `{"user_id":7}`},
		{name: "bad characters", body: `{"user_id":7,"folder_name":"a b"}`},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, router, "/api/v1/folders", tt.body)
			if resp.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400: %s", resp.Code, resp.Body.String())
			}
		})
	}
}

func TestRenameFolderEndpoint(t *testing.T) {
	svc, _ := newTestFolderService()
	router := newTestRouter(svc)

	if resp := postJSON(t, router, "/api/v1/folders", `{"user_id":7,"folder_name":"Jobs"}`); resp.Code != http.StatusCreated {
		t.Fatalf("create: %d", resp.Code)
	}

	resp := postJSON(t, router, "/api/v1/folders/rename", `{"user_id":7,"folder_key":"Jobs","new_folder_name":"Jobs-2025"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", resp.Code, resp.Body.String())
	}

	var body struct {
		FolderKey  string `json:"folder_key"`
		FolderName string `json:"folder_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.FolderKey != "Jobs" || body.FolderName != "Jobs-2025" {
		t.Fatalf("body = %+v", body)
	}
}

func TestDeleteUnknownFolderEndpoint(t *testing.T) {
	svc, _ := newTestFolderService()
	router := newTestRouter(svc)

	resp := postJSON(t, router, "/api/v1/folders/delete", `{"user_id":7,"folder_key":"Nope"}`)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.Code)
	}
}
