package patient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/renaltrack/renaltrack/internal/platform/auth"
)

func newPatientHandler(t *testing.T) (*Handler, *mockRepo, *echo.Echo) {
	t.Helper()
	svc, repo := newTestService()
	return NewHandler(svc), repo, echo.New()
}

func staffContext(req *http.Request) *http.Request {
	return req.WithContext(auth.WithIdentity(req.Context(),
		auth.Identity{Username: "staff1", FullName: "Front Desk", Role: auth.RoleStaff}))
}

func TestHandler_CreatePatient(t *testing.T) {
	h, _, e := newPatientHandler(t)

	body := `{"full_name":"Maria Santos","birth_date":"1960-03-12","diagnosis":"CKD Stage 4"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/patients", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req = staffContext(req)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.CreatePatient(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var p Patient
	json.Unmarshal(rec.Body.Bytes(), &p)
	if p.FullName != "Maria Santos" {
		t.Errorf("unexpected patient in response: %+v", p)
	}
	if p.CreatedBy != "staff1" {
		t.Errorf("expected creator from the request identity, got %s", p.CreatedBy)
	}
}

func TestHandler_CreatePatient_MissingName(t *testing.T) {
	h, _, e := newPatientHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/patients",
		strings.NewReader(`{"diagnosis":"CKD"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req = staffContext(req)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.CreatePatient(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestHandler_GetPatient_NotFound(t *testing.T) {
	h, _, e := newPatientHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(uuid.NewString())

	err := h.GetPatient(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %v", err)
	}
}

func TestHandler_GetPatient_BadID(t *testing.T) {
	h, _, e := newPatientHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	err := h.GetPatient(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestHandler_ListPatients_Search(t *testing.T) {
	h, _, e := newPatientHandler(t)
	ctx := context.Background()
	h.svc.Create(ctx, &Input{FullName: "Maria Santos", Diagnosis: "CKD Stage 4"}, "staff1")
	h.svc.Create(ctx, &Input{FullName: "Ana Cruz", Diagnosis: "Hypertensive nephropathy"}, "staff1")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/patients?search=santos", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ListPatients(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Data  []*Patient `json:"data"`
		Total int        `json:"total"`
	}
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Total != 1 || len(resp.Data) != 1 || resp.Data[0].FullName != "Maria Santos" {
		t.Errorf("unexpected search result: %+v", resp)
	}
}

func TestHandler_UpdatePatient(t *testing.T) {
	h, _, e := newPatientHandler(t)
	created, _ := h.svc.Create(context.Background(), &Input{FullName: "Maria Santos"}, "staff1")

	body := `{"full_name":"Maria Santos","diagnosis":"CKD Stage 5"}`
	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(created.ID.String())

	if err := h.UpdatePatient(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var p Patient
	json.Unmarshal(rec.Body.Bytes(), &p)
	if p.Diagnosis != "CKD Stage 5" || p.CreatedBy != "staff1" {
		t.Errorf("unexpected patient after update: %+v", p)
	}
}

func TestHandler_Dashboard(t *testing.T) {
	h, repo, e := newPatientHandler(t)
	ctx := context.Background()
	a, _ := h.svc.Create(ctx, &Input{FullName: "Maria Santos", Diagnosis: "CKD Stage 4"}, "staff1")
	h.svc.Create(ctx, &Input{FullName: "Ana Cruz"}, "staff1")
	repo.activeIDs[a.ID] = true

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Dashboard(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var resp struct {
		Stats          Stats          `json:"stats"`
		RecentActivity []*RecentEntry `json:"recent_activity"`
	}
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Stats.TotalPatients != 2 || resp.Stats.ActivePatients != 1 {
		t.Errorf("unexpected stats: %+v", resp.Stats)
	}
	if len(resp.RecentActivity) != 2 {
		t.Errorf("expected 2 recent entries, got %d", len(resp.RecentActivity))
	}
}

func TestHandler_CreatePatient_StorageErrorIsOpaque(t *testing.T) {
	h, repo, e := newPatientHandler(t)
	repo.failErr = errors.New(`connect to "postgres://clinic:hunter2@db:5432": connection refused`)

	body := `{"full_name":"Maria Santos"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/patients", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req = staffContext(req)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.CreatePatient(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %v", err)
	}
	msg, _ := httpErr.Message.(string)
	if msg != "internal server error" {
		t.Errorf("expected generic message, got %q", msg)
	}
	if strings.Contains(msg, "postgres://") || strings.Contains(msg, "hunter2") {
		t.Error("storage error text must not reach the client")
	}
}
