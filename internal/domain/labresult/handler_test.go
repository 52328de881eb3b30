package labresult

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/renaltrack/renaltrack/internal/domain/patient"
)

func newLabHandler(t *testing.T) (*Handler, *echo.Echo) {
	t.Helper()
	return NewHandler(NewService(newMockRepo())), echo.New()
}

func TestHandler_CreateLabResult(t *testing.T) {
	h, e := newLabHandler(t)
	patientID := uuid.New()

	body := `{"test_date":"2026-02-14","creatinine":"4.1 mg/dL","potassium":"5.2 mmol/L"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(patientID.String())

	if err := h.CreateLabResult(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var lr LabResult
	json.Unmarshal(rec.Body.Bytes(), &lr)
	if lr.PatientID != patientID || lr.Creatinine != "4.1 mg/dL" {
		t.Errorf("unexpected lab result: %+v", lr)
	}
	if strings.Contains(rec.Body.String(), `"rbc"`) {
		t.Error("unmeasured analytes must be omitted from the response")
	}
}

func TestHandler_CreateLabResult_MissingDate(t *testing.T) {
	h, e := newLabHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"creatinine":"4.1"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(uuid.NewString())

	err := h.CreateLabResult(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestHandler_UpdateLabResult_NotFound(t *testing.T) {
	h, e := newLabHandler(t)

	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"test_date":"2026-02-14"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(uuid.NewString())

	err := h.UpdateLabResult(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %v", err)
	}
}

func TestHandler_ListLabResults(t *testing.T) {
	h, e := newLabHandler(t)
	patientID := uuid.New()
	h.svc.Create(context.Background(), patientID, &Input{TestDate: "2026-02-14", Creatinine: "4.1"})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(patientID.String())

	if err := h.ListLabResults(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var results []*LabResult
	json.Unmarshal(rec.Body.Bytes(), &results)
	if len(results) != 1 || results[0].Creatinine != "4.1" {
		t.Errorf("unexpected list: %+v", results)
	}
}

func TestHandler_CreateLabResult_UnknownPatient(t *testing.T) {
	repo := newMockRepo()
	patientID := uuid.New()
	repo.missingPatients = map[uuid.UUID]bool{patientID: true}
	h := NewHandler(NewService(repo))
	e := echo.New()

	body := `{"test_date":"2026-02-14","creatinine":"4.1 mg/dL"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(patientID.String())

	err := h.CreateLabResult(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown patient, got %v", err)
	}
	if msg, _ := httpErr.Message.(string); msg != patient.ErrNotFound.Error() {
		t.Errorf("expected patient-not-found message, got %v", httpErr.Message)
	}
}
