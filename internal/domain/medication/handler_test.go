package medication

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

func newMedicationHandler(t *testing.T) (*Handler, *echo.Echo) {
	t.Helper()
	return NewHandler(NewService(newMockRepo())), echo.New()
}

func TestHandler_CreateMedication(t *testing.T) {
	h, e := newMedicationHandler(t)
	patientID := uuid.New()

	body := `{"name":"Losartan","dosage":"50mg","frequency":"Once daily","start_date":"2026-01-10"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(patientID.String())

	if err := h.CreateMedication(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var m Medication
	json.Unmarshal(rec.Body.Bytes(), &m)
	if m.PatientID != patientID || m.Name != "Losartan" {
		t.Errorf("unexpected medication: %+v", m)
	}
	if strings.Contains(rec.Body.String(), `"end_date"`) {
		t.Error("ongoing medication must omit end_date")
	}
}

func TestHandler_CreateMedication_MissingFields(t *testing.T) {
	h, e := newMedicationHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Losartan"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(uuid.NewString())

	err := h.CreateMedication(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestHandler_UpdateMedication_NotFound(t *testing.T) {
	h, e := newMedicationHandler(t)

	body := `{"name":"Losartan","dosage":"50mg","frequency":"Once daily","start_date":"2026-01-10"}`
	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(uuid.NewString())

	err := h.UpdateMedication(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %v", err)
	}
}

func TestHandler_ListMedications(t *testing.T) {
	h, e := newMedicationHandler(t)
	patientID := uuid.New()
	h.svc.Create(context.Background(), patientID, &Input{
		Name: "Losartan", Dosage: "50mg", Frequency: "Once daily", StartDate: "2026-01-10",
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(patientID.String())

	if err := h.ListMedications(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var meds []*Medication
	json.Unmarshal(rec.Body.Bytes(), &meds)
	if len(meds) != 1 || meds[0].Name != "Losartan" {
		t.Errorf("unexpected list: %+v", meds)
	}
}

func TestHandler_CreateMedication_UnknownPatient(t *testing.T) {
	repo := newMockRepo()
	patientID := uuid.New()
	repo.missingPatients = map[uuid.UUID]bool{patientID: true}
	h := NewHandler(NewService(repo))
	e := echo.New()

	body := `{"name":"Losartan","dosage":"50mg","frequency":"Once daily","start_date":"2026-01-10"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(patientID.String())

	err := h.CreateMedication(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown patient, got %v", err)
	}
	if msg, _ := httpErr.Message.(string); msg != patient.ErrNotFound.Error() {
		t.Errorf("expected patient-not-found message, got %v", httpErr.Message)
	}
}
