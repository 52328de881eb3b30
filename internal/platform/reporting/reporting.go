package reporting

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"

	"github.com/renaltrack/renaltrack/internal/platform/auth"
)

// MeasureDefinition defines a reporting measure with its SQL query.
type MeasureDefinition struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	SQL         string   `json:"sql"`
	Parameters  []string `json:"parameters"`
}

// MeasureReport holds the results of evaluating a measure.
type MeasureReport struct {
	MeasureID   string                   `json:"measure_id"`
	MeasureName string                   `json:"measure_name"`
	GeneratedAt time.Time                `json:"generated_at"`
	Results     []map[string]interface{} `json:"results"`
	Parameters  map[string]string        `json:"parameters,omitempty"`
}

// PredefinedMeasures is the list of available reporting measures.
var PredefinedMeasures = []MeasureDefinition{
	{
		ID:          "patient-count",
		Name:        "Patient Count",
		Description: "Total number of registered patients and how many have an ongoing medication course",
		SQL: `SELECT (SELECT COUNT(*) FROM patients) AS total,
			(SELECT COUNT(DISTINCT patient_id) FROM medications WHERE end_date IS NULL) AS on_treatment`,
		Parameters: []string{},
	},
	{
		ID:          "new-patients-monthly",
		Name:        "New Patients by Month",
		Description: "Number of patient registrations grouped by calendar month",
		SQL: `SELECT TO_CHAR(created_at, 'YYYY-MM') AS month, COUNT(*) AS total
			FROM patients GROUP BY month ORDER BY month DESC`,
		Parameters: []string{},
	},
	{
		ID:          "medications-by-frequency",
		Name:        "Ongoing Medications by Frequency",
		Description: "Count of ongoing medication courses grouped by dosing frequency",
		SQL: `SELECT frequency, COUNT(*) AS total FROM medications
			WHERE end_date IS NULL GROUP BY frequency ORDER BY total DESC`,
		Parameters: []string{},
	},
	{
		ID:          "diagnostic-test-summary",
		Name:        "Diagnostic Test Summary",
		Description: "Count of diagnostic tests grouped by test name",
		SQL: `SELECT test_name, COUNT(*) AS total FROM diagnostics
			GROUP BY test_name ORDER BY total DESC`,
		Parameters: []string{},
	},
	{
		ID:          "lab-draw-volume",
		Name:        "Lab Draw Volume",
		Description: "Number of laboratory panel draws grouped by calendar month",
		SQL: `SELECT SUBSTRING(test_date FROM 1 FOR 7) AS month, COUNT(*) AS total
			FROM lab_results GROUP BY month ORDER BY month DESC`,
		Parameters: []string{},
	},
}

// Handler provides HTTP handlers for the reporting API.
type Handler struct {
	pool *pgxpool.Pool
}

// NewHandler creates a new reporting handler.
func NewHandler(pool *pgxpool.Pool) *Handler {
	return &Handler{pool: pool}
}

// RegisterRoutes registers the reporting API routes. Staff accounts handle
// registration and data entry only, so measures are gated to clinicians and
// admins.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	reportGroup := api.Group("/reports", auth.RequireRole(auth.RoleAdmin, auth.RoleDoctor))
	reportGroup.GET("/measures", h.ListMeasures)
	reportGroup.GET("/measures/:id/evaluate", h.EvaluateMeasure)
}

// ListMeasures returns all available measure definitions.
func (h *Handler) ListMeasures(c echo.Context) error {
	return c.JSON(http.StatusOK, PredefinedMeasures)
}

// EvaluateMeasure executes a measure's SQL and returns the results.
func (h *Handler) EvaluateMeasure(c echo.Context) error {
	measureID := c.Param("id")

	measure := FindMeasure(measureID)
	if measure == nil {
		return echo.NewHTTPError(http.StatusNotFound, "measure not found")
	}

	// Collect parameters from query string
	params := map[string]string{}
	for _, p := range measure.Parameters {
		if v := c.QueryParam(p); v != "" {
			params[p] = v
		}
	}

	results, err := h.executeSQL(c.Request().Context(), measure.SQL)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("query failed: %v", err))
	}

	report := MeasureReport{
		MeasureID:   measure.ID,
		MeasureName: measure.Name,
		GeneratedAt: time.Now(),
		Results:     results,
		Parameters:  params,
	}

	return c.JSON(http.StatusOK, report)
}

// executeSQL runs a SQL query and returns results as a slice of maps.
func (h *Handler) executeSQL(ctx context.Context, sql string) ([]map[string]interface{}, error) {
	rows, err := h.pool.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fieldDescs := rows.FieldDescriptions()
	var results []map[string]interface{}

	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}

		row := make(map[string]interface{}, len(fieldDescs))
		for i, fd := range fieldDescs {
			row[string(fd.Name)] = values[i]
		}
		results = append(results, row)
	}

	if results == nil {
		results = []map[string]interface{}{}
	}

	return results, nil
}

// FindMeasure looks up a measure by ID.
func FindMeasure(id string) *MeasureDefinition {
	for i := range PredefinedMeasures {
		if PredefinedMeasures[i].ID == id {
			return &PredefinedMeasures[i]
		}
	}
	return nil
}
