package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"fleethr/controllers"
	"fleethr/models"
	"fleethr/repository"
	"fleethr/routes"
)

func newTestApp(t *testing.T) (*fiber.App, *repository.MemoryEmployeeRepository, *repository.MemoryVehicleRepository) {
	t.Helper()

	empRepo := repository.NewMemoryEmployeeRepository()
	vehRepo := repository.NewMemoryVehicleRepository()
	log := zap.NewNop()

	app := fiber.New()
	routes.RegisterRoutes(app,
		controllers.NewEmployeeController(empRepo, log),
		controllers.NewVehicleController(vehRepo, empRepo, log),
	)
	return app, empRepo, vehRepo
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, raw
}

func employeePayload(staffNumber string) fiber.Map {
	return fiber.Map{
		"staffNumber":    staffNumber,
		"fullName":       "Alice Example",
		"identityNumber": "9001015009087",
		"qualifications": "BSc",
		"position":       "Clerk",
		"salary":         1000,
	}
}

func TestCreateEmployee(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp, raw := doJSON(t, app, http.MethodPost, "/employees", employeePayload("E001"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var emp models.Employee
	require.NoError(t, json.Unmarshal(raw, &emp))
	assert.False(t, emp.ID.IsZero())
	assert.Equal(t, "E001", emp.StaffNumber)
	assert.Equal(t, models.ContractActive, emp.ContractStatus)
	assert.Equal(t, 0, emp.Points)
	assert.Empty(t, emp.PointsHistory)
	assert.False(t, emp.CreatedAt.IsZero())
	assert.False(t, emp.UpdatedAt.IsZero())
}

func TestCreateEmployee_MissingFields(t *testing.T) {
	app, _, _ := newTestApp(t)

	payload := employeePayload("E001")
	delete(payload, "fullName")

	resp, raw := doJSON(t, app, http.MethodPost, "/employees", payload)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(raw), "fullName")
}

func TestCreateEmployee_DuplicateStaffNumber(t *testing.T) {
	app, repo, _ := newTestApp(t)

	resp, _ := doJSON(t, app, http.MethodPost, "/employees", employeePayload("E001"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, raw := doJSON(t, app, http.MethodPost, "/employees", employeePayload("E001"))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(raw), "staff number already exists")

	all, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestGetEmployees(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp, raw := doJSON(t, app, http.MethodGet, "/employees", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, "[]", string(raw))

	doJSON(t, app, http.MethodPost, "/employees", employeePayload("E001"))
	doJSON(t, app, http.MethodPost, "/employees", employeePayload("E002"))

	resp, raw = doJSON(t, app, http.MethodGet, "/employees", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var employees []models.Employee
	require.NoError(t, json.Unmarshal(raw, &employees))
	assert.Len(t, employees, 2)
}

func TestGetEmployeeByID(t *testing.T) {
	app, _, _ := newTestApp(t)

	_, raw := doJSON(t, app, http.MethodPost, "/employees", employeePayload("E001"))
	var created models.Employee
	require.NoError(t, json.Unmarshal(raw, &created))

	resp, raw := doJSON(t, app, http.MethodGet, "/employees/"+created.ID.Hex(), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got models.Employee
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, created.ID, got.ID)

	resp, _ = doJSON(t, app, http.MethodGet, "/employees/bad-id", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, "/employees/0123456789abcdef01234567", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUpdateEmployee(t *testing.T) {
	app, _, _ := newTestApp(t)

	_, raw := doJSON(t, app, http.MethodPost, "/employees", employeePayload("E001"))
	var created models.Employee
	require.NoError(t, json.Unmarshal(raw, &created))

	resp, raw := doJSON(t, app, http.MethodPut, "/employees/"+created.ID.Hex(), fiber.Map{
		"position": "Supervisor",
		"salary":   2000,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated models.Employee
	require.NoError(t, json.Unmarshal(raw, &updated))
	assert.Equal(t, "Supervisor", updated.Position)
	assert.Equal(t, 2000.0, updated.Salary)
	// untouched fields survive a partial update
	assert.Equal(t, "E001", updated.StaffNumber)
	assert.Equal(t, "Alice Example", updated.FullName)
}

func TestUpdateEmployee_Errors(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp, _ := doJSON(t, app, http.MethodPut, "/employees/bad-id", fiber.Map{"position": "X"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPut, "/employees/0123456789abcdef01234567", fiber.Map{"position": "X"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	_, raw := doJSON(t, app, http.MethodPost, "/employees", employeePayload("E001"))
	var created models.Employee
	require.NoError(t, json.Unmarshal(raw, &created))

	resp, _ = doJSON(t, app, http.MethodPut, "/employees/"+created.ID.Hex(), fiber.Map{"contractStatus": "resigned"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDeleteEmployee(t *testing.T) {
	app, _, _ := newTestApp(t)

	_, raw := doJSON(t, app, http.MethodPost, "/employees", employeePayload("E001"))
	var created models.Employee
	require.NoError(t, json.Unmarshal(raw, &created))

	resp, raw := doJSON(t, app, http.MethodDelete, "/employees/"+created.ID.Hex(), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), "employee deleted")

	resp, _ = doJSON(t, app, http.MethodDelete, "/employees/"+created.ID.Hex(), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodDelete, "/employees/bad-id", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAddPoints(t *testing.T) {
	app, _, _ := newTestApp(t)

	_, raw := doJSON(t, app, http.MethodPost, "/employees", employeePayload("E001"))
	var created models.Employee
	require.NoError(t, json.Unmarshal(raw, &created))

	resp, raw := doJSON(t, app, http.MethodPatch, "/employees/"+created.ID.Hex()+"/add-points", fiber.Map{
		"points": 5,
		"reason": "good work",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Message  string          `json:"message"`
		Employee models.Employee `json:"employee"`
	}
	require.NoError(t, json.Unmarshal(raw, &result))
	assert.Equal(t, "points added", result.Message)
	assert.Equal(t, 5, result.Employee.Points)
	require.Len(t, result.Employee.PointsHistory, 1)
	assert.Equal(t, 5, result.Employee.PointsHistory[0].Points)
	assert.Equal(t, "good work", result.Employee.PointsHistory[0].Reason)
}

func TestAddPoints_Accumulates(t *testing.T) {
	app, _, _ := newTestApp(t)

	_, raw := doJSON(t, app, http.MethodPost, "/employees", employeePayload("E001"))
	var created models.Employee
	require.NoError(t, json.Unmarshal(raw, &created))

	path := "/employees/" + created.ID.Hex() + "/add-points"
	total := 0
	for i := 1; i <= 4; i++ {
		resp, _ := doJSON(t, app, http.MethodPatch, path, fiber.Map{
			"points": i,
			"reason": fmt.Sprintf("award %d", i),
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		total += i
	}

	resp, raw := doJSON(t, app, http.MethodGet, "/employees/"+created.ID.Hex(), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got models.Employee
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, total, got.Points)
	require.Len(t, got.PointsHistory, 4)
	for i, entry := range got.PointsHistory {
		assert.Equal(t, i+1, entry.Points)
		assert.Equal(t, fmt.Sprintf("award %d", i+1), entry.Reason)
	}
}

func TestAddPoints_Validation(t *testing.T) {
	app, _, _ := newTestApp(t)

	_, raw := doJSON(t, app, http.MethodPost, "/employees", employeePayload("E001"))
	var created models.Employee
	require.NoError(t, json.Unmarshal(raw, &created))
	path := "/employees/" + created.ID.Hex() + "/add-points"

	tests := []struct {
		name string
		body fiber.Map
		want string
	}{
		{"zero points", fiber.Map{"points": 0, "reason": "x"}, "positive"},
		{"negative points", fiber.Map{"points": -3, "reason": "x"}, "positive"},
		{"missing reason", fiber.Map{"points": 5}, "reason"},
		{"blank reason", fiber.Map{"points": 5, "reason": "   "}, "reason"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, raw := doJSON(t, app, http.MethodPatch, path, tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Contains(t, string(raw), tt.want)
		})
	}

	// nothing was mutated by the rejected awards
	resp, raw := doJSON(t, app, http.MethodGet, "/employees/"+created.ID.Hex(), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got models.Employee
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, 0, got.Points)
	assert.Empty(t, got.PointsHistory)

	resp, _ = doJSON(t, app, http.MethodPatch, "/employees/bad-id/add-points", fiber.Map{"points": 5, "reason": "x"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPatch, "/employees/0123456789abcdef01234567/add-points", fiber.Map{"points": 5, "reason": "x"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUnmatchedRoute(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp, raw := doJSON(t, app, http.MethodGet, "/no/such/route", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, string(raw), "route not found")
}
