package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"inventory/infra/sqldb"
	"inventory/pkg/auth"
	"inventory/pkg/config"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type testServer struct {
	t   *testing.T
	app *fiber.App
}

func newTestServer(t *testing.T, authRequired bool) *testServer {
	t.Helper()

	repo, err := sqldb.Open(sqldb.DriverSQLite, sqldb.SQLiteDSN(filepath.Join(t.TempDir(), "inventory.db")))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	require.NoError(t, repo.Migrate(context.Background()))

	app := newApp(dependencies{
		repository:    repo,
		authenticator: auth.NewAuthenticator([]string{"user1@example.com", "user2@example.com"}, config.DefaultPasswordHash),
		serviceName:   "inventory",
		authRequired:  authRequired,
	})

	return &testServer{t: t, app: app}
}

func (s *testServer) do(method, path string, body any, headers ...string) *http.Response {
	s.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, ok := body.(string)
		if !ok {
			encoded, err := json.Marshal(body)
			require.NoError(s.t, err)
			raw = string(encoded)
		}
		reader = bytes.NewBufferString(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	resp, err := s.app.Test(req, -1)
	require.NoError(s.t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()

	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func widgetBody() map[string]any {
	return map[string]any{
		"item_name":  "Widget",
		"quantity":   5,
		"date_added": "2024-01-01",
		"price":      9.99,
		"condition":  "new",
	}
}

func TestLogin(t *testing.T) {
	s := newTestServer(t, false)

	resp := s.do(fiber.MethodPost, "/login", map[string]string{"email": "user1@example.com", "password": "inventory-demo"})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Login successful", decode[map[string]any](t, resp)["message"])

	unknown := s.do(fiber.MethodPost, "/login", map[string]string{"email": "nobody@example.com", "password": "inventory-demo"})
	wrong := s.do(fiber.MethodPost, "/login", map[string]string{"email": "user1@example.com", "password": "nope"})

	assert.Equal(t, fiber.StatusUnauthorized, unknown.StatusCode)
	assert.Equal(t, fiber.StatusUnauthorized, wrong.StatusCode)

	unknownBody, _ := io.ReadAll(unknown.Body)
	wrongBody, _ := io.ReadAll(wrong.Body)
	assert.Equal(t, string(unknownBody), string(wrongBody))
	assert.Contains(t, string(wrongBody), `"message":"Invalid credentials"`)
}

func TestCreateThenList(t *testing.T) {
	s := newTestServer(t, false)

	resp := s.do(fiber.MethodPost, "/add_item", widgetBody())
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Item added successfully", decode[map[string]any](t, resp)["message"])

	resp = s.do(fiber.MethodGet, "/get_inventory", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	items := decode[[]map[string]any](t, resp)
	require.Len(t, items, 1)
	assert.Equal(t, map[string]any{
		"id":         float64(1),
		"item_name":  "Widget",
		"quantity":   float64(5),
		"date_added": "2024-01-01",
		"price":      9.99,
		"condition":  "new",
	}, items[0])
}

func TestListEmptyReturnsArray(t *testing.T) {
	s := newTestServer(t, false)

	resp := s.do(fiber.MethodGet, "/get_inventory", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `[]`, string(body))
}

func TestCreateRejectsMalformedInput(t *testing.T) {
	s := newTestServer(t, false)

	missingQuantity := widgetBody()
	delete(missingQuantity, "quantity")

	badDate := widgetBody()
	badDate["date_added"] = "01/01/2024"

	for name, body := range map[string]any{
		"not json":         "{item_name:",
		"missing quantity": missingQuantity,
		"bad date":         badDate,
		"empty object":     map[string]any{},
	} {
		t.Run(name, func(t *testing.T) {
			resp := s.do(fiber.MethodPost, "/add_item", body)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		})
	}

	resp := s.do(fiber.MethodGet, "/get_inventory", nil)
	assert.Empty(t, decode[[]map[string]any](t, resp))
}

func TestUpdate(t *testing.T) {
	s := newTestServer(t, false)
	require.Equal(t, fiber.StatusCreated, s.do(fiber.MethodPost, "/add_item", widgetBody()).StatusCode)

	replacement := map[string]any{
		"item_name":  "Gadget",
		"quantity":   7,
		"date_added": "2024-02-29",
		"price":      12.5,
		"condition":  "used",
	}

	resp := s.do(fiber.MethodPut, "/update_item/1", replacement)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Item updated successfully", decode[map[string]any](t, resp)["message"])

	items := decode[[]map[string]any](t, s.do(fiber.MethodGet, "/get_inventory", nil))
	require.Len(t, items, 1)
	assert.Equal(t, "Gadget", items[0]["item_name"])
	assert.Equal(t, float64(7), items[0]["quantity"])
	assert.Equal(t, "2024-02-29", items[0]["date_added"])
	assert.Equal(t, 12.5, items[0]["price"])
	assert.Equal(t, "used", items[0]["condition"])
	assert.Equal(t, float64(1), items[0]["id"])
}

func TestUpdateMissingItem(t *testing.T) {
	s := newTestServer(t, false)
	require.Equal(t, fiber.StatusCreated, s.do(fiber.MethodPost, "/add_item", widgetBody()).StatusCode)

	resp := s.do(fiber.MethodPut, "/update_item/42", widgetBody())
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Item not found", decode[map[string]any](t, resp)["message"])

	items := decode[[]map[string]any](t, s.do(fiber.MethodGet, "/get_inventory", nil))
	require.Len(t, items, 1)
	assert.Equal(t, "Widget", items[0]["item_name"])
}

func TestUpdateNonPositiveIDIsNotFound(t *testing.T) {
	s := newTestServer(t, false)
	require.Equal(t, fiber.StatusCreated, s.do(fiber.MethodPost, "/add_item", widgetBody()).StatusCode)

	for _, path := range []string{"/update_item/0", "/update_item/-1"} {
		resp := s.do(fiber.MethodPut, path, widgetBody())
		require.Equal(t, fiber.StatusNotFound, resp.StatusCode, path)
		assert.Equal(t, "Item not found", decode[map[string]any](t, resp)["message"])
	}
}

func TestUpdateRequiresFullFieldSet(t *testing.T) {
	s := newTestServer(t, false)
	require.Equal(t, fiber.StatusCreated, s.do(fiber.MethodPost, "/add_item", widgetBody()).StatusCode)

	resp := s.do(fiber.MethodPut, "/update_item/1", map[string]any{"item_name": "Renamed"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	items := decode[[]map[string]any](t, s.do(fiber.MethodGet, "/get_inventory", nil))
	assert.Equal(t, "Widget", items[0]["item_name"])
}

func TestDeleteTwice(t *testing.T) {
	s := newTestServer(t, false)
	require.Equal(t, fiber.StatusCreated, s.do(fiber.MethodPost, "/add_item", widgetBody()).StatusCode)

	resp := s.do(fiber.MethodDelete, "/delete_item/1", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Item deleted successfully", decode[map[string]any](t, resp)["message"])

	assert.Empty(t, decode[[]map[string]any](t, s.do(fiber.MethodGet, "/get_inventory", nil)))

	resp = s.do(fiber.MethodDelete, "/delete_item/1", nil)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Item not found", decode[map[string]any](t, resp)["message"])
}

func TestNonIntegerIDIsNotRouted(t *testing.T) {
	s := newTestServer(t, false)

	resp := s.do(fiber.MethodDelete, "/delete_item/abc", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func exportedRows(t *testing.T, resp *http.Response) [][]string {
	t.Helper()

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), `attachment; filename="inventory.xlsx"`)

	f, err := excelize.OpenReader(resp.Body)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Inventory")
	require.NoError(t, err)
	return rows
}

func TestDownloadInventory(t *testing.T) {
	s := newTestServer(t, false)

	for _, condition := range []string{"new", "used", "new"} {
		body := widgetBody()
		body["condition"] = condition
		require.Equal(t, fiber.StatusCreated, s.do(fiber.MethodPost, "/add_item", body).StatusCode)
	}

	all := exportedRows(t, s.do(fiber.MethodGet, "/download_inventory", nil))
	require.Len(t, all, 4)
	assert.Equal(t, []string{"Item Name", "Quantity", "Date Added", "Price", "Condition"}, all[0])
	assert.Equal(t, []string{"Widget", "5", "2024-01-01", "9.99", "new"}, all[1])

	used := exportedRows(t, s.do(fiber.MethodGet, "/download_inventory?condition=used", nil))
	require.Len(t, used, 2)
	assert.Equal(t, "used", used[1][4])

	none := exportedRows(t, s.do(fiber.MethodGet, "/download_inventory?condition=USED", nil))
	assert.Len(t, none, 1)
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t, false)

	resp := s.do(fiber.MethodGet, "/healthz", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", decode[map[string]any](t, resp)["status"])
}

func TestAuthRequired(t *testing.T) {
	s := newTestServer(t, true)

	resp := s.do(fiber.MethodGet, "/get_inventory", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	credentials := "Basic " + base64.StdEncoding.EncodeToString([]byte("user2@example.com:inventory-demo"))
	resp = s.do(fiber.MethodGet, "/get_inventory", nil, fiber.HeaderAuthorization, credentials)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// login stays reachable without credentials
	resp = s.do(fiber.MethodPost, "/login", map[string]string{"email": "user2@example.com", "password": "inventory-demo"})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestGetItem(t *testing.T) {
	s := newTestServer(t, false)
	require.Equal(t, fiber.StatusCreated, s.do(fiber.MethodPost, "/add_item", widgetBody()).StatusCode)

	resp := s.do(fiber.MethodGet, "/get_item/1", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Widget", decode[map[string]any](t, resp)["item_name"])

	resp = s.do(fiber.MethodGet, "/get_item/2", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestMetrics(t *testing.T) {
	s := newTestServer(t, false)
	s.do(fiber.MethodGet, "/get_inventory", nil)

	resp := s.do(fiber.MethodGet, "/metrics", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), `http_requests_total{method="GET",path="/get_inventory",status="2xx"} 1`)
}
