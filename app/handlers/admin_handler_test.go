package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/amirphl/retail-inventory/app/dto"
	businessflow "github.com/amirphl/retail-inventory/business_flow"
	"github.com/amirphl/retail-inventory/fixtures"
	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAdminApp(fixtureFlow *fakeFixtureFlow, schemaFlow *fakeSchemaFlow) *fiber.App {
	return newTestApp(NewAdminHandler(fixtureFlow, schemaFlow, zap.NewNop(), 0).Routes())
}

func TestAdminHandlerFixtures(t *testing.T) {
	t.Run("Seed", func(t *testing.T) {
		app := newAdminApp(&fakeFixtureFlow{}, &fakeSchemaFlow{})
		resp, body := doRequest(t, app, http.MethodPost, "/api/v1/admin/fixtures/seed", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var report dto.LoadReport
		require.NoError(t, json.Unmarshal(body.Data, &report))
		assert.Equal(t, 117, report.Total)
	})

	t.Run("RandomWithoutBody", func(t *testing.T) {
		flow := &fakeFixtureFlow{}
		app := newAdminApp(flow, &fakeSchemaFlow{})
		resp, _ := doRequest(t, app, http.MethodPost, "/api/v1/admin/fixtures/random", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.NotNil(t, flow.randomReq)
		assert.Nil(t, flow.randomReq.Records)
	})

	t.Run("RandomWithBody", func(t *testing.T) {
		flow := &fakeFixtureFlow{}
		app := newAdminApp(flow, &fakeSchemaFlow{})
		resp, _ := doRequest(t, app, http.MethodPost, "/api/v1/admin/fixtures/random", `{"records": 250, "seed": 9}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.NotNil(t, flow.randomReq.Records)
		assert.Equal(t, 250, *flow.randomReq.Records)
		assert.Equal(t, uint64(9), flow.randomReq.Seed)
	})

	t.Run("RandomOutOfRange", func(t *testing.T) {
		flow := &fakeFixtureFlow{}
		app := newAdminApp(flow, &fakeSchemaFlow{})
		resp, body := doRequest(t, app, http.MethodPost, "/api/v1/admin/fixtures/random", `{"records": 10001}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
		assert.Nil(t, flow.randomReq)
	})

	t.Run("MalformedBody", func(t *testing.T) {
		app := newAdminApp(&fakeFixtureFlow{}, &fakeSchemaFlow{})
		resp, body := doRequest(t, app, http.MethodPost, "/api/v1/admin/fixtures/random", `{"records":`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_REQUEST", body.Error.Code)
	})

	t.Run("ReloadInProgress", func(t *testing.T) {
		flow := &fakeFixtureFlow{err: businessflow.NewBusinessError("RELOAD_IN_PROGRESS", "Another fixture reload is running", businessflow.ErrReloadInProgress)}
		app := newAdminApp(flow, &fakeSchemaFlow{})
		resp, body := doRequest(t, app, http.MethodPost, "/api/v1/admin/fixtures/seed", "")
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.Equal(t, "RELOAD_IN_PROGRESS", body.Error.Code)
	})

	t.Run("InvalidRecordCount", func(t *testing.T) {
		flow := &fakeFixtureFlow{err: businessflow.NewBusinessError("INVALID_RECORD_COUNT", "Record count is out of range", fixtures.ErrInvalidRecordCount)}
		app := newAdminApp(flow, &fakeSchemaFlow{})
		resp, body := doRequest(t, app, http.MethodPost, "/api/v1/admin/fixtures/random", "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_RECORD_COUNT", body.Error.Code)
		assert.NotNil(t, body.Error.Details)
	})
}

func TestAdminHandlerIndexes(t *testing.T) {
	app := newAdminApp(&fakeFixtureFlow{}, &fakeSchemaFlow{})

	resp, body := doRequest(t, app, http.MethodPost, "/api/v1/admin/indexes", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var status dto.IndexStatusResponse
	require.NoError(t, json.Unmarshal(body.Data, &status))
	assert.Equal(t, businessflow.IndexOperationCreate, status.Operation)
	assert.Equal(t, []string{"idx_store_class"}, status.Indexes)

	resp, body = doRequest(t, app, http.MethodDelete, "/api/v1/admin/indexes", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body.Data, &status))
	assert.Equal(t, businessflow.IndexOperationDrop, status.Operation)

	resp, _ = doRequest(t, app, http.MethodGet, "/api/v1/admin/indexes", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAdminHandlerIndexFailure(t *testing.T) {
	err := businessflow.NewBusinessError("INDEX_OPERATION_FAILED", "1 index statements failed during create", businessflow.ErrIndexOperationFailed)
	app := newAdminApp(&fakeFixtureFlow{}, &fakeSchemaFlow{err: err})

	resp, body := doRequest(t, app, http.MethodPost, "/api/v1/admin/indexes", "")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "INDEX_OPERATION_FAILED", body.Error.Code)
}
