package apiclient_test

import (
	"errors"
	"io"
	"log"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"tokoadmin/internal/apiclient"
	"tokoadmin/internal/models"
	"tokoadmin/internal/server/servertest"
	"tokoadmin/internal/validation"
	"tokoadmin/internal/workflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func newClient(t *testing.T) (*apiclient.Client, *servertest.Fixture) {
	t.Helper()
	f := servertest.New(t)
	c := apiclient.New(apiclient.Config{BaseURL: f.Serve(t), AssetURL: "https://cdn.toko.test/storage/", Timeout: 5 * time.Second})
	require.NoError(t, c.Login(servertest.OwnerUsername, servertest.OwnerPassword))
	return c, f
}

func payload(f *servertest.Fixture, qty int) models.CreateRestockPayload {
	return models.CreateRestockPayload{
		OutletID: f.Outlet.ID,
		Items:    []models.CreateRestockItem{{ProductDetailID: f.DetailID(), RequestedStock: qty, Unit: "karung"}},
	}
}

func TestClient_RestockRoundTrip(t *testing.T) {
	c, f := newClient(t)

	page, err := c.ListRestockRequests(1)
	require.NoError(t, err)
	assert.Empty(t, page.Data)
	assert.Equal(t, 1, page.LastPage)

	created, err := c.CreateRestockRequest(payload(f, 7))
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, created.Status)

	got, err := c.GetRestockRequest(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 7, got.Items[0].RequestedStock)

	approved, err := c.ApproveRestockRequest(created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, approved.Status)

	_, err = c.RejectRestockRequest(created.ID, nil)
	var ite *workflow.InvalidTransitionError
	require.True(t, errors.As(err, &ite), "got %v", err)
	assert.Equal(t, models.StatusApproved, ite.From)
	assert.Equal(t, workflow.ActionReject, ite.Action)
	assert.Equal(t, created.ID, ite.RequestID)
}

func TestClient_RejectWithReason(t *testing.T) {
	c, f := newClient(t)
	created, err := c.CreateRestockRequest(payload(f, 2))
	require.NoError(t, err)

	reason := "duplikat"
	rejected, err := c.RejectRestockRequest(created.ID, &reason)
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, rejected.Status)
	require.NotNil(t, rejected.RejectionReason)
	assert.Equal(t, reason, *rejected.RejectionReason)
}

func TestClient_ErrorMapping(t *testing.T) {
	c, f := newClient(t)

	_, err := c.CreateRestockRequest(payload(f, 0))
	var verr *validation.ValidationError
	require.True(t, errors.As(err, &verr), "got %v", err)
	assert.Contains(t, verr.Fields, "items[0].requested_stock")

	_, err = c.GetRestockRequest("missing")
	var apiErr *apiclient.APIError
	require.True(t, errors.As(err, &apiErr), "got %v", err)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)

	c.SetToken("")
	_, err = c.ListRestockRequests(1)
	require.True(t, errors.As(err, &apiErr), "got %v", err)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)

	assert.Error(t, c.Login(servertest.OwnerUsername, "wrong"))
}

func TestClient_Catalog(t *testing.T) {
	c, f := newClient(t)

	products, err := c.ListProducts(1)
	require.NoError(t, err)
	require.Len(t, products.Data, 1)
	assert.Equal(t, f.Product.Name, products.Data[0].Name)

	warehouses, err := c.ListWarehouses()
	require.NoError(t, err)
	assert.Len(t, warehouses, 2)
}

func TestClient_NetworkErrors(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	c := apiclient.New(apiclient.Config{BaseURL: "http://" + addr + "/api/v1", Timeout: time.Second})
	_, err = c.ListRestockRequests(1)
	var netErr *apiclient.NetworkError
	require.True(t, errors.As(err, &netErr), "got %v", err)
	assert.Zero(t, netErr.StatusCode)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"database unavailable"}`, http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c = apiclient.New(apiclient.Config{BaseURL: srv.URL, Timeout: time.Second})
	_, err = c.ListRestockRequests(1)
	require.True(t, errors.As(err, &netErr), "got %v", err)
	assert.Equal(t, http.StatusServiceUnavailable, netErr.StatusCode)
	assert.Contains(t, err.Error(), "database unavailable")
}

func TestClient_AssetURL(t *testing.T) {
	c := apiclient.New(apiclient.Config{AssetURL: "https://cdn.toko.test/storage/"})

	assert.Equal(t, "https://cdn.toko.test/storage/products/beras.png", c.AssetURL("/products/beras.png"))
	assert.Equal(t, "https://cdn.toko.test/storage/a.png", c.AssetURL("a.png"))
	assert.Equal(t, "https://other.test/x.png", c.AssetURL("https://other.test/x.png"))
	assert.Equal(t, "", c.AssetURL(""))
}
