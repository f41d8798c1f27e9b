package main

import (
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"tokoadmin/internal/models"
	"tokoadmin/internal/server/servertest"
	"tokoadmin/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

type harness struct {
	f        *servertest.Fixture
	baseArgs []string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	f := servertest.New(t)
	return &harness{
		f: f,
		baseArgs: []string{
			"--config", t.TempDir(),
			"--api", f.Serve(t),
			"-u", servertest.OwnerUsername,
			"-p", servertest.OwnerPassword,
		},
	}
}

func (h *harness) run(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(append(append([]string{}, h.baseArgs...), args...), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func (h *harness) onlyRequestID(t *testing.T) string {
	t.Helper()
	var ids []string
	require.NoError(t, h.f.DB.Model(&models.RestockRequest{}).Pluck("id", &ids).Error)
	require.Len(t, ids, 1)
	return ids[0]
}

func TestCreateListApprove(t *testing.T) {
	h := newHarness(t)

	code, out, errOut := h.run("create", "--outlet", h.f.Outlet.ID, "--item", h.f.DetailID()+":12:karung:stok menipis")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "ok: Restock request created")
	assert.Contains(t, out, "stok menipis")
	id := h.onlyRequestID(t)

	code, out, _ = h.run("list")
	require.Equal(t, 0, code)
	assert.Contains(t, out, id)
	assert.Contains(t, out, "approve,reject")
	assert.Contains(t, out, "[1]  (page 1 of 1)")

	code, out, _ = h.run("approve", id)
	require.Equal(t, 0, code)
	assert.Contains(t, out, "ok: Restock request approved")

	code, out, errOut = h.run("approve", id)
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "already approved")
	assert.Contains(t, errOut, "already approved")

	code, out, _ = h.run("show", id)
	require.Equal(t, 0, code)
	assert.Contains(t, out, "approved")
}

func TestCreateInvalidDraft(t *testing.T) {
	h := newHarness(t)

	code, out, _ := h.run("create", "--outlet", h.f.Outlet.ID, "--item", h.f.DetailID()+":0")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "items[0].requested_stock must be greater than 0")

	var count int64
	require.NoError(t, h.f.DB.Model(&models.RestockRequest{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRejectWithReason(t *testing.T) {
	h := newHarness(t)
	code, _, errOut := h.run("create", "--outlet", h.f.Outlet.ID, "--item", h.f.DetailID()+":4")
	require.Equal(t, 0, code, errOut)
	id := h.onlyRequestID(t)

	code, out, errOut := h.run("reject", id, "--reason", "stok gudang habis")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "Rejection reason:")
	assert.Contains(t, out, "stok gudang habis")
}

func TestExport(t *testing.T) {
	h := newHarness(t)
	code, _, errOut := h.run("create", "--outlet", h.f.Outlet.ID, "--item", h.f.DetailID()+":4", "--item", h.f.DetailID()+":2:kg")
	require.Equal(t, 0, code, errOut)

	path := filepath.Join(t.TempDir(), "restock.xlsx")
	code, out, errOut := h.run("export", "--out", path)
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "exported 1 requests")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestUsageErrors(t *testing.T) {
	h := newHarness(t)

	code, _, _ := h.run()
	assert.Equal(t, 2, code)

	code, _, errOut := h.run("frobnicate")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "unknown command")

	code, _, errOut = h.run("show")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "expected exactly one request id")

	code, _, _ = h.run("--page", "x", "list")
	assert.Equal(t, 2, code)
}

func TestBadLogin(t *testing.T) {
	h := newHarness(t)
	h.baseArgs = append(h.baseArgs, "-p", "wrong")

	code, _, errOut := h.run("list")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "login failed")
}

func TestShowUnknownRequest(t *testing.T) {
	h := newHarness(t)

	code, out, errOut := h.run("show", "00000000-0000-0000-0000-000000000000")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "error: api error 404")
	assert.Contains(t, errOut, "api error 404")
}

func TestProductsAndOutlets(t *testing.T) {
	h := newHarness(t)

	code, out, errOut := h.run("products")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "Beras Premium")
	assert.Contains(t, out, h.f.DetailID())
	assert.Contains(t, out, "(page 1 of 1)")

	code, out, errOut = h.run("outlets")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, h.f.Outlet.ID)
	assert.Contains(t, out, "Outlet Timur")
}

func TestParseItem(t *testing.T) {
	assert.Equal(t, validation.RestockItemDraft{ProductDetailID: "pd-1", RequestedStock: "3"}, parseItem("pd-1:3"))
	assert.Equal(t,
		validation.RestockItemDraft{ProductDetailID: "pd-1", RequestedStock: "3", Unit: "kg", Reason: "a:b"},
		parseItem("pd-1:3:kg:a:b"))
	assert.Equal(t, validation.RestockItemDraft{ProductDetailID: "pd-1"}, parseItem("pd-1"))
}
