package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tournevent/gls/pkg/gls"
	"github.com/tournevent/gls/pkg/gls/label"
	"github.com/tournevent/gls/pkg/gls/unibox"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

type memStore struct {
	mu        sync.Mutex
	shipments map[string]*gls.Shipment
	findErr   error
}

func (m *memStore) FindShipment(ctx context.Context, id string) (*gls.Shipment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findErr != nil {
		return nil, m.findErr
	}
	if s, ok := m.shipments[id]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("%w: %s", gls.ErrShipmentNotFound, id)
}

func (m *memStore) SaveShipment(ctx context.Context, s *gls.Shipment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shipments[s.ID] = s
	return nil
}

func (m *memStore) SavePackage(ctx context.Context, pkg *gls.Package) error { return nil }

func (m *memStore) Attach(ctx context.Context, name string, data []byte, shipmentID string) error {
	return nil
}

var _ gls.Store = (*memStore)(nil)

// One server per test binary: the metrics constructor registers collectors
// in the default Prometheus registry.
var (
	testSrv   *Server
	testStore *memStore
	initOnce  sync.Once
)

func testServer() (*Server, *memStore) {
	initOnce.Do(func() {
		logger := otelzap.New(zap.NewNop())
		testStore = &memStore{shipments: make(map[string]*gls.Shipment)}

		cfg := &gls.CarrierConfig{
			DepotNumber:    "46",
			Contract:       "2760178000",
			CustomerID:     "276a165",
			Location:       "Essen",
			CustomerNumber: "15082",
			Printer:        gls.PrinterZebraZPL200,
		}
		orch := gls.NewOrchestrator(gls.Config{
			Carrier:  cfg,
			Template: label.StandardTemplate,
		}, testStore, unibox.NewMockAPIClient(), label.NewRenderer(label.NewStore()), logger, nil)

		testSrv = New(Config{Port: 0}, testStore, orch, logger)
	})
	return testSrv, testStore
}

func seedShipment(store *memStore, id string, state gls.ShipmentState) *gls.Shipment {
	s := &gls.Shipment{
		ID:            id,
		State:         state,
		CarrierMethod: gls.CarrierMethod,
		ServiceType:   gls.ServiceEuroBusinessParcel,
		DepotNumber:   "46",
		Weight:        2.5,
		DeliveryAddress: gls.Address{
			Name: "Max Mustermann", Zip: "80331", City: "München", CountryCode: "DE",
		},
		WarehouseAddr: gls.Address{
			Name: "Lager Süd", Zip: "45127", City: "Essen", CountryCode: "DE",
		},
		LabelStatus: gls.LabelNotLabeled,
	}
	store.mu.Lock()
	store.shipments[id] = s
	store.mu.Unlock()
	return s
}

func postLabels(t *testing.T, srv *Server, id string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/shipments/"+id+"/labels", nil)
	req.SetPathValue("id", id)
	rec := httptest.NewRecorder()
	srv.handleGenerateLabels(rec, req)
	return rec
}

func TestHandleHealth(t *testing.T) {
	srv, _ := testServer()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.handleHealth(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestHandleGenerateLabels_Success(t *testing.T) {
	srv, store := testServer()
	seedShipment(store, "SHP-OK", gls.StatePacked)

	rec := postLabels(t, srv, "SHP-OK")

	require.Equal(t, http.StatusOK, rec.Code)

	var resp labelResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "SHP-OK", resp.ShipmentID)
	assert.Equal(t, string(gls.LabelLabeled), resp.LabelStatus)
	assert.Len(t, resp.ParcelNumber, gls.ParcelNumberLength)
	assert.NotEmpty(t, resp.TrackingNumber)
}

func TestHandleGenerateLabels_NotFound(t *testing.T) {
	srv, _ := testServer()

	rec := postLabels(t, srv, "SHP-MISSING")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleGenerateLabels_StoreFailure(t *testing.T) {
	srv, store := testServer()
	store.mu.Lock()
	store.findErr = errors.New("connection refused")
	store.mu.Unlock()
	defer func() {
		store.mu.Lock()
		store.findErr = nil
		store.mu.Unlock()
	}()

	rec := postLabels(t, srv, "SHP-ANY")

	assert.Equal(t, http.StatusInternalServerError, rec.Code,
		"storage failures must not read as missing shipments")
}

func TestHandleGenerateLabels_InvalidState(t *testing.T) {
	srv, store := testServer()
	seedShipment(store, "SHP-DRAFT", gls.StateDraft)

	rec := postLabels(t, srv, "SHP-DRAFT")

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, gls.CodeValidation, resp.Code)
}

func TestHandleGenerateLabels_WrongCarrier(t *testing.T) {
	srv, store := testServer()
	s := seedShipment(store, "SHP-UPS", gls.StatePacked)
	s.CarrierMethod = "ups"

	rec := postLabels(t, srv, "SHP-UPS")

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestStatusForCode(t *testing.T) {
	assert.Equal(t, http.StatusUnprocessableEntity, statusForCode(gls.CodeValidation))
	assert.Equal(t, http.StatusConflict, statusForCode(gls.CodeCollision))
	assert.Equal(t, http.StatusBadGateway, statusForCode(gls.CodeTransport))
	assert.Equal(t, http.StatusBadGateway, statusForCode(gls.CodeProtocol))
	assert.Equal(t, http.StatusInternalServerError, statusForCode(gls.CodePersistence))
}
