package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/diversicloud/cloudcompare/internal/domain"
	internalhttp "github.com/diversicloud/cloudcompare/internal/http"
)

// fakePriceSource dispatches on service code and filters, so tests can serve
// different rates to the concurrent queries a handler issues.
type fakePriceSource struct {
	fn    func(serviceCode string, filters []domain.Filter) (float64, error)
	calls atomic.Int64
}

func (f *fakePriceSource) UnitPrice(
	_ context.Context,
	serviceCode string,
	filters []domain.Filter,
	_ int32,
) (float64, error) {
	f.calls.Add(1)
	return f.fn(serviceCode, filters)
}

func fixedPrice(price float64) *fakePriceSource {
	return &fakePriceSource{fn: func(string, []domain.Filter) (float64, error) {
		return price, nil
	}}
}

func failingPrice(err error) *fakePriceSource {
	return &fakePriceSource{fn: func(string, []domain.Filter) (float64, error) {
		return 0, err
	}}
}

func filterValue(filters []domain.Filter, field string) string {
	for _, f := range filters {
		if f.Field == field {
			return f.Value
		}
	}
	return ""
}

type fakeCatalog struct {
	entry *domain.InstanceCatalogEntry
	err   error
}

func (f *fakeCatalog) ListInstances(context.Context, string) (*domain.InstanceCatalogEntry, error) {
	return f.entry, f.err
}

type fakeChat struct {
	completion string
	err        error
	calls      atomic.Int64
	gotReq     *domain.ChatRequest
}

func (f *fakeChat) Complete(_ context.Context, req *domain.ChatRequest) (string, error) {
	f.calls.Add(1)
	f.gotReq = req
	return f.completion, f.err
}

func (f *fakeChat) Name() string { return "fake" }

func newTestHandler(prices domain.PriceSource) *internalhttp.Handler {
	return internalhttp.NewHandler(prices, &fakeCatalog{}, &fakeChat{})
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) domain.PricingEnvelope {
	t.Helper()
	var envelope domain.PricingEnvelope
	require.NoError(t, json.NewDecoder(w.Body).Decode(&envelope))
	return envelope
}

func TestHandlePricing_MissingParams(t *testing.T) {
	handler := newTestHandler(fixedPrice(0.0104))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/pricing?category=Compute", nil)
	handler.HandlePricing(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	envelope := decodeEnvelope(t, w)
	require.NotEmpty(t, envelope.Error)
	require.Nil(t, envelope.AWS)
	require.Nil(t, envelope.Azure)
	require.Nil(t, envelope.GCP)
}

func TestHandlePricing_UnknownService(t *testing.T) {
	handler := newTestHandler(fixedPrice(0.0104))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/pricing?category=Compute&service=Mainframes", nil)
	handler.HandlePricing(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.NotEmpty(t, decodeEnvelope(t, w).Error)
}

func TestHandlePricing_VirtualMachines(t *testing.T) {
	source := &fakePriceSource{fn: func(serviceCode string, filters []domain.Filter) (float64, error) {
		require.Equal(t, "AmazonEC2", serviceCode)
		require.Equal(t, "t3.micro", filterValue(filters, "instanceType"))
		require.Equal(t, "US East (N. Virginia)", filterValue(filters, "location"))
		require.Equal(t, "Linux", filterValue(filters, "operatingSystem"))
		require.Equal(t, "Shared", filterValue(filters, "tenancy"))
		return 0.0104, nil
	}}
	handler := newTestHandler(source)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/api/pricing?category=Compute&service=Virtual+Machines&region=us-east-1", nil)
	handler.HandlePricing(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	envelope := decodeEnvelope(t, w)
	require.Empty(t, envelope.Error)
	require.InDelta(t, 0.0104, envelope.AWS.Price, 1e-9)
	require.InDelta(t, 0.0104*0.98, envelope.Azure.Price, 1e-9) // t3 family factor
	require.InDelta(t, 0.0104*0.96, envelope.GCP.Price, 1e-9)
	require.Equal(t, "hour", envelope.AWS.Unit)
	require.Equal(t, "EC2", envelope.AWS.Details["Service"])
	require.Equal(t, "US East (N. Virginia)", envelope.AWS.Details["Region"])
	require.Equal(t, "East US", envelope.Azure.Details["Region"])
	require.Equal(t, "$7.59", envelope.AWS.Details["Monthly Cost"])
}

func TestHandlePricing_UnknownFamilyIsNeutral(t *testing.T) {
	handler := newTestHandler(fixedPrice(0.5))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/api/pricing?category=Compute&service=Virtual+Machines&instanceType=z9.mega", nil)
	handler.HandlePricing(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	envelope := decodeEnvelope(t, w)
	require.InDelta(t, 0.5, envelope.AWS.Price, 1e-9)
	require.InDelta(t, 0.5, envelope.Azure.Price, 1e-9)
	require.InDelta(t, 0.5, envelope.GCP.Price, 1e-9)
}

func TestHandlePricing_FallbackOnLookupFailure(t *testing.T) {
	handler := newTestHandler(failingPrice(errors.New("throttled")))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/api/pricing?category=Compute&service=Virtual+Machines", nil)
	handler.HandlePricing(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	envelope := decodeEnvelope(t, w)
	require.Empty(t, envelope.Error)
	require.InDelta(t, 0.0116, envelope.AWS.Price, 1e-9)
}

func TestHandlePricing_NonVMServiceEstimate(t *testing.T) {
	source := fixedPrice(0.0104)
	handler := newTestHandler(source)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/api/pricing?category=Networking&service=Load+Balancer", nil)
	handler.HandlePricing(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Zero(t, source.calls.Load(), "non-VM services must not query upstream")

	envelope := decodeEnvelope(t, w)
	require.InDelta(t, 0.05, envelope.AWS.Price, 1e-9)
	require.InDelta(t, 0.048, envelope.Azure.Price, 1e-9)
	require.InDelta(t, 0.052, envelope.GCP.Price, 1e-9)
	require.Equal(t, "ELB", envelope.AWS.Details["Service"])
	require.Equal(t, "Estimated price", envelope.AWS.Details["Note"])
}

func TestHandlePricing_MethodNotAllowed(t *testing.T) {
	handler := newTestHandler(fixedPrice(0.0104))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/pricing", nil)
	handler.HandlePricing(w, req)

	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestHandleInstances(t *testing.T) {
	entry := &domain.InstanceCatalogEntry{
		Items: []string{"m5.large", "t3.micro"},
		Details: map[string]domain.InstanceDetail{
			"t3.micro": {VCPUs: 2, MemoryMiB: 1024, Network: "Up to 5 Gigabit"},
			"m5.large": {VCPUs: 2, MemoryMiB: 8192, Network: "Up to 10 Gigabit"},
		},
	}
	handler := internalhttp.NewHandler(fixedPrice(0), &fakeCatalog{entry: entry}, &fakeChat{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/instances?region=us-east-1", nil)
	handler.HandleInstances(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var got domain.InstanceCatalogEntry
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	require.Equal(t, entry.Items, got.Items)
	require.Equal(t, 2, got.Details["t3.micro"].VCPUs)
}

func TestHandleInstances_CatalogError(t *testing.T) {
	handler := internalhttp.NewHandler(
		fixedPrice(0),
		&fakeCatalog{err: errors.New("describe failed")},
		&fakeChat{},
	)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/instances", nil)
	handler.HandleInstances(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)

	var response map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	require.Contains(t, response["error"], "describe failed")
}

func TestHandleHealth(t *testing.T) {
	handler := newTestHandler(fixedPrice(0))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	handler.HandleHealth(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var response map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	require.Equal(t, "healthy", response["status"])
}
