package http_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/diversicloud/cloudcompare/internal/domain"
)

// lambdaPriceSource serves catalog-shaped rates: requests are quoted per
// million, duration per 1000 GB-seconds.
func lambdaPriceSource(t *testing.T, requestRate, durationRate float64) *fakePriceSource {
	return &fakePriceSource{fn: func(serviceCode string, filters []domain.Filter) (float64, error) {
		require.Equal(t, "AWSLambda", serviceCode)
		switch filterValue(filters, "group") {
		case "AWS-Lambda-Requests":
			return requestRate, nil
		case "AWS-Lambda-Duration":
			return durationRate, nil
		default:
			t.Errorf("unexpected filter group %q", filterValue(filters, "group"))
			return 0, nil
		}
	}}
}

func TestHandleServerlessPricing(t *testing.T) {
	// 0.20 per million requests, 0.0166667 per 1000 GB-seconds.
	handler := newTestHandler(lambdaPriceSource(t, 0.20, 0.0166667))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/api/serverless-pricing?memorySize=128&executionTime=100", nil)
	handler.HandleServerlessPricing(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	envelope := decodeEnvelope(t, w)
	require.Empty(t, envelope.Error)

	// 128 MB for 100 ms = 0.0125 GB-seconds per invocation.
	requestPrice := 0.20 / 1e6
	computePrice := 0.0166667 / 1000
	expectedAWS := (0.0125*computePrice + requestPrice) * 1e6
	require.InDelta(t, expectedAWS, envelope.AWS.Price, 1e-9)
	require.Equal(t, "million invocations", envelope.AWS.Unit)
	require.Equal(t, "Lambda", envelope.AWS.Details["Service"])
	require.Equal(t, "128 MB", envelope.AWS.Details["Memory"])
	require.Equal(t, "100 ms", envelope.AWS.Details["Duration"])
	require.Contains(t, envelope.AWS.Details["Free Tier"], "400,000 GB-seconds")

	expectedAzure := (0.0125*computePrice*0.9 + requestPrice*0.8) * 1e6
	require.InDelta(t, expectedAzure, envelope.Azure.Price, 1e-9)
	require.Equal(t, "Functions", envelope.Azure.Details["Service"])

	expectedGCP := (0.0125*computePrice*0.85 + requestPrice*1.5) * 1e6
	require.InDelta(t, expectedGCP, envelope.GCP.Price, 1e-9)
	require.Equal(t, "Cloud Functions", envelope.GCP.Details["Service"])
}

func TestHandleServerlessPricing_FallbacksOnLookupFailure(t *testing.T) {
	handler := newTestHandler(failingPrice(errors.New("throttled")))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/serverless-pricing", nil)
	handler.HandleServerlessPricing(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	envelope := decodeEnvelope(t, w)
	require.Empty(t, envelope.Error)

	// Fallbacks are already normalized: no catalog division applies.
	expectedAWS := (0.0125*0.0000166667 + 0.20/1e6) * 1e6
	require.InDelta(t, expectedAWS, envelope.AWS.Price, 1e-9)
}

func TestHandleServerlessPricing_LargerWorkload(t *testing.T) {
	handler := newTestHandler(lambdaPriceSource(t, 0.20, 0.0166667))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/api/serverless-pricing?memorySize=1024&executionTime=500", nil)
	handler.HandleServerlessPricing(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	envelope := decodeEnvelope(t, w)
	// 1 GB for 500 ms = 0.5 GB-seconds per invocation.
	expectedAWS := (0.5*(0.0166667/1000) + 0.20/1e6) * 1e6
	require.InDelta(t, expectedAWS, envelope.AWS.Price, 1e-9)
	require.Equal(t, "1024 MB", envelope.AWS.Details["Memory"])
	require.Equal(t, "500 ms", envelope.AWS.Details["Duration"])
}

func TestHandleServerlessPricing_InvalidParams(t *testing.T) {
	handler := newTestHandler(fixedPrice(0.20))

	for _, query := range []string{"memorySize=zero", "memorySize=-128", "executionTime=abc", "executionTime=0"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/serverless-pricing?"+query, nil)
		handler.HandleServerlessPricing(w, req)

		require.Equal(t, http.StatusBadRequest, w.Code, "query %s", query)
		require.NotEmpty(t, decodeEnvelope(t, w).Error)
	}
}
