package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHandleServices_ListsCategories(t *testing.T) {
	handler := newTestHandler(fixedPrice(0))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/services", nil)
	handler.HandleServices(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response map[string][]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))

	categories := response["categories"]
	require.True(t, sort.StringsAreSorted(categories))
	require.Contains(t, categories, "Compute")
	require.Contains(t, categories, "Storage")
	require.Contains(t, categories, "Databases")
}

func TestHandleServices_ListsCategoryServices(t *testing.T) {
	handler := newTestHandler(fixedPrice(0))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/services?category=Storage", nil)
	handler.HandleServices(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Category string   `json:"category"`
		Services []string `json:"services"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))

	require.Equal(t, "Storage", response.Category)
	require.True(t, sort.StringsAreSorted(response.Services))
	require.Contains(t, response.Services, "Object Storage")
	require.Contains(t, response.Services, "Content Delivery (CDN)")
	require.Len(t, response.Services, 5)
}

func TestHandleServices_UnknownCategory(t *testing.T) {
	handler := newTestHandler(fixedPrice(0))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/services?category=Quantum", nil)
	handler.HandleServices(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	require.Contains(t, response["error"], "Quantum")
}

func TestHandleServices_MethodNotAllowed(t *testing.T) {
	handler := newTestHandler(fixedPrice(0))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/services", nil)
	handler.HandleServices(w, req)

	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
