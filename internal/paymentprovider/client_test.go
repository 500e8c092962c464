package paymentprovider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePreference(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/checkout/preferences", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		var req CreatePreferenceRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "user_abc_plan_2", req.ExternalReference)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(CreatePreferenceResponse{
			ID:        "pref-1",
			InitPoint: "https://checkout.example.com/pref-1",
		})
	}))
	defer srv.Close()

	client := NewClient("test-token", srv.URL)
	resp, err := client.CreatePreference(context.Background(), CreatePreferenceRequest{
		Items:             []PreferenceItem{{Title: "Plan Premium Mensual", Quantity: 1, UnitPrice: 3500, CurrencyID: "ARS"}},
		ExternalReference: "user_abc_plan_2",
	})
	require.NoError(t, err)
	assert.Equal(t, "pref-1", resp.ID)
	assert.Equal(t, "https://checkout.example.com/pref-1", resp.InitPoint)
}

func TestGetPayment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/payments/12345", r.URL.Path)
		_ = json.NewEncoder(w).Encode(Payment{
			ID:                12345,
			Status:            PaymentStatusApproved,
			ExternalReference: "user_abc_plan_2",
			TransactionAmount: 3500,
		})
	}))
	defer srv.Close()

	client := NewClient("test-token", srv.URL)
	payment, err := client.GetPayment(context.Background(), "12345")
	require.NoError(t, err)
	assert.Equal(t, PaymentStatusApproved, payment.Status)
	assert.Equal(t, "user_abc_plan_2", payment.ExternalReference)
}

func TestGetPayment_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient("test-token", srv.URL)
	_, err := client.GetPayment(context.Background(), "12345")
	assert.ErrorIs(t, err, ErrExternalService)
}
