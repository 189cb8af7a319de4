package stripe

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePaymentIntent_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer sk_test_123" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/payment_intents", r.URL.Path)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "20000", r.PostForm.Get("amount"))
		assert.Equal(t, "usd", r.PostForm.Get("currency"))
		assert.Equal(t, []string{"card"}, r.PostForm["payment_method_types[]"])
		assert.Equal(t, "b-1", r.PostForm.Get("metadata[booking_id]"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(PaymentIntent{
			ID:           "pi_1",
			Object:       "payment_intent",
			Amount:       20000,
			Currency:     "usd",
			ClientSecret: "pi_1_secret_abc",
			Status:       "requires_payment_method",
		})
	}))
	defer ts.Close()

	client := NewClient(Config{APIURL: ts.URL, SecretKey: "sk_test_123"})

	intent, err := client.CreatePaymentIntent(context.Background(), PaymentIntentParams{
		Amount:             20000,
		PaymentMethodTypes: []string{"card"},
		Metadata:           map[string]string{"booking_id": "b-1"},
	})

	require.NoError(t, err)
	assert.Equal(t, "pi_1_secret_abc", intent.ClientSecret)
	assert.Equal(t, int64(20000), intent.Amount)
}

func TestCreatePaymentIntent_NoDeduplication(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&calls, 1)
		json.NewEncoder(w).Encode(PaymentIntent{ClientSecret: "secret_" + string(rune('0'+n))})
	}))
	defer ts.Close()

	client := NewClient(Config{APIURL: ts.URL})
	params := PaymentIntentParams{Amount: 100, PaymentMethodTypes: []string{"card"}}

	first, err := client.CreatePaymentIntent(context.Background(), params)
	require.NoError(t, err)
	second, err := client.CreatePaymentIntent(context.Background(), params)
	require.NoError(t, err)

	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	assert.NotEqual(t, first.ClientSecret, second.ClientSecret)
}

func TestCreatePaymentIntent_APIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"type":"invalid_request_error","code":"amount_too_small","message":"Amount must be at least $0.50 usd"}}`))
	}))
	defer ts.Close()

	client := NewClient(Config{APIURL: ts.URL})

	_, err := client.CreatePaymentIntent(context.Background(), PaymentIntentParams{Amount: 1})
	require.Error(t, err)

	var apiErr *ErrorResponse
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "amount_too_small", apiErr.Err.Code)
	assert.Contains(t, err.Error(), "failed to create payment intent")
}

func TestCreatePaymentIntent_UnexpectedStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`upstream down`))
	}))
	defer ts.Close()

	client := NewClient(Config{APIURL: ts.URL})

	_, err := client.CreatePaymentIntent(context.Background(), PaymentIntentParams{Amount: 100})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status code: 502")
}

func TestCreatePaymentIntent_BrotliBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "br", r.Header.Get("Accept-Encoding"))
		w.Header().Set("Content-Encoding", "br")
		bw := brotli.NewWriter(w)
		json.NewEncoder(bw).Encode(PaymentIntent{ID: "pi_br", ClientSecret: "pi_br_secret"})
		bw.Close()
	}))
	defer ts.Close()

	client := NewClient(Config{APIURL: ts.URL})

	intent, err := client.CreatePaymentIntent(context.Background(), PaymentIntentParams{Amount: 100})
	require.NoError(t, err)
	assert.Equal(t, "pi_br_secret", intent.ClientSecret)
}

func TestCreatePaymentIntent_InvalidJSON(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`invalid-json`))
	}))
	defer ts.Close()

	client := NewClient(Config{APIURL: ts.URL})

	_, err := client.CreatePaymentIntent(context.Background(), PaymentIntentParams{Amount: 100})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid character")
}
