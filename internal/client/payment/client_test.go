package payment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/cartsync-service/internal/app/cart/domain"
)

func testConfig(registerURL string) Config {
	return Config{
		RegisterURL: registerURL,
		Username:    "merchant",
		Password:    "secret",
		Currency:    "788",
		ReturnURL:   "https://shop.example/payment/success",
		FailURL:     "https://shop.example/payment/fail",
	}
}

func TestClient_Register(t *testing.T) {
	amount, err := domain.NewMoney(4550, 100)
	require.NoError(t, err)

	t.Run("submits form fields and returns the session", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "merchant", r.PostFormValue("userName"))
			assert.Equal(t, "ord-1", r.PostFormValue("orderNumber"))
			assert.Equal(t, "4550", r.PostFormValue("amount"))
			assert.Equal(t, "788", r.PostFormValue("currency"))
			w.Write([]byte(`{"orderId":"gw-9","formUrl":"https://gateway.example/pay/gw-9"}`))
		}))
		defer server.Close()

		client := NewClient(testConfig(server.URL))
		session, err := client.Register(context.Background(), "ord-1", amount)
		require.NoError(t, err)
		assert.Equal(t, "gw-9", session.OrderID)
		assert.Equal(t, "https://gateway.example/pay/gw-9", session.FormURL)
	})

	t.Run("missing form url is a rejection", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"orderId":"gw-9"}`))
		}))
		defer server.Close()

		client := NewClient(testConfig(server.URL))
		_, err := client.Register(context.Background(), "ord-1", amount)
		assert.ErrorIs(t, err, ErrRegistrationRejected)
	})

	t.Run("gateway error code is a rejection", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"errorCode":"5","errorMessage":"access denied"}`))
		}))
		defer server.Close()

		client := NewClient(testConfig(server.URL))
		_, err := client.Register(context.Background(), "ord-1", amount)
		assert.ErrorIs(t, err, ErrRegistrationRejected)
		assert.Contains(t, err.Error(), "access denied")
	})

	t.Run("zero amount is rejected locally", func(t *testing.T) {
		client := NewClient(testConfig("http://gateway.invalid"))
		_, err := client.Register(context.Background(), "ord-1", domain.ZeroMoney())
		assert.Error(t, err)
	})

	t.Run("empty order number is rejected locally", func(t *testing.T) {
		client := NewClient(testConfig("http://gateway.invalid"))
		_, err := client.Register(context.Background(), "", amount)
		assert.Error(t, err)
	})

	t.Run("non-200 status is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		client := NewClient(testConfig(server.URL))
		_, err := client.Register(context.Background(), "ord-1", amount)
		assert.Error(t, err)
	})
}
