package services_test

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/BrianNzangi/workit-ecommerce-sub007/services"

	"github.com/stretchr/testify/assert"
)

func signBody(body []byte, secret string) string {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestInitialize_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transaction/initialize", r.URL.Path)
		assert.Equal(t, "Bearer sk_test", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":true,"data":{"authorization_url":"https://pay.example/abc","access_code":"abc","reference":"ref123"}}`))
	}))
	defer srv.Close()

	client := services.NewPaystackClient("sk_test", "whsec", srv.URL, 5*time.Second)
	result, err := client.Initialize(context.Background(), "ORD-AB12CD", 2200, "KES", "jane@example.com")

	assert.NoError(t, err)
	assert.Equal(t, "ref123", result.Reference)
	assert.Equal(t, "https://pay.example/abc", result.AuthorizationURL)
}

func TestInitialize_ProviderRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"status":false,"message":"Invalid amount"}`))
	}))
	defer srv.Close()

	client := services.NewPaystackClient("sk_test", "whsec", srv.URL, 5*time.Second)
	_, err := client.Initialize(context.Background(), "ORD-AB12CD", 0, "KES", "jane@example.com")

	assert.Error(t, err)
}

func TestInitialize_Unreachable(t *testing.T) {
	client := services.NewPaystackClient("sk_test", "whsec", "http://127.0.0.1:1", time.Second)
	_, err := client.Initialize(context.Background(), "ORD-AB12CD", 2200, "KES", "jane@example.com")

	assert.Error(t, err)
}

func TestVerify_ReturnsProviderStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transaction/verify/ref123", r.URL.Path)
		w.Write([]byte(`{"status":true,"data":{"status":"success"}}`))
	}))
	defer srv.Close()

	client := services.NewPaystackClient("sk_test", "whsec", srv.URL, 5*time.Second)
	status, err := client.Verify(context.Background(), "ref123")

	assert.NoError(t, err)
	assert.Equal(t, "success", status)
}

func TestVerifySignature_Valid(t *testing.T) {
	client := services.NewPaystackClient("sk_test", "whsec", "http://unused", time.Second)
	body := []byte(`{"event":"charge.success","data":{"reference":"ref123","status":"success"}}`)

	assert.True(t, client.VerifySignature(body, signBody(body, "whsec")))
}

func TestVerifySignature_WrongSecret(t *testing.T) {
	client := services.NewPaystackClient("sk_test", "whsec", "http://unused", time.Second)
	body := []byte(`{"event":"charge.success","data":{"reference":"ref123","status":"success"}}`)

	assert.False(t, client.VerifySignature(body, signBody(body, "forged-secret")))
}

func TestVerifySignature_TamperedBody(t *testing.T) {
	client := services.NewPaystackClient("sk_test", "whsec", "http://unused", time.Second)
	body := []byte(`{"event":"charge.success","data":{"reference":"ref123","status":"success"}}`)
	sig := signBody(body, "whsec")

	tampered := []byte(`{"event":"charge.success","data":{"reference":"ref999","status":"success"}}`)
	assert.False(t, client.VerifySignature(tampered, sig))
}
