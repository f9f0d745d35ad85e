package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canada-ca/tracker-sub010/config"
	"github.com/canada-ca/tracker-sub010/internal/enum"
	"github.com/canada-ca/tracker-sub010/internal/logger"
	"github.com/canada-ca/tracker-sub010/internal/models"
)

func newTestNotifyService(url string) *notifyService {
	service := NewNotifyService(&config.NotifyConfig{
		Url:                 url,
		ApiKey:              "test-key",
		VerificationEmailEn: "verify-en",
		VerificationEmailFr: "verify-fr",
		AuthenticateEmailEn: "tfa-en",
		RetryAttempts:       3,
	}, logger.NewNopLogger()).(*notifyService)
	service.retryDelay = time.Millisecond
	return service
}

func TestSendVerificationEmail(t *testing.T) {
	var received emailRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/notifications/email", r.URL.Path)
		assert.Equal(t, "ApiKey-v1 test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	service := newTestNotifyService(server.URL)
	user := &models.User{UserName: "jane@canada.ca", DisplayName: "Jane", PreferredLang: enum.LanguageFrench}

	err := service.SendVerificationEmail(context.Background(), user, "https://tracker.test/validate/token")
	require.NoError(t, err)
	assert.Equal(t, "jane@canada.ca", received.EmailAddress)
	assert.Equal(t, "verify-fr", received.TemplateID)
	assert.Equal(t, "https://tracker.test/validate/token", received.Personalisation["verify_email_url"])
}

func TestSend_RetriesServerErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	service := newTestNotifyService(server.URL)
	user := &models.User{UserName: "jane@canada.ca", PreferredLang: enum.LanguageEnglish}

	require.NoError(t, service.SendAuthenticateEmail(context.Background(), user, "123456"))
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestSend_DoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"errors":[{"error":"BadRequestError"}]}`))
	}))
	defer server.Close()

	service := newTestNotifyService(server.URL)
	user := &models.User{UserName: "jane@canada.ca"}

	err := service.SendAuthenticateEmail(context.Background(), user, "123456")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotifyRejected)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestSend_SkipsWhenNotConfigured(t *testing.T) {
	service := NewNotifyService(&config.NotifyConfig{}, logger.NewNopLogger())

	err := service.SendPasswordResetEmail(context.Background(), &models.User{UserName: "jane@canada.ca"}, "https://tracker.test/reset")
	assert.NoError(t, err)
}
