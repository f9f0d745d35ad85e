package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	"github.com/canada-ca/tracker-sub010/config"
	"github.com/canada-ca/tracker-sub010/interfaces"
	"github.com/canada-ca/tracker-sub010/internal/enum"
	"github.com/canada-ca/tracker-sub010/internal/logger"
	"github.com/canada-ca/tracker-sub010/internal/models"
	"github.com/canada-ca/tracker-sub010/internal/tracing"
)

const emailPath = "/v2/notifications/email"

var ErrNotifyRejected = errors.New("notification rejected")

type emailRequest struct {
	EmailAddress    string            `json:"email_address"`
	TemplateID      string            `json:"template_id"`
	Personalisation map[string]string `json:"personalisation"`
}

type notifyService struct {
	cfg        *config.NotifyConfig
	log        logger.Logger
	httpClient *http.Client
	retryDelay time.Duration
}

func NewNotifyService(cfg *config.NotifyConfig, log logger.Logger) interfaces.NotifyService {
	timeout := time.Duration(cfg.RequestTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &notifyService{
		cfg:        cfg,
		log:        log,
		httpClient: &http.Client{Timeout: timeout},
		retryDelay: 500 * time.Millisecond,
	}
}

func template(lang enum.Language, english, french string) string {
	if lang == enum.LanguageFrench && french != "" {
		return french
	}
	return english
}

func (s *notifyService) SendVerificationEmail(ctx context.Context, user *models.User, verifyURL string) error {
	return s.send(ctx, "NotifyService.SendVerificationEmail", user.UserName,
		template(user.PreferredLang, s.cfg.VerificationEmailEn, s.cfg.VerificationEmailFr),
		map[string]string{"user": user.DisplayName, "verify_email_url": verifyURL})
}

func (s *notifyService) SendPasswordResetEmail(ctx context.Context, user *models.User, resetURL string) error {
	return s.send(ctx, "NotifyService.SendPasswordResetEmail", user.UserName,
		template(user.PreferredLang, s.cfg.PasswordResetEn, s.cfg.PasswordResetFr),
		map[string]string{"user": user.DisplayName, "password_reset_url": resetURL})
}

func (s *notifyService) SendAuthenticateEmail(ctx context.Context, user *models.User, code string) error {
	return s.send(ctx, "NotifyService.SendAuthenticateEmail", user.UserName,
		template(user.PreferredLang, s.cfg.AuthenticateEmailEn, s.cfg.AuthenticateEmailFr),
		map[string]string{"user": user.DisplayName, "tfa_code": code})
}

func (s *notifyService) SendOrgInviteEmail(ctx context.Context, user *models.User, orgName string) error {
	return s.send(ctx, "NotifyService.SendOrgInviteEmail", user.UserName,
		template(user.PreferredLang, s.cfg.OrgInviteEn, s.cfg.OrgInviteFr),
		map[string]string{"display_name": user.DisplayName, "organization_name": orgName})
}

func (s *notifyService) SendOrgInviteCreateAccountEmail(ctx context.Context, userName string, lang enum.Language, orgName, createAccountURL string) error {
	return s.send(ctx, "NotifyService.SendOrgInviteCreateAccountEmail", userName,
		template(lang, s.cfg.OrgInviteCreateAccountEn, s.cfg.OrgInviteCreateAccountFr),
		map[string]string{"organization_name": orgName, "create_account_link": createAccountURL})
}

func (s *notifyService) SendInviteRequestEmail(ctx context.Context, admin *models.User, requesterName, orgName, adminURL string) error {
	return s.send(ctx, "NotifyService.SendInviteRequestEmail", admin.UserName,
		template(admin.PreferredLang, s.cfg.OrgInviteRequestEn, s.cfg.OrgInviteRequestFr),
		map[string]string{"display_name": requesterName, "organization_name": orgName, "admin_link": adminURL})
}

// send posts one email to GC Notify. Transport errors and 5xx responses are
// retried, 4xx responses are not.
func (s *notifyService) send(ctx context.Context, operation, emailAddress, templateID string, personalisation map[string]string) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, operation)
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.LogKV("request.templateId", templateID)

	if s.cfg.ApiKey == "" || templateID == "" {
		s.log.Warnf("Notify is not configured, skipping %s", operation)
		return nil
	}

	body, err := json.Marshal(emailRequest{
		EmailAddress:    emailAddress,
		TemplateID:      templateID,
		Personalisation: personalisation,
	})
	if err != nil {
		tracing.TraceErr(span, err)
		return errors.Wrap(err, "marshal notification")
	}

	attempts := s.cfg.RetryAttempts
	if attempts == 0 {
		attempts = 1
	}

	err = retry.Do(
		func() error {
			return s.post(ctx, body)
		},
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(s.retryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			s.log.Warnf("Retrying %s, attempt %d: %v", operation, n+1, err)
		}),
	)
	if err != nil {
		tracing.TraceErr(span, err)
		return err
	}
	return nil
}

func (s *notifyService) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimSuffix(s.cfg.Url, "/")+emailPath, bytes.NewReader(body))
	if err != nil {
		return retry.Unrecoverable(errors.Wrap(err, "create notification request"))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "ApiKey-v1 "+s.cfg.ApiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "send notification")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	responseBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
	err = errors.Wrap(ErrNotifyRejected, fmt.Sprintf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(responseBody))))
	if resp.StatusCode >= 500 {
		return err
	}
	return retry.Unrecoverable(err)
}
