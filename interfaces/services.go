package interfaces

import (
	"context"
	"time"

	"github.com/canada-ca/tracker-sub010/dto"
	"github.com/canada-ca/tracker-sub010/internal/enum"
	"github.com/canada-ca/tracker-sub010/internal/models"
	"github.com/canada-ca/tracker-sub010/internal/pagination"
)

// ConnectionArgs are the arguments shared by every connection field.
type ConnectionArgs struct {
	pagination.Args
	Search string
	Order  Order
}

type PermissionService interface {
	UserRequired(ctx context.Context) (*models.User, error)
	VerifiedRequired(ctx context.Context, user *models.User) error
	TfaRequired(ctx context.Context, user *models.User) error
	CheckPermission(ctx context.Context, orgID string) (enum.Role, error)
	CheckDomainPermission(ctx context.Context, domainID string) (bool, error)
	CheckSuperAdmin(ctx context.Context) (bool, error)
	SuperAdminRequired(ctx context.Context) error
	CheckUserIsAdminForUser(ctx context.Context, userName string) (bool, error)
	CheckOrgOwner(ctx context.Context, orgID string) (bool, error)
	CheckDomainOwnership(ctx context.Context, domainID string) (bool, error)
}

type AuthService interface {
	SignUp(ctx context.Context, input dto.SignUpInput) (*dto.AuthResult, error)
	SignIn(ctx context.Context, userName, password string, rememberMe bool) (*dto.SignInResult, error)
	Authenticate(ctx context.Context, authenticateToken, code string) (*dto.AuthResult, error)
	RefreshTokens(ctx context.Context) (*dto.AuthResult, error)
	SignOut(ctx context.Context) string
	SendEmailVerification(ctx context.Context, userName string) string
	VerifyAccount(ctx context.Context, verifyToken string) (string, error)
	SendPasswordResetLink(ctx context.Context, userName string) string
	ResetPassword(ctx context.Context, resetToken, password, confirmPassword string) (string, error)
	UserIDFromAuthToken(token string) (string, error)
}

type UserService interface {
	FindMe(ctx context.Context) (*models.User, error)
	UpdateUserProfile(ctx context.Context, input dto.UpdateUserProfileInput) (*models.User, error)
	UpdateUserPassword(ctx context.Context, currentPassword, password, confirmPassword string) (string, error)
	CloseAccount(ctx context.Context, userID *string) (string, error)
	IsUserAdmin(ctx context.Context, orgID *string) (bool, error)
	IsUserSuperAdmin(ctx context.Context) (bool, error)
}

type OrganizationService interface {
	FindMyOrganizations(ctx context.Context, args ConnectionArgs, isAdmin, includeSuperAdminOrg bool) (pagination.Page[*models.Organization], error)
	FindOrganizationBySlug(ctx context.Context, slug string) (*models.Organization, error)
	CreateOrganization(ctx context.Context, input dto.OrganizationInput) (*models.Organization, error)
	UpdateOrganization(ctx context.Context, orgID string, input dto.OrganizationInput) (*models.Organization, error)
	RemoveOrganization(ctx context.Context, orgID string) (string, error)
	VerifyOrganization(ctx context.Context, orgID string) (string, error)
	DomainCount(ctx context.Context, orgID string) (int64, error)
}

type DomainService interface {
	FindMyDomains(ctx context.Context, args ConnectionArgs) (pagination.Page[*models.Domain], error)
	FindDomainsForOrganization(ctx context.Context, orgID string, args ConnectionArgs) (pagination.Page[*models.Domain], error)
	FindDomainByDomain(ctx context.Context, domain string) (*models.Domain, error)
	CreateDomain(ctx context.Context, orgID, domain string, selectors []string) (*models.Domain, error)
	UpdateDomain(ctx context.Context, domainID, orgID string, domain *string, selectors []string) (*models.Domain, error)
	RemoveDomain(ctx context.Context, domainID, orgID string) (string, error)
	FindScans(ctx context.Context, domainID string, scanType enum.ScanType, args pagination.Args, startDate, endDate *time.Time) (pagination.Page[*models.Scan], error)
}

type AffiliationService interface {
	FindAffiliationsForOrganization(ctx context.Context, orgID string, args ConnectionArgs, includePending bool) (pagination.Page[*models.Affiliation], error)
	FindAffiliationsForUser(ctx context.Context, userID string, args ConnectionArgs) (pagination.Page[*models.Affiliation], error)
	InviteUserToOrg(ctx context.Context, userName, orgID string, role enum.Role) (string, error)
	UpdateUserRole(ctx context.Context, userName, orgID string, role enum.Role) (string, error)
	RemoveUserFromOrg(ctx context.Context, userID, orgID string) (string, error)
	RequestOrgAffiliation(ctx context.Context, orgID string) (string, error)
	LeaveOrganization(ctx context.Context, orgID string) (string, error)
}

type SummaryService interface {
	GetChartSummary(ctx context.Context, kind enum.SummaryKind) (*models.Summary, error)
	RefreshSummaries(ctx context.Context) error
}

type ScanService interface {
	RequestScan(ctx context.Context, domain string) (string, error)
	ProcessScanResult(ctx context.Context, result dto.ScanCompleted) error
}

type DmarcSummaryService interface {
	FindMyDmarcSummaries(ctx context.Context, month, year int, args ConnectionArgs) (pagination.Page[*models.DmarcSummary], error)
	DmarcSummaryByPeriod(ctx context.Context, domainID string, month, year int) (*models.DmarcSummary, error)
	YearlyDmarcSummaries(ctx context.Context, domainID string) ([]*models.DmarcSummary, error)
	Ingest(ctx context.Context, input dto.DmarcSummaryInput) error
}

type AuditLogService interface {
	FindAuditLogs(ctx context.Context, orgID *string, args ConnectionArgs, filter AuditLogFilter) (pagination.Page[*models.AuditLog], error)
	Record(ctx context.Context, entry *models.AuditLog)
}

type NotifyService interface {
	SendVerificationEmail(ctx context.Context, user *models.User, verifyURL string) error
	SendPasswordResetEmail(ctx context.Context, user *models.User, resetURL string) error
	SendAuthenticateEmail(ctx context.Context, user *models.User, code string) error
	SendOrgInviteEmail(ctx context.Context, user *models.User, orgName string) error
	SendOrgInviteCreateAccountEmail(ctx context.Context, userName string, lang enum.Language, orgName, createAccountURL string) error
	SendInviteRequestEmail(ctx context.Context, admin *models.User, requesterName, orgName, adminURL string) error
}

type ScanPublisher interface {
	PublishScanRequest(ctx context.Context, request dto.ScanRequested) error
}
