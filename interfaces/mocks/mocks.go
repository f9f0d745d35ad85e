// Package mocks holds testify mocks of the repository and service interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/canada-ca/tracker-sub010/dto"
	"github.com/canada-ca/tracker-sub010/interfaces"
	"github.com/canada-ca/tracker-sub010/internal/enum"
	"github.com/canada-ca/tracker-sub010/internal/models"
	"github.com/canada-ca/tracker-sub010/internal/pagination"
)

type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Create(ctx context.Context, user *models.User) error {
	ret := m.Called(ctx, user)
	return ret.Error(0)
}

func (m *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	ret := m.Called(ctx, id)
	var r0 *models.User
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.User)
	}
	return r0, ret.Error(1)
}

func (m *UserRepository) GetByIDs(ctx context.Context, ids []string) ([]*models.User, error) {
	ret := m.Called(ctx, ids)
	var r0 []*models.User
	if v := ret.Get(0); v != nil {
		r0 = v.([]*models.User)
	}
	return r0, ret.Error(1)
}

func (m *UserRepository) GetByUserName(ctx context.Context, userName string) (*models.User, error) {
	ret := m.Called(ctx, userName)
	var r0 *models.User
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.User)
	}
	return r0, ret.Error(1)
}

func (m *UserRepository) Save(ctx context.Context, user *models.User) error {
	ret := m.Called(ctx, user)
	return ret.Error(0)
}

func (m *UserRepository) Delete(ctx context.Context, id string) error {
	ret := m.Called(ctx, id)
	return ret.Error(0)
}

type OrganizationRepository struct {
	mock.Mock
}

func (m *OrganizationRepository) Create(ctx context.Context, org *models.Organization) error {
	ret := m.Called(ctx, org)
	return ret.Error(0)
}

func (m *OrganizationRepository) GetByID(ctx context.Context, id string) (*models.Organization, error) {
	ret := m.Called(ctx, id)
	var r0 *models.Organization
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.Organization)
	}
	return r0, ret.Error(1)
}

func (m *OrganizationRepository) GetByIDs(ctx context.Context, ids []string) ([]*models.Organization, error) {
	ret := m.Called(ctx, ids)
	var r0 []*models.Organization
	if v := ret.Get(0); v != nil {
		r0 = v.([]*models.Organization)
	}
	return r0, ret.Error(1)
}

func (m *OrganizationRepository) GetBySlug(ctx context.Context, slug string) (*models.Organization, error) {
	ret := m.Called(ctx, slug)
	var r0 *models.Organization
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.Organization)
	}
	return r0, ret.Error(1)
}

func (m *OrganizationRepository) GetBySlugs(ctx context.Context, slugs []string) ([]*models.Organization, error) {
	ret := m.Called(ctx, slugs)
	var r0 []*models.Organization
	if v := ret.Get(0); v != nil {
		r0 = v.([]*models.Organization)
	}
	return r0, ret.Error(1)
}

func (m *OrganizationRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	ret := m.Called(ctx, slug)
	return ret.Bool(0), ret.Error(1)
}

func (m *OrganizationRepository) Save(ctx context.Context, org *models.Organization) error {
	ret := m.Called(ctx, org)
	return ret.Error(0)
}

func (m *OrganizationRepository) Delete(ctx context.Context, id string) error {
	ret := m.Called(ctx, id)
	return ret.Error(0)
}

func (m *OrganizationRepository) List(ctx context.Context, filter interfaces.OrganizationFilter, window pagination.Window) (pagination.Page[*models.Organization], error) {
	ret := m.Called(ctx, filter, window)
	return ret.Get(0).(pagination.Page[*models.Organization]), ret.Error(1)
}

func (m *OrganizationRepository) ListAll(ctx context.Context) ([]*models.Organization, error) {
	ret := m.Called(ctx)
	var r0 []*models.Organization
	if v := ret.Get(0); v != nil {
		r0 = v.([]*models.Organization)
	}
	return r0, ret.Error(1)
}

func (m *OrganizationRepository) UpdateSummaries(ctx context.Context, id string, summaries models.OrganizationSummaries) error {
	ret := m.Called(ctx, id, summaries)
	return ret.Error(0)
}

type DomainRepository struct {
	mock.Mock
}

func (m *DomainRepository) Create(ctx context.Context, domain *models.Domain) error {
	ret := m.Called(ctx, domain)
	return ret.Error(0)
}

func (m *DomainRepository) GetByID(ctx context.Context, id string) (*models.Domain, error) {
	ret := m.Called(ctx, id)
	var r0 *models.Domain
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.Domain)
	}
	return r0, ret.Error(1)
}

func (m *DomainRepository) GetByIDs(ctx context.Context, ids []string) ([]*models.Domain, error) {
	ret := m.Called(ctx, ids)
	var r0 []*models.Domain
	if v := ret.Get(0); v != nil {
		r0 = v.([]*models.Domain)
	}
	return r0, ret.Error(1)
}

func (m *DomainRepository) GetByDomain(ctx context.Context, domain string) (*models.Domain, error) {
	ret := m.Called(ctx, domain)
	var r0 *models.Domain
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.Domain)
	}
	return r0, ret.Error(1)
}

func (m *DomainRepository) GetByDomains(ctx context.Context, domains []string) ([]*models.Domain, error) {
	ret := m.Called(ctx, domains)
	var r0 []*models.Domain
	if v := ret.Get(0); v != nil {
		r0 = v.([]*models.Domain)
	}
	return r0, ret.Error(1)
}

func (m *DomainRepository) Save(ctx context.Context, domain *models.Domain) error {
	ret := m.Called(ctx, domain)
	return ret.Error(0)
}

func (m *DomainRepository) List(ctx context.Context, filter interfaces.DomainFilter, window pagination.Window) (pagination.Page[*models.Domain], error) {
	ret := m.Called(ctx, filter, window)
	return ret.Get(0).(pagination.Page[*models.Domain]), ret.Error(1)
}

func (m *DomainRepository) ListByOrg(ctx context.Context, orgID string) ([]*models.Domain, error) {
	ret := m.Called(ctx, orgID)
	var r0 []*models.Domain
	if v := ret.Get(0); v != nil {
		r0 = v.([]*models.Domain)
	}
	return r0, ret.Error(1)
}

func (m *DomainRepository) ListAll(ctx context.Context) ([]*models.Domain, error) {
	ret := m.Called(ctx)
	var r0 []*models.Domain
	if v := ret.Get(0); v != nil {
		r0 = v.([]*models.Domain)
	}
	return r0, ret.Error(1)
}

func (m *DomainRepository) UpdateScanStatus(ctx context.Context, id string, scanType enum.ScanType, status enum.Status, phase enum.DmarcPhase, ranAt time.Time) error {
	ret := m.Called(ctx, id, scanType, status, phase, ranAt)
	return ret.Error(0)
}

func (m *DomainRepository) SetHasDmarcReport(ctx context.Context, id string) error {
	ret := m.Called(ctx, id)
	return ret.Error(0)
}

type ClaimRepository struct {
	mock.Mock
}

func (m *ClaimRepository) Create(ctx context.Context, claim *models.Claim) error {
	ret := m.Called(ctx, claim)
	return ret.Error(0)
}

func (m *ClaimRepository) Get(ctx context.Context, orgID string, domainID string) (*models.Claim, error) {
	ret := m.Called(ctx, orgID, domainID)
	var r0 *models.Claim
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.Claim)
	}
	return r0, ret.Error(1)
}

func (m *ClaimRepository) ListByDomain(ctx context.Context, domainID string) ([]*models.Claim, error) {
	ret := m.Called(ctx, domainID)
	var r0 []*models.Claim
	if v := ret.Get(0); v != nil {
		r0 = v.([]*models.Claim)
	}
	return r0, ret.Error(1)
}

func (m *ClaimRepository) CountByOrg(ctx context.Context, orgID string) (int64, error) {
	ret := m.Called(ctx, orgID)
	return ret.Get(0).(int64), ret.Error(1)
}

func (m *ClaimRepository) Delete(ctx context.Context, orgID string, domainID string) error {
	ret := m.Called(ctx, orgID, domainID)
	return ret.Error(0)
}

func (m *ClaimRepository) IsDomainClaimedForUser(ctx context.Context, userID string, domainID string) (bool, error) {
	ret := m.Called(ctx, userID, domainID)
	return ret.Bool(0), ret.Error(1)
}

func (m *ClaimRepository) IsDmarcOwnedForUser(ctx context.Context, userID string, domainID string) (bool, error) {
	ret := m.Called(ctx, userID, domainID)
	return ret.Bool(0), ret.Error(1)
}

type AffiliationRepository struct {
	mock.Mock
}

func (m *AffiliationRepository) Create(ctx context.Context, affiliation *models.Affiliation) error {
	ret := m.Called(ctx, affiliation)
	return ret.Error(0)
}

func (m *AffiliationRepository) Get(ctx context.Context, userID string, orgID string) (*models.Affiliation, error) {
	ret := m.Called(ctx, userID, orgID)
	var r0 *models.Affiliation
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.Affiliation)
	}
	return r0, ret.Error(1)
}

func (m *AffiliationRepository) GetByID(ctx context.Context, id string) (*models.Affiliation, error) {
	ret := m.Called(ctx, id)
	var r0 *models.Affiliation
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.Affiliation)
	}
	return r0, ret.Error(1)
}

func (m *AffiliationRepository) Save(ctx context.Context, affiliation *models.Affiliation) error {
	ret := m.Called(ctx, affiliation)
	return ret.Error(0)
}

func (m *AffiliationRepository) Delete(ctx context.Context, userID string, orgID string) error {
	ret := m.Called(ctx, userID, orgID)
	return ret.Error(0)
}

func (m *AffiliationRepository) DeleteByUser(ctx context.Context, userID string) error {
	ret := m.Called(ctx, userID)
	return ret.Error(0)
}

func (m *AffiliationRepository) ListByUser(ctx context.Context, userID string) ([]*models.Affiliation, error) {
	ret := m.Called(ctx, userID)
	var r0 []*models.Affiliation
	if v := ret.Get(0); v != nil {
		r0 = v.([]*models.Affiliation)
	}
	return r0, ret.Error(1)
}

func (m *AffiliationRepository) ListAdminsByOrg(ctx context.Context, orgID string) ([]*models.Affiliation, error) {
	ret := m.Called(ctx, orgID)
	var r0 []*models.Affiliation
	if v := ret.Get(0); v != nil {
		r0 = v.([]*models.Affiliation)
	}
	return r0, ret.Error(1)
}

func (m *AffiliationRepository) HasSuperAdmin(ctx context.Context, userID string) (bool, error) {
	ret := m.Called(ctx, userID)
	return ret.Bool(0), ret.Error(1)
}

func (m *AffiliationRepository) IsAdminForUser(ctx context.Context, adminID string, userID string) (bool, error) {
	ret := m.Called(ctx, adminID, userID)
	return ret.Bool(0), ret.Error(1)
}

func (m *AffiliationRepository) List(ctx context.Context, filter interfaces.AffiliationFilter, window pagination.Window) (pagination.Page[*models.Affiliation], error) {
	ret := m.Called(ctx, filter, window)
	return ret.Get(0).(pagination.Page[*models.Affiliation]), ret.Error(1)
}

type ScanRepository struct {
	mock.Mock
}

func (m *ScanRepository) Create(ctx context.Context, scan *models.Scan) error {
	ret := m.Called(ctx, scan)
	return ret.Error(0)
}

func (m *ScanRepository) List(ctx context.Context, filter interfaces.ScanFilter, window pagination.Window) (pagination.Page[*models.Scan], error) {
	ret := m.Called(ctx, filter, window)
	return ret.Get(0).(pagination.Page[*models.Scan]), ret.Error(1)
}

type ChartSummaryRepository struct {
	mock.Mock
}

func (m *ChartSummaryRepository) Save(ctx context.Context, summary *models.ChartSummary) error {
	ret := m.Called(ctx, summary)
	return ret.Error(0)
}

func (m *ChartSummaryRepository) Get(ctx context.Context, kind enum.SummaryKind) (*models.ChartSummary, error) {
	ret := m.Called(ctx, kind)
	var r0 *models.ChartSummary
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.ChartSummary)
	}
	return r0, ret.Error(1)
}

type DmarcSummaryRepository struct {
	mock.Mock
}

func (m *DmarcSummaryRepository) Upsert(ctx context.Context, summary *models.DmarcSummary) error {
	ret := m.Called(ctx, summary)
	return ret.Error(0)
}

func (m *DmarcSummaryRepository) Get(ctx context.Context, domainID string, month int, year int) (*models.DmarcSummary, error) {
	ret := m.Called(ctx, domainID, month, year)
	var r0 *models.DmarcSummary
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.DmarcSummary)
	}
	return r0, ret.Error(1)
}

func (m *DmarcSummaryRepository) ListByDomain(ctx context.Context, domainID string, since time.Time) ([]*models.DmarcSummary, error) {
	ret := m.Called(ctx, domainID, since)
	var r0 []*models.DmarcSummary
	if v := ret.Get(0); v != nil {
		r0 = v.([]*models.DmarcSummary)
	}
	return r0, ret.Error(1)
}

func (m *DmarcSummaryRepository) List(ctx context.Context, filter interfaces.DmarcSummaryFilter, window pagination.Window) (pagination.Page[*models.DmarcSummary], error) {
	ret := m.Called(ctx, filter, window)
	return ret.Get(0).(pagination.Page[*models.DmarcSummary]), ret.Error(1)
}

type AuditLogRepository struct {
	mock.Mock
}

func (m *AuditLogRepository) Create(ctx context.Context, log *models.AuditLog) error {
	ret := m.Called(ctx, log)
	return ret.Error(0)
}

func (m *AuditLogRepository) List(ctx context.Context, filter interfaces.AuditLogFilter, window pagination.Window) (pagination.Page[*models.AuditLog], error) {
	ret := m.Called(ctx, filter, window)
	return ret.Get(0).(pagination.Page[*models.AuditLog]), ret.Error(1)
}

type PermissionService struct {
	mock.Mock
}

func (m *PermissionService) UserRequired(ctx context.Context) (*models.User, error) {
	ret := m.Called(ctx)
	var r0 *models.User
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.User)
	}
	return r0, ret.Error(1)
}

func (m *PermissionService) VerifiedRequired(ctx context.Context, user *models.User) error {
	ret := m.Called(ctx, user)
	return ret.Error(0)
}

func (m *PermissionService) TfaRequired(ctx context.Context, user *models.User) error {
	ret := m.Called(ctx, user)
	return ret.Error(0)
}

func (m *PermissionService) CheckPermission(ctx context.Context, orgID string) (enum.Role, error) {
	ret := m.Called(ctx, orgID)
	return ret.Get(0).(enum.Role), ret.Error(1)
}

func (m *PermissionService) CheckDomainPermission(ctx context.Context, domainID string) (bool, error) {
	ret := m.Called(ctx, domainID)
	return ret.Bool(0), ret.Error(1)
}

func (m *PermissionService) CheckSuperAdmin(ctx context.Context) (bool, error) {
	ret := m.Called(ctx)
	return ret.Bool(0), ret.Error(1)
}

func (m *PermissionService) SuperAdminRequired(ctx context.Context) error {
	ret := m.Called(ctx)
	return ret.Error(0)
}

func (m *PermissionService) CheckUserIsAdminForUser(ctx context.Context, userName string) (bool, error) {
	ret := m.Called(ctx, userName)
	return ret.Bool(0), ret.Error(1)
}

func (m *PermissionService) CheckOrgOwner(ctx context.Context, orgID string) (bool, error) {
	ret := m.Called(ctx, orgID)
	return ret.Bool(0), ret.Error(1)
}

func (m *PermissionService) CheckDomainOwnership(ctx context.Context, domainID string) (bool, error) {
	ret := m.Called(ctx, domainID)
	return ret.Bool(0), ret.Error(1)
}

type AuthService struct {
	mock.Mock
}

func (m *AuthService) SignUp(ctx context.Context, input dto.SignUpInput) (*dto.AuthResult, error) {
	ret := m.Called(ctx, input)
	var r0 *dto.AuthResult
	if v := ret.Get(0); v != nil {
		r0 = v.(*dto.AuthResult)
	}
	return r0, ret.Error(1)
}

func (m *AuthService) SignIn(ctx context.Context, userName string, password string, rememberMe bool) (*dto.SignInResult, error) {
	ret := m.Called(ctx, userName, password, rememberMe)
	var r0 *dto.SignInResult
	if v := ret.Get(0); v != nil {
		r0 = v.(*dto.SignInResult)
	}
	return r0, ret.Error(1)
}

func (m *AuthService) Authenticate(ctx context.Context, authenticateToken string, code string) (*dto.AuthResult, error) {
	ret := m.Called(ctx, authenticateToken, code)
	var r0 *dto.AuthResult
	if v := ret.Get(0); v != nil {
		r0 = v.(*dto.AuthResult)
	}
	return r0, ret.Error(1)
}

func (m *AuthService) RefreshTokens(ctx context.Context) (*dto.AuthResult, error) {
	ret := m.Called(ctx)
	var r0 *dto.AuthResult
	if v := ret.Get(0); v != nil {
		r0 = v.(*dto.AuthResult)
	}
	return r0, ret.Error(1)
}

func (m *AuthService) SignOut(ctx context.Context) string {
	ret := m.Called(ctx)
	return ret.String(0)
}

func (m *AuthService) SendEmailVerification(ctx context.Context, userName string) string {
	ret := m.Called(ctx, userName)
	return ret.String(0)
}

func (m *AuthService) VerifyAccount(ctx context.Context, verifyToken string) (string, error) {
	ret := m.Called(ctx, verifyToken)
	return ret.String(0), ret.Error(1)
}

func (m *AuthService) SendPasswordResetLink(ctx context.Context, userName string) string {
	ret := m.Called(ctx, userName)
	return ret.String(0)
}

func (m *AuthService) ResetPassword(ctx context.Context, resetToken string, password string, confirmPassword string) (string, error) {
	ret := m.Called(ctx, resetToken, password, confirmPassword)
	return ret.String(0), ret.Error(1)
}

func (m *AuthService) UserIDFromAuthToken(token string) (string, error) {
	ret := m.Called(token)
	return ret.String(0), ret.Error(1)
}

type UserService struct {
	mock.Mock
}

func (m *UserService) FindMe(ctx context.Context) (*models.User, error) {
	ret := m.Called(ctx)
	var r0 *models.User
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.User)
	}
	return r0, ret.Error(1)
}

func (m *UserService) UpdateUserProfile(ctx context.Context, input dto.UpdateUserProfileInput) (*models.User, error) {
	ret := m.Called(ctx, input)
	var r0 *models.User
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.User)
	}
	return r0, ret.Error(1)
}

func (m *UserService) UpdateUserPassword(ctx context.Context, currentPassword string, password string, confirmPassword string) (string, error) {
	ret := m.Called(ctx, currentPassword, password, confirmPassword)
	return ret.String(0), ret.Error(1)
}

func (m *UserService) CloseAccount(ctx context.Context, userID *string) (string, error) {
	ret := m.Called(ctx, userID)
	return ret.String(0), ret.Error(1)
}

func (m *UserService) IsUserAdmin(ctx context.Context, orgID *string) (bool, error) {
	ret := m.Called(ctx, orgID)
	return ret.Bool(0), ret.Error(1)
}

func (m *UserService) IsUserSuperAdmin(ctx context.Context) (bool, error) {
	ret := m.Called(ctx)
	return ret.Bool(0), ret.Error(1)
}

type OrganizationService struct {
	mock.Mock
}

func (m *OrganizationService) FindMyOrganizations(ctx context.Context, args interfaces.ConnectionArgs, isAdmin bool, includeSuperAdminOrg bool) (pagination.Page[*models.Organization], error) {
	ret := m.Called(ctx, args, isAdmin, includeSuperAdminOrg)
	return ret.Get(0).(pagination.Page[*models.Organization]), ret.Error(1)
}

func (m *OrganizationService) FindOrganizationBySlug(ctx context.Context, slug string) (*models.Organization, error) {
	ret := m.Called(ctx, slug)
	var r0 *models.Organization
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.Organization)
	}
	return r0, ret.Error(1)
}

func (m *OrganizationService) CreateOrganization(ctx context.Context, input dto.OrganizationInput) (*models.Organization, error) {
	ret := m.Called(ctx, input)
	var r0 *models.Organization
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.Organization)
	}
	return r0, ret.Error(1)
}

func (m *OrganizationService) UpdateOrganization(ctx context.Context, orgID string, input dto.OrganizationInput) (*models.Organization, error) {
	ret := m.Called(ctx, orgID, input)
	var r0 *models.Organization
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.Organization)
	}
	return r0, ret.Error(1)
}

func (m *OrganizationService) RemoveOrganization(ctx context.Context, orgID string) (string, error) {
	ret := m.Called(ctx, orgID)
	return ret.String(0), ret.Error(1)
}

func (m *OrganizationService) VerifyOrganization(ctx context.Context, orgID string) (string, error) {
	ret := m.Called(ctx, orgID)
	return ret.String(0), ret.Error(1)
}

func (m *OrganizationService) DomainCount(ctx context.Context, orgID string) (int64, error) {
	ret := m.Called(ctx, orgID)
	return ret.Get(0).(int64), ret.Error(1)
}

type DomainService struct {
	mock.Mock
}

func (m *DomainService) FindMyDomains(ctx context.Context, args interfaces.ConnectionArgs) (pagination.Page[*models.Domain], error) {
	ret := m.Called(ctx, args)
	return ret.Get(0).(pagination.Page[*models.Domain]), ret.Error(1)
}

func (m *DomainService) FindDomainsForOrganization(ctx context.Context, orgID string, args interfaces.ConnectionArgs) (pagination.Page[*models.Domain], error) {
	ret := m.Called(ctx, orgID, args)
	return ret.Get(0).(pagination.Page[*models.Domain]), ret.Error(1)
}

func (m *DomainService) FindDomainByDomain(ctx context.Context, domain string) (*models.Domain, error) {
	ret := m.Called(ctx, domain)
	var r0 *models.Domain
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.Domain)
	}
	return r0, ret.Error(1)
}

func (m *DomainService) CreateDomain(ctx context.Context, orgID string, domain string, selectors []string) (*models.Domain, error) {
	ret := m.Called(ctx, orgID, domain, selectors)
	var r0 *models.Domain
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.Domain)
	}
	return r0, ret.Error(1)
}

func (m *DomainService) UpdateDomain(ctx context.Context, domainID string, orgID string, domain *string, selectors []string) (*models.Domain, error) {
	ret := m.Called(ctx, domainID, orgID, domain, selectors)
	var r0 *models.Domain
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.Domain)
	}
	return r0, ret.Error(1)
}

func (m *DomainService) RemoveDomain(ctx context.Context, domainID string, orgID string) (string, error) {
	ret := m.Called(ctx, domainID, orgID)
	return ret.String(0), ret.Error(1)
}

func (m *DomainService) FindScans(ctx context.Context, domainID string, scanType enum.ScanType, args pagination.Args, startDate *time.Time, endDate *time.Time) (pagination.Page[*models.Scan], error) {
	ret := m.Called(ctx, domainID, scanType, args, startDate, endDate)
	return ret.Get(0).(pagination.Page[*models.Scan]), ret.Error(1)
}

type AffiliationService struct {
	mock.Mock
}

func (m *AffiliationService) FindAffiliationsForOrganization(ctx context.Context, orgID string, args interfaces.ConnectionArgs, includePending bool) (pagination.Page[*models.Affiliation], error) {
	ret := m.Called(ctx, orgID, args, includePending)
	return ret.Get(0).(pagination.Page[*models.Affiliation]), ret.Error(1)
}

func (m *AffiliationService) FindAffiliationsForUser(ctx context.Context, userID string, args interfaces.ConnectionArgs) (pagination.Page[*models.Affiliation], error) {
	ret := m.Called(ctx, userID, args)
	return ret.Get(0).(pagination.Page[*models.Affiliation]), ret.Error(1)
}

func (m *AffiliationService) InviteUserToOrg(ctx context.Context, userName string, orgID string, role enum.Role) (string, error) {
	ret := m.Called(ctx, userName, orgID, role)
	return ret.String(0), ret.Error(1)
}

func (m *AffiliationService) UpdateUserRole(ctx context.Context, userName string, orgID string, role enum.Role) (string, error) {
	ret := m.Called(ctx, userName, orgID, role)
	return ret.String(0), ret.Error(1)
}

func (m *AffiliationService) RemoveUserFromOrg(ctx context.Context, userID string, orgID string) (string, error) {
	ret := m.Called(ctx, userID, orgID)
	return ret.String(0), ret.Error(1)
}

func (m *AffiliationService) RequestOrgAffiliation(ctx context.Context, orgID string) (string, error) {
	ret := m.Called(ctx, orgID)
	return ret.String(0), ret.Error(1)
}

func (m *AffiliationService) LeaveOrganization(ctx context.Context, orgID string) (string, error) {
	ret := m.Called(ctx, orgID)
	return ret.String(0), ret.Error(1)
}

type SummaryService struct {
	mock.Mock
}

func (m *SummaryService) GetChartSummary(ctx context.Context, kind enum.SummaryKind) (*models.Summary, error) {
	ret := m.Called(ctx, kind)
	var r0 *models.Summary
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.Summary)
	}
	return r0, ret.Error(1)
}

func (m *SummaryService) RefreshSummaries(ctx context.Context) error {
	ret := m.Called(ctx)
	return ret.Error(0)
}

type ScanService struct {
	mock.Mock
}

func (m *ScanService) RequestScan(ctx context.Context, domain string) (string, error) {
	ret := m.Called(ctx, domain)
	return ret.String(0), ret.Error(1)
}

func (m *ScanService) ProcessScanResult(ctx context.Context, result dto.ScanCompleted) error {
	ret := m.Called(ctx, result)
	return ret.Error(0)
}

type DmarcSummaryService struct {
	mock.Mock
}

func (m *DmarcSummaryService) FindMyDmarcSummaries(ctx context.Context, month int, year int, args interfaces.ConnectionArgs) (pagination.Page[*models.DmarcSummary], error) {
	ret := m.Called(ctx, month, year, args)
	return ret.Get(0).(pagination.Page[*models.DmarcSummary]), ret.Error(1)
}

func (m *DmarcSummaryService) DmarcSummaryByPeriod(ctx context.Context, domainID string, month int, year int) (*models.DmarcSummary, error) {
	ret := m.Called(ctx, domainID, month, year)
	var r0 *models.DmarcSummary
	if v := ret.Get(0); v != nil {
		r0 = v.(*models.DmarcSummary)
	}
	return r0, ret.Error(1)
}

func (m *DmarcSummaryService) YearlyDmarcSummaries(ctx context.Context, domainID string) ([]*models.DmarcSummary, error) {
	ret := m.Called(ctx, domainID)
	var r0 []*models.DmarcSummary
	if v := ret.Get(0); v != nil {
		r0 = v.([]*models.DmarcSummary)
	}
	return r0, ret.Error(1)
}

func (m *DmarcSummaryService) Ingest(ctx context.Context, input dto.DmarcSummaryInput) error {
	ret := m.Called(ctx, input)
	return ret.Error(0)
}

type AuditLogService struct {
	mock.Mock
}

func (m *AuditLogService) FindAuditLogs(ctx context.Context, orgID *string, args interfaces.ConnectionArgs, filter interfaces.AuditLogFilter) (pagination.Page[*models.AuditLog], error) {
	ret := m.Called(ctx, orgID, args, filter)
	return ret.Get(0).(pagination.Page[*models.AuditLog]), ret.Error(1)
}

func (m *AuditLogService) Record(ctx context.Context, entry *models.AuditLog) {
	m.Called(ctx, entry)
}

type NotifyService struct {
	mock.Mock
}

func (m *NotifyService) SendVerificationEmail(ctx context.Context, user *models.User, verifyURL string) error {
	ret := m.Called(ctx, user, verifyURL)
	return ret.Error(0)
}

func (m *NotifyService) SendPasswordResetEmail(ctx context.Context, user *models.User, resetURL string) error {
	ret := m.Called(ctx, user, resetURL)
	return ret.Error(0)
}

func (m *NotifyService) SendAuthenticateEmail(ctx context.Context, user *models.User, code string) error {
	ret := m.Called(ctx, user, code)
	return ret.Error(0)
}

func (m *NotifyService) SendOrgInviteEmail(ctx context.Context, user *models.User, orgName string) error {
	ret := m.Called(ctx, user, orgName)
	return ret.Error(0)
}

func (m *NotifyService) SendOrgInviteCreateAccountEmail(ctx context.Context, userName string, lang enum.Language, orgName string, createAccountURL string) error {
	ret := m.Called(ctx, userName, lang, orgName, createAccountURL)
	return ret.Error(0)
}

func (m *NotifyService) SendInviteRequestEmail(ctx context.Context, admin *models.User, requesterName string, orgName string, adminURL string) error {
	ret := m.Called(ctx, admin, requesterName, orgName, adminURL)
	return ret.Error(0)
}

type ScanPublisher struct {
	mock.Mock
}

func (m *ScanPublisher) PublishScanRequest(ctx context.Context, request dto.ScanRequested) error {
	ret := m.Called(ctx, request)
	return ret.Error(0)
}
