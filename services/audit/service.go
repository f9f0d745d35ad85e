package audit

import (
	"context"

	"github.com/opentracing/opentracing-go"

	"github.com/canada-ca/tracker-sub010/interfaces"
	"github.com/canada-ca/tracker-sub010/internal/enum"
	"github.com/canada-ca/tracker-sub010/internal/logger"
	"github.com/canada-ca/tracker-sub010/internal/models"
	"github.com/canada-ca/tracker-sub010/internal/pagination"
	"github.com/canada-ca/tracker-sub010/internal/repository"
	"github.com/canada-ca/tracker-sub010/internal/tracing"
	"github.com/canada-ca/tracker-sub010/internal/utils"
	"github.com/canada-ca/tracker-sub010/services/permission"
)

const CursorType = "AuditLog"

type auditLogService struct {
	log         logger.Logger
	repos       *repository.Repositories
	permissions interfaces.PermissionService
}

func NewAuditLogService(log logger.Logger, repos *repository.Repositories, permissions interfaces.PermissionService) interfaces.AuditLogService {
	return &auditLogService{
		log:         log,
		repos:       repos,
		permissions: permissions,
	}
}

// Record stores an audit entry. Failures are logged, never returned: the
// audited change already happened.
func (s *auditLogService) Record(ctx context.Context, entry *models.AuditLog) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "AuditLogService.Record")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	if entry.InitiatorID == "" {
		entry.InitiatorID = utils.GetUserIdFromContext(ctx)
	}
	if entry.InitiatorIP == "" {
		entry.InitiatorIP = utils.GetContext(ctx).IP
	}
	tracing.LogObjectAsJson(span, "auditLog", entry)

	if err := s.repos.AuditLogRepository.Create(ctx, entry); err != nil {
		tracing.TraceErr(span, err)
		s.log.Errorf("Unable to record audit log %s %s %s: %v", entry.Action, entry.ResourceType, entry.Resource, err)
	}
}

// FindAuditLogs lists the logs of one organization, or of every organization
// the caller administers when orgID is nil. Super admins see everything.
func (s *auditLogService) FindAuditLogs(ctx context.Context, orgID *string, args interfaces.ConnectionArgs, filter interfaces.AuditLogFilter) (pagination.Page[*models.AuditLog], error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "AuditLogService.FindAuditLogs")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	var empty pagination.Page[*models.AuditLog]

	user, err := s.permissions.UserRequired(ctx)
	if err != nil {
		return empty, err
	}
	if err := s.permissions.VerifiedRequired(ctx, user); err != nil {
		return empty, err
	}

	window, err := pagination.NewWindow(ctx, "AuditLog", CursorType, args.Args)
	if err != nil {
		return empty, err
	}

	superAdmin, err := s.permissions.CheckSuperAdmin(ctx)
	if err != nil {
		tracing.TraceErr(span, err)
		return empty, err
	}

	filter.Search = args.Search
	filter.Order = args.Order

	switch {
	case orgID != nil && *orgID != "":
		role, err := s.permissions.CheckPermission(ctx, *orgID)
		if err != nil {
			tracing.TraceErr(span, err)
			return empty, err
		}
		if !role.IsAdmin() {
			return empty, permission.PermissionError(ctx)
		}
		filter.OrgIDs = []string{*orgID}
	case superAdmin:
		filter.AllOrgs = true
	default:
		affiliations, err := s.repos.AffiliationRepository.ListByUser(ctx, user.ID)
		if err != nil {
			tracing.TraceErr(span, err)
			return empty, err
		}
		for _, affiliation := range affiliations {
			if affiliation.Permission.AtLeast(enum.RoleAdmin) {
				filter.OrgIDs = append(filter.OrgIDs, affiliation.OrgID)
			}
		}
		if len(filter.OrgIDs) == 0 {
			return empty, permission.PermissionError(ctx)
		}
	}

	page, err := s.repos.AuditLogRepository.List(ctx, filter, window)
	if err != nil {
		tracing.TraceErr(span, err)
		return empty, err
	}
	return page, nil
}
