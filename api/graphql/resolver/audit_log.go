package resolver

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/graph-gophers/graphql-go"

	"github.com/canada-ca/tracker-sub010/interfaces"
	"github.com/canada-ca/tracker-sub010/internal/enum"
	"github.com/canada-ca/tracker-sub010/internal/models"
	"github.com/canada-ca/tracker-sub010/services/audit"
	"github.com/canada-ca/tracker-sub010/services/organization"
)

type auditLogResolver struct {
	log *models.AuditLog
}

func newAuditLogResolver(log *models.AuditLog) *auditLogResolver { return &auditLogResolver{log: log} }

func auditLogID(log *models.AuditLog) string { return log.ID }

func (a *auditLogResolver) ID() graphql.ID          { return globalID(audit.CursorType, a.log.ID) }
func (a *auditLogResolver) Timestamp() graphql.Time { return graphql.Time{Time: a.log.Timestamp} }
func (a *auditLogResolver) Action() string          { return strings.ToUpper(a.log.Action.String()) }
func (a *auditLogResolver) Reason() *string         { return optionalString(a.log.Reason) }

func (a *auditLogResolver) InitiatedBy() *initiatedByResolver {
	return &initiatedByResolver{log: a.log}
}

func (a *auditLogResolver) Target() *targetResourceResolver {
	return &targetResourceResolver{log: a.log}
}

type initiatedByResolver struct {
	log *models.AuditLog
}

func (i *initiatedByResolver) ID() *graphql.ID {
	if i.log.InitiatorID == "" {
		return nil
	}
	id := globalID(userType, i.log.InitiatorID)
	return &id
}

func (i *initiatedByResolver) UserName() *string  { return optionalString(i.log.InitiatorUserName) }
func (i *initiatedByResolver) Role() *string      { return optionalString(i.log.InitiatorRole.GraphQL()) }
func (i *initiatedByResolver) IPAddress() *string { return optionalString(i.log.InitiatorIP) }

type targetResourceResolver struct {
	log *models.AuditLog
}

func (t *targetResourceResolver) Resource() string { return t.log.Resource }

func (t *targetResourceResolver) ResourceType() string {
	return strings.ToUpper(t.log.ResourceType.String())
}

func (t *targetResourceResolver) Organization() *targetOrganizationResolver {
	if t.log.OrgID == "" && t.log.OrgName == "" {
		return nil
	}
	return &targetOrganizationResolver{log: t.log}
}

func (t *targetResourceResolver) UpdatedProperties() (*string, error) {
	if len(t.log.UpdatedProperties) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(t.log.UpdatedProperties)
	if err != nil {
		return nil, err
	}
	properties := string(b)
	return &properties, nil
}

type targetOrganizationResolver struct {
	log *models.AuditLog
}

func (t *targetOrganizationResolver) ID() *graphql.ID {
	if t.log.OrgID == "" {
		return nil
	}
	id := globalID(organization.CursorType, t.log.OrgID)
	return &id
}

func (t *targetOrganizationResolver) Name() *string { return optionalString(t.log.OrgName) }

type LogFiltersInput struct {
	Resource *[]string
	Action   *[]string
}

func (f *LogFiltersInput) toFilter() interfaces.AuditLogFilter {
	var filter interfaces.AuditLogFilter
	if f == nil {
		return filter
	}
	if f.Resource != nil {
		for _, resource := range *f.Resource {
			filter.Resources = append(filter.Resources, enum.AuditResource(strings.ToLower(resource)))
		}
	}
	if f.Action != nil {
		for _, action := range *f.Action {
			filter.Actions = append(filter.Actions, enum.AuditAction(strings.ToLower(action)))
		}
	}
	return filter
}

func (r *Resolver) FindAuditLogs(ctx context.Context, args struct {
	OrgID *graphql.ID
	ConnectionArgs
	OrderBy *OrderInput
	Filters *LogFiltersInput
}) (*connectionResolver[*auditLogResolver], error) {
	span, ctx := startSpan(ctx, "Resolver.FindAuditLogs")
	defer span.Finish()

	page, err := r.services.AuditLogService.FindAuditLogs(ctx, optionalLocalID(args.OrgID), args.withOrder(args.OrderBy), args.Filters.toFilter())
	if err != nil {
		return nil, fail(ctx, span, err)
	}
	return newConnection(page, audit.CursorType, auditLogID, newAuditLogResolver), nil
}
