package resolver_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/graph-gophers/graphql-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/canada-ca/tracker-sub010/api/graphql/resolver"
	"github.com/canada-ca/tracker-sub010/api/graphql/schema"
	tracker_errors "github.com/canada-ca/tracker-sub010/errors"
	"github.com/canada-ca/tracker-sub010/interfaces/mocks"
	"github.com/canada-ca/tracker-sub010/internal/logger"
	"github.com/canada-ca/tracker-sub010/internal/pagination"
	"github.com/canada-ca/tracker-sub010/services"
)

type resolverFixture struct {
	schema        *graphql.Schema
	organizations *mocks.OrganizationService
	domains       *mocks.DomainService
}

func newResolverFixture(t *testing.T) *resolverFixture {
	t.Helper()
	organizations := new(mocks.OrganizationService)
	domains := new(mocks.DomainService)
	svcs := &services.Services{OrganizationService: organizations, DomainService: domains}

	log := logger.NewNopLogger()
	s, err := schema.Parse(resolver.NewResolver(log, svcs, mocks.NewRepositories().Repositories()), log, 15)
	require.NoError(t, err)
	return &resolverFixture{schema: s, organizations: organizations, domains: domains}
}

func (f *resolverFixture) exec(t *testing.T, query string) (map[string]map[string]interface{}, *graphql.Response) {
	t.Helper()
	response := f.schema.Exec(context.Background(), query, "", nil)
	var data map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(response.Data, &data))
	return data, response
}

const removeOrganizationMutation = `mutation {
	removeOrganization(orgId: %q) {
		__typename
		... on StatusResult { status }
		... on OrganizationError { code description }
	}
}`

func TestRemoveOrganization_ErrorMember(t *testing.T) {
	f := newResolverFixture(t)
	f.organizations.On("RemoveOrganization", mock.Anything, "org_1").
		Return("", tracker_errors.Forbidden("Permission Denied: Please contact super admin for help with removing organization."))

	data, response := f.exec(t, fmt.Sprintf(removeOrganizationMutation, pagination.ToGlobalID("Organization", "org_1")))

	require.Empty(t, response.Errors)
	assert.Equal(t, map[string]interface{}{
		"__typename":  "OrganizationError",
		"code":        float64(403),
		"description": "Permission Denied: Please contact super admin for help with removing organization.",
	}, data["removeOrganization"])
}

func TestRemoveOrganization_StatusMember(t *testing.T) {
	f := newResolverFixture(t)
	f.organizations.On("RemoveOrganization", mock.Anything, "org_1").Return("Successfully removed organization: finance.", nil)

	data, response := f.exec(t, fmt.Sprintf(removeOrganizationMutation, pagination.ToGlobalID("Organization", "org_1")))

	require.Empty(t, response.Errors)
	assert.Equal(t, "StatusResult", data["removeOrganization"]["__typename"])
	assert.Equal(t, "Successfully removed organization: finance.", data["removeOrganization"]["status"])
}

func TestRemoveDomain_ResultAndUnexpectedErrors(t *testing.T) {
	query := fmt.Sprintf(`mutation {
		removeDomain(domainId: %q, orgId: %q) {
			... on StatusResult { status }
			... on DomainError { code description }
		}
	}`, pagination.ToGlobalID("Domain", "dom_1"), pagination.ToGlobalID("Organization", "org_1"))

	f := newResolverFixture(t)
	f.domains.On("RemoveDomain", mock.Anything, "dom_1", "org_1").
		Return("", tracker_errors.BadRequest("Unable to remove domain. Domain is not part of organization.")).Once()

	data, response := f.exec(t, query)
	require.Empty(t, response.Errors)
	assert.Equal(t, float64(400), data["removeDomain"]["code"])
	assert.Equal(t, "Unable to remove domain. Domain is not part of organization.", data["removeDomain"]["description"])

	f.domains.On("RemoveDomain", mock.Anything, "dom_1", "org_1").Return("", assert.AnError).Once()

	data, response = f.exec(t, query)
	require.Len(t, response.Errors, 1)
	assert.Equal(t, "Unable to process request. Please try again.", response.Errors[0].Message)
	assert.Nil(t, data["removeDomain"])
}
