package resolver

import (
	tracker_errors "github.com/canada-ca/tracker-sub010/errors"
)

type errorResolver struct {
	err *tracker_errors.ResultError
}

func (e *errorResolver) Code() int32         { return int32(e.err.Code) }
func (e *errorResolver) Description() string { return e.err.Description }

type statusResolver struct {
	status string
}

func (s *statusResolver) Status() string { return s.status }

// resultResolver backs every mutation result union. Exactly one member is
// set; the union decides which error type name the error is reported as.
type resultResolver struct {
	auth   *authResultResolver
	tfa    *tfaSignInResolver
	user   *personalUserResolver
	org    *organizationResolver
	domain *domainResolver
	status *statusResolver
	err    *errorResolver
}

func (r *resultResolver) ToAuthResult() (*authResultResolver, bool) {
	return r.auth, r.auth != nil
}

func (r *resultResolver) ToTFASignInResult() (*tfaSignInResolver, bool) {
	return r.tfa, r.tfa != nil
}

func (r *resultResolver) ToPersonalUser() (*personalUserResolver, bool) {
	return r.user, r.user != nil
}

func (r *resultResolver) ToOrganization() (*organizationResolver, bool) {
	return r.org, r.org != nil
}

func (r *resultResolver) ToDomain() (*domainResolver, bool) {
	return r.domain, r.domain != nil
}

func (r *resultResolver) ToStatusResult() (*statusResolver, bool) {
	return r.status, r.status != nil
}

func (r *resultResolver) ToSignUpError() (*errorResolver, bool) {
	return r.err, r.err != nil
}

func (r *resultResolver) ToSignInError() (*errorResolver, bool) {
	return r.err, r.err != nil
}

func (r *resultResolver) ToAuthenticateError() (*errorResolver, bool) {
	return r.err, r.err != nil
}

func (r *resultResolver) ToUserError() (*errorResolver, bool) {
	return r.err, r.err != nil
}

func (r *resultResolver) ToOrganizationError() (*errorResolver, bool) {
	return r.err, r.err != nil
}

func (r *resultResolver) ToDomainError() (*errorResolver, bool) {
	return r.err, r.err != nil
}

func (r *resultResolver) ToAffiliationError() (*errorResolver, bool) {
	return r.err, r.err != nil
}
