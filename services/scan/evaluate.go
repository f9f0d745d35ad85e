package scan

import (
	"strings"

	"github.com/emersion/go-msgauth/dmarc"

	"github.com/canada-ca/tracker-sub010/internal/enum"
)

const (
	TagDmarcMissing          = "dmarc-missing"
	TagDmarcInvalid          = "dmarc-invalid"
	TagDmarcPolicyNone       = "dmarc-policy-none"
	TagDmarcPolicyQuarantine = "dmarc-policy-quarantine"
	TagDmarcPolicyReject     = "dmarc-policy-reject"
	TagDmarcRuaMissing       = "dmarc-rua-missing"
	TagDmarcPercentPartial   = "dmarc-pct-partial"
	TagDmarcSubdomainNone    = "dmarc-sp-none"

	TagSpfMissing    = "spf-missing"
	TagSpfInvalid    = "spf-invalid"
	TagSpfRedirect   = "spf-redirect"
	TagSpfAllMissing = "spf-all-missing"
	TagSpfAllFail    = "spf-all-fail"
	TagSpfSoftFail   = "spf-all-softfail"
	TagSpfNeutral    = "spf-all-neutral"
	TagSpfAllPass    = "spf-all-pass"
)

type evaluation struct {
	status enum.Status
	phase  enum.DmarcPhase
	tags   []string
}

// evaluateDmarc derives the status, deployment phase and guidance tags of a
// DMARC TXT record. Only quarantine and reject policies pass; they are in the
// enforce phase while pct is below 100 and in maintain once fully applied.
func evaluateDmarc(record string) evaluation {
	record = strings.TrimSpace(record)
	if record == "" {
		return evaluation{
			status: enum.StatusFail,
			phase:  enum.DmarcPhaseNotImplemented,
			tags:   []string{TagDmarcMissing},
		}
	}

	parsed, err := dmarc.Parse(record)
	if err != nil {
		return evaluation{
			status: enum.StatusFail,
			phase:  enum.DmarcPhaseNotImplemented,
			tags:   []string{TagDmarcInvalid},
		}
	}

	result := evaluation{status: enum.StatusFail}
	hasRua := len(parsed.ReportURIAggregate) > 0
	if !hasRua {
		result.tags = append(result.tags, TagDmarcRuaMissing)
	}

	partial := parsed.Percent != nil && *parsed.Percent < 100
	enforcedPhase := enum.DmarcPhaseMaintain
	if partial {
		enforcedPhase = enum.DmarcPhaseEnforce
	}

	switch parsed.Policy {
	case dmarc.PolicyReject:
		result.status = enum.StatusPass
		result.phase = enforcedPhase
		result.tags = append(result.tags, TagDmarcPolicyReject)
	case dmarc.PolicyQuarantine:
		result.status = enum.StatusPass
		result.phase = enforcedPhase
		result.tags = append(result.tags, TagDmarcPolicyQuarantine)
	default:
		result.phase = enum.DmarcPhaseAssess
		if hasRua {
			result.phase = enum.DmarcPhaseDeploy
		}
		result.tags = append(result.tags, TagDmarcPolicyNone)
	}

	if partial {
		result.tags = append(result.tags, TagDmarcPercentPartial)
	}
	if parsed.SubdomainPolicy == dmarc.PolicyNone && parsed.Policy != dmarc.PolicyNone {
		result.tags = append(result.tags, TagDmarcSubdomainNone)
	}
	return result
}

// evaluateSpf grades an SPF record by the qualifier of its "all" mechanism:
// -all and ~all pass, ?all, +all and a missing all fail.
func evaluateSpf(record string) evaluation {
	fields := strings.Fields(strings.ToLower(record))
	if len(fields) == 0 {
		return evaluation{status: enum.StatusFail, tags: []string{TagSpfMissing}}
	}
	if fields[0] != "v=spf1" {
		return evaluation{status: enum.StatusFail, tags: []string{TagSpfInvalid}}
	}

	for _, field := range fields[1:] {
		switch field {
		case "-all":
			return evaluation{status: enum.StatusPass, tags: []string{TagSpfAllFail}}
		case "~all":
			return evaluation{status: enum.StatusPass, tags: []string{TagSpfSoftFail}}
		case "?all":
			return evaluation{status: enum.StatusFail, tags: []string{TagSpfNeutral}}
		case "all", "+all":
			return evaluation{status: enum.StatusFail, tags: []string{TagSpfAllPass}}
		}
		if strings.HasPrefix(field, "redirect=") {
			return evaluation{status: enum.StatusInfo, tags: []string{TagSpfRedirect}}
		}
	}
	return evaluation{status: enum.StatusFail, tags: []string{TagSpfAllMissing}}
}
