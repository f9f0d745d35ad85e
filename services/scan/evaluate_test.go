package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/canada-ca/tracker-sub010/internal/enum"
)

func TestEvaluateDmarc(t *testing.T) {
	tests := []struct {
		name   string
		record string
		status enum.Status
		phase  enum.DmarcPhase
		tags   []string
	}{
		{
			name:   "missing",
			record: "",
			status: enum.StatusFail,
			phase:  enum.DmarcPhaseNotImplemented,
			tags:   []string{TagDmarcMissing},
		},
		{
			name:   "invalid",
			record: "v=spf1 -all",
			status: enum.StatusFail,
			phase:  enum.DmarcPhaseNotImplemented,
			tags:   []string{TagDmarcInvalid},
		},
		{
			name:   "none without reports",
			record: "v=DMARC1; p=none",
			status: enum.StatusFail,
			phase:  enum.DmarcPhaseAssess,
			tags:   []string{TagDmarcRuaMissing, TagDmarcPolicyNone},
		},
		{
			name:   "none with reports",
			record: "v=DMARC1; p=none; rua=mailto:dmarc@canada.ca",
			status: enum.StatusFail,
			phase:  enum.DmarcPhaseDeploy,
			tags:   []string{TagDmarcPolicyNone},
		},
		{
			name:   "quarantine partial",
			record: "v=DMARC1; p=quarantine; pct=50; rua=mailto:dmarc@canada.ca",
			status: enum.StatusPass,
			phase:  enum.DmarcPhaseEnforce,
			tags:   []string{TagDmarcPolicyQuarantine, TagDmarcPercentPartial},
		},
		{
			name:   "quarantine full",
			record: "v=DMARC1; p=quarantine; pct=100; rua=mailto:dmarc@canada.ca",
			status: enum.StatusPass,
			phase:  enum.DmarcPhaseMaintain,
			tags:   []string{TagDmarcPolicyQuarantine},
		},
		{
			name:   "quarantine without pct",
			record: "v=DMARC1; p=quarantine; rua=mailto:dmarc@canada.ca",
			status: enum.StatusPass,
			phase:  enum.DmarcPhaseMaintain,
			tags:   []string{TagDmarcPolicyQuarantine},
		},
		{
			name:   "reject partial",
			record: "v=DMARC1; p=reject; pct=50; rua=mailto:dmarc@canada.ca",
			status: enum.StatusPass,
			phase:  enum.DmarcPhaseEnforce,
			tags:   []string{TagDmarcPolicyReject, TagDmarcPercentPartial},
		},
		{
			name:   "reject",
			record: "v=DMARC1; p=reject; rua=mailto:dmarc@canada.ca",
			status: enum.StatusPass,
			phase:  enum.DmarcPhaseMaintain,
			tags:   []string{TagDmarcPolicyReject},
		},
		{
			name:   "reject with open subdomains",
			record: "v=DMARC1; p=reject; sp=none; rua=mailto:dmarc@canada.ca",
			status: enum.StatusPass,
			phase:  enum.DmarcPhaseMaintain,
			tags:   []string{TagDmarcPolicyReject, TagDmarcSubdomainNone},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := evaluateDmarc(tt.record)
			assert.Equal(t, tt.status, result.status)
			assert.Equal(t, tt.phase, result.phase)
			assert.Equal(t, tt.tags, result.tags)
		})
	}
}

func TestEvaluateSpf(t *testing.T) {
	tests := []struct {
		record string
		status enum.Status
		tag    string
	}{
		{"", enum.StatusFail, TagSpfMissing},
		{"v=DMARC1; p=none", enum.StatusFail, TagSpfInvalid},
		{"v=spf1 include:spf.protection.outlook.com -all", enum.StatusPass, TagSpfAllFail},
		{"v=spf1 ip4:192.0.2.0/24 ~all", enum.StatusPass, TagSpfSoftFail},
		{"v=spf1 ?all", enum.StatusFail, TagSpfNeutral},
		{"v=spf1 +all", enum.StatusFail, TagSpfAllPass},
		{"v=spf1 include:_spf.google.com", enum.StatusFail, TagSpfAllMissing},
		{"v=spf1 redirect=_spf.canada.ca", enum.StatusInfo, TagSpfRedirect},
	}
	for _, tt := range tests {
		result := evaluateSpf(tt.record)
		assert.Equal(t, tt.status, result.status, tt.record)
		assert.Equal(t, []string{tt.tag}, result.tags, tt.record)
	}
}
