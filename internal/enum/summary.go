package enum

type SummaryKind string

const (
	SummaryWeb        SummaryKind = "web"
	SummaryMail       SummaryKind = "mail"
	SummaryHTTPS      SummaryKind = "https"
	SummarySSL        SummaryKind = "ssl"
	SummaryDMARC      SummaryKind = "dmarc"
	SummarySPF        SummaryKind = "spf"
	SummaryDKIM       SummaryKind = "dkim"
	SummaryDmarcPhase SummaryKind = "dmarc_phase"
)

var SummaryKinds = []SummaryKind{
	SummaryWeb,
	SummaryMail,
	SummaryHTTPS,
	SummarySSL,
	SummaryDMARC,
	SummarySPF,
	SummaryDKIM,
	SummaryDmarcPhase,
}

func (k SummaryKind) String() string {
	return string(k)
}

const (
	CategoryPass = "pass"
	CategoryFail = "fail"
)

type AuditAction string

const (
	AuditActionAdd    AuditAction = "add"
	AuditActionUpdate AuditAction = "update"
	AuditActionRemove AuditAction = "remove"
)

func (a AuditAction) String() string {
	return string(a)
}

type AuditResource string

const (
	AuditResourceUser         AuditResource = "user"
	AuditResourceOrganization AuditResource = "organization"
	AuditResourceDomain       AuditResource = "domain"
)

func (r AuditResource) String() string {
	return string(r)
}
