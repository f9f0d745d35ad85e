package enum

type ScanType string

const (
	ScanDKIM  ScanType = "dkim"
	ScanDMARC ScanType = "dmarc"
	ScanSPF   ScanType = "spf"
	ScanHTTPS ScanType = "https"
	ScanSSL   ScanType = "ssl"
)

var ScanTypes = []ScanType{ScanDKIM, ScanDMARC, ScanSPF, ScanHTTPS, ScanSSL}

func (t ScanType) String() string {
	return string(t)
}

func (t ScanType) Valid() bool {
	for _, s := range ScanTypes {
		if s == t {
			return true
		}
	}
	return false
}

type Status string

const (
	StatusPass    Status = "pass"
	StatusFail    Status = "fail"
	StatusInfo    Status = "info"
	StatusUnknown Status = ""
)

func (s Status) String() string {
	return string(s)
}

func (s Status) GraphQL() string {
	switch s {
	case StatusPass:
		return "PASS"
	case StatusFail:
		return "FAIL"
	case StatusInfo:
		return "INFO"
	default:
		return "UNKNOWN"
	}
}

func ParseStatus(s string) Status {
	switch Status(s) {
	case StatusPass, StatusFail, StatusInfo:
		return Status(s)
	default:
		return StatusUnknown
	}
}

type DmarcPhase string

const (
	DmarcPhaseNotImplemented DmarcPhase = "not implemented"
	DmarcPhaseAssess         DmarcPhase = "assess"
	DmarcPhaseDeploy         DmarcPhase = "deploy"
	DmarcPhaseEnforce        DmarcPhase = "enforce"
	DmarcPhaseMaintain       DmarcPhase = "maintain"
)

var DmarcPhases = []DmarcPhase{
	DmarcPhaseNotImplemented,
	DmarcPhaseAssess,
	DmarcPhaseDeploy,
	DmarcPhaseEnforce,
	DmarcPhaseMaintain,
}

func (p DmarcPhase) String() string {
	return string(p)
}
