package dto

import "time"

// ScanRequested is published for the scanners when a one time scan is requested.
type ScanRequested struct {
	DomainID    string   `json:"domainId"`
	Domain      string   `json:"domain"`
	Selectors   []string `json:"selectors"`
	RequestedBy string   `json:"requestedBy"`
}

// ScanCompleted is published by a scanner once one scan type has run.
// Status is optional: DMARC and SPF results are evaluated from Record.
type ScanCompleted struct {
	DomainID     string                 `json:"domainId"`
	Domain       string                 `json:"domain"`
	ScanType     string                 `json:"scanType"`
	Status       string                 `json:"status,omitempty"`
	Selector     string                 `json:"selector,omitempty"`
	Record       string                 `json:"record,omitempty"`
	GuidanceTags []string               `json:"guidanceTags,omitempty"`
	Data         map[string]interface{} `json:"data,omitempty"`
	Timestamp    time.Time              `json:"timestamp"`
}
