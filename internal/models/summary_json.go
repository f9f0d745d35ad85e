package models

import "database/sql/driver"

type SummaryJSON Summary

func (s SummaryJSON) Value() (driver.Value, error) {
	return valueJSON(s)
}

func (s *SummaryJSON) Scan(value interface{}) error {
	return scanJSON(value, s)
}
