package domain

import "time"

// EnvironmentalReport is a citizen incident report. ResolutionDate is set the
// first time Status becomes completed and never changes afterwards.
type EnvironmentalReport struct {
	ID              int64        `db:"report_id" json:"report_id"`
	LocationID      int64        `db:"location_id" json:"location_id"`
	ReportType      ReportType   `db:"report_type" json:"report_type"`
	Severity        Severity     `db:"severity" json:"severity"`
	Status          ReportStatus `db:"status" json:"status"`
	Title           string       `db:"title" json:"title"`
	Description     string       `db:"description" json:"description"`
	ReporterName    string       `db:"reporter_name" json:"reporter_name"`
	ReporterContact string       `db:"reporter_contact" json:"reporter_contact"`
	ReportDate      Date         `db:"report_date" json:"report_date"`
	ResolutionDate  *Date        `db:"resolution_date" json:"resolution_date"`
	PhotoURL        *string      `db:"photo_url" json:"photo_url"`
	CreatedAt       time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time    `db:"updated_at" json:"updated_at"`
}

// ApplyStatus moves the report to status and stamps the resolution date on
// the first transition to completed.
func (r *EnvironmentalReport) ApplyStatus(status ReportStatus, today Date) {
	r.Status = status
	if status == ReportStatusCompleted && r.ResolutionDate == nil {
		d := today
		r.ResolutionDate = &d
	}
}

type ReportDetail struct {
	EnvironmentalReport
	Location Location `db:"location" json:"location"`
}

type ReportFilter struct {
	LocationID *int64
	ReportType *ReportType
	Status     *ReportStatus
	Severity   *Severity
	Limit      int
}

// ReportEdit is an admin edit. Nil fields are left untouched.
type ReportEdit struct {
	Status          *ReportStatus
	Severity        *Severity
	ReportType      *ReportType
	Title           *string
	Description     *string
	ReporterName    *string
	ReporterContact *string
}

// Apply copies the set fields onto r. A status change goes through
// ApplyStatus so the resolution date rule holds for admin edits too.
func (e ReportEdit) Apply(r *EnvironmentalReport, today Date) {
	if e.Status != nil {
		r.ApplyStatus(*e.Status, today)
	}
	if e.Severity != nil {
		r.Severity = *e.Severity
	}
	if e.ReportType != nil {
		r.ReportType = *e.ReportType
	}
	if e.Title != nil {
		r.Title = *e.Title
	}
	if e.Description != nil {
		r.Description = *e.Description
	}
	if e.ReporterName != nil {
		r.ReporterName = *e.ReporterName
	}
	if e.ReporterContact != nil {
		r.ReporterContact = *e.ReporterContact
	}
}

type ReportTypeCount struct {
	ReportType ReportType `db:"report_type" json:"type"`
	Count      int        `db:"report_count" json:"count"`
}
