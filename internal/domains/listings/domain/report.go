package domain

import "time"

// Report is a moderation flag raised by a community member.
type Report struct {
	User              string
	Feedback          string
	AdditionalComment string
	ReportedAt        time.Time
}

// FileReport flags the listing and records the report. Repeated reports from
// the same user accumulate.
func (l *Listing) FileReport(report Report) {
	l.IsReported = true
	l.ReportedBy = append(l.ReportedBy, report)
}

// DismissReports clears the flag and every recorded report.
func (l *Listing) DismissReports() {
	l.IsReported = false
	l.ReportedBy = []Report{}
}
