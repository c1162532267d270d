package dto

// DashboardStatsResponse is the summary view payload.
type DashboardStatsResponse struct {
	TotalContacts    int64                         `json:"total_contacts"`
	ActiveMailItems  int64                         `json:"active_mail_items"`
	PendingFollowups int64                         `json:"pending_followups"`
	RecentMailItems  []MailItemWithContactResponse `json:"recent_mail_items"`
	OverdueFollowups []OutreachMessageResponse     `json:"overdue_followups"`
}

// ReassignDataResponse reports both outcomes of the dual-path reassignment.
type ReassignDataResponse struct {
	Success        bool   `json:"success"`
	ReassignedRows int64  `json:"reassigned_rows"`
	PrimaryError   string `json:"primary_error,omitempty"`
	FallbackRows   int64  `json:"fallback_rows,omitempty"`
	FallbackError  string `json:"fallback_error,omitempty"`
}
