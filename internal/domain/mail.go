package domain

const (
	MailTypeConfigTest        = "config_test"
	MailTypeNewComplaint      = "new_complaint"
	MailTypeStatusChanged     = "status_changed"
	MailTypeComplaintResolved = "complaint_resolved"
	MailTypeResetPassword     = "reset_password"
)

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type ConfigTestMailData struct {
	Time string `json:"time"`
}

type NewComplaintMailData struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	Category      string `json:"category"`
	Priority      string `json:"priority"`
	Status        string `json:"status"`
	DateSubmitted string `json:"dateSubmitted"`
	UserEmail     string `json:"userEmail"`
	BaseURL       string `json:"baseURL"`
}

type StatusChangedMailData struct {
	Title      string `json:"title"`
	OldStatus  string `json:"oldStatus"`
	NewStatus  string `json:"newStatus"`
	AdminNotes string `json:"adminNotes"`
	UpdatedAt  string `json:"updatedAt"`
	BaseURL    string `json:"baseURL"`
}

type ComplaintResolvedMailData struct {
	Title        string `json:"title"`
	Category     string `json:"category"`
	Priority     string `json:"priority"`
	AdminNotes   string `json:"adminNotes"`
	ResolvedDate string `json:"resolvedDate"`
	BaseURL      string `json:"baseURL"`
}

type ResetPasswordMailData struct {
	Name       string `json:"name"`
	OTP        string `json:"otp"`
	Expiration int    `json:"expiration"`
}
