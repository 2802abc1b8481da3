package domains

import (
	"strings"

	"github.com/cdtdelta/insiderwatch/internal/model"
	"github.com/cdtdelta/insiderwatch/internal/table"
)

func emailDomain(t Thresholds) *Domain {
	externalEmail := func(r model.Record) bool {
		to := r.String("emailRecipient")
		return strings.Contains(to, "@") && !r.Contains("emailRecipient", t.CompanyDomain)
	}

	return &Domain{
		ID:          model.Email,
		Title:       "Email & Cloud Apps",
		Heading:     "Email & Cloud Apps",
		Description: "Monitor email communications and cloud application activities",
		Noun:        "activities",
		Schema: &table.Schema{
			Columns: []table.Column{
				timestampColumn(),
				col("applicationName", "Application", true, table.KindText),
				col("emailSender", "Sender", true, table.KindText),
				col("emailRecipient", "Recipient", true, table.KindText),
				col("emailSubject", "Subject", false, table.KindText),
				col("attachmentDetails", "Attachment Details", false, table.KindText),
				col("uploadVolume", "Upload Volume", true, table.KindBytes),
				col("downloadVolume", "Download Volume", true, table.KindBytes),
				col("cloudActionType", "Action Type", true, table.KindText),
				userColumn(),
				riskColumn(),
			},
			SearchFields: []string{"applicationName", "emailSender", "emailRecipient", model.KeyUser},
			Filters: []table.Filter{
				highRiskFilter(t),
				{ID: "external-email", Label: "External Email", Match: externalEmail},
				{ID: "large-upload", Label: "Large Upload", Match: greaterThan("uploadVolume", t.LargeUploadBytes)},
				{ID: "external-users", Label: "External Users", Match: externalUser(t)},
			},
			Stats: []table.Stat{
				total("Total Activities"),
				highRiskStat("High Risk", t),
				{Name: "externalEmails", Label: "External Emails", Compute: table.Count(externalEmail)},
				{Name: "totalUploadVolume", Label: "Uploaded", Format: table.FormatByteSize, Compute: table.Sum("uploadVolume")},
			},
		},
		Section: "email_cloud",
		AgentFields: map[string]string{
			"Timestamp":           model.KeyTimestamp,
			"ApplicationName":     "applicationName",
			"EmailSender":         "emailSender",
			"EmailRecipient":      "emailRecipient",
			"EmailSubject":        "emailSubject",
			"AttachmentDetails":   "attachmentDetails",
			"UploadVolume":        "uploadVolume",
			"DownloadVolume":      "downloadVolume",
			"CloudActionType":     "cloudActionType",
			"CloudAPICallDetails": "cloudApiCallDetails",
			"User":                model.KeyUser,
			"RiskScore":           model.KeyRisk,
		},
		Samples: []model.Record{
			{
				"timestamp": "2024-01-20 14:30:15 UTC", "applicationName": "Outlook",
				"emailSender": "john.doe@company.com", "emailRecipient": "external@competitor.com",
				"emailSubject": "Q4 Financial Results - Confidential", "attachmentDetails": "financial_data.xlsx (2.5MB)",
				"uploadVolume": 0.0, "downloadVolume": 0.0, "cloudActionType": "Email Send",
				"cloudApiCallDetails": "SMTP Send", "user": "john.doe", "riskScore": 8.0,
			},
			{
				"timestamp": "2024-01-20 14:25:42 UTC", "applicationName": "OneDrive",
				"emailSender": "", "emailRecipient": "", "emailSubject": "", "attachmentDetails": "Multiple files (15.2MB)",
				"uploadVolume": 15728640.0, "downloadVolume": 0.0, "cloudActionType": "Upload",
				"cloudApiCallDetails": "Graph API Upload", "user": "sarah.wilson", "riskScore": 6.0,
			},
			{
				"timestamp": "2024-01-20 14:20:18 UTC", "applicationName": "GitHub",
				"emailSender": "", "emailRecipient": "", "emailSubject": "", "attachmentDetails": "source_code.zip (5.8MB)",
				"uploadVolume": 6082560.0, "downloadVolume": 0.0, "cloudActionType": "Repository Push",
				"cloudApiCallDetails": "Git Push API", "user": "mike.johnson", "riskScore": 7.0,
			},
			{
				"timestamp": "2024-01-20 14:15:33 UTC", "applicationName": "Gmail",
				"emailSender": "admin@company.com", "emailRecipient": "personal@gmail.com",
				"emailSubject": "System Access Credentials", "attachmentDetails": "credentials.txt (1KB)",
				"uploadVolume": 0.0, "downloadVolume": 0.0, "cloudActionType": "Email Send",
				"cloudApiCallDetails": "Gmail API Send", "user": "admin", "riskScore": 10.0,
			},
			{
				"timestamp": "2024-01-20 14:10:55 UTC", "applicationName": "SharePoint",
				"emailSender": "", "emailRecipient": "", "emailSubject": "", "attachmentDetails": "project_files.zip (8.9MB)",
				"uploadVolume": 0.0, "downloadVolume": 9329664.0, "cloudActionType": "Download",
				"cloudApiCallDetails": "SharePoint REST API", "user": "contractor.ext", "riskScore": 5.0,
			},
		},
	}
}
