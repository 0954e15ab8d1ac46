package entity

import (
	"time"
)

// Email Import Status
const (
	StatusPending    = "PENDING"
	StatusProcessing = "PROCESSING"
	StatusCompleted  = "COMPLETED"
	StatusFailed     = "FAILED"
	StatusSkipped    = "SKIPPED"
)

// Email represents a booking email fetched from Gmail or submitted
// directly for import.
type Email struct {
	EmailID         string                 `bson:"emailId"`
	From            string                 `bson:"from"`
	To              string                 `bson:"to"`
	Subject         string                 `bson:"subject"`
	Body            string                 `bson:"body"`
	HTMLBody        string                 `bson:"htmlBody"`
	ReceivedAt      time.Time              `bson:"receivedAt"`
	Attachments     []Attachment           `bson:"attachments"`
	Labels          []string               `bson:"labels"`
	ImportedAt      time.Time              `bson:"importedAt"`
	ImportStatus    string                 `bson:"importStatus"`
	ImporterType    string                 `bson:"importerType"`
	ImportStartedAt time.Time              `bson:"importStartedAt"`
	ImportSteps     ImportSteps            `bson:"importSteps"`
	ErrorDetail     string                 `bson:"errorDetail"`
	ExtractedData   map[string]interface{} `bson:"extractedData"`
}

// Attachment is raw attachment content carried alongside an email. Only
// text-shaped attachments are fed to the parser.
type Attachment struct {
	Filename    string `bson:"filename"`
	ContentType string `bson:"contentType"`
	Data        []byte `bson:"data"`
}

// IsText reports whether the attachment content can be parsed as plain text.
func (a Attachment) IsText() bool {
	return a.ContentType == "text/plain" || a.ContentType == "text/html"
}

type ImportSteps struct {
	BodyParsed        bool `bson:"bodyParsed"`
	AttachmentsParsed int  `bson:"attachmentsParsed"`
	ItemsExtracted    int  `bson:"itemsExtracted"`
	TripCreated       bool `bson:"tripCreated"`
}
