package relay

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/clearlane/formrelay/airtable"
)

// SubmittedMessage is the message returned on every successful submission.
const SubmittedMessage = "Form submitted successfully"

// Handler runs the submission pipeline against a single Airtable table.
//
// Each call builds its payload from scratch, so a Handler is safe for
// concurrent use by the hosting runtime.
type Handler struct {
	Client *airtable.Client
	Table  string
	Logger *log.Logger
}

// NewHandler returns a Handler relaying submissions into table.
func NewHandler(client *airtable.Client, table string, logger *log.Logger) *Handler {
	return &Handler{
		Client: client,
		Table:  table,
		Logger: logger,
	}
}

// Submit relays one submission to Airtable. A non-empty airtable_record_id
// selects an update of that record, otherwise a new record is created.
func (h *Handler) Submit(ctx context.Context, sub *Submission) (*Result, error) {
	submissionID := uuid.NewString()
	fields := BuildFields(sub)

	var record *airtable.Record
	var err error
	var action string

	if sub.AirtableRecordID != "" {
		action = "updated"
		record, err = h.Client.UpdateRecord(ctx, h.Table, sub.AirtableRecordID, fields)
	} else {
		action = "created"
		record, err = h.Client.CreateRecord(ctx, h.Table, fields)
	}

	if err != nil {
		h.Logger.Printf("submission %s failed: %v", submissionID, err)
		return nil, err
	}

	h.Logger.Printf("submission %s %s record %s (%d fields)", submissionID, action, record.ID, len(fields))

	return &Result{
		Success:  true,
		RecordID: record.ID,
		Message:  SubmittedMessage,
	}, nil
}
