// Package relay implements the form submission pipeline: it reshapes an
// inbound form body into an Airtable record payload, issues a single create
// or update call, and maps the outcome to the response the browser expects.
package relay

// Submission is the parsed JSON body of an incoming form request. Fields not
// listed here are ignored.
type Submission struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Company  string `json:"company"`

	// Direction selects which conditional field set applies, "import" or
	// "export".
	Direction string `json:"direction"`
	GoodsType string `json:"goods_type"`

	// Import-only fields.
	GoodsLocation     string `json:"goods_location"`
	ArrivalMethod     string `json:"arrival_method"`
	ArrivalTimeline   string `json:"arrival_timeline"`
	CustomsCodeStatus string `json:"customs_code_status"`
	CustomsCodeNumber string `json:"customs_code_number"`

	// Export-only fields.
	ExportServiceNeeded string `json:"export_service_needed"`
	DestinationCountry  string `json:"destination_country"`

	ServiceType      string `json:"service_type"`
	CargoDescription string `json:"cargo_description"`
	CargoValue       string `json:"cargo_value"`
	PackingService   bool   `json:"packing_service"`
	InsuranceNeeded  bool   `json:"insurance_needed"`

	// DocumentStatus maps a document name to whether the customer already
	// has it ready.
	DocumentStatus map[string]bool `json:"document_status"`

	Status string `json:"status"`
	Notes  string `json:"notes"`

	// AirtableRecordID selects update over create when non-empty.
	AirtableRecordID string `json:"airtable_record_id"`
}

// Result is the success body returned to the browser.
type Result struct {
	Success  bool   `json:"success"`
	RecordID string `json:"recordId"`
	Message  string `json:"message"`
}
