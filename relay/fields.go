package relay

// Direction values recognized by the conditional field mapping.
const (
	DirectionImport = "import"
	DirectionExport = "export"
)

const defaultStatus = "completed"

// BuildFields derives the Airtable record payload from a submission.
//
// Named fields are copied verbatim, the import- or export-only set is merged
// in based on the direction discriminant, bookkeeping fields get their fixed
// defaults, and finally every empty entry is pruned. Booleans always
// survive pruning, including false ones, so unchecked checkboxes reach
// Airtable.
func BuildFields(sub *Submission) map[string]interface{} {
	status := sub.Status
	if status == "" {
		status = defaultStatus
	}

	fields := map[string]interface{}{
		"full_name": sub.FullName,
		"email":     sub.Email,
		"phone":     sub.Phone,
		"company":   sub.Company,

		"direction":  sub.Direction,
		"goods_type": sub.GoodsType,

		"service_type":      sub.ServiceType,
		"cargo_description": sub.CargoDescription,
		"cargo_value":       sub.CargoValue,
		"packing_service":   sub.PackingService,
		"insurance_needed":  sub.InsuranceNeeded,

		"notes":  sub.Notes,
		"status": status,

		// Automation bookkeeping, always reset on submission.
		"welcome_email_sent": false,
		"quote_email_sent":   false,
		"follow_up_sent":     false,
		"automation_status":  "none",
	}

	switch sub.Direction {
	case DirectionImport:
		fields["goods_location"] = sub.GoodsLocation
		fields["arrival_method"] = sub.ArrivalMethod
		fields["arrival_timeline"] = sub.ArrivalTimeline
		fields["customs_code_status"] = sub.CustomsCodeStatus
		fields["customs_code_number"] = sub.CustomsCodeNumber
	case DirectionExport:
		fields["export_service_needed"] = sub.ExportServiceNeeded
		fields["destination_country"] = sub.DestinationCountry
	}

	for name, ready := range sub.DocumentStatus {
		fields["doc_"+name] = ready
	}

	return pruneEmpty(fields)
}

// pruneEmpty removes entries whose value is nil or an empty string. Boolean
// values never compare equal to either, so they are always kept.
func pruneEmpty(fields map[string]interface{}) map[string]interface{} {
	for name, value := range fields {
		if value == nil || value == "" {
			delete(fields, name)
		}
	}

	return fields
}
