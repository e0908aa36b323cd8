package routes

const (
	// Health
	Health = "/health"

	// Worker endpoints
	ShiftsFeed   = "/api/v1/shifts/feed"
	ShiftsDetail = "/api/v1/shifts/{shiftID}"

	ApplicationsApply     = "/api/v1/applications/apply"
	ApplicationsMy        = "/api/v1/applications/my"
	ApplicationsCancel    = "/api/v1/applications/cancel"
	ApplicationsBulkApply = "/api/v1/applications/bulk-apply"

	ContractsWorkerGet  = "/api/v1/contracts/{applicationID}"
	ContractsWorkerSign = "/api/v1/contracts/sign"

	// Company endpoints
	CompanyShiftsCreate      = "/api/v1/company/shifts"
	CompanyShiftsList        = "/api/v1/company/shifts"
	CompanyShiftsGet         = "/api/v1/company/shifts/{shiftID}"
	CompanyShiftsSlots       = "/api/v1/company/shifts/slots"
	CompanyShiftsPromoteWave = "/api/v1/company/shifts/promote-wave"
	CompanyShiftsClose       = "/api/v1/company/shifts/close"
	CompanyShiftsCancel      = "/api/v1/company/shifts/cancel"

	CompanyApplicationsList    = "/api/v1/company/shifts/{shiftID}/applications"
	CompanyApplicationsConfirm = "/api/v1/company/applications/confirm"
	CompanyApplicationsReject  = "/api/v1/company/applications/reject"
	CompanyApplicationsCancel  = "/api/v1/company/applications/cancel"
	CompanyApplicationsWorked  = "/api/v1/company/applications/confirm-worked"

	CompanyContractsGet  = "/api/v1/company/contracts/{applicationID}"
	CompanyContractsSign = "/api/v1/company/contracts/sign"

	CompanyRelationsUpsert = "/api/v1/company/relations"
	CompanyGroupsCreate    = "/api/v1/company/collab/groups"
	CompanySchemesCreate   = "/api/v1/company/collab/schemes"
	CompanySchemesList     = "/api/v1/company/collab/schemes"
)
