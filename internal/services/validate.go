package services

// Enumerations shared by handlers and the schema CHECK constraints. Handlers
// validate before the INSERT so callers get a field-naming message instead of
// a raw driver error.

var ProjectStatuses = []string{"Pending", "In Progress", "On Hold", "Completed", "Cancelled"}

var EquipmentStatuses = []string{"Stocked", "Rented"}

var EquipmentConditions = []string{"Excellent", "Good", "Fair", "Poor", "Under Repair"}

var ExpenseCategories = []string{"material", "labor", "equipment", "transport", "utilities", "other"}

var PaymentMethods = []string{"cash", "credit", "debit", "check", "transfer"}

var LabourTypes = []string{"Mason", "Carpenter", "Electrician", "Plumber", "Painter", "Welder", "Helper"}

var PurchaseUnits = []string{"kg", "m3", "bags"}

var InquiryPackages = []string{"Design & Build", "Build Only", "Renovation/Maintenance"}

var UserRoles = []string{"GENERAL", "ADMIN"}

func OneOf(value string, allowed []string) bool {
	for _, candidate := range allowed {
		if value == candidate {
			return true
		}
	}
	return false
}
