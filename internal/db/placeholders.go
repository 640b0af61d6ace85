package db

// Display names used when a referenced row is missing or inactive.
const (
	UnknownState    = "Unknown"
	UnknownPriority = "Unknown"
	MissingProject  = "Project not found"
	UnassignedUser  = "Unassigned"
	UnknownUser     = "Unknown user"
	MissingTask     = "No task"
)
