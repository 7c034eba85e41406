package flagstaff

const (
	// Name is the service name reported in logs and status responses
	Name = "flagstaff"

	// Version is the current release of the runtime
	Version = "0.1.0"
)
