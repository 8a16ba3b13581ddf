package cli

// Exit codes for CLI commands.
// These codes follow Unix conventions and provide consistent error reporting
// across all CLI commands.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitError indicates a general error occurred.
	// Use for: network errors, unexpected server failures,
	// or any error that doesn't fit the specific categories below.
	ExitError = 1

	// ExitUsage indicates incorrect command usage.
	// Use for: missing required flags or arguments.
	ExitUsage = 2

	// ExitNotFound indicates a requested resource was not found.
	// Use for: unknown task, user, venture, leave or announcement IDs.
	ExitNotFound = 3

	// ExitAuth indicates the caller is not logged in or lacks the role.
	// Use for: missing or expired tokens and 401/403 responses.
	ExitAuth = 4

	// ExitValidation indicates a validation error.
	// Use for: invalid status, priority or role values, out of range progress,
	// or any input the server rejects as a business-rule violation.
	ExitValidation = 5
)
