/*
Package errs provides custom error types and application-level error code constants.

These error codes are used to clearly identify specific configuration or session errors
both internally and in messages surfaced to the user.
*/
package errs

// 1xxx: Configuration Errors (fatal to session establishment)
const (
	// ErrRoomRequired indicates that no room identifier was supplied.
	ErrRoomRequired = 1001

	// ErrDisplayNameRequired indicates that the chosen display name was empty or whitespace-only.
	ErrDisplayNameRequired = 1002

	// ErrServerURLInvalid indicates that the configured chat endpoint is not a valid ws/wss URL.
	ErrServerURLInvalid = 1003
)

// 2xxx: Session Lifecycle Errors
const (
	// ErrConnectFailed indicates that the connection to the chat endpoint could not be established.
	ErrConnectFailed = 2001

	// ErrSessionClosed indicates an outbound send was attempted after the session ended.
	ErrSessionClosed = 2002
)

// 5xxx: Internal Errors
const (
	// ErrUnknown represents an unclassified, general internal error.
	ErrUnknown = 5000
)
