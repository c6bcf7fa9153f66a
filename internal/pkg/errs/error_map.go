/*
Package errs provides custom error types and application-level error code constants.

This file defines the map from error codes to the CustomError struct, used to standardize
user-facing messages and internal error handling.
*/
package errs

// errorMap stores the detailed CustomError struct corresponding to every application error code.
// The key is the error code (int), and the value contains the user message.
var errorMap = map[int]CustomError{
	// 1xxx: Configuration Errors
	ErrRoomRequired:        {Code: ErrRoomRequired, Message: "A room identifier is required to start a chat session."},
	ErrDisplayNameRequired: {Code: ErrDisplayNameRequired, Message: "Display name cannot be empty."},
	ErrServerURLInvalid:    {Code: ErrServerURLInvalid, Message: "Invalid chat server URL %q: expected a ws:// or wss:// endpoint."},

	// 2xxx: Session Lifecycle Errors
	ErrConnectFailed: {Code: ErrConnectFailed, Message: "Could not connect to the chat server: %v"},
	ErrSessionClosed: {Code: ErrSessionClosed, Message: "The chat session has ended. No further messages can be sent."},

	// 5xxx: Internal Errors
	ErrUnknown: {Code: ErrUnknown, Message: "Something went wrong. Please try again."},
}
