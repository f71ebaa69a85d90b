package response

const (
	// MessageSuccess is the message of every 200 envelope.
	MessageSuccess = "Success"

	// DefaultErrorMessage hides internal failures from clients.
	DefaultErrorMessage = "Something went wrong"

	InternalServerErrorCode = 500
	TooManyRequestsCode     = 429
)
