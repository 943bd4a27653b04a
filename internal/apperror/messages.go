package apperror

// messages maps error codes to human-readable messages
var messages = map[Code]string{
	// General validation
	CodeRequiredField:   "Required field is missing",
	CodeInvalidInput:    "Invalid input provided",
	CodeInvalidFormat:   "Invalid data format",
	CodeNotFound:        "Resource not found",
	CodeValidationError: "Validation error",

	// Configuration
	CodeConfigurationError: "Configuration error",

	// External service errors
	CodeExternalServiceError: "External service error",
	CodeServiceTimeout:       "Service request timeout",
	CodeRateLimitExceeded:    "Rate limit exceeded",

	// System errors
	CodeInternalError: "Internal error",
	CodeUnknownError:  "An unknown error occurred",

	// GraphQL transport and envelope errors
	CodeTransportError:      "Endpoint returned a non-success HTTP status",
	CodeEndpointUnreachable: "Endpoint is unreachable from this client; its CORS policy may be blocking requests",
	CodeGraphQLError:        "GraphQL query returned errors",

	// Network switching
	CodeUnknownNetwork: "Unknown network identifier",

	// Entity lookups
	CodeBlockNotFound:       "Block not found",
	CodeTransactionNotFound: "Transaction not found in the pending pool or recent blocks",
	CodeAccountNotFound:     "Account not found",

	// Price oracle errors
	CodePriceUnavailable: "Price data unavailable and no cached value exists",
	CodeOracleAPIError:   "Price oracle API error",

	// Block feed errors
	CodeSubscriptionFailed: "Block subscription failed",
	CodeWebSocketClosed:    "WebSocket connection closed",

	// Cache errors
	CodeCacheCorrupt: "Persisted cache is corrupt and was discarded",

	// Circuit breaker errors
	CodeCircuitOpen: "Circuit breaker is open",
}
