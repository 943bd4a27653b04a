package apperror

// Code represents a unique error code for the application
type Code string

// General error codes
const (
	// General validation
	CodeRequiredField   Code = "REQUIRED_FIELD"
	CodeInvalidInput    Code = "INVALID_INPUT"
	CodeInvalidFormat   Code = "INVALID_FORMAT"
	CodeNotFound        Code = "NOT_FOUND"
	CodeValidationError Code = "VALIDATION_ERROR"

	// Configuration
	CodeConfigurationError Code = "CONFIGURATION_ERROR"

	// External service errors
	CodeExternalServiceError Code = "EXTERNAL_SERVICE_ERROR"
	CodeServiceTimeout       Code = "SERVICE_TIMEOUT"
	CodeRateLimitExceeded    Code = "RATE_LIMIT_EXCEEDED"

	// System errors
	CodeInternalError Code = "INTERNAL_ERROR"
	CodeUnknownError  Code = "UNKNOWN_ERROR"
)

// Explorer-specific error codes
const (
	// GraphQL transport and envelope errors
	CodeTransportError      Code = "TRANSPORT_ERROR"
	CodeEndpointUnreachable Code = "ENDPOINT_UNREACHABLE" // CORS/fetch-class failure
	CodeGraphQLError        Code = "GRAPHQL_ERROR"

	// Network switching
	CodeUnknownNetwork Code = "UNKNOWN_NETWORK"

	// Entity lookups
	CodeBlockNotFound       Code = "BLOCK_NOT_FOUND"
	CodeTransactionNotFound Code = "TRANSACTION_NOT_FOUND"
	CodeAccountNotFound     Code = "ACCOUNT_NOT_FOUND"

	// Price oracle errors
	CodePriceUnavailable Code = "PRICE_UNAVAILABLE"
	CodeOracleAPIError   Code = "ORACLE_API_ERROR"

	// Block feed errors
	CodeSubscriptionFailed Code = "SUBSCRIPTION_FAILED"
	CodeWebSocketClosed    Code = "WEBSOCKET_CLOSED"

	// Cache errors
	CodeCacheCorrupt Code = "CACHE_CORRUPT"

	// Circuit breaker errors
	CodeCircuitOpen Code = "CIRCUIT_OPEN"
)
