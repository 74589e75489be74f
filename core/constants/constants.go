package constants

// Context keys
const (
	ContextTokenData = "token_data"
)

// Database pool defaults
const (
	DatabaseSSLMode         = "disable"
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 5
	DatabaseConnMaxLifetime = 30 // minutes
)

// Redis key prefixes
const (
	RedisKeyTokenBlacklist = "auth:blacklist:"
)

// Notification types emitted by the event lifecycle
const (
	NotificationTypeJoinRequest     = "join_request"
	NotificationTypeRequestAccepted = "request_accepted"
	NotificationTypeRequestDeclined = "request_declined"
	NotificationTypeParticipantLeft = "participant_left"
	NotificationTypeEventCancelled  = "event_cancelled"
	NotificationTypeCoachBooking    = "coach_booking"
)
