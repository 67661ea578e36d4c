package shared

// Background task types handled by the worker
const (
	TypeDispatchLoyaltyOutbox = "loyalty:dispatch_outbox"
	TypeCleanupLoyaltyOutbox  = "loyalty:cleanup_outbox"
	TypeRemoveExpiredPromos   = "promo:remove_expired"
)

// Queue names with their priorities configured in the worker server
const (
	QueueCritical = "critical"
	QueueDefault  = "default"
	QueueLow      = "low"
)
