package constant

import "time"

const (
	// LocalsUserIDKey is the fiber ctx.Locals key holding the authenticated user's ID.
	LocalsUserIDKey = "userId"

	// ContextKeyRequestID is the fiber ctx.Locals key holding the request ID.
	ContextKeyRequestID = "requestId"

	// RequestIDHeader carries the request ID back to the client.
	RequestIDHeader = "X-Tonedrill-Request-ID"

	// AuthorizationScheme is the expected scheme of the Authorization header.
	AuthorizationScheme = "Bearer"
)

const (
	IdempotencyKeyHeader      = "X-Idempotency-Key"
	IdempotencyHeader         = "X-Tonedrill-Idempotency"
	IdempotencyKeyLocalsKey   = "idempotencyKey"
	IdempotencyKeyLengthLimit = 128

	AttemptIdempotencyLifetime      = time.Hour * 24
	AttemptIdempotencyRedisHashKey  = "idempotency:attempts"
	SessionTokenRedisKeyPrefix      = "session-token:"
	StatsCacheRedisKeyPrefix        = "stats"
	AttemptSubmissionRedsyncLockFmt = "mutex:attempt-submit:%s"
)

// NATS subjects and stream naming for the attempt submission queue.
const (
	AttemptStreamName   = "tonedrill-attempts"
	AttemptSubject      = "ATTEMPT.SINGLE"
	AttemptSubjectGlob  = "ATTEMPT.*"
	AttemptConsumerName = "tonedrill-attempts"
)

// Drill identifiers. Only the intervals drill is practicable; the others are
// catalog stubs awaiting implementation.
const (
	DrillIntervals    = "intervals"
	DrillChords       = "chords"
	DrillProgressions = "progressions"
	DrillRhythm       = "rhythm"
)

// Prompt kinds.
const (
	KindInterval    = "INTERVAL"
	KindChord       = "CHORD"
	KindProgression = "PROGRESSION"
)

// ModeMajor is the only tonal mode prompts are generated in.
const ModeMajor = "major"

// Stats query ranges.
const (
	StatsRange7D  = "7d"
	StatsRange30D = "30d"
	StatsRangeAll = "all"
)

// StatsRangeDays maps a bounded stats range to its trailing window size in
// calendar days, inclusive of today.
var StatsRangeDays = map[string]int{
	StatsRange7D:  7,
	StatsRange30D: 30,
}
