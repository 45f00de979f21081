package redisx

import "time"

// Draft fields live under wizard:{owner}:{field}; key layout is owned by the
// draft store, this package only decides how long an abandoned draft survives.
var TTLDraft = 7 * 24 * time.Hour
