package events

import "github.com/tabibiq/matchengine/core/model"

// RequestEvent is published when a new consultation request is processed.
type RequestEvent struct {
	MatchID  string
	Request  model.ConsultationRequest
	PoolSize int
}
