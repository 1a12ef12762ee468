package events

import "github.com/vsinha/slotwise/pkg/domain/entities"

const (
	AnalysisStartedEvent          = "analysis.started"
	AnalysisRejectedEvent         = "analysis.rejected"
	RowsNormalizedEvent           = "rows.normalized"
	VelocityClassifiedEvent       = "velocity.classified"
	AffinityComputedEvent         = "affinity.computed"
	MisplacementsDetectedEvent    = "misplacements.detected"
	RecommendationsGeneratedEvent = "recommendations.generated"
	AdvisoryFellBackEvent         = "advisory.fell_back"
	AnalysisCompletedEvent        = "analysis.completed"
)

// AllAnalysisEvents lists every event type an analysis run can emit
var AllAnalysisEvents = []string{
	AnalysisStartedEvent,
	AnalysisRejectedEvent,
	RowsNormalizedEvent,
	VelocityClassifiedEvent,
	AffinityComputedEvent,
	MisplacementsDetectedEvent,
	RecommendationsGeneratedEvent,
	AdvisoryFellBackEvent,
	AnalysisCompletedEvent,
}

type AnalysisStarted struct {
	WarehouseID string `json:"warehouse_id,omitempty"`
	Rows        int    `json:"rows"`
}

type AnalysisRejected struct {
	Code   string   `json:"code"`
	Fields []string `json:"fields,omitempty"`
}

type RowsNormalized struct {
	Lines   int `json:"lines"`
	Dropped int `json:"dropped"`
}

type VelocityClassified struct {
	SKUs        int                            `json:"skus"`
	PeriodDays  int                            `json:"period_days"`
	ClassCounts map[entities.VelocityClass]int `json:"class_counts"`
}

type AffinityComputed struct {
	Orders int `json:"orders"`
	Pairs  int `json:"pairs"`
}

type MisplacementsDetected struct {
	Count        int    `json:"count"`
	DistanceMode string `json:"distance_mode"`
}

type RecommendationsGenerated struct {
	Count   int    `json:"count"`
	Advisor string `json:"advisor"`
}

type AdvisoryFellBack struct {
	Advisor string `json:"advisor"`
	Reason  string `json:"reason"`
}

type AnalysisCompleted struct {
	Recommendations int `json:"recommendations"`
	Warnings        int `json:"warnings"`
}
