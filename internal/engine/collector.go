package engine

import "github.com/talgya/flood-adapt/internal/geometry"

// AgentRecord is one household's state at the end of a step.
type AgentRecord struct {
	ID                   int            `json:"id"`
	Location             geometry.Point `json:"location"`
	IncomeCategory       string         `json:"income_category"`
	Savings              float64        `json:"savings"`
	EstimatedDepths      []float64      `json:"estimated_depths"`
	EstimatedDamages     []float64      `json:"estimated_damages"`
	UtilityAdapt         float64        `json:"utility_adapt"`
	UtilityNoAdapt       float64        `json:"utility_no_adapt"`
	RiskPerception       float64        `json:"risk_perception"`
	PriorRiskPerception  float64        `json:"prior_risk_perception"`
	ActualDepth          float64        `json:"actual_depth"`
	ActualDamage         float64        `json:"actual_damage"`
	IsAdapted            bool           `json:"is_adapted"`
	AdaptedAtStep        int            `json:"adapted_at_step"`
	FriendCount          int            `json:"friend_count"`
}

// StepRecord is one step's worth of collected data.
type StepRecord struct {
	Step               int           `json:"step"`
	TotalAdapted       int           `json:"total_adapted"`
	GovernmentSpending float64       `json:"government_spending"`
	Agents             []AgentRecord `json:"agents"`
}

// Collector accumulates step records over a run.
type Collector struct {
	Records []StepRecord
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Record captures the simulation state for the current step.
func (c *Collector) Record(s *Simulation) {
	rec := StepRecord{
		Step:               s.step,
		TotalAdapted:       s.TotalAdapted(),
		GovernmentSpending: s.Government.Spending(),
		Agents:             make([]AgentRecord, 0, len(s.Agents)),
	}
	for i, a := range s.Agents {
		prior := 0.0
		if a.PriorPerception != nil {
			prior = *a.PriorPerception
		}
		damages := make([]float64, len(a.Outlook))
		for j, o := range a.Outlook {
			damages[j] = o.DamageUnmitigated
		}
		rec.Agents = append(rec.Agents, AgentRecord{
			ID:                  a.ID,
			Location:            a.Location,
			IncomeCategory:      a.Income.String(),
			Savings:             a.Savings,
			EstimatedDepths:     a.EstimatedDepths,
			EstimatedDamages:    damages,
			UtilityAdapt:        a.UtilityAdapt,
			UtilityNoAdapt:      a.UtilityNoAdapt,
			RiskPerception:      a.RiskPerception,
			PriorRiskPerception: prior,
			ActualDepth:         a.ActualDepth,
			ActualDamage:        a.ActualDamage,
			IsAdapted:           a.IsAdapted,
			AdaptedAtStep:       a.AdaptedAtStep,
			FriendCount:         s.Graph.Degree(i),
		})
	}
	c.Records = append(c.Records, rec)
}

// Latest returns the most recent step record, or nil before the first step.
func (c *Collector) Latest() *StepRecord {
	if len(c.Records) == 0 {
		return nil
	}
	return &c.Records[len(c.Records)-1]
}
