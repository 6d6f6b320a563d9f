package prediction

import (
	"time"

	"github.com/google/uuid"

	"github.com/arogyalabs/cardioscope/internal/domain/assessment"
)

// Source records which engine produced the stored risk score.
type Source string

const (
	SourceMLBackend  Source = "ml-backend"
	SourceSimulation Source = "simulation"
)

func (s Source) IsValid() bool {
	return s == SourceMLBackend || s == SourceSimulation
}

// ModelScores holds the per-model sub-predictions reported by the remote
// ensemble. Empty for simulation-sourced predictions.
type ModelScores struct {
	XGBoost       *float64 `json:"xgboost,omitempty"`
	RandomForest  *float64 `json:"random_forest,omitempty"`
	NeuralNetwork *float64 `json:"neural_network,omitempty"`
}

// Prediction is one persisted risk-assessment run. Rows are append-only:
// a prediction is a snapshot of what the engines said at a point in time
// and is never updated.
type Prediction struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`

	UserID uuid.UUID `gorm:"column:user_id;type:uuid;not null;index"`
	Source Source    `gorm:"column:source;type:varchar(20);not null;index"`

	RiskScore    float64                 `gorm:"column:risk_score;not null"`
	RiskCategory assessment.RiskCategory `gorm:"column:risk_category;type:varchar(20);not null;index"`
	Confidence   *float64                `gorm:"column:confidence"`

	ModelScores *ModelScores               `gorm:"column:model_scores;serializer:json"`
	Assessment  *assessment.RiskAssessment `gorm:"column:assessment;serializer:json"`

	// Patient input snapshot, denormalized for reporting queries.
	PatientAge        *float64 `gorm:"column:patient_age"`
	PatientGender     string   `gorm:"column:patient_gender;type:varchar(10)"`
	RestingBP         *float64 `gorm:"column:resting_bp"`
	Cholesterol       *float64 `gorm:"column:cholesterol"`
	FastingBloodSugar *bool    `gorm:"column:fasting_blood_sugar"`
	MaxHeartRate      *float64 `gorm:"column:max_heart_rate"`
	ExerciseAngina    *bool    `gorm:"column:exercise_angina"`
	OldPeak           *float64 `gorm:"column:oldpeak"`
	STSlope           string   `gorm:"column:st_slope;type:varchar(20)"`

	Recommendations []string `gorm:"column:recommendations;serializer:json"`
}

func (Prediction) TableName() string {
	return "clinical.predictions"
}

// IsHighRisk reports whether the stored category warrants clinical
// follow-up.
func (p *Prediction) IsHighRisk() bool {
	return p.RiskCategory == assessment.CategoryHigh || p.RiskCategory == assessment.CategoryVeryHigh
}

// ListQuery defines filtering for prediction history queries. Results are
// always ordered most recent first.
type ListQuery struct {
	UserID uuid.UUID
	Limit  int
}
