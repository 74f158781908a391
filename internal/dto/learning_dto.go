package dto

type QuestionnaireRequest struct {
	SessionID        string  `json:"session_id" validate:"required"`
	ActiveReflective float64 `json:"active_reflective" validate:"min=-11,max=11"`
	SensingIntuitive float64 `json:"sensing_intuitive" validate:"min=-11,max=11"`
	VisualVerbal     float64 `json:"visual_verbal" validate:"min=-11,max=11"`
	SequentialGlobal float64 `json:"sequential_global" validate:"min=-11,max=11"`
}

type ResetProfileRequest struct {
	SessionID string `json:"session_id" validate:"required"`
}

type LearnerProfileResponse struct {
	SessionID            string             `json:"session_id"`
	Dimensions           map[string]float64 `json:"dimensions"`
	LearningStyle        map[string]string  `json:"learning_style"`
	TotalInteractions    int                `json:"total_interactions"`
	QuestionnaireApplied bool               `json:"questionnaire_applied"`
}
