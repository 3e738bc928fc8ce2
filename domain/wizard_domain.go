package domain

import "errors"

var (
	MessageSuccessGetWizard    = "wizard state retrieved successfully"
	MessageSuccessApplyAnswers = "answers applied successfully"
	MessageSuccessAdvance      = "advanced to next step"
	MessageSuccessBack         = "returned to previous step"
	MessageSuccessDashboard    = "returned to dashboard"
	MessageSuccessRestart      = "questionnaire restarted"
	MessageSuccessGetDashboard = "dashboard retrieved successfully"

	MessageFailedGetWizard    = "failed to retrieve wizard state"
	MessageFailedApplyAnswers = "failed to apply answers"
	MessageFailedAdvance      = "cannot advance past this step yet"
	MessageFailedGetDashboard = "failed to retrieve dashboard"

	ErrStepIncomplete     = errors.New("required fields for this step are missing")
	ErrGenerationInFlight = errors.New("a generation request is already in progress")
	ErrNotOnGenerateStep  = errors.New("generation is only available on the final questionnaire step")
)

type (
	ApplyAnswersRequest struct {
		Answers map[string]any `json:"answers" validate:"required"`
	}

	WizardStateResponse struct {
		Mode        string      `json:"mode"` // "wizard" or "dashboard"
		Step        int         `json:"step"`
		StepName    string      `json:"step_name"`
		CanAdvance  bool        `json:"can_advance"`
		CanGenerate bool        `json:"can_generate"`
		CanGoBack   bool        `json:"can_go_back"`
		IsLoading   bool        `json:"is_loading"`
		Data        ProfileData `json:"data"`
		LastError   string      `json:"last_error,omitempty"`
	}

	DashboardRecommendation struct {
		ID          string `json:"id"`
		Preview     string `json:"preview"`
		GeneratedAt string `json:"generated_at"`
	}

	DashboardResponse struct {
		HasProfile     bool                     `json:"has_profile"`
		ProfileVersion int                      `json:"profile_version,omitempty"`
		Subscription   SubscriptionState        `json:"subscription"`
		Usage          UsageState               `json:"usage"`
		Recommendation *DashboardRecommendation `json:"recommendation,omitempty"`
	}
)
