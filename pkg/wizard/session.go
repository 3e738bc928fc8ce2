package wizard

import (
	"NutriMind-Backend/domain"
	"context"
	"sync"
	"time"
)

type (
	// ProfileStore persists the collected answers. Saving is an upsert and
	// idempotent per profile; retrying a failed Generate does not stack
	// stale versions.
	ProfileStore interface {
		SaveProfile(ctx context.Context, userID string, data domain.ProfileData) (domain.SavedProfile, error)
	}

	// Generator produces and persists the recommendation for a saved
	// profile, archiving any previously active one.
	Generator interface {
		Generate(ctx context.Context, userID string, profileID string, data domain.ProfileData) (recommendationID string, text string, err error)
	}

	// Entitlements answers the quota questions. Implementations fall back
	// to free tier when the subscription authority is unreachable.
	Entitlements interface {
		CanUseFeature(ctx context.Context, userID string) bool
		IsSubscribed(ctx context.Context, userID string) bool
		ConsumeUsage(ctx context.Context, userID string) error
		Refresh(ctx context.Context, userID string)
	}
)

// Session is one user's questionnaire state. All methods are safe for the
// single-session, event-driven access pattern the handlers provide.
type Session struct {
	mu sync.Mutex

	userID           string
	mode             Mode
	step             Step
	data             domain.ProfileData
	isLoading        bool
	lastErr          error
	profileID        string
	recommendationID string
	recommendation   string

	store        ProfileStore
	generator    Generator
	entitlements Entitlements
	timeout      time.Duration
}

func (s *Session) State() domain.WizardStateResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := domain.WizardStateResponse{
		Mode:        s.mode.String(),
		Step:        int(s.step),
		StepName:    s.step.String(),
		CanAdvance:  s.mode == ModeWizard && s.step < StepAdditionalInfo && CanAdvance(s.step, s.data),
		CanGenerate: s.mode == ModeWizard && s.step == StepAdditionalInfo && !s.isLoading,
		CanGoBack:   s.mode == ModeWizard && s.step > StepWelcome,
		IsLoading:   s.isLoading,
		Data:        s.data,
	}
	if s.lastErr != nil {
		state.LastError = s.lastErr.Error()
	}
	return state
}

func (s *Session) Recommendation() (id string, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recommendationID, s.recommendation
}

// Apply merges questionnaire answers into the working profile data. Unknown
// keys are ignored; in-progress edits live only in the session until Generate
// saves them.
func (s *Session) Apply(answers map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, value := range answers {
		switch key {
		case "name":
			s.data.Name = asString(value)
		case "age":
			s.data.Age = asString(value)
		case "gender":
			s.data.Gender = asString(value)
		case "weight":
			s.data.Weight = asString(value)
		case "height":
			s.data.Height = asString(value)
		case "activity_level":
			s.data.ActivityLevel = asString(value)
		case "dietary_restrictions":
			s.data.DietaryRestrictions = asStringSlice(value)
		case "health_goals":
			s.data.HealthGoals = asString(value)
		case "current_diet":
			s.data.CurrentDiet = asString(value)
		case "meals_per_day":
			s.data.MealsPerDay = asString(value)
		case "cooking_time":
			s.data.CookingTime = asString(value)
		case "budget":
			s.data.Budget = asString(value)
		case "medical_conditions":
			s.data.MedicalConditions = asString(value)
		case "food_preferences":
			s.data.FoodPreferences = asString(value)
		case "additional_info":
			s.data.AdditionalInfo = asString(value)
		}
	}
}

// Advance moves to the next step when the current step's guard passes. A
// failing guard makes this a no-op; the final questionnaire step transitions
// only through Generate.
func (s *Session) Advance() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode != ModeWizard || s.step >= StepAdditionalInfo {
		return false
	}
	if !CanAdvance(s.step, s.data) {
		return false
	}
	s.step++
	return true
}

func (s *Session) Back() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode != ModeWizard || s.step <= StepWelcome {
		return false
	}
	s.step--
	return true
}

// ToDashboard leaves the wizard from any step. Unsaved field edits stay in
// the session but nothing is persisted.
func (s *Session) ToDashboard() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = ModeDashboard
}

// StartWizard re-enters the questionnaire at the first step.
func (s *Session) StartWizard() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = ModeWizard
	s.step = StepWelcome
	s.lastErr = nil
}

// Generate runs the terminal action: quota gate, profile save, external
// generation, then the usage charge. Only a fully successful run transitions
// to Results; any failure leaves the step unchanged and is safe to retry.
// Re-entrant calls while a generation is outstanding are rejected.
func (s *Session) Generate(ctx context.Context) error {
	s.mu.Lock()
	if s.mode != ModeWizard || s.step != StepAdditionalInfo {
		s.mu.Unlock()
		return domain.ErrNotOnGenerateStep
	}
	if s.isLoading {
		s.mu.Unlock()
		return domain.ErrGenerationInFlight
	}
	s.isLoading = true
	userID := s.userID
	data := s.data
	s.mu.Unlock()

	err := s.runGenerate(ctx, userID, data)

	s.mu.Lock()
	s.isLoading = false
	s.lastErr = err
	if err == nil {
		s.step = StepResults
	}
	s.mu.Unlock()
	return err
}

func (s *Session) runGenerate(ctx context.Context, userID string, data domain.ProfileData) error {
	if !s.entitlements.CanUseFeature(ctx, userID) {
		return domain.ErrQuotaExceeded
	}

	saved, err := s.store.SaveProfile(ctx, userID, data)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.profileID = saved.ID
	s.mu.Unlock()

	genCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	// The profile save above is not rolled back when generation fails.
	recommendationID, text, err := s.generator.Generate(genCtx, userID, saved.ID, data)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.recommendationID = recommendationID
	s.recommendation = text
	s.mu.Unlock()

	if !s.entitlements.IsSubscribed(ctx, userID) {
		// Charged only after the recommendation exists. A failed charge is
		// reconciled on the next authoritative usage read.
		_ = s.entitlements.ConsumeUsage(ctx, userID)
	}
	s.entitlements.Refresh(ctx, userID)
	return nil
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asStringSlice(v any) []string {
	switch t := v.(type) {
	case []string:
		return t
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
