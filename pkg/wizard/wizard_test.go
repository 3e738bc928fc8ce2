package wizard

import (
	"NutriMind-Backend/domain"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	saves int
	err   error
}

func (f *fakeStore) SaveProfile(_ context.Context, _ string, _ domain.ProfileData) (domain.SavedProfile, error) {
	if f.err != nil {
		return domain.SavedProfile{}, f.err
	}
	f.saves++
	return domain.SavedProfile{ID: "profile-1", Version: f.saves}, nil
}

type fakeGenerator struct {
	calls   int
	err     error
	text    string
	started chan struct{}
	release chan struct{}
}

func (f *fakeGenerator) Generate(_ context.Context, _ string, _ string, _ domain.ProfileData) (string, string, error) {
	f.calls++
	if f.started != nil {
		f.started <- struct{}{}
		<-f.release
	}
	if f.err != nil {
		return "", "", f.err
	}
	return "rec-1", f.text, nil
}

type fakeEntitlements struct {
	canUse     bool
	subscribed bool
	consumed   int
	refreshed  int
}

func (f *fakeEntitlements) CanUseFeature(_ context.Context, _ string) bool { return f.canUse }
func (f *fakeEntitlements) IsSubscribed(_ context.Context, _ string) bool  { return f.subscribed }
func (f *fakeEntitlements) ConsumeUsage(_ context.Context, _ string) error {
	f.consumed++
	return nil
}
func (f *fakeEntitlements) Refresh(_ context.Context, _ string) { f.refreshed++ }

func completeProfile() domain.ProfileData {
	return domain.ProfileData{
		Name:          "Ann",
		Age:           "30",
		Gender:        "female",
		Weight:        "62",
		Height:        "168",
		ActivityLevel: "moderate",
		CurrentDiet:   "omnivore",
		MealsPerDay:   "3",
		CookingTime:   "moderate",
		HealthGoals:   "more energy",
	}
}

func newTestSession(t *testing.T, store *fakeStore, gen *fakeGenerator, ent *fakeEntitlements) *Session {
	t.Helper()
	m := NewManager(store, gen, ent)
	return m.Session("user-1", false, domain.ProfileData{})
}

func TestCanAdvanceGuards(t *testing.T) {
	tests := []struct {
		name string
		step Step
		data domain.ProfileData
		want bool
	}{
		{"basic info missing name", StepBasicInfo, domain.ProfileData{Age: "30", Gender: "male"}, false},
		{"basic info complete", StepBasicInfo, domain.ProfileData{Name: "A", Age: "30", Gender: "male"}, true},
		{"physical details missing weight", StepPhysicalDetails, domain.ProfileData{Height: "170", ActivityLevel: "light"}, false},
		{"lifestyle missing cooking time", StepLifestyle, domain.ProfileData{CurrentDiet: "mixed", MealsPerDay: "3"}, false},
		{"dietary preferences always passable", StepDietaryPreferences, domain.ProfileData{}, true},
		{"health goals missing", StepHealthGoals, domain.ProfileData{}, false},
		{"health goals filled", StepHealthGoals, domain.ProfileData{HealthGoals: "lose weight"}, true},
		{"additional info always passable", StepAdditionalInfo, domain.ProfileData{}, true},
		{"welcome always passable", StepWelcome, domain.ProfileData{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanAdvance(tt.step, tt.data))
		})
	}
}

func TestAdvanceIsNoOpWhenGuardFails(t *testing.T) {
	s := newTestSession(t, &fakeStore{}, &fakeGenerator{}, &fakeEntitlements{canUse: true})
	require.True(t, s.Advance()) // welcome -> basic info

	assert.False(t, s.Advance(), "should not advance without name/age/gender")
	assert.Equal(t, int(StepBasicInfo), s.State().Step)
	assert.False(t, s.State().CanAdvance)

	s.Apply(map[string]any{"name": "Ann", "age": "30", "gender": "female"})
	assert.True(t, s.State().CanAdvance)
	assert.True(t, s.Advance())
	assert.Equal(t, int(StepPhysicalDetails), s.State().Step)
}

func TestBackAndDashboardTransitions(t *testing.T) {
	s := newTestSession(t, &fakeStore{}, &fakeGenerator{}, &fakeEntitlements{canUse: true})
	require.True(t, s.Advance())
	require.True(t, s.Back())
	assert.Equal(t, int(StepWelcome), s.State().Step)
	assert.False(t, s.Back(), "cannot back out of the first step")

	s.ToDashboard()
	assert.Equal(t, "dashboard", s.State().Mode)
	assert.False(t, s.Advance(), "dashboard mode does not advance")

	s.StartWizard()
	assert.Equal(t, "wizard", s.State().Mode)
	assert.Equal(t, int(StepWelcome), s.State().Step)
}

func TestManagerSeedsDashboardForExistingProfile(t *testing.T) {
	m := NewManager(&fakeStore{}, &fakeGenerator{}, &fakeEntitlements{})
	seed := completeProfile()
	s := m.Session("user-2", true, seed)
	state := s.State()
	assert.Equal(t, "dashboard", state.Mode)
	assert.Equal(t, "Ann", state.Data.Name)

	assert.Same(t, s, m.Session("user-2", true, seed), "sessions are reused per user")
}

func walkToGenerateStep(t *testing.T, s *Session) {
	t.Helper()
	s.Apply(map[string]any{
		"name": "Ann", "age": "30", "gender": "female",
		"weight": "62", "height": "168", "activity_level": "moderate",
		"current_diet": "omnivore", "meals_per_day": "3", "cooking_time": "moderate",
		"health_goals": "more energy",
	})
	for i := 0; i < 6; i++ {
		require.True(t, s.Advance(), "advance %d", i)
	}
	require.Equal(t, int(StepAdditionalInfo), s.State().Step)
}

func TestStateSignalsGenerateOnFinalQuestionnaireStep(t *testing.T) {
	s := newTestSession(t, &fakeStore{}, &fakeGenerator{}, &fakeEntitlements{canUse: true})
	walkToGenerateStep(t, s)

	state := s.State()
	assert.False(t, state.CanAdvance, "next is disabled on the generate step")
	assert.True(t, state.CanGenerate)
	assert.False(t, s.Advance(), "only Generate moves past the final step")

	s.ToDashboard()
	assert.False(t, s.State().CanGenerate)
}

func TestGenerateHappyPathFreeUser(t *testing.T) {
	store := &fakeStore{}
	gen := &fakeGenerator{text: "# Plan\nEat greens."}
	ent := &fakeEntitlements{canUse: true, subscribed: false}
	s := newTestSession(t, store, gen, ent)
	walkToGenerateStep(t, s)

	require.NoError(t, s.Generate(context.Background()))

	assert.Equal(t, int(StepResults), s.State().Step)
	assert.Equal(t, 1, store.saves)
	assert.Equal(t, 1, gen.calls)
	assert.Equal(t, 1, ent.consumed, "free user charged exactly once")
	assert.Equal(t, 1, ent.refreshed)

	id, text := s.Recommendation()
	assert.Equal(t, "rec-1", id)
	assert.Equal(t, "# Plan\nEat greens.", text)
}

func TestGenerateSubscribedUserIsNotCharged(t *testing.T) {
	ent := &fakeEntitlements{canUse: true, subscribed: true}
	s := newTestSession(t, &fakeStore{}, &fakeGenerator{text: "plan"}, ent)
	walkToGenerateStep(t, s)

	require.NoError(t, s.Generate(context.Background()))
	assert.Zero(t, ent.consumed)
}

func TestGenerateBlockedByQuota(t *testing.T) {
	store := &fakeStore{}
	gen := &fakeGenerator{}
	ent := &fakeEntitlements{canUse: false}
	s := newTestSession(t, store, gen, ent)
	walkToGenerateStep(t, s)

	err := s.Generate(context.Background())
	require.ErrorIs(t, err, domain.ErrQuotaExceeded)
	assert.Zero(t, store.saves, "no external call after quota rejection")
	assert.Zero(t, gen.calls)
	assert.Equal(t, int(StepAdditionalInfo), s.State().Step)
}

func TestGenerateProfileSaveFailureStopsBeforeGeneration(t *testing.T) {
	saveErr := errors.New("db down")
	gen := &fakeGenerator{}
	s := newTestSession(t, &fakeStore{err: saveErr}, gen, &fakeEntitlements{canUse: true})
	walkToGenerateStep(t, s)

	err := s.Generate(context.Background())
	require.ErrorIs(t, err, saveErr)
	assert.Zero(t, gen.calls)
	assert.Equal(t, int(StepAdditionalInfo), s.State().Step)
	assert.Equal(t, "db down", s.State().LastError)
}

func TestGenerateGenerationFailureLeavesUsageUnchanged(t *testing.T) {
	store := &fakeStore{}
	ent := &fakeEntitlements{canUse: true}
	s := newTestSession(t, store, &fakeGenerator{err: domain.ErrGenerationFailed}, ent)
	walkToGenerateStep(t, s)

	err := s.Generate(context.Background())
	require.ErrorIs(t, err, domain.ErrGenerationFailed)
	assert.Equal(t, 1, store.saves, "profile save is not rolled back")
	assert.Zero(t, ent.consumed, "no charge on failed generation")
	assert.Equal(t, int(StepAdditionalInfo), s.State().Step)
}

func TestGenerateRetryAfterFailureDoesNotDoubleCharge(t *testing.T) {
	store := &fakeStore{}
	gen := &fakeGenerator{err: domain.ErrGenerationFailed}
	ent := &fakeEntitlements{canUse: true}
	s := newTestSession(t, store, gen, ent)
	walkToGenerateStep(t, s)

	require.Error(t, s.Generate(context.Background()))

	gen.err = nil
	gen.text = "plan"
	require.NoError(t, s.Generate(context.Background()))

	assert.Equal(t, 2, store.saves, "upsert per attempt, idempotent per profile")
	assert.Equal(t, 1, ent.consumed, "only the successful attempt is charged")
	assert.Equal(t, int(StepResults), s.State().Step)
	assert.Empty(t, s.State().LastError)
}

func TestGenerateRejectsReentrantCalls(t *testing.T) {
	gen := &fakeGenerator{
		text:    "plan",
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	s := newTestSession(t, &fakeStore{}, gen, &fakeEntitlements{canUse: true})
	walkToGenerateStep(t, s)

	done := make(chan error, 1)
	go func() { done <- s.Generate(context.Background()) }()
	<-gen.started

	assert.True(t, s.State().IsLoading)
	assert.False(t, s.State().CanGenerate)
	assert.ErrorIs(t, s.Generate(context.Background()), domain.ErrGenerationInFlight)

	close(gen.release)
	require.NoError(t, <-done)
	assert.Equal(t, 1, gen.calls)
}

func TestGenerateOnlyAvailableOnFinalQuestionnaireStep(t *testing.T) {
	s := newTestSession(t, &fakeStore{}, &fakeGenerator{}, &fakeEntitlements{canUse: true})
	assert.ErrorIs(t, s.Generate(context.Background()), domain.ErrNotOnGenerateStep)
}
