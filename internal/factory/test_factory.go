package factory

import (
	"time"

	"github.com/duelcode-game/duelcode/internal/dependencies/mocks"
	"github.com/duelcode-game/duelcode/internal/services/duel"
	"github.com/duelcode-game/duelcode/internal/storage/memory"
	"github.com/duelcode-game/duelcode/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, mockClock, mockRandom, duel.DefaultTurnTimeout, testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}
