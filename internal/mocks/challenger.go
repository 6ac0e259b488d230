package mocks

import (
	"net/http"
	"sync/atomic"
)

// ChallengeLocation is where MockChallenger redirects.
const ChallengeLocation = "/account/signin"

// MockChallenger records challenges and answers them with an empty 302.
type MockChallenger struct {
	calls atomic.Int32
}

// Challenge implements the Challenger interface
func (m *MockChallenger) Challenge(w http.ResponseWriter, r *http.Request) {
	m.calls.Add(1)
	w.Header().Set("Location", ChallengeLocation)
	w.WriteHeader(http.StatusFound)
}

// Calls returns how many challenges were issued.
func (m *MockChallenger) Calls() int {
	return int(m.calls.Load())
}
