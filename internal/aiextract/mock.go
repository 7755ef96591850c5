package aiextract

import "context"

// MockClient is a canned-response Client for tests.
type MockClient struct {
	Response string
	Err      error

	// Calls counts invocations, letting tests assert fallback behavior.
	Calls int

	// Block, when set, makes the call wait for context cancellation and
	// return the context error, simulating a hung service.
	Block bool
}

// ExtractTransactions implements Client.
func (m *MockClient) ExtractTransactions(ctx context.Context, _ []byte) (string, error) {
	m.Calls++
	if m.Block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}
