package testutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// Logs collects the messages emitted through the logger returned
// by CaptureLogs.
type Logs struct {
	observed *observer.ObservedLogs
}

// CaptureLogs returns a logger recording every entry at debug
// level and above.
func CaptureLogs() (*zap.Logger, *Logs) {
	core, observed := observer.New(zapcore.DebugLevel)
	return zap.New(core), &Logs{observed: observed}
}

// Messages returns the recorded messages, in emission order.
func (l *Logs) Messages() []string {
	var out []string
	for _, entry := range l.observed.All() {
		out = append(out, entry.Message)
	}
	return out
}

// Fields returns the string value of the field key for each recorded entry
// carrying it.
func (l *Logs) Fields(key string) []string {
	var out []string
	for _, entry := range l.observed.All() {
		if v, ok := entry.ContextMap()[key]; ok {
			if s, ok := v.(string); ok {
				out = append(out, s)
			}
		}
	}
	return out
}

func (l *Logs) CheckEqual(t *testing.T, expected []string) {
	t.Helper()
	assert.Equal(t, expected, l.Messages())
}

func (l *Logs) AssertNoLogs(t *testing.T) {
	t.Helper()
	assert.Empty(t, l.Messages())
}
