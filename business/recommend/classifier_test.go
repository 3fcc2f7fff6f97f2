package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_DailyTokenLimit(t *testing.T) {
	text := "Rate limit reached for model `llama-3.3-70b-versatile` " +
		"on tokens per day (TPD): Limit 100000, Used 99912, Requested 480. " +
		"Please try again in 5m38.688s."

	cls := Classify(text)

	assert.Equal(t, FailureDailyQuota, cls.Kind)
	assert.False(t, cls.Recoverable)
	assert.Contains(t, cls.Message, "Daily token limit")
}

func TestClassify_RequestsPerMinute(t *testing.T) {
	text := "Rate limit reached for requests per minute (RPM): " +
		"Limit 30, Used 30. Please try again in 1m15s."

	cls := Classify(text)

	assert.Equal(t, FailureRPM, cls.Kind)
	assert.True(t, cls.Recoverable)
	assert.Equal(t, 75.0, cls.WaitSeconds)
}

func TestClassify_RPMWithoutDuration(t *testing.T) {
	cls := Classify("requests per minute exceeded")

	assert.Equal(t, FailureRPM, cls.Kind)
	assert.True(t, cls.Recoverable)
	assert.Equal(t, 60.0, cls.WaitSeconds)
}

func TestClassify_RPMFractionalSeconds(t *testing.T) {
	cls := Classify("requests per minute (RPM) hit, try again in 2m5.332s")

	assert.Equal(t, 125.0, cls.WaitSeconds)
}

func TestClassify_Unknown(t *testing.T) {
	cls := Classify("Some unknown rate limit error")

	assert.Equal(t, FailureUnknown, cls.Kind)
	assert.True(t, cls.Recoverable)
	assert.Equal(t, 30.0, cls.WaitSeconds)
}

func TestClassify_EmptyInput(t *testing.T) {
	cls := Classify("")

	assert.Equal(t, FailureUnknown, cls.Kind)
	assert.True(t, cls.Recoverable)
}

func TestClassify_DailyQuotaWinsOverRPM(t *testing.T) {
	// rules are ordered; the daily marker is checked first
	cls := Classify("tokens per day and requests per minute both mentioned")

	assert.Equal(t, FailureDailyQuota, cls.Kind)
	assert.False(t, cls.Recoverable)
}
