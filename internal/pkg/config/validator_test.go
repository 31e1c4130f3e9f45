package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateCronSchedule(t *testing.T) {
	for _, s := range []string{"30 5 * * *", "0 */6 * * *", "0 6 * * 1-5"} {
		assert.NoError(t, ValidateCronSchedule(s), s)
	}
	for _, s := range []string{"", "* * *", "61 * * * *", "@every 1h x"} {
		assert.Error(t, ValidateCronSchedule(s), s)
	}
}

func TestValidateTimezone(t *testing.T) {
	assert.NoError(t, ValidateTimezone("UTC"))
	assert.NoError(t, ValidateTimezone("Pacific/Honolulu"))
	assert.Error(t, ValidateTimezone(""))
	assert.Error(t, ValidateTimezone("Mars/Olympus"))
}

func TestValidateRanges(t *testing.T) {
	assert.NoError(t, ValidateIntRange(5, 1, 10))
	assert.Error(t, ValidateIntRange(0, 1, 10))
	assert.Error(t, ValidateIntRange(11, 1, 10))
	assert.Error(t, ValidateIntRange(5, 10, 1))

	assert.NoError(t, ValidateDuration(time.Minute, time.Second, time.Hour))
	assert.Error(t, ValidateDuration(time.Millisecond, time.Second, time.Hour))
	assert.Error(t, ValidatePositiveDuration(0))
}

func TestOneOf(t *testing.T) {
	v := OneOf("gemini", "openai", "claude")
	assert.NoError(t, v("Gemini"))
	assert.Error(t, v("mistral"))
}

func TestValidateWebhookURL(t *testing.T) {
	const host, prefix = "discord.com", "/api/webhooks/"

	assert.NoError(t, ValidateWebhookURL("https://discord.com/api/webhooks/1/abc", host, prefix))
	assert.Error(t, ValidateWebhookURL("http://discord.com/api/webhooks/1/abc", host, prefix))
	assert.Error(t, ValidateWebhookURL("https://evil.example/api/webhooks/1", host, prefix))
	assert.Error(t, ValidateWebhookURL("https://discord.com/other", host, prefix))
}
