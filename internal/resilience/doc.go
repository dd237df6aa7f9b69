// Package resilience provides reliability patterns for the notification
// webhook calls. The classifier call deliberately has no retry or circuit
// breaking: a classification failure must surface to the crawler immediately.
//
// The package supports:
//   - Circuit breakers for webhook endpoints
//   - Retry logic with exponential backoff and jitter
//
// Usage Example:
//
//	cb := circuitbreaker.New(circuitbreaker.WebhookConfig("discord"))
//	result, err := cb.Execute(func() (interface{}, error) {
//	    return callExternalService()
//	})
//
//	err := retry.WithBackoff(ctx, retry.WebhookConfig(), func() error {
//	    return performOperation()
//	})
package resilience
