package cmd

import "time"

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// AmqpURL is the broker address for order notifications. Empty disables
	// publishing; commands then run with a no-op notifier.
	AmqpURL string

	// PendingPaymentTTL is how long an online-payment order may stay pending
	// before the sweep moves it to payment_failed.
	PendingPaymentTTL time.Duration

	// PaymentSweepSchedule is the cron expression for the payment-timeout job.
	PaymentSweepSchedule string
}
