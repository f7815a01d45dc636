// Package telemetry records what the form handler does with each submission.
//
// Every parsed reading produces one BloodPressureCalculated Event carrying
// the systolic and diastolic values and the category. Tracker.Track logs the
// event, bumps the per-category and per-band counters and fans the event out
// to the configured webhooks (http, slack, teams) in the background.
//
// Counters are exposed in Prometheus text format by WriteMetrics and
// MetricsHandler:
//
//	bpcalc_readings_total{category,valid}
//	bpcalc_cardiovascular_risk_total{band}
//	bpcalc_rejections_total{reason}
//
// Configure swaps the enabled flag and webhook list at runtime so config
// reloads take effect without a restart. A disabled Tracker drops events but
// still counts rejections.
package telemetry
