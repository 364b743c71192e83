/*
Package schedule provides time-driven sequences.

Cron yields a time.Time at each firing of a cron expression; Every is the
fixed-interval variant. Both integrate with the seq combinators, so a
periodic pipeline is just a sequence pipeline:

	ticks, err := schedule.Cron("0 30 * * * *") // half past every hour
	...
	err = seq.Each(ctx, ticks, func(at time.Time) error {
		return runReport(ctx, at)
	})

Expressions use six fields (seconds first) and support descriptors like
"@hourly" and "@every 10s".
*/
package schedule
