// Package health reports build health.
//
// A Status is healthy, degraded or unhealthy. After each build the
// preview server stores the build report's status in a Monitor under
// "build"; /health serves Monitor.AggregateHealth, which is unhealthy if
// any check is unhealthy, degraded if any is degraded, healthy otherwise.
//
//	monitor := health.NewMonitor()
//	monitor.Update("build", report.Health("build"))
//	status := monitor.AggregateHealth("hyppo")
//
// Error messages placed in a Status through FromError are sanitized: URLs,
// file paths, IP addresses, ports and credential-looking pairs are replaced
// with placeholders.
package health
