/*
Package observability turns engine lifecycle hooks into Prometheus metrics
and structured log lines.

Both are plain domain.LifecycleHooks, so they compose with any host hooks
through domain.MergeHooks.
*/
package observability
