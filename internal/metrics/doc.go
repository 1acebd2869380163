// CineArchive - Movie Catalogue Analytics and Recommendations
// Copyright 2026 The CineArchive Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anshulrawat2507/CineArchive

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered with the default registry through promauto and
exposed at /metrics by the HTTP server:

	curl http://localhost:8080/metrics

# Available Metrics

API:
  - api_requests_total{method,endpoint,status_code}
  - api_request_duration_seconds{method,endpoint}
  - api_active_requests
  - api_rate_limit_hits_total{endpoint}

Database:
  - duckdb_query_duration_seconds{operation,table}
  - duckdb_query_errors_total{operation,table,error_type}

Recommendations:
  - recommend_requests_total{mode,result}
  - recommend_duration_seconds{mode}
  - recommend_corpus_size
  - recommend_corpus_refreshes_total{result}
  - cache_hits_total{cache}, cache_misses_total{cache}

Security:
  - auth_attempts_total{action,result}
  - authz_decisions_total{role,decision}
  - playground_queries_total{outcome}

Resilience:
  - circuit_breaker_state{name}
  - circuit_breaker_requests_total{name,result}
  - circuit_breaker_consecutive_failures{name}
  - circuit_breaker_state_transitions_total{name,from_state,to_state}
  - supervisor_service_events_total{supervisor,event}

# Usage

	start := time.Now()
	rows, err := conn.QueryContext(ctx, query)
	metrics.RecordDBQuery("select", "movies", time.Since(start), err)

Labels are kept to bounded sets. Error messages are classified rather than
used verbatim so a bad query cannot explode label cardinality.
*/
package metrics
