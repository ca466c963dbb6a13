package nav

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	mnoop "go.opentelemetry.io/otel/metric/noop"
)

const instrumentationName = "github.com/tabrail/tabrail/internal/nav"

var (
	tracer = otel.Tracer(instrumentationName)
	meter  = otel.Meter(instrumentationName)

	refreshesTotal   = counter("nav_auth_refreshes_total", "Auth state recomputations performed by the bottom nav")
	actionsTotal     = counter("nav_profile_actions_total", "Profile tab activations, by resolved action")
	visibilityTotal  = counter("nav_visibility_changes_total", "Show/hide transitions of the bottom nav")
	rendersTotal     = counter("nav_renders_total", "Bottom nav component renders")
	mountsTotal      = counter("nav_mounts_total", "Bottom nav mounts and unmounts, by phase")
	pollChecksTotal  = counter("nav_poll_checks_total", "Auth checks performed by the polling fallback")
)

func counter(name, description string) metric.Int64Counter {
	c, err := meter.Int64Counter(name, metric.WithDescription(description), metric.WithUnit("{event}"))
	if err != nil {
		c, _ = mnoop.NewMeterProvider().Meter(instrumentationName).Int64Counter(name)
	}
	return c
}
