package spectatorgateway

import "expvar"

// Exposed under /api/debug/vars alongside the gateway counters.
var (
	metricSpectatorSSEConnectionsTotal  = expvar.NewInt("spectate_stream_connects_total")
	metricSpectatorSSEConnectionsActive = expvar.NewInt("spectate_streams_active")
)
