// Package gateway holds configuration shared by the preview gateways.
//
// A gateway serves a built site over a network protocol. The HTTP gateway in
// gateway/http keeps the most recent build in memory, serves its documents
// by path, and rebuilds on request:
//
//	┌─────────────────┐
//	│  Browser        │  GET /Cat.html
//	└────────┬────────┘
//	         ↓
//	┌────────────────────────────────────────┐
//	│  gateway/http (chi router)             │
//	│  /*  /static/*  /health  /metrics      │
//	└────────┬───────────────────────────────┘
//	         ↓ POST /rebuild
//	┌────────────────────────────────────────┐
//	│  BuildFunc (site.Orchestrator.Build)   │
//	└────────────────────────────────────────┘
//
// # CORS
//
// CORS is disabled by default and requires explicit origins when enabled.
package gateway
