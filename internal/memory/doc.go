// Package memory sets the Go soft memory limit before the pipeline starts.
//
// A full-resolution photo decodes to width*height*4 bytes, so a single 50MP
// original needs about 200MB of heap while it is resized. When the builder runs
// in a container, GOMEMLIMIT keeps the collector ahead of the cgroup limit.
//
// Environment variables:
//
//   - GOMEMLIMIT: standard Go variable; when set it wins and is only reported
//   - MEMORY_LIMIT: container memory limit in bytes (Kubernetes Downward API)
//   - MEMORY_RATIO: share of MEMORY_LIMIT given to the heap, default 0.85
package memory
