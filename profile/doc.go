// Package profile provides optional runtime profiling for the gflag command.
//
// Profiling is backed by [github.com/pkg/profile] and compiled in only when
// the binary is built with the "pprof" build tag:
//
//	go build -tags pprof -o gflag .
//
// Without the tag, [Profiler.Start] returns a no-op handle and [Modes] is
// empty, so callers need no conditional code.
//
// # Modes
//
//   - allocs:    memory allocation profiling (all allocations)
//   - block:     block (synchronization) profiling
//   - clock:     wall-clock profiling
//   - cpu:       CPU profiling
//   - goroutine: goroutine profiling
//   - heap:      heap profiling (live allocations)
//   - mem:       general memory profiling
//   - mutex:     mutex contention profiling
//   - thread:    thread creation profiling
//   - trace:     execution trace
//
// # Usage
//
//	p := profile.New(profile.WithMode("cpu"), profile.WithDir("/tmp/prof"))
//	defer p.Start().Stop()
//
// From the command line:
//
//	gflag --pprof-mode=heap --pprof-dir=./profiles check app.flags
//
// Output defaults to the pprof directory below the gflag cache directory.
// Inspect results with go tool pprof:
//
//	go tool pprof -http=: ./profiles/mem.pprof
//
// The profile is written when the handle is stopped; interrupting the
// process discards it.
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
