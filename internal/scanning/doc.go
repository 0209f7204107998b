// Package scanning implements the portsight scan engine.
//
// The engine is a non-invasive TCP connect scanner: for each target it
// performs one forward-resolution attempt, fans out bounded-concurrency
// connection probes across the requested ports, optionally captures a
// short service banner from open ports, and assembles a frozen,
// port-ordered report.
//
// The pipeline per target is:
//
//	Resolve -> Scheduler -> N parallel Probes -> sort -> TargetReport
//
// Every failure mode inside a probe is turned into structured data
// rather than an error: timeouts become filtered, active refusals become
// closed, and other I/O failures become error observations. A scan of N
// targets and M ports always yields exactly N*M observations. The only
// way a run fails as a whole is cancellation of the supplied context, in
// which case partial results are discarded rather than reported.
//
// Known limitation: a sufficiently fast RST can race a short timeout and
// be recorded as filtered instead of closed. This ambiguity is inherent
// to connect-scan semantics and is not distinguished further.
package scanning
