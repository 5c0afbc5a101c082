// Package checker holds the heuristic scoring engine's moving parts.
//
//   - ParseTarget normalizes raw input into a Target (scheme-qualified URL
//     plus host).
//   - Rules implement the Rule interface (ID + Evaluate) and are pure; Runner
//     evaluates them through a bounded worker pool and returns findings in the
//     fixed rule order.
//   - TLSProber is the only network-facing piece. It runs under a deadline and
//     folds every transport or verification failure into a CertificateResult.
//   - ReputationService is a pluggable hook; NoopReputation is the shipped
//     implementation.
//
// Scores and levels are computed from the findings by package risk.
package checker
