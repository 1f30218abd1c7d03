// Package doctor probes the environment the bootstrap workflow depends on
// and reports ok/warn/fail per check.
package doctor
