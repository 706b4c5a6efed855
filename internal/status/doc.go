// Package status owns the header and footer: the three indicator discs, the
// shared counters, and the painters that print them.
package status
