// Package heap keeps the console alive on a small memory budget.
//
// Three pieces cooperate:
//
//	Ring      - fixed-capacity circular buffer of free-memory samples
//	Watchdog  - classifies free memory against a floor and a tolerance and
//	            restarts the process once free + tolerance drops under the floor
//	Graph     - long-running loop that records samples into the Ring and draws a
//	            rescaled bar chart with the floor and warning lines overlaid
//
// Free memory comes from a Source. HostSource measures this process against a
// byte budget using gopsutil; SimulatedSource is a seeded random walk for demos
// and tests.
//
// A zero sample means "not observed yet": it never contributes to scaling and
// draws only background.
package heap
