// Package trip contains the cycling trip-planning domain: the static lookup
// tables, the five deterministic tools exposed to the model, the planner
// system prompt and an agent configuration composing them.
//
// Every tool is a pure function of its declared inputs plus the static tables.
// Unknown locations or routes never produce a "not found" error; the tools
// synthesize deterministic fallback data instead so the model always receives
// usable (if fabricated) results.
package trip
