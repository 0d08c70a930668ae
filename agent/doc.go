// Package agent implements the bounded tool-calling conversation loop and the
// factory that maps string keys to specialized agent configurations.
//
// An Agent drives one user turn to completion: it sends the system prompt,
// full history and tool catalog to the model provider, dispatches any tool
// invocations the model requests, feeds the results back, and stops when the
// model produces a final answer or the iteration cap is reached. The loop
// mutates only the history it returns; persisting it is the caller's job.
package agent
