// Package model defines the provider-agnostic abstractions for interacting
// with chat models inside TripMesh.
//
// Core goals:
//   - Keep request/response shapes minimal and transport independent
//   - Normalize the tool-use signalling (StopReason, ToolDefinition)
//   - Facilitate lightweight scripting for tests (ScriptedProvider)
//
// Providers (e.g. Anthropic, OpenAI) implement the Provider interface from
// this package so the conversation loop remains decoupled from vendor SDKs.
package model
