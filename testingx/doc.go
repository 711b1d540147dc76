// Package testingx provides testing helpers and fakes for jscaffold packages.
//
// # Overview
//
// testingx contains small utilities to speed up unit tests: a mock logger
// with capture capabilities, error-code assertions, and helpers that lay
// out and check file trees (fake JDK homes, generated workspaces).
//
// # Features
//
//   - MockLogger with in-memory capture and assertions
//   - Error assertion helpers for core/errors codes
//   - File fixture and content assertions
//
// # Usage
//
//	logger := testingx.NewMockLogger(t)
//	testingx.AssertError(t, err, errors.CodeAlreadyExists)
//
// # Layer
//
// testingx is used by tests only and depends on core packages.
package testingx
