// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// An ActionableError says which operation failed on which resource and how to
// fix it. It may point at a catalog Issue, whose Markdown guidance is rendered
// with glamour below the error.
package issue
