// Package handler resolves handler references and binds their parameters
// from parsed command input.
//
// # Handler References
//
// A command descriptor carries its handler as an opaque value. Resolve
// accepts, in priority order:
//
//  1. a Go func, or a *Func built with NewFunc that declares parameter names
//  2. an object with an Invoke method
//  3. a Pair{Target, Method}, or a two-element [2]any / []any
//  4. the name of a function registered in a Catalog
//  5. "Type::method" for a type registered in a Catalog
//  6. the name of a registered type whose instances have an Invoke method
//
// Name-based shapes are checked again at call time; a reference whose
// catalog entry was removed fails with ErrUnresolvable.
//
// # Parameter Names
//
// Go keeps no parameter names at run time, so they are declared:
//
//	handler.NewFunc(func(io *console.IO, name string, yell bool) int {
//		...
//	}, handler.Name("name"), handler.Default("yell", false))
//
// Objects declare names for their methods by implementing Declarer.
// Injected parameters take no declaration.
//
// # Binding
//
// For every parameter the Resolver:
//   - injects context.Context, console.Input, console.Output,
//     *console.Style and *console.IO by exact type
//   - probes the name, its snake_case and its kebab-case form, each first
//     as an argument and then as an option
//   - falls back to the declared default, else null
//   - wraps variadic values into a list
//   - coerces the value to the declared Go type
package handler
