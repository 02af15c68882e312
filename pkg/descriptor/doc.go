// Package descriptor declares console commands as validated data.
//
// A Command is a name, ordered positional arguments (Arg), named options
// (Opt), a handler reference and optional metadata. Every constructor
// validates its input and every With method returns a new validated value,
// so a descriptor that exists is always structurally sound:
//
//	greet, err := descriptor.NewBuilder("greet").
//		Description("Say hello").
//		Arg(descriptor.Must(descriptor.RequiredArg("name", "Who to greet"))).
//		Opt(descriptor.Must(descriptor.Flag("yell", "y", "Shout"))).
//		Handler("greet").
//		Build()
//
// Violations are reported as *Error values whose Kind is one of the
// package sentinels.
package descriptor
