// Package loader registers the HTTP features served by the `start` command.
//
// Each feature implements Feature:
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// Manager keeps them in registration order and loads the enabled ones onto the
// router with LoadAll, after the global middleware is in place.
package loader
