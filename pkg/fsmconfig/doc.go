// Package fsmconfig loads FSM machine definitions from YAML configuration.
//
// The fsm engine deliberately knows nothing about where its definitions come
// from; this package is the configuration-discovery side of that boundary.
// It parses a declarative YAML document into fsm.Definition values,
// validates them (required identity fields, no duplicate machines, no
// duplicate edges) and hands them to the engine as construction options.
//
// # Usage
//
//	defs, err := fsmconfig.Load("machines.yaml")
//	if err != nil {
//	    return err
//	}
//	engine := fsm.MustNew(fsmconfig.Options(defs)...)
//
// Or resolve the file through the environment (FSM_CONFIG_PATH, with an
// optional .env file):
//
//	defs, err := fsmconfig.LoadFromEnv()
//
// Validator and action bindings are code, not configuration, and are
// registered directly on the engine by the application.
package fsmconfig
