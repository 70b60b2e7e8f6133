package api

import (
	"github.com/JaimeStill/syllabus/internal/plans"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Plans plans.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	return &Domain{
		Plans: plans.New(
			runtime.Runtime(nil),
			runtime.Archive,
			runtime.Storage,
			runtime.RunTimeout,
			runtime.Logger,
		),
	}
}
