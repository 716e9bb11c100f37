package check

// RegisterBuiltins registers all built-in checks with the given registry.
func RegisterBuiltins(registry *Registry) {
	registry.Register(NewConstructCheck())
	registry.Register(NewDuplicateTableCheck())
	registry.Register(NewUnreachableTableCheck())
	registry.Register(NewUndefinedReferenceCheck())
	registry.Register(NewExternalDependencyCheck())
	registry.Register(NewReferenceCycleCheck())
}

// init registers all built-in checks with the default registry.
//
//nolint:gochecknoinits // Init is intentional for automatic check registration
func init() {
	RegisterBuiltins(DefaultRegistry)
}
