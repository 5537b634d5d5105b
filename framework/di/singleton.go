package di

// Singleton returns a descriptor that always yields instance, whatever the
// resolver and extra arguments. Zero values, including nil, are valid.
func Singleton(instance any) Descriptor {
	return func(Resolver, ...any) (any, error) {
		return instance, nil
	}
}
