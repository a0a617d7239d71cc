package domain

// Options names the engine types the editor targets and the conventions of
// the generated code.
type Options struct {
	// ComponentPath marks imports of the base component type.
	ComponentPath string
	// ScenePath marks imports of the base scene type.
	ScenePath string
	// EntityPath is the import path of the entity type used by generated code.
	EntityPath string
	// EntityName is the identifier the entity type is bound to.
	EntityName string
	// MethodName is the reserved scene method owned by the generator.
	MethodName string
	// MessageBus is the expression passed to every generated entity.
	MessageBus string
	// DependencyDir holds installed packages under the project root.
	DependencyDir string
}

// DefaultOptions returns the options matching the JamJar engine layout.
func DefaultOptions() Options {
	return Options{
		ComponentPath: "jamjar/lib/component/component",
		ScenePath:     "jamjar/lib/scene/scene",
		EntityPath:    "jamjar/lib/entity/entity",
		EntityName:    "Entity",
		MethodName:    "loadEditorEntities",
		MessageBus:    "this.messageBus",
		DependencyDir: "node_modules",
	}
}

func (o Options) withDefaults() Options {
	defaults := DefaultOptions()

	fill := func(field *string, fallback string) {
		if *field == "" {
			*field = fallback
		}
	}

	fill(&o.ComponentPath, defaults.ComponentPath)
	fill(&o.ScenePath, defaults.ScenePath)
	fill(&o.EntityPath, defaults.EntityPath)
	fill(&o.EntityName, defaults.EntityName)
	fill(&o.MethodName, defaults.MethodName)
	fill(&o.MessageBus, defaults.MessageBus)
	fill(&o.DependencyDir, defaults.DependencyDir)

	return o
}
