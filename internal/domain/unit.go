package domain

// Unit represents one runnable feature file
type Unit struct {
	Path  string // Absolute path to the feature file
	Name  string // Display name (filename without extension)
	Index int    // Position in discovery order
}
