package entities

// GenerationResult holds the derived prompt and the artifact references
// produced by one rendering run.
type GenerationResult struct {
	Prompt    string
	Artifacts []string
}
