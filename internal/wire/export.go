package wire

// ExportVersion is written into every export file.
const ExportVersion = "1.0"

type ExportSet struct {
	LearnSet  LearnSet   `json:"learnset"`
	Exercises []Exercise `json:"exercises"`
}

type ExportData struct {
	Version    string      `json:"version"`
	ExportedAt string      `json:"exported_at"`
	LearnSets  []ExportSet `json:"learnsets"`
}

type ImportResult struct {
	LearnSetsCreated int `json:"learnsets_created"`
	ExercisesCreated int `json:"exercises_created"`
}
