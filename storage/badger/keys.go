package badger

// Key prefixes for different data types
const (
	artifactPrefix = "artifact:"
)

// makeArtifactKey generates a key for an artifact by name.
func makeArtifactKey(name string) []byte {
	return []byte(artifactPrefix + name)
}

// artifactName strips the key prefix from an artifact key.
func artifactName(key []byte) string {
	return string(key[len(artifactPrefix):])
}
