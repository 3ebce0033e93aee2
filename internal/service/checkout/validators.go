package checkout

import "strings"

func isValidArtifact(artifact string) bool {
	artifact = strings.TrimSpace(artifact)
	return artifact != "" && !strings.ContainsAny(artifact, `/\`)
}
