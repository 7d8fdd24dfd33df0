package ml

import (
	"errors"
	"fmt"
)

// ErrArtifactLoad matches every ArtifactLoadError via errors.Is.
var ErrArtifactLoad = errors.New("artifact load failed")

// ArtifactLoadError means a fitted artifact is missing, corrupt or was fitted
// against a different feature schema. It is fatal at startup.
type ArtifactLoadError struct {
	Artifact string
	Path     string
	Err      error
}

func (e *ArtifactLoadError) Error() string {
	return fmt.Sprintf("load %s artifact %q: %v", e.Artifact, e.Path, e.Err)
}

func (e *ArtifactLoadError) Unwrap() error {
	return e.Err
}

func (e *ArtifactLoadError) Is(target error) bool {
	return target == ErrArtifactLoad
}

func artifactError(artifact, path string, err error) error {
	return &ArtifactLoadError{Artifact: artifact, Path: path, Err: err}
}
