package task

import (
	"encoding/json"
	"fmt"

	"github.com/fhuszti/portfolio-medias-go/internal/validation"
	"github.com/hibiken/asynq"
)

const TypeMirrorSync = "mirror:sync"

// MirrorSyncPayload names the public path of the file to copy to the mirror tree.
type MirrorSyncPayload struct {
	Path string `json:"path" validate:"required,startswith=/uploads/"`
}

// NewMirrorSyncTask creates an Asynq task refreshing the mirror copy of path.
func NewMirrorSyncTask(path string) (*asynq.Task, error) {
	p := MirrorSyncPayload{Path: path}
	if err := validation.ValidateStruct(p); err != nil {
		return nil, fmt.Errorf("invalid mirror-sync payload: %w", err)
	}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("could not marshal mirror-sync payload: %w", err)
	}
	return asynq.NewTask(TypeMirrorSync, data, asynq.MaxRetry(5)), nil
}

// ParseMirrorSyncPayload parses and validates the task payload.
func ParseMirrorSyncPayload(t *asynq.Task) (MirrorSyncPayload, error) {
	var p MirrorSyncPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return MirrorSyncPayload{}, fmt.Errorf("could not unmarshal payload: %w", err)
	}
	if err := validation.ValidateStruct(p); err != nil {
		return MirrorSyncPayload{}, fmt.Errorf("invalid mirror-sync payload: %w", err)
	}
	return p, nil
}
